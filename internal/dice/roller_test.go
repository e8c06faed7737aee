package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNotation(t *testing.T) {
	tests := []struct {
		notation string
		count    int
		sides    int
		bonus    int
		wantErr  bool
	}{
		{notation: "1d20", count: 1, sides: 20},
		{notation: "2d6+3", count: 2, sides: 6, bonus: 3},
		{notation: "1d8+0", count: 1, sides: 8},
		{notation: "d20", wantErr: true},
		{notation: "1d", wantErr: true},
		{notation: "garbage", wantErr: true},
		{notation: "1d20+x", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.notation, func(t *testing.T) {
			count, sides, bonus, err := ParseNotation(tc.notation)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.count, count)
			assert.Equal(t, tc.sides, sides)
			assert.Equal(t, tc.bonus, bonus)
		})
	}
}

func TestRandomRoller_Range(t *testing.T) {
	r := NewRandomRoller()
	for i := 0; i < 200; i++ {
		result, err := r.Roll(1, 20, 0)
		require.NoError(t, err)
		require.Len(t, result.Rolls, 1)
		assert.GreaterOrEqual(t, result.Total, 1)
		assert.LessOrEqual(t, result.Total, 20)
		assert.Equal(t, result.Rolls[0], result.Total)
	}
}

func TestRandomRoller_Invalid(t *testing.T) {
	r := NewRandomRoller()
	_, err := r.Roll(0, 20, 0)
	assert.Error(t, err)
	_, err = r.Roll(1, 0, 0)
	assert.Error(t, err)
}

func TestMockRoller(t *testing.T) {
	m := NewMockRoller()
	m.SetRolls([]int{15, 3})

	result, err := m.Roll(2, 20, 2)
	require.NoError(t, err)
	assert.Equal(t, 20, result.Total)
	assert.Equal(t, []int{15, 3}, result.Rolls)

	_, err = m.Roll(1, 20, 0)
	assert.Error(t, err, "queue exhausted")
}

func TestRollNotation(t *testing.T) {
	m := NewMockRoller()
	m.SetNextRoll(12)

	result, err := RollNotation(m, "1d20")
	require.NoError(t, err)
	assert.Equal(t, 12, result.Total)

	_, err = RollNotation(m, "bad")
	assert.Error(t, err)
}
