package worldclock

import "testing"

func TestFormatCampaignStart(t *testing.T) {
	gt := Format(StartMinutes)

	if gt.Time != "8:00 AM" {
		t.Errorf("Time = %q, want 8:00 AM", gt.Time)
	}
	if gt.Date != "1st of Hammer, 1492 DR" {
		t.Errorf("Date = %q, want 1st of Hammer, 1492 DR", gt.Date)
	}
	if gt.IsNight {
		t.Error("8 AM should not be night")
	}
}

func TestFormatMonthRollover(t *testing.T) {
	// 30 days after the start rolls into the second month.
	gt := Format(StartMinutes + 1440*30)

	if gt.Date != "1st of Alturiak, 1492 DR" {
		t.Errorf("Date = %q, want 1st of Alturiak, 1492 DR", gt.Date)
	}
}

func TestFormatYearRollover(t *testing.T) {
	gt := Format(StartMinutes + 1440*360)

	if gt.Date != "1st of Hammer, 1493 DR" {
		t.Errorf("Date = %q, want 1st of Hammer, 1493 DR", gt.Date)
	}
}

func TestFormatTimeOfDay(t *testing.T) {
	tests := []struct {
		minutes int
		time    string
		isNight bool
	}{
		{0, "12:00 AM", true},
		{5*60 + 59, "5:59 AM", true},
		{6 * 60, "6:00 AM", false},
		{12 * 60, "12:00 PM", false},
		{13*60 + 5, "1:05 PM", false},
		{20 * 60, "8:00 PM", false},
		{21 * 60, "9:00 PM", true},
		{23*60 + 59, "11:59 PM", true},
	}

	for _, tt := range tests {
		gt := Format(tt.minutes)
		if gt.Time != tt.time {
			t.Errorf("Format(%d).Time = %q, want %q", tt.minutes, gt.Time, tt.time)
		}
		if gt.IsNight != tt.isNight {
			t.Errorf("Format(%d).IsNight = %v, want %v", tt.minutes, gt.IsNight, tt.isNight)
		}
	}
}

func TestOrdinalSuffixes(t *testing.T) {
	tests := []struct {
		day  int
		want string
	}{
		{1, "st"}, {2, "nd"}, {3, "rd"}, {4, "th"},
		{11, "th"}, {12, "th"}, {13, "th"},
		{21, "st"}, {22, "nd"}, {23, "rd"}, {30, "th"},
	}

	for _, tt := range tests {
		if got := ordinalSuffix(tt.day); got != tt.want {
			t.Errorf("ordinalSuffix(%d) = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestClockAdvanceNeverDecreases(t *testing.T) {
	c := NewClock()
	if c.Minutes != StartMinutes {
		t.Fatalf("NewClock().Minutes = %d, want %d", c.Minutes, StartMinutes)
	}

	c.Advance(30)
	if c.Minutes != StartMinutes+30 {
		t.Errorf("Minutes = %d, want %d", c.Minutes, StartMinutes+30)
	}

	// Zero and negative advances are no-ops.
	c.Advance(0)
	c.Advance(-90)
	if c.Minutes != StartMinutes+30 {
		t.Errorf("Minutes = %d after no-op advances, want %d", c.Minutes, StartMinutes+30)
	}

	c.AdvanceHours(2)
	if c.Minutes != StartMinutes+30+120 {
		t.Errorf("Minutes = %d, want %d", c.Minutes, StartMinutes+30+120)
	}
	c.AdvanceHours(-1)
	if c.Minutes != StartMinutes+30+120 {
		t.Error("negative AdvanceHours should be a no-op")
	}
}
