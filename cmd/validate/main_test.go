package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/endless-dnd/pkg/character"
)

func exportedSheet(t *testing.T) string {
	t.Helper()
	sheet, err := character.Finalize(&character.Draft{
		Name:  "Validated Hero",
		Race:  "Elf",
		Class: "Rogue",
		Base: map[string]int{
			"Strength": 8, "Dexterity": 15, "Constitution": 12,
			"Intelligence": 13, "Wisdom": 10, "Charisma": 12,
		},
		Skills: []string{"Stealth", "Perception"},
	})
	require.NoError(t, err)

	path, err := character.ExportFile(sheet, t.TempDir())
	require.NoError(t, err)
	return path
}

func TestValidateExportedSheet(t *testing.T) {
	v := &SheetValidator{}
	assert.NoError(t, v.validateFile(exportedSheet(t)))
}

func TestValidateRejectsUnknownFields(t *testing.T) {
	path := exportedSheet(t)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	drifted := append(data[:len(data)-2], []byte(",\n  \"alignment\": \"CG\"\n}")...)
	driftedPath := filepath.Join(t.TempDir(), "drifted_sheet.json")
	require.NoError(t, os.WriteFile(driftedPath, drifted, 0644))

	v := &SheetValidator{}
	err = v.validateFile(driftedPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict JSON")
}

func TestValidateRejectsBadVitals(t *testing.T) {
	sheet, err := character.Finalize(&character.Draft{
		Name:  "Validated Hero",
		Race:  "Elf",
		Class: "Rogue",
		Base: map[string]int{
			"Strength": 8, "Dexterity": 15, "Constitution": 12,
			"Intelligence": 13, "Wisdom": 10, "Charisma": 12,
		},
		Skills: []string{"Stealth"},
	})
	require.NoError(t, err)
	sheet.MaxHP = 40

	path, err := character.ExportFile(sheet, t.TempDir())
	require.NoError(t, err)

	v := &SheetValidator{}
	err = v.validateFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match a level 1 Rogue")
}
