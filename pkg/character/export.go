package character

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ExportFilename returns the download name for a sheet export,
// "<NameWithoutSpaces>_sheet.json".
func ExportFilename(s *Sheet) string {
	name := strings.ReplaceAll(s.Name, " ", "")
	if name == "" {
		name = "character"
	}
	return name + "_sheet.json"
}

// ExportJSON serializes the sheet for download. Field names are part of
// the save-file contract.
func ExportJSON(s *Sheet) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal character sheet: %w", err)
	}
	return data, nil
}

// ExportFile writes the sheet to dir using the standard export name and
// returns the path written.
func ExportFile(s *Sheet, dir string) (string, error) {
	data, err := ExportJSON(s)
	if err != nil {
		return "", err
	}

	path := dir + string(os.PathSeparator) + ExportFilename(s)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write character sheet: %w", err)
	}
	return path, nil
}

// LoadSheet reads a previously exported sheet.
func LoadSheet(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read character sheet: %w", err)
	}

	var s Sheet
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character sheet: %w", err)
	}
	return &s, nil
}
