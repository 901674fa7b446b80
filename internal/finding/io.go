package finding

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile atomically writes the report as findings.json: the payload is
// marshalled and written to a temp file in the destination directory, then
// renamed into place. Nothing partially-written is ever visible at path.
func WriteFile(path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("finding: marshal report: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("finding: create dir %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".findings-*.json")
	if err != nil {
		return fmt.Errorf("finding: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("finding: write %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("finding: close %q: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("finding: rename to %q: %w", path, err)
	}
	return nil
}

// ReadFile loads a findings file. Both accepted shapes are handled: the
// full {"summary": ..., "findings": [...]} object and a bare finding array
// (which yields a report with a zero summary).
func ReadFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("finding: read %q: %w", path, err)
	}
	return Decode(data)
}

// Decode parses findings JSON in either accepted shape.
func Decode(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err == nil && (r.Findings != nil || r.Summary.Rows > 0 || r.Summary.DictFields > 0) {
		return &r, nil
	}
	var bare []Finding
	if err := json.Unmarshal(data, &bare); err == nil {
		return &Report{Findings: bare}, nil
	}
	// Retry the object shape to surface its error when both fail.
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("finding: decode report: %w", err)
	}
	return &r, nil
}
