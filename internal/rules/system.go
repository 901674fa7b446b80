package rules

import (
	"strings"

	"ddlint/internal/dict"
)

// Longitudinal/repeating-instrument columns added by the export tool rather
// than the dictionary.
const (
	colEventName        = "redcap_event_name"
	colRepeatInstrument = "redcap_repeat_instrument"
	colRepeatInstance   = "redcap_repeat_instance"
)

// cutCheckbox splits a var___code dataset column name.
func cutCheckbox(col string) (base, code string, ok bool) {
	base, code, ok = strings.Cut(col, "___")
	if !ok || base == "" || code == "" {
		return "", "", false
	}
	return base, code, true
}

// isSystemColumn reports whether a dataset column is an export artifact
// rather than a dictionary field: redcap_* bookkeeping columns and the
// per-form <form>_complete status columns.
func isSystemColumn(col string, d *dict.Dictionary) bool {
	if strings.HasPrefix(col, "redcap_") {
		return true
	}
	if base, ok := strings.CutSuffix(col, "_complete"); ok {
		for _, form := range d.Forms() {
			if base == form {
				return true
			}
		}
	}
	return false
}
