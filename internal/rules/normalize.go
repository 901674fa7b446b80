package rules

import (
	"strings"

	"golang.org/x/text/cases"

	"ddlint/internal/config"
)

var foldCaser = cases.Fold()

// normalizeToken applies the configured domain normalization: trim and/or
// Unicode case folding. Raw values are kept separately for examples.
func normalizeToken(v string, cfg config.Config) string {
	if cfg.TrimDomains {
		v = strings.TrimSpace(v)
	}
	if !cfg.CaseSensitiveDomains {
		v = foldCaser.String(v)
	}
	return v
}

// normalizeSet folds a value list into normalized-token -> first raw
// representative, preserving the raw spelling that evidence should show.
func normalizeSet(values []string, cfg config.Config) map[string]string {
	out := make(map[string]string, len(values))
	for _, v := range values {
		key := normalizeToken(v, cfg)
		if _, seen := out[key]; !seen {
			out[key] = v
		}
	}
	return out
}
