// Package config holds the immutable per-run configuration. A Config is
// built once (defaults, optionally overlaid from a YAML or JSON file) and
// threaded explicitly into every normalizer and check; there are no
// process-wide mutable settings.
package config

import (
	"runtime"
)

// PrevMode selects how the previous findings report is resolved for the
// since-last-run diff.
type PrevMode string

const (
	// PrevAuto walks the full precedence chain: explicit path, pointer
	// file, folder-name convention.
	PrevAuto PrevMode = "auto"
	// PrevExplicit only honors an explicitly given path.
	PrevExplicit PrevMode = "explicit"
	// PrevPointer only consults the .prev pointer file in the run folder.
	PrevPointer PrevMode = "pointer"
	// PrevFolder only tries the vN -> vN-1 folder-name convention.
	PrevFolder PrevMode = "folder"
	// PrevOff disables the since-last-run diff entirely.
	PrevOff PrevMode = "off"
)

// Config carries every tunable of a validation run.
type Config struct {
	// SampleCap bounds the number of values buffered per column for type
	// inference and heuristic checks. Row counting is always exact.
	SampleCap int `yaml:"sample_cap" json:"sample_cap"`

	// Parallel bounds concurrent check execution in the rule engine.
	Parallel int `yaml:"parallel" json:"parallel"`

	// NumericThreshold is the minimum parse-success ratio for a column
	// declared integer or number. DateThreshold is the equivalent for
	// date and datetime validations.
	NumericThreshold float64 `yaml:"numeric_threshold" json:"numeric_threshold"`
	DateThreshold    float64 `yaml:"date_threshold" json:"date_threshold"`

	// MissingnessThreshold flags columns whose blank rate meets it, once
	// the dataset has at least MissingnessMinRows rows.
	MissingnessThreshold float64 `yaml:"missingness_threshold" json:"missingness_threshold"`
	MissingnessMinRows   int     `yaml:"missingness_min_rows" json:"missingness_min_rows"`

	// RequiredMissingThreshold is the stricter blank-rate bound applied to
	// required fields only.
	RequiredMissingThreshold float64 `yaml:"required_missing_threshold" json:"required_missing_threshold"`

	// RenameSimilarity is the minimum similarity for a missing dictionary
	// variable to be paired with an unexplained dataset column.
	RenameSimilarity float64 `yaml:"rename_similarity" json:"rename_similarity"`

	// Unit-anomaly tuning: a numeric column needs at least UnitMinSample
	// parsed values; the small-value share must reach UnitSmallShare while
	// the large-value share holds UnitLargeShare.
	UnitMinSample  int     `yaml:"unit_min_sample" json:"unit_min_sample"`
	UnitSmallShare float64 `yaml:"unit_small_share" json:"unit_small_share"`
	UnitLargeShare float64 `yaml:"unit_large_share" json:"unit_large_share"`

	// Export-mode detection: at least ExportModeMinFields categorical
	// fields must be label-majority, each with a label-match rate of
	// ExportModeLabelRate or better.
	ExportModeMinFields int     `yaml:"export_mode_min_fields" json:"export_mode_min_fields"`
	ExportModeLabelRate float64 `yaml:"export_mode_label_rate" json:"export_mode_label_rate"`

	// Domain-mismatch normalization. When CaseSensitiveDomains is false,
	// allowed codes and observed values are case-folded before comparison;
	// TrimDomains additionally strips surrounding whitespace. Raw values
	// are always kept for examples.
	CaseSensitiveDomains bool `yaml:"case_sensitive_domains" json:"case_sensitive_domains"`
	TrimDomains          bool `yaml:"trim_domains" json:"trim_domains"`

	// Previous-run resolution.
	PrevPath string   `yaml:"prev_path" json:"prev_path"`
	PrevMode PrevMode `yaml:"prev_mode" json:"prev_mode"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		SampleCap:                50000,
		Parallel:                 runtime.NumCPU(),
		NumericThreshold:         0.99,
		DateThreshold:            0.95,
		MissingnessThreshold:     0.70,
		MissingnessMinRows:       50,
		RequiredMissingThreshold: 0.25,
		RenameSimilarity:         0.80,
		UnitMinSample:            20,
		UnitSmallShare:           0.05,
		UnitLargeShare:           0.50,
		ExportModeMinFields:      2,
		ExportModeLabelRate:      0.60,
		CaseSensitiveDomains:     false,
		TrimDomains:              true,
		PrevMode:                 PrevAuto,
	}
}
