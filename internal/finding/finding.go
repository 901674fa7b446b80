// Package finding defines the structured discrepancy model shared by the
// rule engine, the since-last-run differ, and the scoring engine.
package finding

// Severity classifies a finding. Errors gate "clean" runs, warnings are
// advisory, info findings carry change or context signals and never gate.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
	SeverityInfo  Severity = "info"
)

// Type is the closed set of check kinds a finding can carry.
type Type string

const (
	DictionaryMalformed          Type = "dictionary_malformed"
	MissingColumnInData          Type = "missing_column_in_data"
	ExtraColumnInData            Type = "extra_column_in_data"
	TypeMismatch                 Type = "type_mismatch"
	DomainMismatch               Type = "domain_mismatch"
	CheckboxExpansionMismatch    Type = "checkbox_expansion_mismatch"
	MissingPrimaryKeyColumn      Type = "missing_primary_key_column"
	DuplicatePrimaryKeyValues    Type = "duplicate_primary_key_values"
	RequiredFieldMissingRateHigh Type = "required_field_missing_rate_high"
	MissingnessSpike             Type = "missingness_spike"
	UnitAnomaly                  Type = "unit_anomaly"
	BranchingMismatch            Type = "branching_mismatch"
	MatrixNonconsecutive         Type = "matrix_nonconsecutive"
	RenameDrift                  Type = "rename_drift"
	IdentifierFlagHint           Type = "identifier_flag_hint"
	ExportModeLabelsDetected     Type = "export_mode_labels_detected"
	LongitudinalContextDetected  Type = "longitudinal_context_detected"

	// Since-last-run diff findings. Always info severity.
	ExtraColumnSinceLastRun       Type = "extra_column_since_last_run"
	MissingColumnSinceLastRun     Type = "missing_column_since_last_run"
	DomainMismatchSinceLastRun    Type = "domain_mismatch_since_last_run"
	ValidationChangedSinceLastRun Type = "validation_changed_since_last_run"
	RequiredFlagChanged           Type = "required_flag_changed"
)

// MaxExamples caps the raw example values carried by a finding.
const MaxExamples = 5

// Context situates a finding in the dictionary.
type Context struct {
	FormName  string `json:"form_name,omitempty"`
	FieldType string `json:"field_type,omitempty"`
}

// Finding is one reported discrepancy or observation. Severity is set by
// the producing check at construction and never rewritten afterwards.
type Finding struct {
	ID           int               `json:"id"`
	Type         Type              `json:"type"`
	Severity     Severity          `json:"severity"`
	Variable     string            `json:"variable"`
	Where        map[string]string `json:"where,omitempty"`
	Expected     any               `json:"expected,omitempty"`
	Observed     any               `json:"observed,omitempty"`
	Examples     []string          `json:"examples,omitempty"`
	Suggestion   string            `json:"suggestion,omitempty"`
	RowsAffected int               `json:"rows_affected,omitempty"`
	Context      *Context          `json:"context,omitempty"`
}

// AddExample appends a raw example value, silently dropping anything past
// MaxExamples.
func (f *Finding) AddExample(v string) {
	if len(f.Examples) < MaxExamples {
		f.Examples = append(f.Examples, v)
	}
}

// ClampExamples enforces the MaxExamples invariant on an already-built
// example list.
func ClampExamples(examples []string) []string {
	if len(examples) > MaxExamples {
		return examples[:MaxExamples]
	}
	return examples
}
