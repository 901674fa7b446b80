package finding

// Summary describes the validated project shape. The dictionary-derived
// maps (choices, validations, required flags) and the column list exist so
// a later run can diff itself against this report without re-reading the
// old inputs.
type Summary struct {
	RunID       string `json:"run_id,omitempty"`
	GeneratedAt string `json:"generated_at,omitempty"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	DictFields  int    `json:"dict_fields"`

	// Completeness is the mean populated-metadata fraction across
	// dictionary fields, in [0,1].
	Completeness float64 `json:"completeness"`

	DatasetColumns  []string            `json:"dataset_columns,omitempty"`
	DictFieldNames  []string            `json:"dict_field_names,omitempty"`
	DictChoices     map[string][]string `json:"dict_choices,omitempty"`
	DictValidations map[string]string   `json:"dict_validations,omitempty"`
	DictRequired    map[string]bool     `json:"dict_required,omitempty"`
}

// Report is the write-once product of a validation run: a summary plus the
// ordered finding sequence.
type Report struct {
	Summary  Summary   `json:"summary"`
	Findings []Finding `json:"findings"`
}

// Append adds findings to the report, assigning stable monotonically
// increasing IDs in arrival order.
func (r *Report) Append(fs ...Finding) {
	for _, f := range fs {
		f.ID = len(r.Findings) + 1
		f.Examples = ClampExamples(f.Examples)
		r.Findings = append(r.Findings, f)
	}
}

// Counts returns the number of findings per severity.
func (r *Report) Counts() (errors, warns, infos int) {
	for _, f := range r.Findings {
		switch f.Severity {
		case SeverityError:
			errors++
		case SeverityWarn:
			warns++
		case SeverityInfo:
			infos++
		}
	}
	return
}

// HasErrors reports whether any error-severity finding is present.
func (r *Report) HasErrors() bool {
	e, _, _ := r.Counts()
	return e > 0
}

// ByType returns the findings of the given type, preserving report order.
func (r *Report) ByType(t Type) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Type == t {
			out = append(out, f)
		}
	}
	return out
}
