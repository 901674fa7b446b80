package rules

import (
	"fmt"

	"ddlint/internal/config"
	"ddlint/internal/dataset"
	"ddlint/internal/dict"
	"ddlint/internal/finding"
)

// requiredMissingCheck flags required fields whose dataset column is blank
// in at least half the rows. Blank counts are exact, taken from the
// streaming pass rather than the sample.
type requiredMissingCheck struct{}

func (requiredMissingCheck) Name() string { return "required_missing" }

func (requiredMissingCheck) Evaluate(d *dict.Dictionary, ds *dataset.Dataset, cfg config.Config) []finding.Finding {
	if ds.Rows == 0 {
		return nil
	}
	pairs := renamePairs(d, ds, cfg)

	var out []finding.Finding
	for i := range d.Fields {
		f := &d.Fields[i]
		if !f.Required || f.Type == dict.TypeCheckbox || f.Type == dict.TypeDescriptive {
			continue
		}
		name := f.Variable
		if alt, ok := pairs[name]; ok {
			name = alt
		}
		col, ok := ds.Column(name)
		if !ok {
			continue
		}
		rate := col.BlankRate(ds.Rows)
		if rate < cfg.RequiredMissingThreshold {
			continue
		}
		out = append(out, finding.Finding{
			Type:         finding.RequiredFieldMissingRateHigh,
			Severity:     finding.SeverityError,
			Variable:     f.Variable,
			Where:        map[string]string{"dataset_column": name},
			Expected:     "required field populated",
			Observed:     map[string]any{"blank_rate": rate},
			Suggestion:   fmt.Sprintf("Required field is blank in %.0f%% of rows.", rate*100),
			RowsAffected: col.Blanks,
			Context:      &finding.Context{FormName: f.Form, FieldType: string(f.Type)},
		})
	}
	return out
}
