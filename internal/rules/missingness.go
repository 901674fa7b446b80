package rules

import (
	"fmt"

	"ddlint/internal/config"
	"ddlint/internal/dataset"
	"ddlint/internal/dict"
	"ddlint/internal/finding"
)

// missingnessSpikeCheck warns about non-required fields that are almost
// entirely blank. Fields hidden behind branching logic are expected to be
// sparse, so those are skipped.
type missingnessSpikeCheck struct{}

func (missingnessSpikeCheck) Name() string { return "missingness_spike" }

func (missingnessSpikeCheck) Evaluate(d *dict.Dictionary, ds *dataset.Dataset, cfg config.Config) []finding.Finding {
	if ds.Rows < cfg.MissingnessMinRows {
		return nil
	}
	pairs := renamePairs(d, ds, cfg)

	var out []finding.Finding
	for i := range d.Fields {
		f := &d.Fields[i]
		if f.Required || f.Branching != "" {
			continue
		}
		if f.Type == dict.TypeCheckbox || f.Type == dict.TypeDescriptive || f.Type == dict.TypeCalc {
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
		if rate < cfg.MissingnessThreshold {
			continue
		}
		out = append(out, finding.Finding{
			Type:         finding.MissingnessSpike,
			Severity:     finding.SeverityWarn,
			Variable:     f.Variable,
			Where:        map[string]string{"dataset_column": name},
			Observed:     map[string]any{"blank_rate": rate},
			Suggestion:   fmt.Sprintf("Field is blank in %.0f%% of rows with no branching logic to explain it.", rate*100),
			RowsAffected: col.Blanks,
			Context:      &finding.Context{FormName: f.Form, FieldType: string(f.Type)},
		})
	}
	return out
}
