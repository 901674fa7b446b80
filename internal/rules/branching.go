package rules

import (
	"fmt"
	"strings"

	"ddlint/internal/config"
	"ddlint/internal/dataset"
	"ddlint/internal/dict"
	"ddlint/internal/finding"
)

// branchingCheck flags fields that carry data in rows where their branching
// condition evaluates false. Only single-comparison expressions are
// evaluated; anything more elaborate degrades to silence.
type branchingCheck struct{}

func (branchingCheck) Name() string { return "branching" }

func (branchingCheck) Evaluate(d *dict.Dictionary, ds *dataset.Dataset, _ config.Config) []finding.Finding {
	var out []finding.Finding
	for i := range d.Fields {
		f := &d.Fields[i]
		if f.Branching == "" || f.Type == dict.TypeCheckbox {
			continue
		}
		cond, err := dict.ParseCondition(f.Branching)
		if err != nil {
			continue
		}
		condCol, okCond := ds.Column(cond.Column())
		fieldCol, okField := ds.Column(f.Variable)
		if !okCond || !okField {
			continue
		}
		condVals := condCol.Sample()
		fieldVals := fieldCol.Sample()
		n := len(condVals)
		if len(fieldVals) < n {
			n = len(fieldVals)
		}
		violated := 0
		var examples []string
		for r := 0; r < n; r++ {
			// Blank means trimmed-blank, same as the load pass counts it.
			if strings.TrimSpace(fieldVals[r]) == "" || cond.Holds(condVals[r]) {
				continue
			}
			violated++
			examples = append(examples, fieldVals[r])
		}
		if violated == 0 {
			continue
		}
		out = append(out, finding.Finding{
			Type:         finding.BranchingMismatch,
			Severity:     finding.SeverityWarn,
			Variable:     f.Variable,
			Where:        map[string]string{"dataset_column": f.Variable},
			Expected:     fmt.Sprintf("blank unless %s", f.Branching),
			Observed:     map[string]any{"rows_with_value": ds.SampleScale(violated)},
			Examples:     finding.ClampExamples(examples),
			Suggestion:   "Values present where the branching condition is false. Verify skip logic in the export.",
			RowsAffected: ds.SampleScale(violated),
			Context:      &finding.Context{FormName: f.Form, FieldType: string(f.Type)},
		})
	}
	return out
}
