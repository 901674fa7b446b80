package rules

import (
	"ddlint/internal/config"
	"ddlint/internal/dataset"
	"ddlint/internal/dict"
	"ddlint/internal/finding"
)

// missingColumnsCheck reports dictionary fields (and checkbox expansions)
// absent from the dataset. Fields explained by a rename pairing are left to
// the rename_drift check instead.
type missingColumnsCheck struct{}

func (missingColumnsCheck) Name() string { return "missing_columns" }

func (missingColumnsCheck) Evaluate(d *dict.Dictionary, ds *dataset.Dataset, cfg config.Config) []finding.Finding {
	renamed := renamePairs(d, ds, cfg)
	var out []finding.Finding
	for i := range d.Fields {
		f := &d.Fields[i]
		ctx := &finding.Context{FormName: f.Form, FieldType: string(f.Type)}
		switch {
		case f.Type == dict.TypeCheckbox:
			for _, col := range f.CheckboxColumns() {
				if !ds.Has(col) {
					out = append(out, finding.Finding{
						Type:       finding.MissingColumnInData,
						Severity:   finding.SeverityError,
						Variable:   col,
						Where:      map[string]string{"dataset_column": col},
						Suggestion: "Checkbox expansion column defined by the dictionary is missing from the export.",
						Context:    ctx,
					})
				}
			}
		default:
			if _, isRenamed := renamed[f.Variable]; !ds.Has(f.Variable) && !isRenamed {
				out = append(out, finding.Finding{
					Type:       finding.MissingColumnInData,
					Severity:   finding.SeverityError,
					Variable:   f.Variable,
					Where:      map[string]string{"dataset_column": f.Variable},
					Suggestion: "Defined in the dictionary but missing from the dataset; add it to the export or retire the field.",
					Context:    ctx,
				})
			}
		}
	}
	return out
}

// extraColumnsCheck reports dataset columns the dictionary cannot explain.
type extraColumnsCheck struct{}

func (extraColumnsCheck) Name() string { return "extra_columns" }

func (extraColumnsCheck) Evaluate(d *dict.Dictionary, ds *dataset.Dataset, cfg config.Config) []finding.Finding {
	renamed := renamePairs(d, ds, cfg)
	renameTargets := make(map[string]bool, len(renamed))
	for _, col := range renamed {
		renameTargets[col] = true
	}
	checkboxBases := make(map[string]bool)
	for i := range d.Fields {
		if d.Fields[i].Type == dict.TypeCheckbox {
			checkboxBases[d.Fields[i].Variable] = true
		}
	}

	var out []finding.Finding
	for _, col := range ds.Columns {
		if d.Has(col) || isSystemColumn(col, d) || renameTargets[col] {
			continue
		}
		// Checkbox-style columns of known checkbox fields belong to the
		// expansion check, including unexpected codes.
		if base, _, ok := cutCheckbox(col); ok && checkboxBases[base] {
			continue
		}
		out = append(out, finding.Finding{
			Type:       finding.ExtraColumnInData,
			Severity:   finding.SeverityWarn,
			Variable:   col,
			Where:      map[string]string{"dataset_column": col},
			Suggestion: "Present in the dataset but not in the dictionary; add it to the dictionary or exclude it from analysis.",
		})
	}
	return out
}
