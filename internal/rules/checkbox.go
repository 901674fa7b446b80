package rules

import (
	"sort"

	"ddlint/internal/config"
	"ddlint/internal/dataset"
	"ddlint/internal/dict"
	"ddlint/internal/finding"
)

// checkboxExpansionCheck verifies that each checkbox field's var___code
// columns match the dictionary's code set exactly.
type checkboxExpansionCheck struct{}

func (checkboxExpansionCheck) Name() string { return "checkbox_expansion" }

func (checkboxExpansionCheck) Evaluate(d *dict.Dictionary, ds *dataset.Dataset, _ config.Config) []finding.Finding {
	observed := make(map[string][]string)
	for _, g := range ds.CheckboxGroups() {
		observed[g.Variable] = g.Codes
	}

	var out []finding.Finding
	for i := range d.Fields {
		f := &d.Fields[i]
		if f.Type != dict.TypeCheckbox {
			continue
		}
		expected := make(map[string]bool, len(f.Choices))
		for _, c := range f.Choices {
			expected[c.Code] = true
		}

		var added, missing []string
		seen := make(map[string]bool)
		for _, code := range observed[f.Variable] {
			seen[code] = true
			if !expected[code] {
				added = append(added, f.Variable+"___"+code)
			}
		}
		for _, c := range f.Choices {
			if !seen[c.Code] {
				missing = append(missing, f.Variable+"___"+c.Code)
			}
		}
		if len(added) == 0 && len(missing) == 0 {
			continue
		}
		sort.Strings(added)
		sort.Strings(missing)

		obs := make(map[string]any)
		if len(added) > 0 {
			obs["observed_added"] = added
		}
		if len(missing) > 0 {
			obs["expected_missing"] = missing
		}
		out = append(out, finding.Finding{
			Type:       finding.CheckboxExpansionMismatch,
			Severity:   finding.SeverityError,
			Variable:   f.Variable,
			Where:      map[string]string{"dataset_column": f.Variable},
			Observed:   obs,
			Suggestion: "Checkbox columns do not match the dictionary's code set; align the export with Column F.",
			Context:    &finding.Context{FormName: f.Form, FieldType: string(f.Type)},
		})
	}
	return out
}
