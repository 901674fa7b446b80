package rules

import (
	"strings"

	"github.com/spf13/cast"

	"ddlint/internal/config"
	"ddlint/internal/dataset"
	"ddlint/internal/dict"
	"ddlint/internal/finding"
)

// unitSplit separates "small" from "large" numeric values when testing for
// a unit-conversion sub-population, e.g. heights recorded in inches inside
// a centimetre column.
const unitSplit = 100.0

// unitAnomalyCheck inspects numeric columns whose field note declares a
// unit ("units=cm") and warns when a sub-population sits in a range
// consistent with a known conversion offset.
type unitAnomalyCheck struct{}

func (unitAnomalyCheck) Name() string { return "unit_anomaly" }

func (unitAnomalyCheck) Evaluate(d *dict.Dictionary, ds *dataset.Dataset, cfg config.Config) []finding.Finding {
	var out []finding.Finding
	for i := range d.Fields {
		f := &d.Fields[i]
		unit := noteUnit(f.Note)
		if unit == "" {
			continue
		}
		col, ok := ds.Column(f.Variable)
		if !ok {
			continue
		}
		var nums []float64
		for _, v := range col.NonBlank() {
			if n, err := cast.ToFloat64E(v); err == nil {
				nums = append(nums, n)
			}
		}
		if len(nums) < cfg.UnitMinSample {
			continue
		}
		small, large := 0, 0
		for _, n := range nums {
			if n < unitSplit {
				small++
			} else {
				large++
			}
		}
		total := float64(len(nums))
		if unit != "cm" || float64(small)/total < cfg.UnitSmallShare || float64(large)/total < cfg.UnitLargeShare {
			continue
		}
		out = append(out, finding.Finding{
			Type:         finding.UnitAnomaly,
			Severity:     finding.SeverityWarn,
			Variable:     f.Variable,
			Where:        map[string]string{"dataset_column": f.Variable},
			Expected:     map[string]any{"unit": unit},
			Observed:     map[string]any{"note": "subset appears inches"},
			Suggestion:   "Numeric values suggest an alternate unit for a subset. Confirm units or recode.",
			RowsAffected: ds.SampleScale(small),
			Context:      &finding.Context{FormName: f.Form, FieldType: string(f.Type)},
		})
	}
	return out
}

// noteUnit extracts the declared unit from a field note, e.g.
// "units=cm" yields "cm". Empty when the note declares none.
func noteUnit(note string) string {
	low := strings.ToLower(note)
	_, rest, ok := strings.Cut(low, "units=")
	if !ok {
		return ""
	}
	if fields := strings.Fields(rest); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
