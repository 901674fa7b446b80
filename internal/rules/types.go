package rules

import (
	"ddlint/internal/config"
	"ddlint/internal/dataset"
	"ddlint/internal/dict"
	"ddlint/internal/finding"
)

// typeMismatchCheck verifies that columns with a declared numeric or
// temporal validation actually parse, within the configured success
// thresholds. Rename-paired columns are checked under their dataset name.
type typeMismatchCheck struct{}

func (typeMismatchCheck) Name() string { return "type_mismatch" }

func (typeMismatchCheck) Evaluate(d *dict.Dictionary, ds *dataset.Dataset, cfg config.Config) []finding.Finding {
	renamed := renamePairs(d, ds, cfg)
	var out []finding.Finding
	for i := range d.Fields {
		f := &d.Fields[i]
		if !f.Validation.Numeric() && !f.Validation.Temporal() {
			continue
		}
		colName := f.Variable
		if !ds.Has(colName) {
			var ok bool
			if colName, ok = renamed[f.Variable]; !ok {
				continue
			}
		}
		col, ok := ds.Column(colName)
		if !ok {
			continue
		}
		values := col.NonBlank()
		if len(values) == 0 {
			continue
		}

		threshold := cfg.NumericThreshold
		if f.Validation.Temporal() {
			threshold = cfg.DateThreshold
		}
		ratio, failing := dataset.SuccessRatio(values, func(v string) bool {
			return dataset.MatchesValidation(v, f.Validation)
		})
		if ratio >= threshold {
			continue
		}

		expected, observed := describeTypeMismatch(f.Validation, failing)
		fd := finding.Finding{
			Type:         finding.TypeMismatch,
			Severity:     finding.SeverityError,
			Variable:     f.Variable,
			Where:        map[string]string{"dataset_column": colName},
			Expected:     expected,
			Observed:     observed,
			RowsAffected: ds.SampleScale(len(failing)),
			Suggestion:   "Values do not parse as the declared validation type; change the validation or recode the data.",
			Context:      &finding.Context{FormName: f.Form, FieldType: string(f.Type)},
		}
		for _, v := range failing {
			fd.AddExample(v)
		}
		out = append(out, fd)
	}
	return out
}

// describeTypeMismatch names the expected/observed kinds the way gold
// records spell them: numeric validations collapse to "numeric", temporal
// ones keep their validation name with the dominant observed date shape.
func describeTypeMismatch(val dict.Validation, failing []string) (string, string) {
	if val.Numeric() {
		return "numeric", "string"
	}
	observed := "string"
	for _, v := range failing {
		if kind := dataset.GuessDateFormat(v); kind != "string" && kind != string(val) {
			observed = kind
			break
		}
	}
	return string(val), observed
}
