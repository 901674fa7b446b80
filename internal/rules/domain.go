package rules

import (
	"sort"

	"ddlint/internal/config"
	"ddlint/internal/dataset"
	"ddlint/internal/dict"
	"ddlint/internal/finding"
)

// domainMismatchCheck compares observed categorical values against the
// normalized allowed-choice set. Normalization (trim, case folding) is
// config-driven; examples always show the raw spelling.
type domainMismatchCheck struct{}

func (domainMismatchCheck) Name() string { return "domain_mismatch" }

func (domainMismatchCheck) Evaluate(d *dict.Dictionary, ds *dataset.Dataset, cfg config.Config) []finding.Finding {
	var out []finding.Finding
	for i := range d.Fields {
		f := &d.Fields[i]
		if !f.Type.Categorical() || len(f.Choices) == 0 {
			continue
		}
		col, ok := ds.Column(f.Variable)
		if !ok {
			continue
		}

		allowed := make(map[string]bool, len(f.Choices))
		for _, c := range f.Choices {
			allowed[normalizeToken(c.Code, cfg)] = true
		}

		// normalized unexpected token -> first raw representative
		unexpected := make(map[string]string)
		affected := 0
		for _, raw := range col.Sample() {
			key := normalizeToken(raw, cfg)
			if key == "" || allowed[key] {
				continue
			}
			if _, seen := unexpected[key]; !seen {
				unexpected[key] = raw
			}
			affected++
		}
		if len(unexpected) == 0 {
			continue
		}

		raws := make([]string, 0, len(unexpected))
		for _, raw := range unexpected {
			raws = append(raws, raw)
		}
		sort.Strings(raws)

		fd := finding.Finding{
			Type:     finding.DomainMismatch,
			Severity: finding.SeverityError,
			Variable: f.Variable,
			Where:    map[string]string{"dataset_column": f.Variable},
			Expected: f.ChoicePairs(),
			Observed: map[string]any{"unexpected_values": raws},
			RowsAffected: ds.SampleScale(affected),
			Suggestion:   "Observed values are outside the allowed codes; map them or revise the choice list.",
			Context:      &finding.Context{FormName: f.Form, FieldType: string(f.Type)},
		}
		for _, raw := range raws {
			fd.AddExample(raw)
		}
		out = append(out, fd)
	}
	return out
}
