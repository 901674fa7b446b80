package rules

import (
	"regexp"

	"ddlint/internal/config"
	"ddlint/internal/dataset"
	"ddlint/internal/dict"
	"ddlint/internal/finding"
)

// phiLabelRe matches field labels that commonly describe protected
// identifiers.
var phiLabelRe = regexp.MustCompile(`(?i)\b(ssn|social security|mrn|medical record|date of birth|dob|phone|e-?mail|street|address|zip ?code|first name|last name|full name)\b`)

// identifierHintCheck surfaces fields whose label reads like a protected
// identifier while Column K leaves the identifier flag unset.
type identifierHintCheck struct{}

func (identifierHintCheck) Name() string { return "identifier_hint" }

func (identifierHintCheck) Evaluate(d *dict.Dictionary, _ *dataset.Dataset, _ config.Config) []finding.Finding {
	var out []finding.Finding
	for i := range d.Fields {
		f := &d.Fields[i]
		if f.Identifier || f.Type == dict.TypeDescriptive {
			continue
		}
		m := phiLabelRe.FindString(f.Label)
		if m == "" {
			continue
		}
		out = append(out, finding.Finding{
			Type:       finding.IdentifierFlagHint,
			Severity:   finding.SeverityInfo,
			Variable:   f.Variable,
			Where:      map[string]string{"dictionary_field": f.Variable},
			Observed:   map[string]any{"label_match": m},
			Suggestion: "Label suggests an identifier; consider setting the identifier flag.",
			Context:    &finding.Context{FormName: f.Form, FieldType: string(f.Type)},
		})
	}
	return out
}
