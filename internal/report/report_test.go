package report

import (
	"strings"
	"testing"

	"ddlint/internal/finding"
)

func sampleReport() *finding.Report {
	r := &finding.Report{Summary: finding.Summary{
		RunID:        "run-1",
		GeneratedAt:  "2026-03-02T10:00:00Z",
		Rows:         1200,
		Cols:         14,
		DictFields:   12,
		Completeness: 0.84,
	}}
	r.Append(
		finding.Finding{
			Type: finding.DomainMismatch, Severity: finding.SeverityError, Variable: "sex",
			Where:      map[string]string{"dataset_column": "sex"},
			Examples:   []string{"9"},
			Suggestion: "Observed values are outside the allowed codes; map them or revise the choice list.",
		},
		finding.Finding{
			Type: finding.RenameDrift, Severity: finding.SeverityWarn, Variable: "age",
			Where:      map[string]string{"dataset_column": "age_yrs"},
			Suggestion: "Column appears renamed in the dataset; align names or update the dictionary.",
		},
		finding.Finding{
			Type: finding.LongitudinalContextDetected, Severity: finding.SeverityInfo, Variable: "dataset",
			Suggestion: "Longitudinal context columns present; per-event sparsity is expected.",
		},
	)
	return r
}

func TestRenderSections(t *testing.T) {
	out := Render(sampleReport())

	for _, want := range []string{
		"# Dictionary Validation Report",
		"run run-1",
		"## Errors",
		"## Warnings",
		"## Info",
		"## Query Pack",
		"1.2K",
		"84.0%",
		"domain_mismatch",
		"age_yrs",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered report missing %q:\n%s", want, out)
		}
	}
}

func TestQueryPackSortedAndScoped(t *testing.T) {
	out := Render(sampleReport())
	pack := out[strings.Index(out, "## Query Pack"):]

	// Errors and warnings only, ordered by variable.
	ageIdx := strings.Index(pack, "**age**")
	sexIdx := strings.Index(pack, "**sex**")
	if ageIdx < 0 || sexIdx < 0 || ageIdx > sexIdx {
		t.Errorf("query pack ordering wrong:\n%s", pack)
	}
	if strings.Contains(pack, "longitudinal") {
		t.Errorf("info finding leaked into query pack:\n%s", pack)
	}
}

func TestRenderEmptyReport(t *testing.T) {
	r := &finding.Report{Summary: finding.Summary{Rows: 10, Cols: 2, DictFields: 2, Completeness: 1}}
	out := Render(r)

	if !strings.Contains(out, "None.") {
		t.Errorf("empty severities should render as None:\n%s", out)
	}
	if !strings.Contains(out, "Nothing to query") {
		t.Errorf("empty query pack should say so:\n%s", out)
	}
}
