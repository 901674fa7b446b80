package rules

import (
	"fmt"
	"strings"
	"testing"

	"ddlint/internal/config"
	"ddlint/internal/dict"
	"ddlint/internal/finding"
)

func TestUnitAnomaly(t *testing.T) {
	rows := []dict.Row{
		{"variable_name": "record_id", "form_name": "vitals", "field_type": "text", "field_label": "Record ID"},
		{"variable_name": "height_cm", "form_name": "vitals", "field_type": "text", "field_label": "Height",
			"field_note": "units=cm",
			"text_validation_type_or_show_slider_number": "number"},
	}
	d := mustDict(t, rows)

	var b strings.Builder
	b.WriteString("record_id,height_cm\n")
	for i := 0; i < 100; i++ {
		h := 160.0 + float64(i%30)
		if i < 10 { // inches subset
			h = 65.0 + float64(i%5)
		}
		fmt.Fprintf(&b, "%d,%.1f\n", i+1, h)
	}
	ds := mustDataset(t, b.String())

	got := unitAnomalyCheck{}.Evaluate(d, ds, config.Default())
	if len(got) != 1 {
		t.Fatalf("got %d findings, want 1: %+v", len(got), got)
	}
	f := got[0]
	if f.Variable != "height_cm" || f.Severity != finding.SeverityWarn {
		t.Errorf("finding = %+v", f)
	}
	if f.RowsAffected != 10 {
		t.Errorf("RowsAffected = %d, want 10", f.RowsAffected)
	}

	t.Run("uniform values pass", func(t *testing.T) {
		var c strings.Builder
		c.WriteString("record_id,height_cm\n")
		for i := 0; i < 100; i++ {
			fmt.Fprintf(&c, "%d,%.1f\n", i+1, 160.0+float64(i%30))
		}
		clean := mustDataset(t, c.String())
		if got := (unitAnomalyCheck{}).Evaluate(d, clean, config.Default()); len(got) != 0 {
			t.Errorf("got %+v, want none", got)
		}
	})

	t.Run("too few samples stays silent", func(t *testing.T) {
		small := mustDataset(t, "record_id,height_cm\n1,65\n2,170\n3,171\n")
		if got := (unitAnomalyCheck{}).Evaluate(d, small, config.Default()); len(got) != 0 {
			t.Errorf("got %+v, want none", got)
		}
	})
}

func TestRequiredMissingRate(t *testing.T) {
	rows := []dict.Row{
		{"variable_name": "record_id", "form_name": "demo", "field_type": "text", "field_label": "Record ID"},
		{"variable_name": "consent", "form_name": "demo", "field_type": "yesno", "field_label": "Consent",
			"required_field": "y"},
	}
	d := mustDict(t, rows)

	build := func(blankPer10 int) string {
		var b strings.Builder
		b.WriteString("record_id,consent\n")
		for i := 0; i < 100; i++ {
			v := "1"
			if i%10 < blankPer10 {
				v = ""
			}
			fmt.Fprintf(&b, "%d,%s\n", i+1, v)
		}
		return b.String()
	}

	// 30% blank meets the threshold.
	got := requiredMissingCheck{}.Evaluate(d, mustDataset(t, build(3)), config.Default())
	if len(got) != 1 {
		t.Fatalf("got %d findings, want 1: %+v", len(got), got)
	}
	if got[0].Type != finding.RequiredFieldMissingRateHigh || got[0].RowsAffected != 30 {
		t.Errorf("finding = %+v", got[0])
	}

	// 10% blank does not.
	if got := (requiredMissingCheck{}).Evaluate(d, mustDataset(t, build(1)), config.Default()); len(got) != 0 {
		t.Errorf("got %+v, want none", got)
	}
}

func TestMissingnessSpike(t *testing.T) {
	rows := []dict.Row{
		{"variable_name": "record_id", "form_name": "demo", "field_type": "text", "field_label": "Record ID"},
		{"variable_name": "notes", "form_name": "demo", "field_type": "text", "field_label": "Notes"},
		{"variable_name": "gated", "form_name": "demo", "field_type": "text", "field_label": "Gated",
			"branching_logic": "[notes] = 'x'"},
	}
	d := mustDict(t, rows)

	var b strings.Builder
	b.WriteString("record_id,notes,gated\n")
	for i := 0; i < 100; i++ {
		notes := ""
		if i < 20 {
			notes = "something"
		}
		fmt.Fprintf(&b, "%d,%s,\n", i+1, notes)
	}
	ds := mustDataset(t, b.String())

	got := missingnessSpikeCheck{}.Evaluate(d, ds, config.Default())
	if len(got) != 1 {
		t.Fatalf("got %d findings, want 1: %+v", len(got), got)
	}
	// gated is sparse too but branching logic explains it.
	if got[0].Variable != "notes" {
		t.Errorf("finding = %+v", got[0])
	}
	if got[0].RowsAffected != 80 {
		t.Errorf("RowsAffected = %d, want 80", got[0].RowsAffected)
	}

	t.Run("below minimum rows stays silent", func(t *testing.T) {
		small := mustDataset(t, "record_id,notes,gated\n1,,\n2,,\n")
		if got := (missingnessSpikeCheck{}).Evaluate(d, small, config.Default()); len(got) != 0 {
			t.Errorf("got %+v, want none", got)
		}
	})
}

func TestIdentifierHint(t *testing.T) {
	rows := []dict.Row{
		{"variable_name": "record_id", "form_name": "demo", "field_type": "text", "field_label": "Record ID"},
		{"variable_name": "contact", "form_name": "demo", "field_type": "text", "field_label": "Phone number"},
		{"variable_name": "flagged", "form_name": "demo", "field_type": "text", "field_label": "Email address",
			"identifier": "y"},
	}
	d := mustDict(t, rows)
	ds := mustDataset(t, "record_id,contact,flagged\n1,,\n")

	got := identifierHintCheck{}.Evaluate(d, ds, config.Default())
	if len(got) != 1 {
		t.Fatalf("got %d findings, want 1: %+v", len(got), got)
	}
	if got[0].Variable != "contact" || got[0].Severity != finding.SeverityInfo {
		t.Errorf("finding = %+v", got[0])
	}
}

func TestSimilarity(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"age", "age", 1},
		{"", "", 1},
		{"age", "", 0},
		{"height_cm", "height_in", 1 - 2.0/9},
	}
	for _, tc := range cases {
		if got := Similarity(tc.a, tc.b); got != tc.want {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestNormalizeToken(t *testing.T) {
	cfg := config.Default()
	if got := normalizeToken("  Male ", cfg); got != "male" {
		t.Errorf("got %q, want %q", got, "male")
	}

	cfg.CaseSensitiveDomains = true
	cfg.TrimDomains = false
	if got := normalizeToken("  Male ", cfg); got != "  Male " {
		t.Errorf("got %q, want raw value preserved", got)
	}
}
