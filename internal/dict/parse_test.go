package dict

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ddlint/internal/finding"
)

func row(kv ...string) Row {
	r := make(Row)
	for i := 0; i+1 < len(kv); i += 2 {
		r[kv[i]] = kv[i+1]
	}
	return r
}

func TestParse_ChoicesSplitOnPipeThenFirstComma(t *testing.T) {
	d, malformed := Parse([]Row{
		row("variable_name", "sex", "form_name", "enrollment", "field_type", "radio",
			"field_label", "Sex at birth",
			"choices_calculations_or_slider_labels", "0, Male | 1, Female, or intersex"),
	})
	if len(malformed) != 0 {
		t.Fatalf("unexpected malformed findings: %+v", malformed)
	}
	f, ok := d.Field("sex")
	if !ok {
		t.Fatal("sex not parsed")
	}
	want := []Choice{
		{Code: "0", Label: "Male"},
		{Code: "1", Label: "Female, or intersex"},
	}
	if diff := cmp.Diff(want, f.Choices); diff != "" {
		t.Errorf("choices mismatch:\n%s", diff)
	}
}

func TestParse_YesNoSynthesizesImplicitChoices(t *testing.T) {
	d, _ := Parse([]Row{
		row("variable_name", "pregnant", "form_name", "enrollment", "field_type", "yesno",
			"field_label", "Currently pregnant?"),
		row("variable_name", "consented", "form_name", "enrollment", "field_type", "truefalse",
			"field_label", "Consented"),
	})
	p, _ := d.Field("pregnant")
	if diff := cmp.Diff([]Choice{{"0", "No"}, {"1", "Yes"}}, p.Choices); diff != "" {
		t.Errorf("yesno choices:\n%s", diff)
	}
	c, _ := d.Field("consented")
	if diff := cmp.Diff([]Choice{{"0", "False"}, {"1", "True"}}, c.Choices); diff != "" {
		t.Errorf("truefalse choices:\n%s", diff)
	}
}

func TestParse_CodesNeverCoerced(t *testing.T) {
	d, _ := Parse([]Row{
		row("variable_name", "grade", "form_name", "f", "field_type", "dropdown",
			"field_label", "Grade",
			"choices_calculations_or_slider_labels", "01, One | 2.0, Two | A, Letter"),
	})
	f, _ := d.Field("grade")
	got := []string{f.Choices[0].Code, f.Choices[1].Code, f.Choices[2].Code}
	if diff := cmp.Diff([]string{"01", "2.0", "A"}, got); diff != "" {
		t.Errorf("codes mismatch:\n%s", diff)
	}
}

func TestParse_MalformedRowsExcludedNotFatal(t *testing.T) {
	d, malformed := Parse([]Row{
		row("variable_name", "age", "form_name", "f", "field_type", "text", "field_label", "Age"),
		row("variable_name", "", "form_name", "f", "field_type", "text", "field_label", "No name"),
		row("variable_name", "no_label", "form_name", "f", "field_type", "text"),
		row("variable_name", "9bad", "form_name", "f", "field_type", "text", "field_label", "Bad name"),
		row("variable_name", "age", "form_name", "f", "field_type", "text", "field_label", "Duplicate"),
		row("variable_name", "weird", "form_name", "f", "field_type", "holograph", "field_label", "Weird"),
	})
	if len(d.Fields) != 1 || d.Fields[0].Variable != "age" {
		t.Errorf("expected only age to survive, got %v", d.Variables())
	}
	if len(malformed) != 5 {
		t.Fatalf("expected 5 malformed findings, got %d", len(malformed))
	}
	for _, m := range malformed {
		if m.Type != finding.DictionaryMalformed || m.Severity != finding.SeverityError {
			t.Errorf("unexpected finding %+v", m)
		}
	}
}

func TestRead_HeaderMapping(t *testing.T) {
	csvData := strings.Join([]string{
		strings.Join(Headers, ","),
		`record_id,enrollment,Demographics,text,Record ID,,,integer,,,y,,y,,,,,`,
		`sex,enrollment,,radio,Sex at birth,"0, Male | 1, Female",,,,,,,y,,,,,`,
	}, "\n")
	d, malformed, err := Read(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(malformed) != 0 {
		t.Fatalf("unexpected malformed: %+v", malformed)
	}
	if got := d.Variables(); !cmp.Equal(got, []string{"record_id", "sex"}) {
		t.Errorf("variables = %v", got)
	}
	rec, _ := d.Field("record_id")
	if rec.Validation != ValidationInteger || !rec.Identifier || !rec.Required {
		t.Errorf("record_id parsed wrong: %+v", rec)
	}
}

func TestPrimaryKey(t *testing.T) {
	d, _ := Parse([]Row{
		row("variable_name", "subject", "form_name", "f", "field_type", "text", "field_label", "Subject"),
	})
	if pk := d.PrimaryKey(); pk != "subject" {
		t.Errorf("PrimaryKey = %q, want subject (first field fallback)", pk)
	}

	d2, _ := Parse([]Row{
		row("variable_name", "subject", "form_name", "f", "field_type", "text", "field_label", "Subject"),
		row("variable_name", "record_id", "form_name", "f", "field_type", "text", "field_label", "Record ID"),
	})
	if pk := d2.PrimaryKey(); pk != "record_id" {
		t.Errorf("PrimaryKey = %q, want record_id", pk)
	}
}

func TestMatrixGroups_OrderPreserved(t *testing.T) {
	d, _ := Parse([]Row{
		row("variable_name", "a1", "form_name", "f", "field_type", "radio", "field_label", "A1",
			"choices_calculations_or_slider_labels", "0,No|1,Yes", "matrix_group_name", "adls"),
		row("variable_name", "x", "form_name", "f", "field_type", "text", "field_label", "X"),
		row("variable_name", "a2", "form_name", "f", "field_type", "radio", "field_label", "A2",
			"choices_calculations_or_slider_labels", "0,No|1,Yes", "matrix_group_name", "adls"),
	})
	groups := d.MatrixGroups()
	if diff := cmp.Diff([]string{"a1", "a2"}, groups["adls"]); diff != "" {
		t.Errorf("group members:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"adls"}, d.MatrixGroupNames()); diff != "" {
		t.Errorf("group names:\n%s", diff)
	}
}
