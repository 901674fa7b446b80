package dataset

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRead_CountsAndSamples(t *testing.T) {
	csvData := "record_id,age\n1,30\n2,\n3,45\n"
	d, err := Read(strings.NewReader(csvData), 100)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if d.Rows != 3 {
		t.Errorf("Rows = %d, want 3", d.Rows)
	}
	if diff := cmp.Diff([]string{"record_id", "age"}, d.Columns); diff != "" {
		t.Errorf("columns:\n%s", diff)
	}
	age, _ := d.Column("age")
	if age.Blanks != 1 {
		t.Errorf("age blanks = %d, want 1", age.Blanks)
	}
	if diff := cmp.Diff([]string{"30", "45"}, age.NonBlank()); diff != "" {
		t.Errorf("age non-blank:\n%s", diff)
	}
}

func TestRead_SampleCapBoundsBufferNotCounts(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("v\n")
	for i := 0; i < 10; i++ {
		sb.WriteString("x\n")
	}
	d, err := Read(strings.NewReader(sb.String()), 4)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if d.Rows != 10 {
		t.Errorf("Rows = %d, want 10 (exact despite cap)", d.Rows)
	}
	if d.Sampled != 4 {
		t.Errorf("Sampled = %d, want 4", d.Sampled)
	}
	col, _ := d.Column("v")
	if len(col.Sample()) != 4 {
		t.Errorf("sample size = %d, want 4", len(col.Sample()))
	}
}

func TestSampleScale_Extrapolates(t *testing.T) {
	d := &Dataset{Rows: 100, Sampled: 50}
	if got := d.SampleScale(10); got != 20 {
		t.Errorf("SampleScale(10) = %d, want 20", got)
	}
	// Unsaturated sample: identity.
	d2 := &Dataset{Rows: 30, Sampled: 30}
	if got := d2.SampleScale(7); got != 7 {
		t.Errorf("SampleScale(7) = %d, want 7", got)
	}
}

func TestRead_SamplesStayRowAligned(t *testing.T) {
	csvData := "a,b\n1,x\n2,y\n3,z\n"
	d, err := Read(strings.NewReader(csvData), 2)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	a, _ := d.Column("a")
	b, _ := d.Column("b")
	if diff := cmp.Diff([]string{"1", "2"}, a.Sample()); diff != "" {
		t.Errorf("a sample:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x", "y"}, b.Sample()); diff != "" {
		t.Errorf("b sample:\n%s", diff)
	}
}

func TestDetectCheckboxGroups(t *testing.T) {
	csvData := "record_id,symptoms___1,symptoms___2,symptoms___3,other\n1,0,1,0,q\n"
	d, err := Read(strings.NewReader(csvData), 10)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []CheckboxGroup{{Variable: "symptoms", Codes: []string{"1", "2", "3"}}}
	if diff := cmp.Diff(want, d.CheckboxGroups()); diff != "" {
		t.Errorf("groups:\n%s", diff)
	}
}

func TestRead_DuplicateColumnFatal(t *testing.T) {
	if _, err := Read(strings.NewReader("a,a\n1,2\n"), 10); err == nil {
		t.Fatal("expected error for duplicate column")
	}
}

func TestDistinctNonBlank_Sorted(t *testing.T) {
	csvData := "v\nb\na\n\nb\n"
	d, err := Read(strings.NewReader(csvData), 10)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	col, _ := d.Column("v")
	if diff := cmp.Diff([]string{"a", "b"}, col.DistinctNonBlank()); diff != "" {
		t.Errorf("distinct:\n%s", diff)
	}
}
