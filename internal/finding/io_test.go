package finding

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleReport() *Report {
	r := &Report{
		Summary: Summary{Rows: 20, Cols: 3, DictFields: 3, Completeness: 0.5},
	}
	r.Append(
		Finding{Type: DomainMismatch, Severity: SeverityError, Variable: "sex",
			Where: map[string]string{"dataset_column": "sex"}, RowsAffected: 20},
		Finding{Type: MatrixNonconsecutive, Severity: SeverityWarn, Variable: "adls",
			Where: map[string]string{"matrix_group": "adls"}},
	)
	return r
}

func TestWriteRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "findings.json")

	want := sampleReport()
	if err := WriteFile(path, want); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch:\n%s", diff)
	}
}

func TestWriteFile_LeavesNoTempOnSuccess(t *testing.T) {
	dir := t.TempDir()
	if err := WriteFile(filepath.Join(dir, "findings.json"), sampleReport()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".findings-") {
			t.Errorf("stray temp file left behind: %s", e.Name())
		}
	}
}

func TestDecode_BareArray(t *testing.T) {
	data := []byte(`[{"id":1,"type":"domain_mismatch","severity":"error","variable":"sex"}]`)
	r, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(r.Findings) != 1 || r.Findings[0].Type != DomainMismatch {
		t.Errorf("unexpected decode result: %+v", r)
	}
}

func TestAppend_AssignsMonotonicIDs(t *testing.T) {
	r := &Report{}
	r.Append(Finding{Type: TypeMismatch, Severity: SeverityError, Variable: "age"})
	r.Append(Finding{Type: RenameDrift, Severity: SeverityWarn, Variable: "bp_sys"})
	if r.Findings[0].ID != 1 || r.Findings[1].ID != 2 {
		t.Errorf("IDs = %d, %d; want 1, 2", r.Findings[0].ID, r.Findings[1].ID)
	}
}

func TestAppend_ClampsExamples(t *testing.T) {
	r := &Report{}
	f := Finding{Type: TypeMismatch, Severity: SeverityError, Variable: "age",
		Examples: []string{"a", "b", "c", "d", "e", "f", "g"}}
	r.Append(f)
	if n := len(r.Findings[0].Examples); n != MaxExamples {
		t.Errorf("examples = %d, want %d", n, MaxExamples)
	}
}

func TestCounts(t *testing.T) {
	r := sampleReport()
	e, w, i := r.Counts()
	if e != 1 || w != 1 || i != 0 {
		t.Errorf("Counts = %d/%d/%d, want 1/1/0", e, w, i)
	}
	if !r.HasErrors() {
		t.Error("HasErrors = false, want true")
	}
}
