package rules

import (
	"fmt"

	"ddlint/internal/config"
	"ddlint/internal/dataset"
	"ddlint/internal/dict"
	"ddlint/internal/finding"
)

// matrixConsecutiveCheck warns when the members of a matrix group are not
// contiguous in dictionary file order. Groups are reported in order of
// first appearance.
type matrixConsecutiveCheck struct{}

func (matrixConsecutiveCheck) Name() string { return "matrix_consecutive" }

func (matrixConsecutiveCheck) Evaluate(d *dict.Dictionary, _ *dataset.Dataset, _ config.Config) []finding.Finding {
	positions := make(map[string][]int)
	for i := range d.Fields {
		if g := d.Fields[i].MatrixGroup; g != "" {
			positions[g] = append(positions[g], i)
		}
	}

	var out []finding.Finding
	for _, name := range d.MatrixGroupNames() {
		pos := positions[name]
		if len(pos) < 2 {
			continue
		}
		contiguous := true
		for j := 1; j < len(pos); j++ {
			if pos[j] != pos[j-1]+1 {
				contiguous = false
				break
			}
		}
		if contiguous {
			continue
		}
		members := d.MatrixGroups()[name]
		out = append(out, finding.Finding{
			Type:       finding.MatrixNonconsecutive,
			Severity:   finding.SeverityWarn,
			Variable:   name,
			Where:      map[string]string{"matrix_group": name},
			Expected:   "matrix group members on consecutive dictionary rows",
			Observed:   map[string]any{"members": members},
			Suggestion: fmt.Sprintf("Matrix group %q is interrupted by unrelated fields; reorder the dictionary rows.", name),
			Context:    &finding.Context{FormName: d.Fields[pos[0]].Form},
		})
	}
	return out
}
