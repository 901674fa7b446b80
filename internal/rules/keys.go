package rules

import (
	"fmt"
	"sort"

	"ddlint/internal/config"
	"ddlint/internal/dataset"
	"ddlint/internal/dict"
	"ddlint/internal/finding"
)

// primaryKeyCheck verifies the dictionary's primary key column exists in
// the dataset and carries no duplicate values.
type primaryKeyCheck struct{}

func (primaryKeyCheck) Name() string { return "primary_key" }

func (primaryKeyCheck) Evaluate(d *dict.Dictionary, ds *dataset.Dataset, _ config.Config) []finding.Finding {
	pk := d.PrimaryKey()
	if pk == "" {
		return nil
	}
	col, ok := ds.Column(pk)
	if !ok {
		return []finding.Finding{{
			Type:       finding.MissingPrimaryKeyColumn,
			Severity:   finding.SeverityError,
			Variable:   pk,
			Where:      map[string]string{"dataset_column": pk},
			Expected:   pk,
			Suggestion: fmt.Sprintf("The record identifier column %q is absent from the dataset export.", pk),
		}}
	}

	counts := make(map[string]int)
	for _, v := range col.Sample() {
		if v == "" {
			continue
		}
		counts[v]++
	}
	var dups []string
	affected := 0
	for v, n := range counts {
		if n > 1 {
			dups = append(dups, v)
			affected += n
		}
	}
	if len(dups) == 0 {
		return nil
	}
	sort.Strings(dups)
	f := finding.Finding{
		Type:         finding.DuplicatePrimaryKeyValues,
		Severity:     finding.SeverityError,
		Variable:     pk,
		Where:        map[string]string{"dataset_column": pk},
		Observed:     map[string]any{"duplicate_values": dups},
		Suggestion:   "Primary key values repeat; each record must carry a unique identifier.",
		RowsAffected: ds.SampleScale(affected),
	}
	for _, v := range dups {
		f.AddExample(v)
	}
	return []finding.Finding{f}
}
