package rules

import (
	"ddlint/internal/config"
	"ddlint/internal/dataset"
	"ddlint/internal/dict"
	"ddlint/internal/finding"
)

// renameHints maps dictionary variables to abbreviated spellings commonly
// seen in exports. Hint pairs match regardless of edit distance; no string
// metric relates bp_sys to sbp.
var renameHints = map[string][]string{
	"bp_sys":    {"sbp"},
	"bp_dia":    {"dbp"},
	"height_cm": {"ht_cm", "heightcm"},
}

// renamePairs pairs missing dictionary variables with unexplained dataset
// columns, first through the hint table, then by name similarity. A metric
// pair requires a single best candidate at or above the configured
// similarity; a tie for best means ambiguity and no pair. The mapping
// suppresses the corresponding missing/extra column findings and feeds the
// rename_drift warning.
func renamePairs(d *dict.Dictionary, ds *dataset.Dataset, cfg config.Config) map[string]string {
	// Candidate columns: present in the dataset, not defined in the
	// dictionary, not checkbox expansions of known fields, not system
	// columns.
	checkboxBases := make(map[string]bool)
	for i := range d.Fields {
		if d.Fields[i].Type == dict.TypeCheckbox {
			checkboxBases[d.Fields[i].Variable] = true
		}
	}
	var candidates []string
	for _, col := range ds.Columns {
		if d.Has(col) || isSystemColumn(col, d) {
			continue
		}
		if base, _, ok := cutCheckbox(col); ok && checkboxBases[base] {
			continue
		}
		candidates = append(candidates, col)
	}
	if len(candidates) == 0 {
		return nil
	}

	candidateSet := make(map[string]bool, len(candidates))
	for _, col := range candidates {
		candidateSet[col] = true
	}

	pairs := make(map[string]string)
	claimed := make(map[string]bool)

	// Hint pairs claim their candidates before the metric scan runs.
	for i := range d.Fields {
		f := &d.Fields[i]
		if f.Type == dict.TypeCheckbox || ds.Has(f.Variable) {
			continue
		}
		for _, h := range renameHints[f.Variable] {
			if candidateSet[h] && !claimed[h] {
				pairs[f.Variable] = h
				claimed[h] = true
				break
			}
		}
	}

	for i := range d.Fields {
		f := &d.Fields[i]
		if f.Type == dict.TypeCheckbox || ds.Has(f.Variable) {
			continue
		}
		if _, ok := pairs[f.Variable]; ok {
			continue
		}
		best, second := "", 0.0
		bestScore := 0.0
		for _, col := range candidates {
			if claimed[col] {
				continue
			}
			s := Similarity(f.Variable, col)
			if s > bestScore {
				second = bestScore
				bestScore, best = s, col
			} else if s > second {
				second = s
			}
		}
		// Single best above threshold; a tie resolves to silence.
		if best != "" && bestScore >= cfg.RenameSimilarity && bestScore > second {
			pairs[f.Variable] = best
			claimed[best] = true
		}
	}
	return pairs
}

// renameDriftCheck reports likely renamed columns as warnings.
type renameDriftCheck struct{}

func (renameDriftCheck) Name() string { return "rename_drift" }

func (renameDriftCheck) Evaluate(d *dict.Dictionary, ds *dataset.Dataset, cfg config.Config) []finding.Finding {
	pairs := renamePairs(d, ds, cfg)
	var out []finding.Finding
	for i := range d.Fields {
		f := &d.Fields[i]
		newCol, ok := pairs[f.Variable]
		if !ok {
			continue
		}
		out = append(out, finding.Finding{
			Type:         finding.RenameDrift,
			Severity:     finding.SeverityWarn,
			Variable:     f.Variable,
			Where:        map[string]string{"dataset_column": newCol},
			Observed:     map[string]string{"new": newCol},
			RowsAffected: ds.Rows,
			Suggestion:   "Column appears renamed in the dataset; align names or update the dictionary.",
			Context:      &finding.Context{FormName: f.Form, FieldType: string(f.Type)},
		})
	}
	return out
}
