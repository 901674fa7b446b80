package diffrun

import (
	"sort"

	"ddlint/internal/finding"
)

// Diff compares the current run's summary against a previous report and
// returns info findings describing the drift. Ordering is deterministic:
// column findings follow the respective summary's column order, dictionary
// findings follow the current dictionary's field order. Running the diff
// twice on the same pair yields an identical sequence.
func Diff(prev, cur *finding.Report) []finding.Finding {
	if prev == nil {
		return nil
	}
	var out []finding.Finding
	out = append(out, diffColumns(prev, cur)...)
	out = append(out, diffChoices(prev, cur)...)
	out = append(out, diffValidations(prev, cur)...)
	out = append(out, diffRequired(prev, cur)...)
	return out
}

func diffColumns(prev, cur *finding.Report) []finding.Finding {
	prevCols := toSet(prev.Summary.DatasetColumns)
	curCols := toSet(cur.Summary.DatasetColumns)

	var out []finding.Finding
	for _, col := range cur.Summary.DatasetColumns {
		if prevCols[col] {
			continue
		}
		out = append(out, finding.Finding{
			Type:         finding.ExtraColumnSinceLastRun,
			Severity:     finding.SeverityInfo,
			Variable:     col,
			Where:        map[string]string{"dataset_column": col},
			Suggestion:   "Column appeared since the previous run.",
			RowsAffected: cur.Summary.Rows,
		})
	}
	for _, col := range prev.Summary.DatasetColumns {
		if curCols[col] {
			continue
		}
		out = append(out, finding.Finding{
			Type:       finding.MissingColumnSinceLastRun,
			Severity:   finding.SeverityInfo,
			Variable:   col,
			Where:      map[string]string{"dataset_column": col},
			Suggestion: "Column present in the previous run is gone.",
		})
	}
	return out
}

// diffChoices reports allowed codes added since the previous run. Removed
// codes surface through domain_mismatch on the data itself, so only
// additions are diffed.
func diffChoices(prev, cur *finding.Report) []finding.Finding {
	var out []finding.Finding
	for _, v := range cur.Summary.DictFieldNames {
		curChoices, ok := cur.Summary.DictChoices[v]
		if !ok {
			continue
		}
		prevSet := toSet(prev.Summary.DictChoices[v])
		var added []string
		for _, c := range curChoices {
			if !prevSet[c] {
				added = append(added, c)
			}
		}
		if len(added) == 0 || len(prev.Summary.DictChoices[v]) == 0 {
			continue
		}
		sort.Strings(added)
		out = append(out, finding.Finding{
			Type:       finding.DomainMismatchSinceLastRun,
			Severity:   finding.SeverityInfo,
			Variable:   v,
			Where:      map[string]string{"variable": v},
			Observed:   map[string]any{"observed_added": added},
			Suggestion: "Allowed codes were added since the previous run.",
		})
	}
	return out
}

func diffValidations(prev, cur *finding.Report) []finding.Finding {
	var out []finding.Finding
	for _, v := range cur.Summary.DictFieldNames {
		prevVal, inPrev := prev.Summary.DictValidations[v]
		curVal, inCur := cur.Summary.DictValidations[v]
		if !inPrev || !inCur || prevVal == curVal {
			continue
		}
		out = append(out, finding.Finding{
			Type:       finding.ValidationChangedSinceLastRun,
			Severity:   finding.SeverityInfo,
			Variable:   v,
			Where:      map[string]string{"variable": v},
			Expected:   prevVal,
			Observed:   curVal,
			Suggestion: "Validation type changed since the previous run.",
		})
	}
	return out
}

func diffRequired(prev, cur *finding.Report) []finding.Finding {
	var out []finding.Finding
	for _, v := range cur.Summary.DictFieldNames {
		prevReq, inPrev := prev.Summary.DictRequired[v]
		curReq, inCur := cur.Summary.DictRequired[v]
		if !inPrev || !inCur || prevReq == curReq {
			continue
		}
		out = append(out, finding.Finding{
			Type:       finding.RequiredFlagChanged,
			Severity:   finding.SeverityInfo,
			Variable:   v,
			Where:      map[string]string{"variable": v},
			Expected:   prevReq,
			Observed:   curReq,
			Suggestion: "Required flag flipped since the previous run.",
		})
	}
	return out
}

func toSet(values []string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[v] = true
	}
	return out
}
