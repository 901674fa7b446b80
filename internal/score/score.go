package score

import (
	"encoding/json"
	"fmt"
	"sort"

	"ddlint/internal/finding"
)

// Mode selects the match key granularity.
type Mode string

const (
	// ModeVariable matches on (type, variable).
	ModeVariable Mode = "variable"
	// ModeStrict additionally requires identical expected and observed
	// payloads, compared as canonical JSON.
	ModeStrict Mode = "strict"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeVariable, ModeStrict:
		return Mode(s), nil
	case "":
		return ModeVariable, nil
	}
	return "", fmt.Errorf("score: unknown match mode %q", s)
}

// Metrics holds precision/recall/F1 with the raw counts behind them.
type Metrics struct {
	TruePositives  int     `json:"tp"`
	FalsePositives int     `json:"fp"`
	FalseNegatives int     `json:"fn"`
	Precision      float64 `json:"precision"`
	Recall         float64 `json:"recall"`
	F1             float64 `json:"f1"`
}

// Result is the scored outcome over one or more runs.
type Result struct {
	Mode      Mode               `json:"mode"`
	PerType   map[string]Metrics `json:"per_type"`
	Aggregate Metrics            `json:"aggregate"`
}

// Types returns the scored finding types in sorted order.
func (r *Result) Types() []string {
	out := make([]string, 0, len(r.PerType))
	for t := range r.PerType {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

type counts struct{ tp, fp, fn int }

// tally accumulates match counts per finding type across runs.
type tally map[string]*counts

func (t tally) at(typ string) *counts {
	c, ok := t[typ]
	if !ok {
		c = &counts{}
		t[typ] = c
	}
	return c
}

// matchKey is the identity a candidate must share with a gold record.
func matchKey(typ, variable string, expected, observed any, mode Mode) string {
	if mode != ModeStrict {
		return typ + "\x00" + variable
	}
	return typ + "\x00" + variable + "\x00" + canonicalJSON(expected) + "\x00" + canonicalJSON(observed)
}

// canonicalJSON renders a payload deterministically; encoding/json sorts
// map keys, which is all the canonicalization the payloads need.
func canonicalJSON(v any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// Match scores candidates against gold records one-to-one. Each gold
// record is consumed by at most one candidate; ties resolve to the first
// candidate in report order. Unmatched candidates are false positives,
// unconsumed gold records are false negatives.
func Match(candidates []finding.Finding, gold []GoldRecord, mode Mode) tally {
	open := make(map[string][]int) // key -> unconsumed gold indexes
	for i, g := range gold {
		k := matchKey(g.Type, g.Variable, g.Expected, g.Observed, mode)
		open[k] = append(open[k], i)
	}

	t := make(tally)
	for _, f := range candidates {
		k := matchKey(string(f.Type), f.Variable, f.Expected, f.Observed, mode)
		c := t.at(string(f.Type))
		if idxs := open[k]; len(idxs) > 0 {
			open[k] = idxs[1:]
			c.tp++
		} else {
			c.fp++
		}
	}
	for _, idxs := range open {
		for _, i := range idxs {
			t.at(gold[i].Type).fn++
		}
	}
	return t
}

// Score turns one matched run into a Result.
func Score(candidates []finding.Finding, gold []GoldRecord, mode Mode) *Result {
	return result(Match(candidates, gold, mode), mode)
}

func result(t tally, mode Mode) *Result {
	res := &Result{Mode: mode, PerType: make(map[string]Metrics, len(t))}
	var total counts
	for typ, c := range t {
		res.PerType[typ] = metrics(*c)
		total.tp += c.tp
		total.fp += c.fp
		total.fn += c.fn
	}
	res.Aggregate = metrics(total)
	return res
}

// metrics computes precision/recall/F1. A zero denominator means no
// predicted or no actual issues of the type, which is vacuously correct:
// both precision and recall default to 1.
func metrics(c counts) Metrics {
	m := Metrics{TruePositives: c.tp, FalsePositives: c.fp, FalseNegatives: c.fn, Precision: 1, Recall: 1}
	if c.tp+c.fp > 0 {
		m.Precision = float64(c.tp) / float64(c.tp+c.fp)
	}
	if c.tp+c.fn > 0 {
		m.Recall = float64(c.tp) / float64(c.tp+c.fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}
