package score

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"ddlint/internal/finding"
	"ddlint/internal/logging"
)

// GoldFileName marks a corpus run folder as scorable.
const GoldFileName = "gold.json"

// Corpus scores every run folder under root that carries a gold.json,
// accumulating counts across runs before computing metrics. Layout under
// root is free-form; discovery walks the whole tree. A run folder without
// a findings.json contributes only false negatives.
func Corpus(root string, mode Mode) (*Result, error) {
	runs, err := discoverRuns(root)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("score: no %s found under %q", GoldFileName, root)
	}
	logger := logging.New("score")

	total := make(tally)
	for _, run := range runs {
		gold, err := LoadGold(filepath.Join(run, GoldFileName))
		if err != nil {
			return nil, err
		}
		var candidates []finding.Finding
		report, err := finding.ReadFile(filepath.Join(run, "findings.json"))
		if err != nil {
			logger.Warn("run has no readable findings, scoring gold as missed", "run", run)
		} else {
			candidates = report.Findings
		}
		for typ, c := range Match(candidates, gold, mode) {
			tc := total.at(typ)
			tc.tp += c.tp
			tc.fp += c.fp
			tc.fn += c.fn
		}
	}
	return result(total, mode), nil
}

func discoverRuns(root string) ([]string, error) {
	var runs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == GoldFileName {
			runs = append(runs, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("score: walk corpus %q: %w", root, err)
	}
	sort.Strings(runs)
	return runs, nil
}
