package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ddlint/internal/format"
	"ddlint/internal/pipeline"
)

var batchFlags struct {
	root      string
	cleanGate bool
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Validate every project folder under a directory",
	Long: `Validate each project folder (one holding dictionary.csv and dataset.csv)
under --root, writing findings.json into each.

With --clean-gate the command exits nonzero if any folder WITHOUT a
gold.json produces error findings. Gold-backed folders are seeded with
known defects and are exempt.`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&batchFlags.root, "root", "corpus", "Directory to scan for project folders")
	f.BoolVar(&batchFlags.cleanGate, "clean-gate", false, "Fail when an ungolded project has error findings")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	results, err := pipeline.Batch(cmd.Context(), batchFlags.root, cfg)
	if err != nil {
		return err
	}

	tb := format.NewTable(format.ASCII)
	tb.Header("Project", "Errors", "Warns", "Infos", "Gold", "Status")
	var failed, gateViolations int
	for _, r := range results {
		rel, relErr := filepath.Rel(batchFlags.root, r.Dir)
		if relErr != nil {
			rel = r.Dir
		}
		gold := ""
		if r.HasGold {
			gold = "yes"
		}
		if r.Err != nil {
			failed++
			tb.Row(rel, "-", "-", "-", gold, format.Truncate(r.Err.Error(), 50))
			continue
		}
		errors, warns, infos := r.Result.Report.Counts()
		status := "ok"
		if r.CleanViolation() {
			gateViolations++
			status = "dirty"
		}
		tb.Row(rel, errors, warns, infos, gold, status)
	}
	fmt.Println(tb.String())

	if failed > 0 {
		return fmt.Errorf("%d project(s) failed to validate", failed)
	}
	if batchFlags.cleanGate && gateViolations > 0 {
		return fmt.Errorf("clean gate: %d ungolded project(s) with error findings", gateViolations)
	}
	return nil
}
