package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ddlint/internal/config"
	"ddlint/internal/history"
	"ddlint/internal/pipeline"
	"ddlint/internal/report"
)

var validateFlags struct {
	dictPath   string
	dataPath   string
	outPath    string
	reportPath string
	prevPath   string
	prevMode   string
	dbPath     string
	noHistory  bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate one dataset against its dictionary",
	Long: `Validate a dataset export against its data dictionary and write findings.json.

Usage:
  ddlint validate --dict dictionary.csv --data dataset.csv
  ddlint validate --dict d.csv --data x.csv --prev runs/v1/findings.json
  ddlint validate --dict d.csv --data x.csv --report report.md

The previous run for since-last-run diffs is resolved from --prev, a .prev
pointer file next to the output, or a vN/runN/waveN folder convention.
Exit code is nonzero when any error-severity finding is produced.`,
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&validateFlags.dictPath, "dict", "", "Dictionary CSV path (required)")
	f.StringVar(&validateFlags.dataPath, "data", "", "Dataset CSV path (required)")
	f.StringVarP(&validateFlags.outPath, "out", "o", "", "Findings output path (default: findings.json next to the dataset)")
	f.StringVar(&validateFlags.reportPath, "report", "", "Also write a Markdown report to this path")
	f.StringVar(&validateFlags.prevPath, "prev", "", "Previous findings.json (or its folder) for since-last-run diffs")
	f.StringVar(&validateFlags.prevMode, "prev-mode", "", "Previous-run resolution: auto, explicit, pointer, folder, off")
	f.StringVar(&validateFlags.dbPath, "db", history.DefaultDBPath, "Run history DB path")
	f.BoolVar(&validateFlags.noHistory, "no-history", false, "Skip recording the run in the history DB")
	_ = validateCmd.MarkFlagRequired("dict")
	_ = validateCmd.MarkFlagRequired("data")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if validateFlags.prevPath != "" {
		cfg.PrevPath = validateFlags.prevPath
	}
	if validateFlags.prevMode != "" {
		cfg.PrevMode = config.PrevMode(validateFlags.prevMode)
	}

	res, err := pipeline.Run(cmd.Context(), pipeline.Input{
		DictPath: validateFlags.dictPath,
		DataPath: validateFlags.dataPath,
		OutPath:  validateFlags.outPath,
	}, cfg)
	if err != nil {
		return err
	}

	if validateFlags.reportPath != "" {
		if err := report.WriteFile(validateFlags.reportPath, res.Report); err != nil {
			return err
		}
	}
	if !validateFlags.noHistory {
		if err := recordRun(res); err != nil {
			return err
		}
	}

	errors, warns, infos := res.Report.Counts()
	s := res.Report.Summary
	fmt.Printf("Findings: %d error, %d warn, %d info | Rows=%d Cols=%d Dict=%d\n",
		errors, warns, infos, s.Rows, s.Cols, s.DictFields)
	fmt.Printf("Wrote %s\n", res.OutPath)

	if res.Report.HasErrors() {
		return fmt.Errorf("%d error finding(s)", errors)
	}
	return nil
}

func recordRun(res *pipeline.Result) error {
	ledger, err := history.Open(validateFlags.dbPath)
	if err != nil {
		return err
	}
	defer ledger.Close()
	return ledger.Record(projectName(validateFlags.dataPath), res.OutPath, res.Report)
}

// projectName derives a stable project label from the dataset location.
func projectName(dataPath string) string {
	dir := filepath.Dir(dataPath)
	base := filepath.Base(dir)
	if base == "." || base == string(filepath.Separator) {
		return strings.TrimSuffix(filepath.Base(dataPath), filepath.Ext(dataPath))
	}
	return base
}
