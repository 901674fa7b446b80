package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ddlint/internal/format"
	"ddlint/internal/history"
)

var runsFlags struct {
	dbPath  string
	project string
	limit   int
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded validation runs",
	RunE:  runRuns,
}

func init() {
	f := runsCmd.Flags()
	f.StringVar(&runsFlags.dbPath, "db", history.DefaultDBPath, "Run history DB path")
	f.StringVar(&runsFlags.project, "project", "", "Only list runs for this project")
	f.IntVar(&runsFlags.limit, "limit", 20, "Maximum runs to list (0 = all)")
}

func runRuns(cmd *cobra.Command, args []string) error {
	ledger, err := history.Open(runsFlags.dbPath)
	if err != nil {
		return err
	}
	defer ledger.Close()

	entries, err := ledger.List(runsFlags.project, runsFlags.limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	tb := format.NewTable(format.ASCII)
	tb.Header("Recorded", "Project", "Rows", "Cols", "Errors", "Warns", "Infos", "Findings")
	for _, e := range entries {
		tb.Row(e.RecordedAt, e.Project,
			format.FmtCount(e.Rows), e.Cols,
			e.Errors, e.Warns, e.Infos,
			e.FindingsPath)
	}
	fmt.Println(tb.String())
	return nil
}
