package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ddlint/internal/format"
	"ddlint/internal/score"
)

var scoreFlags struct {
	corpus   string
	mode     string
	markdown bool
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score findings against gold truth across a corpus",
	Long: `Score findings.json files against their gold.json ground truth.

Every folder under --corpus containing a gold.json is scored; precision,
recall and F1 are reported per finding type and in aggregate.

Match modes:
  variable  match on (type, variable)
  strict    additionally require identical expected/observed payloads`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.StringVar(&scoreFlags.corpus, "corpus", "corpus", "Corpus directory")
	f.StringVar(&scoreFlags.mode, "mode", "variable", "Match mode: variable or strict")
	f.BoolVar(&scoreFlags.markdown, "markdown", false, "Render the table as Markdown")
}

func runScore(cmd *cobra.Command, args []string) error {
	mode, err := score.ParseMode(scoreFlags.mode)
	if err != nil {
		return err
	}
	res, err := score.Corpus(scoreFlags.corpus, mode)
	if err != nil {
		return err
	}

	tableMode := format.ASCII
	if scoreFlags.markdown {
		tableMode = format.Markdown
	}
	tb := format.NewTable(tableMode)
	tb.Header("Type", "TP", "FP", "FN", "Precision", "Recall", "F1")
	for _, typ := range res.Types() {
		m := res.PerType[typ]
		tb.Row(typ, m.TruePositives, m.FalsePositives, m.FalseNegatives,
			fmt.Sprintf("%.3f", m.Precision), fmt.Sprintf("%.3f", m.Recall), fmt.Sprintf("%.3f", m.F1))
	}
	agg := res.Aggregate
	tb.Footer("aggregate", agg.TruePositives, agg.FalsePositives, agg.FalseNegatives,
		fmt.Sprintf("%.3f", agg.Precision), fmt.Sprintf("%.3f", agg.Recall), fmt.Sprintf("%.3f", agg.F1))
	tb.Columns(
		format.ColumnConfig{Number: 2, AlignRight: true},
		format.ColumnConfig{Number: 3, AlignRight: true},
		format.ColumnConfig{Number: 4, AlignRight: true},
	)
	fmt.Println(tb.String())
	return nil
}
