// Package pipeline wires one validation run end to end: load the
// dictionary and dataset, run the rule catalog, diff against the previous
// run, and write the findings report atomically.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"ddlint/internal/config"
	"ddlint/internal/dataset"
	"ddlint/internal/dict"
	"ddlint/internal/diffrun"
	"ddlint/internal/finding"
	"ddlint/internal/logging"
	"ddlint/internal/rules"
)

// Input names the files of one validation run.
type Input struct {
	DictPath string
	DataPath string
	// OutPath is where findings.json is written. Empty means the run
	// folder of DataPath.
	OutPath string
}

// Result is the completed run.
type Result struct {
	Report  *finding.Report
	OutPath string
	// PrevPath is the previous findings file the diff used, empty when
	// none was resolved.
	PrevPath string
}

// Run executes one validation run. Unreadable or unparseable inputs are
// fatal and nothing is written; dictionary rows that fail construction
// become findings and the run continues.
func Run(ctx context.Context, in Input, cfg config.Config) (*Result, error) {
	logger := logging.New("pipeline")
	start := time.Now()

	d, malformed, err := dict.Load(in.DictPath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: load dictionary: %w", err)
	}
	ds, err := dataset.Load(in.DataPath, cfg.SampleCap)
	if err != nil {
		return nil, fmt.Errorf("pipeline: load dataset: %w", err)
	}
	logger.Info("inputs loaded",
		"dict_fields", len(d.Fields),
		"rows", ds.Rows,
		"cols", len(ds.Columns),
		"sampled", ds.Sampled,
	)

	rep := &finding.Report{Summary: buildSummary(d, ds)}
	rep.Append(malformed...)
	rep.Append(rules.Run(ctx, d, ds, cfg)...)

	outPath := in.OutPath
	if outPath == "" {
		outPath = filepath.Join(filepath.Dir(in.DataPath), diffrun.FindingsFileName)
	}
	runDir := filepath.Dir(outPath)

	prevPath, err := diffrun.Resolve(runDir, cfg)
	if err != nil {
		return nil, err
	}
	if prevPath != "" {
		prev, err := finding.ReadFile(prevPath)
		if err != nil {
			return nil, fmt.Errorf("pipeline: previous findings: %w", err)
		}
		rep.Append(diffrun.Diff(prev, rep)...)
		logger.Info("diffed against previous run", "prev", prevPath)
	}

	if err := finding.WriteFile(outPath, rep); err != nil {
		return nil, err
	}
	errors, warns, infos := rep.Counts()
	logger.Info("run complete",
		"out", outPath,
		"errors", errors,
		"warns", warns,
		"infos", infos,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return &Result{Report: rep, OutPath: outPath, PrevPath: prevPath}, nil
}

// buildSummary captures the run shape plus the dictionary-derived maps a
// later run needs to diff against this one.
func buildSummary(d *dict.Dictionary, ds *dataset.Dataset) finding.Summary {
	_, completeness := dict.Completeness(d)
	s := finding.Summary{
		RunID:           uuid.NewString(),
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		Rows:            ds.Rows,
		Cols:            len(ds.Columns),
		DictFields:      len(d.Fields),
		Completeness:    completeness,
		DatasetColumns:  append([]string(nil), ds.Columns...),
		DictFieldNames:  d.Variables(),
		DictChoices:     make(map[string][]string, len(d.Fields)),
		DictValidations: make(map[string]string, len(d.Fields)),
		DictRequired:    make(map[string]bool, len(d.Fields)),
	}
	for i := range d.Fields {
		f := &d.Fields[i]
		if len(f.Choices) > 0 {
			s.DictChoices[f.Variable] = f.ChoicePairs()
		}
		if f.Validation != dict.ValidationNone {
			s.DictValidations[f.Variable] = string(f.Validation)
		}
		s.DictRequired[f.Variable] = f.Required
	}
	return s
}
