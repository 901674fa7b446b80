// Package rules runs the fixed catalog of consistency and heuristic checks
// over the normalized dictionary and dataset models. Checks are pure and
// independent: given identical inputs and config the engine produces an
// identical, deterministically ordered finding sequence.
package rules

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ddlint/internal/config"
	"ddlint/internal/dataset"
	"ddlint/internal/dict"
	"ddlint/internal/finding"
	"ddlint/internal/logging"
)

// Check is one catalog entry. Evaluate must not mutate its inputs and must
// not depend on any other check having run.
type Check interface {
	Name() string
	Evaluate(d *dict.Dictionary, ds *dataset.Dataset, cfg config.Config) []finding.Finding
}

// Catalog returns the full check catalog in its fixed registration order.
// The order is the order findings appear in the report; it is not an
// execution dependency.
func Catalog() []Check {
	return []Check{
		missingColumnsCheck{},
		extraColumnsCheck{},
		typeMismatchCheck{},
		domainMismatchCheck{},
		checkboxExpansionCheck{},
		primaryKeyCheck{},
		requiredMissingCheck{},
		missingnessSpikeCheck{},
		unitAnomalyCheck{},
		branchingCheck{},
		matrixConsecutiveCheck{},
		renameDriftCheck{},
		identifierHintCheck{},
		exportModeCheck{},
		longitudinalCheck{},
	}
}

// Run executes the catalog with bounded parallelism and returns findings
// flattened in catalog order. A check that panics contributes nothing; the
// run continues.
func Run(ctx context.Context, d *dict.Dictionary, ds *dataset.Dataset, cfg config.Config) []finding.Finding {
	checks := Catalog()
	results := make([][]finding.Finding, len(checks))
	logger := logging.New("rules")

	g, _ := errgroup.WithContext(ctx)
	limit := cfg.Parallel
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)
	for i, c := range checks {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					logger.Warn("check failed, contributing no findings", "check", c.Name(), "panic", r)
					results[i] = nil
				}
			}()
			results[i] = c.Evaluate(d, ds, cfg)
			return nil
		})
	}
	_ = g.Wait() // checks never return errors; failures degrade to silence

	var out []finding.Finding
	for _, fs := range results {
		out = append(out, fs...)
	}
	return suppressLabelExportDomains(out)
}

// suppressLabelExportDomains drops domain_mismatch findings for fields the
// export-mode detector classified as label-exported, and records the
// suppressed count on the detector's finding.
func suppressLabelExportDomains(findings []finding.Finding) []finding.Finding {
	exportIdx := -1
	labelFields := make(map[string]bool)
	for i, f := range findings {
		if f.Type == finding.ExportModeLabelsDetected {
			exportIdx = i
			if obs, ok := f.Observed.(*ExportModeObservation); ok {
				for _, v := range obs.LabelFields {
					labelFields[v] = true
				}
			}
		}
	}
	if exportIdx < 0 || len(labelFields) == 0 {
		return findings
	}

	suppressed := 0
	out := findings[:0]
	for _, f := range findings {
		if f.Type == finding.DomainMismatch && labelFields[f.Variable] {
			suppressed++
			continue
		}
		out = append(out, f)
	}
	for i := range out {
		if out[i].Type == finding.ExportModeLabelsDetected {
			if obs, ok := out[i].Observed.(*ExportModeObservation); ok {
				obs.SuppressedDomainFindings = suppressed
			}
		}
	}
	return out
}
