package rules

import (
	"ddlint/internal/config"
	"ddlint/internal/dataset"
	"ddlint/internal/dict"
	"ddlint/internal/finding"
)

// longitudinalCheck reports when the export carries longitudinal or
// repeating-instrument context columns. Informational only: the presence of
// these columns explains sparsity patterns downstream consumers might
// otherwise misread.
type longitudinalCheck struct{}

func (longitudinalCheck) Name() string { return "longitudinal" }

func (longitudinalCheck) Evaluate(_ *dict.Dictionary, ds *dataset.Dataset, _ config.Config) []finding.Finding {
	var present []string
	for _, name := range []string{colEventName, colRepeatInstrument, colRepeatInstance} {
		if ds.Has(name) {
			present = append(present, name)
		}
	}
	if len(present) == 0 {
		return nil
	}

	obs := map[string]any{"context_columns": present}
	if col, ok := ds.Column(colEventName); ok {
		obs["distinct_events"] = len(col.DistinctNonBlank())
	}
	if col, ok := ds.Column(colRepeatInstrument); ok {
		sample := col.Sample()
		repeating := 0
		for _, v := range sample {
			if v != "" {
				repeating++
			}
		}
		if len(sample) > 0 {
			obs["repeating_row_rate"] = float64(repeating) / float64(len(sample))
		}
	}
	return []finding.Finding{{
		Type:       finding.LongitudinalContextDetected,
		Severity:   finding.SeverityInfo,
		Variable:   "dataset",
		Observed:   obs,
		Suggestion: "Longitudinal context columns present; per-event sparsity is expected.",
	}}
}
