package rules

import (
	"ddlint/internal/config"
	"ddlint/internal/dataset"
	"ddlint/internal/dict"
	"ddlint/internal/finding"
)

// ExportModeObservation is the payload of an export_mode_labels_detected
// finding. The engine reads LabelFields to suppress domain findings for
// label-exported fields and writes the suppressed count back.
type ExportModeObservation struct {
	FieldsChecked            int      `json:"fields_checked"`
	LabelMajorityFields      int      `json:"label_majority_fields"`
	LabelFields              []string `json:"label_fields"`
	SuppressedDomainFindings int      `json:"suppressed_domain_findings"`
}

// exportModeCheck detects datasets exported with labels instead of raw
// codes: categorical values that match choice labels rather than choice
// codes across enough fields indicate a whole-export setting, not
// per-field corruption.
type exportModeCheck struct{}

func (exportModeCheck) Name() string { return "export_mode" }

func (exportModeCheck) Evaluate(d *dict.Dictionary, ds *dataset.Dataset, cfg config.Config) []finding.Finding {
	obs := &ExportModeObservation{}
	for i := range d.Fields {
		f := &d.Fields[i]
		if !f.Type.Categorical() || len(f.Choices) == 0 {
			continue
		}
		col, ok := ds.Column(f.Variable)
		if !ok {
			continue
		}
		values := col.NonBlank()
		if len(values) == 0 {
			continue
		}
		obs.FieldsChecked++

		codes := make(map[string]bool, len(f.Choices))
		labels := make(map[string]bool, len(f.Choices))
		for _, c := range f.Choices {
			codes[normalizeToken(c.Code, cfg)] = true
			labels[normalizeToken(c.Label, cfg)] = true
		}
		labelOnly := 0
		for _, v := range values {
			n := normalizeToken(v, cfg)
			if labels[n] && !codes[n] {
				labelOnly++
			}
		}
		if float64(labelOnly)/float64(len(values)) >= cfg.ExportModeLabelRate {
			obs.LabelMajorityFields++
			obs.LabelFields = append(obs.LabelFields, f.Variable)
		}
	}
	if obs.LabelMajorityFields < cfg.ExportModeMinFields {
		return nil
	}
	return []finding.Finding{{
		Type:       finding.ExportModeLabelsDetected,
		Severity:   finding.SeverityInfo,
		Variable:   "dataset",
		Observed:   obs,
		Suggestion: "Categorical values match choice labels, not codes. The export was likely made in label mode; re-export raw values or map labels back to codes.",
	}}
}
