package dict

// FieldCompleteness scores how fully one field's metadata is populated.
type FieldCompleteness struct {
	Variable string
	Score    float64
	Missing  []string
}

// metadata items expected per field, by type. Label and form are mandatory
// at parse time, so the score reflects the columns an analyst actually has
// to fill in afterwards.
func expectedMetadata(f *Field) []string {
	items := []string{"section_header"}
	if f.Type.Categorical() || f.Type == TypeCheckbox {
		items = append(items, "choices")
	}
	if f.Type == TypeText {
		items = append(items, "validation")
	}
	if f.Validation.Numeric() || f.Validation.Temporal() {
		items = append(items, "validation_min", "validation_max")
	}
	return items
}

func metadataPresent(f *Field, item string) bool {
	switch item {
	case "section_header":
		return f.Section != ""
	case "choices":
		return len(f.Choices) > 0
	case "validation":
		return f.Validation != ValidationNone
	case "validation_min":
		return f.Min != ""
	case "validation_max":
		return f.Max != ""
	}
	return false
}

// Completeness scores every field and returns the per-field breakdown plus
// the aggregate mean, the report summary's completeness score.
func Completeness(d *Dictionary) ([]FieldCompleteness, float64) {
	if len(d.Fields) == 0 {
		return nil, 0
	}
	out := make([]FieldCompleteness, 0, len(d.Fields))
	var total float64
	for i := range d.Fields {
		f := &d.Fields[i]
		items := expectedMetadata(f)
		fc := FieldCompleteness{Variable: f.Variable, Score: 1}
		if len(items) > 0 {
			present := 0
			for _, item := range items {
				if metadataPresent(f, item) {
					present++
				} else {
					fc.Missing = append(fc.Missing, item)
				}
			}
			fc.Score = float64(present) / float64(len(items))
		}
		total += fc.Score
		out = append(out, fc)
	}
	return out, total / float64(len(d.Fields))
}
