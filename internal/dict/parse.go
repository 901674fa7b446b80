package dict

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"ddlint/internal/finding"
)

// Headers are the canonical dictionary columns A-R, in file order.
var Headers = []string{
	"variable_name",
	"form_name",
	"section_header",
	"field_type",
	"field_label",
	"choices_calculations_or_slider_labels",
	"field_note",
	"text_validation_type_or_show_slider_number",
	"text_validation_min",
	"text_validation_max",
	"identifier",
	"branching_logic",
	"required_field",
	"custom_alignment",
	"question_number",
	"matrix_group_name",
	"matrix_ranking",
	"field_annotation",
}

var variableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Row is one raw dictionary row keyed by canonical header name.
type Row map[string]string

// Load reads a dictionary CSV and normalizes it. Unreadable or structurally
// unparseable files are fatal; malformed individual rows become
// dictionary_malformed findings and their fields are excluded.
func Load(path string) (*Dictionary, []finding.Finding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dict: open %q: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses dictionary CSV content from r.
func Read(r io.Reader) (*Dictionary, []finding.Finding, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("dict: read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.ToLower(h))] = i
	}
	if _, ok := idx["variable_name"]; !ok {
		return nil, nil, fmt.Errorf("dict: header lacks variable_name column")
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("dict: read row: %w", err)
		}
		row := make(Row, len(Headers))
		for _, h := range Headers {
			if i, ok := idx[h]; ok && i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}

	d, malformed := Parse(rows)
	return d, malformed, nil
}

// Parse normalizes raw rows into a Dictionary. Rows that cannot yield a
// usable field produce dictionary_malformed findings instead of aborting.
func Parse(rows []Row) (*Dictionary, []finding.Finding) {
	d := &Dictionary{byVar: make(map[string]int)}
	var malformed []finding.Finding

	reject := func(rowNum int, variable, reason string) {
		malformed = append(malformed, finding.Finding{
			Type:     finding.DictionaryMalformed,
			Severity: finding.SeverityError,
			Variable: variable,
			Where:    map[string]string{"dictionary_row": fmt.Sprintf("%d", rowNum)},
			Observed: reason,
			Suggestion: "Fix the dictionary row; the field is excluded from " +
				"all further checks until it parses.",
		})
	}

	for n, row := range rows {
		rowNum := n + 2 // 1-based, after the header row
		variable := strings.TrimSpace(row["variable_name"])
		form := strings.TrimSpace(row["form_name"])
		rawType := strings.TrimSpace(row["field_type"])
		label := strings.TrimSpace(row["field_label"])

		switch {
		case variable == "":
			reject(rowNum, "", "missing variable_name")
			continue
		case form == "" || rawType == "" || label == "":
			reject(rowNum, variable, "missing one of form_name, field_type, field_label")
			continue
		case !variableNameRe.MatchString(variable):
			reject(rowNum, variable, "variable name must be alphanumeric/underscore and not start with a digit")
			continue
		}
		ft := FieldType(strings.ToLower(rawType))
		if !knownFieldTypes[ft] {
			reject(rowNum, variable, fmt.Sprintf("unknown field type %q", rawType))
			continue
		}
		if d.Has(variable) {
			reject(rowNum, variable, "duplicate variable name")
			continue
		}

		branching := strings.TrimSpace(row["branching_logic"])
		f := Field{
			Variable:      variable,
			Form:          form,
			Section:       strings.TrimSpace(row["section_header"]),
			Type:          ft,
			Label:         label,
			Choices:       parseChoices(ft, row["choices_calculations_or_slider_labels"]),
			Note:          strings.TrimSpace(row["field_note"]),
			Validation:    Validation(strings.ToLower(strings.TrimSpace(row["text_validation_type_or_show_slider_number"]))),
			Min:           strings.TrimSpace(row["text_validation_min"]),
			Max:           strings.TrimSpace(row["text_validation_max"]),
			Identifier:    flag(row["identifier"]),
			Branching:     branching,
			BranchingRefs: ParseRefs(branching),
			Required:      flag(row["required_field"]),
			MatrixGroup:   strings.TrimSpace(row["matrix_group_name"]),
			MatrixRank:    flag(row["matrix_ranking"]),
			Annotation:    strings.TrimSpace(row["field_annotation"]),
		}

		d.byVar[variable] = len(d.Fields)
		d.Fields = append(d.Fields, f)
	}

	return d, malformed
}

// parseChoices splits Column F on "|" then on the first "," per token.
// Code strings are preserved verbatim apart from surrounding whitespace.
// yesno/truefalse fields synthesize their implicit pairs when Column F is
// blank.
func parseChoices(ft FieldType, raw string) []Choice {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		switch ft {
		case TypeYesNo:
			return []Choice{{Code: "0", Label: "No"}, {Code: "1", Label: "Yes"}}
		case TypeTrueFalse:
			return []Choice{{Code: "0", Label: "False"}, {Code: "1", Label: "True"}}
		}
		return nil
	}
	if ft != TypeRadio && ft != TypeDropdown && ft != TypeCheckbox &&
		ft != TypeYesNo && ft != TypeTrueFalse {
		return nil
	}

	var out []Choice
	for _, part := range strings.Split(raw, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if code, label, ok := strings.Cut(part, ","); ok {
			out = append(out, Choice{Code: strings.TrimSpace(code), Label: strings.TrimSpace(label)})
		} else {
			// Whole token as label with an implicit positional code.
			out = append(out, Choice{Code: fmt.Sprintf("%d", len(out)+1), Label: part})
		}
	}
	return out
}

func flag(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "y")
}
