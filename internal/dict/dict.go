// Package dict normalizes raw data-dictionary rows into a typed field
// catalog. Field order follows the source file and is significant: matrix
// consecutiveness checks and primary-key fallback both rely on it.
package dict

// FieldType is the declared kind of a dictionary field.
type FieldType string

const (
	TypeText        FieldType = "text"
	TypeNotes       FieldType = "notes"
	TypeRadio       FieldType = "radio"
	TypeDropdown    FieldType = "dropdown"
	TypeCheckbox    FieldType = "checkbox"
	TypeCalc        FieldType = "calc"
	TypeFile        FieldType = "file"
	TypeYesNo       FieldType = "yesno"
	TypeTrueFalse   FieldType = "truefalse"
	TypeDescriptive FieldType = "descriptive"
	TypeSlider      FieldType = "slider"
)

var knownFieldTypes = map[FieldType]bool{
	TypeText: true, TypeNotes: true, TypeRadio: true, TypeDropdown: true,
	TypeCheckbox: true, TypeCalc: true, TypeFile: true, TypeYesNo: true,
	TypeTrueFalse: true, TypeDescriptive: true, TypeSlider: true,
}

// Categorical reports whether the type carries an allowed-choice set.
func (t FieldType) Categorical() bool {
	switch t {
	case TypeRadio, TypeDropdown, TypeYesNo, TypeTrueFalse:
		return true
	}
	return false
}

// Validation is the declared text-validation kind, empty when none.
type Validation string

const (
	ValidationNone        Validation = ""
	ValidationInteger     Validation = "integer"
	ValidationNumber      Validation = "number"
	ValidationDateYMD     Validation = "date_ymd"
	ValidationDateMDY     Validation = "date_mdy"
	ValidationDateDMY     Validation = "date_dmy"
	ValidationDatetimeYMD Validation = "datetime_ymd"
	ValidationDatetimeMDY Validation = "datetime_mdy"
	ValidationDatetimeDMY Validation = "datetime_dmy"
	ValidationEmail       Validation = "email"
	ValidationPhone       Validation = "phone"
	ValidationTime        Validation = "time"
	ValidationZipcode     Validation = "zipcode"
)

// Numeric reports whether the validation declares an integer or number.
func (v Validation) Numeric() bool {
	return v == ValidationInteger || v == ValidationNumber
}

// Temporal reports whether the validation declares a date or datetime.
func (v Validation) Temporal() bool {
	switch v {
	case ValidationDateYMD, ValidationDateMDY, ValidationDateDMY,
		ValidationDatetimeYMD, ValidationDatetimeMDY, ValidationDatetimeDMY:
		return true
	}
	return false
}

// Choice is one (code, label) pair. Codes are opaque strings and are never
// numerically coerced.
type Choice struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Field is one normalized dictionary row.
type Field struct {
	Variable      string
	Form          string
	Section       string
	Type          FieldType
	Label         string
	Choices       []Choice
	Note          string
	Validation    Validation
	Min           string
	Max           string
	Identifier    bool
	Branching     string
	BranchingRefs []string
	Required      bool
	MatrixGroup   string
	MatrixRank    bool
	Annotation    string
}

// CheckboxColumns returns the expected dataset expansion columns for a
// checkbox field, in choice order.
func (f *Field) CheckboxColumns() []string {
	cols := make([]string, 0, len(f.Choices))
	for _, c := range f.Choices {
		cols = append(cols, f.Variable+"___"+c.Code)
	}
	return cols
}

// ChoicePairs renders the choices as "code=Label" strings, the wire form
// used in findings and summaries.
func (f *Field) ChoicePairs() []string {
	out := make([]string, 0, len(f.Choices))
	for _, c := range f.Choices {
		out = append(out, c.Code+"="+c.Label)
	}
	return out
}

// Dictionary is an ordered field catalog with derived indexes.
type Dictionary struct {
	Fields []Field

	byVar map[string]int
}

// Field returns the field with the given variable name.
func (d *Dictionary) Field(variable string) (*Field, bool) {
	i, ok := d.byVar[variable]
	if !ok {
		return nil, false
	}
	return &d.Fields[i], true
}

// Has reports whether the dictionary defines the variable.
func (d *Dictionary) Has(variable string) bool {
	_, ok := d.byVar[variable]
	return ok
}

// Variables returns field names in file order.
func (d *Dictionary) Variables() []string {
	out := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		out = append(out, f.Variable)
	}
	return out
}

// PrimaryKey returns record_id when defined, otherwise the first field by
// file order, or "" for an empty dictionary.
func (d *Dictionary) PrimaryKey() string {
	if d.Has("record_id") {
		return "record_id"
	}
	if len(d.Fields) == 0 {
		return ""
	}
	return d.Fields[0].Variable
}

// MatrixGroups returns group name -> member variables in file order.
func (d *Dictionary) MatrixGroups() map[string][]string {
	groups := make(map[string][]string)
	for _, f := range d.Fields {
		if f.MatrixGroup != "" {
			groups[f.MatrixGroup] = append(groups[f.MatrixGroup], f.Variable)
		}
	}
	return groups
}

// MatrixGroupNames returns group names ordered by first appearance.
func (d *Dictionary) MatrixGroupNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range d.Fields {
		if f.MatrixGroup != "" && !seen[f.MatrixGroup] {
			seen[f.MatrixGroup] = true
			names = append(names, f.MatrixGroup)
		}
	}
	return names
}

// Forms returns distinct form names in file order.
func (d *Dictionary) Forms() []string {
	seen := make(map[string]bool)
	var forms []string
	for _, f := range d.Fields {
		if f.Form != "" && !seen[f.Form] {
			seen[f.Form] = true
			forms = append(forms, f.Form)
		}
	}
	return forms
}
