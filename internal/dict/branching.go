package dict

import (
	"fmt"
	"regexp"
	"strings"
)

// refRe matches variable references in branching logic: [var] or [var(code)].
var refRe = regexp.MustCompile(`\[([A-Za-z_][A-Za-z0-9_]*)(?:\(([^)]*)\))?\]`)

// condRe matches the single-comparison expressions the heuristics
// understand: [var]='code' or [var(code)]='1', with optional whitespace and
// either quote style.
var condRe = regexp.MustCompile(`^\s*\[([A-Za-z_][A-Za-z0-9_]*)(?:\(([^)]*)\))?\]\s*=\s*['"]([^'"]*)['"]\s*$`)

// Condition is a parsed single-comparison branching expression.
type Condition struct {
	Var      string // referenced variable
	Checkbox bool   // true for the [var(code)] form
	Code     string // checkbox code for the [var(code)] form
	Value    string // right-hand comparison value
}

// Column returns the dataset column the condition reads.
func (c Condition) Column() string {
	if c.Checkbox {
		return c.Var + "___" + c.Code
	}
	return c.Var
}

// Holds evaluates the condition against an observed raw value of its
// column.
func (c Condition) Holds(observed string) bool {
	return strings.TrimSpace(observed) == c.Value
}

// ParseCondition parses a single-comparison branching expression. Compound
// expressions (and/or, inequalities) are out of scope and return an error;
// callers degrade to silence.
func ParseCondition(expr string) (Condition, error) {
	m := condRe.FindStringSubmatch(expr)
	if m == nil {
		return Condition{}, fmt.Errorf("dict: unsupported branching expression %q", expr)
	}
	c := Condition{Var: m[1], Value: m[3]}
	if m[2] != "" {
		c.Checkbox = true
		c.Code = m[2]
	}
	return c, nil
}

// ParseRefs extracts every variable referenced by a branching expression,
// deduplicated, in order of first appearance.
func ParseRefs(expr string) []string {
	if expr == "" {
		return nil
	}
	seen := make(map[string]bool)
	var refs []string
	for _, m := range refRe.FindAllStringSubmatch(expr, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			refs = append(refs, m[1])
		}
	}
	return refs
}
