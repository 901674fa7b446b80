// Package dataset loads a wide tabular export into a bounded in-memory
// model: exact row and blank counts from a single streaming pass, with at
// most a configured cap of sampled values buffered per column. Values are
// classified but never mutated.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Column is one dataset column with its bounded sample arena.
type Column struct {
	Name   string
	Blanks int // exact count over all rows

	// sample holds the raw values of the first sampled rows, blanks
	// included so samples stay row-aligned across columns.
	sample []string
}

// Sample returns the raw row-aligned sample values, blanks included.
func (c *Column) Sample() []string { return c.sample }

// NonBlank returns the trimmed non-blank sampled values.
func (c *Column) NonBlank() []string {
	out := make([]string, 0, len(c.sample))
	for _, v := range c.sample {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// BlankRate returns the exact blank fraction given the dataset row count.
func (c *Column) BlankRate(rows int) float64 {
	if rows == 0 {
		return 0
	}
	return float64(c.Blanks) / float64(rows)
}

// CheckboxGroup is a cluster of var___code columns under one base variable.
type CheckboxGroup struct {
	Variable string
	Codes    []string // in column order
}

// Dataset is the normalized table model.
type Dataset struct {
	Rows    int      // exact, from a full single pass
	Columns []string // file order
	Sampled int      // rows actually buffered per column

	cols   map[string]*Column
	groups []CheckboxGroup
}

// Column returns the named column.
func (d *Dataset) Column(name string) (*Column, bool) {
	c, ok := d.cols[name]
	return c, ok
}

// Has reports whether the dataset contains the column.
func (d *Dataset) Has(name string) bool {
	_, ok := d.cols[name]
	return ok
}

// CheckboxGroups returns detected var___code clusters ordered by first
// appearance of the base variable.
func (d *Dataset) CheckboxGroups() []CheckboxGroup { return d.groups }

// SampleScale extrapolates a count observed within the sample to the full
// dataset. With an unsaturated sample it is the identity.
func (d *Dataset) SampleScale(sampleCount int) int {
	if d.Sampled == 0 || d.Sampled >= d.Rows {
		return sampleCount
	}
	return int(float64(sampleCount)/float64(d.Sampled)*float64(d.Rows) + 0.5)
}

// Load reads a dataset CSV, buffering at most sampleCap values per column.
func Load(path string, sampleCap int) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()
	return Read(f, sampleCap)
}

// Read parses dataset CSV content from r.
func Read(r io.Reader, sampleCap int) (*Dataset, error) {
	if sampleCap <= 0 {
		sampleCap = 1
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}

	d := &Dataset{cols: make(map[string]*Column, len(header))}
	for _, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := d.cols[name]; dup {
			return nil, fmt.Errorf("dataset: duplicate column %q", name)
		}
		d.Columns = append(d.Columns, name)
		d.cols[name] = &Column{Name: name}
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read row %d: %w", d.Rows+2, err)
		}
		buffer := d.Rows < sampleCap
		for i, name := range d.Columns {
			var v string
			if i < len(rec) {
				v = rec[i]
			}
			col := d.cols[name]
			if strings.TrimSpace(v) == "" {
				col.Blanks++
			}
			if buffer {
				col.sample = append(col.sample, v)
			}
		}
		d.Rows++
	}
	d.Sampled = d.Rows
	if d.Sampled > sampleCap {
		d.Sampled = sampleCap
	}

	d.groups = detectCheckboxGroups(d.Columns)
	return d, nil
}

// detectCheckboxGroups clusters var___code columns under their base
// variable, keeping the base's order of first appearance.
func detectCheckboxGroups(columns []string) []CheckboxGroup {
	byBase := make(map[string][]string)
	var order []string
	for _, col := range columns {
		base, code, ok := strings.Cut(col, "___")
		if !ok || base == "" || code == "" {
			continue
		}
		if _, seen := byBase[base]; !seen {
			order = append(order, base)
		}
		byBase[base] = append(byBase[base], code)
	}
	groups := make([]CheckboxGroup, 0, len(order))
	for _, base := range order {
		groups = append(groups, CheckboxGroup{Variable: base, Codes: byBase[base]})
	}
	return groups
}

// DistinctNonBlank returns the sorted distinct trimmed non-blank values of
// a column's sample.
func (c *Column) DistinctNonBlank() []string {
	set := make(map[string]bool)
	for _, v := range c.NonBlank() {
		set[v] = true
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
