// Package dataset provides the in-memory rectangular datasets that summary
// tables are built from, plus readers for delimited text and xlsx workbooks.
package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Dataset is an immutable dataset with named columns and string cells.
// Rows shorter than the header are padded with empty cells; longer rows
// are truncated.
type Dataset struct {
	name    string
	columns []string
	index   map[string]int
	rows    [][]string
}

// Profile captures per-column facts used for summary-type inference.
type Profile struct {
	NonMissing int
	Missing    int
	// Numeric counts values that parse as numbers among the non-missing.
	Numeric int
	// Levels holds distinct non-missing values. Fully numeric level sets
	// sort by value, otherwise lexically.
	Levels []string
}

// New builds a Dataset from a header and rows.
func New(name string, columns []string, rows [][]string) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("dataset %q: no columns", name)
	}
	index := make(map[string]int, len(columns))
	cols := make([]string, len(columns))
	for i, c := range columns {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, fmt.Errorf("dataset %q: column %d has an empty name", name, i+1)
		}
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("dataset %q: duplicate column %q", name, c)
		}
		cols[i] = c
		index[c] = i
	}
	norm := make([][]string, len(rows))
	for i, r := range rows {
		nr := make([]string, len(cols))
		copy(nr, r)
		norm[i] = nr
	}
	return &Dataset{name: name, columns: cols, index: index, rows: norm}, nil
}

// Name returns the dataset name, usually the source file base name.
func (d *Dataset) Name() string { return d.name }

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// NumRows returns the number of data rows.
func (d *Dataset) NumRows() int { return len(d.rows) }

// NumCols returns the number of columns.
func (d *Dataset) NumCols() int { return len(d.columns) }

// HasColumn reports whether a column exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column returns the values of a column in row order.
func (d *Dataset) Column(name string) ([]string, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(d.rows))
	for r, row := range d.rows {
		out[r] = row[i]
	}
	return out, true
}

// Cell returns a single cell value.
func (d *Dataset) Cell(row int, column string) (string, bool) {
	i, ok := d.index[column]
	if !ok || row < 0 || row >= len(d.rows) {
		return "", false
	}
	return d.rows[row][i], true
}

// Numeric returns the parsed non-missing values of a column in row order.
// Values that are neither missing nor numeric are skipped.
func (d *Dataset) Numeric(name string) ([]float64, bool) {
	vals, ok := d.Column(name)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if IsMissing(v) {
			continue
		}
		if f, ok := ParseNumber(v); ok {
			out = append(out, f)
		}
	}
	return out, true
}

// Profile inspects a column and returns its missingness, numeric count,
// and distinct levels.
func (d *Dataset) Profile(name string) (Profile, bool) {
	vals, ok := d.Column(name)
	if !ok {
		return Profile{}, false
	}
	var p Profile
	seen := map[string]bool{}
	for _, v := range vals {
		if IsMissing(v) {
			p.Missing++
			continue
		}
		p.NonMissing++
		v = strings.TrimSpace(v)
		if _, ok := ParseNumber(v); ok {
			p.Numeric++
		}
		if !seen[v] {
			seen[v] = true
			p.Levels = append(p.Levels, v)
		}
	}
	sortLevels(p.Levels)
	return p, true
}

// IsMissing reports whether a raw cell counts as a missing observation.
// Empty cells and the usual NA spellings qualify.
func IsMissing(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	switch strings.ToLower(s) {
	case "na", "n/a", "nan":
		return true
	}
	return false
}

// ParseNumber parses a numeric cell. It tolerates percent signs,
// non-breaking spaces, and comma decimal separators.
func ParseNumber(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.ReplaceAll(raw, " ", "")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	switch {
	case cpos >= 0 && dpos >= 0:
		// Both present: the later one is the decimal separator.
		if cpos > dpos {
			raw = strings.ReplaceAll(raw, ".", "")
			raw = strings.ReplaceAll(raw, ",", ".")
		} else {
			raw = strings.ReplaceAll(raw, ",", "")
		}
	case cpos >= 0:
		if strings.Count(raw, ",") == 1 {
			raw = strings.ReplaceAll(raw, ",", ".")
		} else {
			raw = strings.ReplaceAll(raw, ",", "")
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func sortLevels(levels []string) {
	nums := make([]float64, len(levels))
	allNumeric := true
	for i, l := range levels {
		f, ok := ParseNumber(l)
		if !ok {
			allNumeric = false
			break
		}
		nums[i] = f
	}
	if allNumeric {
		sort.SliceStable(levels, func(i, j int) bool {
			a, _ := ParseNumber(levels[i])
			b, _ := ParseNumber(levels[j])
			return a < b
		})
		return
	}
	sort.Strings(levels)
}
