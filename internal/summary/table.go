// Package summary builds and styles demographic summary tables: grouped
// descriptive statistics with label, level, and missing rows, rendered
// to markdown, HTML, or plain text.
package summary

import (
	"strings"

	"github.com/kyleGrealis/sumExtras/internal/dataset"
)

// Kind tags how a table was constructed.
type Kind string

const (
	KindStandard Kind = "standard"
	KindSurvey   Kind = "survey"
)

// RowType classifies body rows.
type RowType string

const (
	RowLabel   RowType = "label"
	RowLevel   RowType = "level"
	RowMissing RowType = "missing"
	RowGroup   RowType = "variable_group"
)

// VarType classifies how a variable is summarized.
type VarType string

const (
	Continuous  VarType = "continuous"
	Continuous2 VarType = "continuous2"
	Categorical VarType = "categorical"
	Dichotomous VarType = "dichotomous"
)

// Column is a display column. Name is the stable identifier ("label",
// "stat_0", "stat_1", ..., "p.value"); Header is the display text.
type Column struct {
	Name   string
	Header string
}

// Row is one body row. Cells maps column names to display text; an
// absent or empty cell is blank. MissingSymbol maps column names to the
// text shown in place of blank cells.
type Row struct {
	Variable      string
	VarType       VarType
	RowType       RowType
	Label         string
	Bold          bool
	Cells         map[string]string
	MissingSymbol map[string]string
}

// Inputs records everything a table was built from, so styling
// operations can rebuild it with adjusted options.
type Inputs struct {
	Data    *dataset.Dataset
	Design  *dataset.Survey
	Options BuildOptions
}

// Frame returns the dataset behind the inputs, unwrapping survey
// designs.
func (in Inputs) Frame() *dataset.Dataset {
	if in.Design != nil {
		return in.Design.Frame()
	}
	return in.Data
}

// Table is an immutable summary table. Styling methods return modified
// copies and never change the receiver.
type Table struct {
	ID        string
	Kind      Kind
	Inputs    Inputs
	Title     string
	Columns   []Column
	Rows      []Row
	Footnotes []string
	Theme     Theme
}

// ColumnSelector selects columns for bulk operations.
type ColumnSelector func(Column) bool

// RowSelector selects rows for bulk operations.
type RowSelector func(Row) bool

// StatColumns selects the statistic columns (stat_0, stat_1, ...).
func StatColumns(c Column) bool { return strings.HasPrefix(c.Name, "stat_") }

// AllColumns selects every column.
func AllColumns(Column) bool { return true }

// NamedColumns selects columns by exact name.
func NamedColumns(names ...string) ColumnSelector {
	return func(c Column) bool {
		for _, n := range names {
			if c.Name == n {
				return true
			}
		}
		return false
	}
}

// AllRows selects every row.
func AllRows(Row) bool { return true }

func (t *Table) clone() *Table {
	out := &Table{
		ID:     t.ID,
		Kind:   t.Kind,
		Inputs: t.Inputs,
		Title:  t.Title,
		Theme:  t.Theme,
	}
	out.Footnotes = make([]string, len(t.Footnotes))
	copy(out.Footnotes, t.Footnotes)
	out.Columns = make([]Column, len(t.Columns))
	copy(out.Columns, t.Columns)
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		nr := r
		nr.Cells = make(map[string]string, len(r.Cells))
		for k, v := range r.Cells {
			nr.Cells[k] = v
		}
		if r.MissingSymbol != nil {
			nr.MissingSymbol = make(map[string]string, len(r.MissingSymbol))
			for k, v := range r.MissingSymbol {
				nr.MissingSymbol[k] = v
			}
		}
		out.Rows[i] = nr
	}
	return out
}

// ModifyBody applies fn to every selected cell, including blank ones.
func (t *Table) ModifyBody(cols ColumnSelector, rows RowSelector, fn func(string) string) *Table {
	out := t.clone()
	for i := range out.Rows {
		if !rows(out.Rows[i]) {
			continue
		}
		for _, c := range out.Columns {
			if c.Name == "label" || !cols(c) {
				continue
			}
			out.Rows[i].Cells[c.Name] = fn(out.Rows[i].Cells[c.Name])
		}
	}
	return out
}

// SetMissingSymbol records the symbol to display in place of blank
// cells for the selected rows and columns.
func (t *Table) SetMissingSymbol(symbol string, cols ColumnSelector, rows RowSelector) *Table {
	out := t.clone()
	for i := range out.Rows {
		if !rows(out.Rows[i]) {
			continue
		}
		for _, c := range out.Columns {
			if c.Name == "label" || !cols(c) {
				continue
			}
			if out.Rows[i].MissingSymbol == nil {
				out.Rows[i].MissingSymbol = map[string]string{}
			}
			out.Rows[i].MissingSymbol[c.Name] = symbol
		}
	}
	return out
}

// BoldLabels bolds variable label rows and group header rows.
func (t *Table) BoldLabels() *Table {
	out := t.clone()
	for i := range out.Rows {
		if out.Rows[i].RowType == RowLabel || out.Rows[i].RowType == RowGroup {
			out.Rows[i].Bold = true
		}
	}
	return out
}

// ModifyHeader replaces the display header of the named column. Unknown
// columns are left untouched.
func (t *Table) ModifyHeader(name, text string) *Table {
	out := t.clone()
	for i := range out.Columns {
		if out.Columns[i].Name == name {
			out.Columns[i].Header = text
		}
	}
	return out
}

// WithTheme returns a copy of the table using the given theme.
func (t *Table) WithTheme(th Theme) *Table {
	out := t.clone()
	out.Theme = th
	return out
}

// WithTitle returns a copy of the table with a caption.
func (t *Table) WithTitle(title string) *Table {
	out := t.clone()
	out.Title = title
	return out
}

// HasColumn reports whether a display column exists.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Cell returns the display text of a cell: the stored text, or the
// row's missing symbol when blank.
func (t *Table) Cell(row int, column string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if v := r.Cells[column]; v != "" {
		return v
	}
	if sym, ok := r.MissingSymbol[column]; ok {
		return sym
	}
	return ""
}

// RowByLabel finds the first row with the given label, for tests and
// lookups.
func (t *Table) RowByLabel(label string) (Row, bool) {
	for _, r := range t.Rows {
		if r.Label == label {
			return r, true
		}
	}
	return Row{}, false
}

// insertColumn places col at idx, shifting later columns right.
func (t *Table) insertColumn(col Column, idx int) {
	if idx < 0 || idx > len(t.Columns) {
		idx = len(t.Columns)
	}
	t.Columns = append(t.Columns, Column{})
	copy(t.Columns[idx+1:], t.Columns[idx:])
	t.Columns[idx] = col
}

// statColumnEnd returns the index just past the last stat_ column.
func (t *Table) statColumnEnd() int {
	end := 1 // after label
	for i, c := range t.Columns {
		if strings.HasPrefix(c.Name, "stat_") {
			end = i + 1
		}
	}
	return end
}
