package summary

import (
	"errors"
	"fmt"
)

// AddOverall appends an ungrouped statistics column to a grouped table.
// The column lands after the per-group columns, so existing p-value
// columns keep their place at the end.
func (t *Table) AddOverall() (*Table, error) {
	if t.Inputs.Options.By == "" {
		return nil, errors.New("summary: add overall requires a grouped table")
	}
	if t.HasColumn("stat_0") {
		return nil, errors.New("summary: overall column already present")
	}

	include, err := t.Inputs.ResolveInclude()
	if err != nil {
		return nil, err
	}
	in := t.Inputs
	opts := in.Options
	opts.By = ""
	opts.Include = include
	in.Options = opts
	overall, err := build(in)
	if err != nil {
		return nil, fmt.Errorf("summary: build overall column: %w", err)
	}
	if len(overall.Rows) != len(t.Rows) {
		return nil, errors.New("summary: overall rows do not align")
	}

	out := t.clone()
	header := ""
	for _, c := range overall.Columns {
		if c.Name == "stat_0" {
			header = "Overall, " + c.Header
		}
	}
	out.insertColumn(Column{Name: "stat_0", Header: header}, out.statColumnEnd())
	for i := range out.Rows {
		or := overall.Rows[i]
		tr := out.Rows[i]
		if or.Variable != tr.Variable || or.RowType != tr.RowType || or.Label != tr.Label {
			return nil, errors.New("summary: overall rows do not align")
		}
		if v, ok := or.Cells["stat_0"]; ok {
			out.Rows[i].Cells["stat_0"] = v
		}
	}
	return out, nil
}
