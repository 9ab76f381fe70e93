// Package extras layers report-ready styling onto summary tables:
// dictionary-driven variable labels, missing-cell cleanup, and the
// usual publication extras (bold labels, overall column, p-values)
// applied in one call.
package extras

import (
	"errors"

	"github.com/kyleGrealis/sumExtras/internal/dict"
	"github.com/kyleGrealis/sumExtras/internal/summary"
)

// Label pairs a variable name with its display description.
type Label struct {
	Variable    string `json:"variable"`
	Description string `json:"description"`
}

// ResolveLabels returns the dictionary entries whose variable appears
// among the dataset columns, in dictionary order. Variables without a
// dictionary entry are dropped silently.
func ResolveLabels(columns []string, d *dict.Dictionary) []Label {
	if d == nil {
		return nil
	}
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	var out []Label
	for _, e := range d.Entries() {
		if present[e.Variable] {
			out = append(out, Label{Variable: e.Variable, Description: e.Description})
		}
	}
	return out
}

// AutoLabel rebuilds the table with dictionary descriptions as variable
// labels. Labels supplied at construction time win over the dictionary,
// and only summarized variables are relabeled. Rebuilding recomputes
// the statistics from the stored inputs, so styling applied to the old
// table does not carry over.
func AutoLabel(t *summary.Table, d *dict.Dictionary) (*summary.Table, error) {
	if t == nil {
		return nil, errors.New("extras: nil table")
	}
	if d == nil || d.Len() == 0 {
		return nil, &MissingDictionaryError{Op: "auto-label"}
	}
	var rebuild func(summary.BuildOptions) (*summary.Table, error)
	switch t.Kind {
	case summary.KindStandard:
		rebuild = func(o summary.BuildOptions) (*summary.Table, error) {
			return summary.Build(t.Inputs.Data, o)
		}
	case summary.KindSurvey:
		rebuild = func(o summary.BuildOptions) (*summary.Table, error) {
			return summary.BuildSurvey(t.Inputs.Design, o)
		}
	default:
		return nil, &UnsupportedTableKindError{Kind: t.Kind}
	}
	frame := t.Inputs.Frame()
	if frame == nil {
		return nil, errors.New("extras: table carries no source data")
	}
	include, err := t.Inputs.ResolveInclude()
	if err != nil {
		return nil, err
	}
	included := make(map[string]bool, len(include))
	for _, v := range include {
		included[v] = true
	}

	manual := t.Inputs.Options.Labels
	merged := make(map[string]string, len(manual)+d.Len())
	for v, desc := range manual {
		merged[v] = desc
	}
	for _, l := range ResolveLabels(frame.Columns(), d) {
		if !included[l.Variable] {
			continue
		}
		if _, ok := manual[l.Variable]; ok {
			continue
		}
		merged[l.Variable] = l.Description
	}

	opts := t.Inputs.Options
	opts.Labels = merged
	return rebuild(opts)
}
