package extras

import "github.com/kyleGrealis/sumExtras/internal/summary"

// StyleOptions trims the full styling pipeline. The zero value applies
// everything, matching the usual report layout.
type StyleOptions struct {
	SkipOverall bool
	SkipPValues bool
}

// Style applies the standard report treatment in a fixed order: bold
// variable labels, blank the label-column header, append the overall
// column, append per-variable p-values, then clean missingness
// artifacts. Errors from the added columns propagate unwrapped, so a
// degenerate grouping surfaces exactly as the test reported it.
func Style(t *summary.Table, opts StyleOptions) (*summary.Table, error) {
	out := t.BoldLabels().ModifyHeader("label", "")
	var err error
	if !opts.SkipOverall {
		out, err = out.AddOverall()
		if err != nil {
			return nil, err
		}
	}
	if !opts.SkipPValues {
		out, err = out.AddPValue()
		if err != nil {
			return nil, err
		}
	}
	return Clean(out), nil
}
