package summary

import (
	"errors"
	"math"
	"strings"

	"github.com/kyleGrealis/sumExtras/internal/dataset"
	"github.com/kyleGrealis/sumExtras/internal/stats"
)

// PValueDigits is the precision of rendered p-values.
const PValueDigits = 3

// AddPValue appends a p-value column comparing groups per variable:
// Kruskal-Wallis for continuous variables, chi-square on the level
// contingency for categorical and dichotomous ones. Survey tables are
// tested on the unweighted observations. Variables whose test cannot
// run (a single level, say) get a blank cell.
func (t *Table) AddPValue() (*Table, error) {
	if t.Inputs.Options.By == "" {
		return nil, errors.New("summary: p-values require a grouped table")
	}
	if t.HasColumn("p.value") {
		return nil, errors.New("summary: p-value column already present")
	}

	frame := t.Inputs.Frame()
	include, err := t.Inputs.ResolveInclude()
	if err != nil {
		return nil, err
	}
	types, err := resolveTypes(frame, include, t.Inputs.Options.Types)
	if err != nil {
		return nil, err
	}
	groups, err := partition(frame, t.Inputs.Options.By)
	if err != nil {
		return nil, err
	}

	out := t.clone()
	out.Columns = append(out.Columns, Column{Name: "p.value", Header: "p-value"})
	var methods []string
	seen := map[string]bool{}
	for _, v := range include {
		p, method := variablePValue(frame, groups, v, types[v])
		if method != "" && !seen[method] {
			seen[method] = true
			methods = append(methods, method)
		}
		text := stats.FormatPValue(p, PValueDigits)
		for i := range out.Rows {
			if out.Rows[i].Variable == v && out.Rows[i].RowType == RowLabel {
				out.Rows[i].Cells["p.value"] = text
				break
			}
		}
	}
	if len(methods) > 0 {
		out.Footnotes = append(out.Footnotes, strings.Join(methods, "; "))
	}
	return out, nil
}

func variablePValue(frame *dataset.Dataset, groups []group, v string, typ VarType) (float64, string) {
	col, ok := frame.Column(v)
	if !ok {
		return math.NaN(), ""
	}
	switch typ {
	case Continuous, Continuous2:
		vals := make([][]float64, len(groups))
		for gi, g := range groups {
			for _, r := range g.rows {
				if dataset.IsMissing(col[r]) {
					continue
				}
				if f, ok := dataset.ParseNumber(col[r]); ok {
					vals[gi] = append(vals[gi], f)
				}
			}
		}
		res, err := stats.KruskalWallis(vals)
		if err != nil {
			return math.NaN(), ""
		}
		return res.P, res.Method

	case Categorical, Dichotomous:
		levels := columnLevels(col)
		if len(levels) == 0 {
			return math.NaN(), ""
		}
		levelIdx := make(map[string]int, len(levels))
		for i, l := range levels {
			levelIdx[l] = i
		}
		counts := make([][]float64, len(levels))
		for i := range counts {
			counts[i] = make([]float64, len(groups))
		}
		for gi, g := range groups {
			for _, r := range g.rows {
				if dataset.IsMissing(col[r]) {
					continue
				}
				if li, ok := levelIdx[strings.TrimSpace(col[r])]; ok {
					counts[li][gi]++
				}
			}
		}
		res, err := stats.ChiSquare(counts)
		if err != nil {
			return math.NaN(), ""
		}
		return res.P, res.Method
	}
	return math.NaN(), ""
}
