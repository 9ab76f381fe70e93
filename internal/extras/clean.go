package extras

import (
	"regexp"

	"github.com/kyleGrealis/sumExtras/internal/summary"
)

// MissingSymbol is what cleaned tables display in place of blank
// statistic cells.
const MissingSymbol = "---"

// Statistic text that means "nothing here": a standalone NA or Inf
// token anywhere in the cell, or a count of zero. Word boundaries keep
// values like "89 (45%)" or "Influenza" intact.
var (
	naToken  = regexp.MustCompile(`\bNA\b`)
	infToken = regexp.MustCompile(`\bInf\b`)
)

const zeroCount = "0 (0%)"

// Clean blanks statistic cells whose text is only a missingness
// artifact, then points blank cells at the dash symbol. The symbol is
// scoped to rows that should always carry a statistic: label rows of
// continuous and dichotomous variables, and level rows of categorical
// and multi-line continuous ones. Cleaning twice changes nothing.
func Clean(t *summary.Table) *summary.Table {
	out := t.ModifyBody(summary.StatColumns, summary.AllRows, func(cell string) string {
		if cell == zeroCount || naToken.MatchString(cell) || infToken.MatchString(cell) {
			return ""
		}
		return cell
	})
	return out.SetMissingSymbol(MissingSymbol, summary.StatColumns, statBearingRow)
}

func statBearingRow(r summary.Row) bool {
	switch r.VarType {
	case summary.Continuous, summary.Dichotomous:
		return r.RowType == summary.RowLabel
	case summary.Continuous2, summary.Categorical:
		return r.RowType == summary.RowLevel
	}
	return false
}
