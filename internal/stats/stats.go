// Package stats implements the hypothesis tests behind summary-table
// p-values: Pearson chi-square for categorical variables and
// Kruskal-Wallis for continuous ones.
package stats

import (
	"errors"
	"math"
	"sort"
)

// Result holds a test statistic with its degrees of freedom and p-value.
type Result struct {
	Statistic float64
	DF        int
	P         float64
	Method    string
}

// ChiSquare runs Pearson's chi-square test of independence on a
// contingency table of counts, rows by levels and columns by groups.
// Zero-margin rows and columns are dropped first. Yates' continuity
// correction applies to 2x2 tables, matching common practice.
func ChiSquare(counts [][]float64) (Result, error) {
	counts = dropZeroMargins(counts)
	nr := len(counts)
	if nr < 2 {
		return Result{}, errors.New("chi-square: need at least two levels with observations")
	}
	nc := len(counts[0])
	if nc < 2 {
		return Result{}, errors.New("chi-square: need at least two groups with observations")
	}

	rowSum := make([]float64, nr)
	colSum := make([]float64, nc)
	var total float64
	for i, row := range counts {
		for j, v := range row {
			if v < 0 {
				return Result{}, errors.New("chi-square: negative count")
			}
			rowSum[i] += v
			colSum[j] += v
			total += v
		}
	}

	yates := nr == 2 && nc == 2
	var stat float64
	for i := range counts {
		for j := range counts[i] {
			expected := rowSum[i] * colSum[j] / total
			d := math.Abs(counts[i][j] - expected)
			if yates {
				d -= 0.5
				if d < 0 {
					d = 0
				}
			}
			stat += d * d / expected
		}
	}

	df := (nr - 1) * (nc - 1)
	method := "Pearson's chi-squared test"
	if yates {
		method += " with Yates' continuity correction"
	}
	return Result{Statistic: stat, DF: df, P: ChiSquareSurvival(stat, df), Method: method}, nil
}

// KruskalWallis runs the Kruskal-Wallis rank sum test across groups of
// observations, with midranks and the usual tie correction.
func KruskalWallis(groups [][]float64) (Result, error) {
	var kept [][]float64
	for _, g := range groups {
		if len(g) > 0 {
			kept = append(kept, g)
		}
	}
	if len(kept) < 2 {
		return Result{}, errors.New("kruskal-wallis: need at least two groups with observations")
	}

	var pooled []float64
	for _, g := range kept {
		pooled = append(pooled, g...)
	}
	n := len(pooled)
	ranks, tieSum := midranks(pooled)

	var stat float64
	offset := 0
	for _, g := range kept {
		var rankSum float64
		for i := range g {
			rankSum += ranks[offset+i]
		}
		offset += len(g)
		stat += rankSum * rankSum / float64(len(g))
	}
	nf := float64(n)
	stat = 12/(nf*(nf+1))*stat - 3*(nf+1)

	correction := 1 - tieSum/(nf*nf*nf-nf)
	if correction <= 0 {
		return Result{}, errors.New("kruskal-wallis: all observations are identical")
	}
	stat /= correction

	df := len(kept) - 1
	return Result{
		Statistic: stat,
		DF:        df,
		P:         ChiSquareSurvival(stat, df),
		Method:    "Kruskal-Wallis rank sum test",
	}, nil
}

// midranks returns average ranks (1-based) for the values and the tie
// term sum(t^3 - t) over tied runs.
func midranks(vals []float64) ([]float64, float64) {
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return vals[idx[a]] < vals[idx[b]] })

	ranks := make([]float64, len(vals))
	var tieSum float64
	for i := 0; i < len(idx); {
		j := i
		for j < len(idx) && vals[idx[j]] == vals[idx[i]] {
			j++
		}
		avg := float64(i+j+1) / 2 // average of ranks i+1..j
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		t := float64(j - i)
		if t > 1 {
			tieSum += t*t*t - t
		}
		i = j
	}
	return ranks, tieSum
}

func dropZeroMargins(counts [][]float64) [][]float64 {
	if len(counts) == 0 {
		return nil
	}
	nc := 0
	for _, row := range counts {
		if len(row) > nc {
			nc = len(row)
		}
	}
	colHas := make([]bool, nc)
	var rows [][]float64
	for _, row := range counts {
		has := false
		for j := 0; j < nc; j++ {
			v := 0.0
			if j < len(row) {
				v = row[j]
			}
			if v > 0 {
				has = true
				colHas[j] = true
			}
		}
		if has {
			padded := make([]float64, nc)
			copy(padded, row)
			rows = append(rows, padded)
		}
	}
	var out [][]float64
	for _, row := range rows {
		var r []float64
		for j, keep := range colHas {
			if keep {
				r = append(r, row[j])
			}
		}
		out = append(out, r)
	}
	return out
}
