package summary

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/kyleGrealis/sumExtras/internal/dataset"
)

// MissingMode controls when a variable gets an Unknown row.
type MissingMode string

const (
	MissingIfAny  MissingMode = "ifany"
	MissingNo     MissingMode = "no"
	MissingAlways MissingMode = "always"
)

// VariableGroup inserts a header row above a run of related variables.
type VariableGroup struct {
	Label     string
	Variables []string
}

// BuildOptions configures table construction. The zero value summarizes
// every column, ungrouped, with Unknown rows where data is missing.
type BuildOptions struct {
	// By names the grouping column; empty builds a one-column table.
	By string
	// Include restricts and orders the summarized variables. Empty
	// means all columns except By and the survey weight column.
	Include []string
	// Labels overrides display labels per variable.
	Labels map[string]string
	// Types overrides summary types per variable.
	Types map[string]VarType
	Missing     MissingMode
	MissingText string
	// PercentDigits sets decimal places on percentages.
	PercentDigits int
	Groups        []VariableGroup
}

// Build constructs a summary table from a dataset.
func Build(ds *dataset.Dataset, opts BuildOptions) (*Table, error) {
	if ds == nil {
		return nil, errors.New("summary: nil dataset")
	}
	return build(Inputs{Data: ds, Options: opts})
}

// BuildSurvey constructs a weighted summary table from a survey design.
func BuildSurvey(design *dataset.Survey, opts BuildOptions) (*Table, error) {
	if design == nil {
		return nil, errors.New("summary: nil survey design")
	}
	return build(Inputs{Design: design, Options: opts})
}

// ResolveInclude returns the variables a table built from these inputs
// summarizes, applying the all-columns default and dropping the
// grouping and weight columns.
func (in Inputs) ResolveInclude() ([]string, error) {
	frame := in.Frame()
	opts := in.Options
	drop := func(c string) bool {
		if c == opts.By {
			return true
		}
		return in.Design != nil && c == in.Design.WeightColumn()
	}
	if len(opts.Include) > 0 {
		var out []string
		for _, v := range opts.Include {
			if !frame.HasColumn(v) {
				return nil, fmt.Errorf("summary: no column %q in %s", v, frame.Name())
			}
			if drop(v) {
				continue
			}
			out = append(out, v)
		}
		return out, nil
	}
	var out []string
	for _, c := range frame.Columns() {
		if drop(c) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type buildContext struct {
	frame       *dataset.Dataset
	weights     []float64
	groups      []group
	grouped     bool
	missingMode MissingMode
	missingText string
	pctDigits   int
}

type group struct {
	level string
	rows  []int
}

func build(in Inputs) (*Table, error) {
	frame := in.Frame()
	if frame == nil {
		return nil, errors.New("summary: no dataset")
	}
	opts := in.Options

	missingMode := opts.Missing
	if missingMode == "" {
		missingMode = MissingIfAny
	}
	switch missingMode {
	case MissingIfAny, MissingNo, MissingAlways:
	default:
		return nil, fmt.Errorf("summary: invalid missing mode %q", opts.Missing)
	}
	missingText := opts.MissingText
	if missingText == "" {
		missingText = "Unknown"
	}

	include, err := in.ResolveInclude()
	if err != nil {
		return nil, err
	}
	types, err := resolveTypes(frame, include, opts.Types)
	if err != nil {
		return nil, err
	}

	weights := unitWeights(frame.NumRows())
	if in.Design != nil {
		weights = in.Design.Weights()
	}
	groups, err := partition(frame, opts.By)
	if err != nil {
		return nil, err
	}

	ctx := &buildContext{
		frame:       frame,
		weights:     weights,
		groups:      groups,
		grouped:     opts.By != "",
		missingMode: missingMode,
		missingText: missingText,
		pctDigits:   opts.PercentDigits,
	}

	columns := []Column{{Name: "label", Header: "Characteristic"}}
	for gi, g := range groups {
		var w float64
		for _, r := range g.rows {
			w += weights[r]
		}
		if ctx.grouped {
			columns = append(columns, Column{
				Name:   fmt.Sprintf("stat_%d", gi+1),
				Header: fmt.Sprintf("%s, N = %s", g.level, formatCount(w)),
			})
		} else {
			columns = append(columns, Column{
				Name:   "stat_0",
				Header: fmt.Sprintf("N = %s", formatCount(w)),
			})
		}
	}

	rows, err := buildRows(ctx, include, types, opts)
	if err != nil {
		return nil, err
	}

	kind := KindStandard
	if in.Design != nil {
		kind = KindSurvey
	}
	var footnotes []string
	if fn := statFootnote(include, types); fn != "" {
		footnotes = append(footnotes, fn)
	}
	return &Table{
		ID:        uuid.NewString(),
		Kind:      kind,
		Inputs:    in,
		Columns:   columns,
		Rows:      rows,
		Footnotes: footnotes,
		Theme:     CurrentTheme(),
	}, nil
}

// statFootnote describes the statistics shown, in first-appearance
// order of the variable kinds. Multi-line variables spell their
// statistics out in row labels, so they contribute nothing here.
func statFootnote(include []string, types map[string]VarType) string {
	var parts []string
	seen := map[string]bool{}
	for _, v := range include {
		var p string
		switch types[v] {
		case Continuous:
			p = "Median (Q1, Q3)"
		case Categorical, Dichotomous:
			p = "n (%)"
		}
		if p != "" && !seen[p] {
			seen[p] = true
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "; ")
}

func buildRows(ctx *buildContext, include []string, types map[string]VarType, opts BuildOptions) ([]Row, error) {
	groupOf := map[string]int{}
	for gi, g := range opts.Groups {
		for _, v := range g.Variables {
			if _, claimed := groupOf[v]; !claimed {
				groupOf[v] = gi
			}
		}
	}

	var rows []Row
	emitted := map[int]bool{}
	done := map[string]bool{}
	describe := func(v string) {
		label := v
		if l, ok := opts.Labels[v]; ok && l != "" {
			label = l
		}
		rows = append(rows, describeVariable(ctx, v, types[v], label)...)
		done[v] = true
	}
	for _, v := range include {
		if done[v] {
			continue
		}
		gi, inGroup := groupOf[v]
		if !inGroup {
			describe(v)
			continue
		}
		if emitted[gi] {
			describe(v)
			continue
		}
		emitted[gi] = true
		rows = append(rows, Row{
			RowType: RowGroup,
			Label:   opts.Groups[gi].Label,
			Cells:   map[string]string{},
		})
		members := map[string]bool{}
		for _, m := range opts.Groups[gi].Variables {
			members[m] = true
		}
		for _, w := range include {
			if members[w] && !done[w] {
				describe(w)
			}
		}
	}
	return rows, nil
}

func describeVariable(ctx *buildContext, v string, typ VarType, label string) []Row {
	col, _ := ctx.frame.Column(v)
	samples := make([]sample, len(ctx.groups))
	for gi, g := range ctx.groups {
		samples[gi] = takeSample(col, ctx.weights, g.rows)
	}
	newRow := func(rt RowType, lbl string) Row {
		return Row{
			Variable: v,
			VarType:  typ,
			RowType:  rt,
			Label:    lbl,
			Cells:    map[string]string{},
		}
	}
	colName := func(gi int) string {
		if ctx.grouped {
			return fmt.Sprintf("stat_%d", gi+1)
		}
		return "stat_0"
	}

	var rows []Row
	switch typ {
	case Continuous:
		r := newRow(RowLabel, label)
		for gi, s := range samples {
			r.Cells[colName(gi)] = medianIQRCell(s)
		}
		rows = append(rows, r)

	case Continuous2:
		rows = append(rows, newRow(RowLabel, label))
		med := newRow(RowLevel, "Median (Q1, Q3)")
		mean := newRow(RowLevel, "Mean (SD)")
		rng := newRow(RowLevel, "Range")
		for gi, s := range samples {
			name := colName(gi)
			med.Cells[name] = medianIQRCell(s)
			vals, ws := s.numbers()
			mean.Cells[name] = fmt.Sprintf("%s (%s)", formatStat(weightedMean(vals, ws)), formatStat(weightedSD(vals, ws)))
			rng.Cells[name] = fmt.Sprintf("%s, %s", formatStat(minOf(vals)), formatStat(maxOf(vals)))
		}
		rows = append(rows, med, mean, rng)

	case Categorical:
		rows = append(rows, newRow(RowLabel, label))
		for _, level := range columnLevels(col) {
			r := newRow(RowLevel, level)
			for gi, s := range samples {
				r.Cells[colName(gi)] = countPercentCell(s, level, ctx.pctDigits)
			}
			rows = append(rows, r)
		}

	case Dichotomous:
		pos := positiveLevel(columnLevels(col))
		r := newRow(RowLabel, label)
		for gi, s := range samples {
			r.Cells[colName(gi)] = countPercentCell(s, pos, ctx.pctDigits)
		}
		rows = append(rows, r)
	}

	if ctx.missingMode == MissingNo {
		return rows
	}
	var totalMissing float64
	for _, s := range samples {
		totalMissing += s.missing()
	}
	if ctx.missingMode == MissingAlways || totalMissing > 0 {
		r := newRow(RowMissing, ctx.missingText)
		for gi, s := range samples {
			r.Cells[colName(gi)] = formatCount(s.missing())
		}
		rows = append(rows, r)
	}
	return rows
}

func resolveTypes(frame *dataset.Dataset, include []string, overrides map[string]VarType) (map[string]VarType, error) {
	for v, ty := range overrides {
		switch ty {
		case Continuous, Continuous2, Categorical, Dichotomous:
		default:
			return nil, fmt.Errorf("summary: invalid type %q for %q", ty, v)
		}
		if !frame.HasColumn(v) {
			return nil, fmt.Errorf("summary: type override for unknown column %q", v)
		}
	}
	out := make(map[string]VarType, len(include))
	for _, v := range include {
		if ty, ok := overrides[v]; ok {
			out[v] = ty
			continue
		}
		out[v] = inferType(frame, v)
	}
	return out, nil
}

// inferType picks a summary type: fully numeric columns are continuous
// unless their values are all 0/1, two-level yes/no or true/false
// columns are dichotomous, and everything else is categorical.
func inferType(frame *dataset.Dataset, v string) VarType {
	p, _ := frame.Profile(v)
	if p.NonMissing == 0 {
		return Categorical
	}
	if p.Numeric == p.NonMissing {
		if zeroOne(p.Levels) {
			return Dichotomous
		}
		return Continuous
	}
	if len(p.Levels) == 2 && yesNo(p.Levels) {
		return Dichotomous
	}
	return Categorical
}

func zeroOne(levels []string) bool {
	if len(levels) == 0 || len(levels) > 2 {
		return false
	}
	for _, l := range levels {
		if l != "0" && l != "1" {
			return false
		}
	}
	return true
}

func yesNo(levels []string) bool {
	has := func(s string) bool {
		for _, l := range levels {
			if strings.EqualFold(l, s) {
				return true
			}
		}
		return false
	}
	if has("yes") && has("no") {
		return true
	}
	return has("true") && has("false")
}

func positiveLevel(levels []string) string {
	if zeroOne(levels) {
		return "1"
	}
	for _, cand := range []string{"yes", "true"} {
		for _, l := range levels {
			if strings.EqualFold(l, cand) {
				return l
			}
		}
	}
	if len(levels) == 0 {
		return ""
	}
	return levels[len(levels)-1]
}

func partition(frame *dataset.Dataset, by string) ([]group, error) {
	if by == "" {
		rows := make([]int, frame.NumRows())
		for i := range rows {
			rows[i] = i
		}
		return []group{{rows: rows}}, nil
	}
	vals, ok := frame.Column(by)
	if !ok {
		return nil, fmt.Errorf("summary: no column %q in %s", by, frame.Name())
	}
	p, _ := frame.Profile(by)
	if p.Missing > 0 {
		return nil, fmt.Errorf("summary: grouping column %q has %d missing values", by, p.Missing)
	}
	if len(p.Levels) == 0 {
		return nil, fmt.Errorf("summary: grouping column %q has no observations", by)
	}
	idx := make(map[string]int, len(p.Levels))
	groups := make([]group, len(p.Levels))
	for i, l := range p.Levels {
		groups[i] = group{level: l}
		idx[l] = i
	}
	for r, v := range vals {
		gi := idx[strings.TrimSpace(v)]
		groups[gi].rows = append(groups[gi].rows, r)
	}
	return groups, nil
}

// sample is one group's slice of a column with matching weights.
type sample struct {
	vals    []string
	weights []float64
}

func takeSample(col []string, weights []float64, rows []int) sample {
	s := sample{vals: make([]string, len(rows)), weights: make([]float64, len(rows))}
	for i, r := range rows {
		s.vals[i] = col[r]
		s.weights[i] = weights[r]
	}
	return s
}

func (s sample) missing() float64 {
	var w float64
	for i, v := range s.vals {
		if dataset.IsMissing(v) {
			w += s.weights[i]
		}
	}
	return w
}

func (s sample) nonMissing() float64 {
	var w float64
	for i, v := range s.vals {
		if !dataset.IsMissing(v) {
			w += s.weights[i]
		}
	}
	return w
}

func (s sample) countLevel(level string) float64 {
	var w float64
	for i, v := range s.vals {
		if !dataset.IsMissing(v) && strings.TrimSpace(v) == level {
			w += s.weights[i]
		}
	}
	return w
}

// numbers returns parsed numeric values with their weights.
func (s sample) numbers() ([]float64, []float64) {
	var vals, ws []float64
	for i, v := range s.vals {
		if dataset.IsMissing(v) {
			continue
		}
		if f, ok := dataset.ParseNumber(v); ok {
			vals = append(vals, f)
			ws = append(ws, s.weights[i])
		}
	}
	return vals, ws
}

func columnLevels(col []string) []string {
	seen := map[string]bool{}
	var levels []string
	for _, v := range col {
		if dataset.IsMissing(v) {
			continue
		}
		v = strings.TrimSpace(v)
		if !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}
	sortLevelsInPlace(levels)
	return levels
}

func sortLevelsInPlace(levels []string) {
	allNumeric := true
	for _, l := range levels {
		if _, ok := dataset.ParseNumber(l); !ok {
			allNumeric = false
			break
		}
	}
	if allNumeric {
		sort.SliceStable(levels, func(i, j int) bool {
			a, _ := dataset.ParseNumber(levels[i])
			b, _ := dataset.ParseNumber(levels[j])
			return a < b
		})
		return
	}
	sort.Strings(levels)
}

func medianIQRCell(s sample) string {
	vals, ws := s.numbers()
	med := weightedQuantile(vals, ws, 0.5)
	q1 := weightedQuantile(vals, ws, 0.25)
	q3 := weightedQuantile(vals, ws, 0.75)
	return fmt.Sprintf("%s (%s, %s)", formatStat(med), formatStat(q1), formatStat(q3))
}

func countPercentCell(s sample, level string, pctDigits int) string {
	n := s.countLevel(level)
	return fmt.Sprintf("%s (%s)", formatCount(n), formatPercent(n, s.nonMissing(), pctDigits))
}

func unitWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// formatStat renders a statistic with two significant figures, keeping
// whole numbers unpadded. NaN and infinities keep their R spellings so
// downstream cleanup can recognize them.
func formatStat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NA"
	case math.IsInf(v, 1):
		return "Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case v == 0:
		return "0"
	}
	mag := math.Floor(math.Log10(math.Abs(v)))
	digits := int(1 - mag)
	if digits < 0 {
		digits = 0
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}

func formatCount(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(math.Round(v), 'f', -1, 64)
}

func formatPercent(num, den float64, digits int) string {
	if den == 0 {
		return "NA%"
	}
	return fmt.Sprintf("%.*f%%", digits, 100*num/den)
}

// weightedQuantile computes quantiles. Uniform weights use linear
// interpolation between order statistics; varying weights use the
// cumulative-weight rule.
func weightedQuantile(vals, weights []float64, q float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	type pair struct{ v, w float64 }
	pairs := make([]pair, len(vals))
	uniform := true
	for i := range vals {
		pairs[i] = pair{vals[i], weights[i]}
		if weights[i] != weights[0] {
			uniform = false
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].v < pairs[j].v })

	if uniform {
		if q <= 0 {
			return pairs[0].v
		}
		if q >= 1 {
			return pairs[len(pairs)-1].v
		}
		pos := q * float64(len(pairs)-1)
		lo := int(math.Floor(pos))
		hi := int(math.Ceil(pos))
		if lo == hi {
			return pairs[lo].v
		}
		w := pos - float64(lo)
		return pairs[lo].v*(1-w) + pairs[hi].v*w
	}

	var total float64
	for _, p := range pairs {
		total += p.w
	}
	if total == 0 {
		return math.NaN()
	}
	target := q * total
	var cum float64
	for _, p := range pairs {
		cum += p.w
		if cum >= target {
			return p.v
		}
	}
	return pairs[len(pairs)-1].v
}

func weightedMean(vals, weights []float64) float64 {
	var sum, w float64
	for i, v := range vals {
		sum += v * weights[i]
		w += weights[i]
	}
	if w == 0 {
		return math.NaN()
	}
	return sum / w
}

func weightedSD(vals, weights []float64) float64 {
	m := weightedMean(vals, weights)
	if math.IsNaN(m) {
		return math.NaN()
	}
	var sum, w float64
	for i, v := range vals {
		d := v - m
		sum += weights[i] * d * d
		w += weights[i]
	}
	if w <= 1 {
		return math.NaN()
	}
	return math.Sqrt(sum / (w - 1))
}

func minOf(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
