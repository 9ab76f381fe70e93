package dataset

import "fmt"

// Survey wraps a Dataset with per-row sampling weights taken from one of
// its columns. Weighted summaries use the weights; the frame itself is
// shared, not copied.
type Survey struct {
	data      *Dataset
	weightCol string
	weights   []float64
}

// NewSurvey builds a Survey from a dataset and the name of its weight
// column. Every row must carry a non-negative numeric weight.
func NewSurvey(d *Dataset, weightColumn string) (*Survey, error) {
	vals, ok := d.Column(weightColumn)
	if !ok {
		return nil, fmt.Errorf("survey design: no column %q in %s", weightColumn, d.Name())
	}
	weights := make([]float64, len(vals))
	for i, v := range vals {
		w, ok := ParseNumber(v)
		if !ok {
			return nil, fmt.Errorf("survey design: row %d: weight %q is not numeric", i+1, v)
		}
		if w < 0 {
			return nil, fmt.Errorf("survey design: row %d: negative weight %v", i+1, w)
		}
		weights[i] = w
	}
	return &Survey{data: d, weightCol: weightColumn, weights: weights}, nil
}

// Frame returns the underlying dataset.
func (s *Survey) Frame() *Dataset { return s.data }

// WeightColumn returns the name of the weight column.
func (s *Survey) WeightColumn() string { return s.weightCol }

// Weights returns the per-row weights in row order.
func (s *Survey) Weights() []float64 {
	out := make([]float64, len(s.weights))
	copy(out, s.weights)
	return out
}

// TotalWeight returns the sum of all weights.
func (s *Survey) TotalWeight() float64 {
	var t float64
	for _, w := range s.weights {
		t += w
	}
	return t
}
