package dataset

import (
	"math"
	"strings"
	"testing"
)

func TestNewSurvey(t *testing.T) {
	d := trialDataset(t)
	s, err := NewSurvey(d, "wt")
	if err != nil {
		t.Fatalf("NewSurvey: %v", err)
	}
	if s.Frame() != d {
		t.Fatalf("frame should be the source dataset")
	}
	if s.WeightColumn() != "wt" {
		t.Fatalf("weight column = %q", s.WeightColumn())
	}
	w := s.Weights()
	if len(w) != 10 || w[0] != 1.2 || w[4] != 0.7 {
		t.Fatalf("weights = %#v", w)
	}
	if math.Abs(s.TotalWeight()-10.9) > 1e-9 {
		t.Fatalf("total weight = %v, want 10.9", s.TotalWeight())
	}
}

func TestNewSurveyMissingColumn(t *testing.T) {
	d := trialDataset(t)
	if _, err := NewSurvey(d, "weight"); err == nil || !strings.Contains(err.Error(), "weight") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestNewSurveyBadWeights(t *testing.T) {
	d, err := New("x", []string{"v", "w"}, [][]string{{"1", "2"}, {"2", "oops"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := NewSurvey(d, "w"); err == nil || !strings.Contains(err.Error(), "row 2") {
		t.Fatalf("expected non-numeric weight error, got %v", err)
	}

	neg, err := New("x", []string{"v", "w"}, [][]string{{"1", "-1"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := NewSurvey(neg, "w"); err == nil || !strings.Contains(err.Error(), "negative") {
		t.Fatalf("expected negative weight error, got %v", err)
	}
}
