package summary

import (
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/kyleGrealis/sumExtras/internal/dataset"
	"github.com/kyleGrealis/sumExtras/internal/stats"
)

func TestAddPValue(t *testing.T) {
	tbl := groupedTrial(t)
	with, err := tbl.AddPValue()
	if err != nil {
		t.Fatalf("AddPValue: %v", err)
	}
	names := columnNames(with)
	if names[len(names)-1] != "p.value" {
		t.Fatalf("columns = %v, want p.value last", names)
	}

	pPattern := regexp.MustCompile(`^(0\.\d{3}|<0\.001|>0\.999)$`)
	for _, r := range with.Rows {
		p := r.Cells["p.value"]
		switch r.RowType {
		case RowLabel:
			if !pPattern.MatchString(p) {
				t.Fatalf("label row %q p-value = %q", r.Label, p)
			}
		default:
			if p != "" {
				t.Fatalf("%s row %q should have no p-value, got %q", r.RowType, r.Label, p)
			}
		}
	}
	if tbl.HasColumn("p.value") {
		t.Fatalf("AddPValue mutated the receiver")
	}
}

func TestAddPValueGradeChiSquare(t *testing.T) {
	with, err := groupedTrial(t).AddPValue()
	if err != nil {
		t.Fatalf("AddPValue: %v", err)
	}
	grade, _ := with.RowByLabel("grade")
	// 3x2 contingency with statistic 2/3, so p = exp(-1/3).
	if grade.Cells["p.value"] != "0.717" {
		t.Fatalf("grade p = %q, want 0.717", grade.Cells["p.value"])
	}
}

func TestAddPValueAgeKruskalWallis(t *testing.T) {
	with, err := groupedTrial(t).AddPValue()
	if err != nil {
		t.Fatalf("AddPValue: %v", err)
	}
	age, _ := with.RowByLabel("age")
	// Rank sums are 22.5 in both arms (sizes 5 and 4), with one tied
	// pair, so the corrected statistic and its df=1 tail are known.
	h := (12.0/90.0*(22.5*22.5/5+22.5*22.5/4) - 30) / (1 - 6.0/720.0)
	want := stats.FormatPValue(math.Erfc(math.Sqrt(h/2)), 3)
	if age.Cells["p.value"] != want {
		t.Fatalf("age p = %q, want %q", age.Cells["p.value"], want)
	}
}

func TestAddPValueRequiresGrouping(t *testing.T) {
	tbl, err := Build(trialData(t), BuildOptions{Include: trialInclude})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := tbl.AddPValue(); err == nil {
		t.Fatalf("expected error for ungrouped table")
	}
}

func TestAddPValueTwice(t *testing.T) {
	with, err := groupedTrial(t).AddPValue()
	if err != nil {
		t.Fatalf("AddPValue: %v", err)
	}
	if _, err := with.AddPValue(); err == nil {
		t.Fatalf("expected error for duplicate p-value column")
	}
}

func TestAddPValueUntestableVariableBlank(t *testing.T) {
	d, err := dataset.New("x", []string{"g", "same"}, [][]string{
		{"a", "one"}, {"a", "one"}, {"b", "one"}, {"b", "one"},
	})
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	tbl, err := Build(d, BuildOptions{By: "g"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	with, err := tbl.AddPValue()
	if err != nil {
		t.Fatalf("AddPValue: %v", err)
	}
	same, _ := with.RowByLabel("same")
	if same.Cells["p.value"] != "" {
		t.Fatalf("single-level variable p = %q, want blank", same.Cells["p.value"])
	}
}

func TestAddPValueFootnote(t *testing.T) {
	with, err := groupedTrial(t).AddPValue()
	if err != nil {
		t.Fatalf("AddPValue: %v", err)
	}
	if len(with.Footnotes) != 2 {
		t.Fatalf("footnotes = %#v", with.Footnotes)
	}
	if !strings.Contains(with.Footnotes[1], "Kruskal-Wallis") || !strings.Contains(with.Footnotes[1], "chi-squared") {
		t.Fatalf("test footnote = %q", with.Footnotes[1])
	}
}

func TestAddPValueSurveyUsesRawObservations(t *testing.T) {
	tbl := surveyTrial(t)
	with, err := tbl.AddPValue()
	if err != nil {
		t.Fatalf("AddPValue: %v", err)
	}
	grade, _ := with.RowByLabel("grade")
	// Same unweighted contingency as the standard table.
	if grade.Cells["p.value"] != "0.717" {
		t.Fatalf("survey grade p = %q, want 0.717", grade.Cells["p.value"])
	}
}
