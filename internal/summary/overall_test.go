package summary

import (
	"strings"
	"testing"
)

func TestAddOverall(t *testing.T) {
	tbl := groupedTrial(t)
	with, err := tbl.AddOverall()
	if err != nil {
		t.Fatalf("AddOverall: %v", err)
	}
	names := columnNames(with)
	want := []string{"label", "stat_1", "stat_2", "stat_0"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("columns = %v, want %v", names, want)
	}
	var header string
	for _, c := range with.Columns {
		if c.Name == "stat_0" {
			header = c.Header
		}
	}
	if header != "Overall, N = 10" {
		t.Fatalf("overall header = %q", header)
	}

	age, _ := with.RowByLabel("age")
	if age.Cells["stat_0"] != "32 (31, 37)" {
		t.Fatalf("overall age = %q", age.Cells["stat_0"])
	}
	if age.Cells["stat_1"] != "31 (23, 37)" {
		t.Fatalf("group cells should be untouched, got %q", age.Cells["stat_1"])
	}
	lvlII, _ := with.RowByLabel("II")
	if lvlII.Cells["stat_0"] != "3 (30%)" {
		t.Fatalf("overall grade II = %q", lvlII.Cells["stat_0"])
	}

	if tbl.HasColumn("stat_0") {
		t.Fatalf("AddOverall mutated the receiver")
	}
}

func TestAddOverallRequiresGrouping(t *testing.T) {
	tbl, err := Build(trialData(t), BuildOptions{Include: trialInclude})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := tbl.AddOverall(); err == nil {
		t.Fatalf("expected error for ungrouped table")
	}
}

func TestAddOverallTwice(t *testing.T) {
	with, err := groupedTrial(t).AddOverall()
	if err != nil {
		t.Fatalf("AddOverall: %v", err)
	}
	if _, err := with.AddOverall(); err == nil {
		t.Fatalf("expected error for duplicate overall column")
	}
}

func TestAddOverallKeepsPValueLast(t *testing.T) {
	tbl := groupedTrial(t)
	withP, err := tbl.AddPValue()
	if err != nil {
		t.Fatalf("AddPValue: %v", err)
	}
	both, err := withP.AddOverall()
	if err != nil {
		t.Fatalf("AddOverall: %v", err)
	}
	names := columnNames(both)
	want := []string{"label", "stat_1", "stat_2", "stat_0", "p.value"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("columns = %v, want %v", names, want)
	}
}

func TestAddOverallSurvey(t *testing.T) {
	tbl := surveyTrial(t)
	with, err := tbl.AddOverall()
	if err != nil {
		t.Fatalf("AddOverall: %v", err)
	}
	var header string
	for _, c := range with.Columns {
		if c.Name == "stat_0" {
			header = c.Header
		}
	}
	// Total weight is 10.9, rounded for display.
	if header != "Overall, N = 11" {
		t.Fatalf("survey overall header = %q", header)
	}
}
