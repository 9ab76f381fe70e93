package summary

import (
	"strings"
	"testing"
)

func TestModifyBodyLeavesOriginal(t *testing.T) {
	tbl := groupedTrial(t)
	before, _ := tbl.RowByLabel("age")
	mod := tbl.ModifyBody(StatColumns, AllRows, func(s string) string {
		return strings.ReplaceAll(s, "(", "[")
	})
	after, _ := tbl.RowByLabel("age")
	if before.Cells["stat_1"] != after.Cells["stat_1"] {
		t.Fatalf("ModifyBody mutated the receiver")
	}
	modAge, _ := mod.RowByLabel("age")
	if !strings.Contains(modAge.Cells["stat_1"], "[") {
		t.Fatalf("ModifyBody cell = %q", modAge.Cells["stat_1"])
	}
}

func TestModifyBodySkipsLabelColumn(t *testing.T) {
	tbl := groupedTrial(t)
	mod := tbl.ModifyBody(AllColumns, AllRows, func(string) string { return "X" })
	r, _ := mod.RowByLabel("age")
	if r.Label != "age" {
		t.Fatalf("label column should never be modified, got %q", r.Label)
	}
	if r.Cells["stat_1"] != "X" {
		t.Fatalf("stat cell = %q, want X", r.Cells["stat_1"])
	}
}

func TestModifyBodyRowSelector(t *testing.T) {
	tbl := groupedTrial(t)
	mod := tbl.ModifyBody(StatColumns, func(r Row) bool { return r.RowType == RowMissing }, func(string) string { return "-" })
	for _, r := range mod.Rows {
		if r.RowType == RowMissing && r.Cells["stat_1"] != "-" {
			t.Fatalf("missing row not modified: %+v", r)
		}
		if r.RowType == RowLevel && r.Cells["stat_1"] == "-" {
			t.Fatalf("level row should not be modified")
		}
	}
}

func TestSetMissingSymbol(t *testing.T) {
	tbl := groupedTrial(t)
	blanked := tbl.ModifyBody(StatColumns, AllRows, func(string) string { return "" })
	sym := blanked.SetMissingSymbol("---", StatColumns, func(r Row) bool { return r.RowType == RowLabel })
	for i, r := range sym.Rows {
		if r.RowType == RowLabel && r.Variable == "age" {
			if got := sym.Cell(i, "stat_1"); got != "---" {
				t.Fatalf("blank label cell = %q, want ---", got)
			}
		}
		if r.RowType == RowLevel {
			if got := sym.Cell(i, "stat_1"); got != "" {
				t.Fatalf("level cell = %q, want blank (no symbol set)", got)
			}
		}
	}

	// The symbol only fills blanks; populated cells keep their text.
	populated := tbl.SetMissingSymbol("---", StatColumns, AllRows)
	r, _ := populated.RowByLabel("age")
	if r.Cells["stat_1"] == "---" {
		t.Fatalf("populated cell should keep its statistic")
	}
}

func TestBoldLabels(t *testing.T) {
	tbl, err := Build(trialData(t), BuildOptions{
		By:      "trt",
		Include: trialInclude,
		Groups:  []VariableGroup{{Label: "Labs", Variables: []string{"marker"}}},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	bold := tbl.BoldLabels()
	for _, r := range bold.Rows {
		switch r.RowType {
		case RowLabel, RowGroup:
			if !r.Bold {
				t.Fatalf("%s row %q should be bold", r.RowType, r.Label)
			}
		default:
			if r.Bold {
				t.Fatalf("%s row %q should not be bold", r.RowType, r.Label)
			}
		}
	}
	for _, r := range tbl.Rows {
		if r.Bold {
			t.Fatalf("BoldLabels mutated the receiver")
		}
	}
}

func TestModifyHeader(t *testing.T) {
	tbl := groupedTrial(t)
	mod := tbl.ModifyHeader("label", "")
	if mod.Columns[0].Header != "" {
		t.Fatalf("header = %q, want blank", mod.Columns[0].Header)
	}
	if tbl.Columns[0].Header != "Characteristic" {
		t.Fatalf("ModifyHeader mutated the receiver")
	}
	same := tbl.ModifyHeader("nope", "X")
	for i := range same.Columns {
		if same.Columns[i].Header != tbl.Columns[i].Header {
			t.Fatalf("unknown column rename should be a no-op")
		}
	}
}

func TestWithThemeAndTitle(t *testing.T) {
	tbl := groupedTrial(t)
	styled := tbl.WithTheme(CompactTheme()).WithTitle("Baseline Characteristics")
	if styled.Theme.Name != "compact" || styled.Title != "Baseline Characteristics" {
		t.Fatalf("theme = %q, title = %q", styled.Theme.Name, styled.Title)
	}
	if tbl.Theme.Name != "default" || tbl.Title != "" {
		t.Fatalf("receiver mutated")
	}
	if styled.ID != tbl.ID {
		t.Fatalf("styling should keep the table id")
	}
}

func TestNamedColumnsSelector(t *testing.T) {
	sel := NamedColumns("stat_1", "p.value")
	if !sel(Column{Name: "stat_1"}) || sel(Column{Name: "stat_2"}) {
		t.Fatalf("NamedColumns selection wrong")
	}
	if !StatColumns(Column{Name: "stat_0"}) || StatColumns(Column{Name: "p.value"}) {
		t.Fatalf("StatColumns selection wrong")
	}
}

func TestCellFallsBackToMissingSymbol(t *testing.T) {
	tbl := groupedTrial(t)
	mod := tbl.
		ModifyBody(NamedColumns("stat_1"), AllRows, func(string) string { return "" }).
		SetMissingSymbol("n/a", NamedColumns("stat_1"), AllRows)
	for i, r := range mod.Rows {
		if r.RowType == RowLabel && r.Variable == "marker" {
			if got := mod.Cell(i, "stat_1"); got != "n/a" {
				t.Fatalf("cell = %q, want symbol", got)
			}
			if got := mod.Cell(i, "stat_2"); got == "n/a" || got == "" {
				t.Fatalf("stat_2 should keep its statistic, got %q", got)
			}
		}
	}
	if tbl.Cell(len(tbl.Rows), "stat_1") != "" {
		t.Fatalf("out of range row should be blank")
	}
}
