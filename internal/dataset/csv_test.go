package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var trialCSV = strings.Join([]string{
	"id,trt,age,marker,grade,response,wt",
	"1,Drug A,23,0.16,I,0,1.2",
	"2,Drug A,9,1.107,II,1,0.8",
	"3,Drug B,31,0.277,III,0,1.5",
	"4,Drug B,NA,2.067,I,1,1.0",
	"5,Drug A,51,2.767,II,1,0.7",
	"6,Drug B,39,0.613,III,,1.3",
	"7,Drug A,37,0.354,I,0,1.1",
	"8,Drug B,32,1.739,II,0,0.9",
	"9,Drug A,31,,III,1,1.4",
	"10,Drug B,34,0.144,I,0,1.0",
}, "\n")

func writeTrialCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trial.csv")
	if err := os.WriteFile(path, []byte(trialCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	d, err := ReadCSV(writeTrialCSV(t), ReadOptions{})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if d.Name() != "trial.csv" {
		t.Fatalf("name = %q, want trial.csv", d.Name())
	}
	if d.NumRows() != 10 || d.NumCols() != 7 {
		t.Fatalf("dims = %dx%d, want 10x7", d.NumRows(), d.NumCols())
	}
	if got, _ := d.Cell(3, "age"); got != "NA" {
		t.Fatalf("cell(3, age) = %q, want NA", got)
	}
}

func TestReadCSVMaxRows(t *testing.T) {
	d, err := ReadCSV(writeTrialCSV(t), ReadOptions{MaxRows: 4})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if d.NumRows() != 4 {
		t.Fatalf("rows = %d, want 4", d.NumRows())
	}
}

func TestReadTSVSniffsTab(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trial.tsv")
	tsv := strings.ReplaceAll(trialCSV, ",", "\t")
	if err := os.WriteFile(path, []byte(tsv), 0o644); err != nil {
		t.Fatalf("write tsv: %v", err)
	}
	d, err := ReadCSV(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if !d.HasColumn("marker") {
		t.Fatalf("columns = %#v", d.Columns())
	}
	if got, _ := d.Cell(0, "trt"); got != "Drug A" {
		t.Fatalf("cell(0, trt) = %q", got)
	}
}

func TestReadCSVTrimsHeaderSpace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pad.csv")
	if err := os.WriteFile(path, []byte(" a , b \n1,2\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	d, err := ReadCSV(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if !d.HasColumn("a") || !d.HasColumn("b") {
		t.Fatalf("columns = %#v", d.Columns())
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if _, err := ReadCSV(path, ReadOptions{}); err == nil {
		t.Fatalf("expected error for empty file")
	}
}
