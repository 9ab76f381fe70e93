// Package dict implements variable dictionaries: ordered mappings from
// dataset column names to human-readable descriptions, loaded from YAML,
// CSV, or xlsx codebooks.
package dict

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kyleGrealis/sumExtras/internal/dataset"
)

// Entry pairs a variable name with its description.
type Entry struct {
	Variable    string `yaml:"variable"`
	Description string `yaml:"description"`
}

// Dictionary is an ordered set of entries. When the same variable appears
// more than once, the first occurrence wins and later ones are recorded
// as duplicates.
type Dictionary struct {
	entries []Entry
	index   map[string]int
	dupes   []string
}

// New builds a Dictionary. Entries with an empty variable name are
// dropped.
func New(entries ...Entry) *Dictionary {
	d := &Dictionary{index: map[string]int{}}
	for _, e := range entries {
		e.Variable = strings.TrimSpace(e.Variable)
		e.Description = strings.TrimSpace(e.Description)
		if e.Variable == "" {
			continue
		}
		if _, ok := d.index[e.Variable]; ok {
			d.dupes = append(d.dupes, e.Variable)
			continue
		}
		d.index[e.Variable] = len(d.entries)
		d.entries = append(d.entries, e)
	}
	return d
}

// Len returns the number of kept entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Entries returns the kept entries in order.
func (d *Dictionary) Entries() []Entry {
	if d == nil {
		return nil
	}
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Description looks up the description for a variable.
func (d *Dictionary) Description(variable string) (string, bool) {
	if d == nil {
		return "", false
	}
	i, ok := d.index[variable]
	if !ok {
		return "", false
	}
	return d.entries[i].Description, true
}

// Has reports whether the dictionary covers a variable.
func (d *Dictionary) Has(variable string) bool {
	if d == nil {
		return false
	}
	_, ok := d.index[variable]
	return ok
}

// Duplicates returns variables that appeared more than once in source
// order, one per dropped occurrence.
func (d *Dictionary) Duplicates() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.dupes))
	copy(out, d.dupes)
	return out
}

// Load reads a dictionary, dispatching on the file extension.
func Load(path string) (*Dictionary, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".csv", ".tsv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path, "")
	default:
		return nil, fmt.Errorf("dictionary %s: unsupported format (want yaml, csv, or xlsx)", filepath.Base(path))
	}
}

// LoadYAML reads a dictionary from YAML. Two shapes are accepted: a
// sequence of {variable, description} entries, or a plain mapping of
// variable to description. Mapping order follows the document.
func LoadYAML(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse dictionary %s: %w", filepath.Base(path), err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return New(), nil
	}
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var entries []Entry
		if err := root.Decode(&entries); err != nil {
			return nil, fmt.Errorf("parse dictionary %s: %w", filepath.Base(path), err)
		}
		return New(entries...), nil
	case yaml.MappingNode:
		var entries []Entry
		for i := 0; i+1 < len(root.Content); i += 2 {
			entries = append(entries, Entry{
				Variable:    root.Content[i].Value,
				Description: root.Content[i+1].Value,
			})
		}
		return New(entries...), nil
	default:
		return nil, fmt.Errorf("parse dictionary %s: expected a sequence or mapping", filepath.Base(path))
	}
}

// LoadCSV reads a dictionary from a two-column codebook. A header row
// naming the columns is skipped when present.
func LoadCSV(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		r.Comma = '\t'
	}
	var entries []Entry
	first := true
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parse dictionary %s: %w", filepath.Base(path), err)
		}
		if len(rec) < 2 {
			continue
		}
		if first {
			first = false
			if isVariableHeader(rec[0]) {
				continue
			}
		}
		entries = append(entries, Entry{Variable: rec[0], Description: rec[1]})
	}
	return New(entries...), nil
}

// LoadXLSX reads a dictionary from a worksheet codebook. Columns named
// variable and description are used when present, otherwise the first
// two columns.
func LoadXLSX(path, sheet string) (*Dictionary, error) {
	d, err := dataset.ReadXLSX(path, dataset.ReadOptions{}, sheet)
	if err != nil {
		return nil, err
	}
	cols := d.Columns()
	if len(cols) < 2 {
		return nil, fmt.Errorf("dictionary %s: need at least two columns", filepath.Base(path))
	}
	varCol, descCol := cols[0], cols[1]
	for _, c := range cols {
		if isVariableHeader(c) {
			varCol = c
		}
		if isDescriptionHeader(c) {
			descCol = c
		}
	}
	vars, _ := d.Column(varCol)
	descs, _ := d.Column(descCol)
	entries := make([]Entry, len(vars))
	for i := range vars {
		entries[i] = Entry{Variable: vars[i], Description: descs[i]}
	}
	return New(entries...), nil
}

// WriteYAML writes the dictionary as a YAML entry sequence.
func (d *Dictionary) WriteYAML(w io.Writer) error {
	data, err := yaml.Marshal(d.Entries())
	if err != nil {
		return fmt.Errorf("marshal dictionary: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write dictionary: %w", err)
	}
	return nil
}

func isVariableHeader(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "variable", "var", "name", "column":
		return true
	}
	return false
}

func isDescriptionHeader(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "description", "label", "desc":
		return true
	}
	return false
}
