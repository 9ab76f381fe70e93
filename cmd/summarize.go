package cmd

import (
	"fmt"
	"strings"

	"github.com/kyleGrealis/sumExtras/internal/dataset"
	"github.com/kyleGrealis/sumExtras/internal/dict"
	"github.com/kyleGrealis/sumExtras/internal/extras"
	"github.com/kyleGrealis/sumExtras/internal/summary"
	"github.com/kyleGrealis/sumExtras/internal/utils"
	"github.com/spf13/cobra"
)

var (
	sumBy          string
	sumInclude     []string
	sumWeights     string
	sumDictionary  string
	sumLabels      []string
	sumTypes       []string
	sumMissing     string
	sumMissingText string
	sumPctDigits   int
	sumOverall     bool
	sumPValue      bool
	sumTitle       string
	sumFormat      string
	sumOutputPath  string
	sumJSON        bool
	sumSheet       string
	sumMaxRows     int
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Build a styled summary table from a data file",
	Long: `Summarize reads a CSV, TSV, or XLSX file and builds a characteristic
table: one row block per variable with median (Q1, Q3) for continuous
columns and n (%) for categorical ones. With --by the table gets one
statistic column per group plus an Overall column and significance
tests; --weights switches to survey-weighted statistics.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		conf := activeConfig()

		ds, err := readDataset(path, sumSheet, sumMaxRows)
		if err != nil {
			return err
		}

		labels, err := utils.ParseAssignments(sumLabels)
		if err != nil {
			return fmt.Errorf("parse --label: %w", err)
		}
		types, err := parseTypes(sumTypes)
		if err != nil {
			return err
		}

		missingText := conf.MissingText
		if cmd.Flags().Changed("missing-text") {
			missingText = sumMissingText
		}
		pctDigits := conf.PercentDigits
		if cmd.Flags().Changed("percent-digits") {
			pctDigits = sumPctDigits
		}

		opts := summary.BuildOptions{
			By:            sumBy,
			Include:       sumInclude,
			Labels:        labels,
			Types:         types,
			Missing:       summary.MissingMode(sumMissing),
			MissingText:   missingText,
			PercentDigits: pctDigits,
		}

		var tbl *summary.Table
		if sumWeights != "" {
			design, err := dataset.NewSurvey(ds, sumWeights)
			if err != nil {
				return err
			}
			tbl, err = summary.BuildSurvey(design, opts)
			if err != nil {
				return err
			}
		} else {
			var err error
			tbl, err = summary.Build(ds, opts)
			if err != nil {
				return err
			}
		}

		dictPath := conf.Dictionary
		if cmd.Flags().Changed("dictionary") {
			dictPath = sumDictionary
		}
		if dictPath != "" {
			d, err := dict.Load(dictPath)
			if err != nil {
				return fmt.Errorf("load dictionary: %w", err)
			}
			tbl, err = extras.AutoLabel(tbl, d)
			if err != nil {
				return err
			}
		}

		styleOpts := extras.StyleOptions{SkipOverall: !sumOverall, SkipPValues: !sumPValue}
		if sumBy == "" {
			// Ungrouped tables have no comparison to make; only add the
			// grouped extras when asked for explicitly.
			if !cmd.Flags().Changed("overall") {
				styleOpts.SkipOverall = true
			}
			if !cmd.Flags().Changed("pvalue") {
				styleOpts.SkipPValues = true
			}
		}
		styled, err := extras.Style(tbl, styleOpts)
		if err != nil {
			return err
		}
		if sumTitle != "" {
			styled = styled.WithTitle(sumTitle)
		}

		format := conf.DefaultFormat
		if cmd.Flags().Changed("format") {
			format = sumFormat
		} else if f := utils.FormatFromPath(sumOutputPath); f != "" {
			format = f
		}
		rendered, err := renderTable(styled, format)
		if err != nil {
			return err
		}

		if sumJSON {
			if err := printTableJSON(styled, format, rendered); err != nil {
				return err
			}
		}
		if sumOutputPath != "" {
			if err := utils.SafeWriteFile(sumOutputPath, []byte(rendered)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote table to %s\n", sumOutputPath)
		} else if !sumJSON {
			fmt.Println(rendered)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringVarP(&sumBy, "by", "b", "", "column to group by")
	summarizeCmd.Flags().StringSliceVar(&sumInclude, "include", nil, "columns to summarize, in order (default all)")
	summarizeCmd.Flags().StringVar(&sumWeights, "weights", "", "sampling-weight column (builds a survey table)")
	summarizeCmd.Flags().StringVarP(&sumDictionary, "dictionary", "d", "", "dictionary file for variable labels (yaml|csv|xlsx)")
	summarizeCmd.Flags().StringArrayVar(&sumLabels, "label", nil, "manual label override, variable=Label (repeatable)")
	summarizeCmd.Flags().StringArrayVar(&sumTypes, "type", nil, "summary type override, variable=continuous|continuous2|categorical|dichotomous (repeatable)")
	summarizeCmd.Flags().StringVar(&sumMissing, "missing", "", "missing-value rows: ifany|no|always")
	summarizeCmd.Flags().StringVar(&sumMissingText, "missing-text", "Unknown", "label for missing-value rows (overrides config)")
	summarizeCmd.Flags().IntVar(&sumPctDigits, "percent-digits", 0, "decimal digits on percentages (overrides config)")
	summarizeCmd.Flags().BoolVar(&sumOverall, "overall", true, "append an Overall column")
	summarizeCmd.Flags().BoolVar(&sumPValue, "pvalue", true, "append a p-value column")
	summarizeCmd.Flags().StringVar(&sumTitle, "title", "", "table caption")
	summarizeCmd.Flags().StringVar(&sumFormat, "format", "", "output format: markdown|html|text (default from config or --output extension)")
	summarizeCmd.Flags().StringVarP(&sumOutputPath, "output", "o", "", "write the rendered table to this file")
	summarizeCmd.Flags().BoolVar(&sumJSON, "json", false, "print a JSON envelope with table metadata")
	summarizeCmd.Flags().StringVar(&sumSheet, "sheet", "", "XLSX sheet name (default first sheet)")
	summarizeCmd.Flags().IntVar(&sumMaxRows, "max-rows", 0, "maximum data rows to read (0 = unlimited)")
}

// readDataset dispatches on the file extension.
func readDataset(path, sheet string, maxRows int) (*dataset.Dataset, error) {
	opt := dataset.ReadOptions{MaxRows: maxRows}
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return dataset.ReadXLSX(path, opt, sheet)
	}
	return dataset.ReadCSV(path, opt)
}

func parseTypes(pairs []string) (map[string]summary.VarType, error) {
	m, err := utils.ParseAssignments(pairs)
	if err != nil {
		return nil, fmt.Errorf("parse --type: %w", err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	out := make(map[string]summary.VarType, len(m))
	for k, v := range m {
		out[k] = summary.VarType(v)
	}
	return out, nil
}

func renderTable(t *summary.Table, format string) (string, error) {
	switch format {
	case "", "markdown", "md":
		return t.Markdown(), nil
	case "html":
		return t.HTML(), nil
	case "text", "txt":
		return t.Text(), nil
	}
	return "", fmt.Errorf("unsupported format %q (use markdown, html, or text)", format)
}

func printTableJSON(t *summary.Table, format, rendered string) error {
	cols := make([]map[string]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		cols = append(cols, map[string]string{"name": c.Name, "header": c.Header})
	}
	out := map[string]any{
		"id":        t.ID,
		"kind":      string(t.Kind),
		"title":     t.Title,
		"format":    format,
		"columns":   cols,
		"rows":      len(t.Rows),
		"footnotes": t.Footnotes,
		"table":     rendered,
	}
	b, err := utils.PrettyJSON(out)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
