package cmd

import (
	"fmt"

	"github.com/kyleGrealis/sumExtras/internal/dict"
	"github.com/kyleGrealis/sumExtras/internal/extras"
	"github.com/kyleGrealis/sumExtras/internal/utils"
	"github.com/spf13/cobra"
)

var (
	lblDictionary string
	lblJSON       bool
	lblSheet      string
)

var labelsCmd = &cobra.Command{
	Use:   "labels <file>",
	Short: "Show dictionary labels matching a dataset's columns",
	Long: `Labels reads a data file, matches its column names against a variable
dictionary, and prints the labels that summarize would apply. Columns
without a dictionary entry are omitted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := activeConfig()
		dictPath := conf.Dictionary
		if cmd.Flags().Changed("dictionary") {
			dictPath = lblDictionary
		}
		if dictPath == "" {
			return &extras.MissingDictionaryError{Op: "resolve labels"}
		}
		d, err := dict.Load(dictPath)
		if err != nil {
			return fmt.Errorf("load dictionary: %w", err)
		}

		ds, err := readDataset(args[0], lblSheet, 0)
		if err != nil {
			return err
		}
		labels := extras.ResolveLabels(ds.Columns(), d)

		if lblJSON {
			b, err := utils.PrettyJSON(labels)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}
		if len(labels) == 0 {
			fmt.Println("⚠ No dictionary entries match the dataset columns")
			return nil
		}
		for _, l := range labels {
			fmt.Printf("%s: %s\n", l.Variable, l.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(labelsCmd)
	labelsCmd.Flags().StringVarP(&lblDictionary, "dictionary", "d", "", "dictionary file (yaml|csv|xlsx, overrides config)")
	labelsCmd.Flags().BoolVar(&lblJSON, "json", false, "print labels as JSON")
	labelsCmd.Flags().StringVar(&lblSheet, "sheet", "", "XLSX sheet name (default first sheet)")
}
