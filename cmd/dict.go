package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/kyleGrealis/sumExtras/internal/dict"
	"github.com/kyleGrealis/sumExtras/internal/utils"
	"github.com/spf13/cobra"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Validate and convert variable dictionaries",
}

var dictValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a dictionary file and report duplicate variables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := dict.Load(args[0])
		if err != nil {
			return err
		}
		if d.Len() == 0 {
			fmt.Println("⚠ Dictionary has no entries")
			return nil
		}
		fmt.Printf("✓ %d variables\n", d.Len())
		if dupes := d.Duplicates(); len(dupes) > 0 {
			fmt.Printf("⚠ Duplicate variables (first occurrence wins): %s\n", strings.Join(dupes, ", "))
		}
		return nil
	},
}

var dictConvertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a CSV/XLSX dictionary to YAML",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := dict.Load(args[0])
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := d.WriteYAML(&buf); err != nil {
			return err
		}
		if err := utils.SafeWriteFile(args[1], buf.Bytes()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("✓ Wrote %d variables to %s\n", d.Len(), args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dictCmd)
	dictCmd.AddCommand(dictValidateCmd)
	dictCmd.AddCommand(dictConvertCmd)
}
