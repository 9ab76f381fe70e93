package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/kyleGrealis/sumExtras/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set sumExtras configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("compact_theme: %t\n", cfg.CompactTheme)
		fmt.Printf("missing_text: %s\n", cfg.MissingText)
		fmt.Printf("percent_digits: %d\n", cfg.PercentDigits)
		fmt.Printf("default_format: %s\n", cfg.DefaultFormat)
		if cfg.Dictionary != "" {
			fmt.Printf("dictionary: %s\n", cfg.Dictionary)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "compact_theme":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for compact_theme: %v", val)
			}
			cfg.CompactTheme = b
		case "missing_text":
			cfg.MissingText = val
		case "percent_digits":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for percent_digits: %v", val)
			}
			cfg.PercentDigits = i
		case "default_format":
			switch val {
			case "markdown", "html", "text":
				cfg.DefaultFormat = val
			default:
				return fmt.Errorf("invalid default_format: %s (use markdown, html, or text)", val)
			}
		case "dictionary":
			cfg.Dictionary = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
