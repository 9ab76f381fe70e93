package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/kyleGrealis/sumExtras/internal/config"
	"github.com/kyleGrealis/sumExtras/internal/extras"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired to config/viper)
	cfgFile     string
	flagCompact bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "sumextras",
	Short: "sumExtras CLI: styled characteristic tables from tabular data",
	Long:  `sumExtras builds clinical-style characteristic tables from CSV, TSV, or XLSX files: grouped descriptive statistics with significance tests, dictionary-driven variable labels, and publication styling, rendered as markdown, HTML, or plain text.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.sumextras/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "render with the compact theme (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	compact := cfg.CompactTheme
	if rootCmd.PersistentFlags().Changed("compact") {
		compact = flagCompact
	}
	if compact {
		extras.UseCompactTheme()
	} else {
		extras.ResetTheme()
	}
}

// activeConfig returns the loaded configuration, or built-in defaults
// when loading failed.
func activeConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return &cfgpkg.Global{MissingText: "Unknown", DefaultFormat: "markdown"}
}
