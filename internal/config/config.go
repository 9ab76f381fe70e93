package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	CompactTheme  bool   `mapstructure:"compact_theme" yaml:"compact_theme"`
	MissingText   string `mapstructure:"missing_text" yaml:"missing_text"`
	PercentDigits int    `mapstructure:"percent_digits" yaml:"percent_digits"`
	DefaultFormat string `mapstructure:"default_format" yaml:"default_format"`
	Dictionary    string `mapstructure:"dictionary" yaml:"dictionary"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.sumextras/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".sumextras")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SUMEXTRAS")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("compact_theme", false)
	v.SetDefault("missing_text", "Unknown")
	v.SetDefault("percent_digits", 0)
	v.SetDefault("default_format", "markdown")
	v.SetDefault("dictionary", "")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".sumextras")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
