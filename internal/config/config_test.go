package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CompactTheme {
		t.Fatalf("compact_theme default should be false")
	}
	if cfg.MissingText != "Unknown" {
		t.Fatalf("missing_text = %q", cfg.MissingText)
	}
	if cfg.PercentDigits != 0 {
		t.Fatalf("percent_digits = %d", cfg.PercentDigits)
	}
	if cfg.DefaultFormat != "markdown" {
		t.Fatalf("default_format = %q", cfg.DefaultFormat)
	}
	if cfg.Dictionary != "" {
		t.Fatalf("dictionary = %q", cfg.Dictionary)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Global{
		CompactTheme:  true,
		MissingText:   "(Missing)",
		PercentDigits: 1,
		DefaultFormat: "html",
		Dictionary:    "codebook.yaml",
	}
	if err := Save(in, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *out != *in {
		t.Fatalf("roundtrip = %+v, want %+v", out, in)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SUMEXTRAS_PERCENT_DIGITS", "2")
	t.Setenv("SUMEXTRAS_DEFAULT_FORMAT", "text")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PercentDigits != 2 {
		t.Fatalf("percent_digits = %d, want env override", cfg.PercentDigits)
	}
	if cfg.DefaultFormat != "text" {
		t.Fatalf("default_format = %q, want env override", cfg.DefaultFormat)
	}
}
