package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Document.Language != "English" {
		t.Errorf("Default language = %q, want English", cfg.Document.Language)
	}

	cls := cfg.Document.Classifier
	if cls.LengthLow != 70 || cls.LengthHigh != 200 {
		t.Errorf("Default lengths = %d/%d, want 70/200", cls.LengthLow, cls.LengthHigh)
	}
	if cls.StopwordsLow != 0.30 || cls.StopwordsHigh != 0.32 {
		t.Errorf("Default densities = %v/%v, want 0.30/0.32", cls.StopwordsLow, cls.StopwordsHigh)
	}
	if cls.MaxLinkDensity != 0.20 {
		t.Errorf("Default max_link_density = %v, want 0.20", cls.MaxLinkDensity)
	}
	if cls.MaxHeadingDistance != 200 {
		t.Errorf("Default max_heading_distance = %d, want 200", cls.MaxHeadingDistance)
	}
	if cls.NoHeadings {
		t.Error("Default no_headings = true, want false")
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
document:
  language: German
  file_name_transliterate: true
  classifier:
    length_low: 10
    length_high: 100
    stopwords_low: 0.1
    stopwords_high: 0.2
    max_link_density: 0.5
    max_heading_distance: 50
    no_headings: true
logging:
  console:
    level: none
  file:
    level: none
reporting:
  destination: report.zip
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Document.Language != "German" {
		t.Errorf("Language = %q, want German", cfg.Document.Language)
	}
	if !cfg.Document.FileNameTransliterate {
		t.Error("Expected FileNameTransliterate to be true")
	}

	opts := cfg.Document.Classifier.Options()
	if opts.LengthLow != 10 || opts.LengthHigh != 100 {
		t.Errorf("Options lengths = %d/%d, want 10/100", opts.LengthLow, opts.LengthHigh)
	}
	if opts.StopwordsLow != 0.1 || opts.StopwordsHigh != 0.2 {
		t.Errorf("Options densities = %v/%v, want 0.1/0.2", opts.StopwordsLow, opts.StopwordsHigh)
	}
	if opts.MaxLinkDensity != 0.5 {
		t.Errorf("Options MaxLinkDensity = %v, want 0.5", opts.MaxLinkDensity)
	}
	if opts.MaxHeadingDistance != 50 {
		t.Errorf("Options MaxHeadingDistance = %d, want 50", opts.MaxHeadingDistance)
	}
	if !opts.NoHeadings {
		t.Error("Options NoHeadings = false, want true")
	}
}

func TestLoadConfiguration_UnknownField(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("version: 1\nnonsense: true\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfiguration(configPath); err == nil {
		t.Fatal("LoadConfiguration() expected error for unknown field")
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	for _, want := range []string{"length_low", "stopwords_high", "max_link_density", "language"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("dump is missing %q", want)
		}
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !strings.Contains(string(data), "classifier:") {
		t.Error("prepared template is missing classifier section")
	}
}

func TestCleanFileName(t *testing.T) {
	if got := CleanFileName("a" + string(os.PathSeparator) + "b"); strings.ContainsRune(got, os.PathSeparator) {
		t.Errorf("CleanFileName left path separator in %q", got)
	}
	if got := CleanFileName(""); got != "_bad_file_name_" {
		t.Errorf("CleanFileName(empty) = %q", got)
	}
}
