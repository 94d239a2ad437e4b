// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config defines the run configuration and its YAML file form.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"docredact/internal/catalog"
	"docredact/internal/document"
)

// Run is the resolved configuration for one redaction run. CLI flags
// override file values which override defaults.
type Run struct {
	// InputPath is the document to redact.
	InputPath string `yaml:"input"`
	// OutputPath receives the redacted document. Defaults to the input
	// name with a "_redacted" suffix.
	OutputPath string `yaml:"output"`
	// ReportPath receives the JSON report when set.
	ReportPath string `yaml:"report"`

	// Categories enables detection categories. Empty means all.
	Categories []string `yaml:"categories"`
	// CustomMask is an extra pattern redacted as its own category. A
	// mask that fails to compile is skipped with a warning.
	CustomMask string `yaml:"custom_mask"`

	// Language pins detection to one language instead of per-page
	// identification. Empty or "auto" selects per-page identification.
	Language string `yaml:"language"`

	// PreserveHeadings keeps document headings unredacted.
	PreserveHeadings bool `yaml:"preserve_headings"`
	// CrossExclusion drops phone-shaped card matches and vice versa.
	CrossExclusion bool `yaml:"cross_exclusion"`

	// Blur renders redactions as semi-opaque mask characters instead of
	// solid boxes.
	Blur bool `yaml:"blur"`
	// Color is the redaction box color as a hex string.
	Color string `yaml:"color"`

	// Verify re-scans the mutated output before reporting success.
	Verify bool `yaml:"verify"`
	// ReportOnly scans and reports without mutating the document.
	ReportOnly bool `yaml:"report_only"`

	// Workers bounds detection concurrency. Zero means NumCPU.
	Workers int `yaml:"workers"`

	// LogLevel sets engine log verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Default returns the baseline configuration.
func Default() *Run {
	return &Run{
		PreserveHeadings: true,
		CrossExclusion:   true,
		Verify:           true,
		Color:            "#000000",
		LogLevel:         "info",
	}
}

var colorShape = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// knownLanguages are the codes a run may pin detection to.
var knownLanguages = map[string]bool{
	"en": true, "fr": true, "de": true, "es": true, "hi": true,
}

// Validate checks the configuration for values the engine cannot act on.
func (r *Run) Validate() error {
	if r.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	if r.Color != "" && !colorShape.MatchString(r.Color) {
		return fmt.Errorf("invalid color %q, expected #RRGGBB", r.Color)
	}
	if lang := strings.ToLower(r.Language); lang != "" && lang != "auto" && !knownLanguages[lang] {
		return fmt.Errorf("unknown language %q", r.Language)
	}
	if r.Workers < 0 {
		return fmt.Errorf("workers must be >= 0")
	}
	for _, c := range r.Categories {
		if _, ok := catalog.ParseCategory(c); !ok {
			return fmt.Errorf("unknown category %q", c)
		}
	}
	return nil
}

// ForcedLanguage returns the language pin for the resolver, or the
// empty string when per-page identification should run. "auto" is the
// explicit spelling of the default.
func (r *Run) ForcedLanguage() string {
	lang := strings.ToLower(r.Language)
	if lang == "auto" {
		return ""
	}
	return lang
}

// EnabledCategories resolves the category names into catalog categories.
// An empty list enables everything.
func (r *Run) EnabledCategories() []catalog.Category {
	if len(r.Categories) == 0 {
		return catalog.AllCategories()
	}
	var out []catalog.Category
	seen := map[catalog.Category]bool{}
	for _, name := range r.Categories {
		if cat, ok := catalog.ParseCategory(name); ok && !seen[cat] && cat != catalog.CategoryCustom {
			seen[cat] = true
			out = append(out, cat)
		}
	}
	return out
}

// Treatment resolves the visual treatment for redacted regions.
func (r *Run) Treatment() document.Treatment {
	t := document.DefaultTreatment()
	if r.Color != "" {
		t.Color = r.Color
	}
	if r.Blur {
		t.Kind = document.Blur
	}
	return t
}

// ResolvedOutputPath returns the output path, deriving one from the
// input when unset.
func (r *Run) ResolvedOutputPath() string {
	if r.OutputPath != "" {
		return r.OutputPath
	}
	ext := filepath.Ext(r.InputPath)
	return strings.TrimSuffix(r.InputPath, ext) + "_redacted" + ext
}

// Load reads a YAML config file over the defaults. The result is not
// validated; flag resolution may still fill required fields.
func Load(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// FindConfigFile looks for a config file in the conventional locations:
// the working directory, then the user's config directory.
func FindConfigFile() string {
	candidates := []string{"docredact.yaml", "docredact.yml", ".docredact.yaml"}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "docredact", "config.yaml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadOrDefault loads the discovered config file or falls back to the
// defaults when none exists.
func LoadOrDefault() (*Run, error) {
	if path := FindConfigFile(); path != "" {
		return Load(path)
	}
	return Default(), nil
}
