// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// docredact redacts sensitive data from documents and verifies that the
// output is actually clean.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"

	"docredact/internal/config"
	"docredact/internal/document"
	"docredact/internal/engine"
	"docredact/internal/logger"
	"docredact/internal/report"
	"docredact/internal/version"
)

// Exit codes: 0 clean, 1 usage or input error, 2 verification failure.
const (
	exitOK         = 0
	exitError      = 1
	exitUnverified = 2
)

func main() {
	inputFile := flag.String("file", "", "Path to the input document (PDF or text)")
	outputFile := flag.String("output", "", "Path for the redacted output (default: <input>_redacted.<ext>)")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	categories := flag.String("categories", "", "Comma-separated categories: phone, email, credit_card, cvv, expiration, iban, bic, aadhaar, pan (default: all)")
	customMask := flag.String("mask", "", "Extra regular expression to redact as a custom category")
	lang := flag.String("language", "", "Pin detection to one language (en, fr, de, es, hi); auto selects per-page identification")
	blur := flag.Bool("blur", false, "Render redactions as semi-opaque mask characters instead of solid boxes")
	boxColor := flag.String("color", "", "Redaction box color as #RRGGBB (default: #000000)")
	noPreserve := flag.Bool("no-preserve-headings", false, "Redact heading-shaped text too")
	noVerify := flag.Bool("no-verify", false, "Skip the post-redaction verification scan")
	noCrossExclusion := flag.Bool("no-cross-exclusion", false, "Keep phone-shaped card matches and card-shaped phone matches")
	reportOnly := flag.Bool("report-only", false, "Scan and report without mutating the document")
	reportFile := flag.String("report", "", "Path for the JSON report")
	workers := flag.Int("workers", 0, "Detection worker count (default: number of CPUs)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	quiet := flag.Bool("quiet", false, "Suppress the summary (useful for scripts and CI/CD)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(exitOK)
	}

	if *noColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}

	cfg, err := resolveConfig(*configFile)
	if err != nil {
		fail(err)
	}

	// Flags override file values.
	if *inputFile != "" {
		cfg.InputPath = *inputFile
	}
	if cfg.InputPath == "" && flag.NArg() > 0 {
		cfg.InputPath = flag.Arg(0)
	}
	if *outputFile != "" {
		cfg.OutputPath = *outputFile
	}
	if *reportFile != "" {
		cfg.ReportPath = *reportFile
	}
	if *categories != "" {
		cfg.Categories = splitList(*categories)
	}
	if *customMask != "" {
		cfg.CustomMask = *customMask
	}
	if *lang != "" {
		cfg.Language = *lang
	}
	if *boxColor != "" {
		cfg.Color = *boxColor
	}
	if *blur {
		cfg.Blur = true
	}
	if *noPreserve {
		cfg.PreserveHeadings = false
	}
	if *noVerify {
		cfg.Verify = false
	}
	if *noCrossExclusion {
		cfg.CrossExclusion = false
	}
	if *reportOnly {
		cfg.ReportOnly = true
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})
	if err != nil {
		fail(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := document.Open(cfg.InputPath)
	if err != nil {
		fail(err)
	}
	defer doc.Close()

	rep, err := engine.New(cfg, log).Run(ctx, doc)
	switch {
	case errors.Is(err, engine.ErrVerificationFailed):
		if !*quiet {
			printSummary(rep)
		}
		color.Red("verification failed: %d finding(s) remain in the output", len(rep.Findings))
		os.Exit(exitUnverified)
	case err != nil:
		fail(err)
	}

	if !*quiet {
		printSummary(rep)
	}
	os.Exit(exitOK)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
	os.Exit(exitError)
}

func resolveConfig(path string) (*config.Run, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printSummary(rep *report.Report) {
	if rep == nil {
		return
	}
	bold := color.New(color.Bold)

	if rep.ReportOnly {
		bold.Printf("Scan of %s\n", rep.InputFile)
	} else {
		bold.Printf("Redacted %s -> %s\n", rep.InputFile, rep.OutputFile)
	}
	fmt.Printf("Items: %d\n", rep.TotalItemsRedacted)
	for label, count := range rep.CategoryCounts() {
		fmt.Printf("  %-20s %d\n", label, count)
	}
	if rep.PartialFailure {
		color.Yellow("some redactions could not be applied")
	}
	switch {
	case rep.ReportOnly:
	case rep.Verified:
		color.Green("verification passed")
	case len(rep.Findings) > 0:
		color.Red("verification found %d residual item(s)", len(rep.Findings))
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
