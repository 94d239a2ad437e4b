// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package report builds the JSON run report.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"docredact/internal/catalog"
	"docredact/internal/verify"
)

// Item is one redacted literal in the report.
type Item struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Text     string `json:"text"`
	Page     int    `json:"page"`
	Count    int    `json:"count"`
}

// Report is the JSON summary of a run.
type Report struct {
	Timestamp          string           `json:"timestamp"`
	InputFile          string           `json:"input_file"`
	OutputFile         string           `json:"output_file,omitempty"`
	ReportOnly         bool             `json:"report_only,omitempty"`
	TotalItemsRedacted int              `json:"total_items_redacted"`
	RedactedItems      []Item           `json:"redacted_items"`
	PartialFailure     bool             `json:"partial_failure,omitempty"`
	Verified           bool             `json:"verified"`
	Findings           []verify.Finding `json:"verification_findings,omitempty"`
}

// Builder accumulates run results.
type Builder struct {
	report Report
	items  map[string]*Item
}

// NewBuilder starts a report for the given input and output paths.
func NewBuilder(inputFile, outputFile string) *Builder {
	return &Builder{
		report: Report{
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			InputFile:  inputFile,
			OutputFile: outputFile,
		},
		items: map[string]*Item{},
	}
}

// AddRedaction records one applied redaction. Repeats of the same
// literal on the same page increment the count.
func (b *Builder) AddRedaction(cat catalog.Category, text string, page int) {
	key := fmt.Sprintf("%s|%d|%s", cat, page, text)
	if item, ok := b.items[key]; ok {
		item.Count++
		return
	}
	item := &Item{
		Category: string(cat),
		Label:    cat.DisplayName(),
		Text:     text,
		Page:     page,
		Count:    1,
	}
	b.items[key] = item
}

// SetPartialFailure flags that at least one instruction failed to apply.
func (b *Builder) SetPartialFailure() {
	b.report.PartialFailure = true
}

// SetReportOnly marks a scan-without-mutation run.
func (b *Builder) SetReportOnly() {
	b.report.ReportOnly = true
	b.report.OutputFile = ""
}

// SetFindings records the verification outcome.
func (b *Builder) SetFindings(findings []verify.Finding) {
	b.report.Findings = findings
	b.report.Verified = len(findings) == 0
}

// Build finalizes the report.
func (b *Builder) Build() *Report {
	items := make([]Item, 0, len(b.items))
	total := 0
	for _, item := range b.items {
		items = append(items, *item)
		total += item.Count
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Page != items[j].Page {
			return items[i].Page < items[j].Page
		}
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Text < items[j].Text
	})
	b.report.RedactedItems = items
	b.report.TotalItemsRedacted = total
	return &b.report
}

// WriteFile writes the report as indented JSON.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// CategoryCounts aggregates redaction counts per category label.
func (r *Report) CategoryCounts() map[string]int {
	out := map[string]int{}
	for _, item := range r.RedactedItems {
		out[item.Label] += item.Count
	}
	return out
}
