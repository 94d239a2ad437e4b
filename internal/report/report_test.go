// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"docredact/internal/catalog"
	"docredact/internal/verify"
)

func TestBuilderAggregates(t *testing.T) {
	b := NewBuilder("in.pdf", "out.pdf")
	b.AddRedaction(catalog.CategoryPhone, "555-123-4567", 1)
	b.AddRedaction(catalog.CategoryPhone, "555-123-4567", 1)
	b.AddRedaction(catalog.CategoryPhone, "555-123-4567", 2)
	b.AddRedaction(catalog.CategoryEmail, "a@example.com", 1)
	b.SetFindings(nil)

	rep := b.Build()
	if rep.TotalItemsRedacted != 4 {
		t.Errorf("expected total 4, got %d", rep.TotalItemsRedacted)
	}
	if len(rep.RedactedItems) != 3 {
		t.Errorf("expected 3 distinct items, got %d", len(rep.RedactedItems))
	}
	if !rep.Verified {
		t.Error("empty findings should verify")
	}

	counts := rep.CategoryCounts()
	if counts["Phone Numbers"] != 3 || counts["Email Addresses"] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
}

func TestBuilderFindingsBlockVerified(t *testing.T) {
	b := NewBuilder("in.pdf", "out.pdf")
	b.SetFindings([]verify.Finding{{Page: 1, Category: catalog.CategoryCreditCard, Text: "4111111111111111"}})

	rep := b.Build()
	if rep.Verified {
		t.Error("findings must block verification")
	}
	if len(rep.Findings) != 1 {
		t.Errorf("findings lost: %v", rep.Findings)
	}
}

func TestWriteFile(t *testing.T) {
	b := NewBuilder("in.txt", "out.txt")
	b.AddRedaction(catalog.CategoryIBAN, "DE89370400440532013000", 1)
	b.SetPartialFailure()
	b.SetFindings(nil)
	rep := b.Build()

	path := filepath.Join(t.TempDir(), "report.json")
	if err := rep.WriteFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var round Report
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if round.TotalItemsRedacted != 1 || !round.PartialFailure {
		t.Errorf("unexpected round trip %+v", round)
	}
	if round.Timestamp == "" || round.InputFile != "in.txt" {
		t.Errorf("missing metadata: %+v", round)
	}
}

func TestReportOnlyClearsOutput(t *testing.T) {
	b := NewBuilder("in.txt", "out.txt")
	b.SetReportOnly()
	rep := b.Build()
	if !rep.ReportOnly || rep.OutputFile != "" {
		t.Errorf("unexpected report %+v", rep)
	}
}
