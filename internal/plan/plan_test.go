// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"reflect"
	"testing"

	"docredact/internal/catalog"
	"docredact/internal/detect"
	"docredact/internal/document"
	"docredact/internal/heading"
)

func redactDecision(page int, cat catalog.Category, text string) heading.Decision {
	return heading.Decision{
		Candidate: detect.Candidate{Category: cat, Page: page, Text: text},
		Verdict:   heading.Redact,
	}
}

func TestPlanSkipsPreserved(t *testing.T) {
	p := New(true)
	decisions := []heading.Decision{
		{
			Candidate: detect.Candidate{Category: catalog.CategoryPhone, Page: 1, Text: "Summary"},
			Verdict:   heading.Preserve,
		},
		redactDecision(1, catalog.CategoryEmail, "jane@example.com"),
	}

	got := p.Plan(decisions, document.DefaultTreatment())
	if len(got) != 1 || got[0].Text != "jane@example.com" {
		t.Errorf("unexpected plan %v", got)
	}
}

func TestPlanLabelValueNarrowing(t *testing.T) {
	p := New(true)
	decisions := []heading.Decision{
		redactDecision(2, catalog.CategoryPhone, "Phone: 555-123-4567"),
	}

	got := p.Plan(decisions, document.DefaultTreatment())
	if len(got) != 1 {
		t.Fatalf("expected one instruction, got %d", len(got))
	}
	if got[0].Text != "555-123-4567" {
		t.Errorf("expected narrowed value, got %q", got[0].Text)
	}
	if got[0].Fallback != "Phone: 555-123-4567" {
		t.Errorf("expected full-text fallback, got %q", got[0].Fallback)
	}

	// Without label preservation the full literal redacts.
	full := New(false).Plan(decisions, document.DefaultTreatment())
	if full[0].Text != "Phone: 555-123-4567" || full[0].Fallback != "" {
		t.Errorf("unexpected instruction %v", full[0])
	}
}

func TestPlanDeduplicates(t *testing.T) {
	p := New(true)
	decisions := []heading.Decision{
		redactDecision(1, catalog.CategoryCreditCard, "4111 1111 1111 1111"),
		redactDecision(1, catalog.CategoryCreditCard, "4111 1111 1111 1111"),
		// Another category hitting the same literal keeps its own
		// instruction so the report attributes both categories.
		redactDecision(1, catalog.CategoryPhone, "4111 1111 1111 1111"),
		// A different page never collapses.
		redactDecision(2, catalog.CategoryCreditCard, "4111 1111 1111 1111"),
	}

	got := p.Plan(decisions, document.DefaultTreatment())
	if len(got) != 3 {
		t.Fatalf("expected three instructions after dedupe, got %d: %v", len(got), got)
	}
	categories := map[string]bool{}
	for _, instr := range got {
		if instr.Page == 1 {
			categories[instr.Category] = true
		}
	}
	if !categories[string(catalog.CategoryCreditCard)] || !categories[string(catalog.CategoryPhone)] {
		t.Errorf("expected both categories on page 1, got %v", got)
	}
}

func TestPlanIdempotent(t *testing.T) {
	p := New(true)
	decisions := []heading.Decision{
		redactDecision(1, catalog.CategoryEmail, "a@example.com"),
		redactDecision(3, catalog.CategoryPhone, "Phone: 555-123-4567"),
		redactDecision(2, catalog.CategoryEmail, "b@example.com"),
	}

	first := p.Plan(decisions, document.DefaultTreatment())
	second := p.Plan(decisions, document.DefaultTreatment())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("plans differ across runs:\n%v\n%v", first, second)
	}
}

func TestPlanKeepsContainedLiterals(t *testing.T) {
	// A literal contained in a longer one still gets its own
	// instruction: it may also occur standalone elsewhere on the page,
	// and dropping it would leave those occurrences unredacted. The
	// longer literal orders first so its mutation runs before the
	// shorter one is located.
	p := New(false)
	decisions := []heading.Decision{
		redactDecision(1, catalog.CategoryCreditCard, "4111 1111 1111 1111"),
		redactDecision(1, catalog.CategoryCreditCard, "Card: 4111 1111 1111 1111"),
	}

	got := p.Plan(decisions, document.DefaultTreatment())
	if len(got) != 2 {
		t.Fatalf("expected both literals planned, got %v", got)
	}
	if got[0].Text != "Card: 4111 1111 1111 1111" {
		t.Errorf("expected the longer literal first, got %q", got[0].Text)
	}
	if got[1].Text != "4111 1111 1111 1111" {
		t.Errorf("expected the contained literal second, got %q", got[1].Text)
	}
}

func TestPlanTreatmentCarried(t *testing.T) {
	p := New(true)
	blur := document.Treatment{Kind: document.Blur, MaskChar: '*', Color: "#333333"}
	got := p.Plan([]heading.Decision{redactDecision(1, catalog.CategoryEmail, "a@b.co")}, blur)
	if len(got) != 1 || got[0].Treatment.Kind != document.Blur {
		t.Errorf("treatment not carried: %v", got)
	}
}
