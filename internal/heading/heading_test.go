// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package heading

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name     string
		text     string
		lang     string
		preserve bool
		want     Verdict
	}{
		{"preservation disabled", "Summary", "en", false, Redact},
		{"too long for heading", strings.Repeat("Section heading text ", 3), "en", true, Redact},
		{"cvv override beats heading shape", "CVV: 123", "en", true, Redact},
		{"card number override", "4111 1111 1111 1111", "en", true, Redact},
		{"email override", "Contact: jane@example.com", "en", true, Redact},
		{"phone label override", "Phone: 555-123-4567", "en", true, Redact},
		{"expiration override", "Expiry: 09/27", "en", true, Redact},
		{"vocabulary heading", "Summary", "en", true, Preserve},
		{"vocabulary heading with colon", "Introduction:", "en", true, Preserve},
		{"vocabulary first word", "Summary of accounts", "en", true, Preserve},
		{"vocabulary word mid-text", "Account summary details follow here today", "en", true, Redact},
		{"numbered heading", "3.1 Payment Terms", "en", true, Preserve},
		{"roman numeral heading", "IV. Accounts", "en", true, Preserve},
		{"all caps heading", "PAYMENT DETAILS", "en", true, Preserve},
		{"chapter reference", "Chapter 7", "en", true, Preserve},
		{"french vocab heading", "Sommaire", "fr", true, Preserve},
		{"german vocab heading", "Zusammenfassung", "de", true, Preserve},
		{"spanish vocab heading", "Resumen", "es", true, Preserve},
		{"german sensitive override", "Kontonummer: 12345678", "de", true, Redact},
		{"plain digits", "555-123-4567", "en", true, Redact},
		{"no heading evidence", "transfer due friday 17", "en", true, Redact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := c.Classify(tt.text, tt.lang, tt.preserve)
			if got != tt.want {
				t.Errorf("Classify(%q, %q) = %v (%s), want %v", tt.text, tt.lang, got, reason, tt.want)
			}
		})
	}
}

func TestClassifyLabeledValue(t *testing.T) {
	c := NewClassifier()

	// A label with a sensitive-shaped value redacts even though the
	// label alone would read as a heading.
	if got, _ := c.Classify("Account Number: 12345678901", "en", true); got != Redact {
		t.Error("expected labeled account number to redact")
	}
	// The same label shape with no value stays a heading.
	if got, reason := c.Classify("Account Details:", "en", true); got != Preserve {
		t.Errorf("expected bare label heading to preserve, got redact (%s)", reason)
	}
}

func TestOverridePriorityOverVocabulary(t *testing.T) {
	c := NewClassifier()

	// Even a vocabulary word redacts when a sensitive shape rides along.
	if got, _ := c.Classify("Summary 4111111111111111", "en", true); got != Redact {
		t.Error("expected sensitive override to beat the vocabulary")
	}
}
