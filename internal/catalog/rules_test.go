// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package catalog

import "testing"

func matchedLiterals(c *Catalog, cat Category, lang, text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, rule := range c.RulesFor(cat, lang) {
		for _, loc := range rule.Matches(text) {
			lit := text[loc[0]:loc[1]]
			if !seen[lit] {
				seen[lit] = true
				out = append(out, lit)
			}
		}
	}
	return out
}

func TestCatalogMatches(t *testing.T) {
	c := NewDefaultCatalog()

	tests := []struct {
		name    string
		cat     Category
		lang    string
		text    string
		want    []string
		wantNot []string
	}{
		{
			name: "credit card passes luhn",
			cat:  CategoryCreditCard,
			lang: "en",
			text: "Card: 4111 1111 1111 1111 for payment",
			want: []string{"4111 1111 1111 1111"},
		},
		{
			name:    "credit card failing luhn is dropped",
			cat:     CategoryCreditCard,
			lang:    "en",
			text:    "Card: 4111 1111 1111 1112 for payment",
			wantNot: []string{"4111 1111 1111 1112"},
		},
		{
			name: "labeled us phone",
			cat:  CategoryPhone,
			lang: "en",
			text: "Phone: 555-123-4567",
			want: []string{"Phone: 555-123-4567"},
		},
		{
			name: "french mobile with default fallback off",
			cat:  CategoryPhone,
			lang: "fr",
			text: "Tel: 06 12 34 56 78",
			want: []string{"06 12 34 56 78"},
		},
		{
			name: "plain email",
			cat:  CategoryEmail,
			lang: "en",
			text: "reach me at jane.doe@example.com today",
			want: []string{"jane.doe@example.com"},
		},
		{
			name: "obfuscated email",
			cat:  CategoryEmail,
			lang: "en",
			text: "reach me at jane [at] example [dot] com today",
			want: []string{"jane [at] example [dot] com"},
		},
		{
			name: "labeled cvv",
			cat:  CategoryCVV,
			lang: "en",
			text: "CVV: 123",
			want: []string{"CVV: 123"},
		},
		{
			name:    "bare three digits are not cvv",
			cat:     CategoryCVV,
			lang:    "en",
			text:    "room 123 on floor 4",
			wantNot: []string{"123"},
		},
		{
			name: "iban with valid checksum",
			cat:  CategoryIBAN,
			lang: "en",
			text: "transfer to DE89 3704 0044 0532 0130 00 please",
			want: []string{"DE89 3704 0044 0532 0130 00"},
		},
		{
			name:    "iban with bad checksum dropped",
			cat:     CategoryIBAN,
			lang:    "en",
			text:    "transfer to DE89370400440532013001 please",
			wantNot: []string{"DE89370400440532013001"},
		},
		{
			name: "structurally valid bic",
			cat:  CategoryBIC,
			lang: "en",
			text: "SWIFT code DEUTDEFF on file",
			want: []string{"DEUTDEFF"},
		},
		{
			name:    "digits in bic bank code dropped",
			cat:     CategoryBIC,
			lang:    "en",
			text:    "reference DEUT12FF here",
			wantNot: []string{"DEUT12FF"},
		},
		{
			name:    "lowercase word is not a bic",
			cat:     CategoryBIC,
			lang:    "en",
			text:    "the document mentions the account",
			wantNot: []string{"document", "mentions"},
		},
		{
			name: "aadhaar with valid verhoeff",
			cat:  CategoryAadhaar,
			lang: "en",
			text: "Aadhaar: 2341 2341 2346",
			want: []string{"2341 2341 2346"},
		},
		{
			name:    "aadhaar with bad verhoeff dropped",
			cat:     CategoryAadhaar,
			lang:    "en",
			text:    "Aadhaar: 2341 2341 2341",
			wantNot: []string{"2341 2341 2341"},
		},
		{
			name: "structurally valid pan",
			cat:  CategoryPAN,
			lang: "en",
			text: "PAN ABCPD1234E on record",
			want: []string{"ABCPD1234E"},
		},
		{
			name:    "pan with disallowed holder type dropped",
			cat:     CategoryPAN,
			lang:    "en",
			text:    "code AAADA1234A on record",
			wantNot: []string{"AAADA1234A"},
		},
		{
			name: "expiration date",
			cat:  CategoryExpiration,
			lang: "en",
			text: "Valid Thru: 09/27",
			want: []string{"Valid Thru: 09/27"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchedLiterals(c, tt.cat, tt.lang, tt.text)
			gotSet := map[string]bool{}
			for _, g := range got {
				gotSet[g] = true
			}
			for _, w := range tt.want {
				if !gotSet[w] {
					t.Errorf("expected match %q, got %v", w, got)
				}
			}
			for _, w := range tt.wantNot {
				if gotSet[w] {
					t.Errorf("unexpected match %q in %v", w, got)
				}
			}
		})
	}
}

func TestRulesForFallsBackToDefaultLanguage(t *testing.T) {
	c := NewDefaultCatalog()

	// No Hindi email rules exist, so the default-language list applies.
	hi := c.RulesFor(CategoryEmail, "hi")
	en := c.RulesFor(CategoryEmail, "en")
	if len(hi) == 0 || len(hi) != len(en) {
		t.Fatalf("expected fallback to default rules, got %d (default has %d)", len(hi), len(en))
	}

	// Unknown language behaves the same way.
	if got := c.RulesFor(CategoryCreditCard, "zz"); len(got) == 0 {
		t.Error("expected default credit card rules for unknown language")
	}
}

func TestCustomRule(t *testing.T) {
	rule, err := CustomRule(`PROJECT-\d{4}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rule.Matches("ref project-1234 here"); len(got) != 1 {
		t.Errorf("expected one case-insensitive match, got %d", len(got))
	}

	if _, err := CustomRule(`([unclosed`); err == nil {
		t.Error("expected error for invalid expression")
	}
}
