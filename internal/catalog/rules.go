// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultLanguage is the language whose rule lists serve as the fallback
// when no rules exist for a resolved language.
const DefaultLanguage = "en"

// PatternRule is one named regular expression for a category, optionally
// paired with a checksum validator. A rule whose validator rejects a raw
// match drops that match silently.
type PatternRule struct {
	Name     string
	Pattern  *regexp.Regexp
	Validate func(string) bool
}

// Matches returns the [start, end) index pairs of every match of the
// rule in text that the validator (if any) accepts.
func (r PatternRule) Matches(text string) [][2]int {
	locs := r.Pattern.FindAllStringIndex(text, -1)
	if locs == nil {
		return nil
	}
	out := make([][2]int, 0, len(locs))
	for _, loc := range locs {
		if r.Validate != nil && !r.Validate(text[loc[0]:loc[1]]) {
			continue
		}
		out = append(out, [2]int{loc[0], loc[1]})
	}
	return out
}

type ruleKey struct {
	cat  Category
	lang string
}

// Catalog maps (category, language) pairs to ordered rule lists. It is
// immutable after construction and safe for concurrent use.
type Catalog struct {
	rules map[ruleKey][]PatternRule
}

// RulesFor returns the rule list for the category in the given language.
// When the language has no rules for the category, the default-language
// list is returned instead; the result is empty only when the category
// has no rules at all.
func (c *Catalog) RulesFor(cat Category, lang string) []PatternRule {
	if rules, ok := c.rules[ruleKey{cat, lang}]; ok {
		return rules
	}
	return c.rules[ruleKey{cat, DefaultLanguage}]
}

// Languages returns the language codes the catalog carries rules for.
func (c *Catalog) Languages() []string {
	seen := map[string]bool{}
	var out []string
	for k := range c.rules {
		if !seen[k.lang] {
			seen[k.lang] = true
			out = append(out, k.lang)
		}
	}
	return out
}

// CustomRule compiles a user-supplied mask expression into a rule for
// CategoryCustom. The error is reported to the caller so a bad mask can
// be surfaced as a warning without aborting the run.
func CustomRule(expr string) (PatternRule, error) {
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return PatternRule{}, fmt.Errorf("custom mask %q does not compile: %w", expr, err)
	}
	return PatternRule{Name: "custom-mask", Pattern: re}, nil
}

func mustRule(name, expr string, validate func(string) bool) PatternRule {
	return PatternRule{
		Name:     name,
		Pattern:  regexp.MustCompile("(?i)" + expr),
		Validate: validate,
	}
}

// validCreditCard strips separators and runs the Luhn check.
func validCreditCard(s string) bool {
	return ValidLuhn(s)
}

// validUpperBIC requires the match to appear uppercase in the source
// text before the structural check. Rules compile case-insensitively, so
// without this an ordinary eight-letter word would pass.
func validUpperBIC(s string) bool {
	if s != strings.ToUpper(s) {
		return false
	}
	return ValidBIC(s)
}

func validUpperPAN(s string) bool {
	if s != strings.ToUpper(s) {
		return false
	}
	return ValidPAN(s)
}

// validLabeledIBAN pulls the account portion out of a labeled match
// before the MOD-97 check.
func validLabeledIBAN(s string) bool {
	idx := strings.IndexByte(s, ':')
	if idx >= 0 {
		s = s[idx+1:]
	} else if n := strings.IndexFunc(s, func(r rune) bool { return r == ' ' }); n >= 0 && strings.HasPrefix(strings.ToUpper(s), "IBAN") {
		s = s[n+1:]
	}
	return ValidIBAN(strings.TrimSpace(s))
}

func validLabeledAadhaar(s string) bool {
	idx := strings.IndexAny(s, ":#")
	if idx >= 0 {
		s = s[idx+1:]
	}
	return ValidAadhaar(s)
}

// NewDefaultCatalog builds the built-in pattern catalog. Rules are
// grouped per language; languages without a ruleset for a category fall
// back to the default-language rules at lookup time.
func NewDefaultCatalog() *Catalog {
	c := &Catalog{rules: map[ruleKey][]PatternRule{}}

	add := func(cat Category, lang string, rules ...PatternRule) {
		c.rules[ruleKey{cat, lang}] = append(c.rules[ruleKey{cat, lang}], rules...)
	}

	// Phone numbers.
	add(CategoryPhone, "en",
		mustRule("phone-labeled", `\b(?:phone|tel|telephone|mobile|cell|fax)\s*(?:number|no|#)?\s*[:#.]?\s*(?:\+?\d{1,3}[-.\s])?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`, nil),
		mustRule("phone-parenthesized", `\(\d{3}\)\s*\d{3}[-.\s]?\d{4}\b`, nil),
		mustRule("phone-separated", `\b\d{3}[-.\s]\d{3}[-.\s]\d{4}\b`, nil),
		mustRule("phone-international", `\+\d{1,3}[-.\s]?\d{2,4}[-.\s]?\d{3,4}[-.\s]?\d{3,4}\b`, nil),
	)
	add(CategoryPhone, "fr",
		mustRule("phone-fr", `\b(?:\+33|0033|0)\s*[1-9](?:[\s.\-]?\d{2}){4}\b`, nil),
		mustRule("phone-fr-labeled", `\b(?:t[ée]l[ée]phone|t[ée]l|portable|fixe)\s*[:.]?\s*(?:\+33|0)\s*[1-9](?:[\s.\-]?\d{2}){4}\b`, nil),
	)
	add(CategoryPhone, "de",
		mustRule("phone-de", `\b(?:\+49|0049|0)[\s\-/]?[1-9]\d{1,4}[\s\-/]?\d{4,8}\b`, nil),
		mustRule("phone-de-labeled", `\b(?:telefon|handy|mobil|festnetz)\s*[:.]?\s*(?:\+49|0)[\s\-/]?\d{2,5}[\s\-/]?\d{4,8}\b`, nil),
	)
	add(CategoryPhone, "es",
		mustRule("phone-es", `\b(?:\+34|0034)?[\s\-]?[6789]\d{2}[\s\-]?\d{3}[\s\-]?\d{3}\b`, nil),
		mustRule("phone-es-labeled", `\b(?:tel[ée]fono|m[óo]vil|celular)\s*[:.]?\s*(?:\+34)?[\s\-]?\d{3}[\s\-]?\d{3}[\s\-]?\d{3}\b`, nil),
	)
	add(CategoryPhone, "hi",
		mustRule("phone-in-mobile", `\b(?:\+91[\s\-]?)?[6789]\d{4}[\s\-]?\d{5}\b`, nil),
		mustRule("phone-in-landline", `\b0\d{2,4}[\s\-]?\d{6,8}\b`, nil),
	)

	// Email addresses, including the spelled-out obfuscations.
	add(CategoryEmail, "en",
		mustRule("email", `\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`, nil),
		mustRule("email-obfuscated-words", `\b[A-Za-z0-9._%+\-]+\s+at\s+[A-Za-z0-9.\-]+\s+dot\s+[A-Za-z]{2,}\b`, nil),
		mustRule("email-obfuscated-brackets", `\b[A-Za-z0-9._%+\-]+\s*\[at\]\s*[A-Za-z0-9.\-]+\s*\[dot\]\s*[A-Za-z]{2,}\b`, nil),
	)

	// Credit card numbers: every rule is gated on the Luhn check.
	add(CategoryCreditCard, "en",
		mustRule("cc-grouped", `\b(?:\d{4}[\- ]){3}\d{4}\b`, validCreditCard),
		mustRule("cc-raw", `\b\d{13,16}\b`, validCreditCard),
		mustRule("cc-labeled", `\b(?:card|credit\s*card|account)\s*(?:number|no|#)?\s*[:#.]?\s*(?:\d{4}[\- ]?){3,4}\d{1,4}\b`, validCreditCard),
	)

	// CVV codes: only labeled forms, bare 3-4 digit runs are far too
	// common to match on their own.
	add(CategoryCVV, "en",
		mustRule("cvv-labeled", `\b(?:cvv2?|cvc2?|cv2|csc|cid|cvn|cvd|security\s+code|card\s+verification)\s*(?:code|number|no|#)?\s*[:#.]?\s*\d{3,4}\b`, nil),
		mustRule("cvv-trailing", `\b\d{3,4}\s*\((?:cvv2?|cvc2?|csc|cid|security\s+code)\)`, nil),
	)
	add(CategoryCVV, "fr",
		mustRule("cvv-fr", `\b(?:cryptogramme|code\s+de\s+s[ée]curit[ée])\s*[:.]?\s*\d{3,4}\b`, nil),
	)
	add(CategoryCVV, "de",
		mustRule("cvv-de", `\b(?:pr[üu]fziffer|sicherheitscode|kartenpr[üu]fnummer)\s*[:.]?\s*\d{3,4}\b`, nil),
	)
	add(CategoryCVV, "es",
		mustRule("cvv-es", `\b(?:c[óo]digo\s+de\s+seguridad)\s*[:.]?\s*\d{3,4}\b`, nil),
	)

	// Card expiration dates.
	add(CategoryExpiration, "en",
		mustRule("exp-labeled", `\b(?:expiry|expiration|expires?|valid\s+thru|valid\s+until|exp\.?)\s*(?:date)?\s*[:#.]?\s*(?:0?[1-9]|1[0-2])\s*[/\-]\s*(?:\d{2}|2\d{3})\b`, nil),
		mustRule("exp-mmyy", `\b(?:0[1-9]|1[0-2])/(?:\d{2}|2\d{3})\b`, nil),
	)
	add(CategoryExpiration, "fr",
		mustRule("exp-fr", `\b(?:date\s+d'expiration|expire\s+(?:le|fin))\s*[:.]?\s*(?:0?[1-9]|1[0-2])\s*/\s*(?:\d{2}|2\d{3})\b`, nil),
	)
	add(CategoryExpiration, "de",
		mustRule("exp-de", `\b(?:g[üu]ltig\s+bis|ablaufdatum)\s*[:.]?\s*(?:0?[1-9]|1[0-2])\s*/\s*(?:\d{2}|2\d{3})\b`, nil),
	)
	add(CategoryExpiration, "es",
		mustRule("exp-es", `\b(?:fecha\s+de\s+(?:vencimiento|caducidad)|v[áa]lida\s+hasta)\s*[:.]?\s*(?:0?[1-9]|1[0-2])\s*/\s*(?:\d{2}|2\d{3})\b`, nil),
	)

	// IBANs: country code, two check digits, up to 30 alphanumerics,
	// gated on MOD-97.
	add(CategoryIBAN, "en",
		mustRule("iban", `\b[A-Z]{2}\d{2}(?:\s?[A-Z0-9]{4}){2,7}(?:\s?[A-Z0-9]{1,3})?\b`, ValidIBAN),
		mustRule("iban-labeled", `\bIBAN\s*[:#.]?\s*[A-Z]{2}\d{2}\s?(?:[A-Z0-9]\s?){11,30}\b`, validLabeledIBAN),
	)

	// BIC/SWIFT codes: structural check rejects lowercase matches so
	// ordinary eight-letter words do not slip through.
	add(CategoryBIC, "en",
		mustRule("bic", `\b[A-Za-z]{6}[A-Za-z0-9]{2}(?:[A-Za-z0-9]{3})?\b`, validUpperBIC),
		mustRule("bic-labeled", `\b(?:BIC|SWIFT)\s*(?:code)?\s*[:#.]?\s*[A-Z0-9]{8,11}\b`, nil),
	)

	// Aadhaar numbers: Verhoeff-gated 12-digit identifiers.
	add(CategoryAadhaar, "en",
		mustRule("aadhaar", `\b\d{4}\s?\d{4}\s?\d{4}\b`, ValidAadhaar),
		mustRule("aadhaar-labeled", `\b(?:aadhaar|aadhar|uid)\s*(?:number|no|#)?\s*[:#.]?\s*\d{4}\s?\d{4}\s?\d{4}\b`, validLabeledAadhaar),
	)
	add(CategoryAadhaar, "hi",
		mustRule("aadhaar", `\b\d{4}\s?\d{4}\s?\d{4}\b`, ValidAadhaar),
		mustRule("aadhaar-labeled-hi", `(?:आधार)\s*(?:संख्या|नंबर)?\s*[:#.]?\s*\d{4}\s?\d{4}\s?\d{4}\b`, validLabeledAadhaar),
	)

	// Indian PAN: structural check enforces uppercase and the
	// holder-type letter.
	add(CategoryPAN, "en",
		mustRule("pan", `\b[A-Za-z]{5}\d{4}[A-Za-z]\b`, validUpperPAN),
		mustRule("pan-labeled", `\b(?:PAN|permanent\s+account\s+number)\s*(?:number|no|#)?\s*[:#.]?\s*[A-Z]{5}\d{4}[A-Z]\b`, nil),
	)

	return c
}
