// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package detect runs the catalog's pattern rules over extracted page
// text and produces redaction candidates.
package detect

import (
	"regexp"
	"sort"

	"docredact/internal/catalog"
	"docredact/internal/language"
)

// Candidate is one literal occurrence of sensitive data on a page.
type Candidate struct {
	Category catalog.Category
	Rule     string
	Page     int
	Text     string
	Start    int
	End      int
	Language string
}

var (
	// Bare years and short integers masquerade as CVV codes and phone
	// fragments; both are dropped for count-sensitive categories.
	yearShape  = regexp.MustCompile(`^(?:19|20)\d{2}$`)
	shortShape = regexp.MustCompile(`^\d{1,4}$`)

	// Shapes used for cross-exclusion between card and phone matches.
	phoneShape = regexp.MustCompile(`^\+?\d{1,3}[-.\s]\(?\d{3}\)?[-.\s]\d{3}[-.\s]\d{4}$`)
	cardShape  = regexp.MustCompile(`^(?:\d{13,16}|(?:\d{4}[\- ]){3}\d{4})$`)

	trailingDigits = regexp.MustCompile(`\d[\d\s\-().+/]*$`)
)

// Detector applies catalog rules to text. It is stateless apart from its
// collaborators and safe for concurrent use.
type Detector struct {
	catalog        *catalog.Catalog
	resolver       *language.Resolver
	customRule     *catalog.PatternRule
	crossExclusion bool
}

// Option configures a Detector.
type Option func(*Detector)

// WithCustomRule adds a compiled custom mask rule, detected under
// CategoryCustom.
func WithCustomRule(rule catalog.PatternRule) Option {
	return func(d *Detector) { d.customRule = &rule }
}

// WithCrossExclusion toggles the mutual exclusion between card-shaped
// and phone-shaped matches. Enabled by default.
func WithCrossExclusion(enabled bool) Option {
	return func(d *Detector) { d.crossExclusion = enabled }
}

// New returns a Detector over the given catalog and resolver.
func New(cat *catalog.Catalog, resolver *language.Resolver, opts ...Option) *Detector {
	d := &Detector{
		catalog:        cat,
		resolver:       resolver,
		crossExclusion: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect runs every enabled category's rules over one page of text and
// returns the surviving candidates ordered by position. The page
// language is resolved once and shared across categories. Candidates
// from different rules of one category are unioned; overlapping spans
// survive and are collapsed later by the planner's dedupe.
func (d *Detector) Detect(text string, page int, categories []catalog.Category) []Candidate {
	if text == "" {
		return nil
	}
	lang := d.resolver.Resolve(text)

	var out []Candidate
	for _, cat := range categories {
		if cat == catalog.CategoryCustom {
			continue
		}
		for _, rule := range d.catalog.RulesFor(cat, lang) {
			out = append(out, d.collect(text, page, cat, rule, lang)...)
		}
	}
	if d.customRule != nil {
		out = append(out, d.collect(text, page, catalog.CategoryCustom, *d.customRule, lang)...)
	}

	// Identical (category, literal) pairs collapse to the first
	// occurrence; the mutator expands a literal into every visual
	// occurrence anyway. Cross-category duplicates stay.
	type key struct {
		cat catalog.Category
		lit string
	}
	seen := map[key]bool{}
	deduped := out[:0]
	for _, c := range out {
		k := key{c.Category, c.Text}
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, c)
	}
	out = deduped

	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func (d *Detector) collect(text string, page int, cat catalog.Category, rule catalog.PatternRule, lang string) []Candidate {
	var out []Candidate
	for _, loc := range rule.Matches(text) {
		lit := text[loc[0]:loc[1]]
		if d.suppressed(cat, lit) {
			continue
		}
		out = append(out, Candidate{
			Category: cat,
			Rule:     rule.Name,
			Page:     page,
			Text:     lit,
			Start:    loc[0],
			End:      loc[1],
			Language: lang,
		})
	}
	return out
}

// suppressed applies the year/page-number screen for count-sensitive
// categories and the card/phone cross-exclusion.
func (d *Detector) suppressed(cat catalog.Category, lit string) bool {
	if cat.CountSensitive() {
		digits := trailingDigits.FindString(lit)
		if digits == lit && (yearShape.MatchString(lit) || shortShape.MatchString(lit)) {
			return true
		}
	}
	if !d.crossExclusion {
		return false
	}
	switch cat {
	case catalog.CategoryCreditCard:
		return phoneShape.MatchString(lit)
	case catalog.CategoryPhone:
		return cardShape.MatchString(lit)
	}
	return false
}
