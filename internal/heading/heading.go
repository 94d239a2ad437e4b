// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package heading decides whether a detected candidate is part of a
// document heading that should be preserved rather than redacted.
package heading

import (
	"regexp"
	"strings"

	"docredact/internal/detect"
)

// Verdict is the classifier's conclusion for one candidate.
type Verdict int

const (
	Redact Verdict = iota
	Preserve
)

func (v Verdict) String() string {
	if v == Preserve {
		return "preserve"
	}
	return "redact"
}

// Decision pairs a candidate with its verdict and the reason it was
// reached, for logging and reports.
type Decision struct {
	Candidate detect.Candidate
	Verdict   Verdict
	Reason    string
}

// maxHeadingLen is the longest candidate text that can still be treated
// as a heading. Anything longer is body text.
const maxHeadingLen = 50

// Classifier holds the compiled heading vocabulary, structural heading
// patterns, and sensitive-override patterns. It is immutable after
// construction and safe for concurrent use.
type Classifier struct {
	overrides     []*regexp.Regexp
	langOverrides map[string][]*regexp.Regexp
	structural    []*regexp.Regexp
	langHeadings  map[string][]*regexp.Regexp
	vocab         map[string]map[string]bool
	labelValue    *regexp.Regexp
	valueShapes   []*regexp.Regexp
}

func compileAll(exprs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile("(?i)"+e))
	}
	return out
}

func compileAllCase(exprs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// NewClassifier builds the default classifier.
func NewClassifier() *Classifier {
	return &Classifier{
		// Sensitive overrides: text that always redacts even when it is
		// shaped like a heading. Checked before any heading pattern.
		overrides: compileAll([]string{
			`(?:cvv2?|cvc2?|cv2|csc|cid|cvn|cvd)\s*[:#.]?\s*\d{3,4}`,
			`security\s+code\s*[:#.]?\s*\d{3,4}`,
			`\d{3,4}\s*\((?:cvv2?|cvc2?|csc|cid)\)`,
			`(?:\d{4}[\- ]?){3}\d{4}`,
			`\b\d{13,16}\b`,
			`iban\s*[:#.]?\s*[A-Z]{2}\d{2}`,
			`(?:bic|swift)\s*(?:code)?\s*[:#.]?\s*[A-Z0-9]{8,11}`,
			`(?:account|routing)\s*(?:number|no|#)?\s*[:#.]?\s*\d+`,
			`sort\s*code\s*[:#.]?\s*\d{2}-?\d{2}-?\d{2}`,
			`(?:expiry|expiration|exp\.?|valid\s+thru)\s*(?:date)?\s*[:#.]?\s*\d{1,2}[-/]\d{2,4}`,
			`\b(?:0[1-9]|1[0-2])[-/](?:\d{2}|2\d{3})\b`,
			`(?:ssn|social\s+security)\s*[:#.]?\s*\d{3}-?\d{2}-?\d{4}`,
			`\b\d{3}-\d{2}-\d{4}\b`,
			`(?:tax\s+id|ein)\s*[:#.]?\s*\d{2}-?\d{7}`,
			`passport\s*(?:number|no|#)?\s*[:#.]?\s*[A-Z0-9]{6,9}\b`,
			`(?:phone|mobile|cell|tel)\s*[:#.]?\s*\+?[\d\s().\-]{7,}`,
			`(?:\+?\d{1,3}[-.\s])?\(?\d{3}\)?[-.\s]\d{3}[-.\s]\d{4}`,
			`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`,
			`[A-Za-z0-9._%+\-]+\s*\[at\]\s*[A-Za-z0-9.\-]+`,
			`\b[A-Z]{5}\d{4}[A-Z]\b`,
			`\b\d{4}\s\d{4}\s\d{4}\b`,
		}),
		langOverrides: map[string][]*regexp.Regexp{
			"fr": compileAll([]string{
				`cryptogramme\s*[:.]?\s*\d{3,4}`,
				`num[ée]ro\s+de\s+(?:carte|compte)\s*[:.]?\s*[\d\s]+`,
			}),
			"de": compileAll([]string{
				`(?:pr[üu]fziffer|sicherheitscode)\s*[:.]?\s*\d{3,4}`,
				`kontonummer\s*[:.]?\s*[\d\s]+`,
			}),
			"es": compileAll([]string{
				`c[óo]digo\s+de\s+seguridad\s*[:.]?\s*\d{3,4}`,
				`n[úu]mero\s+de\s+(?:tarjeta|cuenta)\s*[:.]?\s*[\d\s]+`,
			}),
		},
		// Structural heading shapes. Compiled case-sensitively since
		// capitalization is most of the evidence.
		structural: compileAllCase([]string{
			`^[IVXLC]{1,6}\.?\s+\S`,
			`^\d+(?:\.\d+)*\.?\s+[A-Za-z]`,
			`^(?i:section|chapter|part|appendix|annex|title)\s+[\dIVXLC]+`,
			`^[A-Z][A-Z\s]{2,}$`,
			`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,3}$`,
			`^[A-Za-z][\w\s]{0,30}[:\-–]$`,
		}),
		langHeadings: map[string][]*regexp.Regexp{
			"de": compileAll([]string{`^(?:abschnitt|kapitel|anhang|teil)\s+[\dIVXLC]+`}),
			"fr": compileAll([]string{`^(?:section|chapitre|annexe|partie)\s+[\dIVXLC]+`}),
			"es": compileAll([]string{`^(?:secci[óo]n|cap[íi]tulo|anexo|parte)\s+[\dIVXLC]+`}),
		},
		vocab: map[string]map[string]bool{
			"en": wordSet("summary", "introduction", "overview", "conclusion", "appendix",
				"chapter", "section", "contents", "abstract", "references", "background",
				"scope", "definitions", "glossary", "index"),
			"fr": wordSet("sommaire", "introduction", "résumé", "conclusion", "annexe",
				"chapitre", "section", "glossaire", "références"),
			"de": wordSet("zusammenfassung", "einleitung", "überblick", "inhalt",
				"kapitel", "anhang", "abschnitt", "fazit", "glossar"),
			"es": wordSet("resumen", "introducción", "índice", "capítulo", "anexo",
				"sección", "conclusión", "glosario", "referencias"),
		},
		labelValue: regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?\s*:)\s*(.+)$`),
		valueShapes: compileAll([]string{
			`(?:\d{4}[\- ]?){3}\d{4}`,
			`\b\d{13,17}\b`,
			`\b\d{3}-\d{2}-\d{4}\b`,
			`\+?\d{1,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`,
			`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+`,
			`\b\d{1,2}/\d{2,4}\b`,
			`\b\d{8,17}\b`,
		}),
	}
}

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// Classify renders a verdict for candidate text. The checks run in
// strict order; the first that fires wins. With preservation disabled
// everything redacts.
func (c *Classifier) Classify(text, lang string, preserve bool) (Verdict, string) {
	if !preserve {
		return Redact, "heading preservation disabled"
	}
	trimmed := strings.TrimSpace(text)
	if len(trimmed) > maxHeadingLen {
		return Redact, "too long for a heading"
	}
	for _, re := range c.overrides {
		if re.MatchString(trimmed) {
			return Redact, "sensitive content override"
		}
	}
	for _, re := range c.langOverrides[lang] {
		if re.MatchString(trimmed) {
			return Redact, "sensitive content override"
		}
	}
	if m := c.labelValue.FindStringSubmatch(trimmed); m != nil {
		value := strings.TrimSpace(m[2])
		for _, shape := range c.valueShapes {
			if shape.MatchString(value) {
				return Redact, "labeled sensitive value"
			}
		}
	}
	if c.looksLikeHeading(trimmed, lang) {
		return Preserve, "document heading"
	}
	return Redact, "no heading evidence"
}

// Decide wraps Classify for a detected candidate.
func (c *Classifier) Decide(cand detect.Candidate, preserve bool) Decision {
	verdict, reason := c.Classify(cand.Text, cand.Language, preserve)
	return Decision{Candidate: cand, Verdict: verdict, Reason: reason}
}

func (c *Classifier) looksLikeHeading(text, lang string) bool {
	// The vocabulary matches on the first word, so "Summary of
	// accounts" preserves like "Summary" does.
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) > 0 {
		first := strings.TrimRight(fields[0], ":-–—")
		if c.vocab[lang][first] || c.vocab["en"][first] {
			return true
		}
	}
	for _, re := range c.structural {
		if re.MatchString(text) {
			return true
		}
	}
	for _, re := range c.langHeadings[lang] {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
