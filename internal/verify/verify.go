// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package verify re-scans mutated output and reports any sensitive
// residue. An empty finding list is the only success signal.
package verify

import (
	"docredact/internal/catalog"
	"docredact/internal/detect"
	"docredact/internal/heading"
)

// Finding is sensitive residue discovered after mutation.
type Finding struct {
	Page     int              `json:"page"`
	Category catalog.Category `json:"category"`
	Text     string           `json:"text"`
	Context  string           `json:"context"`
	Source   string           `json:"source"`
}

// contextRadius is how many bytes of surrounding text a finding carries.
const contextRadius = 30

// Scanner re-runs detection in strict mode. High-risk categories never
// take the heading-preserve path here: a card number that survived
// because it sat in heading-shaped text is still residue.
type Scanner struct {
	detector   *detect.Detector
	classifier *heading.Classifier
}

// New returns a verification Scanner sharing the run's detector so the
// same rules and suppressions apply.
func New(detector *detect.Detector, classifier *heading.Classifier) *Scanner {
	return &Scanner{detector: detector, classifier: classifier}
}

// ScanPage checks one page of post-mutation text. preserve mirrors the
// run's heading preservation so intentionally kept headings are not
// reported, except for high-risk categories.
func (s *Scanner) ScanPage(text string, page int, categories []catalog.Category, preserve bool) []Finding {
	var out []Finding
	for _, cand := range s.detector.Detect(text, page, categories) {
		if !cand.Category.HighRisk() && preserve {
			if verdict, _ := s.classifier.Classify(cand.Text, cand.Language, true); verdict == heading.Preserve {
				continue
			}
		}
		out = append(out, Finding{
			Page:     cand.Page,
			Category: cand.Category,
			Text:     cand.Text,
			Context:  snippet(text, cand.Start, cand.End),
			Source:   "text",
		})
	}
	return out
}

// ScanImageText checks OCR output from an embedded image. Image text has
// no layout, so heading preservation never applies.
func (s *Scanner) ScanImageText(text string, page int, categories []catalog.Category) []Finding {
	var out []Finding
	for _, cand := range s.detector.Detect(text, page, categories) {
		out = append(out, Finding{
			Page:     cand.Page,
			Category: cand.Category,
			Text:     cand.Text,
			Context:  snippet(text, cand.Start, cand.End),
			Source:   "image",
		})
	}
	return out
}

func snippet(text string, start, end int) string {
	lo := start - contextRadius
	if lo < 0 {
		lo = 0
	}
	hi := end + contextRadius
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:hi]
}
