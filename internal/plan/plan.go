// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package plan turns classifier decisions into the deduplicated list of
// redaction instructions the mutator executes.
package plan

import (
	"regexp"
	"sort"
	"strings"

	"docredact/internal/document"
	"docredact/internal/heading"
)

// Instruction is one literal to redact on one page. When Fallback is
// set and Text cannot be located, the mutator redacts Fallback instead.
type Instruction struct {
	Page      int
	Text      string
	Fallback  string
	Category  string
	Treatment document.Treatment
}

// labelValue splits "Label: value" candidates so that heading-preserving
// runs can redact only the value.
var labelValue = regexp.MustCompile(`^([A-Z][a-z]+\s*:)\s*(.+)$`)

// Planner builds instruction lists. Zero value is not usable; call New.
type Planner struct {
	preserveLabels bool
}

// New returns a Planner. With preserveLabels set, label-value candidates
// narrow to their value so the label text survives.
func New(preserveLabels bool) *Planner {
	return &Planner{preserveLabels: preserveLabels}
}

// Plan converts redact-verdict decisions into instructions, one per
// distinct (page, category, literal, treatment kind). Duplicate
// literals collapse within a category only; a second category hitting
// the same literal keeps its own instruction so the report attributes
// both. Preserve verdicts produce nothing. Planning the same decisions
// twice yields the same plan.
func (p *Planner) Plan(decisions []heading.Decision, t document.Treatment) []Instruction {
	type key struct {
		page     int
		category string
		text     string
		kind     document.TreatmentKind
	}
	seen := map[key]bool{}
	var out []Instruction

	for _, d := range decisions {
		if d.Verdict != heading.Redact {
			continue
		}
		text := strings.TrimSpace(d.Candidate.Text)
		if text == "" {
			continue
		}

		fallback := ""
		if p.preserveLabels {
			if m := labelValue.FindStringSubmatch(text); m != nil {
				value := strings.TrimSpace(m[2])
				if value != "" {
					fallback = text
					text = value
				}
			}
		}

		k := key{page: d.Candidate.Page, category: string(d.Candidate.Category), text: text, kind: t.Kind}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, Instruction{
			Page:      d.Candidate.Page,
			Text:      text,
			Fallback:  fallback,
			Category:  string(d.Candidate.Category),
			Treatment: t,
		})
	}

	// Longer literals apply first. A shorter literal that also occurs
	// inside a longer one then still locates its standalone occurrences
	// after the longer mutation; it is never dropped up front, since
	// dropping it would leave those standalone occurrences untouched.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Page != out[j].Page {
			return out[i].Page < out[j].Page
		}
		if len(out[i].Text) != len(out[j].Text) {
			return len(out[i].Text) > len(out[j].Text)
		}
		if out[i].Text != out[j].Text {
			return out[i].Text < out[j].Text
		}
		return out[i].Category < out[j].Category
	})
	return out
}
