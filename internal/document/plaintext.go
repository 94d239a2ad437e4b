// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"os"
	"strings"
)

// PlaintextDocument treats a text file as a single page. Boxes use
// character offsets: X is the start offset, Width the literal length.
// Redaction replaces the covered run with mask characters in place.
type PlaintextDocument struct {
	path string
	text string
}

// OpenPlaintext reads the whole file up front.
func OpenPlaintext(path string) (*PlaintextDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &PlaintextDocument{path: path, text: string(data)}, nil
}

// NewPlaintext wraps in-memory text, mostly for tests and pipelines
// that already hold the content.
func NewPlaintext(text string) *PlaintextDocument {
	return &PlaintextDocument{text: text}
}

func (d *PlaintextDocument) PageCount() int { return 1 }

func (d *PlaintextDocument) Close() error { return nil }

func (d *PlaintextDocument) ExtractPageText(page int) (string, error) {
	if page != 1 {
		return "", fmt.Errorf("page %d out of range for plaintext", page)
	}
	return d.text, nil
}

func (d *PlaintextDocument) SearchLiteral(page int, literal string) ([]BoundingBox, error) {
	if page != 1 {
		return nil, fmt.Errorf("page %d out of range for plaintext", page)
	}
	if literal == "" {
		return nil, nil
	}
	var boxes []BoundingBox
	for start := 0; ; {
		idx := strings.Index(d.text[start:], literal)
		if idx < 0 {
			break
		}
		boxes = append(boxes, BoundingBox{
			X:     float64(start + idx),
			Width: float64(len(literal)),
		})
		start += idx + len(literal)
	}
	return boxes, nil
}

func (d *PlaintextDocument) ApplyRedaction(page int, text string, box BoundingBox, t Treatment) error {
	if page != 1 {
		return fmt.Errorf("page %d out of range for plaintext", page)
	}
	start, end := int(box.X), int(box.X+box.Width)
	if start < 0 || end > len(d.text) || start >= end {
		return fmt.Errorf("redaction span [%d, %d) out of range", start, end)
	}
	// The mask keeps the byte length of the span so boxes computed
	// before this mutation stay valid.
	mask := t.MaskChar
	if mask == 0 || mask > 127 {
		mask = '*'
	}
	masked := strings.Repeat(string(mask), end-start)
	d.text = d.text[:start] + masked + d.text[end:]
	return nil
}

func (d *PlaintextDocument) EmbeddedImages(page int) ([][]byte, error) {
	return nil, nil
}

// Text returns the current (possibly mutated) content.
func (d *PlaintextDocument) Text() string { return d.text }

func (d *PlaintextDocument) Save(path string) error {
	if err := os.WriteFile(path, []byte(d.text), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
