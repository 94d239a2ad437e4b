// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package document abstracts the file formats the engine can read and
// mutate. Detection and planning only ever see extracted text and
// bounding boxes; everything format-specific lives behind Document.
package document

import (
	"fmt"
	"path/filepath"
	"strings"
)

// BoundingBox is a rectangle on a page, in PDF points with the origin
// at the bottom-left corner. Plaintext adapters use synthetic
// character-offset coordinates instead.
type BoundingBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// TreatmentKind selects how a redacted region is rendered.
type TreatmentKind int

const (
	// Opaque covers the region with a solid box.
	Opaque TreatmentKind = iota
	// Blur overlays mask characters with partial opacity so the region
	// reads as obscured rather than removed.
	Blur
)

// Treatment describes the visual rendering of a redaction.
type Treatment struct {
	Kind     TreatmentKind
	Color    string // hex like "#000000"
	MaskChar rune   // used by Blur and by text output
}

// DefaultTreatment is a solid black box.
func DefaultTreatment() Treatment {
	return Treatment{Kind: Opaque, Color: "#000000", MaskChar: '*'}
}

// Document is one open input file. Implementations are not safe for
// concurrent mutation; the engine serializes ApplyRedaction and Save.
type Document interface {
	// PageCount returns the number of pages. Plaintext documents have
	// one page.
	PageCount() int

	// ExtractPageText returns the text of the 1-based page.
	ExtractPageText(page int) (string, error)

	// SearchLiteral locates every occurrence of literal on the page.
	// An empty result is not an error.
	SearchLiteral(page int, literal string) ([]BoundingBox, error)

	// ApplyRedaction records a redaction of the literal text over the
	// box. Mutations become visible when Save runs; Save must leave the
	// output's extractable text without the literal, not merely cover
	// the box visually.
	ApplyRedaction(page int, text string, box BoundingBox, t Treatment) error

	// EmbeddedImages returns the raw bytes of images on the page, for
	// OCR-based verification. Formats without images return nil.
	EmbeddedImages(page int) ([][]byte, error)

	// Save writes the mutated document to path.
	Save(path string) error

	// Close releases the underlying file handle.
	Close() error
}

// Open opens path with the adapter matching its extension.
func Open(path string) (Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return OpenPDF(path)
	case ".txt", ".text", ".md", ".log":
		return OpenPlaintext(path)
	}
	return nil, fmt.Errorf("unsupported input format: %s", filepath.Ext(path))
}
