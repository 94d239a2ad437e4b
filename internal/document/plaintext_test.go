// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPlaintextSearchAndRedact(t *testing.T) {
	doc := NewPlaintext("Phone: 555-123-4567 and again 555-123-4567 end")

	boxes, err := doc.SearchLiteral(1, "555-123-4567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boxes) != 2 {
		t.Fatalf("expected two occurrences, got %d", len(boxes))
	}

	for _, box := range boxes {
		if err := doc.ApplyRedaction(1, "555-123-4567", box, DefaultTreatment()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got := doc.Text()
	if strings.Contains(got, "555-123-4567") {
		t.Errorf("literal survived redaction: %q", got)
	}
	if !strings.Contains(got, "************") {
		t.Errorf("expected mask run in %q", got)
	}
	if len(got) != len("Phone: 555-123-4567 and again 555-123-4567 end") {
		t.Errorf("redaction changed text length: %q", got)
	}
}

func TestPlaintextSearchMissing(t *testing.T) {
	doc := NewPlaintext("nothing sensitive here")

	boxes, err := doc.SearchLiteral(1, "4111111111111111")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boxes) != 0 {
		t.Errorf("expected no boxes, got %v", boxes)
	}
}

func TestPlaintextPageBounds(t *testing.T) {
	doc := NewPlaintext("one page only")

	if _, err := doc.ExtractPageText(2); err == nil {
		t.Error("expected error for page 2")
	}
	if err := doc.ApplyRedaction(0, "x", BoundingBox{}, DefaultTreatment()); err == nil {
		t.Error("expected error for page 0")
	}
}

func TestPlaintextSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(in, []byte("email jane@example.com here"), 0600); err != nil {
		t.Fatal(err)
	}

	doc, err := OpenPlaintext(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	boxes, _ := doc.SearchLiteral(1, "jane@example.com")
	if len(boxes) != 1 {
		t.Fatalf("expected one box, got %d", len(boxes))
	}
	if err := doc.ApplyRedaction(1, "jane@example.com", boxes[0], Treatment{Kind: Blur, MaskChar: '*'}); err != nil {
		t.Fatal(err)
	}
	if err := doc.Save(out); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "jane@example.com") {
		t.Errorf("literal survived in saved file: %q", data)
	}
}

func TestOpenDispatch(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(txt, []byte("hello"), 0600); err != nil {
		t.Fatal(err)
	}

	doc, err := Open(txt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.PageCount() != 1 {
		t.Errorf("expected one page, got %d", doc.PageCount())
	}

	if _, err := Open(filepath.Join(dir, "doc.docx")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLiteralSpansCollapsedWhitespace(t *testing.T) {
	spans := literalSpans("card 4111 1111 1111 1111 end", "4111  1111  1111  1111")
	if len(spans) != 1 {
		t.Fatalf("expected one collapsed-whitespace span, got %d", len(spans))
	}
}
