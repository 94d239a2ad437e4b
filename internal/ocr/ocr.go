// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ocr recognizes text in images so verification can scan
// content that never appears in the extractable text layer.
package ocr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"docredact/internal/security"
)

// Recognizer turns image bytes into text. Implementations must be safe
// for concurrent use.
type Recognizer interface {
	RecognizeText(ctx context.Context, image []byte) (string, error)
}

// Null is a Recognizer that recognizes nothing. Used when no OCR engine
// is available; image regions then contribute zero candidates.
type Null struct{}

func (Null) RecognizeText(context.Context, []byte) (string, error) { return "", nil }

// Tesseract shells out to the tesseract binary.
type Tesseract struct {
	binary string
}

// NewTesseract locates the tesseract binary on PATH. The error tells the
// caller to fall back to the Null recognizer.
func NewTesseract() (*Tesseract, error) {
	path, err := exec.LookPath("tesseract")
	if err != nil {
		return nil, fmt.Errorf("tesseract not found on PATH: %w", err)
	}
	return &Tesseract{binary: path}, nil
}

// RecognizeText writes the image to a temp file and runs tesseract with
// stdout output.
func (t *Tesseract) RecognizeText(ctx context.Context, image []byte) (string, error) {
	tmp, err := os.CreateTemp("", "ocr-*.img")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image: %w", err)
	}
	// The scratch file holds the sensitive pixels; wipe, not just unlink.
	defer security.WipeFile(tmp.Name())

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	// "stdout" is tesseract's magic output name.
	cmd := exec.CommandContext(ctx, t.binary, filepath.Clean(tmp.Name()), "stdout")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("tesseract failed: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
