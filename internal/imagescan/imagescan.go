// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package imagescan pulls text out of embedded images via OCR and
// records their dimensions from EXIF or pixel metadata.
package imagescan

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rwcarlsen/goexif/exif"

	"docredact/internal/document"
	"docredact/internal/ocr"
)

// Result is the recognized content of one embedded image.
type Result struct {
	Page   int
	Index  int
	Width  int
	Height int
	Text   string
}

// dimensions reads the image size from EXIF pixel dimension tags first
// and falls back to decoding the image header.
func dimensions(data []byte) (int, int) {
	if x, err := exif.Decode(bytes.NewReader(data)); err == nil {
		if wTag, err := x.Get(exif.PixelXDimension); err == nil {
			if hTag, err2 := x.Get(exif.PixelYDimension); err2 == nil {
				w, werr := wTag.Int(0)
				h, herr := hTag.Int(0)
				if werr == nil && herr == nil {
					return w, h
				}
			}
		}
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

// Scan runs the recognizer over every embedded image in the document.
// A failing image is skipped; OCR is best-effort by contract.
func Scan(ctx context.Context, doc document.Document, rec ocr.Recognizer) ([]Result, error) {
	if rec == nil {
		rec = ocr.Null{}
	}
	var out []Result
	for page := 1; page <= doc.PageCount(); page++ {
		images, err := doc.EmbeddedImages(page)
		if err != nil {
			continue
		}
		for i, img := range images {
			text, err := rec.RecognizeText(ctx, img)
			if err != nil {
				continue
			}
			w, h := dimensions(img)
			out = append(out, Result{Page: page, Index: i, Width: w, Height: h, Text: text})
		}
	}
	return out, nil
}
