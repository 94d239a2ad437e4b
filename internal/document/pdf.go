// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// fragment is one positioned text run on a page, with its offset into
// the page's extracted text.
type fragment struct {
	text     string
	x, y     float64
	width    float64
	fontSize float64
	offset   int
}

// pageContent caches the extraction result for one page.
type pageContent struct {
	text      string
	fragments []fragment
}

// redactionOp is one pending redaction, applied at Save.
type redactionOp struct {
	page      int
	text      string
	box       BoundingBox
	treatment Treatment
}

// PDFDocument reads text and positions with the pdf text library and
// mutates through pdfcpu when the document is saved: the redacted
// literals are scrubbed out of the page content streams and a stamp is
// rendered over each box.
type PDFDocument struct {
	path    string
	file    *os.File
	reader  *pdf.Reader
	conf    *model.Configuration
	pages   map[int]*pageContent
	images  map[int][][]byte
	pending []redactionOp
}

// OpenPDF validates and opens a PDF for redaction.
func OpenPDF(path string) (*PDFDocument, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ValidateFile(path, conf); err != nil {
		return nil, fmt.Errorf("invalid PDF %s: %w", path, err)
	}
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	return &PDFDocument{
		path:   path,
		file:   f,
		reader: reader,
		conf:   conf,
		pages:  map[int]*pageContent{},
		images: map[int][][]byte{},
	}, nil
}

func (d *PDFDocument) PageCount() int {
	return d.reader.NumPage()
}

func (d *PDFDocument) Close() error {
	return d.file.Close()
}

// extract builds the page's text and fragment index, caching the result.
// Fragments are ordered top-to-bottom, left-to-right; runs on the same
// line are joined without separators, lines with newlines.
func (d *PDFDocument) extract(page int) (*pageContent, error) {
	if pc, ok := d.pages[page]; ok {
		return pc, nil
	}
	if page < 1 || page > d.reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range 1..%d", page, d.reader.NumPage())
	}
	p := d.reader.Page(page)
	if p.V.IsNull() {
		pc := &pageContent{}
		d.pages[page] = pc
		return pc, nil
	}

	texts := p.Content().Text
	sort.SliceStable(texts, func(i, j int) bool {
		if texts[i].Y != texts[j].Y {
			return texts[i].Y > texts[j].Y
		}
		return texts[i].X < texts[j].X
	})

	pc := &pageContent{}
	var b strings.Builder
	lastY := -1.0
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if lastY >= 0 && t.Y != lastY {
			b.WriteByte('\n')
		}
		pc.fragments = append(pc.fragments, fragment{
			text:     t.S,
			x:        t.X,
			y:        t.Y,
			width:    t.W,
			fontSize: t.FontSize,
			offset:   b.Len(),
		})
		b.WriteString(t.S)
		lastY = t.Y
	}
	pc.text = b.String()
	d.pages[page] = pc
	return pc, nil
}

func (d *PDFDocument) ExtractPageText(page int) (string, error) {
	pc, err := d.extract(page)
	if err != nil {
		return "", err
	}
	return pc.text, nil
}

// SearchLiteral finds literal occurrences in the page text and maps each
// back to a box spanning the fragments it overlaps. Whitespace in the
// literal is matched loosely since extraction may join runs differently
// than the source laid them out.
func (d *PDFDocument) SearchLiteral(page int, literal string) ([]BoundingBox, error) {
	pc, err := d.extract(page)
	if err != nil {
		return nil, err
	}
	if literal == "" || pc.text == "" {
		return nil, nil
	}

	var boxes []BoundingBox
	for _, span := range literalSpans(pc.text, literal) {
		if box, ok := d.boxForSpan(pc, span[0], span[1]); ok {
			boxes = append(boxes, box)
		}
	}
	return boxes, nil
}

// literalSpans returns the [start, end) offsets of literal in text,
// trying an exact match first and a whitespace-collapsed match second.
func literalSpans(text, literal string) [][2]int {
	var spans [][2]int
	for start := 0; ; {
		idx := strings.Index(text[start:], literal)
		if idx < 0 {
			break
		}
		spans = append(spans, [2]int{start + idx, start + idx + len(literal)})
		start += idx + len(literal)
	}
	if spans != nil {
		return spans
	}

	collapsed := strings.Join(strings.Fields(literal), " ")
	if collapsed == literal {
		return nil
	}
	for start := 0; ; {
		idx := strings.Index(text[start:], collapsed)
		if idx < 0 {
			break
		}
		spans = append(spans, [2]int{start + idx, start + idx + len(collapsed)})
		start += idx + len(collapsed)
	}
	return spans
}

// boxForSpan unions the boxes of every fragment overlapping the span.
func (d *PDFDocument) boxForSpan(pc *pageContent, start, end int) (BoundingBox, bool) {
	var (
		found                  bool
		minX, minY, maxX, maxY float64
	)
	for _, f := range pc.fragments {
		fStart, fEnd := f.offset, f.offset+len(f.text)
		if fEnd <= start || fStart >= end {
			continue
		}
		// Interpolate X within a fragment assuming uniform glyph width.
		fx, fw := f.x, f.width
		if fw <= 0 {
			fw = f.fontSize * 0.5 * float64(len(f.text))
		}
		perByte := fw / float64(len(f.text))
		lo := f.x
		if start > fStart {
			lo += perByte * float64(start-fStart)
		}
		hi := f.x + fw
		if end < fEnd {
			hi = fx + perByte*float64(end-fStart)
		}
		height := f.fontSize * 1.2
		if height <= 0 {
			height = 12
		}
		if !found {
			minX, maxX = lo, hi
			minY, maxY = f.y, f.y+height
			found = true
			continue
		}
		if lo < minX {
			minX = lo
		}
		if hi > maxX {
			maxX = hi
		}
		if f.y < minY {
			minY = f.y
		}
		if f.y+height > maxY {
			maxY = f.y + height
		}
	}
	if !found {
		return BoundingBox{}, false
	}
	return BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

func (d *PDFDocument) ApplyRedaction(page int, text string, box BoundingBox, t Treatment) error {
	if page < 1 || page > d.reader.NumPage() {
		return fmt.Errorf("page %d out of range 1..%d", page, d.reader.NumPage())
	}
	d.pending = append(d.pending, redactionOp{page: page, text: text, box: box, treatment: t})
	return nil
}

// EmbeddedImages extracts the page's image XObjects through pdfcpu so
// verification can OCR them. Results are cached per page.
func (d *PDFDocument) EmbeddedImages(page int) ([][]byte, error) {
	if imgs, ok := d.images[page]; ok {
		return imgs, nil
	}
	f, err := os.Open(d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen PDF for image extraction: %w", err)
	}
	defer f.Close()

	pageImages, err := api.ExtractImagesRaw(f, []string{strconv.Itoa(page)}, d.conf)
	if err != nil {
		return nil, fmt.Errorf("failed to extract images from page %d: %w", page, err)
	}

	var out [][]byte
	for _, byObjNr := range pageImages {
		objNrs := make([]int, 0, len(byObjNr))
		for nr := range byObjNr {
			objNrs = append(objNrs, nr)
		}
		sort.Ints(objNrs)
		for _, nr := range objNrs {
			data, err := io.ReadAll(byObjNr[nr])
			if err != nil {
				continue
			}
			out = append(out, data)
		}
	}
	d.images[page] = out
	return out, nil
}

// Save copies the source to path, scrubs every pending literal out of
// the page content streams so the text is no longer extractable, then
// stamps each redaction as a positioned text watermark. Opaque
// treatments render a solid box by stamping block glyphs in the box
// color over an identical background; blur treatments render mask
// characters at partial opacity.
func (d *PDFDocument) Save(path string) error {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("failed to read source PDF: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write output PDF: %w", err)
	}

	if err := d.scrubLiterals(path); err != nil {
		return err
	}

	for _, op := range d.pending {
		text, desc := watermarkFor(op)
		wm, err := api.TextWatermark(text, desc, true, false, types.POINTS)
		if err != nil {
			return fmt.Errorf("failed to build redaction stamp for page %d: %w", op.page, err)
		}
		pages := []string{fmt.Sprintf("%d", op.page)}
		if err := api.AddWatermarksFile(path, path, pages, wm, d.conf); err != nil {
			return fmt.Errorf("failed to stamp page %d: %w", op.page, err)
		}
	}
	return nil
}

// scrubLiterals removes every pending literal from the output's page
// content streams. Covering a box visually is not enough: the text
// underneath would still be selectable and extractable.
func (d *PDFDocument) scrubLiterals(path string) error {
	byPage := map[int][]string{}
	for _, op := range d.pending {
		if op.text != "" {
			byPage[op.page] = append(byPage[op.page], op.text)
		}
	}
	if len(byPage) == 0 {
		return nil
	}

	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return fmt.Errorf("failed to read output PDF for scrubbing: %w", err)
	}
	for page, literals := range byPage {
		if err := scrubPageContent(ctx, page, literals); err != nil {
			return fmt.Errorf("failed to scrub page %d: %w", page, err)
		}
	}
	if err := api.WriteContextFile(ctx, path); err != nil {
		return fmt.Errorf("failed to write scrubbed PDF: %w", err)
	}
	return nil
}

// scrubPageContent blanks the literals in every content stream of the
// page, whether Contents is a single stream or an array.
func scrubPageContent(ctx *model.Context, page int, literals []string) error {
	ir, err := ctx.PageDictIndRef(page)
	if err != nil {
		return err
	}
	pageDict, err := ctx.DereferenceDict(*ir)
	if err != nil {
		return err
	}
	obj, found := pageDict.Find("Contents")
	if !found {
		return nil
	}
	switch o := obj.(type) {
	case types.IndirectRef:
		return scrubStream(ctx, o, literals)
	case types.Array:
		for _, el := range o {
			streamRef, ok := el.(types.IndirectRef)
			if !ok {
				continue
			}
			if err := scrubStream(ctx, streamRef, literals); err != nil {
				return err
			}
		}
	}
	return nil
}

func scrubStream(ctx *model.Context, ir types.IndirectRef, literals []string) error {
	entry, ok := ctx.FindTableEntryForIndRef(&ir)
	if !ok || entry.Object == nil {
		return nil
	}
	sd, ok := entry.Object.(types.StreamDict)
	if !ok {
		return nil
	}
	if err := sd.Decode(); err != nil {
		return err
	}
	scrubbed, changed := scrubContent(sd.Content, literals)
	if !changed {
		return nil
	}
	sd.Content = scrubbed
	if err := sd.Encode(); err != nil {
		return err
	}
	entry.Object = sd
	return nil
}

// watermarkFor renders one redaction op as pdfcpu watermark text plus
// its description string.
func watermarkFor(op redactionOp) (string, string) {
	fontSize := int(op.box.Height / 1.2)
	if fontSize < 6 {
		fontSize = 6
	}
	glyphWidth := float64(fontSize) * 0.6
	n := int(op.box.Width/glyphWidth) + 1
	if n < 1 {
		n = 1
	}

	color := op.treatment.Color
	if color == "" {
		color = "#000000"
	}

	var text, desc string
	switch op.treatment.Kind {
	case Blur:
		mask := op.treatment.MaskChar
		if mask == 0 {
			mask = '*'
		}
		text = strings.Repeat(string(mask), n)
		desc = fmt.Sprintf(
			"font:Helvetica, points:%d, pos:bl, off:%.1f %.1f, scale:1 abs, rot:0, col:%s, op:0.5",
			fontSize, op.box.X, op.box.Y, color,
		)
	default:
		// Solid box: glyphs and background share the box color.
		text = strings.Repeat("X", n)
		desc = fmt.Sprintf(
			"font:Helvetica, points:%d, pos:bl, off:%.1f %.1f, scale:1 abs, rot:0, col:%s, bgcol:%s, op:1",
			fontSize, op.box.X, op.box.Y, color, color,
		)
	}
	return text, desc
}
