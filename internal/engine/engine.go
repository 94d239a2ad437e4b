// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package engine wires detection, classification, planning, mutation,
// and verification into one run.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"docredact/internal/catalog"
	"docredact/internal/config"
	"docredact/internal/detect"
	"docredact/internal/document"
	"docredact/internal/heading"
	"docredact/internal/imagescan"
	"docredact/internal/language"
	"docredact/internal/logger"
	"docredact/internal/observability"
	"docredact/internal/ocr"
	"docredact/internal/plan"
	"docredact/internal/report"
	"docredact/internal/verify"
)

// Engine runs redactions according to one resolved configuration.
type Engine struct {
	cfg        *config.Run
	log        *logger.Logger
	detector   *detect.Detector
	classifier *heading.Classifier
	planner    *plan.Planner
	verifier   *verify.Scanner
	recognizer ocr.Recognizer
	observer   *observability.Observer

	// open reopens saved output for verification. Overridable in tests.
	open func(path string) (document.Document, error)
}

// New builds an Engine. A custom mask that fails to compile is logged
// as a warning and skipped; everything else proceeds.
func New(cfg *config.Run, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNop()
	}

	resolver := language.NewResolver(language.WithForcedLanguage(cfg.ForcedLanguage()))
	opts := []detect.Option{detect.WithCrossExclusion(cfg.CrossExclusion)}
	if cfg.CustomMask != "" {
		rule, err := catalog.CustomRule(cfg.CustomMask)
		if err != nil {
			log.Warn("skipping custom mask", zap.String("mask", cfg.CustomMask), zap.Error(err))
		} else {
			opts = append(opts, detect.WithCustomRule(rule))
		}
	}
	detector := detect.New(catalog.NewDefaultCatalog(), resolver, opts...)
	classifier := heading.NewClassifier()

	var recognizer ocr.Recognizer = ocr.Null{}
	if tess, err := ocr.NewTesseract(); err == nil {
		recognizer = tess
	} else {
		log.Debug("image text recognition unavailable", zap.Error(err))
	}

	return &Engine{
		cfg:        cfg,
		log:        log,
		detector:   detector,
		classifier: classifier,
		planner:    plan.New(cfg.PreserveHeadings),
		verifier:   verify.New(detector, classifier),
		recognizer: recognizer,
		observer:   observability.NewObserver(log),
		open:       document.Open,
	}
}

// pageJob and pageResult carry detection work through the pool.
type pageJob struct {
	page int
	text string
}

type pageResult struct {
	page       int
	candidates []detect.Candidate
}

// Run executes the full pipeline against an open document. The returned
// report is non-nil whenever processing got far enough to produce one;
// ErrVerificationFailed accompanies a report whose findings are
// non-empty.
func (e *Engine) Run(ctx context.Context, doc document.Document) (*report.Report, error) {
	categories := e.cfg.EnabledCategories()
	outPath := e.cfg.ResolvedOutputPath()
	builder := report.NewBuilder(e.cfg.InputPath, outPath)

	doneExtract := e.observer.StartTiming("document", "extract")
	pages, err := e.extractPages(doc)
	doneExtract(err == nil, zap.Int("pages", len(pages)))
	if err != nil {
		return nil, &InputError{Path: e.cfg.InputPath, Err: err}
	}

	doneDetect := e.observer.StartTiming("detector", "scan")
	candidates := e.detectAll(ctx, pages, categories)
	doneDetect(true, zap.Int("candidates", len(candidates)))
	e.log.Info("detection complete",
		zap.Int("pages", len(pages)),
		zap.Int("candidates", len(candidates)))

	decisions := make([]heading.Decision, 0, len(candidates))
	for _, cand := range candidates {
		d := e.classifier.Decide(cand, e.cfg.PreserveHeadings)
		if d.Verdict == heading.Preserve {
			e.log.Debug("preserving heading",
				zap.String("text", cand.Text),
				zap.Int("page", cand.Page),
				zap.String("reason", d.Reason))
		}
		decisions = append(decisions, d)
	}

	if e.cfg.ReportOnly {
		for _, d := range decisions {
			if d.Verdict == heading.Redact {
				builder.AddRedaction(d.Candidate.Category, d.Candidate.Text, d.Candidate.Page)
			}
		}
		builder.SetReportOnly()
		return e.finish(builder.Build())
	}

	instructions := e.planner.Plan(decisions, e.cfg.Treatment())
	e.log.Info("plan ready", zap.Int("instructions", len(instructions)))

	doneApply := e.observer.StartTiming("mutator", "apply")
	e.apply(doc, instructions, builder)
	doneApply(true, zap.Int("instructions", len(instructions)))

	if err := doc.Save(outPath); err != nil {
		return nil, fmt.Errorf("failed to save redacted output: %w", err)
	}

	if e.cfg.Verify {
		doneVerify := e.observer.StartTiming("verifier", "rescan")
		findings, err := e.verifyOutput(ctx, outPath, categories)
		doneVerify(err == nil, zap.Int("findings", len(findings)))
		if err != nil {
			return nil, err
		}
		builder.SetFindings(findings)
		if len(findings) > 0 {
			rep, ferr := e.finish(builder.Build())
			if ferr != nil {
				return rep, ferr
			}
			return rep, ErrVerificationFailed
		}
	}

	return e.finish(builder.Build())
}

func (e *Engine) finish(rep *report.Report) (*report.Report, error) {
	if e.cfg.ReportPath != "" {
		if err := rep.WriteFile(e.cfg.ReportPath); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

// extractPages pulls every page's text up front so detection can run on
// plain strings without touching the document concurrently.
func (e *Engine) extractPages(doc document.Document) ([]string, error) {
	n := doc.PageCount()
	if n == 0 {
		return nil, fmt.Errorf("document has no pages")
	}
	pages := make([]string, n)
	failures := 0
	for i := 1; i <= n; i++ {
		text, err := doc.ExtractPageText(i)
		if err != nil {
			e.log.Warn("page extraction failed", zap.Int("page", i), zap.Error(err))
			failures++
			continue
		}
		pages[i-1] = text
	}
	if failures == n {
		return nil, fmt.Errorf("no page text could be extracted")
	}
	return pages, nil
}

// detectAll fans page detection out over a bounded worker pool and
// merges results back in page order.
func (e *Engine) detectAll(ctx context.Context, pages []string, categories []catalog.Category) []detect.Candidate {
	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(pages) {
		workers = len(pages)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan pageJob)
	results := make(chan pageResult, len(pages))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				results <- pageResult{
					page:       job.page,
					candidates: e.detector.Detect(job.text, job.page, categories),
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, text := range pages {
			select {
			case <-ctx.Done():
				return
			case jobs <- pageJob{page: i + 1, text: text}:
			}
		}
	}()

	wg.Wait()
	close(results)

	var out []detect.Candidate
	for res := range results {
		out = append(out, res.candidates...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Page != out[j].Page {
			return out[i].Page < out[j].Page
		}
		return out[i].Start < out[j].Start
	})
	return out
}

// apply executes the plan. A failed instruction is logged and flagged;
// the rest of the plan still runs and verification is never skipped.
// The plan orders longer literals first, so a literal whose every
// occurrence sat inside an already-applied longer one simply finds no
// boxes left; that is coverage, not failure.
func (e *Engine) apply(doc document.Document, instructions []plan.Instruction, builder *report.Builder) {
	applied := map[int]map[string]int{}
	for _, instr := range instructions {
		boxes, err := doc.SearchLiteral(instr.Page, instr.Text)
		text := instr.Text
		if err == nil && len(boxes) == 0 && instr.Fallback != "" {
			boxes, err = doc.SearchLiteral(instr.Page, instr.Fallback)
			text = instr.Fallback
		}
		if err != nil {
			e.mutationFailed(builder, &MutationError{Page: instr.Page, Text: instr.Text, Err: err})
			continue
		}
		if len(boxes) == 0 {
			if n, covered := coveredBy(applied[instr.Page], instr.Text); covered {
				e.log.Debug("literal already covered on page",
					zap.Int("page", instr.Page))
				// An identical literal applied under another category
				// still gets this category's attribution.
				for i := 0; i < n; i++ {
					builder.AddRedaction(catalog.Category(instr.Category), instr.Text, instr.Page)
				}
				continue
			}
			e.mutationFailed(builder, &MutationError{
				Page: instr.Page,
				Text: instr.Text,
				Err:  fmt.Errorf("literal not found on page"),
			})
			continue
		}
		for _, box := range boxes {
			if err := doc.ApplyRedaction(instr.Page, text, box, instr.Treatment); err != nil {
				e.mutationFailed(builder, &MutationError{Page: instr.Page, Text: text, Err: err})
				continue
			}
			builder.AddRedaction(catalog.Category(instr.Category), text, instr.Page)
			if applied[instr.Page] == nil {
				applied[instr.Page] = map[string]int{}
			}
			applied[instr.Page][text]++
		}
	}
}

// coveredBy reports whether a literal that no longer locates was
// already redacted on the page, either verbatim under another category
// (returning how many times) or as part of a longer applied literal.
func coveredBy(appliedTexts map[string]int, literal string) (int, bool) {
	if n := appliedTexts[literal]; n > 0 {
		return n, true
	}
	for text := range appliedTexts {
		if len(text) > len(literal) && strings.Contains(text, literal) {
			return 0, true
		}
	}
	return 0, false
}

func (e *Engine) mutationFailed(builder *report.Builder, merr *MutationError) {
	e.log.Warn("mutation failed",
		zap.Int("page", merr.Page),
		zap.Error(merr.Err))
	builder.SetPartialFailure()
}

// verifyOutput reopens the saved document and scans its text layer and
// embedded images for residue.
func (e *Engine) verifyOutput(ctx context.Context, path string, categories []catalog.Category) ([]verify.Finding, error) {
	out, err := e.open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen output for verification: %w", err)
	}
	defer out.Close()

	var findings []verify.Finding
	for page := 1; page <= out.PageCount(); page++ {
		text, err := out.ExtractPageText(page)
		if err != nil {
			e.log.Warn("verification extraction failed", zap.Int("page", page), zap.Error(err))
			continue
		}
		findings = append(findings, e.verifier.ScanPage(text, page, categories, e.cfg.PreserveHeadings)...)
	}

	images, err := imagescan.Scan(ctx, out, e.recognizer)
	if err == nil {
		for _, img := range images {
			if img.Text == "" {
				continue
			}
			findings = append(findings, e.verifier.ScanImageText(img.Text, img.Page, categories)...)
		}
	}

	if len(findings) > 0 {
		e.log.Warn("verification found residue", zap.Int("findings", len(findings)))
	}
	return findings, nil
}
