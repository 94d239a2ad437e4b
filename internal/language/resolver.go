// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package language resolves the language of extracted page text so the
// detector can pick the right pattern rules.
package language

import (
	"strings"
	"sync"

	"github.com/abadojack/whatlanggo"
)

// DefaultLanguage is returned when identification fails or is not
// confident enough to act on.
const DefaultLanguage = "en"

// minConfidence is the identification confidence below which the
// resolver falls back to the default language.
const minConfidence = 0.5

// Identifier identifies the language of a text sample. Implementations
// must be safe for concurrent use.
type Identifier interface {
	Identify(text string) (code string, confidence float64)
}

// WhatlangIdentifier identifies languages with the whatlanggo trigram
// detector.
type WhatlangIdentifier struct{}

// Identify returns the ISO 639-1 code of the detected language and the
// detector's confidence.
func (WhatlangIdentifier) Identify(text string) (string, float64) {
	info := whatlanggo.Detect(text)
	return whatlanggo.LangToStringShort(info.Lang), info.Confidence
}

// Resolver caches language identification per page text. A page whose
// text has not changed is never identified twice within a run.
type Resolver struct {
	identifier Identifier
	forced     string

	mu    sync.RWMutex
	cache map[string]string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithIdentifier replaces the default whatlanggo identifier.
func WithIdentifier(id Identifier) Option {
	return func(r *Resolver) { r.identifier = id }
}

// WithForcedLanguage pins every resolution to the given code, skipping
// identification entirely. An empty code disables the pin.
func WithForcedLanguage(code string) Option {
	return func(r *Resolver) { r.forced = strings.ToLower(strings.TrimSpace(code)) }
}

// NewResolver returns a Resolver backed by whatlanggo unless options say
// otherwise.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		identifier: WhatlangIdentifier{},
		cache:      map[string]string{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the language code for the given page text. Empty or
// whitespace-only text, identification failure, and low-confidence
// results all resolve to the default language.
func (r *Resolver) Resolve(text string) string {
	if r.forced != "" {
		return r.forced
	}
	if strings.TrimSpace(text) == "" {
		return DefaultLanguage
	}

	r.mu.RLock()
	cached, ok := r.cache[text]
	r.mu.RUnlock()
	if ok {
		return cached
	}

	code, confidence := r.identifier.Identify(text)
	if code == "" || confidence < minConfidence {
		code = DefaultLanguage
	}

	r.mu.Lock()
	r.cache[text] = code
	r.mu.Unlock()
	return code
}
