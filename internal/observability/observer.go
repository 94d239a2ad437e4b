// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package observability times pipeline phases and emits them as
// structured log entries.
package observability

import (
	"time"

	"go.uber.org/zap"

	"docredact/internal/logger"
)

// Observer records phase timings through the engine's logger.
type Observer struct {
	log *logger.Logger
}

// NewObserver wires an Observer to the given logger. A nil logger
// produces a no-op observer.
func NewObserver(log *logger.Logger) *Observer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Observer{log: log}
}

// StartTiming returns a function that completes the timing. Callers
// defer it or invoke it at the end of the phase.
func (o *Observer) StartTiming(component, operation string) func(success bool, fields ...zap.Field) {
	start := time.Now()

	return func(success bool, fields ...zap.Field) {
		all := append([]zap.Field{
			zap.String("component", component),
			zap.String("operation", operation),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.Bool("success", success),
		}, fields...)
		o.log.Debug("phase complete", all...)
	}
}
