// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"errors"
	"fmt"
)

// ErrVerificationFailed reports that the post-mutation scan found
// sensitive residue. The run's report carries the finding list.
var ErrVerificationFailed = errors.New("verification found sensitive residue")

// InputError is fatal: the input document cannot be read or is not a
// supported format.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("cannot process input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// MutationError is one failed redaction instruction. It is logged and
// flagged as a partial failure; it never aborts the run or skips
// verification.
type MutationError struct {
	Page int
	Text string
	Err  error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("failed to redact %q on page %d: %v", e.Text, e.Page, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }
