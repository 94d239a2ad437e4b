// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package security holds best-effort scrubbing helpers for transient
// copies of sensitive data.
package security

import (
	"fmt"
	"os"
)

// Zero overwrites the slice in place.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// WipeFile overwrites the file with zeros before removing it, so
// sensitive scratch files do not linger recoverable on disk. Best
// effort: the filesystem may have already written copies elsewhere
// (journals, snapshots), and SSDs may remap blocks.
func WipeFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s for wiping: %w", path, err)
	}
	zeros := make([]byte, 64*1024)
	remaining := info.Size()
	for remaining > 0 {
		n := int64(len(zeros))
		if remaining < n {
			n = remaining
		}
		if _, err := f.Write(zeros[:n]); err != nil {
			f.Close()
			return fmt.Errorf("failed to wipe %s: %w", path, err)
		}
		remaining -= n
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(path)
}
