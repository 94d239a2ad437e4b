// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestZero(t *testing.T) {
	b := []byte("4111111111111111")
	Zero(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not zeroed", i)
		}
	}
}

func TestWipeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scratch.img")
	if err := os.WriteFile(path, []byte("sensitive pixels"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := WipeFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file should be removed after wipe")
	}
}

func TestWipeFileMissing(t *testing.T) {
	if err := WipeFile(filepath.Join(t.TempDir(), "absent")); err != nil {
		t.Errorf("missing file should not error: %v", err)
	}
}
