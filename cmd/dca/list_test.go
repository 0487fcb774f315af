// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dca-cli/internal/archive"
)

func TestRunList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	small := filepath.Join(dir, "small.txt")
	big := filepath.Join(dir, "big.txt")
	if err := os.WriteFile(small, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(big, []byte(strings.Repeat("x", 2048)), 0o644); err != nil {
		t.Fatal(err)
	}

	archivePath := filepath.Join(dir, "test.dca")
	if err := archive.PackFiles([]string{small, big}, archivePath); err != nil {
		t.Fatalf("PackFiles() error = %v", err)
	}

	var out strings.Builder
	opts := &Options{Mode: ModeList, Archive: archivePath, Sort: archive.BySize}
	if err := runList(&out, opts); err != nil {
		t.Fatalf("runList() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "big.txt") {
		t.Errorf("first line %q should name the largest entry", lines[0])
	}
	if !strings.Contains(lines[1], "small.txt") {
		t.Errorf("second line %q should name the smallest entry", lines[1])
	}
}
