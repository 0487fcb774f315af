// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Unpack reads an archive from r and recreates every entry as a file
// directly under destDir, overwriting existing files of the same name.
// Entries are processed strictly in stream order and one at a time, so
// memory use is bounded by the decoder's buffer, not the archive size.
//
// A failure aborts immediately. Files extracted before the failure are
// kept; the file being written at that moment may be left truncated.
func Unpack(r io.Reader, destDir string, opts ...Option) error {
	ar := NewReader(r, opts...)
	for {
		e, err := ar.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := CheckEntryName(e.Name); err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				fe.Pos = ar.pos
				fe.Index = ar.idx
			}
			return err
		}
		if err := extractEntry(ar, filepath.Join(destDir, e.Name), e.Name); err != nil {
			return err
		}
	}
}

// extractEntry streams the current entry's payload into dst.
func extractEntry(ar *Reader, dst, name string) (err error) {
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output file %s: %w", dst, closeErr)
		}
	}()

	if _, err := io.Copy(f, ar); err != nil {
		if errors.Is(err, ErrFormat) {
			return err
		}
		return fmt.Errorf("extract entry %q to %s: %w", name, dst, err)
	}
	return nil
}

// UnpackFile opens the archive at archivePath and unpacks it into
// destDir, creating the directory if needed.
func UnpackFile(archivePath, destDir string, opts ...Option) (err error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", archivePath, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close archive %s: %w", archivePath, closeErr)
		}
	}()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}
	return Unpack(f, destDir, opts...)
}
