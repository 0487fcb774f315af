// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
)

// SortMode controls the ordering of listed entries.
type SortMode int

const (
	// Unsorted keeps the order in which entries appear in the stream.
	Unsorted SortMode = iota
	// ByName sorts entries lexically by name, ascending.
	ByName
	// BySize sorts entries by payload size, largest first.
	BySize
)

// List scans the archive in r and returns the header of every entry in
// stream order. Payloads are skipped, not buffered, so listing a large
// archive stays cheap.
func List(r io.Reader, opts ...Option) ([]Entry, error) {
	ar := NewReader(r, opts...)
	var entries []Entry
	for {
		e, err := ar.Next()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
}

// ListFile opens the archive at archivePath and lists its entries.
func ListFile(archivePath string, opts ...Option) (entries []Entry, err error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", archivePath, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			entries, err = nil, fmt.Errorf("close archive %s: %w", archivePath, closeErr)
		}
	}()
	return List(f, opts...)
}

// SortEntries orders entries in place according to mode. Duplicate
// names are possible in a valid archive; their relative order under
// ByName is kept stable.
func SortEntries(entries []Entry, mode SortMode) {
	switch mode {
	case ByName:
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return cmp.Compare(a.Name, b.Name)
		})
	case BySize:
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return cmp.Compare(b.Size, a.Size)
		})
	case Unsorted:
	}
}
