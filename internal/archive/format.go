// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"path/filepath"
	"strings"
)

// Magic is the token identifying a stream as a DCA archive.
const Magic = "DCA"

// Ext is the conventional file extension for DCA archives, without the dot.
const Ext = "dca"

// magicLine is the exact byte sequence opening every archive.
const magicLine = Magic + "\n"

// StoredName derives the name recorded in the archive for a source path:
// the final path component, with every directory component stripped.
// The archive format is flat, so "a/b/c.txt" is stored as "c.txt".
//
// The check for an embedded line feed runs against the full argument,
// not the flattened name: a newline hidden in a directory component
// still rejects the file.
func StoredName(path string) (string, error) {
	if strings.ContainsRune(path, '\n') {
		return "", &FormatError{
			Pos:     -1,
			Section: SectionName,
			Entry:   strings.ReplaceAll(path, "\n", `\n`),
			Index:   -1,
			Reason:  "file path contains a line feed",
		}
	}
	name := filepath.ToSlash(path)
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name, nil
}

// CheckEntryName reports whether a decoded entry name is safe to join
// under a destination directory. The format itself does not forbid
// names with separators or traversal components, so a crafted archive
// could otherwise steer extraction outside the destination; such names
// are rejected here, along with empty ones.
func CheckEntryName(name string) error {
	switch {
	case name == "":
		return errUnsafe(name, "empty entry name")
	case name == "." || name == "..":
		return errUnsafe(name, "entry name is a directory reference")
	case strings.ContainsAny(name, `/\`):
		return errUnsafe(name, "entry name contains a path separator")
	}
	return nil
}

func errUnsafe(name, reason string) *FormatError {
	return &FormatError{
		Pos:     -1,
		Section: SectionName,
		Entry:   name,
		Index:   -1,
		Reason:  reason,
	}
}
