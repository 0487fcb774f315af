// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"errors"
	"fmt"
)

// ErrFormat is wrapped by every *FormatError so callers can classify
// structural failures with errors.Is without caring about the section.
var ErrFormat = errors.New("malformed dca archive")

// Section names the part of an entry (or of the archive) in which a
// structural violation was detected.
type Section int

const (
	// SectionHeader is the 4-byte "DCA\n" magic line.
	SectionHeader Section = iota
	// SectionName is an entry's name line.
	SectionName
	// SectionSize is an entry's decimal size line.
	SectionSize
	// SectionPayload is an entry's raw payload bytes.
	SectionPayload
	// SectionTerminator is the single line feed closing an entry.
	SectionTerminator
)

// String returns a human-readable section name.
func (s Section) String() string {
	switch s {
	case SectionHeader:
		return "header"
	case SectionName:
		return "entry name"
	case SectionSize:
		return "entry size"
	case SectionPayload:
		return "entry payload"
	case SectionTerminator:
		return "entry terminator"
	default:
		return fmt.Sprintf("section(%d)", int(s))
	}
}

// FormatError describes a structural violation of the DCA format.
// It is returned both by the decoder (bad magic, malformed size line,
// truncated payload, missing terminator, unsafe entry name) and by the
// encoder (source path containing a line feed).
//
// Every other failure mode of this package is plain I/O: those errors
// wrap the underlying *fs.PathError and carry no FormatError.
type FormatError struct {
	// Pos is the byte offset into the archive stream at which the
	// violation was detected, or -1 when no stream position applies
	// (encoder-side name validation).
	Pos int64

	// Section identifies which part of the frame was malformed.
	Section Section

	// Entry is the name (or source path) of the entry being processed
	// when the violation was found, if known.
	Entry string

	// Index is the zero-based position of that entry in the stream,
	// or -1 when unknown.
	Index int

	// Reason is a short description of the violated invariant.
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", ErrFormat.Error(), e.Section, e.Reason)
	if e.Entry != "" {
		msg += fmt.Sprintf(" (entry %q", e.Entry)
		if e.Index >= 0 {
			msg += fmt.Sprintf(", index %d", e.Index)
		}
		msg += ")"
	} else if e.Index >= 0 {
		msg += fmt.Sprintf(" (entry index %d)", e.Index)
	}
	if e.Pos >= 0 {
		msg += fmt.Sprintf(" at offset %d", e.Pos)
	}
	return msg
}

// Unwrap makes errors.Is(err, ErrFormat) hold for every FormatError.
func (e *FormatError) Unwrap() error {
	return ErrFormat
}
