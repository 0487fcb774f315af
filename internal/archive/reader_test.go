// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// readAll drains the whole archive in s, returning entries and their
// payloads. It fails the test on any error.
func readAll(t *testing.T, s string) ([]Entry, []string) {
	t.Helper()
	ar := NewReader(strings.NewReader(s))
	var entries []Entry
	var payloads []string
	for {
		e, err := ar.Next()
		if err == io.EOF {
			return entries, payloads
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		data, err := io.ReadAll(ar)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		entries = append(entries, *e)
		payloads = append(payloads, string(data))
	}
}

func TestReaderEmptyArchive(t *testing.T) {
	ar := NewReader(strings.NewReader("DCA\n"))
	if _, err := ar.Next(); err != io.EOF {
		t.Errorf("Next() on empty archive = %v, want io.EOF", err)
	}
}

func TestReaderSingleEntry(t *testing.T) {
	entries, payloads := readAll(t, "DCA\nhello\n5\nworld\n")
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Name != "hello" || entries[0].Size != 5 {
		t.Errorf("entry = %+v, want {hello 5}", entries[0])
	}
	if payloads[0] != "world" {
		t.Errorf("payload = %q, want %q", payloads[0], "world")
	}
}

func TestReaderMultipleEntries(t *testing.T) {
	entries, payloads := readAll(t, "DCA\nbinary\n6\n\x00\xff\x80123\ntext\n6\n\ndca\n\n\nempty\n0\n\n")

	wantNames := []string{"binary", "text", "empty"}
	wantPayloads := []string{"\x00\xff\x80123", "\ndca\n\n", ""}
	if len(entries) != len(wantNames) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantNames))
	}
	for i := range entries {
		if entries[i].Name != wantNames[i] {
			t.Errorf("entry %d name = %q, want %q", i, entries[i].Name, wantNames[i])
		}
		if payloads[i] != wantPayloads[i] {
			t.Errorf("entry %d payload = %q, want %q", i, payloads[i], wantPayloads[i])
		}
	}
}

// Payloads containing the frame delimiter must be delivered whole; the
// size line, not the delimiter, bounds the payload.
func TestReaderSizeFidelityWithEmbeddedNewlines(t *testing.T) {
	entries, payloads := readAll(t, "DCA\nnl\n4\n\n\n\n\n\nafter\n2\nok\n")
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if payloads[0] != "\n\n\n\n" {
		t.Errorf("payload with newlines = %q, want four line feeds", payloads[0])
	}
	if int64(len(payloads[0])) != entries[0].Size {
		t.Errorf("payload length %d != declared size %d", len(payloads[0]), entries[0].Size)
	}
	if entries[1].Name != "after" || payloads[1] != "ok" {
		t.Errorf("decoding desynchronized after newline payload: %+v %q", entries[1], payloads[1])
	}
}

func TestReaderHeaderRejection(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty stream", ""},
		{"short stream", "DC"},
		{"wrong magic", "DCAv2\nfoo\n3\nbar\n"},
		{"missing newline", "DCAx"},
		{"lowercase", "dca\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ar := NewReader(strings.NewReader(tt.input))
			_, err := ar.Next()
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Next() error = %v, want *FormatError", err)
			}
			if fe.Section != SectionHeader {
				t.Errorf("Section = %v, want %v", fe.Section, SectionHeader)
			}
		})
	}
}

func TestReaderMalformedSize(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"alphabetic", "DCA\nfoo\nabc\nbar\n"},
		{"empty size line", "DCA\nfoo\n\nbar\n"},
		{"negative", "DCA\nfoo\n-3\nbar\n"},
		{"explicit plus sign", "DCA\nfoo\n+3\nbar\n"},
		{"trailing junk", "DCA\nfoo\n3x\nbar\n"},
		{"missing size line", "DCA\nfoo\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ar := NewReader(strings.NewReader(tt.input))
			_, err := ar.Next()
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Next() error = %v, want *FormatError", err)
			}
			if fe.Section != SectionSize {
				t.Errorf("Section = %v, want %v", fe.Section, SectionSize)
			}
			if fe.Entry != "foo" {
				t.Errorf("Entry = %q, want %q", fe.Entry, "foo")
			}
		})
	}
}

func TestReaderTruncatedPayload(t *testing.T) {
	ar := NewReader(strings.NewReader("DCA\nfoo\n1000\nbar"))
	if _, err := ar.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	_, err := io.ReadAll(ar)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("ReadAll() error = %v, want *FormatError", err)
	}
	if fe.Section != SectionPayload {
		t.Errorf("Section = %v, want %v", fe.Section, SectionPayload)
	}
	if fe.Pos != 16 {
		t.Errorf("Pos = %d, want 16", fe.Pos)
	}
	if fe.Entry != "foo" || fe.Index != 0 {
		t.Errorf("Entry/Index = %q/%d, want foo/0", fe.Entry, fe.Index)
	}
}

func TestReaderMissingTerminator(t *testing.T) {
	ar := NewReader(strings.NewReader("DCA\nfoo\n3\nbar"))
	if _, err := ar.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	// Terminator is checked when advancing past the entry.
	_, err := ar.Next()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Next() error = %v, want *FormatError", err)
	}
	if fe.Section != SectionTerminator {
		t.Errorf("Section = %v, want %v", fe.Section, SectionTerminator)
	}
	if fe.Pos != 13 {
		t.Errorf("Pos = %d, want 13", fe.Pos)
	}
}

func TestReaderWrongTerminator(t *testing.T) {
	ar := NewReader(strings.NewReader("DCA\nfoo\n3\nbarXnext\n0\n\n"))
	if _, err := ar.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	_, err := ar.Next()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Next() error = %v, want *FormatError", err)
	}
	if fe.Section != SectionTerminator {
		t.Errorf("Section = %v, want %v", fe.Section, SectionTerminator)
	}
	if fe.Entry != "foo" {
		t.Errorf("Entry = %q, want %q", fe.Entry, "foo")
	}
}

func TestReaderUnterminatedNameLine(t *testing.T) {
	ar := NewReader(strings.NewReader("DCA\nfoo"))
	_, err := ar.Next()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Next() error = %v, want *FormatError", err)
	}
	if fe.Section != SectionName {
		t.Errorf("Section = %v, want %v", fe.Section, SectionName)
	}
}

// Next must skip an entry's payload when the caller never reads it.
func TestReaderSkipsUnreadPayload(t *testing.T) {
	ar := NewReader(strings.NewReader("DCA\nfirst\n5\n12345\nsecond\n2\nab\n"))
	if _, err := ar.Next(); err != nil {
		t.Fatalf("first Next() error = %v", err)
	}
	e, err := ar.Next()
	if err != nil {
		t.Fatalf("second Next() error = %v", err)
	}
	if e.Name != "second" {
		t.Errorf("entry after skip = %q, want %q", e.Name, "second")
	}
	data, err := io.ReadAll(ar)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "ab" {
		t.Errorf("payload after skip = %q, want %q", data, "ab")
	}
}

// Errors are sticky: once decoding fails, every later call reports the
// same failure instead of resynchronizing on garbage.
func TestReaderStickyError(t *testing.T) {
	ar := NewReader(strings.NewReader("DCA\nfoo\nnotasize\n"))
	_, err1 := ar.Next()
	if err1 == nil {
		t.Fatal("Next() succeeded on malformed size")
	}
	_, err2 := ar.Next()
	if err2 != err1 {
		t.Errorf("second Next() = %v, want the original %v", err2, err1)
	}
	if n, err := ar.Read(make([]byte, 4)); n != 0 || err != err1 {
		t.Errorf("Read() = (%d, %v), want (0, sticky error)", n, err)
	}
}
