// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Entry describes one file stored in an archive: its flattened name
// and the exact byte length of its payload.
type Entry struct {
	Name string
	Size int64
}

// Reader provides streaming, entry-by-entry access to a DCA archive,
// modeled on archive/tar. Next advances to the following entry and
// Read streams the current entry's payload, returning io.EOF when the
// payload is exhausted. The reader never buffers more than one
// payload's worth of lookahead.
//
// Structural errors are sticky: once a *FormatError or I/O error has
// been returned, every subsequent call returns the same error.
type Reader struct {
	r      *bufio.Reader
	logger *log.Logger

	pos       int64 // bytes consumed from the stream
	idx       int   // index of the current entry, -1 before the first
	remaining int64 // unread payload bytes of the current entry
	inEntry   bool  // payload/terminator of the current entry pending
	curName   string
	gotMagic  bool
	err       error
}

// NewReader wraps r for sequential archive reading. The magic header
// is validated lazily on the first call to Next.
func NewReader(r io.Reader, opts ...Option) *Reader {
	o := buildOptions(opts)
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br, logger: o.logger, idx: -1}
}

// Next advances to the next entry, skipping any unread remainder of
// the current one, and returns its header. It returns io.EOF when the
// archive ends cleanly after the last entry.
func (ar *Reader) Next() (*Entry, error) {
	if ar.err != nil {
		return nil, ar.err
	}
	e, err := ar.next()
	if err != nil && err != io.EOF {
		ar.err = err
	}
	return e, err
}

func (ar *Reader) next() (*Entry, error) {
	if !ar.gotMagic {
		if err := ar.checkMagic(); err != nil {
			return nil, err
		}
		ar.gotMagic = true
	} else if ar.inEntry {
		if err := ar.finishEntry(); err != nil {
			return nil, err
		}
	}

	// Name line. A clean EOF here is the regular end-of-archive
	// condition, not an error.
	line, err := ar.r.ReadString('\n')
	if err == io.EOF && line == "" {
		return nil, io.EOF
	}
	if err == io.EOF {
		return nil, ar.corrupt(SectionName, line, ar.idx+1, "entry name line not terminated")
	}
	if err != nil {
		return nil, fmt.Errorf("read entry name: %w", err)
	}
	name := line[:len(line)-1]
	ar.pos += int64(len(line))

	// Size line.
	line, err = ar.r.ReadString('\n')
	if err == io.EOF {
		return nil, ar.corrupt(SectionSize, name, ar.idx+1, "entry size line missing or not terminated")
	}
	if err != nil {
		return nil, fmt.Errorf("read entry size: %w", err)
	}
	sizeText := strings.TrimSuffix(line, "\n")
	size, err := strconv.ParseUint(sizeText, 10, 63)
	if err != nil {
		return nil, ar.corrupt(SectionSize, name, ar.idx+1, fmt.Sprintf("not a decimal size: %q", sizeText))
	}
	ar.pos += int64(len(line))

	ar.idx++
	ar.curName = name
	ar.remaining = int64(size)
	ar.inEntry = true
	ar.logger.Debug("reading entry", "name", name, "size", size, "index", ar.idx)
	return &Entry{Name: name, Size: int64(size)}, nil
}

// Read streams the current entry's payload. It returns io.EOF once
// exactly Size bytes have been delivered; a stream that ends earlier
// yields a *FormatError rather than a silently short payload.
func (ar *Reader) Read(p []byte) (int, error) {
	if ar.err != nil {
		return 0, ar.err
	}
	if !ar.inEntry || ar.remaining == 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > ar.remaining {
		p = p[:ar.remaining]
	}
	n, err := ar.r.Read(p)
	ar.pos += int64(n)
	ar.remaining -= int64(n)
	if err == io.EOF && ar.remaining == 0 {
		// The stream may surface EOF together with the final payload
		// bytes. The payload itself is complete; a missing terminator
		// is Next's problem.
		return n, nil
	}
	if err == io.EOF {
		ar.err = ar.corrupt(SectionPayload, ar.curName, ar.idx,
			fmt.Sprintf("payload truncated with %d bytes missing", ar.remaining))
		return n, ar.err
	}
	if err != nil {
		ar.err = fmt.Errorf("read entry payload: %w", err)
		return n, ar.err
	}
	return n, nil
}

// checkMagic consumes and validates the 4-byte header line.
func (ar *Reader) checkMagic() error {
	buf := make([]byte, len(magicLine))
	if _, err := io.ReadFull(ar.r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ar.corrupt(SectionHeader, "", -1, "stream too short to hold the DCA header")
		}
		return fmt.Errorf("read archive header: %w", err)
	}
	if string(buf) != magicLine {
		return ar.corrupt(SectionHeader, "", -1, fmt.Sprintf("bad magic %q, want %q", buf, magicLine))
	}
	ar.pos += int64(len(magicLine))
	return nil
}

// finishEntry drains whatever is left of the current payload and
// consumes the single line-feed terminator.
func (ar *Reader) finishEntry() error {
	if ar.remaining > 0 {
		if _, err := io.Copy(io.Discard, ar); err != nil {
			return err
		}
	}
	b, err := ar.r.ReadByte()
	if err == io.EOF {
		return ar.corrupt(SectionTerminator, ar.curName, ar.idx, "entry terminator missing")
	}
	if err != nil {
		return fmt.Errorf("read entry terminator: %w", err)
	}
	if b != '\n' {
		return ar.corrupt(SectionTerminator, ar.curName, ar.idx, fmt.Sprintf("expected line feed, found %q", b))
	}
	ar.pos++
	ar.inEntry = false
	return nil
}

func (ar *Reader) corrupt(section Section, entry string, index int, reason string) *FormatError {
	return &FormatError{
		Pos:     ar.pos,
		Section: section,
		Entry:   entry,
		Index:   index,
		Reason:  reason,
	}
}
