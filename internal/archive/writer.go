// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Writer produces a DCA stream entry by entry, mirroring the Reader.
// The magic header is emitted lazily before the first entry, so
// nothing reaches the underlying writer until there is something
// valid to frame; a Writer closed without entries produces exactly
// the bare header.
//
// I/O errors are sticky: after a failed write every subsequent call
// returns the same error. Name validation failures are not; they
// happen before any bytes move and leave the Writer usable.
type Writer struct {
	w      io.Writer
	logger *log.Logger

	idx        int
	wroteMagic bool
	err        error
}

// NewWriter returns a Writer framing entries into w. Nothing is
// written until the first WriteEntry or Close.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	o := buildOptions(opts)
	return &Writer{w: w, logger: o.logger}
}

// WriteEntry frames one payload: name line, decimal size line, raw
// payload bytes, closing line feed. The name must not contain a line
// feed; StoredName derives a valid name from a source path.
func (aw *Writer) WriteEntry(name string, payload []byte) error {
	if aw.err != nil {
		return aw.err
	}
	if strings.ContainsRune(name, '\n') {
		return &FormatError{
			Pos:     -1,
			Section: SectionName,
			Entry:   strings.ReplaceAll(name, "\n", `\n`),
			Index:   aw.idx,
			Reason:  "entry name contains a line feed",
		}
	}
	if err := aw.writeMagic(); err != nil {
		return err
	}
	aw.logger.Debug("writing entry", "name", name, "size", len(payload), "index", aw.idx)
	if _, err := io.WriteString(aw.w, name+"\n"+strconv.Itoa(len(payload))+"\n"); err != nil {
		aw.err = fmt.Errorf("write entry header for %q: %w", name, err)
		return aw.err
	}
	if _, err := aw.w.Write(payload); err != nil {
		aw.err = fmt.Errorf("write entry payload for %q: %w", name, err)
		return aw.err
	}
	if _, err := aw.w.Write([]byte{'\n'}); err != nil {
		aw.err = fmt.Errorf("write entry terminator for %q: %w", name, err)
		return aw.err
	}
	aw.idx++
	return nil
}

// Close finalizes the archive, emitting the header when no entry has
// been written. It does not close the underlying writer.
func (aw *Writer) Close() error {
	if aw.err != nil {
		return aw.err
	}
	return aw.writeMagic()
}

func (aw *Writer) writeMagic() error {
	if aw.wroteMagic {
		return nil
	}
	if _, err := io.WriteString(aw.w, magicLine); err != nil {
		aw.err = fmt.Errorf("write archive header: %w", err)
		return aw.err
	}
	aw.wroteMagic = true
	return nil
}

// Pack writes the files at paths into w as a single DCA stream, in the
// given order. Every stored name is derived and validated before the
// first byte is written, so a rejected path leaves w untouched. Each
// source file is read fully into memory before its entry is written;
// this is a documented scaling limit, not a bug.
//
// Once the header is out, the first I/O failure aborts the operation
// and bytes already written stay written: there is no rollback and no
// temp-file renaming.
func Pack(w io.Writer, paths []string, opts ...Option) error {
	names, err := storedNames(paths)
	if err != nil {
		return err
	}

	aw := NewWriter(w, opts...)
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read source file: %w", err)
		}
		if err := aw.WriteEntry(names[i], data); err != nil {
			return err
		}
	}
	return aw.Close()
}

// storedNames derives the stored name of every path up front, failing
// on the first invalid one. Validation is pure string checking, so
// running it before any output keeps rejected names from producing a
// partial archive.
func storedNames(paths []string) ([]string, error) {
	names := make([]string, len(paths))
	for i, path := range paths {
		name, err := StoredName(path)
		if err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				fe.Index = i
			}
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

// PackFiles packs paths into a new archive at dest, creating or
// truncating it. Names are validated before dest is touched, so a
// rejected path never creates, truncates or leaves behind an archive
// file. An I/O failure mid-stream still leaves the partial archive on
// disk (Pack's no-rollback contract).
func PackFiles(paths []string, dest string, opts ...Option) (err error) {
	if _, err := storedNames(paths); err != nil {
		return err
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create archive %s: %w", dest, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close archive %s: %w", dest, closeErr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := Pack(w, paths, opts...); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush archive %s: %w", dest, err)
	}
	return nil
}
