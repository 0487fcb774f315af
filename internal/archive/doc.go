// SPDX-License-Identifier: MPL-2.0

// Package archive implements reading and writing of DCA ("Dumb Cat
// Archive") streams: a flat, uncompressed concatenation of named byte
// blobs behind line-delimited text headers.
//
// The grammar is deliberately tiny:
//
//	archive := "DCA\n" entry*
//	entry   := name "\n" sizeDecimal "\n" payload "\n"
//	name    := UTF-8 bytes, no '\n' byte
//	sizeDecimal := ASCII decimal digits, equals byte length of payload
//	payload := exactly sizeDecimal raw bytes, any content
//
// Despite the "compress/decompress" vocabulary of the surrounding CLI,
// payloads are stored verbatim. There is no index, no checksum and no
// random access: archives are written in one pass and consumed
// entry-by-entry with memory bounded by a single payload.
//
// Reading follows the archive/tar model: NewReader wraps a stream,
// Next advances to the following entry, and Read streams the current
// entry's payload. Writing mirrors it: NewWriter wraps a stream and
// WriteEntry frames one payload, with the header emitted lazily before
// the first entry. Any structural violation surfaces as a *FormatError
// carrying the byte offset, the section that failed and, where known,
// the offending entry's name and index.
package archive
