// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"dca-cli/internal/archive"

	"github.com/dustin/go-humanize"
)

// runList prints the entries of opts.Archive to w, one per line, in the
// order selected by opts.Sort.
func runList(w io.Writer, opts *Options) error {
	entries, err := archive.ListFile(opts.Archive, archive.WithLogger(codecLogger()))
	if err != nil {
		return reportArchiveError(err)
	}

	archive.SortEntries(entries, opts.Sort)
	for _, e := range entries {
		fmt.Fprintf(w, "%s (%s)\n", FileStyle.Render(e.Name), humanize.Bytes(uint64(e.Size)))
	}
	return nil
}
