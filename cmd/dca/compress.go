// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"dca-cli/internal/archive"

	"github.com/dustin/go-humanize"
)

// runCompress packs opts.Files into the archive at opts.Output.
func runCompress(opts *Options) error {
	if err := archive.PackFiles(opts.Files, opts.Output, archive.WithLogger(codecLogger())); err != nil {
		return reportArchiveError(err)
	}

	size := archiveSize(opts.Output)
	fmt.Fprintf(os.Stdout, "%s Packed %d file(s) into %s (%s)\n",
		successIcon, len(opts.Files), FileStyle.Render(opts.Output), humanize.Bytes(uint64(size)))
	return nil
}

// archiveSize returns the on-disk size of the archive, or zero when it
// cannot be read. The success line degrades rather than failing the run.
func archiveSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
