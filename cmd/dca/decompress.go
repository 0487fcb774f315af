// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"dca-cli/internal/archive"
)

// runDecompress extracts opts.Archive into the directory opts.Output.
func runDecompress(opts *Options) error {
	if err := archive.UnpackFile(opts.Archive, opts.Output, archive.WithLogger(codecLogger())); err != nil {
		return reportArchiveError(err)
	}

	fmt.Fprintf(os.Stdout, "%s Extracted %s into %s\n",
		successIcon, FileStyle.Render(opts.Archive), FileStyle.Render(opts.Output))
	return nil
}
