// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"dca-cli/internal/archive"
	"dca-cli/internal/issue"
)

// classifyArchiveError maps codec and filesystem failures to issue catalog IDs
// and returns a styled message for CLI rendering. It preserves actionable
// error details.
func classifyArchiveError(err error, verbose bool) (issueID issue.Id, styledMsg string) {
	issueID = issue.CorruptArchiveId

	var fe *archive.FormatError
	switch {
	case errors.As(err, &fe):
		switch fe.Section {
		case archive.SectionHeader:
			issueID = issue.NotAnArchiveId
		case archive.SectionName:
			issueID = issue.UnsafeEntryNameId
		}
	case errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission):
		issueID = issue.BadSourceFileId
	}

	return issueID, fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
}

// reportArchiveError prints the remediation text for the classified issue
// followed by the styled error message, and wraps the error with a non-zero
// exit code.
func reportArchiveError(err error) error {
	id, styledMsg := classifyArchiveError(err, verbose)
	if rendered, renderErr := issue.Get(id).Render("dark"); renderErr == nil {
		fmt.Fprint(os.Stderr, rendered)
	}
	fmt.Fprint(os.Stderr, styledMsg)
	return &ExitError{Code: 1, Err: err}
}
