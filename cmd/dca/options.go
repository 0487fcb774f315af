// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"dca-cli/internal/archive"
	"dca-cli/internal/config"
)

// Mode is the operation selected for one invocation.
type Mode int

const (
	// ModeCompress packs the positional files into an archive.
	ModeCompress Mode = iota
	// ModeDecompress extracts the positional archive into a directory.
	ModeDecompress
	// ModeList prints the entries of the positional archive.
	ModeList
)

// String returns the flag-style name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeCompress:
		return "compress"
	case ModeDecompress:
		return "decompress"
	case ModeList:
		return "list"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// modeFlags carries the raw flag state that drives option resolution.
// Kept separate from cobra so resolution stays a pure function.
type modeFlags struct {
	compress   bool
	decompress bool
	list       bool
	output     string
	sortByName bool
	sortBySize bool
}

// Options is the fully resolved plan for one invocation.
type Options struct {
	Mode Mode

	// Files are the inputs to pack (compress mode only).
	Files []string

	// Archive is the archive path to read (decompress and list modes).
	Archive string

	// Output is the destination archive path (compress) or the
	// destination directory (decompress).
	Output string

	// Sort orders the listing (list mode only).
	Sort archive.SortMode
}

// resolveOptions turns positional arguments, flag state and the loaded
// configuration into an execution plan.
//
// When no mode flag is given, the mode is inferred: a single positional
// argument ending in ".dca" means decompress, anything else means
// compress. The inference always resolves, so there is no "print help
// and give up" fallback here.
func resolveOptions(args []string, flags modeFlags, cfg *config.Config) (*Options, error) {
	opts := &Options{}

	switch {
	case flags.compress:
		opts.Mode = ModeCompress
	case flags.decompress:
		opts.Mode = ModeDecompress
	case flags.list:
		opts.Mode = ModeList
	case len(args) == 1 && strings.HasSuffix(args[0], "."+archive.Ext):
		opts.Mode = ModeDecompress
	default:
		opts.Mode = ModeCompress
	}

	if (flags.sortByName || flags.sortBySize) && opts.Mode != ModeList {
		return nil, fmt.Errorf("sorting flags require --list")
	}

	switch opts.Mode {
	case ModeCompress:
		if len(args) == 0 {
			return nil, fmt.Errorf("compress mode needs at least one input file")
		}
		opts.Files = args
		opts.Output = compressOutput(flags.output, args)

	case ModeDecompress:
		if len(args) != 1 {
			return nil, fmt.Errorf("decompress mode needs exactly one archive, got %d arguments", len(args))
		}
		opts.Archive = args[0]
		opts.Output = flags.output
		if opts.Output == "" {
			opts.Output = cfg.OutputDir
		}
		if opts.Output == "" {
			opts.Output = "."
		}

	case ModeList:
		if len(args) != 1 {
			return nil, fmt.Errorf("list mode needs exactly one archive, got %d arguments", len(args))
		}
		if flags.output != "" {
			return nil, fmt.Errorf("--output has no meaning when listing")
		}
		opts.Archive = args[0]
		opts.Sort = listSort(flags, cfg)
	}

	return opts, nil
}

// compressOutput applies the archive naming rules: an explicit output
// without a dot gets the ".dca" extension appended; no output defaults
// to "<sole input base>.dca" for a single input and "dca.dca" otherwise.
func compressOutput(output string, files []string) string {
	if output != "" {
		if !strings.Contains(output, ".") {
			output += "." + archive.Ext
		}
		return output
	}
	if len(files) == 1 {
		return filepath.Base(files[0]) + "." + archive.Ext
	}
	return "dca." + archive.Ext
}

// listSort picks the listing order: explicit flags win, then the
// configured default.
func listSort(flags modeFlags, cfg *config.Config) archive.SortMode {
	switch {
	case flags.sortByName:
		return archive.ByName
	case flags.sortBySize:
		return archive.BySize
	}
	switch cfg.Sort {
	case config.SortName:
		return archive.ByName
	case config.SortSize:
		return archive.BySize
	default:
		return archive.Unsorted
	}
}
