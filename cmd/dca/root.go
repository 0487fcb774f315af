// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI surface of dca.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"dca-cli/internal/config"
	"dca-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool

	flagCompress   bool
	flagDecompress bool
	flagList       bool
	flagOutput     string
	flagSortByName bool
	flagSortBySize bool

	// cfg is the configuration loaded during initialization. Load
	// always returns a usable config, falling back to defaults.
	cfg = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "dca [flags] FILE...",
		Short: "The dumb cat archiver",
		Long: TitleStyle.Render("dca") + SubtitleStyle.Render(" - The dumb cat archiver") + `

dca bundles files into a trivially simple uncompressed container.
An archive is the four bytes "DCA\n" followed by one record per
file: name, decimal size, payload, each newline terminated.

When no mode flag is given, the mode is inferred from the
arguments: a single .dca file is extracted, anything else is packed.

` + SubtitleStyle.Render("Examples:") + `
  dca a.txt b.txt           Pack two files into dca.dca
  dca -c a.txt -o out.dca   Pack a.txt into out.dca
  dca backup.dca            Extract backup.dca into the current directory
  dca -l backup.dca         List the entries of backup.dca
  dca config show           Show current configuration`,
		Args: cobra.ArbitraryArgs,
		RunE: runRoot,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.Flags().BoolVarP(&flagCompress, "compress", "c", false, "pack the given files into an archive")
	rootCmd.Flags().BoolVarP(&flagDecompress, "decompress", "d", false, "extract the given archive")
	rootCmd.Flags().BoolVarP(&flagList, "list", "l", false, "list the entries of the given archive")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "archive path (compress) or destination directory (decompress)")
	rootCmd.Flags().BoolVar(&flagSortByName, "sort-by-name", false, "sort listing by entry name")
	rootCmd.Flags().BoolVar(&flagSortBySize, "sort-by-size", false, "sort listing by entry size, largest first")

	rootCmd.MarkFlagsMutuallyExclusive("compress", "decompress", "list")
	rootCmd.MarkFlagsMutuallyExclusive("sort-by-name", "sort-by-size")

	// Add subcommands
	rootCmd.AddCommand(configCmd)
}

// runRoot resolves the mode from flags and arguments and dispatches.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	flags := modeFlags{
		compress:   flagCompress,
		decompress: flagDecompress,
		list:       flagList,
		output:     flagOutput,
		sortByName: flagSortByName,
		sortBySize: flagSortBySize,
	}
	opts, err := resolveOptions(args, flags, cfg)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	// Archive failures are rendered with remediation text by the run
	// functions, so keep cobra from repeating them.
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	switch opts.Mode {
	case ModeDecompress:
		return runDecompress(opts)
	case ModeList:
		return runList(cmd.OutOrStdout(), opts)
	default:
		return runCompress(opts)
	}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	if loaded != nil {
		cfg = loaded
	}

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.Verbose
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// codecLogger returns the logger handed to the archive codec. Debug
// level for --verbose is applied globally in initRootConfig, so the
// per-entry lines only show up in verbose runs.
func codecLogger() *log.Logger {
	return log.Default().WithPrefix("archive")
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
