// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"dca-cli/internal/config"
	"dca-cli/internal/issue"

	"github.com/spf13/cobra"
)

// configCmd is the `dca config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage dca configuration",
	Long: `Manage dca configuration.

Configuration is stored in:
  - Linux: ~/.config/dca/config.toml
  - macOS: ~/Library/Application Support/dca/config.toml
  - Windows: %APPDATA%\dca\config.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(args[0], args[1])
		},
	})
}

func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	keyStyle := FileStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	cfgPath, pathErr := config.FilePath()
	if pathErr == nil && fileExistsCheck(cfgPath) {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", keyStyle.Render("verbose"), valueStyle.Render(strconv.FormatBool(cfg.Verbose)))
	fmt.Printf("%s: %s\n", keyStyle.Render("sort"), valueStyle.Render(cfg.Sort))
	if cfg.OutputDir == "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("output_dir"), SubtitleStyle.Render("(current directory)"))
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("output_dir"), valueStyle.Render(cfg.OutputDir))
	}

	return nil
}

func initConfigFile() error {
	cfgPath, err := config.FilePath()
	if err != nil {
		return err
	}
	if fileExistsCheck(cfgPath) {
		return fmt.Errorf("configuration file already exists at %s", cfgPath)
	}

	if err := config.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n", successIcon, cfgPath)
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.FilePath()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", cfgPath)
	return nil
}

func setConfigValue(key, value string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch key {
	case "verbose":
		cfg.Verbose = value == "true" || value == "1"

	case "output_dir":
		cfg.OutputDir = value

	case "sort":
		if value != config.SortUnsorted && value != config.SortName && value != config.SortSize {
			return fmt.Errorf("invalid sort: must be %q, %q or %q",
				config.SortUnsorted, config.SortName, config.SortSize)
		}
		cfg.Sort = value

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: verbose, output_dir, sort", key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s Set %s = %s\n", successIcon, key, value)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
