// SPDX-License-Identifier: MPL-2.0

// Package config loads and persists the dca user configuration.
//
// Configuration lives in a single TOML file under the platform config
// directory (~/.config/dca/config.toml on Linux) and is read through
// viper, with DCA_* environment variables taking precedence over file
// values. A missing file is not an error; every setting has a
// compiled-in default.
package config
