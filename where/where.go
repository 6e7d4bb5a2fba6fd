// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/multitracks/multitracks/constant"
	"github.com/multitracks/multitracks/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "MULTITRACKS_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The path can be overridden with the MULTITRACKS_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Multitracks))
}

// Logs resolves the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Cache resolves the directory holding cached inspection results.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(Config(), "cache")
		return ensureDir(base)
	}
	return ensureDir(filepath.Join(base, constant.Multitracks))
}

// History resolves the file holding remembered session assignments.
func History() string {
	return filepath.Join(Config(), "history.json")
}
