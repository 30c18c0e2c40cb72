// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/toumei/toumei/constant"
	"github.com/toumei/toumei/filesystem"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "TOUMEI_CONFIG_PATH"

// EnvDataPath overrides the directory holding persisted chat sessions.
const EnvDataPath = "TOUMEI_DATA_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// It follows XDG_CONFIG_HOME on Linux and the equivalent user profile paths on Darwin and Windows,
// unless TOUMEI_CONFIG_PATH is set.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Toumei))
}

// Data resolves the directory for state written by the server itself.
func Data() string {
	if custom, ok := os.LookupEnv(EnvDataPath); ok {
		return ensureDir(custom)
	}

	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "data")
	}
	return ensureDir(filepath.Join(base, constant.Toumei))
}

// Logs resolves the absolute path to the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Sessions resolves the chat session snapshot file.
func Sessions() string {
	return filepath.Join(Data(), "sessions.json")
}

// Version resolves the cached latest-release lookup.
func Version() string {
	return filepath.Join(Data(), "version.json")
}
