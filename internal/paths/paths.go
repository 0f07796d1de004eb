// Package paths resolves the per-user directories the installer writes to.
package paths

import (
	"os"
	"path/filepath"
)

// DataDirName is the directory under the roaming data root that holds the
// diagnostics log and the update cache.
const DataDirName = "mangyomi"

// AppDataDir returns the installer's per-user data directory.
func AppDataDir() string {
	return filepath.Join(RoamingDataDir(), DataDirName)
}

// DiagnosticsLogPath returns the fixed per-user diagnostics log file.
func DiagnosticsLogPath() string {
	return filepath.Join(AppDataDir(), "installer-debug.log")
}

// UpdateCacheDir returns the directory reserved for differential update artifacts.
func UpdateCacheDir() string {
	return filepath.Join(AppDataDir(), "update-cache")
}

// ExecutableDir returns the directory containing the running installer binary.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
