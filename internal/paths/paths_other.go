//go:build !windows

package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// RoamingDataDir returns the platform data root (XDG_DATA_HOME on Linux).
func RoamingDataDir() string {
	if runtime.GOOS == "darwin" {
		return filepath.Join(homeDir(), "Library", "Application Support")
	}
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	return filepath.Join(homeDir(), ".local", "share")
}

// DefaultInstallDir returns a per-user program directory for appName.
func DefaultInstallDir(appName string) string {
	if runtime.GOOS == "darwin" {
		return filepath.Join(homeDir(), "Applications", appName)
	}
	return filepath.Join(homeDir(), ".local", "opt", appName)
}

func DesktopDir() string {
	if dir := os.Getenv("XDG_DESKTOP_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(homeDir(), "Desktop")
}

// LauncherDir returns the freedesktop applications folder for appName.
func LauncherDir(appName string) string {
	return filepath.Join(RoamingDataDir(), "applications", appName)
}
