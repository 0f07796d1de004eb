//go:build windows

package paths

import (
	"os"
	"path/filepath"
)

// RoamingDataDir returns %APPDATA%.
func RoamingDataDir() string {
	if dir := os.Getenv("APPDATA"); dir != "" {
		return dir
	}
	return filepath.Join(homeDir(), "AppData", "Roaming")
}

// localDataDir returns %LOCALAPPDATA%, falling back to the system drive root.
func localDataDir() string {
	if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
		return dir
	}
	return `C:\`
}

// DefaultInstallDir returns %LOCALAPPDATA%\Programs\<appName>.
func DefaultInstallDir(appName string) string {
	return filepath.Join(localDataDir(), "Programs", appName)
}

// DesktopDir returns the user's desktop folder.
func DesktopDir() string {
	profile := os.Getenv("USERPROFILE")
	if profile == "" {
		profile = homeDir()
	}
	return filepath.Join(profile, "Desktop")
}

// LauncherDir returns the per-user start menu folder for appName.
func LauncherDir(appName string) string {
	return filepath.Join(RoamingDataDir(), "Microsoft", "Windows", "Start Menu", "Programs", appName)
}
