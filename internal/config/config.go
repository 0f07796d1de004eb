package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/mangyomi/installer/internal/paths"
)

// Config holds all installer configuration
type Config struct {
	AppName  string
	ExeName  string // executable inside the install directory
	LogPath  string
	LogLevel string

	ResourceDir    string // holds app.7z / app.zip
	CacheDir       string
	MinPayloadSize int64 // app.7z at or below this size is treated as a broken stub

	// SettleDelay is waited unconditionally before a silent install touches the
	// install directory: the instance that spawned us is still releasing its file locks.
	SettleDelay time.Duration
	// LockWait bounds the retry loop that follows SettleDelay.
	LockWait time.Duration

	Workers int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName:        getEnv("MANGYOMI_APP_NAME", "Mangyomi"),
		ExeName:        getEnv("MANGYOMI_EXE_NAME", defaultExeName()),
		LogPath:        getEnvPath("MANGYOMI_LOG_PATH", paths.DiagnosticsLogPath()),
		LogLevel:       getEnv("MANGYOMI_LOG_LEVEL", "debug"),
		ResourceDir:    getEnvPath("MANGYOMI_RESOURCE_DIR", filepath.Join(paths.ExecutableDir(), "resources")),
		CacheDir:       getEnvPath("MANGYOMI_CACHE_DIR", paths.UpdateCacheDir()),
		MinPayloadSize: getEnvInt64("MANGYOMI_MIN_PAYLOAD_SIZE", 1000),
		SettleDelay:    getEnvDuration("MANGYOMI_SETTLE_DELAY", 3*time.Second),
		LockWait:       getEnvDuration("MANGYOMI_LOCK_WAIT", 30*time.Second),
		Workers:        getEnvInt("MANGYOMI_WORKERS", 2),
	}
}

// DefaultInstallPath returns the per-user install location offered by the front end.
func (c *Config) DefaultInstallPath() string {
	return paths.DefaultInstallDir(c.AppName)
}

// ExePath returns the installed executable under installPath.
func (c *Config) ExePath(installPath string) string {
	return filepath.Join(installPath, c.ExeName)
}

func defaultExeName() string {
	if runtime.GOOS == "windows" {
		return "Mangyomi.exe"
	}
	return "mangyomi"
}

// ExpandPath expands a leading ~ to the home directory and cleans the path.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return filepath.Clean(path)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvPath(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return ExpandPath(val)
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go duration strings ("3s") or a bare number of seconds.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil && d >= 0 {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}
