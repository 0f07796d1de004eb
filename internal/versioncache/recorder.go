// Package versioncache records the installed version for future differential
// updates. It establishes the update cache directory and writes an install
// ledger entry; it never caches installer artifacts itself, the application's
// own updater owns that.
package versioncache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	goversion "github.com/hashicorp/go-version"
	log "github.com/sirupsen/logrus"

	"github.com/mangyomi/installer/internal/db"
	"github.com/mangyomi/installer/internal/types"
)

const (
	versionFile = "version.txt"
	ledgerFile  = "installs.db"
)

// CacheError wraps any failure to establish update bookkeeping
type CacheError struct {
	Op  string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("update cache %s: %v", e.Op, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}

// Recorder records installs for differential update bookkeeping
type Recorder struct {
	cacheDir string
	sfxPath  string
	mode     db.InstallMode
}

// NewRecorder creates a recorder rooted at cacheDir. sfxPath is the stub the
// installer was launched from, if any.
func NewRecorder(cacheDir, sfxPath string, mode db.InstallMode) *Recorder {
	return &Recorder{
		cacheDir: cacheDir,
		sfxPath:  sfxPath,
		mode:     mode,
	}
}

// ReadVersion reads version.txt from installPath, defaulting to "unknown"
func ReadVersion(installPath string) types.VersionRecord {
	versionPath := filepath.Join(installPath, versionFile)
	log.Debugf("looking for version.txt at: %s", versionPath)

	data, err := os.ReadFile(versionPath)
	if err != nil {
		log.Warnf("version.txt not readable: %v", err)
		return types.VersionRecord{Version: types.UnknownVersion}
	}

	v := strings.TrimSpace(string(data))
	if v == "" {
		return types.VersionRecord{Version: types.UnknownVersion}
	}
	return types.VersionRecord{Version: v}
}

// Record establishes the cache directory and records the installed version.
func (r *Recorder) Record(ctx context.Context, installPath string) error {
	log.Infof("recording install for differential updates (%s)", r.mode)
	log.Debugf("cache directory: %s", r.cacheDir)

	if err := os.MkdirAll(r.cacheDir, 0o755); err != nil {
		return &CacheError{Op: "create directory", Err: err}
	}

	record := ReadVersion(installPath)
	if record.Version != types.UnknownVersion {
		if parsed, err := goversion.NewVersion(record.Version); err != nil {
			log.Warnf("installed version %q is not a semantic version: %v", record.Version, err)
		} else {
			log.Infof("installed version: %s", parsed.String())
		}
	}
	if r.sfxPath != "" {
		log.Infof("installer launched from: %s", r.sfxPath)
	}

	if err := ctx.Err(); err != nil {
		return &CacheError{Op: "record", Err: err}
	}

	ledger, err := db.Open(filepath.Join(r.cacheDir, ledgerFile))
	if err != nil {
		return &CacheError{Op: "open ledger", Err: err}
	}
	defer ledger.Close()

	previous, err := ledger.GetLatestInstall(installPath)
	switch {
	case err == nil:
		log.Infof("updating %s from version %s (%s install at %s)",
			installPath, previous.Version, previous.Mode, previous.InstalledAt.Format(time.RFC3339))
	case errors.Is(err, db.ErrNotFound):
		log.Infof("no previous install recorded for %s", installPath)
	default:
		log.Warnf("failed to read previous install record: %v", err)
	}

	if _, err := ledger.RecordInstall(record.Version, installPath, r.sfxPath, r.mode); err != nil {
		return &CacheError{Op: "record install", Err: err}
	}

	// Installer artifacts are not cached here: the first update after a fresh
	// install is a full download, later ones are handled by the application.
	log.Infof("recorded version %s; installer artifacts are left to the application's updater", record.Version)
	return nil
}
