// Package installer sequences payload discovery, extraction, shortcut
// registration and version bookkeeping for both install modes.
package installer

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mangyomi/installer/internal/archive"
	"github.com/mangyomi/installer/internal/config"
	"github.com/mangyomi/installer/internal/db"
	"github.com/mangyomi/installer/internal/shortcut"
	"github.com/mangyomi/installer/internal/types"
	"github.com/mangyomi/installer/internal/versioncache"
	"github.com/mangyomi/installer/internal/workerpool"
)

// ShortcutRegistrar creates OS shortcuts for an installed tree
type ShortcutRegistrar interface {
	Register(ctx context.Context, installPath string) error
}

// VersionRecorder records update bookkeeping for an installed tree
type VersionRecorder interface {
	Record(ctx context.Context, installPath string) error
}

// Orchestrator runs installs
type Orchestrator struct {
	cfg       *config.Config
	extractor archive.ExtractorInterface
	shortcuts ShortcutRegistrar
	recorder  VersionRecorder
	pool      *workerpool.Pool
	launch    func(exePath string) error

	retryInterval time.Duration
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

func WithExtractor(e archive.ExtractorInterface) Option {
	return func(o *Orchestrator) { o.extractor = e }
}

func WithShortcuts(s ShortcutRegistrar) Option {
	return func(o *Orchestrator) { o.shortcuts = s }
}

func WithRecorder(r VersionRecorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// WithPool runs extraction and shortcut registration on pool workers.
// Without a pool they run on the calling goroutine.
func WithPool(p *workerpool.Pool) Option {
	return func(o *Orchestrator) { o.pool = p }
}

func WithLauncher(launch func(exePath string) error) Option {
	return func(o *Orchestrator) { o.launch = launch }
}

// WithLockRetryInterval sets the first delay of the silent lock retry loop
func WithLockRetryInterval(d time.Duration) Option {
	return func(o *Orchestrator) { o.retryInterval = d }
}

// New creates an orchestrator. Unset collaborators get their real implementations.
func New(cfg *config.Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:           cfg,
		launch:        Launch,
		retryInterval: 250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.extractor == nil {
		o.extractor = archive.NewExtractor()
	}
	if o.shortcuts == nil {
		o.shortcuts = shortcut.NewRegistrar(shortcut.Options{AppName: cfg.AppName, ExeName: cfg.ExeName})
	}
	if o.recorder == nil {
		o.recorder = versioncache.NewRecorder(cfg.CacheDir, "", db.InstallModeInteractive)
	}
	return o
}

// Install performs an interactive install into installPath, reporting
// progress on the given channel. Extraction and shortcut failures abort the
// install; version bookkeeping failures are only logged.
func (o *Orchestrator) Install(ctx context.Context, installPath string, progress chan<- types.ProgressEvent) error {
	log.Infof("install requested: %s", installPath)

	req, err := o.Discover(installPath, true)
	if err != nil {
		log.Errorf("payload discovery failed: %v", err)
		return err
	}
	log.Infof("using %s payload %s", req.Kind, req.PayloadLocation)

	if err := provision(req.InstallPath); err != nil {
		log.Errorf("%v", err)
		return err
	}

	emit(progress, StatusExtracting, 10)
	if err := o.run(ctx, func() error {
		return o.extractor.Extract(ctx, req.PayloadLocation, req.InstallPath, req.Kind)
	}); err != nil {
		log.Errorf("extraction failed: %v", err)
		return err
	}
	log.Info("extraction completed")

	emit(progress, StatusShortcuts, 80)
	if err := o.run(ctx, func() error {
		return o.shortcuts.Register(ctx, req.InstallPath)
	}); err != nil {
		log.Errorf("shortcut creation failed: %v", err)
		return fmt.Errorf("shortcut creation failed: %w", err)
	}

	emit(progress, StatusUpdates, 90)
	if err := o.recorder.Record(ctx, req.InstallPath); err != nil {
		log.Warnf("version cache setup failed, continuing: %v", err)
	}

	emit(progress, StatusDone, 100)
	log.Infof("install into %s completed", req.InstallPath)
	return nil
}

// InstallSilent performs the self-update install. Only the 7z payload is
// accepted and shortcuts are left as the first install created them.
// Provisioning and extraction are retried while the directory is locked by
// the exiting application.
func (o *Orchestrator) InstallSilent(ctx context.Context, installPath string) error {
	log.Infof("silent install requested: %s", installPath)

	req, err := o.Discover(installPath, false)
	if err != nil {
		log.Errorf("payload discovery failed: %v", err)
		return err
	}
	log.Infof("using %s payload %s", req.Kind, req.PayloadLocation)

	err = o.withLockRetry(ctx, req.InstallPath, func() error {
		if err := provision(req.InstallPath); err != nil {
			return err
		}
		return o.extractor.Extract(ctx, req.PayloadLocation, req.InstallPath, req.Kind)
	})
	if err != nil {
		log.Errorf("silent install failed: %v", err)
		return err
	}
	log.Info("extraction completed")

	if err := o.recorder.Record(ctx, req.InstallPath); err != nil {
		log.Warnf("version cache setup failed, continuing: %v", err)
	}

	log.Infof("silent install into %s completed", req.InstallPath)
	return nil
}

// LaunchInstalled starts the installed executable if it exists. A missing
// executable is not an error.
func (o *Orchestrator) LaunchInstalled(installPath string) error {
	exePath := o.cfg.ExePath(installPath)
	if _, err := os.Stat(exePath); err != nil {
		log.Warnf("executable %s not found, not launching: %v", exePath, err)
		return nil
	}

	log.Infof("launching %s", exePath)
	return o.LaunchExecutable(exePath)
}

// LaunchExecutable starts exePath detached from the installer
func (o *Orchestrator) LaunchExecutable(exePath string) error {
	if err := o.launch(exePath); err != nil {
		return &IOError{Op: "launch", Path: exePath, Err: err}
	}
	return nil
}

func (o *Orchestrator) run(ctx context.Context, fn func() error) error {
	if o.pool == nil {
		return fn()
	}
	return o.pool.Do(ctx, fn)
}

func provision(installPath string) error {
	log.Debugf("creating install directory %s", installPath)
	if err := os.MkdirAll(installPath, 0o755); err != nil {
		return &IOError{Op: "create install directory", Path: installPath, Err: err}
	}
	return nil
}
