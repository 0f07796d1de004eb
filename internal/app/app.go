// Package app builds the installer's shared runtime state once at startup so
// both the silent and the interactive entry points work from the same values.
package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/mangyomi/installer/internal/config"
	"github.com/mangyomi/installer/internal/db"
	"github.com/mangyomi/installer/internal/installer"
	"github.com/mangyomi/installer/internal/types"
	"github.com/mangyomi/installer/internal/versioncache"
	"github.com/mangyomi/installer/internal/workerpool"
)

// InstallerContext carries everything one installer process needs. It is
// built once in main and never mutated afterwards.
type InstallerContext struct {
	Config       *config.Config
	Args         types.ProcessArguments
	SFXPath      string
	Pool         *workerpool.Pool
	Orchestrator *installer.Orchestrator
}

// New wires the orchestrator for the given arguments. Extra options are
// applied after the defaults, which lets tests swap collaborators.
func New(cfg *config.Config, args types.ProcessArguments, opts ...installer.Option) *InstallerContext {
	mode := db.InstallModeInteractive
	if args.Silent {
		mode = db.InstallModeSilent
	}

	log.Infof("mangyomi installer starting...")
	log.Infof("  Resources: %s", cfg.ResourceDir)
	log.Infof("  Update cache: %s", cfg.CacheDir)
	if args.SFXPath != "" {
		log.Infof("  SFX path: %s", args.SFXPath)
	}

	ic := &InstallerContext{
		Config:  cfg,
		Args:    args,
		SFXPath: args.SFXPath,
	}

	base := []installer.Option{
		installer.WithRecorder(versioncache.NewRecorder(cfg.CacheDir, args.SFXPath, mode)),
	}
	// Silent installs run inline, the pool only serves the front end
	if !args.Silent {
		ic.Pool = workerpool.New(cfg.Workers, cfg.Workers*2)
		base = append(base, installer.WithPool(ic.Pool))
	}

	ic.Orchestrator = installer.New(cfg, append(base, opts...)...)
	return ic
}

// Close stops the worker pool, waiting for running tasks until ctx ends.
func (ic *InstallerContext) Close(ctx context.Context) {
	if ic.Pool != nil {
		ic.Pool.Drain(ctx)
	}
}
