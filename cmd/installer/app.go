package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/mangyomi/installer/internal/app"
	"github.com/mangyomi/installer/internal/types"
)

// progressEvent is the front-end event name carrying types.ProgressEvent
const progressEvent = "install-progress"

// App struct holds the Wails application context and provides
// methods that can be called from the frontend.
type App struct {
	ctx context.Context
	ic  *app.InstallerContext

	emit func(ctx context.Context, name string, data ...interface{})
	exit func(code int)
}

// NewApp creates a new App instance.
func NewApp(ic *app.InstallerContext) *App {
	return &App{
		ctx:  context.Background(),
		ic:   ic,
		emit: runtime.EventsEmit,
		exit: os.Exit,
	}
}

// startup is called when the app starts.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Install installs into installPath, streaming progress to the frontend.
// The returned error message is shown to the user as-is.
func (a *App) Install(installPath string) error {
	progress := make(chan types.ProgressEvent, 8)
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		for ev := range progress {
			a.emit(a.ctx, progressEvent, ev)
		}
	}()

	err := a.ic.Orchestrator.Install(a.ctx, installPath, progress)
	close(progress)
	<-forwarded
	return err
}

// GetDefaultInstallPath returns the per-user install directory to prefill.
func (a *App) GetDefaultInstallPath() string {
	return a.ic.Config.DefaultInstallPath()
}

// LaunchInstalledApp starts the installed application and quits the installer.
func (a *App) LaunchInstalledApp(exePath string) error {
	if err := a.ic.Orchestrator.LaunchExecutable(exePath); err != nil {
		log.Errorf("failed to launch app: %v", err)
		return err
	}
	log.Info("application launched, exiting installer")
	a.ic.Close(context.Background())
	a.exit(0)
	return nil
}
