package main

import (
	"context"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/windows"

	"github.com/mangyomi/installer/internal/app"
	"github.com/mangyomi/installer/internal/config"
	"github.com/mangyomi/installer/internal/diaglog"
	"github.com/mangyomi/installer/internal/dispatch"
	"github.com/mangyomi/installer/internal/webfs"
)

// Version info - injected at build time via ldflags
var version = "dev"

func main() {
	cfg := config.Load()
	logFile := diaglog.Init(cfg.LogLevel, cfg.LogPath)
	log.Infof("mangyomi installer %s", version)

	args := dispatch.ParseArguments(os.Args[1:])
	ic := app.New(cfg, args)

	if dispatch.SelectMode(args) == dispatch.ModeSilent {
		code := dispatch.RunSilent(context.Background(), ic)
		ic.Close(context.Background())
		_ = logFile.Close()
		os.Exit(code)
	}

	assets, err := webfs.Assets()
	if err != nil {
		log.Fatalf("Failed to load front end assets: %v", err)
	}

	installerApp := NewApp(ic)

	err = wails.Run(&options.App{
		Title:         cfg.AppName + " Setup",
		Width:         640,
		Height:        460,
		DisableResize: true,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup: installerApp.startup,
		OnShutdown: func(ctx context.Context) {
			log.Info("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			ic.Close(shutdownCtx)
			log.Info("Shutdown complete")
		},
		Bind: []interface{}{
			installerApp,
		},
		Windows: &windows.Options{
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
		},
	})

	if err != nil {
		log.Errorf("Wails error: %v", err)
		_ = logFile.Close()
		os.Exit(1)
	}
	_ = logFile.Close()
}
