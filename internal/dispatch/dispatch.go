// Package dispatch turns the process arguments into one of the two install
// modes and runs the headless one.
package dispatch

import (
	"context"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/mangyomi/installer/internal/app"
	"github.com/mangyomi/installer/internal/types"
)

const (
	sfxPathFlag     = "sfx-path"
	silentFlag      = "silent"
	installPathFlag = "install-path"
)

// Mode is the execution path chosen for this process
type Mode int

const (
	ModeInteractive Mode = iota
	ModeSilent
)

func (m Mode) String() string {
	if m == ModeSilent {
		return "silent"
	}
	return "interactive"
}

// Exit codes for the silent path
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ParseArguments reads the installer flags from args (without the program
// name). Unknown flags are ignored. A flag missing its value is logged and
// left unset; everything parsed before it is kept.
func ParseArguments(args []string) types.ProcessArguments {
	log.Infof("installer started with %d arguments: %q", len(args), args)

	var parsed types.ProcessArguments
	flags := pflag.NewFlagSet("mangyomi-installer", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.StringVar(&parsed.SFXPath, sfxPathFlag, "", "path of the self-extracting stub that launched the installer")
	flags.BoolVar(&parsed.Silent, silentFlag, false, "install without a window, for self-updates")
	flags.StringVar(&parsed.InstallPath, installPathFlag, "", "destination directory for a silent install")

	if err := flags.Parse(dropMissingValues(args)); err != nil {
		log.Warnf("failed to parse arguments: %v", err)
	}

	flags.Visit(func(f *pflag.Flag) {
		log.Infof("argument --%s set to: %s", f.Name, f.Value.String())
	})
	return parsed
}

// dropMissingValues removes a value flag that is directly followed by another
// flag. pflag would otherwise take that flag as the value; this way the flag
// is still parsed on its own and the value is left unset.
func dropMissingValues(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if (arg == "--"+sfxPathFlag || arg == "--"+installPathFlag) &&
			i+1 < len(args) && strings.HasPrefix(args[i+1], "--") {
			log.Warnf("argument %s is missing its value, ignoring it", arg)
			continue
		}
		out = append(out, arg)
	}
	return out
}

// SelectMode picks silent mode only when --silent came with an install path
func SelectMode(args types.ProcessArguments) Mode {
	if args.Silent && args.InstallPath != "" {
		return ModeSilent
	}
	if args.Silent {
		log.Warn("--silent given without --install-path, starting the interactive installer")
	}
	return ModeInteractive
}

// RunSilent performs the headless self-update install and returns the exit
// code for the process. The settle delay gives the application instance that
// spawned us time to exit and release its file locks.
func RunSilent(ctx context.Context, ic *app.InstallerContext) int {
	installPath := ic.Args.InstallPath
	log.Infof("running silent installation to: %s", installPath)

	if delay := ic.Config.SettleDelay; delay > 0 {
		log.Infof("waiting %v for the previous instance to close...", delay)
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			log.Errorf("silent installation aborted while waiting: %v", ctx.Err())
			return ExitFailure
		}
		log.Info("proceeding with extraction...")
	}

	if err := ic.Orchestrator.InstallSilent(ctx, installPath); err != nil {
		log.Errorf("FAILED: silent installation: %v", err)
		return ExitFailure
	}

	if err := ic.Orchestrator.LaunchInstalled(installPath); err != nil {
		log.Warnf("failed to launch app: %v", err)
	}

	log.Info("silent installation complete")
	return ExitSuccess
}
