// Package shortcut creates the desktop and start menu launch points for the
// installed executable.
package shortcut

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"

	"github.com/mangyomi/installer/internal/paths"
)

// Link describes one shortcut file to create
type Link struct {
	Path       string // shortcut file
	Name       string // display name
	Target     string
	WorkingDir string
	Icon       string
}

// Linker materializes a Link using the platform shell
type Linker interface {
	CreateLink(ctx context.Context, link Link) error
}

// ShortcutError carries the shortcut path that could not be created
type ShortcutError struct {
	Path string
	Err  error
}

func (e *ShortcutError) Error() string {
	return fmt.Sprintf("failed to create shortcut %s: %v", e.Path, e.Err)
}

func (e *ShortcutError) Unwrap() error {
	return e.Err
}

// Options configures a Registrar. Empty fields fall back to platform defaults.
type Options struct {
	AppName     string
	ExeName     string
	DesktopDir  string
	LauncherDir string
	Linker      Linker
}

// Registrar registers desktop and launcher shortcuts
type Registrar struct {
	appName     string
	exeName     string
	desktopDir  string
	launcherDir string
	linker      Linker
}

// NewRegistrar creates a new shortcut registrar
func NewRegistrar(opts Options) *Registrar {
	r := &Registrar{
		appName:     opts.AppName,
		exeName:     opts.ExeName,
		desktopDir:  opts.DesktopDir,
		launcherDir: opts.LauncherDir,
		linker:      opts.Linker,
	}
	if r.desktopDir == "" {
		r.desktopDir = paths.DesktopDir()
	}
	if r.launcherDir == "" {
		r.launcherDir = paths.LauncherDir(r.appName)
	}
	if r.linker == nil {
		r.linker = NewSystemLinker()
	}
	return r
}

// Register creates both shortcuts for the executable under installPath.
// A missing executable is not an error: the install just has no shortcuts.
// Both shortcuts are always attempted and every failure is reported.
func (r *Registrar) Register(ctx context.Context, installPath string) error {
	exePath := filepath.Join(installPath, r.exeName)
	if _, err := os.Stat(exePath); err != nil {
		log.Warnf("executable %s not found, skipping shortcuts: %v", exePath, err)
		return nil
	}

	if err := os.MkdirAll(r.launcherDir, 0o755); err != nil {
		log.Warnf("failed to create launcher directory %s: %v", r.launcherDir, err)
	}

	var merr *multierror.Error
	for _, dir := range []string{r.desktopDir, r.launcherDir} {
		link := Link{
			Path:       filepath.Join(dir, r.appName+linkExt),
			Name:       r.appName,
			Target:     exePath,
			WorkingDir: installPath,
			Icon:       exePath,
		}

		log.Infof("creating shortcut %s -> %s", link.Path, link.Target)
		if err := r.linker.CreateLink(ctx, link); err != nil {
			log.Errorf("shortcut %s failed: %v", link.Path, err)
			merr = multierror.Append(merr, &ShortcutError{Path: link.Path, Err: err})
		}
	}

	if merr != nil {
		merr.ErrorFormat = joinErrors
	}
	return merr.ErrorOrNil()
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
