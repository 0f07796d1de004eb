package dispatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangyomi/installer/internal/app"
	"github.com/mangyomi/installer/internal/config"
	"github.com/mangyomi/installer/internal/installer"
	"github.com/mangyomi/installer/internal/types"
)

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want types.ProcessArguments
	}{
		{"none", nil, types.ProcessArguments{}},
		{
			"sfx path only",
			[]string{"--sfx-path", `C:\Users\me\Downloads\Mangyomi-Setup.exe`},
			types.ProcessArguments{SFXPath: `C:\Users\me\Downloads\Mangyomi-Setup.exe`},
		},
		{
			"silent update",
			[]string{"--silent", "--install-path", `C:\Out`},
			types.ProcessArguments{Silent: true, InstallPath: `C:\Out`},
		},
		{
			"equals form",
			[]string{"--install-path=/opt/mangyomi", "--silent"},
			types.ProcessArguments{Silent: true, InstallPath: "/opt/mangyomi"},
		},
		{
			"unknown flags ignored",
			[]string{"--verbose", "--silent", "--channel=beta", "--install-path", "/opt/m"},
			types.ProcessArguments{Silent: true, InstallPath: "/opt/m"},
		},
		{
			"positional arguments ignored",
			[]string{"stray", "--silent"},
			types.ProcessArguments{Silent: true},
		},
		{
			"sfx path followed by a flag",
			[]string{"--sfx-path", "--silent", "--install-path", "/o"},
			types.ProcessArguments{Silent: true, InstallPath: "/o"},
		},
		{
			"install path followed by a flag",
			[]string{"--install-path", "--silent"},
			types.ProcessArguments{Silent: true},
		},
		{
			"missing value left unset",
			[]string{"--silent", "--install-path"},
			types.ProcessArguments{Silent: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArguments(tt.args))
		})
	}
}

func TestSelectMode(t *testing.T) {
	tests := []struct {
		name string
		args types.ProcessArguments
		want Mode
	}{
		{"no flags", types.ProcessArguments{}, ModeInteractive},
		{"silent with path", types.ProcessArguments{Silent: true, InstallPath: `C:\Out`}, ModeSilent},
		{"silent without path", types.ProcessArguments{Silent: true}, ModeInteractive},
		{"path without silent", types.ProcessArguments{InstallPath: `C:\Out`}, ModeInteractive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectMode(tt.args))
		})
	}
}

type fakeExtractor struct{}

func (fakeExtractor) Extract(_ context.Context, _, destDir string, kind types.ArchiveKind) error {
	if kind != types.SevenZip {
		return os.ErrInvalid
	}
	return os.WriteFile(filepath.Join(destDir, "Mangyomi.exe"), []byte("MZ"), 0o755)
}

type countingRegistrar struct {
	calls int
}

func (r *countingRegistrar) Register(context.Context, string) error {
	r.calls++
	return nil
}

type silentFixture struct {
	ic         *app.InstallerContext
	installDir string
	launched   []string
	registrar  *countingRegistrar
}

func newSilentFixture(t *testing.T, with7z bool) *silentFixture {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		AppName:        "Mangyomi",
		ExeName:        "Mangyomi.exe",
		ResourceDir:    filepath.Join(root, "resources"),
		CacheDir:       filepath.Join(root, "update-cache"),
		MinPayloadSize: 1000,
		SettleDelay:    10 * time.Millisecond,
		Workers:        1,
	}
	require.NoError(t, os.MkdirAll(cfg.ResourceDir, 0o755))
	if with7z {
		require.NoError(t, os.WriteFile(filepath.Join(cfg.ResourceDir, "app.7z"), make([]byte, 2048), 0o644))
	}

	f := &silentFixture{
		installDir: filepath.Join(root, "Out"),
		registrar:  &countingRegistrar{},
	}
	args := types.ProcessArguments{Silent: true, InstallPath: f.installDir}
	f.ic = app.New(cfg, args,
		installer.WithExtractor(fakeExtractor{}),
		installer.WithShortcuts(f.registrar),
		installer.WithLauncher(func(exePath string) error {
			f.launched = append(f.launched, exePath)
			return nil
		}),
	)
	t.Cleanup(func() { f.ic.Close(context.Background()) })
	return f
}

func TestRunSilentInstallsAndLaunches(t *testing.T) {
	f := newSilentFixture(t, true)

	code := RunSilent(context.Background(), f.ic)

	assert.Equal(t, ExitSuccess, code)
	assert.FileExists(t, filepath.Join(f.installDir, "Mangyomi.exe"))
	assert.Equal(t, []string{filepath.Join(f.installDir, "Mangyomi.exe")}, f.launched)
	assert.Zero(t, f.registrar.calls)
}

func TestRunSilentWithoutPayload(t *testing.T) {
	f := newSilentFixture(t, false)

	code := RunSilent(context.Background(), f.ic)

	assert.Equal(t, ExitFailure, code)
	assert.Empty(t, f.launched)
	assert.Zero(t, f.registrar.calls)
}

func TestRunSilentCancelledDuringSettleDelay(t *testing.T) {
	f := newSilentFixture(t, true)
	f.ic.Config.SettleDelay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, ExitFailure, RunSilent(ctx, f.ic))
	assert.NoDirExists(t, f.installDir)
}

func TestRunSilentExtractsSevenZipPayload(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{
		AppName:        "Mangyomi",
		ExeName:        "Mangyomi.exe",
		ResourceDir:    filepath.Join(root, "resources"),
		CacheDir:       filepath.Join(root, "update-cache"),
		MinPayloadSize: 64,
		Workers:        1,
	}
	require.NoError(t, os.MkdirAll(cfg.ResourceDir, 0o755))
	payload, err := os.ReadFile(filepath.Join("..", "archive", "testdata", "app.7z"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.ResourceDir, "app.7z"), payload, 0o644))

	installDir := filepath.Join(root, "Out")
	var launched []string
	ic := app.New(cfg, ParseArguments([]string{"--silent", "--install-path", installDir}),
		installer.WithShortcuts(&countingRegistrar{}),
		installer.WithLauncher(func(exePath string) error {
			launched = append(launched, exePath)
			return nil
		}),
	)
	defer ic.Close(context.Background())

	require.Equal(t, ModeSilent, SelectMode(ic.Args))
	assert.Equal(t, ExitSuccess, RunSilent(context.Background(), ic))

	exe, err := os.ReadFile(filepath.Join(installDir, "Mangyomi.exe"))
	require.NoError(t, err)
	assert.Equal(t, "MZ\x90\x00\x03\x00mangyomi test binary\n", string(exe))
	assert.Equal(t, []string{filepath.Join(installDir, "Mangyomi.exe")}, launched)
	assert.FileExists(t, filepath.Join(installDir, "version.txt"))
}

func TestSelectModeWhenSFXPathLacksValue(t *testing.T) {
	args := ParseArguments([]string{"--sfx-path", "--silent", "--install-path", `C:\Out`})

	assert.Empty(t, args.SFXPath)
	assert.Equal(t, ModeSilent, SelectMode(args))
}
