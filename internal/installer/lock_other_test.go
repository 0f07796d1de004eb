//go:build !windows

package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func busyErr(path string) error {
	return &os.PathError{Op: "open", Path: path, Err: syscall.ETXTBSY}
}

func TestIsLockError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"ebusy", &os.PathError{Op: "open", Path: "x", Err: syscall.EBUSY}, true},
		{"etxtbsy", busyErr("x"), true},
		{"wrapped", fmt.Errorf("extract: %w", busyErr("x")), true},
		{"in IOError", &IOError{Op: "create install directory", Path: "x", Err: syscall.EBUSY}, true},
		{"permission", os.ErrPermission, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLockError(tt.err))
		})
	}
}

func TestInstallSilentRetriesWhileLocked(t *testing.T) {
	cfg := testConfig(t)
	cfg.LockWait = 5 * time.Second
	writePayload7z(t, cfg, 4096)
	installPath := filepath.Join(t.TempDir(), "Mangyomi")

	extractor := &fakeExtractor{fn: func(call int, _, destDir string) error {
		if call < 3 {
			return busyErr(filepath.Join(destDir, "Mangyomi.exe"))
		}
		return nil
	}}
	o := New(cfg, WithExtractor(extractor), WithRecorder(&fakeRecorder{}), WithLockRetryInterval(5*time.Millisecond))

	require.NoError(t, o.InstallSilent(context.Background(), installPath))
	assert.Equal(t, 3, extractor.Calls())
}

func TestInstallSilentGivesUpWhenStillLocked(t *testing.T) {
	cfg := testConfig(t)
	cfg.LockWait = 100 * time.Millisecond
	writePayload7z(t, cfg, 4096)
	installPath := filepath.Join(t.TempDir(), "Mangyomi")

	extractor := &fakeExtractor{fn: func(_ int, _, destDir string) error {
		return busyErr(filepath.Join(destDir, "Mangyomi.exe"))
	}}
	recorder := &fakeRecorder{}
	o := New(cfg, WithExtractor(extractor), WithRecorder(recorder), WithLockRetryInterval(5*time.Millisecond))

	err := o.InstallSilent(context.Background(), installPath)

	var locked *StillLockedError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, installPath, locked.Path)
	assert.ErrorIs(t, err, syscall.ETXTBSY)
	assert.Greater(t, extractor.Calls(), 1)
	assert.Zero(t, recorder.calls)
}

func TestInstallSilentDoesNotRetryOtherErrors(t *testing.T) {
	cfg := testConfig(t)
	cfg.LockWait = 5 * time.Second
	writePayload7z(t, cfg, 4096)
	corrupt := errors.New("corrupt header")

	extractor := &fakeExtractor{fn: func(int, string, string) error { return corrupt }}
	o := New(cfg, WithExtractor(extractor), WithRecorder(&fakeRecorder{}), WithLockRetryInterval(5*time.Millisecond))

	err := o.InstallSilent(context.Background(), filepath.Join(t.TempDir(), "Mangyomi"))

	require.ErrorIs(t, err, corrupt)
	assert.Equal(t, 1, extractor.Calls())
}
