//go:build windows

package shortcut

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"syscall"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
)

const linkExt = ".lnk"

// sFalse is returned by CoInitializeEx when COM is already initialized on the thread
const sFalse = 0x00000001

type shellLinker struct{}

// NewSystemLinker returns a linker backed by WScript.Shell
func NewSystemLinker() Linker {
	return shellLinker{}
}

// CreateLink drives WScript.Shell in-process; if COM is unusable it falls
// back to a hidden PowerShell that never opens a console window.
func (shellLinker) CreateLink(ctx context.Context, link Link) error {
	err := createWithCOM(link)
	if err == nil {
		return nil
	}
	log.Warnf("COM shortcut creation failed for %s, falling back to powershell: %v", link.Path, err)
	return createWithPowerShell(ctx, link)
}

func createWithCOM(link Link) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			return fmt.Errorf("failed to initialize COM: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return fmt.Errorf("failed to create WScript.Shell: %w", err)
	}
	defer unknown.Release()

	shell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("failed to query WScript.Shell: %w", err)
	}
	defer shell.Release()

	lnkVar, err := oleutil.CallMethod(shell, "CreateShortcut", link.Path)
	if err != nil {
		return fmt.Errorf("CreateShortcut failed: %w", err)
	}
	lnk := lnkVar.ToIDispatch()
	defer lnk.Release()

	props := []struct {
		name  string
		value string
	}{
		{"TargetPath", link.Target},
		{"WorkingDirectory", link.WorkingDir},
		{"IconLocation", link.Icon + ",0"},
	}
	for _, p := range props {
		if _, err := oleutil.PutProperty(lnk, p.name, p.value); err != nil {
			return fmt.Errorf("failed to set %s: %w", p.name, err)
		}
	}

	if _, err := oleutil.CallMethod(lnk, "Save"); err != nil {
		return fmt.Errorf("failed to save shortcut: %w", err)
	}
	return nil
}

func createWithPowerShell(ctx context.Context, link Link) error {
	cmd := exec.CommandContext(ctx, "powershell",
		"-NoProfile", "-NonInteractive", "-WindowStyle", "Hidden",
		"-Command", powershellScript(link))
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("powershell shortcut creation failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
