//go:build !windows

package installer

import (
	"os/exec"
	"syscall"
)

// setDetachedProcAttr starts the application in a new session so it is not
// tied to the installer's process group.
func setDetachedProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
}
