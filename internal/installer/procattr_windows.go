package installer

import (
	"os/exec"
	"syscall"
)

// setDetachedProcAttr starts the application in its own process group,
// detached from the installer.
func setDetachedProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | 0x00000008, // 0x00000008 is DETACHED_PROCESS
	}
}
