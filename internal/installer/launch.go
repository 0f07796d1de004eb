package installer

import (
	"os/exec"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Launch starts exePath detached from the installer so it survives our exit
func Launch(exePath string) error {
	cmd := exec.Command(exePath)
	cmd.Dir = filepath.Dir(exePath)
	setDetachedProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return err
	}
	log.Infof("launched %s with PID %d", exePath, cmd.Process.Pid)

	// Release the process so the OS can fully detach it
	if err := cmd.Process.Release(); err != nil {
		log.Warnf("failed to release launched process: %v", err)
	}
	return nil
}
