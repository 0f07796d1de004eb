package db

import (
	"time"
)

// InstallMode records which entry point performed the install
type InstallMode string

const (
	InstallModeInteractive InstallMode = "interactive"
	InstallModeSilent      InstallMode = "silent"
)

// InstallRecord represents one completed install
type InstallRecord struct {
	ID          int64
	Version     string
	InstallPath string
	SFXPath     string // empty when not launched from a self-extracting stub
	Mode        InstallMode
	InstalledAt time.Time
}
