package installer

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/mangyomi/installer/internal/types"
)

const (
	sevenZipPayload = "app.7z"
	zipPayload      = "app.zip"
)

// Discover locates the payload for an install into installPath. app.7z wins
// when it is larger than the configured plausibility threshold; otherwise
// app.zip is used if allowZip is set.
func (o *Orchestrator) Discover(installPath string, allowZip bool) (types.InstallRequest, error) {
	sevenZip := filepath.Join(o.cfg.ResourceDir, sevenZipPayload)
	info, err := os.Stat(sevenZip)
	switch {
	case err != nil:
		log.Debugf("no 7z payload at %s: %v", sevenZip, err)
	case info.IsDir():
		log.Warnf("7z payload %s is a directory, ignoring", sevenZip)
	case info.Size() <= o.cfg.MinPayloadSize:
		log.Warnf("7z payload %s is only %d bytes, treating it as a stub", sevenZip, info.Size())
	default:
		return types.InstallRequest{InstallPath: installPath, PayloadLocation: sevenZip, Kind: types.SevenZip}, nil
	}

	if allowZip {
		zip := filepath.Join(o.cfg.ResourceDir, zipPayload)
		if info, err := os.Stat(zip); err == nil && !info.IsDir() {
			return types.InstallRequest{InstallPath: installPath, PayloadLocation: zip, Kind: types.Zip}, nil
		}
		log.Debugf("no zip payload at %s", zip)
	}

	return types.InstallRequest{}, fmt.Errorf("%w in %s", ErrPayloadNotFound, o.cfg.ResourceDir)
}
