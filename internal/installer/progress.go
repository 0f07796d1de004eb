package installer

import (
	log "github.com/sirupsen/logrus"

	"github.com/mangyomi/installer/internal/types"
)

// Progress steps reported to the front end, in order
const (
	StatusExtracting = "Extracting files..."
	StatusShortcuts  = "Creating shortcuts..."
	StatusUpdates    = "Setting up updates..."
	StatusDone       = "Done!"
)

// emit sends a progress event without ever blocking the install. A nil
// channel or one whose consumer has fallen behind just drops the event.
func emit(progress chan<- types.ProgressEvent, status string, percent int) {
	log.Infof("progress %d%%: %s", percent, status)
	if progress == nil {
		return
	}

	select {
	case progress <- types.ProgressEvent{Status: status, Percent: percent}:
	default:
		log.Debugf("progress consumer not ready, dropped %d%% event", percent)
	}
}
