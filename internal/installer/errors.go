package installer

import (
	"errors"
	"fmt"
	"time"
)

// ErrPayloadNotFound is returned when neither app.7z nor app.zip is usable
var ErrPayloadNotFound = errors.New("installer payload not found (app.7z or app.zip)")

// IOError wraps a failed directory or file operation
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// StillLockedError is returned when the install directory stayed locked for
// the whole retry window of a silent install.
type StillLockedError struct {
	Path   string
	Waited time.Duration
	Err    error
}

func (e *StillLockedError) Error() string {
	return fmt.Sprintf("install directory %s still locked after %v: %v", e.Path, e.Waited.Round(time.Millisecond), e.Err)
}

func (e *StillLockedError) Unwrap() error {
	return e.Err
}
