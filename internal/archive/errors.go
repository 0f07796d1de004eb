package archive

import (
	"errors"
	"fmt"
)

// ErrUnsafePath is returned for entries that would land outside the destination.
var ErrUnsafePath = errors.New("entry path escapes destination directory")

// ExtractError carries the archive (and entry, when known) that failed.
type ExtractError struct {
	Archive string
	Entry   string
	Err     error
}

func (e *ExtractError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("extraction failed for %s: %v", e.Archive, e.Err)
	}
	return fmt.Sprintf("extraction failed for %s (entry %q): %v", e.Archive, e.Entry, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}
