//go:build windows

package installer

import (
	"errors"

	"golang.org/x/sys/windows"
)

// isLockError reports whether err means another process still holds a file open
func isLockError(err error) bool {
	return errors.Is(err, windows.ERROR_SHARING_VIOLATION) ||
		errors.Is(err, windows.ERROR_LOCK_VIOLATION) ||
		errors.Is(err, windows.ERROR_USER_MAPPED_FILE)
}
