//go:build !windows

package installer

import (
	"errors"
	"syscall"
)

// isLockError reports whether err means another process still holds a file busy
func isLockError(err error) bool {
	return errors.Is(err, syscall.EBUSY) || errors.Is(err, syscall.ETXTBSY)
}
