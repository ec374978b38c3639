//go:build unix

package procdir

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// classifySignalError maps kill(2) failures onto the package sentinels.
// Unrecognised errors are returned unchanged.
func classifySignalError(err error) error {
	switch {
	case errors.Is(err, os.ErrProcessDone), errors.Is(err, unix.ESRCH):
		return ErrNotFound
	case errors.Is(err, unix.EPERM), errors.Is(err, os.ErrPermission):
		return ErrPermissionDenied
	default:
		return err
	}
}
