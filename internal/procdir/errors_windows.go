//go:build windows

package procdir

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// classifySignalError maps OpenProcess/TerminateProcess failures onto the
// package sentinels. Unrecognised errors are returned unchanged.
func classifySignalError(err error) error {
	switch {
	case errors.Is(err, os.ErrProcessDone), errors.Is(err, windows.ERROR_INVALID_PARAMETER):
		return ErrNotFound
	case errors.Is(err, windows.ERROR_ACCESS_DENIED), errors.Is(err, os.ErrPermission):
		return ErrPermissionDenied
	default:
		return err
	}
}
