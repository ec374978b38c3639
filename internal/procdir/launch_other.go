//go:build !darwin && !windows

package procdir

import (
	"context"
	"fmt"
	"os/exec"
)

// launch resolves name on PATH and starts it detached from this process.
// The child is not waited on.
func launch(_ context.Context, name string) error {
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return &LaunchError{Name: name, Reason: err.Error()}
	}
	return cmd.Process.Release()
}
