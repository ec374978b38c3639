//go:build darwin

package procdir

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// launch opens an application bundle through LaunchServices.
func launch(ctx context.Context, name string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "open", "-a", name)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		reason := strings.TrimSpace(stderr.String())
		if reason == "" {
			reason = err.Error()
		}
		return &LaunchError{Name: name, Reason: reason}
	}
	return nil
}
