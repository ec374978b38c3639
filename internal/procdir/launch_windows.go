//go:build windows

package procdir

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// launch hands the name to the shell's start verb, which resolves
// App Paths registrations as well as executables on PATH.
func launch(ctx context.Context, name string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "cmd", "/C", "start", "", name)
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
