//go:build darwin

package autostart

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const agentLabel = "com.cputray.agent"

const plistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{label}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{execPath}</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>StandardOutPath</key>
    <string>{logDir}/cputray.stdout.log</string>
    <key>StandardErrorPath</key>
    <string>{logDir}/cputray.stderr.log</string>
</dict>
</plist>
`

// New returns a Manager for a LaunchAgent in ~/Library/LaunchAgents.
func New() Manager {
	home, _ := os.UserHomeDir()
	logDir := filepath.Join(home, "Library", "Logs", AppName)
	return &fileManager{
		path:     filepath.Join(home, "Library", "LaunchAgents", agentLabel+".plist"),
		template: plistTemplate,
		vars:     map[string]string{"label": agentLabel, "logDir": logDir},
		afterInstall: func(path string) error {
			if err := os.MkdirAll(logDir, 0755); err != nil {
				return fmt.Errorf("creating log directory: %w", err)
			}
			if err := exec.Command("launchctl", "load", "-w", path).Run(); err != nil {
				return fmt.Errorf("loading %s: %w", path, err)
			}
			return nil
		},
		beforeUninstall: func(path string) {
			_ = exec.Command("launchctl", "unload", path).Run()
		},
	}
}
