//go:build linux

package autostart

import (
	"os"
	"path/filepath"
)

// desktopTemplate is an XDG autostart entry.
const desktopTemplate = `[Desktop Entry]
Type=Application
Name=CPU Tray
Comment=Top CPU processes in the system tray
Exec="{execPath}"
Terminal=false
X-GNOME-Autostart-enabled=true
`

// New returns a Manager writing $XDG_CONFIG_HOME/autostart/cputray.desktop.
func New() Manager {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return newDesktopManager(filepath.Join(dir, "autostart", AppName+".desktop"))
}

func newDesktopManager(path string) *fileManager {
	return &fileManager{path: path, template: desktopTemplate}
}
