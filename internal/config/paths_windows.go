//go:build windows

package config

import (
	"os"
	"path/filepath"
)

func configSearchPaths() []string {
	roaming := os.Getenv("APPDATA")
	local := os.Getenv("LOCALAPPDATA")
	return []string{
		filepath.Join(roaming, "cputray", "config.yaml"),
		filepath.Join(local, "cputray", "config.yaml"),
	}
}
