//go:build !windows

package config

import (
	"os"
	"path/filepath"
)

func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(home, ".cputray", "config.yaml"),
		filepath.Join(home, ".config", "cputray", "config.yaml"),
		"/etc/cputray/config.yaml",
	}
}
