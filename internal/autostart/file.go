//go:build !windows

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
)

// fileManager installs a login item as a single file rendered from a
// template. afterInstall and beforeUninstall hook the platform's loader.
type fileManager struct {
	path            string
	template        string
	vars            map[string]string
	afterInstall    func(path string) error
	beforeUninstall func(path string)
}

func (f *fileManager) Location() string { return f.path }

func (f *fileManager) IsInstalled() (bool, error) {
	_, err := os.Stat(f.path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", f.path, err)
	}
	return true, nil
}

func (f *fileManager) Install(execPath string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(f.path), err)
	}
	vars := map[string]string{"execPath": execPath}
	for k, v := range f.vars {
		vars[k] = v
	}
	if err := os.WriteFile(f.path, []byte(render(f.template, vars)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	if f.afterInstall != nil {
		return f.afterInstall(f.path)
	}
	return nil
}

func (f *fileManager) Uninstall() error {
	if f.beforeUninstall != nil {
		f.beforeUninstall(f.path)
	}
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", f.path, err)
	}
	return nil
}
