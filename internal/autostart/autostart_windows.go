//go:build windows

package autostart

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const runKey = `Software\Microsoft\Windows\CurrentVersion\Run`

// windowsManager stores the login command under the user's Run key.
type windowsManager struct{}

// New returns a Manager using HKEY_CURRENT_USER\...\Run.
func New() Manager {
	return &windowsManager{}
}

func (w *windowsManager) Location() string { return `HKCU\` + runKey + `\` + AppName }

func (w *windowsManager) IsInstalled() (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("opening Run key: %w", err)
	}
	defer k.Close()

	_, _, err = k.GetStringValue(AppName)
	if errors.Is(err, registry.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading Run value: %w", err)
	}
	return true, nil
}

func (w *windowsManager) Install(execPath string) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("opening Run key: %w", err)
	}
	defer k.Close()

	if err := k.SetStringValue(AppName, render(`"{execPath}"`, map[string]string{"execPath": execPath})); err != nil {
		return fmt.Errorf("writing Run value: %w", err)
	}
	return nil
}

func (w *windowsManager) Uninstall() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("opening Run key: %w", err)
	}
	defer k.Close()

	if err := k.DeleteValue(AppName); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("deleting Run value: %w", err)
	}
	return nil
}
