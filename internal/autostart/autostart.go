// Package autostart registers the tray monitor to start at user login.
package autostart

import (
	"errors"
	"strings"
)

// AppName is the identifier used for login items.
const AppName = "cputray"

// ErrUnsupported is returned on platforms without a login item mechanism.
var ErrUnsupported = errors.New("autostart not supported on this platform")

// Manager provides platform-specific login item installation. Everything
// is per-user; no elevation is needed.
type Manager interface {
	IsInstalled() (bool, error)
	Install(execPath string) error
	Uninstall() error
	Location() string
}

// render substitutes {key} placeholders in tmpl.
func render(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
