//go:build darwin

// macOS Platform implementation.
// Status items live in the menu bar at the top right of the main display.
package platform

import "github.com/vitalis-app/cputray/internal/geometry"

// darwinTrayInset is the assumed distance of our status item from the
// right screen edge; the system does not report status item frames.
const darwinTrayInset = 100.0

// DarwinPlatform implements Platform for macOS.
type DarwinPlatform struct{}

// New creates a new macOS platform instance.
func New() Platform {
	return &DarwinPlatform{}
}

// Name returns the platform identifier.
func (p *DarwinPlatform) Name() string { return "darwin" }

// EstimateTrayAnchor places the icon in the menu bar, inset from the right edge.
func (p *DarwinPlatform) EstimateTrayAnchor(screen geometry.Size) (geometry.Point, bool) {
	return geometry.Point{
		X: screen.W - darwinTrayInset,
		Y: geometry.MenuBarHeight / 2,
	}, true
}
