//go:build !darwin

// Stub Platform implementation for platforms without a tray position estimate.
// Placement falls back to geometry.FallbackAnchor.
package platform

import "github.com/vitalis-app/cputray/internal/geometry"

// StubPlatform offers no anchor estimate.
type StubPlatform struct{}

// New creates a stub platform instance.
func New() Platform {
	return &StubPlatform{}
}

// Name returns the platform identifier.
func (p *StubPlatform) Name() string { return "stub" }

// EstimateTrayAnchor always reports no estimate.
func (p *StubPlatform) EstimateTrayAnchor(geometry.Size) (geometry.Point, bool) {
	return geometry.Point{}, false
}
