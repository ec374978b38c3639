// Package platform provides the OS-specific knowledge the popup placement
// needs but no toolkit exposes: where the tray icon probably is.
// Each supported OS implements the Platform interface.
package platform

import "github.com/vitalis-app/cputray/internal/geometry"

// Platform provides OS-specific estimates beyond what the toolkit offers.
type Platform interface {
	geometry.AnchorEstimator

	// Name returns the platform name (darwin, stub).
	Name() string
}
