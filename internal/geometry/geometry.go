// Package geometry places popup windows next to the tray icon. The anchor
// is only an estimate, so the result is always clamped onto the screen.
package geometry

import "math"

const (
	// MenuBarHeight is the assumed height of the top menu bar.
	MenuBarHeight = 24.0
	// Margin keeps popups off the screen edges and the menu bar.
	Margin = 8.0
)

// DefaultScreen is used when the primary display size is unknown.
var DefaultScreen = Size{W: 1920, H: 1080}

// Point is a logical screen coordinate.
type Point struct {
	X, Y float64
}

// Size is a logical width and height.
type Size struct {
	W, H float64
}

// AnchorEstimator guesses where the tray icon sits on screen.
type AnchorEstimator interface {
	// EstimateTrayAnchor returns the estimated icon position, or false if
	// the platform offers no estimate.
	EstimateTrayAnchor(screen Size) (Point, bool)
}

// FallbackAnchor is the anchor used when no estimate is available.
func FallbackAnchor(screen Size) Point {
	return Point{X: screen.W - 50, Y: MenuBarHeight / 2}
}

// Anchor returns est's estimate, or FallbackAnchor when est is nil or has
// nothing to offer.
func Anchor(screen Size, est AnchorEstimator) Point {
	if est != nil {
		if p, ok := est.EstimateTrayAnchor(screen); ok {
			return p
		}
	}
	return FallbackAnchor(screen)
}

// Place returns the top-left position for a popup of the given size.
// The popup sits just below the menu bar, left-aligned to the anchor when
// it fits and right-aligned to the screen edge otherwise.
func Place(screen, popup Size, est AnchorEstimator) Point {
	return PlaceAt(screen, popup, Anchor(screen, est))
}

// PlaceAt is Place with an explicit anchor.
func PlaceAt(screen, popup Size, anchor Point) Point {
	y := MenuBarHeight + Margin

	var x float64
	if anchor.X+popup.W+Margin <= screen.W {
		x = anchor.X
	} else {
		x = screen.W - popup.W - Margin
	}

	return Point{
		X: clamp(x, Margin, screen.W-popup.W-Margin),
		Y: clamp(y, Margin, screen.H-popup.H-Margin),
	}
}

// clamp applies the lower bound first, so an upper bound below lo wins.
func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
