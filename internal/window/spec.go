package window

import "github.com/vitalis-app/cputray/internal/geometry"

// Spec is how the manager creates and positions one window identity.
type Spec struct {
	Options

	// FocusOnShow focuses the window every time it is shown.
	FocusOnShow bool
	// HideOnBlur hides the window when it loses focus.
	HideOnBlur bool
	// HideOnClose converts close requests into hides.
	HideOnClose bool
	// Centered places the window in the middle of the screen instead of
	// next to the tray icon.
	Centered bool
	// Offset is added to the tray placement.
	Offset geometry.Point
}

// Sizes configures the windows built by DefaultSpecs.
type Sizes struct {
	Popup       geometry.Size
	Alert       geometry.Size
	Main        geometry.Size
	AlertOffset float64
}

// DefaultSizes returns the standard window dimensions.
func DefaultSizes() Sizes {
	return Sizes{
		Popup:       geometry.Size{W: 420, H: 600},
		Alert:       geometry.Size{W: 420, H: 200},
		Main:        geometry.Size{W: 800, H: 600},
		AlertOffset: 10,
	}
}

// DefaultSpecs returns the specs for the three window identities.
// The alert sits slightly below the popup position and never takes focus.
func DefaultSpecs(sz Sizes) map[ID]Spec {
	popup := Options{
		Size:        sz.Popup,
		AlwaysOnTop: true,
		SkipTaskbar: true,
	}
	alert := popup
	alert.Size = sz.Alert

	popup.Title = "CPU Monitor"
	popup.Focusable = true
	alert.Title = "CPU Monitor - High CPU"
	alert.Focusable = false

	return map[ID]Spec{
		TrayPopup: {
			Options:     popup,
			FocusOnShow: true,
			HideOnBlur:  true,
		},
		HighCPUAlert: {
			Options:    alert,
			HideOnBlur: true,
			Offset:     geometry.Point{Y: sz.AlertOffset},
		},
		Main: {
			Options: Options{
				Title:       "CPU Monitor",
				Size:        sz.Main,
				Focusable:   true,
				Decorations: true,
				Resizable:   true,
			},
			FocusOnShow: true,
			HideOnClose: true,
			Centered:    true,
		},
	}
}
