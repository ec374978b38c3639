// Package window owns the lifecycle of the application's singleton windows:
// the tray popup, the high-CPU alert and the main window. Windows are
// created lazily, hidden rather than closed, and tracked in one registry.
package window

import "github.com/vitalis-app/cputray/internal/geometry"

// ID identifies a singleton window.
type ID string

const (
	// TrayPopup is toggled by a left click on the tray icon.
	TrayPopup ID = "tray-popup"
	// HighCPUAlert is shown by the alert state machine.
	HighCPUAlert ID = "high-cpu-alert"
	// Main is the full application window.
	Main ID = "main"
)

// Event is a window notification delivered by the toolkit.
type Event int

const (
	// EventFocusLost is sent when the window stops receiving input.
	EventFocusLost Event = iota + 1
	// EventFocusGained is sent when the window starts receiving input.
	EventFocusGained
	// EventCloseRequested is sent when the user asks to close the window.
	EventCloseRequested
)

func (e Event) String() string {
	switch e {
	case EventFocusLost:
		return "focus-lost"
	case EventFocusGained:
		return "focus-gained"
	case EventCloseRequested:
		return "close-requested"
	default:
		return "unknown"
	}
}

// Options describes a native window at creation time.
type Options struct {
	Title       string
	Size        geometry.Size
	Position    geometry.Point
	Focusable   bool
	AlwaysOnTop bool
	SkipTaskbar bool
	Decorations bool
	Resizable   bool
}

// Handle is a created native window.
type Handle interface {
	Show() error
	Hide() error
	SetPosition(p geometry.Point) error
	Focus() error
}

// Toolkit creates native windows and reports the primary display.
//
// Implementations must deliver events from their own event loop, never
// synchronously from inside a Handle method or CreateWindow.
type Toolkit interface {
	// CreateWindow creates a hidden window. onEvent receives the window's
	// events for its whole lifetime.
	CreateWindow(id ID, opts Options, onEvent func(Event)) (Handle, error)

	// PrimaryScreen returns the logical size of the primary display.
	PrimaryScreen() (geometry.Size, error)
}
