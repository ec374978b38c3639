// Package headless provides a window toolkit and tray icon that need no
// native UI. Windows are in-memory records and the tray is drawn as a
// status line on the terminal.
package headless

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vitalis-app/cputray/internal/geometry"
	"github.com/vitalis-app/cputray/internal/window"
)

// ErrNoDisplay is returned by PrimaryScreen when no screen size is set.
var ErrNoDisplay = errors.New("no display")

// Toolkit implements window.Toolkit in memory.
type Toolkit struct {
	logger *zap.Logger

	mu      sync.Mutex
	screen  geometry.Size
	windows map[window.ID]*Window
}

// NewToolkit creates a toolkit reporting screen as the primary display.
// A zero screen makes PrimaryScreen fail.
func NewToolkit(screen geometry.Size, logger *zap.Logger) *Toolkit {
	return &Toolkit{
		logger:  logger,
		screen:  screen,
		windows: make(map[window.ID]*Window),
	}
}

// CreateWindow records a hidden window.
func (t *Toolkit) CreateWindow(id window.ID, opts window.Options, onEvent func(window.Event)) (window.Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.windows[id]; ok {
		return nil, fmt.Errorf("window %s already exists", id)
	}
	w := &Window{id: id, opts: opts, position: opts.Position, onEvent: onEvent, logger: t.logger}
	t.windows[id] = w
	return w, nil
}

// PrimaryScreen returns the configured screen size.
func (t *Toolkit) PrimaryScreen() (geometry.Size, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.screen.W <= 0 || t.screen.H <= 0 {
		return geometry.Size{}, ErrNoDisplay
	}
	return t.screen, nil
}

// SetScreen changes the reported primary display.
func (t *Toolkit) SetScreen(s geometry.Size) {
	t.mu.Lock()
	t.screen = s
	t.mu.Unlock()
}

// Window returns the window created for id, or nil.
func (t *Toolkit) Window(id window.ID) *Window {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.windows[id]
}

// Dispatch delivers ev to id's event callback on the calling goroutine.
// It reports whether the window exists.
func (t *Toolkit) Dispatch(id window.ID, ev window.Event) bool {
	w := t.Window(id)
	if w == nil {
		return false
	}
	if ev == window.EventFocusGained {
		w.mu.Lock()
		w.focused = true
		w.mu.Unlock()
	}
	if ev == window.EventFocusLost {
		w.mu.Lock()
		w.focused = false
		w.mu.Unlock()
	}
	w.onEvent(ev)
	return true
}

// Window is an in-memory window.Handle.
type Window struct {
	id      window.ID
	opts    window.Options
	onEvent func(window.Event)
	logger  *zap.Logger

	mu       sync.Mutex
	visible  bool
	focused  bool
	position geometry.Point
}

func (w *Window) Show() error {
	w.mu.Lock()
	w.visible = true
	w.mu.Unlock()
	w.logger.Debug("Window shown", zap.String("window", string(w.id)))
	return nil
}

func (w *Window) Hide() error {
	w.mu.Lock()
	w.visible = false
	w.focused = false
	w.mu.Unlock()
	w.logger.Debug("Window hidden", zap.String("window", string(w.id)))
	return nil
}

func (w *Window) SetPosition(p geometry.Point) error {
	w.mu.Lock()
	w.position = p
	w.mu.Unlock()
	return nil
}

// Focus fails for windows created without focus.
func (w *Window) Focus() error {
	if !w.opts.Focusable {
		return fmt.Errorf("window %s does not take focus", w.id)
	}
	w.mu.Lock()
	w.focused = w.visible
	w.mu.Unlock()
	return nil
}

// Visible reports whether the window is shown.
func (w *Window) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

// Focused reports whether the window holds input focus.
func (w *Window) Focused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.focused
}

// Position returns the last position set on the window.
func (w *Window) Position() geometry.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.position
}

// Options returns the creation options.
func (w *Window) Options() window.Options { return w.opts }
