package window

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vitalis-app/cputray/internal/geometry"
)

// ErrUnknownWindow is returned for an ID with no registered Spec.
var ErrUnknownWindow = errors.New("unknown window")

// State is the registry's view of one window identity.
type State struct {
	Exists   bool
	Visible  bool
	Position geometry.Point
}

type entry struct {
	handle   Handle
	visible  bool
	position geometry.Point
}

// Manager is the single authority over window existence and visibility.
// Every operation holds the registry lock for its whole duration, so the
// sampling loop and command handlers can call it concurrently without ever
// creating a second instance of a window.
type Manager struct {
	toolkit Toolkit
	anchor  geometry.AnchorEstimator
	specs   map[ID]Spec
	logger  *zap.Logger

	mu      sync.Mutex
	windows map[ID]*entry
}

// NewManager creates a manager for the given specs. anchor may be nil.
func NewManager(toolkit Toolkit, anchor geometry.AnchorEstimator, specs map[ID]Spec, logger *zap.Logger) *Manager {
	return &Manager{
		toolkit: toolkit,
		anchor:  anchor,
		specs:   specs,
		logger:  logger,
		windows: make(map[ID]*entry),
	}
}

// Toggle flips the visibility of id, creating it on first use. It returns
// whether the window is visible afterwards.
func (m *Manager) Toggle(id ID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.windows[id]
	if ok && e.visible {
		if err := m.hideLocked(id, e); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := m.showLocked(id, false); err != nil {
		return false, err
	}
	return true, nil
}

// ShowIfHidden shows id unless it is already visible.
func (m *Manager) ShowIfHidden(id ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.windows[id]; ok && e.visible {
		return nil
	}
	return m.showLocked(id, false)
}

// Show shows id and brings it to the front even if it is already visible.
func (m *Manager) Show(id ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.showLocked(id, true)
}

// Hide hides id. Hiding an absent or hidden window does nothing.
func (m *Manager) Hide(id ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.windows[id]
	if !ok || !e.visible {
		return nil
	}
	return m.hideLocked(id, e)
}

// HandleEvent applies the auto-hide rules for an event on id.
func (m *Manager) HandleEvent(id ID, ev Event) {
	spec, ok := m.specs[id]
	if !ok {
		return
	}
	switch {
	case ev == EventFocusLost && spec.HideOnBlur,
		ev == EventCloseRequested && spec.HideOnClose:
		m.logger.Debug("Auto-hiding window",
			zap.String("window", string(id)),
			zap.Stringer("event", ev))
		if err := m.Hide(id); err != nil {
			m.logger.Warn("Failed to hide window",
				zap.String("window", string(id)),
				zap.Error(err))
		}
	}
}

// State returns the registry entry for id.
func (m *Manager) State(id ID) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.windows[id]
	if !ok {
		return State{}
	}
	return State{Exists: true, Visible: e.visible, Position: e.position}
}

// showLocked creates or re-shows id at a freshly computed position. When
// raise is false an already visible window is left alone. Must be called
// with m.mu held.
func (m *Manager) showLocked(id ID, raise bool) error {
	spec, ok := m.specs[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrUnknownWindow)
	}

	e, exists := m.windows[id]
	if exists && e.visible {
		if raise && spec.Focusable {
			return e.handle.Focus()
		}
		return nil
	}

	pos := m.position(spec)

	if !exists {
		opts := spec.Options
		opts.Position = pos
		h, err := m.toolkit.CreateWindow(id, opts, func(ev Event) { m.HandleEvent(id, ev) })
		if err != nil {
			m.logger.Error("Failed to create window",
				zap.String("window", string(id)),
				zap.Error(err))
			return fmt.Errorf("creating %s: %w", id, err)
		}
		e = &entry{handle: h, position: pos}
		m.windows[id] = e
		m.logger.Info("Created window",
			zap.String("window", string(id)),
			zap.Float64("x", pos.X),
			zap.Float64("y", pos.Y))
	} else {
		if err := e.handle.SetPosition(pos); err != nil {
			m.logger.Error("Failed to position window",
				zap.String("window", string(id)),
				zap.Error(err))
			return fmt.Errorf("positioning %s: %w", id, err)
		}
		e.position = pos
	}

	if err := e.handle.Show(); err != nil {
		m.logger.Error("Failed to show window",
			zap.String("window", string(id)),
			zap.Error(err))
		return fmt.Errorf("showing %s: %w", id, err)
	}
	e.visible = true

	if spec.FocusOnShow && spec.Focusable {
		if err := e.handle.Focus(); err != nil {
			m.logger.Warn("Failed to focus window",
				zap.String("window", string(id)),
				zap.Error(err))
		}
	}
	return nil
}

// hideLocked must be called with m.mu held.
func (m *Manager) hideLocked(id ID, e *entry) error {
	if err := e.handle.Hide(); err != nil {
		m.logger.Error("Failed to hide window",
			zap.String("window", string(id)),
			zap.Error(err))
		return fmt.Errorf("hiding %s: %w", id, err)
	}
	e.visible = false
	return nil
}

// position computes where spec's window should appear on the primary display.
func (m *Manager) position(spec Spec) geometry.Point {
	screen, err := m.toolkit.PrimaryScreen()
	if err != nil || screen.W <= 0 || screen.H <= 0 {
		m.logger.Debug("Primary screen unknown, using default size", zap.Error(err))
		screen = geometry.DefaultScreen
	}

	if spec.Centered {
		return geometry.Point{
			X: (screen.W - spec.Size.W) / 2,
			Y: (screen.H - spec.Size.H) / 2,
		}
	}

	p := geometry.Place(screen, spec.Size, m.anchor)
	return geometry.Point{X: p.X + spec.Offset.X, Y: p.Y + spec.Offset.Y}
}
