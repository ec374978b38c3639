// Package app exposes the operations the user interface invokes: process
// actions, settings access, tray updates and window control.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vitalis-app/cputray/internal/models"
	"github.com/vitalis-app/cputray/internal/procdir"
	"github.com/vitalis-app/cputray/internal/sampler"
	"github.com/vitalis-app/cputray/internal/settings"
	"github.com/vitalis-app/cputray/internal/tray"
	"github.com/vitalis-app/cputray/internal/window"
)

// ErrTrayUnavailable is returned by UpdateTray when no tray icon exists.
var ErrTrayUnavailable = tray.ErrUnavailable

// Sampler produces ranked snapshots on demand.
type Sampler interface {
	Sample(ctx context.Context) (models.RankedSnapshot, error)
}

// Windows is the subset of window.Manager the commands drive.
type Windows interface {
	Toggle(id window.ID) (bool, error)
	Show(id window.ID) error
	ShowIfHidden(id window.ID) error
	Hide(id window.ID) error
}

// Click is a mouse action on the tray icon.
type Click int

const (
	ClickLeft Click = iota
	ClickRight
	ClickDoubleLeft
)

func (c Click) String() string {
	switch c {
	case ClickLeft:
		return "left"
	case ClickRight:
		return "right"
	case ClickDoubleLeft:
		return "double-left"
	default:
		return fmt.Sprintf("click(%d)", int(c))
	}
}

// Commands implements the command surface. All methods are safe for
// concurrent use; shared state lives in the settings store and the window
// registry.
type Commands struct {
	dir     procdir.Directory
	sampler Sampler
	pinner  *sampler.Pinner
	store   *settings.Store
	windows Windows
	icon    tray.Icon
	exit    func(code int)
	logger  *zap.Logger
}

// Deps groups the collaborators of Commands.
type Deps struct {
	Directory procdir.Directory
	Sampler   Sampler
	Pinner    *sampler.Pinner
	Store     *settings.Store
	Windows   Windows
	Icon      tray.Icon
	Exit      func(code int)
	Logger    *zap.Logger
}

// New creates the command surface. A nil Icon makes UpdateTray fail with
// ErrTrayUnavailable; a nil Pinner gets a fresh one.
func New(d Deps) *Commands {
	if d.Pinner == nil {
		d.Pinner = &sampler.Pinner{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Commands{
		dir:     d.Directory,
		sampler: d.Sampler,
		pinner:  d.Pinner,
		store:   d.Store,
		windows: d.Windows,
		icon:    d.Icon,
		exit:    d.Exit,
		logger:  d.Logger,
	}
}

// ListTopProcesses samples now and returns the pin-arranged top list.
func (c *Commands) ListTopProcesses(ctx context.Context) ([]models.ProcessView, error) {
	snapshot, err := c.sampler.Sample(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing top processes: %w", err)
	}
	return c.pinner.Arrange(snapshot), nil
}

// TerminateProcess asks pid to exit.
func (c *Commands) TerminateProcess(ctx context.Context, pid uint32) (string, error) {
	name, err := c.dir.Kill(ctx, pid, false)
	if err != nil {
		c.logger.Warn("Terminate failed", zap.Uint32("pid", pid), zap.Error(err))
		return "", err
	}
	return fmt.Sprintf("Terminated process: %s (PID: %d)", name, pid), nil
}

// ForceKillProcess kills pid without giving it a chance to clean up.
func (c *Commands) ForceKillProcess(ctx context.Context, pid uint32) (string, error) {
	name, err := c.dir.Kill(ctx, pid, true)
	if err != nil {
		c.logger.Warn("Force kill failed", zap.Uint32("pid", pid), zap.Error(err))
		return "", err
	}
	return fmt.Sprintf("Force killed process: %s (PID: %d)", name, pid), nil
}

// RestartProcess launches the named application. It does not stop a
// running instance first.
func (c *Commands) RestartProcess(ctx context.Context, name string) (string, error) {
	if err := c.dir.Launch(ctx, name); err != nil {
		c.logger.Warn("Restart failed", zap.String("name", name), zap.Error(err))
		return "", err
	}
	return fmt.Sprintf("Restarting application: %s", name), nil
}

// ShowHighCPUAlert shows the alert window unless the popup is disabled in
// settings.
func (c *Commands) ShowHighCPUAlert() error {
	if !c.store.Read().EnableHighCPUPopup {
		c.logger.Debug("High CPU popup disabled, not showing alert")
		return nil
	}
	return c.windows.ShowIfHidden(window.HighCPUAlert)
}

// HideHighCPUAlert hides the alert window if it is showing.
func (c *Commands) HideHighCPUAlert() error {
	return c.windows.Hide(window.HighCPUAlert)
}

// UpdateSettings replaces the shared settings. The sampling loop sees the
// new values on its next cycle.
func (c *Commands) UpdateSettings(s models.AppSettings) {
	for _, fixed := range c.store.Write(s) {
		c.logger.Warn("Setting out of range, using default", zap.String("field", fixed))
	}
	cur := c.store.Read()
	c.logger.Info("Settings updated",
		zap.Int("refresh_interval", cur.RefreshInterval),
		zap.String("tray_display_mode", string(cur.TrayDisplayMode)))
}

// Settings returns a copy of the current settings.
func (c *Commands) Settings() models.AppSettings {
	return c.store.Read()
}

// UpdateTray sets the tray title and tooltip directly.
func (c *Commands) UpdateTray(title, tooltip string) error {
	return tray.Update(c.icon, title, tooltip)
}

// PinProcess pins pid at position in the list. Pinning the pinned pid
// again unpins it.
func (c *Commands) PinProcess(pid uint32, position int) {
	c.pinner.Pin(pid, position)
}

// UnpinProcess clears the pin.
func (c *Commands) UnpinProcess() {
	c.pinner.Unpin()
}

// HandleTrayClick routes a tray icon click.
func (c *Commands) HandleTrayClick(click Click) {
	var err error
	switch click {
	case ClickLeft:
		_, err = c.windows.Toggle(window.TrayPopup)
	case ClickRight:
		err = c.windows.Show(window.Main)
	case ClickDoubleLeft:
		c.Exit()
		return
	default:
		return
	}
	if err != nil {
		c.logger.Warn("Tray click failed", zap.Stringer("click", click), zap.Error(err))
	}
}

// Exit terminates the application with status 0.
func (c *Commands) Exit() {
	c.logger.Info("Exit requested")
	if c.exit != nil {
		c.exit(0)
	}
}
