// Package scheduler implements the periodic sampling loop. Each cycle it
// samples and ranks the process table, renders the tray title and tooltip,
// and feeds the high-CPU alert detector. It communicates with command
// handlers only through the settings store and the window manager.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/vitalis-app/cputray/internal/alert"
	"github.com/vitalis-app/cputray/internal/models"
	"github.com/vitalis-app/cputray/internal/settings"
	"github.com/vitalis-app/cputray/internal/tray"
	"github.com/vitalis-app/cputray/internal/window"
)

// Sampler produces one ranked snapshot per call.
type Sampler interface {
	Sample(ctx context.Context) (models.RankedSnapshot, error)
}

// Windows is the part of the window manager the loop drives.
type Windows interface {
	ShowIfHidden(id window.ID) error
	Hide(id window.ID) error
}

// Scheduler runs the sampling loop.
type Scheduler struct {
	sampler      Sampler
	store        *settings.Store
	icon         tray.Icon
	windows      Windows
	logger       *zap.Logger
	startupDelay time.Duration

	alerts      alert.Machine
	lastTitle   string
	lastTooltip string
	rendered    bool

	cycles atomic.Uint64
}

// New creates a Scheduler. The loop waits startupDelay before its first cycle.
func New(sampler Sampler, store *settings.Store, icon tray.Icon, windows Windows, startupDelay time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		sampler:      sampler,
		store:        store,
		icon:         icon,
		windows:      windows,
		logger:       logger,
		startupDelay: startupDelay,
	}
}

// Cycles returns the number of completed sampling cycles.
func (s *Scheduler) Cycles() uint64 {
	return s.cycles.Load()
}

// Start runs the loop until ctx is cancelled. The cadence follows
// settings.RefreshInterval; a change takes effect from the next tick.
func (s *Scheduler) Start(ctx context.Context) {
	if s.startupDelay > 0 {
		t := time.NewTimer(s.startupDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}

	interval := intervalOf(s.store.Read())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("Sampling loop started", zap.Duration("interval", interval))
	s.cycle(ctx, interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sampling loop stopped", zap.Uint64("cycles", s.cycles.Load()))
			return
		case <-s.store.Changed():
			cur := s.store.Read()
			if !cur.AutoRefresh {
				s.disarm(cur)
			}
			if next := intervalOf(cur); next != interval {
				interval = next
				ticker.Reset(interval)
				s.logger.Info("Refresh interval changed", zap.Duration("interval", interval))
			}
		case <-ticker.C:
			s.cycle(ctx, interval)
		}
	}
}

// cycle runs one sample → render → alert pass. A failed sample leaves the
// previous presentation untouched.
func (s *Scheduler) cycle(ctx context.Context, interval time.Duration) {
	if cur := s.store.Read(); !cur.AutoRefresh {
		s.disarm(cur)
		s.logger.Debug("Auto refresh disabled, skipping cycle")
		return
	}

	snapshot, err := s.sampler.Sample(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("Sampling failed, skipping cycle", zap.Error(err))
		}
		return
	}

	cur := s.store.Read()
	s.render(snapshot, cur)
	s.observe(snapshot, cur, interval)

	n := s.cycles.Inc()
	s.logger.Debug("Sampling cycle complete",
		zap.Uint64("cycle", n),
		zap.Int("processes", len(snapshot)))
}

func (s *Scheduler) render(snapshot models.RankedSnapshot, cur models.AppSettings) {
	title, tooltip := tray.Render(snapshot, cur)
	if s.rendered && title == s.lastTitle && tooltip == s.lastTooltip {
		return
	}
	if err := tray.Update(s.icon, title, tooltip); err != nil {
		s.logger.Warn("Failed to update tray", zap.Error(err))
		return
	}
	s.lastTitle, s.lastTooltip, s.rendered = title, tooltip, true
}

func (s *Scheduler) observe(snapshot models.RankedSnapshot, cur models.AppSettings, interval time.Duration) {
	tr := s.alerts.Observe(snapshot, cur, interval)
	if tr.Changed() {
		fields := []zap.Field{
			zap.Stringer("from", tr.From),
			zap.Stringer("to", tr.To),
			zap.Duration("elapsed", tr.Elapsed),
		}
		if tr.Process != nil {
			fields = append(fields,
				zap.String("process", tr.Process.Name),
				zap.Uint32("pid", tr.Process.PID),
				zap.Float64("cpu", tr.Process.CPUUsage))
		}
		s.logger.Info("High CPU alert state changed", fields...)
	}

	switch {
	case tr.Show:
		if err := s.windows.ShowIfHidden(window.HighCPUAlert); err != nil {
			s.logger.Error("Failed to show high CPU alert", zap.Error(err))
		}
	case tr.Hide:
		if err := s.windows.Hide(window.HighCPUAlert); err != nil {
			s.logger.Error("Failed to hide high CPU alert", zap.Error(err))
		}
	}
}

// disarm takes down an Active alert once the alert or its popup has been
// switched off. Observe does this on a normal cycle; disarm covers the
// cycles skipped while auto refresh is off.
func (s *Scheduler) disarm(cur models.AppSettings) {
	if cur.HighCPUAlertEnabled && cur.EnableHighCPUPopup {
		return
	}
	if st, _ := s.alerts.State(); st != alert.Active {
		return
	}
	s.alerts.Reset()
	s.logger.Info("High CPU alert disabled while active, hiding")
	if err := s.windows.Hide(window.HighCPUAlert); err != nil {
		s.logger.Error("Failed to hide high CPU alert", zap.Error(err))
	}
}

func intervalOf(s models.AppSettings) time.Duration {
	if s.RefreshInterval <= 0 {
		return time.Duration(models.DefaultSettings().RefreshInterval) * time.Second
	}
	return time.Duration(s.RefreshInterval) * time.Second
}
