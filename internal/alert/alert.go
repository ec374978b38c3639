// Package alert implements the sustained high-CPU detector. The top
// process must stay at or above the threshold for the configured duration
// before the alert becomes active; any dip below the threshold resets it.
package alert

import (
	"time"

	"github.com/vitalis-app/cputray/internal/models"
)

// State is the detector's phase.
type State int

const (
	// Idle: the top process is below the threshold.
	Idle State = iota
	// Sustained: over threshold, accumulating time.
	Sustained
	// Active: over threshold for at least the configured duration.
	Active
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sustained:
		return "sustained"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Transition is the outcome of one observation.
type Transition struct {
	From, To State
	// Elapsed is the accumulated over-threshold time after the observation.
	Elapsed time.Duration
	// Show is set when the alert window should be shown.
	Show bool
	// Hide is set when the alert window should be hidden.
	Hide bool
	// Process is the top process that was observed, if any.
	Process *models.ProcessSample
}

// Changed reports whether the state changed.
func (t Transition) Changed() bool { return t.From != t.To }

// Machine is the sustained-threshold detector. It is owned by the sampling
// loop and is not safe for concurrent use.
type Machine struct {
	state   State
	elapsed time.Duration
}

// State returns the current phase and accumulated over-threshold time.
func (m *Machine) State() (State, time.Duration) {
	return m.state, m.elapsed
}

// Observe feeds one sampling cycle into the detector. interval is the time
// the cycle represents.
func (m *Machine) Observe(snapshot models.RankedSnapshot, s models.AppSettings, interval time.Duration) Transition {
	top, ok := snapshot.Top()
	t := Transition{From: m.state}
	if ok {
		t.Process = &top
	}

	over := ok && s.HighCPUAlertEnabled && top.CPUUsage >= s.HighCPUThreshold
	if !over {
		m.reset()
		t.Hide = t.From == Active
		t.To, t.Elapsed = m.state, m.elapsed
		return t
	}

	duration := time.Duration(s.HighCPUDuration) * time.Second
	switch m.state {
	case Idle:
		m.state, m.elapsed = Sustained, interval
	case Sustained:
		m.elapsed += interval
		if m.elapsed >= duration && s.EnableHighCPUPopup {
			m.state = Active
			t.Show = true
		}
	case Active:
		m.elapsed += interval
		if !s.EnableHighCPUPopup {
			m.state = Sustained
			t.Hide = true
		}
	}

	t.To, t.Elapsed = m.state, m.elapsed
	return t
}

// Reset returns the detector to Idle.
func (m *Machine) Reset() { m.reset() }

func (m *Machine) reset() {
	m.state, m.elapsed = Idle, 0
}
