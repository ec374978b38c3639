// Package models defines the data structures shared across the tray monitor:
// process samples, ranked snapshots, and the user-facing settings.
package models

// MaxRanked is the maximum number of entries in a RankedSnapshot.
const MaxRanked = 10

// ProcessSample is a single process's CPU reading from one sampling cycle.
// Samples are never mutated after creation.
type ProcessSample struct {
	Name     string  `json:"name"`
	PID      uint32  `json:"pid"`
	CPUUsage float64 `json:"cpu_usage"`
	// MemoryUsage is the resident set size in bytes, nil when unreadable.
	MemoryUsage *uint64 `json:"memory_usage,omitempty"`
}

// RankedSnapshot is the top of the process table ordered by CPU usage
// descending. It holds at most MaxRanked entries.
type RankedSnapshot []ProcessSample

// Top returns the highest-ranked sample, if any.
func (s RankedSnapshot) Top() (ProcessSample, bool) {
	if len(s) == 0 {
		return ProcessSample{}, false
	}
	return s[0], true
}

// UsageClass buckets a CPU percentage for display.
type UsageClass string

const (
	UsageLow    UsageClass = "low"
	UsageMedium UsageClass = "medium"
	UsageHigh   UsageClass = "high"
)

// ClassifyUsage maps a CPU percentage onto its display bucket.
func ClassifyUsage(cpu float64) UsageClass {
	switch {
	case cpu > 50:
		return UsageHigh
	case cpu > 20:
		return UsageMedium
	default:
		return UsageLow
	}
}

// ProcessView is a sample as presented in the popup list.
type ProcessView struct {
	ProcessSample
	// Rank is the 1-based position in the unarranged snapshot.
	Rank   int        `json:"rank"`
	Pinned bool       `json:"pinned"`
	Class  UsageClass `json:"class"`
}
