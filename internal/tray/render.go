// Package tray derives the status-bar title and tooltip from a ranked
// snapshot and the current settings.
package tray

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vitalis-app/cputray/internal/models"
)

const (
	// TooltipHeader is the first line of a non-empty tooltip.
	TooltipHeader = "CPU top processes"
	// NoDataTooltip is shown when the snapshot is empty.
	NoDataTooltip = "No process data"
	// DefaultTitle is the title shown when nothing should be displayed.
	DefaultTitle = ""

	maxNameRunes  = 12
	keptNameRunes = 9
	ellipsis      = "..."
)

// Render returns the tray title and tooltip for snapshot under s.
func Render(snapshot models.RankedSnapshot, s models.AppSettings) (title, tooltip string) {
	return Title(snapshot, s), Tooltip(snapshot)
}

// Title renders the tray title according to the display mode.
func Title(snapshot models.RankedSnapshot, s models.AppSettings) string {
	top, ok := snapshot.Top()
	if !ok {
		return DefaultTitle
	}

	switch s.TrayDisplayMode {
	case models.DisplayWarningOnly:
		if s.HighCPUAlertEnabled && top.CPUUsage >= s.HighCPUThreshold {
			return TruncateName(top.Name) + ": " + formatPercent(top.CPUUsage)
		}
		return DefaultTitle
	default:
		var parts []string
		if s.TrayShowProcess {
			parts = append(parts, TruncateName(top.Name))
		}
		if s.TrayShowPercentage {
			parts = append(parts, formatPercent(top.CPUUsage))
		}
		if len(parts) == 0 {
			return DefaultTitle
		}
		return strings.Join(parts, ": ")
	}
}

// Tooltip lists every snapshot entry under a fixed header.
func Tooltip(snapshot models.RankedSnapshot) string {
	if len(snapshot) == 0 {
		return NoDataTooltip
	}
	var b strings.Builder
	b.WriteString(TooltipHeader)
	for i, p := range snapshot {
		fmt.Fprintf(&b, "\n%d. %s (%d): %s", i+1, p.Name, p.PID, formatPercent(p.CPUUsage))
	}
	return b.String()
}

// TruncateName shortens names longer than 12 characters to their first 9
// characters followed by "...". Characters are runes, so multi-byte names
// are never split mid-sequence.
func TruncateName(name string) string {
	if utf8.RuneCountInString(name) <= maxNameRunes {
		return name
	}
	n := 0
	for i := range name {
		if n == keptNameRunes {
			return name[:i] + ellipsis
		}
		n++
	}
	return name
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
