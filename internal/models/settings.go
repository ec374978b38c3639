package models

// DisplayMode controls when the tray title shows the top process.
type DisplayMode string

const (
	// DisplayAlways renders the top process every cycle.
	DisplayAlways DisplayMode = "always"
	// DisplayWarningOnly renders only while the top process is over threshold.
	DisplayWarningOnly DisplayMode = "warning-only"
)

// Valid reports whether m is a known display mode.
func (m DisplayMode) Valid() bool {
	return m == DisplayAlways || m == DisplayWarningOnly
}

// AppSettings holds the user-adjustable behaviour of the tray monitor.
// Durations are whole seconds to match the front-end payload.
type AppSettings struct {
	AutoRefresh         bool        `json:"auto_refresh" yaml:"auto_refresh"`
	RefreshInterval     int         `json:"refresh_interval" yaml:"refresh_interval"`
	TrayShowProcess     bool        `json:"tray_show_process" yaml:"tray_show_process"`
	TrayShowPercentage  bool        `json:"tray_show_percentage" yaml:"tray_show_percentage"`
	TrayDisplayMode     DisplayMode `json:"tray_display_mode" yaml:"tray_display_mode"`
	HighCPUAlertEnabled bool        `json:"high_cpu_alert_enabled" yaml:"high_cpu_alert_enabled"`
	HighCPUThreshold    float64     `json:"high_cpu_threshold" yaml:"high_cpu_threshold"`
	HighCPUDuration     int         `json:"high_cpu_duration" yaml:"high_cpu_duration"`
	EnableHighCPUPopup  bool        `json:"enable_high_cpu_popup" yaml:"enable_high_cpu_popup"`
}

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() AppSettings {
	return AppSettings{
		AutoRefresh:         true,
		RefreshInterval:     3,
		TrayShowProcess:     true,
		TrayShowPercentage:  true,
		TrayDisplayMode:     DisplayAlways,
		HighCPUAlertEnabled: true,
		HighCPUThreshold:    100,
		HighCPUDuration:     30,
		EnableHighCPUPopup:  false,
	}
}

// Normalize returns a copy of s with out-of-range fields replaced by their
// defaults. The second return value lists the fields that were replaced.
func (s AppSettings) Normalize() (AppSettings, []string) {
	def := DefaultSettings()
	var fixed []string
	if s.RefreshInterval <= 0 {
		s.RefreshInterval = def.RefreshInterval
		fixed = append(fixed, "refresh_interval")
	}
	if !s.TrayDisplayMode.Valid() {
		s.TrayDisplayMode = def.TrayDisplayMode
		fixed = append(fixed, "tray_display_mode")
	}
	// Zero is allowed and means any usage counts as high.
	if s.HighCPUThreshold < 0 {
		s.HighCPUThreshold = def.HighCPUThreshold
		fixed = append(fixed, "high_cpu_threshold")
	}
	if s.HighCPUDuration < 0 {
		s.HighCPUDuration = def.HighCPUDuration
		fixed = append(fixed, "high_cpu_duration")
	}
	return s, fixed
}
