package tray

import "errors"

// ErrUnavailable is returned when there is no tray icon to update.
var ErrUnavailable = errors.New("tray icon unavailable")

// Icon is the status-bar icon provided by the toolkit.
type Icon interface {
	SetTitle(title string) error
	SetTooltip(tooltip string) error
}

// Update pushes title and tooltip to icon. A nil icon yields ErrUnavailable.
func Update(icon Icon, title, tooltip string) error {
	if icon == nil {
		return ErrUnavailable
	}
	if err := icon.SetTooltip(tooltip); err != nil {
		return err
	}
	return icon.SetTitle(title)
}
