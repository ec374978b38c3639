package headless

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// Tray implements tray.Icon. On a terminal the title is redrawn in place
// as a status line; otherwise changes are logged.
type Tray struct {
	out    io.Writer
	tty    bool
	logger *zap.Logger

	mu      sync.Mutex
	title   string
	tooltip string
}

// NewTray creates a tray drawing to f when f is a terminal.
func NewTray(f *os.File, logger *zap.Logger) *Tray {
	return NewTrayWriter(f, term.IsTerminal(int(f.Fd())), logger)
}

// NewTrayWriter creates a tray writing to out. tty selects status-line
// drawing.
func NewTrayWriter(out io.Writer, tty bool, logger *zap.Logger) *Tray {
	return &Tray{out: out, tty: tty, logger: logger}
}

func (t *Tray) SetTitle(title string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.title = title
	if !t.tty {
		t.logger.Info("Tray title", zap.String("title", title))
		return nil
	}
	line := title
	if line == "" {
		line = "cputray"
	}
	// \r returns to column 0, \033[K clears the old line.
	_, err := fmt.Fprintf(t.out, "\r\033[K%s", line)
	return err
}

func (t *Tray) SetTooltip(tooltip string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.tooltip = tooltip
	t.logger.Debug("Tray tooltip", zap.String("tooltip", strings.ReplaceAll(tooltip, "\n", " | ")))
	return nil
}

// Title returns the current title.
func (t *Tray) Title() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.title
}

// Tooltip returns the current tooltip.
func (t *Tray) Tooltip() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tooltip
}

// Close ends the status line so later output starts on a fresh line.
func (t *Tray) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.tty {
		return nil
	}
	_, err := fmt.Fprintln(t.out)
	return err
}
