package headless

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vitalis-app/cputray/internal/geometry"
	"github.com/vitalis-app/cputray/internal/window"
)

func newManager(tk *Toolkit) *window.Manager {
	return window.NewManager(tk, nil, window.DefaultSpecs(window.DefaultSizes()), zap.NewNop())
}

func TestToolkit_PopupLifecycle(t *testing.T) {
	tk := NewToolkit(geometry.Size{W: 1920, H: 1080}, zap.NewNop())
	m := newManager(tk)

	visible, err := m.Toggle(window.TrayPopup)
	require.NoError(t, err)
	require.True(t, visible)

	w := tk.Window(window.TrayPopup)
	require.NotNil(t, w)
	assert.True(t, w.Visible())
	assert.True(t, w.Focused())
	assert.Equal(t, geometry.Point{X: 1492, Y: 32}, w.Position())

	require.True(t, tk.Dispatch(window.TrayPopup, window.EventFocusLost))
	assert.False(t, w.Visible())
	assert.False(t, m.State(window.TrayPopup).Visible)
	assert.Same(t, w, tk.Window(window.TrayPopup))
}

func TestToolkit_AlertNeverFocused(t *testing.T) {
	tk := NewToolkit(geometry.Size{W: 1920, H: 1080}, zap.NewNop())
	m := newManager(tk)

	require.NoError(t, m.ShowIfHidden(window.HighCPUAlert))
	w := tk.Window(window.HighCPUAlert)
	assert.True(t, w.Visible())
	assert.False(t, w.Focused())
	assert.Error(t, w.Focus())
}

func TestToolkit_NoDisplay(t *testing.T) {
	tk := NewToolkit(geometry.Size{}, zap.NewNop())
	_, err := tk.PrimaryScreen()
	assert.ErrorIs(t, err, ErrNoDisplay)

	m := newManager(tk)
	require.NoError(t, m.ShowIfHidden(window.TrayPopup))
	assert.Equal(t, geometry.Point{X: 1492, Y: 32}, tk.Window(window.TrayPopup).Position())
}

func TestToolkit_DuplicateCreate(t *testing.T) {
	tk := NewToolkit(geometry.Size{W: 800, H: 600}, zap.NewNop())
	_, err := tk.CreateWindow(window.Main, window.Options{}, func(window.Event) {})
	require.NoError(t, err)
	_, err = tk.CreateWindow(window.Main, window.Options{}, func(window.Event) {})
	assert.Error(t, err)
}

func TestToolkit_DispatchUnknown(t *testing.T) {
	tk := NewToolkit(geometry.Size{W: 800, H: 600}, zap.NewNop())
	assert.False(t, tk.Dispatch(window.Main, window.EventCloseRequested))
}

func TestTray_TerminalStatusLine(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrayWriter(&buf, true, zap.NewNop())

	require.NoError(t, tr.SetTooltip("CPU top processes\n1. node (42): 12.3%"))
	require.NoError(t, tr.SetTitle("node: 12.3%"))
	require.NoError(t, tr.SetTitle(""))
	require.NoError(t, tr.Close())

	assert.Equal(t, "\r\033[Knode: 12.3%\r\033[Kcputray\n", buf.String())
	assert.Equal(t, "", tr.Title())
	assert.Equal(t, "CPU top processes\n1. node (42): 12.3%", tr.Tooltip())
}

func TestTray_NotTerminalOnlyLogs(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrayWriter(&buf, false, zap.NewNop())

	require.NoError(t, tr.SetTitle("node: 12.3%"))
	require.NoError(t, tr.Close())
	assert.Empty(t, buf.String())
	assert.Equal(t, "node: 12.3%", tr.Title())
}
