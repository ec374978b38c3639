package window

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vitalis-app/cputray/internal/geometry"
)

type fakeHandle struct {
	mu        sync.Mutex
	visible   bool
	focused   int
	positions []geometry.Point
	showErr   error
}

func (h *fakeHandle) Show() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.showErr != nil {
		return h.showErr
	}
	h.visible = true
	return nil
}

func (h *fakeHandle) Hide() error {
	h.mu.Lock()
	h.visible = false
	h.mu.Unlock()
	return nil
}

func (h *fakeHandle) SetPosition(p geometry.Point) error {
	h.mu.Lock()
	h.positions = append(h.positions, p)
	h.mu.Unlock()
	return nil
}

func (h *fakeHandle) Focus() error {
	h.mu.Lock()
	h.focused++
	h.mu.Unlock()
	return nil
}

type fakeToolkit struct {
	mu        sync.Mutex
	screen    geometry.Size
	screenErr error
	createErr error
	created   map[ID]int
	handles   map[ID]*fakeHandle
	opts      map[ID]Options
	events    map[ID]func(Event)
}

func newFakeToolkit() *fakeToolkit {
	return &fakeToolkit{
		screen:  geometry.Size{W: 1920, H: 1080},
		created: make(map[ID]int),
		handles: make(map[ID]*fakeHandle),
		opts:    make(map[ID]Options),
		events:  make(map[ID]func(Event)),
	}
}

func (tk *fakeToolkit) CreateWindow(id ID, opts Options, onEvent func(Event)) (Handle, error) {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	if tk.createErr != nil {
		return nil, tk.createErr
	}
	tk.created[id]++
	h := &fakeHandle{positions: []geometry.Point{opts.Position}}
	tk.handles[id] = h
	tk.opts[id] = opts
	tk.events[id] = onEvent
	return h, nil
}

func (tk *fakeToolkit) PrimaryScreen() (geometry.Size, error) {
	return tk.screen, tk.screenErr
}

func (tk *fakeToolkit) fire(id ID, ev Event) {
	tk.mu.Lock()
	fn := tk.events[id]
	tk.mu.Unlock()
	fn(ev)
}

func newTestManager(tk *fakeToolkit) *Manager {
	return NewManager(tk, nil, DefaultSpecs(DefaultSizes()), zap.NewNop())
}

func TestToggle_CreateHideShow(t *testing.T) {
	tk := newFakeToolkit()
	m := newTestManager(tk)

	visible, err := m.Toggle(TrayPopup)
	require.NoError(t, err)
	assert.True(t, visible)
	assert.Equal(t, State{Exists: true, Visible: true, Position: geometry.Point{X: 1492, Y: 32}}, m.State(TrayPopup))
	assert.Equal(t, 1, tk.handles[TrayPopup].focused)

	visible, err = m.Toggle(TrayPopup)
	require.NoError(t, err)
	assert.False(t, visible)
	assert.False(t, tk.handles[TrayPopup].visible)

	// Screen changed while hidden: position is recomputed on re-show.
	tk.screen = geometry.Size{W: 2560, H: 1440}
	visible, err = m.Toggle(TrayPopup)
	require.NoError(t, err)
	assert.True(t, visible)
	assert.Equal(t, geometry.Point{X: 2132, Y: 32}, m.State(TrayPopup).Position)
	assert.Equal(t, 2, tk.handles[TrayPopup].focused)

	assert.Equal(t, 1, tk.created[TrayPopup], "window must be created exactly once")
}

func TestShowIfHidden_Idempotent(t *testing.T) {
	tk := newFakeToolkit()
	m := newTestManager(tk)

	require.NoError(t, m.ShowIfHidden(HighCPUAlert))
	before := m.State(HighCPUAlert)
	require.NoError(t, m.ShowIfHidden(HighCPUAlert))

	assert.Equal(t, before, m.State(HighCPUAlert))
	assert.Len(t, tk.handles[HighCPUAlert].positions, 1)
	assert.Equal(t, 1, tk.created[HighCPUAlert])
}

func TestHighCPUAlert_NeverFocusedAndOffset(t *testing.T) {
	tk := newFakeToolkit()
	m := newTestManager(tk)

	require.NoError(t, m.ShowIfHidden(HighCPUAlert))

	assert.False(t, tk.opts[HighCPUAlert].Focusable)
	assert.Equal(t, 0, tk.handles[HighCPUAlert].focused)
	assert.Equal(t, geometry.Point{X: 1492, Y: 42}, m.State(HighCPUAlert).Position)
}

func TestHide_Idempotent(t *testing.T) {
	tk := newFakeToolkit()
	m := newTestManager(tk)

	require.NoError(t, m.Hide(TrayPopup))
	assert.False(t, m.State(TrayPopup).Exists, "hide must not create")

	require.NoError(t, m.ShowIfHidden(TrayPopup))
	require.NoError(t, m.Hide(TrayPopup))
	require.NoError(t, m.Hide(TrayPopup))
	assert.Equal(t, State{Exists: true, Visible: false, Position: geometry.Point{X: 1492, Y: 32}}, m.State(TrayPopup))
}

func TestFocusLostHidesWithoutDestroying(t *testing.T) {
	tk := newFakeToolkit()
	m := newTestManager(tk)

	_, err := m.Toggle(TrayPopup)
	require.NoError(t, err)

	tk.fire(TrayPopup, EventFocusLost)
	st := m.State(TrayPopup)
	assert.True(t, st.Exists)
	assert.False(t, st.Visible)

	_, err = m.Toggle(TrayPopup)
	require.NoError(t, err)
	assert.Equal(t, 1, tk.created[TrayPopup])
}

func TestMainCloseRequestHides(t *testing.T) {
	tk := newFakeToolkit()
	m := newTestManager(tk)

	require.NoError(t, m.Show(Main))
	assert.Equal(t, geometry.Point{X: 560, Y: 240}, m.State(Main).Position)

	tk.fire(Main, EventFocusLost)
	assert.True(t, m.State(Main).Visible, "main window ignores focus loss")

	tk.fire(Main, EventCloseRequested)
	st := m.State(Main)
	assert.True(t, st.Exists)
	assert.False(t, st.Visible)
}

func TestShow_RaisesVisibleWindow(t *testing.T) {
	tk := newFakeToolkit()
	m := newTestManager(tk)

	require.NoError(t, m.Show(Main))
	require.NoError(t, m.Show(Main))
	assert.Equal(t, 2, tk.handles[Main].focused)
}

func TestCreateFailureLeavesStateUnchanged(t *testing.T) {
	tk := newFakeToolkit()
	tk.createErr = errors.New("no display")
	m := newTestManager(tk)

	visible, err := m.Toggle(TrayPopup)
	require.Error(t, err)
	assert.False(t, visible)
	assert.Equal(t, State{}, m.State(TrayPopup))

	tk.createErr = nil
	visible, err = m.Toggle(TrayPopup)
	require.NoError(t, err)
	assert.True(t, visible)
}

func TestScreenErrorUsesDefaultScreen(t *testing.T) {
	tk := newFakeToolkit()
	tk.screen = geometry.Size{}
	tk.screenErr = errors.New("unsupported")
	m := newTestManager(tk)

	require.NoError(t, m.ShowIfHidden(TrayPopup))
	assert.Equal(t, geometry.Point{X: 1492, Y: 32}, m.State(TrayPopup).Position)
}

func TestUnknownWindow(t *testing.T) {
	m := newTestManager(newFakeToolkit())

	_, err := m.Toggle(ID("settings"))
	assert.ErrorIs(t, err, ErrUnknownWindow)
}

func TestConcurrentShowCreatesOnce(t *testing.T) {
	tk := newFakeToolkit()
	m := newTestManager(tk)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = m.ShowIfHidden(HighCPUAlert)
			} else {
				_ = m.Hide(HighCPUAlert)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, tk.created[HighCPUAlert])
}
