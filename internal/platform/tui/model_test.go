package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/storage"
)

// recordingGame captures every frame it is stepped with.
type recordingGame struct {
	frames  []core.InputFrame
	resets  int
	resized [2]int
	paused  bool
	stats   core.SessionStats
}

func (g *recordingGame) ID() string { return "recording" }
func (g *recordingGame) Title() string { return "Recording" }

func (g *recordingGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.stats.Seed = cfg.Seed
}

func (g *recordingGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	g.stats.Ticks++
	return core.StepResult{State: g.State()}
}

func (g *recordingGame) Render(*core.Screen) {}
func (g *recordingGame) State() core.GameState { return core.GameState{Paused: g.paused} }
func (g *recordingGame) Stats() core.SessionStats { return g.stats }
func (g *recordingGame) Resize(w, h int) { g.resized = [2]int{w, h} }
func (g *recordingGame) last() core.InputFrame { return g.frames[len(g.frames)-1] }

func newTestModel(g *recordingGame, opts Options) Model {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
	m := NewModel(g, cfg, opts)
	m.Init()
	return m
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func tick(m Model) Model {
	return send(m, TickMsg{})
}

func TestMovementKeyIsHeld(t *testing.T) {
	g := &recordingGame{}
	m := newTestModel(g, Options{})

	m = send(m, runeKey('d'))
	for i := 0; i < m.holdTicks; i++ {
		m = tick(m)
		if !g.last().Has(core.ActionMoveRight) {
			t.Fatalf("tick %d: move right should still be held", i)
		}
	}

	m = tick(m)
	if g.last().Has(core.ActionMoveRight) {
		t.Error("move right should be released after the hold window")
	}
}

func TestOppositeDirectionCancelsHold(t *testing.T) {
	g := &recordingGame{}
	m := newTestModel(g, Options{})

	m = send(m, runeKey('d'))
	m = send(m, runeKey('a'))
	m = tick(m)

	if g.last().Has(core.ActionMoveRight) {
		t.Error("pressing left should cancel a held right")
	}
	if !g.last().Has(core.ActionMoveLeft) {
		t.Error("move left should be set")
	}
}

func TestOneShotActionsLastOneTick(t *testing.T) {
	g := &recordingGame{}
	m := newTestModel(g, Options{})

	m = send(m, runeKey('x'))
	m = send(m, runeKey('3'))
	m = tick(m)
	if !g.last().Has(core.ActionBreak) || g.last().Slot != 3 {
		t.Errorf("first tick should carry break and slot 3, got %+v", g.last())
	}

	m = tick(m)
	if g.last().Has(core.ActionBreak) || g.last().Slot != 0 {
		t.Errorf("second tick should be empty, got %+v", g.last())
	}
}

func TestMouseCursorIsSticky(t *testing.T) {
	g := &recordingGame{}
	m := newTestModel(g, Options{})

	m = send(m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m = tick(m)
	if !g.last().Has(core.ActionPlace) {
		t.Error("right click should place")
	}

	m = tick(m)
	if c := g.last().Cursor; c == nil || c.X != 10 || c.Y != 5 {
		t.Errorf("cursor should persist between ticks, got %v", c)
	}
}

func TestResizeDoesNotReset(t *testing.T) {
	g := &recordingGame{}
	m := newTestModel(g, Options{})
	resets := g.resets

	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resets != resets {
		t.Error("resizable games should not be reset")
	}
	if g.resized[0] != 100 || g.resized[1] >= 30 {
		t.Errorf("game resized to %v, want width 100 and room for the footer", g.resized)
	}
	if m.config.ScreenH != g.resized[1] {
		t.Errorf("screen height %d does not match game height %d", m.config.ScreenH, g.resized[1])
	}
}

func TestQuitSavesSessionOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &recordingGame{}
	m := newTestModel(g, Options{Store: store, Player: "tester"})
	for i := 0; i < 5; i++ {
		m = tick(m)
	}
	g.stats.Broken, g.stats.Placed = 2, 1

	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)
	if cmd == nil || !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	m.finish()

	sessions, err := store.RecentSessions("recording", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 saved session, got %d", len(sessions))
	}
	s := sessions[0]
	if s.Player != "tester" || s.Seed != 42 || s.Ticks != 5 || s.Broken != 2 || s.Placed != 1 {
		t.Errorf("unexpected session %+v", s)
	}
}

func TestBackToMenuOnlyWhilePaused(t *testing.T) {
	g := &recordingGame{}
	m := newTestModel(g, Options{Menu: true})

	m = send(m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("b should do nothing while playing")
	}

	m = send(m, runeKey('p'))
	m = tick(m)
	m = send(m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("b should go back to the menu while paused")
	}
}
