package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/storage"
)

// holdDuration is how long a movement key counts as held after its last
// press or auto-repeat. Terminals report no key releases.
const holdDuration = 150 * time.Millisecond

// resizer is implemented by games that can follow a terminal resize
// without being reset.
type resizer interface {
	Resize(w, h int)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configure a game Model.
type Options struct {
	Store  *storage.Store // nil disables session stats
	Logger *log.Logger    // nil discards logs
	Player string         // recorded with the session
	Menu   bool           // allow going back to a menu with B while paused
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	player     string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	held       map[core.Action]int // remaining ticks per held movement key
	holdTicks  int
	width      int
	height     int
	withMenu   bool
	quitting   bool
	backToMenu bool
	saved      *bool // shared across model copies so a session is saved once
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		store:      opts.Store,
		logger:     logger,
		player:     opts.Player,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
		held:       make(map[core.Action]int),
		holdTicks:  core.Max(1, int(holdDuration*time.Duration(cfg.TickRate)/time.Second)),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		withMenu:   opts.Menu,
		saved:      new(bool),
	}
	m.config.ScreenH = m.gameHeight()
	m.screen = core.NewScreen(m.config.ScreenW, m.config.ScreenH)
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("session started",
		"game", m.game.ID(),
		"player", m.player,
		"seed", m.config.Seed,
	)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys

	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeGame()
		return m, nil
	case m.withMenu && m.gameState.Paused && key.Matches(msg, keys.Back):
		m.finish()
		m.backToMenu = true
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	// Movement keys stay held until the auto-repeat stops.
	action, _ := m.keyMapper.MapKey(msg)
	switch action {
	case core.ActionMoveLeft:
		m.held[core.ActionMoveLeft] = m.holdTicks
		delete(m.held, core.ActionMoveRight)
	case core.ActionMoveRight:
		m.held[core.ActionMoveRight] = m.holdTicks
		delete(m.held, core.ActionMoveLeft)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.resizeGame()
	return m, nil
}

// resizeGame gives the game everything above the help footer.
func (m *Model) resizeGame() {
	m.config.ScreenW = m.width
	m.config.ScreenH = m.gameHeight()
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)

	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
		return
	}
	m.game.Reset(m.config)
}

func (m Model) gameHeight() int {
	return core.Max(1, m.height-lipgloss.Height(m.help.View(m.keyMapper.Keys)))
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	for a, n := range m.held {
		m.inputFrame.Set(a)
		if n <= 1 {
			delete(m.held, a)
		} else {
			m.held[a] = n - 1
		}
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.Status != "" {
		m.logger.Debug("action", "game", m.game.ID(), "status", result.Status)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// finish records the session once.
func (m *Model) finish() {
	if *m.saved {
		return
	}
	*m.saved = true

	st := m.game.Stats()
	m.logger.Info("session ended",
		"game", m.game.ID(),
		"player", m.player,
		"ticks", st.Ticks,
		"broken", st.Broken,
		"placed", st.Placed,
	)

	if m.store == nil || st.Ticks == 0 {
		return
	}
	_, err := m.store.SaveSession(storage.SessionRecord{
		Variant: m.game.ID(),
		Player:  m.player,
		Seed:    st.Seed,
		Ticks:   st.Ticks,
		Broken:  st.Broken,
		Placed:  st.Placed,
	})
	if err != nil {
		m.logger.Warn("could not save session", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".sandbox", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keyMapper.Keys)))
	return b.String()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Stats returns the session counters of the running game.
func (m Model) Stats() core.SessionStats {
	return m.game.Stats()
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Pointer aims even without a button held
	)

	_, err := p.Run()
	return err
}
