package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sandbox/internal/core"
)

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Jump       key.Binding
	Break      key.Binding
	Place      key.Binding
	AimUp      key.Binding
	AimDown    key.Binding
	AimLeft    key.Binding
	AimRight   key.Binding
	NextSlot   key.Binding
	PrevSlot   key.Binding
	Slot       key.Binding
	Respawn    key.Binding
	Pause      key.Binding
	Back       key.Binding
	Help       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Jump, k.Break, k.Place, k.AimUp, k.Slot, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump, k.Respawn},
		{k.Break, k.Place, k.AimUp, k.AimDown, k.AimLeft, k.AimRight},
		{k.Slot, k.NextSlot, k.PrevSlot},
		{k.Pause, k.Back, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/d", "move"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/right", "move right"),
		),
		Jump: key.NewBinding(
			key.WithKeys("w", "up", " "),
			key.WithHelp("w/space", "jump"),
		),
		Break: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x/lmb", "break"),
		),
		Place: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c/rmb", "place"),
		),
		AimUp: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("ijkl", "aim"),
		),
		AimDown: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "aim down"),
		),
		AimLeft: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "aim left"),
		),
		AimRight: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "aim right"),
		),
		NextSlot: key.NewBinding(
			key.WithKeys("]", "e"),
			key.WithHelp("]/wheel", "next block"),
		),
		PrevSlot: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev block"),
		),
		Slot: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "hotbar"),
		),
		Respawn: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "respawn"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "menu (paused)"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key and mouse messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	Keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{Keys: DefaultKeyMap()}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.Keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Left):
		return core.ActionMoveLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionMoveRight, false
	case key.Matches(msg, k.Jump):
		return core.ActionJump, false
	case key.Matches(msg, k.Break):
		return core.ActionBreak, false
	case key.Matches(msg, k.Place):
		return core.ActionPlace, false
	case key.Matches(msg, k.AimUp):
		return core.ActionAimUp, false
	case key.Matches(msg, k.AimDown):
		return core.ActionAimDown, false
	case key.Matches(msg, k.AimLeft):
		return core.ActionAimLeft, false
	case key.Matches(msg, k.AimRight):
		return core.ActionAimRight, false
	case key.Matches(msg, k.NextSlot):
		return core.ActionHotbarNext, false
	case key.Matches(msg, k.PrevSlot):
		return core.ActionHotbarPrev, false
	case key.Matches(msg, k.Respawn):
		return core.ActionRespawn, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	}
	return core.ActionNone, false
}

// SlotKey returns the 1-based hotbar slot for a digit key, or 0.
func (km *KeyMapper) SlotKey(msg tea.KeyMsg) int {
	if !key.Matches(msg, km.Keys.Slot) {
		return 0
	}
	return int(msg.String()[0] - '0')
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	if n := km.SlotKey(msg); n > 0 {
		frame.SelectSlot(n)
		return false
	}
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouseToFrame records the pointer and turns button presses into actions:
// left breaks, right places, the wheel scrolls the hotbar.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) {
	frame.PointAt(msg.X, msg.Y)
	if msg.Action != tea.MouseActionPress {
		return
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		frame.Set(core.ActionBreak)
	case tea.MouseButtonRight:
		frame.Set(core.ActionPlace)
	case tea.MouseButtonWheelUp:
		frame.Set(core.ActionHotbarPrev)
	case tea.MouseButtonWheelDown:
		frame.Set(core.ActionHotbarNext)
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionStats
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionStats
	}
	return MenuActionNone
}
