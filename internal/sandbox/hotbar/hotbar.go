// Package hotbar tracks which placeable block the player has selected.
package hotbar

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/block"
)

// ErrEmpty is returned when a hotbar is built without any slots.
var ErrEmpty = errors.New("hotbar: no slots")

// Hotbar is an ordered list of placeable kinds with a cyclic selection.
type Hotbar struct {
	slots    []block.Kind
	selected int
}

// New builds a hotbar. Every slot must hold a placeable kind.
func New(kinds []block.Kind) (*Hotbar, error) {
	if len(kinds) == 0 {
		return nil, ErrEmpty
	}
	for i, k := range kinds {
		if !k.Placeable() {
			return nil, fmt.Errorf("hotbar: slot %d holds %s, which cannot be placed", i+1, k)
		}
	}
	slots := make([]block.Kind, len(kinds))
	copy(slots, kinds)
	return &Hotbar{slots: slots}, nil
}

// Len returns the number of slots.
func (h *Hotbar) Len() int {
	return len(h.slots)
}

// Slots returns a copy of the slot kinds.
func (h *Hotbar) Slots() []block.Kind {
	out := make([]block.Kind, len(h.slots))
	copy(out, h.slots)
	return out
}

// Index returns the 0-based selected slot.
func (h *Hotbar) Index() int {
	return h.selected
}

// Selected returns the kind in the selected slot.
func (h *Hotbar) Selected() block.Kind {
	return h.slots[h.selected]
}

// Select picks a 0-based slot. Indices outside the bar are ignored.
func (h *Hotbar) Select(i int) bool {
	if i < 0 || i >= len(h.slots) {
		return false
	}
	h.selected = i
	return true
}

// Scroll moves the selection by delta slots, wrapping at both ends.
func (h *Hotbar) Scroll(delta int) {
	h.selected = core.Wrap(h.selected+delta, len(h.slots))
}
