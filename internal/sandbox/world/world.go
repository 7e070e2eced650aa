// Package world holds the block grid: a sparse map from integer cells to
// block kinds with explicit rules for cells that were never written.
package world

import (
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/block"
)

// Cell is an integer grid coordinate. Y grows downward.
type Cell struct {
	X, Y int
}

// Add returns the cell offset by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// World is the block store.
//
// Resolution rules for Get:
//   - rows at or below the bedrock row are Bedrock
//   - with side walls, columns outside [0, width) are Bedrock
//   - any other cell that was never set, or was set to Air, is Air
type World struct {
	blocks     map[Cell]block.Kind
	width      int
	bedrockRow int
	sideWalls  bool
	top        int   // smallest y ever holding a non-Air block
	heights    []int // surface row per column at generation time
}

// New creates an empty world with the given horizontal extent and border.
func New(width, bedrockRow int, sideWalls bool) *World {
	return &World{
		blocks:     make(map[Cell]block.Kind),
		width:      width,
		bedrockRow: bedrockRow,
		sideWalls:  sideWalls,
		top:        bedrockRow,
	}
}

// Width returns the number of generated columns.
func (w *World) Width() int {
	return w.width
}

// BedrockRow returns the first row that is always Bedrock.
func (w *World) BedrockRow() int {
	return w.bedrockRow
}

// SideWalls reports whether columns outside the generated range are Bedrock.
func (w *World) SideWalls() bool {
	return w.sideWalls
}

// InColumns reports whether x is inside the generated column range.
func (w *World) InColumns(x int) bool {
	return x >= 0 && x < w.width
}

// Get returns the kind stored at (x, y) after applying the border rules.
func (w *World) Get(x, y int) block.Kind {
	if y >= w.bedrockRow {
		return block.Bedrock
	}
	if w.sideWalls && !w.InColumns(x) {
		return block.Bedrock
	}
	if k, ok := w.blocks[Cell{X: x, Y: y}]; ok {
		return k
	}
	return block.Air
}

// GetCell is Get for a Cell value.
func (w *World) GetCell(c Cell) block.Kind {
	return w.Get(c.X, c.Y)
}

// Set writes one cell. Writing Air removes the entry.
// No legality checks happen here; callers decide what may change.
func (w *World) Set(x, y int, k block.Kind) {
	c := Cell{X: x, Y: y}
	if k == block.Air {
		delete(w.blocks, c)
		return
	}
	w.blocks[c] = k
	if y < w.top {
		w.top = y
	}
}

// SetCell is Set for a Cell value.
func (w *World) SetCell(c Cell, k block.Kind) {
	w.Set(c.X, c.Y, k)
}

// IsSolid reports whether the block at (x, y) blocks movement.
func (w *World) IsSolid(x, y int) bool {
	return w.Get(x, y).Solid()
}

// SurfaceHeight returns the row of the topmost solid cell in column x.
// Columns with nothing above bedrock report the bedrock row.
func (w *World) SurfaceHeight(x int) int {
	for y := w.top; y < w.bedrockRow; y++ {
		if w.IsSolid(x, y) {
			return y
		}
	}
	return w.bedrockRow
}

// Heights returns a copy of the generated surface rows, indexed by column.
func (w *World) Heights() []int {
	out := make([]int, len(w.heights))
	copy(out, w.heights)
	return out
}

// Len returns the number of explicitly stored non-Air cells.
func (w *World) Len() int {
	return len(w.blocks)
}

// Bounds returns the rectangle spanning the generated columns from the
// highest non-Air row down to the bedrock row (inclusive).
func (w *World) Bounds() core.Rect {
	return core.NewRect(0, w.top, w.width, w.bedrockRow-w.top+1)
}

// Placed is one non-Air cell reported by Visible.
type Placed struct {
	Cell
	Kind block.Kind
}

// Visible returns every non-Air cell inside view, row by row.
// Border rules apply, so bedrock and side walls show up too.
func (w *World) Visible(view core.Rect) []Placed {
	out := make([]Placed, 0, view.W*view.H/2)
	for y := view.Y; y < view.Bottom(); y++ {
		for x := view.X; x < view.Right(); x++ {
			if k := w.Get(x, y); k != block.Air {
				out = append(out, Placed{Cell: Cell{X: x, Y: y}, Kind: k})
			}
		}
	}
	return out
}
