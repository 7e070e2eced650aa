// Package interact decides whether the player may break or place a block at
// a target cell, and applies the change when it is legal.
//
// Rejected actions leave the world untouched and report why through Outcome.
package interact

import (
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/block"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/physics"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/world"
)

// Reach is the maximum Euclidean distance, in blocks, between the cell
// holding the player's center and the target cell. The bound is inclusive.
const Reach = 3

// Outcome is the result of a break or place attempt.
type Outcome int

const (
	OK             Outcome = iota
	OutOfReach             // target farther than Reach
	Obstructed             // a solid cell lies between player and target
	Empty                  // break target is Air
	Unbreakable            // break target cannot be removed (Bedrock)
	Occupied               // place target is not Air
	NotPlaceable           // kind cannot be placed (Air, Bedrock)
	Floating               // place target has no solid neighbor
	OverlapsPlayer         // place target intersects the player's box
)

// String returns a short status line for the outcome.
func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case OutOfReach:
		return "out of reach"
	case Obstructed:
		return "line of sight blocked"
	case Empty:
		return "nothing to break"
	case Unbreakable:
		return "unbreakable"
	case Occupied:
		return "cell occupied"
	case NotPlaceable:
		return "cannot place that"
	case Floating:
		return "needs a neighbor"
	case OverlapsPlayer:
		return "would trap you"
	default:
		return "unknown"
	}
}

// Store is the world access the resolver needs. *world.World satisfies it.
type Store interface {
	Get(x, y int) block.Kind
	Set(x, y int, k block.Kind)
	IsSolid(x, y int) bool
}

// TryBreak removes the block at target when it is in reach, visible and
// breakable.
func TryBreak(s Store, p *physics.Player, target world.Cell) Outcome {
	if o := checkAccess(s, p, target); o != OK {
		return o
	}

	k := s.Get(target.X, target.Y)
	if k == block.Air {
		return Empty
	}
	if !k.Breakable() {
		return Unbreakable
	}

	s.Set(target.X, target.Y, block.Air)
	return OK
}

// TryPlace puts kind at target when the cell is empty, in reach, visible,
// attached to a solid neighbor and clear of the player.
func TryPlace(s Store, p *physics.Player, target world.Cell, kind block.Kind) Outcome {
	if !kind.Placeable() {
		return NotPlaceable
	}
	if s.Get(target.X, target.Y) != block.Air {
		return Occupied
	}
	if o := checkAccess(s, p, target); o != OK {
		return o
	}
	if !HasSolidNeighbor(s, target) {
		return Floating
	}
	if cellBox(target).Intersects(p.Box()) {
		return OverlapsPlayer
	}

	s.Set(target.X, target.Y, kind)
	return OK
}

// InReach reports whether target is within Reach of the player's center cell.
func InReach(p *physics.Player, target world.Cell) bool {
	px, py := p.CenterCell()
	dx, dy := target.X-px, target.Y-py
	return dx*dx+dy*dy <= Reach*Reach
}

// LineOfSight reports whether no solid cell lies strictly between from and to.
// The path is the Bresenham line over grid cells; both endpoints are excluded.
func LineOfSight(s Store, from, to world.Cell) bool {
	clear := true
	bresenham(from, to, func(c world.Cell) bool {
		if c == from || c == to {
			return true
		}
		if s.IsSolid(c.X, c.Y) {
			clear = false
			return false
		}
		return true
	})
	return clear
}

// HasSolidNeighbor reports whether any of the eight surrounding cells is solid.
func HasSolidNeighbor(s Store, c world.Cell) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if s.IsSolid(c.X+dx, c.Y+dy) {
				return true
			}
		}
	}
	return false
}

func checkAccess(s Store, p *physics.Player, target world.Cell) Outcome {
	if !InReach(p, target) {
		return OutOfReach
	}
	px, py := p.CenterCell()
	if !LineOfSight(s, world.Cell{X: px, Y: py}, target) {
		return Obstructed
	}
	return OK
}

func cellBox(c world.Cell) core.Box {
	return core.Box{X: float64(c.X), Y: float64(c.Y), W: 1, H: 1}
}

// bresenham visits the cells of the line from a to b in order until visit
// returns false.
func bresenham(a, b world.Cell, visit func(world.Cell) bool) {
	dx := core.Abs(b.X - a.X)
	dy := -core.Abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	err := dx + dy
	x, y := a.X, a.Y
	for {
		if !visit(world.Cell{X: x, Y: y}) {
			return
		}
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}
