// Package physics moves the player through the block grid.
//
// Movement is resolved one axis at a time, X first and then Y. Each axis sweep
// visits every grid column (or row) the bounding box would pass through, so a
// fast body cannot skip over a thin wall and a diagonal move cannot slip
// between two solid cells that only touch at a corner.
package physics

import (
	"github.com/vovakirdan/tui-sandbox/internal/core"
)

// eps absorbs floating-point error when a box edge sits exactly on a cell
// boundary.
const eps = 1e-9

// maxSpawnRise bounds how far Spawn lifts the player above the surface hint.
const maxSpawnRise = 256

// Grid answers solidity queries. *world.World satisfies it.
type Grid interface {
	IsSolid(x, y int) bool
}

// Params holds the tunable constants, in blocks and seconds.
type Params struct {
	Gravity      float64 // downward acceleration (positive)
	JumpImpulse  float64 // vertical speed set by a jump (negative, upward)
	MoveSpeed    float64 // horizontal speed while a direction is held
	MaxFallSpeed float64 // terminal downward speed
}

// Intent is the movement the player asks for in one frame.
type Intent struct {
	Move int // -1 left, 0 none, +1 right
	Jump bool
}

// Player is the kinematic state of the player body.
// (X, Y) is the top-left corner of its bounding box.
type Player struct {
	X, Y        float64
	W, H        float64
	VX, VY      float64
	OnGround    bool
	FacingRight bool
}

// NewPlayer creates a player at rest with the given box.
func NewPlayer(x, y, w, h float64) *Player {
	return &Player{X: x, Y: y, W: w, H: h, FacingRight: true}
}

// Box returns the current bounding box.
func (p *Player) Box() core.Box {
	return core.Box{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// CenterCell returns the grid cell containing the center of the box.
func (p *Player) CenterCell() (int, int) {
	cx, cy := p.Box().Center()
	return core.FloorInt(cx), core.FloorInt(cy)
}

// Step advances the player by dt seconds against the grid.
func Step(p *Player, g Grid, in Intent, prm Params, dt float64) {
	p.VX = float64(sign(in.Move)) * prm.MoveSpeed
	if in.Move < 0 {
		p.FacingRight = false
	} else if in.Move > 0 {
		p.FacingRight = true
	}

	if in.Jump && p.OnGround {
		p.VY = prm.JumpImpulse
		p.OnGround = false
	}

	p.VY += prm.Gravity * dt
	if p.VY > prm.MaxFallSpeed {
		p.VY = prm.MaxFallSpeed
	}

	moveX(p, g, p.VX*dt)
	moveY(p, g, p.VY*dt)
}

// moveX sweeps the leading vertical edge across every column it enters.
func moveX(p *Player, g Grid, dx float64) {
	if dx == 0 {
		return
	}
	r0, r1 := span(p.Y, p.Y+p.H)

	if dx > 0 {
		edge := p.X + p.W
		for c := core.FloorInt(edge-eps) + 1; c <= core.FloorInt(edge+dx-eps); c++ {
			if columnSolid(g, c, r0, r1) {
				p.X = float64(c) - p.W
				p.VX = 0
				return
			}
		}
	} else {
		for c := core.FloorInt(p.X+eps) - 1; c >= core.FloorInt(p.X+dx+eps); c-- {
			if columnSolid(g, c, r0, r1) {
				p.X = float64(c + 1)
				p.VX = 0
				return
			}
		}
	}
	p.X += dx
}

// moveY sweeps the leading horizontal edge across every row it enters and
// maintains OnGround.
func moveY(p *Player, g Grid, dy float64) {
	c0, c1 := span(p.X, p.X+p.W)
	p.OnGround = false

	switch {
	case dy > 0:
		edge := p.Y + p.H
		for r := core.FloorInt(edge-eps) + 1; r <= core.FloorInt(edge+dy-eps); r++ {
			if rowSolid(g, r, c0, c1) {
				p.Y = float64(r) - p.H
				p.VY = 0
				p.OnGround = true
				return
			}
		}
	case dy < 0:
		for r := core.FloorInt(p.Y+eps) - 1; r >= core.FloorInt(p.Y+dy+eps); r-- {
			if rowSolid(g, r, c0, c1) {
				p.Y = float64(r + 1)
				p.VY = 0
				return
			}
		}
	default:
		p.OnGround = Grounded(p, g)
		return
	}
	p.Y += dy
}

// Grounded reports whether the row directly under the box is solid and the
// box rests on it.
func Grounded(p *Player, g Grid) bool {
	bottom := p.Y + p.H
	if bottom-float64(core.FloorInt(bottom+eps)) > eps {
		return false
	}
	c0, c1 := span(p.X, p.X+p.W)
	return rowSolid(g, core.FloorInt(bottom+eps), c0, c1)
}

// Overlaps reports whether any cell covered by box is solid.
func Overlaps(g Grid, box core.Box) bool {
	c0, c1 := span(box.X, box.Right())
	r0, r1 := span(box.Y, box.Bottom())
	for y := r0; y <= r1; y++ {
		if rowSolid(g, y, c0, c1) {
			return true
		}
	}
	return false
}

// Spawn puts the player on top of the given surface row in column x,
// centered in the column, then raises it until the box is free.
// It reports false if no free spot exists within maxSpawnRise rows; the
// player is then left at the surface hint.
func Spawn(p *Player, g Grid, x, surface int) bool {
	p.X = float64(x) + (1-p.W)/2
	p.Y = float64(surface) - p.H
	p.VX, p.VY = 0, 0

	free := false
	for i := 0; i <= maxSpawnRise; i++ {
		if !Overlaps(g, p.Box()) {
			free = true
			break
		}
		p.Y--
	}
	if !free {
		p.Y = float64(surface) - p.H
	}
	p.OnGround = Grounded(p, g)
	return free
}

// span returns the first and last cell index covered by [lo, hi).
func span(lo, hi float64) (int, int) {
	return core.FloorInt(lo + eps), core.FloorInt(hi - eps)
}

func columnSolid(g Grid, x, r0, r1 int) bool {
	for y := r0; y <= r1; y++ {
		if g.IsSolid(x, y) {
			return true
		}
	}
	return false
}

func rowSolid(g Grid, y, c0, c1 int) bool {
	for x := c0; x <= c1; x++ {
		if g.IsSolid(x, y) {
			return true
		}
	}
	return false
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
