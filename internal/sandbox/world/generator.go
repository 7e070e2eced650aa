package world

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/block"
)

// Terrain generator names.
const (
	GeneratorPerlin = "perlin"
	GeneratorWalk   = "walk"
)

// NoiseParams shapes the Perlin height function.
type NoiseParams struct {
	Amplitude float64 // max deviation from the base height, in blocks
	Scale     float64 // noise input per column; smaller is smoother
	Alpha     float64 // perlin weight divisor between octaves
	Beta      float64 // perlin frequency multiplier between octaves
	Octaves   int32
}

// Params describes a terrain layout.
type Params struct {
	Width      int  // generated columns
	BaseHeight int  // surface row the terrain oscillates around
	MinSurface int  // highest allowed surface row (smallest y)
	MaxSurface int  // lowest allowed surface row (largest y)
	DirtDepth  int  // dirt cells under the grass
	BedrockRow int  // first row that is always Bedrock
	MaxStep    int  // max surface difference between adjacent columns
	SideWalls  bool // Bedrock outside [0, Width)
	Generator  string
	Noise      NoiseParams
}

// ErrInvalidParams is wrapped by every Params validation failure.
var ErrInvalidParams = errors.New("world: invalid generation parameters")

// Validate checks that the parameters describe a buildable world.
func (p Params) Validate() error {
	switch {
	case p.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidParams, p.Width)
	case p.BedrockRow <= 0:
		return fmt.Errorf("%w: bedrock row must be positive, got %d", ErrInvalidParams, p.BedrockRow)
	case p.DirtDepth < 0:
		return fmt.Errorf("%w: dirt depth must not be negative, got %d", ErrInvalidParams, p.DirtDepth)
	case p.MaxStep <= 0:
		return fmt.Errorf("%w: max step must be positive, got %d", ErrInvalidParams, p.MaxStep)
	case p.MinSurface < 0 || p.MinSurface > p.MaxSurface:
		return fmt.Errorf("%w: surface range [%d, %d] is empty", ErrInvalidParams, p.MinSurface, p.MaxSurface)
	case p.MaxSurface+p.DirtDepth >= p.BedrockRow:
		return fmt.Errorf("%w: surface %d plus dirt %d reaches bedrock row %d",
			ErrInvalidParams, p.MaxSurface, p.DirtDepth, p.BedrockRow)
	case p.BaseHeight < p.MinSurface || p.BaseHeight > p.MaxSurface:
		return fmt.Errorf("%w: base height %d outside surface range [%d, %d]",
			ErrInvalidParams, p.BaseHeight, p.MinSurface, p.MaxSurface)
	}

	switch p.Generator {
	case GeneratorPerlin:
		if p.Noise.Octaves <= 0 || p.Noise.Scale <= 0 {
			return fmt.Errorf("%w: perlin needs positive octaves and scale", ErrInvalidParams)
		}
	case GeneratorWalk:
	default:
		return fmt.Errorf("%w: unknown generator %q", ErrInvalidParams, p.Generator)
	}
	return nil
}

// Generate builds a world from a height map: Air above the surface, one Grass
// cell on it, DirtDepth Dirt cells below, then Stone down to the bedrock row.
// The same params and seed always produce the same world.
func Generate(p Params, seed int64) (*World, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	heights := SurfaceHeights(p, seed)
	w := New(p.Width, p.BedrockRow, p.SideWalls)
	w.heights = heights

	for x, h := range heights {
		w.Set(x, h, block.Grass)
		for y := h + 1; y < p.BedrockRow; y++ {
			if y <= h+p.DirtDepth {
				w.Set(x, y, block.Dirt)
			} else {
				w.Set(x, y, block.Stone)
			}
		}
	}
	return w, nil
}

// SurfaceHeights computes the surface row of every column.
// Each column's raw height comes from the generator; it is then clamped to
// MaxStep of its left neighbor and to the surface range.
func SurfaceHeights(p Params, seed int64) []int {
	raw := rawHeights(p, seed)

	heights := make([]int, p.Width)
	prev := p.BaseHeight
	for x, h := range raw {
		if x > 0 {
			h = core.Clamp(h, prev-p.MaxStep, prev+p.MaxStep)
		}
		h = core.Clamp(h, p.MinSurface, p.MaxSurface)
		heights[x] = h
		prev = h
	}
	return heights
}

func rawHeights(p Params, seed int64) []int {
	raw := make([]int, p.Width)

	switch p.Generator {
	case GeneratorWalk:
		// Bounded random walk, one step per column.
		rng := rand.New(rand.NewSource(seed))
		h := p.BaseHeight
		for x := range raw {
			h += rng.Intn(2*p.MaxStep+1) - p.MaxStep
			h = core.Clamp(h, p.MinSurface, p.MaxSurface)
			raw[x] = h
		}
	default:
		noise := perlin.NewPerlin(p.Noise.Alpha, p.Noise.Beta, p.Noise.Octaves, seed)
		for x := range raw {
			n := noise.Noise1D(float64(x) * p.Noise.Scale)
			raw[x] = p.BaseHeight + int(math.Round(n*p.Noise.Amplitude))
		}
	}
	return raw
}
