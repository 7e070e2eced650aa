package sandbox

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/block"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/physics"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/world"
)

// flatConfig builds a 40-column world whose surface is row 10 everywhere.
// The player spawns in column 20 with its center in cell (20, 9).
func flatConfig() config.SandboxConfig {
	cfg := config.DefaultSandboxConfig()
	cfg.World.Width = 40
	cfg.World.BaseHeight = 10
	cfg.World.MinSurface = 10
	cfg.World.MaxSurface = 10
	cfg.World.BedrockRow = 20
	cfg.Player.SpawnColumn = 20
	return cfg
}

func runtimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func newFlatGame(t *testing.T) *Game {
	t.Helper()
	g := NewWithConfig(world.GeneratorWalk, flatConfig())
	g.Reset(runtimeConfig())
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestResetSpawnsOnSurface(t *testing.T) {
	g := newFlatGame(t)
	p := g.Player()

	assert.InDelta(t, 10.0, p.Y+p.H, 1e-9, "feet should rest on the grass row")
	assert.True(t, p.OnGround)
	assert.False(t, physics.Overlaps(g.World(), p.Box()))

	cx, cy := p.CenterCell()
	assert.Equal(t, 20, cx)
	assert.Equal(t, 9, cy)
	assert.Equal(t, world.Cell{X: 21, Y: 10}, g.Target(), "default aim is the ground ahead")
}

func TestResetMovesSpawnAwayFromWall(t *testing.T) {
	cfg := flatConfig()
	cfg.Player.Width = 1.2
	cfg.Player.SpawnColumn = 0
	require.True(t, cfg.World.SideWalls)

	g := NewWithConfig(world.GeneratorWalk, cfg)
	g.Reset(runtimeConfig())

	p := g.Player()
	assert.False(t, physics.Overlaps(g.World(), p.Box()))
	cx, _ := p.CenterCell()
	assert.Equal(t, 20, cx)
	assert.InDelta(t, 10.0, p.Y+p.H, 1e-9)
}

func TestResetWithBadWorldUsesDefaults(t *testing.T) {
	cfg := flatConfig()
	cfg.World.MaxSurface = cfg.World.BedrockRow + 5

	g := NewWithConfig(world.GeneratorWalk, cfg)
	g.Reset(runtimeConfig())

	require.NotNil(t, g.World())
	require.NotNil(t, g.Hotbar())
	assert.Equal(t, config.DefaultSandboxConfig().World.Width, g.World().Width())
	assert.False(t, physics.Overlaps(g.World(), g.Player().Box()))
}

func TestBreakThenPlaceWithKeyboardAim(t *testing.T) {
	g := newFlatGame(t)
	target := world.Cell{X: 21, Y: 10}

	res := g.Step(frame(core.ActionBreak))
	assert.Equal(t, "broke grass", res.Status)
	assert.Equal(t, block.Air, g.World().GetCell(target))
	assert.Equal(t, 1, g.Stats().Broken)

	res = g.Step(frame(core.ActionPlace))
	assert.Equal(t, "placed dirt", res.Status)
	assert.Equal(t, block.Dirt, g.World().GetCell(target))
	assert.Equal(t, 1, g.Stats().Placed)
	assert.Equal(t, 2, res.State.Score)
}

func TestRejectedActionLeavesWorldAlone(t *testing.T) {
	g := newFlatGame(t)
	before := g.World().Len()

	// Target is grass: placing on an occupied cell is rejected.
	res := g.Step(frame(core.ActionPlace))
	assert.Equal(t, "can't place: cell occupied", res.Status)
	assert.Equal(t, before, g.World().Len())
	assert.Zero(t, g.Stats().Placed)

	// Aim up three times: (1, -2) from the center cell is open air.
	for i := 0; i < 3; i++ {
		g.Step(frame(core.ActionAimUp))
	}
	require.Equal(t, world.Cell{X: 21, Y: 7}, g.Target())
	res = g.Step(frame(core.ActionBreak))
	assert.Equal(t, "can't break: nothing to break", res.Status)
	assert.Zero(t, g.Stats().Broken)
}

func TestAimIsClampedToReach(t *testing.T) {
	g := newFlatGame(t)
	for i := 0; i < 10; i++ {
		g.Step(frame(core.ActionAimRight, core.ActionAimDown))
	}
	assert.Equal(t, world.Cell{X: 23, Y: 12}, g.Target())
}

func TestAimFollowsFacing(t *testing.T) {
	g := newFlatGame(t)
	g.Step(frame(core.ActionMoveLeft))

	cx, cy := g.Player().CenterCell()
	assert.Equal(t, world.Cell{X: cx - 1, Y: cy + 1}, g.Target())
	assert.False(t, g.Player().FacingRight)
}

func TestMouseTarget(t *testing.T) {
	g := newFlatGame(t)

	// 80x24 screen: 40 columns by 22 rows of world, centered on (20, 9).
	view := g.Viewport()
	require.Equal(t, core.NewRect(0, -2, 40, 22), view)

	f := frame(core.ActionBreak)
	f.PointAt(42, 12) // second glyph of cell (21, 10)
	res := g.Step(f)
	assert.Equal(t, "broke grass", res.Status)

	// Keyboard aim takes over again.
	g.Step(frame(core.ActionAimLeft))
	assert.Equal(t, world.Cell{X: 20, Y: 10}, g.Target())
}

func TestHotbarInput(t *testing.T) {
	g := newFlatGame(t)
	require.Equal(t, block.Dirt, g.Selected())

	f := core.NewInputFrame()
	f.SelectSlot(2)
	g.Step(f)
	assert.Equal(t, block.Stone, g.Selected())

	g.Step(frame(core.ActionHotbarNext))
	assert.Equal(t, block.Wood, g.Selected())

	g.Step(frame(core.ActionHotbarPrev))
	g.Step(frame(core.ActionHotbarPrev))
	g.Step(frame(core.ActionHotbarPrev))
	assert.Equal(t, block.Grass, g.Selected(), "scrolling wraps around")

	f = core.NewInputFrame()
	f.SelectSlot(9)
	g.Step(f)
	assert.Equal(t, block.Grass, g.Selected(), "out-of-range slots are ignored")
}

func TestPauseStopsSimulation(t *testing.T) {
	g := newFlatGame(t)

	res := g.Step(frame(core.ActionPause))
	assert.True(t, res.State.Paused)
	x := g.Player().X

	g.Step(frame(core.ActionMoveRight, core.ActionBreak))
	assert.Equal(t, x, g.Player().X)
	assert.Zero(t, g.Stats().Ticks)
	assert.Zero(t, g.Stats().Broken)

	res = g.Step(frame(core.ActionPause))
	assert.False(t, res.State.Paused)
}

func TestRespawn(t *testing.T) {
	g := newFlatGame(t)
	start := g.Player().X

	for i := 0; i < 30; i++ {
		g.Step(frame(core.ActionMoveRight))
	}
	require.Greater(t, g.Player().X, start)

	g.Step(frame(core.ActionRespawn))
	assert.InDelta(t, start, g.Player().X, 1e-9)
	assert.True(t, g.Player().OnGround)
}

func TestGameDeterminism(t *testing.T) {
	cfg := config.DefaultSandboxConfig()
	rc := runtimeConfig()
	rc.Seed = 12345

	inputs := make([]core.InputFrame, 400)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%100 < 60 {
			inputs[i].Set(core.ActionMoveRight)
		} else {
			inputs[i].Set(core.ActionMoveLeft)
		}
		if i%25 == 0 {
			inputs[i].Set(core.ActionJump)
		}
		if i%7 == 0 {
			inputs[i].Set(core.ActionBreak)
		}
		if i%11 == 0 {
			inputs[i].Set(core.ActionPlace)
		}
	}

	run := func() (*Game, core.SessionStats) {
		g := NewWithConfig(world.GeneratorPerlin, cfg)
		g.Reset(rc)
		for _, in := range inputs {
			g.Step(in)
		}
		return g, g.Stats()
	}

	g1, s1 := run()
	g2, s2 := run()

	assert.Equal(t, s1, s2)
	assert.Equal(t, *g1.Player(), *g2.Player())
	assert.Equal(t, g1.World().Len(), g2.World().Len())
	assert.Equal(t, 400, s1.Ticks)
}

func TestPlayerNeverInsideBlocks(t *testing.T) {
	g := NewWithConfig(world.GeneratorWalk, config.DefaultSandboxConfig())
	g.Reset(runtimeConfig())

	rng := rand.New(rand.NewSource(99))
	actions := []core.Action{
		core.ActionMoveLeft, core.ActionMoveRight, core.ActionJump,
		core.ActionBreak, core.ActionPlace,
		core.ActionAimUp, core.ActionAimDown, core.ActionAimLeft, core.ActionAimRight,
		core.ActionHotbarNext,
	}

	for i := 0; i < 3000; i++ {
		f := core.NewInputFrame()
		for _, a := range actions {
			if rng.Intn(3) == 0 {
				f.Set(a)
			}
		}
		g.Step(f)
		require.False(t, physics.Overlaps(g.World(), g.Player().Box()), "overlap at tick %d", i)
	}
}

func TestRenderDrawsPlayerAndHUD(t *testing.T) {
	g := newFlatGame(t)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	rows := strings.Split(out, "\n")

	assert.Contains(t, out, "o>")
	assert.Contains(t, rows[22], "[1:dirt]")
	assert.Contains(t, rows[23], "seed 7")

	// Grass row 10 is screen row 12 with the view starting at row -2.
	assert.Equal(t, '▀', screen.GetCell(0, 12).Rune, "grass glyph expected")
	assert.Equal(t, block.MustProps(block.Grass).Color, screen.GetCell(0, 12).Color)

	// Target marker on cell (21, 10).
	sx, sy := g.cellToScreen(world.Cell{X: 21, Y: 10})
	assert.Equal(t, 12, sy)
	assert.Equal(t, '[', screen.GetCell(sx, sy).Rune)
	assert.Equal(t, ']', screen.GetCell(sx+1, sy).Rune)
}

func TestVisibleMatchesWorld(t *testing.T) {
	g := newFlatGame(t)
	view := core.NewRect(18, 9, 4, 3)

	cells := g.Visible(view)
	// Rows 10 and 11 are solid across the 4 columns, row 9 is air.
	require.Len(t, cells, 8)
	for _, c := range cells {
		assert.Equal(t, g.World().GetCell(c.Cell), c.Kind)
		assert.NotEqual(t, 9, c.Y)
	}
}

func TestResizeKeepsWorld(t *testing.T) {
	g := newFlatGame(t)
	g.Step(frame(core.ActionBreak))
	n := g.World().Len()

	g.Resize(40, 12)
	assert.Equal(t, n, g.World().Len())
	assert.Equal(t, 20, g.Viewport().W)
	assert.Equal(t, 10, g.Viewport().H)
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{IDPerlin, IDWalk} {
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
	}
}
