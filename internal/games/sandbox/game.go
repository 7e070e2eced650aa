// Package sandbox implements the 2D block sandbox.
// The player walks over generated terrain and breaks or places blocks
// within reach. The Game struct owns the world, the player and the hotbar.
package sandbox

import (
	"fmt"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/block"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/hotbar"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/interact"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/physics"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/world"
)

// Registered variant IDs.
const (
	IDPerlin = "sandbox"
	IDWalk   = "sandbox_walk"
)

// statusTicks is how long a status note stays in the HUD.
const statusTicks = 90

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the sandbox logic.
type Game struct {
	id        string
	title     string
	generator string

	cfg     config.SandboxConfig
	runtime core.RuntimeConfig
	params  physics.Params

	world  *world.World
	player *physics.Player
	hotbar *hotbar.Hotbar

	aim      world.Cell  // keyboard aim, relative to the player's center cell
	cursor   *core.Point // last pointer position on screen
	useMouse bool        // true once the pointer moved after the last aim key
	target   world.Cell
	view     core.Rect // last rendered viewport, in world cells

	stats      core.SessionStats
	paused     bool
	status     string
	statusLeft int
}

// New creates a sandbox using the given terrain generator.
func New(generator string) *Game {
	g := &Game{generator: generator}
	switch generator {
	case world.GeneratorWalk:
		g.id, g.title = IDWalk, "Sandbox (random walk)"
	default:
		g.id, g.title = IDPerlin, "Sandbox"
	}
	return g
}

// NewWithConfig creates a sandbox that skips config file lookup.
func NewWithConfig(generator string, cfg config.SandboxConfig) *Game {
	g := New(generator)
	g.cfg = cfg
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset generates a fresh world from cfg.Seed and spawns the player.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg

	if g.cfg.World.Width == 0 {
		loaded, err := config.LoadSandbox(configPath)
		if err != nil {
			loaded = config.DefaultSandboxConfig()
		}
		g.cfg = loaded
	}
	g.cfg.World.Generator = g.generator
	g.params = g.cfg.PhysicsParams()

	w, err := world.Generate(g.cfg.WorldParams(), cfg.Seed)
	if err != nil {
		// Config was validated on load; only a hand-built config can get here.
		def := config.DefaultSandboxConfig()
		def.World.Generator = g.generator
		g.cfg = def
		g.params = def.PhysicsParams()
		if w, err = world.Generate(def.WorldParams(), cfg.Seed); err != nil {
			panic(fmt.Sprintf("sandbox: default world params: %v", err))
		}
	}
	g.world = w

	hb, err := hotbar.New(g.cfg.Hotbar)
	if err != nil {
		if hb, err = hotbar.New(config.DefaultSandboxConfig().Hotbar); err != nil {
			panic(fmt.Sprintf("sandbox: default hotbar: %v", err))
		}
	}
	g.hotbar = hb

	g.player = physics.NewPlayer(0, 0, g.cfg.Player.Width, g.cfg.Player.Height)
	g.respawn()

	g.aim = world.Cell{X: 1, Y: 1}
	g.cursor = nil
	g.useMouse = false
	g.stats = core.SessionStats{Seed: cfg.Seed}
	g.paused = false
	g.status = ""
	g.statusLeft = 0
	g.view = g.viewport(cfg.ScreenW, cfg.ScreenH)
	g.target = g.resolveTarget()
}

// respawn places the player at the configured column, falling back to the
// middle of the world when that column has no free spot.
func (g *Game) respawn() {
	x := g.cfg.SpawnColumn()
	if physics.Spawn(g.player, g.world, x, g.world.SurfaceHeight(x)) {
		return
	}
	x = g.world.Width() / 2
	physics.Spawn(g.player, g.world, x, g.world.SurfaceHeight(x))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.stats.Ticks++
	if g.statusLeft > 0 {
		g.statusLeft--
		if g.statusLeft == 0 {
			g.status = ""
		}
	}

	// Hotbar
	if in.Slot > 0 {
		g.hotbar.Select(in.Slot - 1)
	}
	if in.Has(core.ActionHotbarNext) {
		g.hotbar.Scroll(1)
	}
	if in.Has(core.ActionHotbarPrev) {
		g.hotbar.Scroll(-1)
	}

	g.updateAim(in)

	// Movement
	move := 0
	if in.Has(core.ActionMoveLeft) {
		move--
	}
	if in.Has(core.ActionMoveRight) {
		move++
	}
	if move != 0 && g.aim.X*move < 0 {
		g.aim.X = -g.aim.X
	}
	physics.Step(g.player, g.world, physics.Intent{Move: move, Jump: in.Has(core.ActionJump)}, g.params, g.runtime.DT())

	if in.Has(core.ActionRespawn) {
		g.respawn()
		g.setStatus("respawned")
	}

	g.view = g.viewport(g.runtime.ScreenW, g.runtime.ScreenH)
	g.target = g.resolveTarget()

	var note string
	if in.Has(core.ActionBreak) {
		note = g.tryBreak()
	}
	if in.Has(core.ActionPlace) {
		note = g.tryPlace()
	}

	return core.StepResult{State: g.State(), Status: note}
}

// updateAim moves the keyboard aim or switches to the pointer.
func (g *Game) updateAim(in core.InputFrame) {
	if in.Cursor != nil && (g.cursor == nil || *in.Cursor != *g.cursor) {
		p := *in.Cursor
		g.cursor = &p
		g.useMouse = true
	}

	dx, dy := 0, 0
	if in.Has(core.ActionAimLeft) {
		dx--
	}
	if in.Has(core.ActionAimRight) {
		dx++
	}
	if in.Has(core.ActionAimUp) {
		dy--
	}
	if in.Has(core.ActionAimDown) {
		dy++
	}
	if dx != 0 || dy != 0 {
		g.useMouse = false
		g.aim.X = core.Clamp(g.aim.X+dx, -interact.Reach, interact.Reach)
		g.aim.Y = core.Clamp(g.aim.Y+dy, -interact.Reach, interact.Reach)
	}
}

// resolveTarget returns the cell under the pointer, or the keyboard aim.
func (g *Game) resolveTarget() world.Cell {
	if g.useMouse && g.cursor != nil {
		if c, ok := g.screenToCell(g.cursor.X, g.cursor.Y); ok {
			return c
		}
	}
	px, py := g.player.CenterCell()
	return world.Cell{X: px, Y: py}.Add(g.aim.X, g.aim.Y)
}

func (g *Game) tryBreak() string {
	k := g.world.GetCell(g.target)
	out := interact.TryBreak(g.world, g.player, g.target)
	if out != interact.OK {
		return g.reject("break", out)
	}
	g.stats.Broken++
	return g.setStatus("broke " + k.String())
}

func (g *Game) tryPlace() string {
	k := g.hotbar.Selected()
	out := interact.TryPlace(g.world, g.player, g.target, k)
	if out != interact.OK {
		return g.reject("place", out)
	}
	g.stats.Placed++
	return g.setStatus("placed " + k.String())
}

func (g *Game) reject(verb string, out interact.Outcome) string {
	return g.setStatus(fmt.Sprintf("can't %s: %s", verb, out))
}

func (g *Game) setStatus(s string) string {
	g.status = s
	g.statusLeft = statusTicks
	return s
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.stats.Broken + g.stats.Placed,
		Paused: g.paused,
	}
}

// Stats returns the session counters.
func (g *Game) Stats() core.SessionStats {
	return g.stats
}

// World exposes the block store, mainly for tests and tooling.
func (g *Game) World() *world.World {
	return g.world
}

// Player returns the player body.
func (g *Game) Player() *physics.Player {
	return g.player
}

// Hotbar returns the hotbar.
func (g *Game) Hotbar() *hotbar.Hotbar {
	return g.hotbar
}

// Target returns the cell the next break or place acts on.
func (g *Game) Target() world.Cell {
	return g.target
}

// Selected returns the kind that Place would put down.
func (g *Game) Selected() block.Kind {
	return g.hotbar.Selected()
}

// Register both variants with the registry
func init() {
	registry.Register(IDPerlin, func() registry.Game {
		return New(world.GeneratorPerlin)
	})
	registry.Register(IDWalk, func() registry.Game {
		return New(world.GeneratorWalk)
	})
}
