package sandbox

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/block"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/interact"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox/world"
)

// Layout
const (
	CellWidth = 2 // terminal columns per block
	HUDRows   = 2 // hotbar line + status line
)

// viewport returns the world cells shown on a screen of the given size,
// centered on the player.
func (g *Game) viewport(screenW, screenH int) core.Rect {
	cols := core.Max(screenW/CellWidth, 1)
	rows := core.Max(screenH-HUDRows, 1)
	cx, cy := g.player.CenterCell()
	return core.NewRect(cx-cols/2, cy-rows/2, cols, rows)
}

// Resize adapts the camera to a new screen size without touching the world.
func (g *Game) Resize(screenW, screenH int) {
	g.runtime.ScreenW = screenW
	g.runtime.ScreenH = screenH
	if g.player != nil {
		g.view = g.viewport(screenW, screenH)
	}
}

// Viewport returns the world rectangle drawn by the last Render or Step.
func (g *Game) Viewport() core.Rect {
	return g.view
}

// Visible returns the non-Air cells inside view.
func (g *Game) Visible(view core.Rect) []world.Placed {
	return g.world.Visible(view)
}

// screenToCell maps a terminal position to the world cell drawn there.
func (g *Game) screenToCell(sx, sy int) (world.Cell, bool) {
	if sx < 0 || sy < 0 || sy >= g.view.H || sx >= g.view.W*CellWidth {
		return world.Cell{}, false
	}
	return world.Cell{X: g.view.X + sx/CellWidth, Y: g.view.Y + sy}, true
}

// cellToScreen maps a world cell to the left terminal column of its glyphs.
func (g *Game) cellToScreen(c world.Cell) (int, int) {
	return (c.X - g.view.X) * CellWidth, c.Y - g.view.Y
}

// Render draws the world, the player, the target marker and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.view = g.viewport(dst.Width(), dst.Height())

	for _, p := range g.world.Visible(g.view) {
		props := block.MustProps(p.Kind)
		sx, sy := g.cellToScreen(p.Cell)
		dst.SetColored(sx, sy, props.Glyph, props.Color)
		dst.SetColored(sx+1, sy, props.Glyph, props.Color)
	}

	g.drawTarget(dst)
	g.drawPlayer(dst)
	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawTarget(dst *core.Screen) {
	if !g.view.Contains(g.target.X, g.target.Y) {
		return
	}
	color := core.ColorBrightYellow
	if !interact.InReach(g.player, g.target) {
		color = core.ColorRed
	}
	sx, sy := g.cellToScreen(g.target)
	dst.SetColored(sx, sy, '[', color)
	dst.SetColored(sx+1, sy, ']', color)
}

func (g *Game) drawPlayer(dst *core.Screen) {
	box := g.player.Box()
	c0, c1 := core.FloorInt(box.X+1e-9), core.FloorInt(box.Right()-1e-9)
	r0, r1 := core.FloorInt(box.Y+1e-9), core.FloorInt(box.Bottom()-1e-9)

	head := "o>"
	if !g.player.FacingRight {
		head = "<o"
	}
	for y := r0; y <= r1; y++ {
		for x := c0; x <= c1; x++ {
			glyphs := "||"
			if y == r0 {
				glyphs = head
			}
			sx, sy := g.cellToScreen(world.Cell{X: x, Y: y})
			dst.DrawTextColored(sx, sy, glyphs, core.ColorBrightCyan)
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	h := dst.Height()
	if h < HUDRows+1 {
		return
	}

	// Hotbar line
	x := 1
	for i, k := range g.hotbar.Slots() {
		label := fmt.Sprintf(" %d:%s ", i+1, k)
		color := core.ColorGray
		if i == g.hotbar.Index() {
			label = "[" + strings.TrimSpace(label) + "]"
			color = block.MustProps(k).Color
			if color == core.ColorDefault {
				color = core.ColorBrightWhite
			}
		}
		dst.DrawTextColored(x, h-2, label, color)
		x += len(label) + 1
	}

	// Status line
	px, py := g.player.CenterCell()
	info := fmt.Sprintf("pos %d,%d  target %d,%d  broken %d  placed %d  seed %d",
		px, py, g.target.X, g.target.Y, g.stats.Broken, g.stats.Placed, g.stats.Seed)
	dst.DrawTextColored(1, h-1, info, core.ColorDarkGray)
	if g.status != "" {
		sx := dst.Width() - len(g.status) - 1
		if sx < len(info)+3 {
			sx = len(info) + 3
		}
		dst.DrawTextColored(sx, h-1, g.status, core.ColorYellow)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextCentered(boxY+1, title)
	dst.DrawTextCentered(boxY+3, subtitle)
}
