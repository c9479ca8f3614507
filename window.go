package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"

	"golang.org/x/image/font/basicfont"

	"gargantua/pkg/simulation"
)

const massStep = 1.25 // multiplicative mass adjustment per keypress

// Game drives the ebiten window frontend. It only reads simulation snapshots
// during Draw; all mutation goes through the documented entry points from
// Update, between frames.
type Game struct {
	sim           *simulation.Simulation
	width, height int
	paused        bool
}

// Update handles input and advances one physics frame
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && g.paused {
		g.sim.Update()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.sim.SetRayCount(g.sim.RayCount() + 5)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		n := g.sim.RayCount() - 5
		if n < 0 {
			n = 0
		}
		g.sim.SetRayCount(n)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.sim.SetBlackHoleMass(g.sim.Mass() * massStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.sim.SetBlackHoleMass(g.sim.Mass() / massStep)
	}

	if !g.paused {
		g.sim.Update()
	}
	return nil
}

// Draw renders trails, ray heads, the hole and a small HUD
func (g *Game) Draw(screen *ebiten.Image) {
	for _, trail := range g.sim.Trails() {
		for i := 1; i < len(trail); i++ {
			// Older points fade toward black
			brightness := uint8(55 + 200*i/len(trail))
			clr := color.RGBA{brightness, brightness, brightness, 255}
			drawLine(screen, trail[i-1].X, trail[i-1].Y, trail[i].X, trail[i].Y, clr)
		}
	}

	for _, ray := range g.sim.Rays() {
		if ray.Disabled {
			continue
		}
		drawDot(screen, ray.X, ray.Y, color.RGBA{255, 255, 255, 255})
	}

	bh := g.sim.BlackHoleSnapshot()
	drawCircle(screen, bh[0], bh[1], bh[2], color.RGBA{200, 30, 30, 255})

	stats := g.sim.Stats()
	hud := fmt.Sprintf("mass %.3g kg  r_s %.1f  rays %d  live %d  frame %d",
		g.sim.Mass(), bh[2], stats.Total, stats.Live, stats.Frame)
	text.Draw(screen, hud, basicfont.Face7x13, 10, 20, color.RGBA{220, 220, 220, 255})
	if g.paused {
		text.Draw(screen, "paused (n to step)", basicfont.Face7x13, 10, 36, color.RGBA{220, 200, 120, 255})
	}
}

// Layout reports the fixed logical screen size
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// runWindow opens the ebiten window and blocks until it closes
func runWindow(sim *simulation.Simulation, width, height int) error {
	game := &Game{sim: sim, width: width, height: height}

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Gargantua")
	return ebiten.RunGame(game)
}

// drawDot paints a 2x2 block at the given position
func drawDot(img *ebiten.Image, x, y float64, clr color.RGBA) {
	px, py := int(x), int(y)
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			img.Set(px+dx, py+dy, clr)
		}
	}
}

// drawLine paints a Bresenham line between two points
func drawLine(img *ebiten.Image, x0, y0, x1, y1 float64, clr color.RGBA) {
	ix0, iy0 := int(x0), int(y0)
	ix1, iy1 := int(x1), int(y1)

	dx := abs(ix1 - ix0)
	dy := -abs(iy1 - iy0)
	sx, sy := 1, 1
	if ix0 > ix1 {
		sx = -1
	}
	if iy0 > iy1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.Set(ix0, iy0, clr)
		if ix0 == ix1 && iy0 == iy1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ix0 += sx
		}
		if e2 <= dx {
			err += dx
			iy0 += sy
		}
	}
}

// drawCircle paints a filled circle by horizontal scanlines
func drawCircle(img *ebiten.Image, cx, cy, r float64, clr color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		half := math.Sqrt(r*r - dy*dy)
		y := int(cy + dy)
		for x := int(cx - half); x <= int(cx+half); x++ {
			img.Set(x, y, clr)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
