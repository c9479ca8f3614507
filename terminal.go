package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"gargantua/pkg/simulation"
)

const termFrameRate = 30

// runTerminal renders the simulation into a tcell screen, mapping the
// simulation viewport onto the terminal cell grid. Blocks until the user
// quits.
func runTerminal(sim *simulation.Simulation, width, height int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / termFrameRate)
	defer ticker.Stop()

	paused := false
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			key, isKey := ev.(*tcell.EventKey)
			if !isKey {
				continue
			}
			switch {
			case key.Key() == tcell.KeyEscape || key.Rune() == 'q':
				return nil
			case key.Rune() == ' ':
				paused = !paused
			case key.Rune() == 'n':
				if paused {
					sim.Update()
				}
			case key.Rune() == 'r':
				sim.Reset()
			case key.Key() == tcell.KeyUp:
				sim.SetRayCount(sim.RayCount() + 5)
			case key.Key() == tcell.KeyDown:
				if n := sim.RayCount() - 5; n >= 0 {
					sim.SetRayCount(n)
				}
			case key.Rune() == '=' || key.Rune() == '+':
				sim.SetBlackHoleMass(sim.Mass() * massStep)
			case key.Rune() == '-':
				sim.SetBlackHoleMass(sim.Mass() / massStep)
			}
		case <-ticker.C:
			if !paused {
				sim.Update()
			}
			drawTerminalFrame(screen, sim, width, height, paused)
		}
	}
}

// drawTerminalFrame paints one frame: trails as dim dots, live ray heads as
// stars, the hole as a filled disc of '@' cells, and a status line.
func drawTerminalFrame(screen tcell.Screen, sim *simulation.Simulation, width, height int, paused bool) {
	screen.Clear()
	cols, rows := screen.Size()
	if cols == 0 || rows == 0 {
		return
	}

	toCell := func(x, y float64) (int, int) {
		return int(x / float64(width) * float64(cols)), int(y / float64(height) * float64(rows))
	}

	trailStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for _, trail := range sim.Trails() {
		for _, p := range trail {
			cx, cy := toCell(p.X, p.Y)
			screen.SetContent(cx, cy, '.', nil, trailStyle)
		}
	}

	headStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	for _, ray := range sim.Rays() {
		if ray.Disabled {
			continue
		}
		cx, cy := toCell(ray.X, ray.Y)
		screen.SetContent(cx, cy, '*', nil, headStyle)
	}

	bh := sim.BlackHoleSnapshot()
	holeStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)
	hx, hy := toCell(bh[0], bh[1])
	// Cell radius on each axis, since cells are not square in sim units
	rx := int(bh[2] / float64(width) * float64(cols))
	ry := int(bh[2] / float64(height) * float64(rows))
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			if rx > 0 && ry > 0 {
				nx := float64(dx) / float64(rx)
				ny := float64(dy) / float64(ry)
				if nx*nx+ny*ny > 1 {
					continue
				}
			}
			screen.SetContent(hx+dx, hy+dy, '@', nil, holeStyle)
		}
	}

	stats := sim.Stats()
	status := fmt.Sprintf(" mass %.3g kg | r_s %.1f | rays %d live %d | frame %d | q quit ",
		sim.Mass(), bh[2], stats.Total, stats.Live, stats.Frame)
	if paused {
		status += "| paused "
	}
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	for i, r := range status {
		if i >= cols {
			break
		}
		screen.SetContent(i, rows-1, r, nil, statusStyle)
	}

	screen.Show()
}
