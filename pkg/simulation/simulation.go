// Package simulation owns the black hole and the full ray population and is
// the unit of one simulated frame. Mutators (SetRayCount, SetBlackHoleMass,
// Reset) are frame barriers: they must never run concurrently with Update.
package simulation

import (
	"fmt"

	"gargantua/pkg/core"
	"gargantua/pkg/integrator"
)

// Version identifies the simulator build in the Info string
const Version = "0.1.0"

// Spawn fan parameters. All rays start from a shared origin and aim at the
// hole, each rotated by a small index-centered angular offset so the fan
// diverges visibly. The same formula serves construction, Reset and
// SetRayCount growth.
const (
	spawnX         = 50.0
	spawnY         = 50.0
	spawnSpeed     = 10.0
	spawnAngleStep = 0.05
)

// Config contains configuration for a simulation
type Config struct {
	RayCount   int                   // number of rays in the initial fan
	Mass       float64               // black hole mass in kg
	Dt         float64               // affine-parameter increment per frame
	MaxTrail   int                   // trail cap per ray (FIFO eviction)
	Integrator integrator.Integrator // stepping scheme
	Workers    int                   // 0 = CPU count, 1 = sequential
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		RayCount:   50,
		Mass:       2 * core.ReferenceMass,
		Dt:         integrator.DefaultDt,
		MaxTrail:   core.DefaultMaxTrail,
		Integrator: integrator.Euler{},
		Workers:    1,
	}
}

// Simulation owns one black hole and an ordered ray population. Ray order is
// spawn order; it carries no physical meaning but index identity is stable
// across count adjustments.
type Simulation struct {
	blackHole *core.BlackHole
	rays      []*core.Ray
	bounds    integrator.Bounds
	integ     integrator.Integrator
	dt        float64
	maxTrail  int
	workers   int
	frame     int
}

// New creates a simulation for the given viewport with default configuration
func New(width, height int) *Simulation {
	return NewWithConfig(width, height, DefaultConfig())
}

// NewWithConfig creates a simulation with the hole at the viewport center
// and an initial fan of rays aimed at it.
func NewWithConfig(width, height int, cfg Config) *Simulation {
	if cfg.Integrator == nil {
		cfg.Integrator = integrator.Euler{}
	}
	if cfg.Dt <= 0 {
		cfg.Dt = integrator.DefaultDt
	}

	s := &Simulation{
		blackHole: core.NewBlackHole(core.NewVec2(float64(width)/2, float64(height)/2), cfg.Mass),
		bounds:    integrator.Bounds{Width: float64(width), Height: float64(height)},
		integ:     cfg.Integrator,
		dt:        cfg.Dt,
		maxTrail:  cfg.MaxTrail,
		workers:   cfg.Workers,
	}

	s.rays = make([]*core.Ray, 0, cfg.RayCount)
	for i := 0; i < cfg.RayCount; i++ {
		s.rays = append(s.rays, s.spawnRay(i, cfg.RayCount))
	}
	return s
}

// spawnRay builds ray i of a fan of n using the shared spread formula
func (s *Simulation) spawnRay(i, n int) *core.Ray {
	ray := core.NewRay(spawnX, spawnY, s.maxTrail)

	aim := s.blackHole.Position.Subtract(core.NewVec2(spawnX, spawnY)).Normalize()
	offset := (float64(i) - float64(n-1)/2) * spawnAngleStep
	velocity := aim.Rotate(offset).Multiply(spawnSpeed)

	ray.InitializeVelocity(s.blackHole, velocity)
	return ray
}

// Update advances every ray exactly once. Rays never interact, so with more
// than one worker the population is stepped in parallel; the only shared
// object is the black hole, which is read-only for the duration of a frame.
func (s *Simulation) Update() {
	if s.workers == 1 {
		for _, ray := range s.rays {
			integrator.Step(ray, s.blackHole, s.bounds, s.integ, s.dt)
		}
	} else {
		stepParallel(s.rays, s.blackHole, s.bounds, s.integ, s.dt, s.workers)
	}
	s.frame++
}

// Reset restores the population to a freshly computed initial fan, clearing
// every trail and disabled flag. The respawn formula is deterministic, so
// consecutive resets yield identical populations.
func (s *Simulation) Reset() {
	n := len(s.rays)
	s.rays = s.rays[:0]
	for i := 0; i < n; i++ {
		s.rays = append(s.rays, s.spawnRay(i, n))
	}
	s.frame = 0
}

// SetRayCount grows the population by spawning rays indexed to fit the new
// total, or shrinks it by truncating the tail. Surviving rays are not
// touched. Must not run while an Update is in flight.
func (s *Simulation) SetRayCount(n int) {
	if n < 0 {
		n = 0
	}
	current := len(s.rays)
	switch {
	case n > current:
		for i := current; i < n; i++ {
			s.rays = append(s.rays, s.spawnRay(i, n))
		}
	case n < current:
		s.rays = s.rays[:n]
	}
}

// SetBlackHoleMass replaces the hole's mass and recomputes its radius. Live
// rays keep the energy constant frozen at their initialization; the visible
// transient after a mass change is intended, and Reset is the way to
// re-derive every ray's constant under the new mass.
func (s *Simulation) SetBlackHoleMass(mass float64) {
	s.blackHole.SetMass(mass)
}

// RayCount returns the current population size
func (s *Simulation) RayCount() int {
	return len(s.rays)
}

// Frame returns the number of completed Update calls since construction or
// the last Reset.
func (s *Simulation) Frame() int {
	return s.frame
}

// Rays returns the ray population in spawn order. The slice and the rays it
// points to belong to the simulation: treat them as read-only and mutate
// only through the documented entry points.
func (s *Simulation) Rays() []*core.Ray {
	return s.rays
}

// RayPositions returns a flat sequence of (x, y, live) triples, one per ray
// in spawn order, with live 1 for active rays and 0 for disabled ones. The
// flat layout crosses process and runtime boundaries cheaply.
func (s *Simulation) RayPositions() []float64 {
	out := make([]float64, 0, 3*len(s.rays))
	for _, ray := range s.rays {
		live := 1.0
		if ray.Disabled {
			live = 0.0
		}
		out = append(out, ray.X, ray.Y, live)
	}
	return out
}

// BlackHoleSnapshot returns the hole's x, y and Schwarzschild radius
func (s *Simulation) BlackHoleSnapshot() []float64 {
	return []float64{s.blackHole.Position.X, s.blackHole.Position.Y, s.blackHole.SchwarzschildRadius()}
}

// Mass returns the hole's current mass in kilograms
func (s *Simulation) Mass() float64 {
	return s.blackHole.Mass()
}

// Trails returns each ray's trail, oldest point first. The slices are the
// simulation's own backing stores: read-only, valid until the next Update.
func (s *Simulation) Trails() [][]core.Vec2 {
	out := make([][]core.Vec2, len(s.rays))
	for i, ray := range s.rays {
		out[i] = ray.Trail()
	}
	return out
}

// Info returns a human-readable status line including the Schwarzschild
// radius of the reference mass.
func (s *Simulation) Info() string {
	return fmt.Sprintf("Gargantua black hole simulator v%s\nReference Schwarzschild radius: %g m",
		Version, core.SchwarzschildRadiusOf(core.ReferenceMass))
}
