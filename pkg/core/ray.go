package core

import "math"

// DefaultMaxTrail is the default cap on trail history per ray. The trail is a
// FIFO: once the cap is reached the oldest point is evicted on every append.
const DefaultMaxTrail = 200

// Ray is the state of a single light ray. Position is tracked in both
// Cartesian form (X, Y, what the renderer reads) and polar form relative to
// the black hole (R, Phi plus their derivatives with respect to the affine
// parameter). The Cartesian position is authoritative between steps; Step
// re-derives R and Phi from it before anything else.
type Ray struct {
	X, Y     float64 // Cartesian position
	R, Phi   float64 // polar position relative to the hole
	DR, DPhi float64 // d r/dλ and d phi/dλ
	E        float64 // conserved energy constant, frozen at initialization
	Disabled bool    // terminal: once set, the ray is never updated again

	trail    []Vec2
	maxTrail int
}

// NewRay creates a ray at the given Cartesian position. The energy constant
// defaults to 1 until InitializeVelocity derives the real value. A maxTrail
// of zero or less falls back to DefaultMaxTrail.
func NewRay(x, y float64, maxTrail int) *Ray {
	if maxTrail <= 0 {
		maxTrail = DefaultMaxTrail
	}
	return &Ray{
		X:        x,
		Y:        y,
		E:        1.0,
		trail:    make([]Vec2, 0, maxTrail),
		maxTrail: maxTrail,
	}
}

// UpdatePolar recomputes R and Phi from the current Cartesian position
// relative to the hole. This is the authoritative radius read used by the
// survival check.
func (ray *Ray) UpdatePolar(bh *BlackHole) {
	dx := ray.X - bh.Position.X
	dy := ray.Y - bh.Position.Y
	ray.R = math.Sqrt(dx*dx + dy*dy)
	ray.Phi = math.Atan2(dy, dx)
}

// ProjectCartesian recomputes X and Y from the current polar state
func (ray *Ray) ProjectCartesian(bh *BlackHole) {
	ray.X = bh.Position.X + ray.R*math.Cos(ray.Phi)
	ray.Y = bh.Position.Y + ray.R*math.Sin(ray.Phi)
}

// InitializeVelocity converts a Cartesian velocity into polar derivatives and
// freezes the ray's conserved energy constant from the metric factor at the
// current radius. Preconditions: the ray must not sit on the hole (r > 0) or
// on the horizon (r ≠ r_s); violations propagate non-finite values rather
// than being guarded here.
func (ray *Ray) InitializeVelocity(bh *BlackHole, velocity Vec2) {
	ray.UpdatePolar(bh)

	cosPhi := math.Cos(ray.Phi)
	sinPhi := math.Sin(ray.Phi)

	ray.DR = velocity.X*cosPhi + velocity.Y*sinPhi
	ray.DPhi = (-velocity.X*sinPhi + velocity.Y*cosPhi) / ray.R

	ray.E = 1.0 - bh.SchwarzschildRadius()/ray.R
}

// RecordTrail appends the current Cartesian position to the trail, evicting
// the oldest point once the cap is reached. The cap is small, so shifting in
// place keeps the backing array stable instead of creeping through memory.
func (ray *Ray) RecordTrail() {
	point := Vec2{X: ray.X, Y: ray.Y}
	if len(ray.trail) == ray.maxTrail {
		copy(ray.trail, ray.trail[1:])
		ray.trail[len(ray.trail)-1] = point
		return
	}
	ray.trail = append(ray.trail, point)
}

// DropLastTrailPoint removes the most recently appended trail point. Used
// when a ray is disabled so the trail ends one step before the disabling
// event.
func (ray *Ray) DropLastTrailPoint() {
	if len(ray.trail) > 0 {
		ray.trail = ray.trail[:len(ray.trail)-1]
	}
}

// Trail returns the recorded trail, oldest point first. The returned slice
// is the ray's own backing store; callers must treat it as read-only.
func (ray *Ray) Trail() []Vec2 {
	return ray.trail
}

// ClearTrail discards all recorded trail points, keeping the backing array
func (ray *Ray) ClearTrail() {
	ray.trail = ray.trail[:0]
}
