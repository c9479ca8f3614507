package integrator

import (
	"fmt"

	"gargantua/pkg/core"
)

// DefaultDt is the fixed affine-parameter increment applied per frame
const DefaultDt = 0.1

// Integrator advances a ray's polar state by one fixed increment of the
// affine parameter. Implementations must keep the (r, phi, dr, dphi, e)
// state vector and may assume r > rs on entry; Step enforces that.
type Integrator interface {
	// Advance applies one dt of geodesic motion to the ray's polar state
	Advance(ray *core.Ray, rs, dt float64)
}

// Bounds is the rectangular region rays are allowed to occupy, anchored at
// the origin. A ray leaving it on either axis, in either direction, is
// disabled.
type Bounds struct {
	Width, Height float64
}

// Contains reports whether the point lies inside the bounds. Comparisons
// with NaN coordinates are false, so a numerically blown-up ray is treated
// as out of bounds rather than propagated.
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.Width && y >= 0 && y <= b.Height
}

// Step advances one ray by one frame, applying the survival policy in order:
//
//  1. A disabled ray is never touched again.
//  2. Polar position is re-derived from the Cartesian position; this is the
//     authoritative radius for the survival check, not the integrator's
//     running r.
//  3. Inside the horizon or outside the bounds: disable the ray, drop the
//     speculative tail trail point, and skip the geodesic entirely (the
//     right-hand side is undefined at r ≤ r_s).
//  4. Otherwise integrate, project back to Cartesian, and record the trail.
func Step(ray *core.Ray, bh *core.BlackHole, bounds Bounds, integ Integrator, dt float64) {
	if ray.Disabled {
		return
	}

	ray.UpdatePolar(bh)

	if ray.R < bh.SchwarzschildRadius() || !bounds.Contains(ray.X, ray.Y) {
		ray.Disabled = true
		ray.DropLastTrailPoint()
		return
	}

	integ.Advance(ray, bh.SchwarzschildRadius(), dt)
	ray.ProjectCartesian(bh)
	ray.RecordTrail()
}

// ByName returns the integrator registered under the given name
func ByName(name string) (Integrator, error) {
	switch name {
	case "euler", "":
		return Euler{}, nil
	case "rk4":
		return RK4{}, nil
	default:
		return nil, fmt.Errorf("unknown integrator %q (want euler or rk4)", name)
	}
}
