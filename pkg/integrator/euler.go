package integrator

import "gargantua/pkg/core"

// Euler applies a first-order explicit update. It trades long-horizon
// accuracy for per-step cost, which suits a visualization stepping thousands
// of rays per frame. The derivative is evaluated once at the current state.
type Euler struct{}

// Advance applies one explicit Euler step to the ray's polar state
func (Euler) Advance(ray *core.Ray, rs, dt float64) {
	d := GeodesicRHS(ray.R, ray.DR, ray.DPhi, ray.E, rs)

	ray.DR += d.D2R * dt
	ray.DPhi += d.D2Phi * dt

	ray.R += ray.DR * dt
	ray.Phi += ray.DPhi * dt
}
