package integrator

import "gargantua/pkg/core"

// RK4 applies a classical fourth-order Runge-Kutta update to the same
// (r, phi, dr, dphi) state vector as Euler. Intermediate evaluations may
// probe states closer to the horizon than the entry state; if one lands
// inside, the non-finite result is caught by the bounds check on the next
// frame rather than guarded here.
type RK4 struct{}

type polarState struct {
	r, phi, dr, dphi float64
}

func (s polarState) scaled(k polarState, h float64) polarState {
	return polarState{
		r:    s.r + k.r*h,
		phi:  s.phi + k.phi*h,
		dr:   s.dr + k.dr*h,
		dphi: s.dphi + k.dphi*h,
	}
}

// Advance applies one RK4 step to the ray's polar state
func (RK4) Advance(ray *core.Ray, rs, dt float64) {
	deriv := func(s polarState) polarState {
		d := GeodesicRHS(s.r, s.dr, s.dphi, ray.E, rs)
		return polarState{r: d.DR, phi: d.DPhi, dr: d.D2R, dphi: d.D2Phi}
	}

	s := polarState{r: ray.R, phi: ray.Phi, dr: ray.DR, dphi: ray.DPhi}

	k1 := deriv(s)
	k2 := deriv(s.scaled(k1, dt/2))
	k3 := deriv(s.scaled(k2, dt/2))
	k4 := deriv(s.scaled(k3, dt))

	sixth := dt / 6.0
	ray.R += sixth * (k1.r + 2*k2.r + 2*k3.r + k4.r)
	ray.Phi += sixth * (k1.phi + 2*k2.phi + 2*k3.phi + k4.phi)
	ray.DR += sixth * (k1.dr + 2*k2.dr + 2*k3.dr + k4.dr)
	ray.DPhi += sixth * (k1.dphi + 2*k2.dphi + 2*k3.dphi + k4.dphi)
}
