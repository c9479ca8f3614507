// Package integrator advances ray state along Schwarzschild null geodesics.
// The right-hand side of the geodesic equations is a pure function; the
// Integrator implementations decide how to step it through affine-parameter
// time, and Step wraps either one with the ray survival policy.
package integrator

// Derivatives is the rate of change of a ray's polar state with respect to
// the affine parameter λ.
type Derivatives struct {
	DR    float64 // dr/dλ
	DPhi  float64 // dphi/dλ
	D2R   float64 // d²r/dλ²
	D2Phi float64 // d²phi/dλ²
}

// GeodesicRHS evaluates the Schwarzschild null-geodesic equations at the
// given polar state:
//
//	f = 1 − r_s/r
//	dt/dλ = e/f
//	d²r/dλ²   = −(r_s/2r²)·f·(dt/dλ)² + (r_s/2r²f)·dr² + (r − r_s)·dphi²
//	d²phi/dλ² = −2·dr·dphi/r
//
// The metric factor f is singular at the horizon: callers must guarantee
// r > r_s (the survival check in Step runs first and enforces this).
func GeodesicRHS(r, dr, dphi, e, rs float64) Derivatives {
	f := 1.0 - rs/r
	dtDLambda := e / f

	d2r := -(rs/(2.0*r*r))*f*(dtDLambda*dtDLambda) +
		(rs/(2.0*r*r*f))*(dr*dr) +
		(r-rs)*(dphi*dphi)
	d2phi := -2.0 * dr * dphi / r

	return Derivatives{
		DR:    dr,
		DPhi:  dphi,
		D2R:   d2r,
		D2Phi: d2phi,
	}
}
