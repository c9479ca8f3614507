package core

// Physical constants in SI units
const (
	G             = 6.6743e-11  // gravitational constant
	SpeedOfLight  = 299792458.0 // m/s
	ReferenceMass = 3e28        // kg, baseline mass for the reference hole
)

// SchwarzschildRadiusOf returns the event-horizon radius of a non-rotating
// hole of the given mass, r_s = 2Gm/c².
func SchwarzschildRadiusOf(mass float64) float64 {
	return (2.0 * G * mass) / (SpeedOfLight * SpeedOfLight)
}

// BlackHole is a static, non-rotating point mass. The position is fixed for
// the lifetime of a simulation; the mass may be adjusted between frames.
type BlackHole struct {
	Position Vec2
	mass     float64
	radius   float64 // Schwarzschild radius, always derived from the current mass
}

// NewBlackHole creates a black hole at the given position and computes its
// Schwarzschild radius. Mass is not validated: a non-positive mass yields a
// non-physical radius, which is the caller's responsibility.
func NewBlackHole(position Vec2, mass float64) *BlackHole {
	bh := &BlackHole{Position: position}
	bh.SetMass(mass)
	return bh
}

// Mass returns the current mass in kilograms
func (bh *BlackHole) Mass() float64 {
	return bh.mass
}

// SchwarzschildRadius returns the event-horizon radius for the current mass
func (bh *BlackHole) SchwarzschildRadius() float64 {
	return bh.radius
}

// SetMass replaces the mass and recomputes the Schwarzschild radius. Must not
// be called while a frame's ray updates are in flight.
func (bh *BlackHole) SetMass(mass float64) {
	bh.mass = mass
	bh.radius = SchwarzschildRadiusOf(mass)
}
