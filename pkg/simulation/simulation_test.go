package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gargantua/pkg/core"
	"gargantua/pkg/integrator"
)

// raySnapshot captures a ray's full observable state for equality checks
type raySnapshot struct {
	x, y, r, phi, dr, dphi, e float64
	disabled                  bool
	trail                     []core.Vec2
}

func snapshotRay(ray *core.Ray) raySnapshot {
	return raySnapshot{
		x: ray.X, y: ray.Y,
		r: ray.R, phi: ray.Phi,
		dr: ray.DR, dphi: ray.DPhi,
		e:        ray.E,
		disabled: ray.Disabled,
		trail:    append([]core.Vec2(nil), ray.Trail()...),
	}
}

func snapshotAll(s *Simulation) []raySnapshot {
	out := make([]raySnapshot, 0, s.RayCount())
	for _, ray := range s.Rays() {
		out = append(out, snapshotRay(ray))
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	sim := New(800, 800)

	assert.Equal(t, 50, sim.RayCount())
	assert.Equal(t, 2*core.ReferenceMass, sim.Mass())

	bh := sim.BlackHoleSnapshot()
	require.Len(t, bh, 3)
	assert.Equal(t, 400.0, bh[0])
	assert.Equal(t, 400.0, bh[1])
	assert.Equal(t, core.SchwarzschildRadiusOf(2*core.ReferenceMass), bh[2])

	// Every ray starts live with its energy constant derived at the spawn
	// radius, and the fan must actually diverge.
	seen := map[float64]bool{}
	for _, ray := range sim.Rays() {
		assert.False(t, ray.Disabled)
		assert.InDelta(t, 1.0-bh[2]/ray.R, ray.E, 1e-12)
		seen[ray.DPhi] = true
	}
	assert.Greater(t, len(seen), 1, "spawn fan should give rays distinct angular velocities")
}

func TestUpdate_StepsEveryRayOnce(t *testing.T) {
	sim := New(800, 800)
	sim.Update()

	assert.Equal(t, 1, sim.Frame())
	for i, ray := range sim.Rays() {
		assert.Len(t, ray.Trail(), 1, "ray %d should have recorded one trail point", i)
	}
}

func TestSetRayCount_GrowPreservesExistingRays(t *testing.T) {
	sim := New(800, 800)
	for i := 0; i < 10; i++ {
		sim.Update()
	}

	before := snapshotAll(sim)
	sim.SetRayCount(80)

	require.Equal(t, 80, sim.RayCount())
	after := snapshotAll(sim)
	for i := range before {
		assert.Equal(t, before[i], after[i], "ray %d changed during grow", i)
	}
}

func TestSetRayCount_ShrinkKeepsPrefix(t *testing.T) {
	sim := New(800, 800)
	for i := 0; i < 10; i++ {
		sim.Update()
	}

	before := snapshotAll(sim)
	sim.SetRayCount(20)

	require.Equal(t, 20, sim.RayCount())
	after := snapshotAll(sim)
	for i := range after {
		assert.Equal(t, before[i], after[i], "surviving ray %d changed during shrink", i)
	}
}

func TestSetRayCount_NegativeClampsToZero(t *testing.T) {
	sim := New(800, 800)
	sim.SetRayCount(-3)
	assert.Equal(t, 0, sim.RayCount())
}

func TestReset_Idempotent(t *testing.T) {
	sim := New(800, 800)
	for i := 0; i < 25; i++ {
		sim.Update()
	}

	sim.Reset()
	first := snapshotAll(sim)
	sim.Reset()
	second := snapshotAll(sim)

	assert.Equal(t, first, second)
	assert.Equal(t, 0, sim.Frame())
	for _, snap := range first {
		assert.False(t, snap.disabled)
		assert.Empty(t, snap.trail)
	}
}

func TestSetBlackHoleMass_DoesNotRescaleEnergy(t *testing.T) {
	sim := New(800, 800)
	sim.Update()

	energies := make([]float64, 0, sim.RayCount())
	for _, ray := range sim.Rays() {
		energies = append(energies, ray.E)
	}

	sim.SetBlackHoleMass(10 * core.ReferenceMass)

	assert.Equal(t, core.SchwarzschildRadiusOf(10*core.ReferenceMass), sim.BlackHoleSnapshot()[2])
	for i, ray := range sim.Rays() {
		assert.Equal(t, energies[i], ray.E, "ray %d energy must stay frozen across a mass change", i)
	}
}

func TestZeroMass_OnlyBoundsDisableRays(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mass = 0
	sim := NewWithConfig(800, 800, cfg)

	for i := 0; i < 2000; i++ {
		sim.Update()
	}

	disabled := 0
	for _, ray := range sim.Rays() {
		if !ray.Disabled {
			continue
		}
		disabled++
		// A bounds-disabled ray is frozen at the position that left the
		// region; horizon capture is impossible with r_s = 0.
		outside := ray.X < 0 || ray.X > 800 || ray.Y < 0 || ray.Y > 800
		assert.True(t, outside, "disabled ray frozen in bounds at (%v, %v)", ray.X, ray.Y)
	}
	assert.Greater(t, disabled, 0, "straight-line rays should have left the viewport by now")
}

func TestUpdate_ParallelMatchesSequential(t *testing.T) {
	seqCfg := DefaultConfig()
	seqCfg.Workers = 1
	parCfg := DefaultConfig()
	parCfg.Workers = 4

	seq := NewWithConfig(800, 800, seqCfg)
	par := NewWithConfig(800, 800, parCfg)

	for i := 0; i < 300; i++ {
		seq.Update()
		par.Update()
	}

	assert.Equal(t, seq.RayPositions(), par.RayPositions())
	assert.Equal(t, snapshotAll(seq), snapshotAll(par))
}

func TestRayPositions_FlatTriples(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RayCount = 3
	sim := NewWithConfig(800, 800, cfg)

	positions := sim.RayPositions()
	require.Len(t, positions, 9)

	rays := sim.Rays()
	for i, ray := range rays {
		assert.Equal(t, ray.X, positions[3*i])
		assert.Equal(t, ray.Y, positions[3*i+1])
		assert.Equal(t, 1.0, positions[3*i+2])
	}
}

func TestInfo_ContainsReferenceRadius(t *testing.T) {
	sim := New(800, 800)
	info := sim.Info()

	assert.Contains(t, info, "Schwarzschild")
	assert.Contains(t, info, Version)
}

func TestStats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RayCount = 4
	sim := NewWithConfig(800, 800, cfg)

	sim.Rays()[1].Disabled = true
	sim.Rays()[3].Disabled = true
	sim.Update()

	stats := sim.Stats()
	assert.Equal(t, FrameStats{Frame: 1, Total: 4, Live: 2, Disabled: 2}, stats)
}

func TestNewWithConfig_RK4(t *testing.T) {
	integ, err := integrator.ByName("rk4")
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Integrator = integ
	sim := NewWithConfig(800, 800, cfg)

	for i := 0; i < 50; i++ {
		sim.Update()
	}
	assert.Equal(t, 50, sim.Frame())
}
