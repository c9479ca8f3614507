package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "gargantua.ini")
	require.NoError(t, os.WriteFile(fname, []byte(contents), 0o644))
	return fname
}

func TestLoad(t *testing.T) {
	fname := writeConfig(t, `
[simulation]
width = 1024
height = 768
rays = 120
mass = 6e28
dt = 0.05
traillength = 100
integrator = rk4
workers = 4
`)

	f, err := Load(fname)
	require.NoError(t, err)

	assert.Equal(t, 1024, f.Simulation.Width)
	assert.Equal(t, 768, f.Simulation.Height)
	assert.Equal(t, 120, f.Simulation.Rays)
	assert.Equal(t, 6e28, f.Simulation.Mass)
	assert.Equal(t, 0.05, f.Simulation.Dt)
	assert.Equal(t, 100, f.Simulation.TrailLength)
	assert.Equal(t, "rk4", f.Simulation.Integrator)
	assert.Equal(t, 4, f.Simulation.Workers)
}

func TestLoad_OmittedValuesGetDefaults(t *testing.T) {
	fname := writeConfig(t, `
[simulation]
rays = 10
`)

	f, err := Load(fname)
	require.NoError(t, err)

	def := Default().Simulation
	assert.Equal(t, 10, f.Simulation.Rays)
	assert.Equal(t, def.Width, f.Simulation.Width)
	assert.Equal(t, def.Mass, f.Simulation.Mass)
	assert.Equal(t, def.Integrator, f.Simulation.Integrator)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{
			name: "Negative rays",
			contents: `
[simulation]
rays = -5
`,
		},
		{
			name: "Negative dt",
			contents: `
[simulation]
dt = -0.1
`,
		},
		{
			name: "Unknown integrator",
			contents: `
[simulation]
integrator = verlet
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	assert.Error(t, err)
}

func TestSimulationOptions(t *testing.T) {
	f := Default()
	opts := f.Simulation.SimulationOptions()

	assert.Equal(t, f.Simulation.Rays, opts.RayCount)
	assert.Equal(t, f.Simulation.Mass, opts.Mass)
	assert.NotNil(t, opts.Integrator)
}
