// Package config loads simulator settings from gcfg-style INI files.
//
// Example:
//
//	[simulation]
//	width = 800
//	height = 800
//	rays = 50
//	mass = 6e28
//	dt = 0.1
//	traillength = 200
//	integrator = euler
//	workers = 1
package config

import (
	"fmt"

	"gopkg.in/gcfg.v1"

	"gargantua/pkg/core"
	"gargantua/pkg/integrator"
	"gargantua/pkg/simulation"
)

// SimulationConfig is the [simulation] section
type SimulationConfig struct {
	Width       int
	Height      int
	Rays        int
	Mass        float64
	Dt          float64
	TrailLength int
	Integrator  string
	Workers     int
}

// File is the root of a parsed configuration file
type File struct {
	Simulation SimulationConfig
}

// Default returns the configuration used when no file is supplied
func Default() *File {
	return &File{
		Simulation: SimulationConfig{
			Width:       800,
			Height:      800,
			Rays:        50,
			Mass:        2 * core.ReferenceMass,
			Dt:          integrator.DefaultDt,
			TrailLength: core.DefaultMaxTrail,
			Integrator:  "euler",
			Workers:     1,
		},
	}
}

// CheckInit fills in defaults for omitted values and rejects settings the
// simulator cannot run with.
func (sc *SimulationConfig) CheckInit() error {
	def := Default().Simulation

	if sc.Width == 0 {
		sc.Width = def.Width
	}
	if sc.Height == 0 {
		sc.Height = def.Height
	}
	if sc.Rays == 0 {
		sc.Rays = def.Rays
	}
	if sc.Mass == 0 {
		sc.Mass = def.Mass
	}
	if sc.Dt == 0 {
		sc.Dt = def.Dt
	}
	if sc.TrailLength == 0 {
		sc.TrailLength = def.TrailLength
	}
	if sc.Integrator == "" {
		sc.Integrator = def.Integrator
	}

	if sc.Width < 0 || sc.Height < 0 {
		return fmt.Errorf("viewport must be non-negative, but is %dx%d", sc.Width, sc.Height)
	}
	if sc.Rays < 0 {
		return fmt.Errorf("ray count must be non-negative, but is %d", sc.Rays)
	}
	if sc.Dt < 0 {
		return fmt.Errorf("dt must be positive, but is %g", sc.Dt)
	}
	if sc.TrailLength < 0 {
		return fmt.Errorf("trail length must be non-negative, but is %d", sc.TrailLength)
	}
	if sc.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, but is %d", sc.Workers)
	}
	if _, err := integrator.ByName(sc.Integrator); err != nil {
		return err
	}

	return nil
}

// Load reads and validates a configuration file
func Load(fname string) (*File, error) {
	f := &File{}
	if err := gcfg.ReadFileInto(f, fname); err != nil {
		return nil, fmt.Errorf("reading config %q: %v", fname, err)
	}
	if err := f.Simulation.CheckInit(); err != nil {
		return nil, fmt.Errorf("config %q: %v", fname, err)
	}
	return f, nil
}

// SimulationOptions converts the [simulation] section into the simulation
// package's Config. CheckInit must have validated the section first.
func (sc *SimulationConfig) SimulationOptions() simulation.Config {
	integ, _ := integrator.ByName(sc.Integrator)
	return simulation.Config{
		RayCount:   sc.Rays,
		Mass:       sc.Mass,
		Dt:         sc.Dt,
		MaxTrail:   sc.TrailLength,
		Integrator: integ,
		Workers:    sc.Workers,
	}
}
