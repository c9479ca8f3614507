package main

import (
	"flag"
	"fmt"
	"log"

	"gargantua/pkg/config"
	"gargantua/pkg/simulation"
)

func main() {
	mode := flag.String("mode", "window", "Frontend: 'window' or 'term'")
	configPath := flag.String("config", "", "Optional INI configuration file")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Gargantua: light rays around a Schwarzschild black hole")
		fmt.Println("Usage: gargantua [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Controls (both frontends):")
		fmt.Println("  space      pause / resume")
		fmt.Println("  n          single-step while paused")
		fmt.Println("  r          reset the ray fan")
		fmt.Println("  up/down    grow / shrink the ray population")
		fmt.Println("  = / -      raise / lower the black hole mass")
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	sim := simulation.NewWithConfig(cfg.Simulation.Width, cfg.Simulation.Height,
		cfg.Simulation.SimulationOptions())

	fmt.Println(sim.Info())

	switch *mode {
	case "window":
		err = runWindow(sim, cfg.Simulation.Width, cfg.Simulation.Height)
	case "term":
		err = runTerminal(sim, cfg.Simulation.Width, cfg.Simulation.Height)
	default:
		log.Fatalf("Unknown mode: %s (want window or term)", *mode)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the given file, or falls back to defaults when no file is
// supplied.
func loadConfig(path string) (*config.File, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
