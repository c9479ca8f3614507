package main

import (
	"flag"
	"log"
	"os"

	"gargantua/pkg/config"
	"gargantua/pkg/simulation"
	"gargantua/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	configPath := flag.String("config", "", "Optional INI configuration file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Printf("Error loading config: %v", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	sim := simulation.NewWithConfig(cfg.Simulation.Width, cfg.Simulation.Height,
		cfg.Simulation.SimulationOptions())

	webServer := server.NewServer(*port, sim)

	log.Printf("Gargantua simulation server")
	log.Printf("Visit http://localhost:%d to watch rays bend", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
