package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/realyassine/SouqFX/cmd"
	"github.com/realyassine/SouqFX/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Startup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := parseConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app := cmd.NewBuilder(cfg).Build()
	return app.Run()
}

func parseConfigPath() string {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()
	return configPath
}
