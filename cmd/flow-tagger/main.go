package main

import (
	"FlowTagger/internal/config"
	"FlowTagger/internal/engine/manager"
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	// 1. Load configuration
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. An interrupt aborts any pending connection or network write
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Initialize the manager and its writers
	m, err := manager.NewManager(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create manager: %v", err)
	}
	defer m.Close()

	// 4. Run the job
	if _, err := m.Run(ctx); err != nil {
		m.Close()
		log.Fatalf("Run failed: %v", err)
	}
	log.Printf("Report written to %s", cfg.Output.Path)
}

// loadConfig reads the config file named on the command line. Without an
// argument it falls back to configs/config.yaml, then to the built-in defaults.
func loadConfig() (*config.Config, error) {
	if len(os.Args) > 1 {
		return config.LoadConfig(os.Args[1])
	}

	cfg, err := config.LoadConfig(defaultConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("No config file at '%s', using defaults.", defaultConfigPath)
		return config.Default(), nil
	}
	return cfg, err
}
