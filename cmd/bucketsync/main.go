package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/semmidev/bucketsync/internal/app"
	"github.com/semmidev/bucketsync/internal/config"
	"github.com/semmidev/bucketsync/internal/version"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v\n", err)
	}
}

func run() error {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run a single reconciliation cycle and exit")
	dryRun := flag.Bool("dry-run", false, "compute plans without uploading or deleting")
	check := flag.Bool("check", false, "test bucket access for every enabled target and exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return nil
	}

	// Optional .env for environment overrides; the config file is still
	// the source of truth.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	application, err := app.New(cfg, *dryRun)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer application.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch {
	case *check:
		if !application.Check(ctx) {
			return fmt.Errorf("connection test failed for at least one target")
		}
		return nil
	case *once:
		application.RunOnce(ctx)
		return nil
	default:
		return application.Run(ctx)
	}
}
