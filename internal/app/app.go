package app

import (
	"context"
	"fmt"

	"github.com/semmidev/bucketsync/internal/adapter/notify"
	"github.com/semmidev/bucketsync/internal/adapter/storage"
	"github.com/semmidev/bucketsync/internal/config"
	"github.com/semmidev/bucketsync/internal/domain"
	"github.com/semmidev/bucketsync/internal/infrastructure/logger"
	"github.com/semmidev/bucketsync/internal/infrastructure/scheduler"
	"github.com/semmidev/bucketsync/internal/usecase"
)

type App struct {
	config     *config.Config
	logger     *logger.Logger
	scheduler  *scheduler.Scheduler
	reconciler *usecase.Reconciler
	probe      *usecase.Probe
}

func New(cfg *config.Config, dryRun bool) (*App, error) {
	log, err := logger.New(cfg.App.LogLevel, cfg.App.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	targets := cfg.EnabledTargets()
	if len(targets) == 0 {
		return nil, fmt.Errorf("no enabled targets found")
	}

	log.Infof("Starting %s", cfg.App.Name)
	for _, t := range targets {
		log.Infof("✓ Target %s: %s -> s3://%s/%s (%s)",
			t.Name, t.Folder, t.Bucket, t.Prefix, t.Region)
	}
	if dryRun {
		log.Infof("Dry run: no uploads or deletes will be performed")
	}

	notifier := initializeNotifier(cfg, log)

	connect := func(ctx context.Context, target config.Target) (domain.ObjectStore, error) {
		return storage.NewS3(ctx, target)
	}

	return &App{
		config:     cfg,
		logger:     log,
		scheduler:  scheduler.New(log),
		reconciler: usecase.NewReconciler(targets, connect, storage.ScanFolder, log, dryRun),
		probe:      usecase.NewProbe(connect, notifier, log),
	}, nil
}

func initializeNotifier(cfg *config.Config, log *logger.Logger) domain.Notifier {
	if !cfg.Telegram.Enabled {
		return nil
	}

	notifier, err := notify.NewTelegram(cfg.Telegram)
	if err != nil {
		log.Errorf("Failed to initialize Telegram notifier: %v", err)
		return nil
	}

	log.Infof("✓ Telegram notifications enabled")
	return notifier
}

// Run schedules periodic reconciliation and blocks until ctx is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	schedule := a.config.Sync.Schedule

	if err := a.scheduler.AddJob("reconcile", schedule, func(ctx context.Context) error {
		a.RunOnce(ctx)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to schedule reconciliation: %w", err)
	}

	a.scheduler.Start()
	a.logger.Infof("Scheduler started: %s", schedule)

	<-ctx.Done()
	return nil
}

// RunOnce runs a single reconciliation cycle over every enabled target.
func (a *App) RunOnce(ctx context.Context) {
	a.logger.Infof("=== Reconciliation triggered ===")

	reports := a.reconciler.Execute(ctx)

	clean := 0
	for _, report := range reports {
		if report.Clean() {
			clean++
		}
	}
	a.logger.Infof("=== Reconciliation finished: %d/%d target(s) clean ===", clean, len(reports))
}

// Check probes bucket access for every enabled target and reports whether
// all of them passed.
func (a *App) Check(ctx context.Context) bool {
	allOK := true
	for _, target := range a.config.EnabledTargets() {
		if outcome := a.probe.Execute(ctx, target); !outcome.OK {
			allOK = false
		}
	}
	return allOK
}

func (a *App) Shutdown() {
	a.logger.Infof("Shutting down...")
	a.scheduler.Stop()
	a.logger.Close()
}
