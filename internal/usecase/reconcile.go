package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/semmidev/bucketsync/internal/config"
	"github.com/semmidev/bucketsync/internal/domain"
)

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

// ConnectFunc opens an ObjectStore handle for one target's bucket using
// the target's own credentials.
type ConnectFunc func(ctx context.Context, target config.Target) (domain.ObjectStore, error)

// ScanFunc lists the file names directly inside a local folder.
type ScanFunc func(folder string) ([]string, error)

type Op string

const (
	OpUpload Op = "upload"
	OpDelete Op = "delete"
)

// Failure records a single file operation that failed during a cycle.
// The rest of the cycle keeps going; the next cycle re-plans the name.
type Failure struct {
	Op   Op
	Name string
	Err  error
}

// Report is the outcome of one reconciliation cycle for one target.
type Report struct {
	Target   string
	Plan     domain.Plan
	Uploaded []string
	Deleted  []string
	Failures []Failure
	Err      error
	Skipped  bool
	Elapsed  time.Duration
}

// Clean reports whether the cycle ran to completion with every planned
// operation succeeding.
func (r Report) Clean() bool {
	return r.Err == nil && !r.Skipped && len(r.Failures) == 0
}

// Reconciler makes each target's bucket prefix mirror its local folder:
// files missing remotely are uploaded, objects missing locally are
// deleted. Matching is by name only.
type Reconciler struct {
	targets []config.Target
	connect ConnectFunc
	scan    ScanFunc
	logger  Logger
	dryRun  bool

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewReconciler(
	targets []config.Target,
	connect ConnectFunc,
	scan ScanFunc,
	logger Logger,
	dryRun bool,
) *Reconciler {
	return &Reconciler{
		targets: targets,
		connect: connect,
		scan:    scan,
		logger:  logger,
		dryRun:  dryRun,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Execute runs one cycle for every target, sequentially and in
// configuration order. A failing target never stops its siblings, and no
// failure escapes to the caller: everything lands in the reports.
func (uc *Reconciler) Execute(ctx context.Context) []Report {
	reports := make([]Report, 0, len(uc.targets))
	for _, target := range uc.targets {
		reports = append(reports, uc.reconcileTarget(ctx, target))
	}
	return reports
}

func (uc *Reconciler) reconcileTarget(ctx context.Context, target config.Target) Report {
	report := Report{Target: target.Name}

	lock := uc.lockFor(target.Name)
	if !lock.TryLock() {
		uc.logger.Warnf("[%s] Previous cycle still running, skipping", target.Name)
		report.Skipped = true
		return report
	}
	defer lock.Unlock()

	start := time.Now()
	uc.logger.Infof("[%s] Starting cycle: %s -> s3://%s/%s",
		target.Name, target.Folder, target.Bucket, target.Prefix)

	local, err := uc.scan(target.Folder)
	if err != nil {
		uc.logger.Errorf("[%s] Local scan failed: %v", target.Name, err)
		report.Err = fmt.Errorf("scan %s: %w", target.Folder, err)
		return report
	}

	store, err := uc.connect(ctx, target)
	if err != nil {
		uc.logger.Errorf("[%s] Connect failed: %v", target.Name, err)
		report.Err = fmt.Errorf("connect: %w", err)
		return report
	}

	remote, err := store.List(ctx)
	if err != nil {
		uc.logger.Errorf("[%s] Remote listing failed: %v", target.Name, err)
		report.Err = fmt.Errorf("list remote: %w", err)
		return report
	}

	report.Plan = domain.Diff(local, remote)

	if report.Plan.Empty() {
		report.Elapsed = time.Since(start)
		uc.logger.Infof("[%s] In sync, nothing to do", target.Name)
		return report
	}

	if uc.dryRun {
		report.Elapsed = time.Since(start)
		uc.logPlan(target.Name, report.Plan)
		return report
	}

	uc.applyPlan(ctx, store, target, &report)

	report.Elapsed = time.Since(start)
	uc.logger.Infof("[%s] Cycle complete in %s: %d uploaded, %d deleted, %d failed",
		target.Name, report.Elapsed.Round(time.Millisecond),
		len(report.Uploaded), len(report.Deleted), len(report.Failures))

	return report
}

// applyPlan performs the planned transfers one file at a time. Failures
// are recorded and skipped over, never propagated.
func (uc *Reconciler) applyPlan(ctx context.Context, store domain.ObjectStore, target config.Target, report *Report) {
	for _, name := range report.Plan.ToUpload {
		localPath := filepath.Join(target.Folder, name)
		if err := store.Upload(ctx, localPath, name); err != nil {
			uc.logger.Errorf("[%s] Upload failed for %s: %v", target.Name, name, err)
			report.Failures = append(report.Failures, Failure{Op: OpUpload, Name: name, Err: err})
			continue
		}
		uc.logger.Infof("[%s] Uploaded %s", target.Name, name)
		report.Uploaded = append(report.Uploaded, name)
	}

	for _, name := range report.Plan.ToDelete {
		if err := store.Delete(ctx, name); err != nil {
			uc.logger.Errorf("[%s] Delete failed for %s: %v", target.Name, name, err)
			report.Failures = append(report.Failures, Failure{Op: OpDelete, Name: name, Err: err})
			continue
		}
		uc.logger.Infof("[%s] Deleted %s", target.Name, name)
		report.Deleted = append(report.Deleted, name)
	}
}

func (uc *Reconciler) logPlan(name string, plan domain.Plan) {
	uc.logger.Infof("[%s] Dry run: would upload %d file(s) and delete %d object(s)",
		name, len(plan.ToUpload), len(plan.ToDelete))
	for _, n := range plan.ToUpload {
		uc.logger.Infof("[%s]   upload %s", name, n)
	}
	for _, n := range plan.ToDelete {
		uc.logger.Infof("[%s]   delete %s", name, n)
	}
}

// lockFor returns the per-target guard that keeps overlapping cycles for
// the same target from running concurrently.
func (uc *Reconciler) lockFor(name string) *sync.Mutex {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.locks[name] == nil {
		uc.locks[name] = &sync.Mutex{}
	}
	return uc.locks[name]
}
