package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"pwsplit/internal/config"
	"pwsplit/internal/logging"
	"pwsplit/internal/splitstate"
)

// Checker repairs one split record.
type Checker interface {
	HealthCheck(ctx context.Context, rec *splitstate.Record) (bool, error)
}

// Watcher sweeps all persisted splits on a fixed cadence.
type Watcher struct {
	store    *splitstate.Store
	checker  Checker
	interval time.Duration
	lock     *flock.Flock
	logger   *slog.Logger
}

// New constructs a watcher over the given store and checker.
func New(cfg *config.Config, store *splitstate.Store, checker Checker, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil || store == nil || checker == nil {
		return nil, errors.New("watcher requires config, store, and checker")
	}
	lockPath := filepath.Join(store.Dir(), "pwsplit.lock")
	return &Watcher{
		store:    store,
		checker:  checker,
		interval: cfg.HealthInterval(),
		lock:     flock.New(lockPath),
		logger:   logging.Or(logger),
	}, nil
}

// Run acquires the watcher lock, sweeps immediately, and then sweeps every
// interval until ctx is canceled. It returns an error when another watcher
// already holds the lock.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.store.Dir(), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	ok, err := w.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire watcher lock: %w", err)
	}
	if !ok {
		return errors.New("another pwsplit watcher is already running")
	}
	defer func() {
		if err := w.lock.Unlock(); err != nil {
			w.logger.Warn("release watcher lock", "error", err)
		}
	}()

	w.logger.Info("watcher started", "interval", w.interval)
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return nil
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Watcher) sweep(ctx context.Context) {
	sweepID := uuid.NewString()
	log := w.logger.With("sweep", sweepID)

	records, err := w.store.ListAll()
	if err != nil {
		log.Error("list splits", "error", err)
		return
	}
	for _, rec := range records {
		if ctx.Err() != nil {
			return
		}
		repaired, err := w.checker.HealthCheck(ctx, rec)
		switch {
		case err != nil:
			log.Error("health check", "split", rec.Name, "error", err)
		case repaired:
			log.Info("split repaired", "split", rec.Name)
		}
	}
}
