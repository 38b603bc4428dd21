package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CacheWarmer periodically pulls both upstream resources through the data service
// so that request paths usually hit a fresh entry.
type CacheWarmer struct {
	data      FPLDataSource
	logger    *logrus.Logger
	cron      *cron.Cron
	mu        sync.Mutex
	wg        sync.WaitGroup
	isRunning bool
	interval  time.Duration
	lastRun   time.Time
	lastErr   error
}

func NewCacheWarmer(data FPLDataSource, logger *logrus.Logger, interval time.Duration) *CacheWarmer {
	return &CacheWarmer{
		data:     data,
		logger:   logger,
		cron:     cron.New(),
		interval: interval,
	}
}

// Start schedules the warm-up and runs one immediately.
func (w *CacheWarmer) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return fmt.Errorf("cache warmer is already running")
	}
	if w.interval <= 0 {
		return fmt.Errorf("invalid cache warm interval %s", w.interval)
	}

	schedule := fmt.Sprintf("@every %s", w.interval.String())
	if _, err := w.cron.AddFunc(schedule, w.Warm); err != nil {
		return fmt.Errorf("failed to schedule cache warmer: %w", err)
	}

	w.cron.Start()
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.Warm()
	}()

	w.logger.WithField("interval", w.interval.String()).Info("Cache warmer started")
	return nil
}

// Stop unschedules the warmer and waits for any running warm-up, including the one
// Start launched, to finish.
func (w *CacheWarmer) Stop() {
	w.mu.Lock()
	if !w.isRunning {
		w.mu.Unlock()
		return
	}
	w.isRunning = false
	w.mu.Unlock()

	// Warm takes mu when it finishes, so wait without holding it.
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.wg.Wait()

	w.logger.Info("Cache warmer stopped")
}

// Warm loads both resources once. Fresh entries are left alone by the cache.
func (w *CacheWarmer) Warm() {
	timeout := w.interval
	if timeout <= 0 || timeout > 30*time.Second {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, _, err := LoadBootstrapAndFixtures(ctx, w.data)
	if err != nil {
		w.logger.WithError(err).Warn("Cache warm-up failed")
	} else {
		w.logger.Debug("Cache warm-up completed")
	}

	w.mu.Lock()
	w.lastRun = time.Now()
	w.lastErr = err
	w.mu.Unlock()
}

// GetStatus returns the current status of the warmer
func (w *CacheWarmer) GetStatus() map[string]interface{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	status := map[string]interface{}{
		"is_running": w.isRunning,
		"interval":   w.interval.String(),
	}
	if !w.lastRun.IsZero() {
		status["last_run"] = w.lastRun
	}
	if w.lastErr != nil {
		status["last_error"] = w.lastErr.Error()
	}

	entries := w.cron.Entries()
	if len(entries) > 0 {
		status["next_run"] = entries[0].Next
	}
	return status
}
