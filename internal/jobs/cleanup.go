// Package jobs holds background maintenance work.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"foodstore/internal/repository"
)

// DefaultCleanupInterval is how often expired sessions are swept.
const DefaultCleanupInterval = time.Hour

// SessionCleaner periodically deletes expired login sessions. Expired rows
// are already invisible to lookups; this keeps the table from growing
// without bound.
type SessionCleaner struct {
	store    repository.Store
	interval time.Duration
	logger   *slog.Logger
}

// NewSessionCleaner creates a session cleaner. A non-positive interval falls
// back to DefaultCleanupInterval.
func NewSessionCleaner(store repository.Store, interval time.Duration, logger *slog.Logger) *SessionCleaner {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionCleaner{
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps on a ticker until ctx is canceled. Call it from a goroutine.
func (c *SessionCleaner) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sweep(ctx)
		}
	}
}

func (c *SessionCleaner) sweep(ctx context.Context) {
	deleted, err := c.store.DeleteExpiredSessions(ctx)
	if err != nil {
		c.logger.Error("session cleanup failed", "error", err)
		return
	}
	if deleted > 0 {
		c.logger.Info("expired sessions removed", "count", deleted)
	}
}
