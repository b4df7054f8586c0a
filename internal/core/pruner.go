package core

// pruner.go keeps the audit log bounded.
//
// The pruner runs once on start and then on every tick until its context
// is cancelled. A failed run is logged and retried on the next tick.

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// PruneConfig holds configuration for the audit pruner.
type PruneConfig struct {
	RetentionDays int           // Days to keep audit entries (default: 90)
	CheckInterval time.Duration // How often to run (default: 24h)
}

func (c PruneConfig) withDefaults() PruneConfig {
	if c.RetentionDays <= 0 {
		c.RetentionDays = 90
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = 24 * time.Hour
	}
	return c
}

// StartAuditPruner blocks, pruning audit entries older than the retention
// window until ctx is cancelled.
func (s *Service) StartAuditPruner(ctx context.Context, cfg PruneConfig) {
	cfg = cfg.withDefaults()
	slog.Info("audit pruner started",
		"retention_days", cfg.RetentionDays,
		"interval", cfg.CheckInterval.String(),
	)

	s.runPrune(ctx, cfg)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("audit pruner stopped")
			return
		case <-ticker.C:
			s.runPrune(ctx, cfg)
		}
	}
}

func (s *Service) runPrune(ctx context.Context, cfg PruneConfig) {
	start := time.Now()
	removed, err := s.PruneAudit(ctx, cfg.RetentionDays)
	if err != nil {
		slog.Error("audit prune failed", "error", err)
		return
	}
	slog.Info("audit prune completed",
		"entries_removed", removed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// PruneAudit deletes audit entries older than retentionDays. A run that
// removes anything leaves an entry of its own.
func (s *Service) PruneAudit(ctx context.Context, retentionDays int) (int, error) {
	if retentionDays <= 0 {
		return 0, NewValidationError("retentionDays", "Retention must be at least one day")
	}

	cutoff := s.audit.now().AddDate(0, 0, -retentionDays)
	removed, err := s.audit.Prune(ctx, cutoff)
	if err != nil {
		return removed, err
	}

	if removed > 0 {
		summary := fmt.Sprintf("Pruned %d audit entries older than %d days", removed, retentionDays)
		_, _ = s.audit.Record(ctx, ActionPrune, "audit-log", "", summary)
	}
	return removed, nil
}
