package cleanup

import (
	"context"
	"time"

	"github.com/WooodHead/everpost-backend/internal/common/clock"
	"github.com/WooodHead/everpost-backend/internal/common/logger"
	"github.com/WooodHead/everpost-backend/internal/observability/metrics"
)

type OrphanDeleter interface {
	DeleteOrphans(ctx context.Context, createdBefore time.Time) (int64, error)
}

// SweepOrphans deletes users without a credential that are older than
// grace. Younger rows are left alone because their registration
// transaction may still be open.
func SweepOrphans(ctx context.Context, repo OrphanDeleter, grace time.Duration, c clock.Clock, log *logger.Logger) (int64, error) {
	deleted, err := repo.DeleteOrphans(ctx, c.Now().Add(-grace))
	if err != nil {
		log.WithFields(ctx, logger.Fields{"action": "orphan_sweep"}).Errorf("orphan sweep failed: %v", err)
		return 0, err
	}
	if deleted > 0 {
		metrics.OrphanAccountsDeleted.Add(float64(deleted))
		log.WithFields(ctx, logger.Fields{"action": "orphan_sweep"}).Infof("orphan sweep: deleted %d users without credentials", deleted)
	}
	return deleted, nil
}

// StartOrphanSweep blocks until ctx is cancelled.
func StartOrphanSweep(ctx context.Context, repo OrphanDeleter, interval, grace time.Duration, c clock.Clock, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = SweepOrphans(ctx, repo, grace, c, log)
		}
	}
}
