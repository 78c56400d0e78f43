package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/nutrisense/internal/auth"
)

// RevocationPurger periodically removes revocation entries whose tokens have expired.
type RevocationPurger struct {
	purger   auth.Purger
	interval time.Duration
	logger   *zap.Logger
	nowFunc  func() time.Time
}

// NewRevocationPurger returns nil when the store needs no purging or the interval is disabled.
func NewRevocationPurger(store auth.RevocationStore, interval time.Duration, logger *zap.Logger) *RevocationPurger {
	purger, ok := store.(auth.Purger)
	if !ok || interval <= 0 {
		return nil
	}
	return &RevocationPurger{purger: purger, interval: interval, logger: logger, nowFunc: time.Now}
}

// Start runs the purge loop until ctx is cancelled.
func (p *RevocationPurger) Start(ctx context.Context) {
	if p == nil {
		return
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.RunOnce(ctx)
		}
	}
}

// RunOnce purges once and reports how many entries were removed.
func (p *RevocationPurger) RunOnce(ctx context.Context) int {
	removed, err := p.purger.Purge(ctx, p.nowFunc())
	if err != nil {
		p.logger.Warn("revocation purge failed", zap.Error(err))
		return 0
	}
	if removed > 0 {
		p.logger.Debug("revocation entries purged", zap.Int("removed", removed))
	}
	return removed
}
