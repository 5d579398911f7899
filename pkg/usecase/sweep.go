package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kassa/pkg/domain/interfaces"
	"github.com/secmon-lab/kassa/pkg/utils/logging"
)

// SweepUseCase discards checkouts that were abandoned
type SweepUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

// NewSweepUseCase creates a new SweepUseCase instance
func NewSweepUseCase(repo interfaces.Repository) *SweepUseCase {
	return &SweepUseCase{
		repo: repo,
		now:  time.Now,
	}
}

// DeleteIdle removes every checkout not touched within ttl and returns how
// many were removed
func (uc *SweepUseCase) DeleteIdle(ctx context.Context, ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, goerr.New("ttl must be positive", goerr.V("ttl", ttl))
	}

	deleted, err := uc.repo.Checkout().DeleteUpdatedBefore(ctx, uc.now().Add(-ttl))
	if err != nil {
		return 0, goerr.Wrap(err, "failed to delete idle checkouts")
	}

	if deleted > 0 {
		logging.From(ctx).Info("idle checkouts discarded", "count", deleted, "ttl", ttl.String())
	}
	return deleted, nil
}
