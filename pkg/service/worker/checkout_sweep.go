package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kassa/pkg/utils/logging"
)

// IdleSweeper deletes checkouts that were not touched within ttl
type IdleSweeper interface {
	DeleteIdle(ctx context.Context, ttl time.Duration) (int, error)
}

// CheckoutSweepWorker periodically discards abandoned checkouts so the
// in-memory repository does not grow without bound
//
// Architecture assumptions:
// - Single server instance, checkouts live only in process memory
type CheckoutSweepWorker struct {
	sweeper  IdleSweeper
	interval time.Duration
	ttl      time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewCheckoutSweepWorker creates a new worker for discarding idle checkouts
func NewCheckoutSweepWorker(sweeper IdleSweeper, interval, ttl time.Duration) (*CheckoutSweepWorker, error) {
	if interval <= 0 {
		return nil, goerr.New("sweep interval must be positive", goerr.V("interval", interval))
	}
	if ttl <= 0 {
		return nil, goerr.New("checkout ttl must be positive", goerr.V("ttl", ttl))
	}

	return &CheckoutSweepWorker{
		sweeper:  sweeper,
		interval: interval,
		ttl:      ttl,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins the background sweep loop. It does not block.
func (w *CheckoutSweepWorker) Start(ctx context.Context) {
	logging.Default().Info("Checkout sweep worker starting",
		"interval", w.interval.String(),
		"ttl", w.ttl.String())

	go w.run(ctx)
}

// Stop signals the worker to stop and waits for completion
func (w *CheckoutSweepWorker) Stop() {
	logging.Default().Info("Checkout sweep worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Checkout sweep worker stopped")
}

func (w *CheckoutSweepWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := w.sweeper.DeleteIdle(ctx, w.ttl); err != nil {
				// keep running, the next tick retries
				logging.Default().Error("Checkout sweep failed",
					"error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Checkout sweep worker context cancelled")
			return
		}
	}
}
