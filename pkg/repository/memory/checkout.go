package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kassa/pkg/domain/interfaces"
	"github.com/secmon-lab/kassa/pkg/domain/model"
)

type checkoutRepository struct {
	mu        sync.RWMutex
	checkouts map[model.CheckoutID]*model.Checkout
}

func newCheckoutRepository() *checkoutRepository {
	return &checkoutRepository{
		checkouts: make(map[model.CheckoutID]*model.Checkout),
	}
}

func (r *checkoutRepository) Create(ctx context.Context, checkout *model.Checkout) (*model.Checkout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := checkout.Clone()
	if created.ID == "" {
		created.ID = model.NewCheckoutID()
	}
	if _, exists := r.checkouts[created.ID]; exists {
		return nil, goerr.New("checkout already exists", goerr.V(model.CheckoutIDKey, created.ID))
	}
	now := time.Now().UTC()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = now
	}
	if created.UpdatedAt.IsZero() {
		created.UpdatedAt = now
	}

	r.checkouts[created.ID] = created
	return created.Clone(), nil
}

func (r *checkoutRepository) Get(ctx context.Context, id model.CheckoutID) (*model.Checkout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	checkout, exists := r.checkouts[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "checkout not found", goerr.V(model.CheckoutIDKey, id))
	}

	return checkout.Clone(), nil
}

func (r *checkoutRepository) Update(ctx context.Context, id model.CheckoutID, fn func(*model.Checkout) error) (*model.Checkout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.checkouts[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "checkout not found", goerr.V(model.CheckoutIDKey, id))
	}

	// fn works on a copy so a failed update leaves the stored state as is
	working := existing.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.ID = existing.ID
	working.CreatedAt = existing.CreatedAt

	r.checkouts[id] = working
	return working.Clone(), nil
}

func (r *checkoutRepository) Delete(ctx context.Context, id model.CheckoutID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.checkouts[id]; !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "checkout not found", goerr.V(model.CheckoutIDKey, id))
	}

	delete(r.checkouts, id)
	return nil
}

func (r *checkoutRepository) List(ctx context.Context) ([]*model.Checkout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	checkouts := make([]*model.Checkout, 0, len(r.checkouts))
	for _, c := range r.checkouts {
		checkouts = append(checkouts, c.Clone())
	}

	sort.Slice(checkouts, func(i, j int) bool {
		return checkouts[i].CreatedAt.Before(checkouts[j].CreatedAt)
	})

	return checkouts, nil
}

func (r *checkoutRepository) DeleteUpdatedBefore(ctx context.Context, t time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, c := range r.checkouts {
		if c.UpdatedAt.Before(t) {
			delete(r.checkouts, id)
			deleted++
		}
	}
	return deleted, nil
}
