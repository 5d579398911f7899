package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/kassa/pkg/domain/model"
)

// CheckoutRepository holds the checkouts currently open
type CheckoutRepository interface {
	// Create stores a new checkout
	Create(ctx context.Context, checkout *model.Checkout) (*model.Checkout, error)

	// Get retrieves a checkout by ID
	Get(ctx context.Context, id model.CheckoutID) (*model.Checkout, error)

	// Update applies fn to the stored checkout atomically. The change is
	// discarded if fn returns an error.
	Update(ctx context.Context, id model.CheckoutID, fn func(*model.Checkout) error) (*model.Checkout, error)

	// Delete discards a checkout
	Delete(ctx context.Context, id model.CheckoutID) error

	// List retrieves all checkouts
	List(ctx context.Context) ([]*model.Checkout, error)

	// DeleteUpdatedBefore discards every checkout not touched since t and
	// returns how many were removed
	DeleteUpdatedBefore(ctx context.Context, t time.Time) (int, error)
}
