package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned by every repository backend for a missing entity
var ErrNotFound = goerr.New("not found")

// Repository defines the interface for checkout state storage
type Repository interface {
	Checkout() CheckoutRepository

	Close() error
}
