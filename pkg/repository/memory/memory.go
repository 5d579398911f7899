package memory

import (
	"github.com/secmon-lab/kassa/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory keeps every checkout in process memory. Nothing survives a
// restart.
type Memory struct {
	checkout *checkoutRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		checkout: newCheckoutRepository(),
	}
}

func (m *Memory) Checkout() interfaces.CheckoutRepository {
	return m.checkout
}

func (m *Memory) Close() error {
	return nil
}
