package usecase

import (
	"errors"

	"github.com/secmon-lab/kassa/pkg/domain/interfaces"
	"github.com/secmon-lab/kassa/pkg/domain/model"
)

// IsNotFound reports whether err is caused by a missing checkout
func IsNotFound(err error) bool {
	return errors.Is(err, interfaces.ErrNotFound)
}

// IsConflict reports whether err is caused by changing a submitted checkout
func IsConflict(err error) bool {
	return errors.Is(err, model.ErrCheckoutSubmitted)
}

// IsBadRequest reports whether err is caused by invalid client input
func IsBadRequest(err error) bool {
	return errors.Is(err, model.ErrUnknownField) ||
		errors.Is(err, model.ErrUnknownOption) ||
		errors.Is(err, model.ErrInvalidCart)
}
