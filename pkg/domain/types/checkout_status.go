package types

import "fmt"

// CheckoutStatus represents the state of a checkout
type CheckoutStatus string

const (
	CheckoutStatusEditing   CheckoutStatus = "EDITING"
	CheckoutStatusSubmitted CheckoutStatus = "SUBMITTED"
)

// AllCheckoutStatuses returns all valid checkout statuses
func AllCheckoutStatuses() []CheckoutStatus {
	return []CheckoutStatus{
		CheckoutStatusEditing,
		CheckoutStatusSubmitted,
	}
}

// IsValid checks if the checkout status is valid
func (s CheckoutStatus) IsValid() bool {
	switch s {
	case CheckoutStatusEditing,
		CheckoutStatusSubmitted:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as CheckoutStatusEditing
func (s CheckoutStatus) Normalize() CheckoutStatus {
	if s == "" {
		return CheckoutStatusEditing
	}
	return s
}

// String returns the string representation of the checkout status
func (s CheckoutStatus) String() string {
	return string(s)
}

// ParseCheckoutStatus parses a string into a CheckoutStatus
func ParseCheckoutStatus(s string) (CheckoutStatus, error) {
	status := CheckoutStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid checkout status: %s", s)
	}
	return status, nil
}
