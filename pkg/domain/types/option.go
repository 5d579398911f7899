package types

import (
	"fmt"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// OptionID identifies an entry of the delivery or payment catalog
type OptionID string

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the OptionID is valid
func (o OptionID) Validate() error {
	if o == "" {
		return goerr.New("option ID cannot be empty")
	}
	if !idPattern.MatchString(string(o)) {
		return goerr.New("option ID must be lowercase alphanumeric with hyphens", goerr.V("id", o))
	}
	return nil
}

// String returns the string representation of OptionID
func (o OptionID) String() string {
	return string(o)
}

// OptionType is the catalog tag of an option
type OptionType string

const (
	OptionTypeDelivery   OptionType = "del"
	OptionTypePayment    OptionType = "pay"
	OptionTypeSubPayment OptionType = "sub"
)

// AllOptionTypes returns all valid option types
func AllOptionTypes() []OptionType {
	return []OptionType{
		OptionTypeDelivery,
		OptionTypePayment,
		OptionTypeSubPayment,
	}
}

// IsValid checks if the option type is valid
func (t OptionType) IsValid() bool {
	switch t {
	case OptionTypeDelivery,
		OptionTypePayment,
		OptionTypeSubPayment:
		return true
	default:
		return false
	}
}

// String returns the string representation of the option type
func (t OptionType) String() string {
	return string(t)
}

// ParseOptionType parses a string into an OptionType
func ParseOptionType(s string) (OptionType, error) {
	t := OptionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid option type: %s", s)
	}
	return t, nil
}
