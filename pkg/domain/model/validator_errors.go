package model

import "github.com/m-mizutani/goerr/v2"

// Checkout errors
var (
	ErrUnknownField      = goerr.New("unknown checkout field")
	ErrUnknownOption     = goerr.New("unknown catalog option")
	ErrInvalidCatalog    = goerr.New("invalid catalog")
	ErrInvalidCart       = goerr.New("invalid cart")
	ErrCheckoutSubmitted = goerr.New("checkout is already submitted")
)

// Context keys for error values
const (
	FieldIDKey    = "field_id"
	OptionIDKey   = "option_id"
	OptionTypeKey = "option_type"
	CheckoutIDKey = "checkout_id"
	LineIndexKey  = "line_index"
)
