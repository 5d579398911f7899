package model

import "github.com/secmon-lab/kassa/pkg/domain/types"

// OptionInfo is the part shared by every catalog entry
type OptionInfo struct {
	ID          types.OptionID `json:"id"`
	Name        string         `json:"name"`
	Fee         Amount         `json:"fee"`
	Description string         `json:"description"`
}

// Info returns the shared catalog data
func (o OptionInfo) Info() OptionInfo {
	return o
}

// Option is a selectable catalog entry. It is implemented only by
// DeliveryOption, PaymentOption and PaymentSubOption.
type Option interface {
	Info() OptionInfo
	Type() types.OptionType
	isOption()
}

// DeliveryOption is an entry of the delivery catalog
type DeliveryOption struct {
	OptionInfo
}

// Type returns types.OptionTypeDelivery
func (DeliveryOption) Type() types.OptionType { return types.OptionTypeDelivery }
func (DeliveryOption) isOption()              {}

// PaymentOption is a top-level payment method
type PaymentOption struct {
	OptionInfo
	// RequiredFields are form fields that become required when this
	// method is chosen, e.g. the card fields for card payment.
	RequiredFields []types.FieldID `json:"required_fields,omitempty"`
}

// Type returns types.OptionTypePayment
func (PaymentOption) Type() types.OptionType { return types.OptionTypePayment }
func (PaymentOption) isOption()              {}

// PaymentSubOption is nested under a payment method, e.g. a card network
// or an installment plan
type PaymentSubOption struct {
	OptionInfo
	Parent types.OptionID `json:"parent"`
}

// Type returns types.OptionTypeSubPayment
func (PaymentSubOption) Type() types.OptionType { return types.OptionTypeSubPayment }
func (PaymentSubOption) isOption()              {}

// Selection holds the chosen option of each category. nil means nothing
// chosen yet.
type Selection struct {
	Delivery   *DeliveryOption   `json:"delivery"`
	Payment    *PaymentOption    `json:"payment"`
	SubPayment *PaymentSubOption `json:"sub_payment"`
}

// Select returns a new selection where opt replaces the previous choice of
// its category. The other categories are kept as they are.
func (s Selection) Select(opt Option) Selection {
	switch o := opt.(type) {
	case DeliveryOption:
		s.Delivery = &o
	case PaymentOption:
		s.Payment = &o
	case PaymentSubOption:
		s.SubPayment = &o
	case *DeliveryOption:
		if o != nil {
			return s.Select(*o)
		}
	case *PaymentOption:
		if o != nil {
			return s.Select(*o)
		}
	case *PaymentSubOption:
		if o != nil {
			return s.Select(*o)
		}
	}
	return s
}

// ActiveSubPayment returns the sub-option only if it belongs to the
// selected payment method
func (s Selection) ActiveSubPayment() *PaymentSubOption {
	if s.Payment == nil || s.SubPayment == nil {
		return nil
	}
	if s.SubPayment.Parent != s.Payment.ID {
		return nil
	}
	return s.SubPayment
}

// PaymentSurcharge is the fee of the payment method plus the fee of its
// active sub-option
func (s Selection) PaymentSurcharge() Amount {
	var fee Amount
	if s.Payment != nil {
		fee += s.Payment.Fee
	}
	if sub := s.ActiveSubPayment(); sub != nil {
		fee += sub.Fee
	}
	return fee
}

// DeliveryFee is the fee of the selected delivery option, 0 if none
func (s Selection) DeliveryFee() Amount {
	if s.Delivery == nil {
		return 0
	}
	return s.Delivery.Fee
}
