package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kassa/pkg/domain/types"
)

// Catalog holds the fixed delivery and payment options. It is read-only
// once built and safe for concurrent use.
type Catalog struct {
	deliveries  []DeliveryOption
	payments    []PaymentOption
	subPayments []PaymentSubOption
	index       map[types.OptionID]Option
	defaults    Selection
}

// CatalogInput is the raw material of NewCatalog. Default IDs are
// optional; an empty ID means nothing is preselected in that category.
type CatalogInput struct {
	Deliveries      []DeliveryOption
	Payments        []PaymentOption
	SubPayments     []PaymentSubOption
	DefaultDelivery types.OptionID
	DefaultPayment  types.OptionID
}

// NewCatalog validates and indexes the options. Option IDs are unique
// across all categories so a bare ID is enough to select an option.
func NewCatalog(in CatalogInput) (*Catalog, error) {
	c := &Catalog{
		index: make(map[types.OptionID]Option),
	}

	add := func(opt Option) error {
		info := opt.Info()
		if err := info.ID.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidCatalog, "invalid option ID",
				goerr.V(OptionIDKey, info.ID), goerr.V("reason", err.Error()))
		}
		if info.Name == "" {
			return goerr.Wrap(ErrInvalidCatalog, "option name is required", goerr.V(OptionIDKey, info.ID))
		}
		if info.Fee < 0 {
			return goerr.Wrap(ErrInvalidCatalog, "option fee must not be negative",
				goerr.V(OptionIDKey, info.ID), goerr.V("fee", info.Fee))
		}
		if _, exists := c.index[info.ID]; exists {
			return goerr.Wrap(ErrInvalidCatalog, "duplicate option ID", goerr.V(OptionIDKey, info.ID))
		}
		c.index[info.ID] = opt
		return nil
	}

	for _, d := range in.Deliveries {
		if err := add(d); err != nil {
			return nil, err
		}
		c.deliveries = append(c.deliveries, d)
	}
	for _, p := range in.Payments {
		p.RequiredFields = append([]types.FieldID(nil), p.RequiredFields...)
		if err := add(p); err != nil {
			return nil, err
		}
		c.payments = append(c.payments, p)
	}
	for _, sp := range in.SubPayments {
		parent, ok := c.index[sp.Parent]
		if !ok || parent.Type() != types.OptionTypePayment {
			return nil, goerr.Wrap(ErrInvalidCatalog, "sub-option parent must be a payment option",
				goerr.V(OptionIDKey, sp.ID), goerr.V("parent", sp.Parent))
		}
		if err := add(sp); err != nil {
			return nil, err
		}
		c.subPayments = append(c.subPayments, sp)
	}

	if in.DefaultDelivery != "" {
		opt, err := c.lookupTyped(in.DefaultDelivery, types.OptionTypeDelivery)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid default delivery")
		}
		c.defaults = c.defaults.Select(opt)
	}
	if in.DefaultPayment != "" {
		opt, err := c.lookupTyped(in.DefaultPayment, types.OptionTypePayment)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid default payment")
		}
		c.defaults = c.defaults.Select(opt)
	}

	return c, nil
}

func (c *Catalog) lookupTyped(id types.OptionID, want types.OptionType) (Option, error) {
	opt, err := c.Lookup(id)
	if err != nil {
		return nil, err
	}
	if opt.Type() != want {
		return nil, goerr.Wrap(ErrInvalidCatalog, "option has wrong type",
			goerr.V(OptionIDKey, id), goerr.V(OptionTypeKey, opt.Type()))
	}
	return opt, nil
}

// Lookup returns the option with the given ID
func (c *Catalog) Lookup(id types.OptionID) (Option, error) {
	opt, ok := c.index[id]
	if !ok {
		return nil, goerr.Wrap(ErrUnknownOption, "option not found", goerr.V(OptionIDKey, id))
	}
	return opt, nil
}

// Deliveries returns the delivery options in catalog order
func (c *Catalog) Deliveries() []DeliveryOption {
	return append([]DeliveryOption(nil), c.deliveries...)
}

// Payments returns the payment options in catalog order
func (c *Catalog) Payments() []PaymentOption {
	return append([]PaymentOption(nil), c.payments...)
}

// SubPayments returns the sub-options of the given payment method
func (c *Catalog) SubPayments(parent types.OptionID) []PaymentSubOption {
	var result []PaymentSubOption
	for _, sp := range c.subPayments {
		if sp.Parent == parent {
			result = append(result, sp)
		}
	}
	return result
}

// AllSubPayments returns every sub-option in catalog order
func (c *Catalog) AllSubPayments() []PaymentSubOption {
	return append([]PaymentSubOption(nil), c.subPayments...)
}

// DefaultSelection is the selection a new checkout starts with
func (c *Catalog) DefaultSelection() Selection {
	return c.defaults
}

// DefaultCatalog returns the storefront's built-in catalog. Nothing is
// preselected so the customer has to choose both delivery and payment.
func DefaultCatalog() *Catalog {
	cardFields := []types.FieldID{
		types.FieldCardNumber,
		types.FieldCVC,
		types.FieldCardMonth,
		types.FieldCardYear,
	}

	c, err := NewCatalog(CatalogInput{
		Deliveries: []DeliveryOption{
			{OptionInfo{ID: "postnord", Name: "PostNord", Fee: 4900, Description: "Delivered to your nearest service point in 2-4 days"}},
			{OptionInfo{ID: "dhl-express", Name: "DHL Express", Fee: 9900, Description: "Home delivery next working day"}},
			{OptionInfo{ID: "pickup", Name: "Store pickup", Fee: 0, Description: "Pick up your order in store"}},
		},
		Payments: []PaymentOption{
			{OptionInfo: OptionInfo{ID: "card", Name: "Card", Fee: 0, Description: "Pay with debit or credit card"}, RequiredFields: cardFields},
			{OptionInfo: OptionInfo{ID: "invoice", Name: "Invoice", Fee: 2900, Description: "Pay within 14 days"}},
			{OptionInfo: OptionInfo{ID: "swish", Name: "Swish", Fee: 0, Description: "Pay with your mobile number"}},
		},
		SubPayments: []PaymentSubOption{
			{OptionInfo: OptionInfo{ID: "visa", Name: "Visa"}, Parent: "card"},
			{OptionInfo: OptionInfo{ID: "mastercard", Name: "Mastercard"}, Parent: "card"},
			{OptionInfo: OptionInfo{ID: "invoice-14", Name: "14 days", Description: "Pay the full amount within 14 days"}, Parent: "invoice"},
			{OptionInfo: OptionInfo{ID: "installment-12", Name: "12 months", Fee: 1900, Description: "Split the payment over 12 months"}, Parent: "invoice"},
		},
	})
	if err != nil {
		panic(err)
	}
	return c
}
