package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kassa/pkg/domain/model/config"
	"github.com/secmon-lab/kassa/pkg/domain/types"
)

// CheckoutID represents a unique identifier for a checkout
type CheckoutID string

// NewCheckoutID generates a new CheckoutID using UUID
func NewCheckoutID() CheckoutID {
	return CheckoutID(uuid.New().String())
}

// String returns the string representation of CheckoutID
func (id CheckoutID) String() string {
	return string(id)
}

// Checkout is the state of one checkout view. It only changes through its
// methods; once submitted it is frozen.
type Checkout struct {
	ID        CheckoutID
	Status    types.CheckoutStatus
	Form      Form
	Selection Selection
	Alternate bool
	Cart      Cart
	Receipt   *Receipt
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCheckout opens a checkout for cart with an empty form and the
// catalog's default selection
func NewCheckout(schema *config.FieldSchema, cart Cart, defaults Selection) *Checkout {
	now := time.Now().UTC()
	return &Checkout{
		ID:        NewCheckoutID(),
		Status:    types.CheckoutStatusEditing,
		Form:      NewForm(schema),
		Selection: defaults,
		Cart:      cart.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsSubmitted reports whether the checkout reached its terminal state
func (c *Checkout) IsSubmitted() bool {
	return c.Status.Normalize() == types.CheckoutStatusSubmitted
}

func (c *Checkout) ensureEditing() error {
	if c.IsSubmitted() {
		return goerr.Wrap(ErrCheckoutSubmitted, "checkout cannot be changed", goerr.V(CheckoutIDKey, c.ID))
	}
	return nil
}

func (c *Checkout) touch() {
	c.UpdatedAt = time.Now().UTC()
}

// SetField updates one form field
func (c *Checkout) SetField(id types.FieldID, raw string) error {
	if err := c.ensureEditing(); err != nil {
		return err
	}
	form, err := c.Form.SetField(id, raw)
	if err != nil {
		return err
	}
	c.Form = form
	c.touch()
	return nil
}

// ReplaceAll overwrites the whole form
func (c *Checkout) ReplaceAll(entries map[types.FieldID]FieldEntry) error {
	if err := c.ensureEditing(); err != nil {
		return err
	}
	form, err := c.Form.ReplaceAll(entries)
	if err != nil {
		return err
	}
	c.Form = form
	c.touch()
	return nil
}

// SelectOption makes opt the current choice of its category
func (c *Checkout) SelectOption(opt Option) error {
	if err := c.ensureEditing(); err != nil {
		return err
	}
	c.Selection = c.Selection.Select(opt)
	c.touch()
	return nil
}

// SetAlternate turns the alternate recipient on or off
func (c *Checkout) SetAlternate(enabled bool) error {
	if err := c.ensureEditing(); err != nil {
		return err
	}
	c.Alternate = enabled
	c.touch()
	return nil
}

// Total returns the amount the customer pays with the current selection
func (c *Checkout) Total() Amount {
	return ComputeTotal(c.Cart, c.Selection)
}

// Submit runs the aggregator. On success the checkout becomes submitted
// and confirm is called once with the receipt. On failure the form is
// replaced by the annotated one and confirm is not called.
func (c *Checkout) Submit(agg *Aggregator, confirm func(*Receipt)) (*Receipt, *ValidationFailure, error) {
	if err := c.ensureEditing(); err != nil {
		return nil, nil, err
	}

	receipt, failure := agg.Submit(SubmitInput{
		CheckoutID: c.ID,
		Form:       c.Form,
		Selection:  c.Selection,
		Alternate:  c.Alternate,
		Cart:       c.Cart,
	})
	if failure != nil {
		c.Form = failure.Form
		c.touch()
		return nil, failure, nil
	}

	c.Status = types.CheckoutStatusSubmitted
	c.Receipt = receipt
	c.touch()

	if confirm != nil {
		confirm(receipt.Clone())
	}
	return receipt.Clone(), nil, nil
}

// Clone returns a copy that shares no mutable state with c
func (c *Checkout) Clone() *Checkout {
	if c == nil {
		return nil
	}
	copied := *c
	copied.Cart = c.Cart.Clone()
	copied.Receipt = c.Receipt.Clone()
	copied.Selection = c.Selection.clone()
	return &copied
}

func (s Selection) clone() Selection {
	var copied Selection
	if s.Delivery != nil {
		d := *s.Delivery
		copied.Delivery = &d
	}
	if s.Payment != nil {
		p := *s.Payment
		p.RequiredFields = append([]types.FieldID(nil), s.Payment.RequiredFields...)
		copied.Payment = &p
	}
	if s.SubPayment != nil {
		sp := *s.SubPayment
		copied.SubPayment = &sp
	}
	return copied
}
