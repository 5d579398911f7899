package model

import (
	"time"

	"github.com/secmon-lab/kassa/pkg/domain/model/config"
	"github.com/secmon-lab/kassa/pkg/domain/types"
)

// ComputeTotal returns the item total plus the delivery fee plus the
// payment surcharge of sel
func ComputeTotal(cart Cart, sel Selection) Amount {
	return cart.ItemTotal() + sel.DeliveryFee() + sel.PaymentSurcharge()
}

// ValidationFailure is the result of a rejected submission. Form is the
// submitted form with every offending field flagged, ready to replace
// the form being edited.
type ValidationFailure struct {
	Form   Form              `json:"fields"`
	Issues []ValidationIssue `json:"issues"`
}

// Fields returns the IDs of the fields that caused the failure
func (f *ValidationFailure) Fields() []types.FieldID {
	var ids []types.FieldID
	for _, issue := range f.Issues {
		if issue.Field != "" {
			ids = append(ids, issue.Field)
		}
	}
	return ids
}

// HasReason reports whether any issue has the given reason
func (f *ValidationFailure) HasReason(reason IssueReason) bool {
	for _, issue := range f.Issues {
		if issue.Reason == reason {
			return true
		}
	}
	return false
}

// Aggregator turns a filled-in checkout into a receipt
type Aggregator struct {
	validator *FieldValidator
	now       func() time.Time
}

// AggregatorOption configures an Aggregator
type AggregatorOption func(*Aggregator)

// WithClock replaces the clock used for receipt timestamps
func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) {
		a.now = now
	}
}

// NewAggregator creates an Aggregator validating against schema
func NewAggregator(schema *config.FieldSchema, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		validator: NewFieldValidator(schema),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SubmitInput is everything a submission is computed from
type SubmitInput struct {
	CheckoutID CheckoutID
	Form       Form
	Selection  Selection
	Alternate  bool
	Cart       Cart
}

// Submit validates the input and builds a receipt. Exactly one of the
// return values is non-nil.
func (a *Aggregator) Submit(in SubmitInput) (*Receipt, *ValidationFailure) {
	var extraRequired []types.FieldID
	if in.Selection.Payment != nil {
		extraRequired = in.Selection.Payment.RequiredFields
	}

	form, issues := a.validator.ValidateForm(in.Form, in.Alternate, extraRequired)

	if len(in.Cart) == 0 {
		issues = append(issues, ValidationIssue{Reason: IssueEmptyCart})
	}
	if in.Selection.Delivery == nil {
		issues = append(issues, ValidationIssue{Reason: IssueNoDelivery})
	}
	if in.Selection.Payment == nil {
		issues = append(issues, ValidationIssue{Reason: IssueNoPayment})
	}

	if len(issues) > 0 {
		return nil, &ValidationFailure{Form: form, Issues: issues}
	}

	receipt := &Receipt{
		ID:         NewReceiptID(),
		CheckoutID: in.CheckoutID,
		Items:      in.Cart.Clone(),
		Customer:   customerFromForm(form, in.Alternate),
		Delivery:   *in.Selection.Delivery,
		Payment:    *in.Selection.Payment,
		ItemTotal:  in.Cart.ItemTotal(),
		Total:      ComputeTotal(in.Cart, in.Selection),
		CreatedAt:  a.now().UTC(),
	}
	receipt.Payment.RequiredFields = append([]types.FieldID(nil), receipt.Payment.RequiredFields...)
	if sub := in.Selection.ActiveSubPayment(); sub != nil {
		copied := *sub
		receipt.SubPayment = &copied
	}
	if number := form.Value(types.FieldCardNumber); number != "" && requiresCard(in.Selection.Payment) {
		receipt.Card = &CardSummary{
			Last4: last4(number),
			Month: form.Value(types.FieldCardMonth),
			Year:  form.Value(types.FieldCardYear),
		}
	}

	return receipt, nil
}

func customerFromForm(form Form, alternate bool) Customer {
	c := Customer{
		FirstName:    form.Value(types.FieldFirstName),
		LastName:     form.Value(types.FieldLastName),
		MobileNumber: form.Value(types.FieldMobileNumber),
		Address:      form.Value(types.FieldAddress),
		Postal:       form.Value(types.FieldPostal),
		City:         form.Value(types.FieldCity),
	}
	if alternate {
		c.Recipient = &Recipient{
			FirstName:    form.Value(types.FieldAltFirstName),
			LastName:     form.Value(types.FieldAltLastName),
			MobileNumber: form.Value(types.FieldAltMobileNumber),
		}
	}
	return c
}

func requiresCard(p *PaymentOption) bool {
	for _, id := range p.RequiredFields {
		if id == types.FieldCardNumber {
			return true
		}
	}
	return false
}

func last4(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}
