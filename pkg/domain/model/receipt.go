package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/kassa/pkg/domain/types"
)

// ReceiptID represents a unique identifier for a receipt
type ReceiptID string

// NewReceiptID generates a new ReceiptID using UUID
func NewReceiptID() ReceiptID {
	return ReceiptID(uuid.New().String())
}

// Recipient is the alternate person receiving the delivery
type Recipient struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MobileNumber string `json:"mobile_number"`
}

// Customer is the contact and delivery information of a receipt
type Customer struct {
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	MobileNumber string     `json:"mobile_number"`
	Address      string     `json:"address"`
	Postal       string     `json:"postal"`
	City         string     `json:"city"`
	Recipient    *Recipient `json:"recipient,omitempty"`
}

// CardSummary is what a receipt keeps of the card: never the full number
// and never the CVC
type CardSummary struct {
	Last4 string `json:"last4"`
	Month string `json:"month"`
	Year  string `json:"year"`
}

// Receipt is the summary of a completed checkout. It shares nothing with
// the checkout it was made from.
type Receipt struct {
	ID         ReceiptID         `json:"id"`
	CheckoutID CheckoutID        `json:"checkout_id"`
	Items      []CartLine        `json:"items"`
	Customer   Customer          `json:"customer"`
	Delivery   DeliveryOption    `json:"delivery"`
	Payment    PaymentOption     `json:"payment"`
	SubPayment *PaymentSubOption `json:"sub_payment,omitempty"`
	Card       *CardSummary      `json:"card,omitempty"`
	ItemTotal  Amount            `json:"item_total"`
	Total      Amount            `json:"total"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Clone returns a deep copy of the receipt
func (r *Receipt) Clone() *Receipt {
	if r == nil {
		return nil
	}
	copied := *r
	copied.Items = Cart(r.Items).Clone()
	copied.Payment.RequiredFields = append([]types.FieldID(nil), r.Payment.RequiredFields...)
	if r.Customer.Recipient != nil {
		rc := *r.Customer.Recipient
		copied.Customer.Recipient = &rc
	}
	if r.SubPayment != nil {
		sp := *r.SubPayment
		copied.SubPayment = &sp
	}
	if r.Card != nil {
		card := *r.Card
		copied.Card = &card
	}
	return &copied
}
