package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kassa/pkg/domain/model"
	"github.com/secmon-lab/kassa/pkg/domain/model/config"
	"github.com/secmon-lab/kassa/pkg/domain/types"
)

func TestComputeTotal(t *testing.T) {
	delivery := model.DeliveryOption{OptionInfo: model.OptionInfo{ID: "postnord", Name: "PostNord", Fee: 5}}
	payment := model.PaymentOption{OptionInfo: model.OptionInfo{ID: "card", Name: "Card", Fee: 0}}
	cart := model.Cart{{Product: model.Product{ID: "p1", Name: "Mug", Price: 10}, Quantity: 2}}

	sel := model.Selection{}.Select(delivery).Select(payment)
	gt.Value(t, model.ComputeTotal(cart, sel)).Equal(model.Amount(25))

	t.Run("sums every line and the surcharge", func(t *testing.T) {
		cart := model.Cart{
			{Product: model.Product{ID: "p1", Price: 1250}, Quantity: 3},
			{Product: model.Product{ID: "p2", Price: 999}, Quantity: 1},
		}
		catalog := model.DefaultCatalog()
		sel := model.Selection{}.
			Select(lookup(t, catalog, "dhl-express")).
			Select(lookup(t, catalog, "invoice")).
			Select(lookup(t, catalog, "installment-12"))

		gt.Value(t, model.ComputeTotal(cart, sel)).Equal(model.Amount(3750 + 999 + 9900 + 2900 + 1900))
	})

	t.Run("nothing selected", func(t *testing.T) {
		gt.Value(t, model.ComputeTotal(cart, model.Selection{})).Equal(model.Amount(20))
	})
}

type submitFixture struct {
	schema  *config.FieldSchema
	catalog *model.Catalog
	cart    model.Cart
}

func newSubmitFixture() *submitFixture {
	return &submitFixture{
		schema:  config.DefaultFieldSchema(),
		catalog: model.DefaultCatalog(),
		cart:    model.Cart{{Product: model.Product{ID: "p1", Name: "Mug", Price: 10}, Quantity: 2}},
	}
}

func (f *submitFixture) form(t *testing.T, values map[types.FieldID]string) model.Form {
	t.Helper()
	form := model.NewForm(f.schema)
	for id, v := range values {
		var err error
		form, err = form.SetField(id, v)
		gt.NoError(t, err).Required()
	}
	return form
}

func validCustomer() map[types.FieldID]string {
	return map[types.FieldID]string{
		types.FieldFirstName:    "Anna",
		types.FieldLastName:     "Lind",
		types.FieldMobileNumber: "0701234567",
		types.FieldAddress:      "Storgatan 1",
		types.FieldPostal:       "11122",
		types.FieldCity:         "Stockholm",
	}
}

func TestAggregator_Submit(t *testing.T) {
	fixed := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	t.Run("valid submission produces receipt", func(t *testing.T) {
		f := newSubmitFixture()
		agg := model.NewAggregator(f.schema, model.WithClock(func() time.Time { return fixed }))
		sel := model.Selection{}.
			Select(lookup(t, f.catalog, "postnord")).
			Select(lookup(t, f.catalog, "swish"))

		receipt, failure := agg.Submit(model.SubmitInput{
			CheckoutID: "c-1",
			Form:       f.form(t, validCustomer()),
			Selection:  sel,
			Cart:       f.cart,
		})
		gt.Value(t, failure).Nil()
		gt.Value(t, receipt).NotNil().Required()

		gt.String(t, string(receipt.ID)).NotEqual("")
		gt.Value(t, receipt.CheckoutID).Equal(model.CheckoutID("c-1"))
		gt.Value(t, receipt.Total).Equal(model.ComputeTotal(f.cart, sel))
		gt.Value(t, receipt.ItemTotal).Equal(model.Amount(20))
		gt.Value(t, receipt.Customer.FirstName).Equal("Anna")
		gt.Value(t, receipt.Customer.Recipient).Nil()
		gt.Value(t, receipt.Card).Nil()
		gt.Value(t, receipt.SubPayment).Nil()
		gt.Value(t, receipt.CreatedAt).Equal(fixed)
		gt.A(t, receipt.Items).Length(1)
	})

	t.Run("receipt does not share the cart", func(t *testing.T) {
		f := newSubmitFixture()
		agg := model.NewAggregator(f.schema)
		sel := model.Selection{}.
			Select(lookup(t, f.catalog, "postnord")).
			Select(lookup(t, f.catalog, "swish"))

		receipt, _ := agg.Submit(model.SubmitInput{Form: f.form(t, validCustomer()), Selection: sel, Cart: f.cart})
		gt.Value(t, receipt).NotNil().Required()

		f.cart[0].Quantity = 99
		gt.Value(t, receipt.Items[0].Quantity).Equal(2)
	})

	t.Run("empty first name fails", func(t *testing.T) {
		f := newSubmitFixture()
		agg := model.NewAggregator(f.schema)
		values := validCustomer()
		values[types.FieldFirstName] = ""
		sel := model.Selection{}.
			Select(lookup(t, f.catalog, "postnord")).
			Select(lookup(t, f.catalog, "swish"))

		receipt, failure := agg.Submit(model.SubmitInput{Form: f.form(t, values), Selection: sel, Cart: f.cart})
		gt.Value(t, receipt).Nil()
		gt.Value(t, failure).NotNil().Required()
		gt.A(t, failure.Fields()).Length(1)
		gt.Value(t, failure.Fields()[0]).Equal(types.FieldFirstName)

		entry, _ := failure.Form.Get(types.FieldFirstName)
		gt.Bool(t, entry.Error).True()
	})

	t.Run("missing selections and empty cart", func(t *testing.T) {
		f := newSubmitFixture()
		agg := model.NewAggregator(f.schema)

		_, failure := agg.Submit(model.SubmitInput{Form: f.form(t, validCustomer())})
		gt.Value(t, failure).NotNil().Required()
		gt.Bool(t, failure.HasReason(model.IssueNoDelivery)).True()
		gt.Bool(t, failure.HasReason(model.IssueNoPayment)).True()
		gt.Bool(t, failure.HasReason(model.IssueEmptyCart)).True()
		gt.A(t, failure.Fields()).Length(0)
	})

	t.Run("card payment requires card fields and keeps last four digits", func(t *testing.T) {
		f := newSubmitFixture()
		agg := model.NewAggregator(f.schema)
		sel := model.Selection{}.
			Select(lookup(t, f.catalog, "pickup")).
			Select(lookup(t, f.catalog, "card")).
			Select(lookup(t, f.catalog, "visa"))

		_, failure := agg.Submit(model.SubmitInput{Form: f.form(t, validCustomer()), Selection: sel, Cart: f.cart})
		gt.Value(t, failure).NotNil().Required()
		gt.A(t, failure.Fields()).Length(4)

		values := validCustomer()
		values[types.FieldCardNumber] = "4111111111111111"
		values[types.FieldCVC] = "123"
		values[types.FieldCardMonth] = "12"
		values[types.FieldCardYear] = "28"

		receipt, failure := agg.Submit(model.SubmitInput{Form: f.form(t, values), Selection: sel, Cart: f.cart})
		gt.Value(t, failure).Nil()
		gt.Value(t, receipt).NotNil().Required()
		gt.Value(t, receipt.Card).NotNil().Required()
		gt.Value(t, *receipt.Card).Equal(model.CardSummary{Last4: "1111", Month: "12", Year: "28"})
		gt.Value(t, receipt.SubPayment).NotNil().Required()
		gt.Value(t, receipt.SubPayment.ID).Equal(types.OptionID("visa"))
	})

	t.Run("alternate recipient is copied to the receipt", func(t *testing.T) {
		f := newSubmitFixture()
		agg := model.NewAggregator(f.schema)
		values := validCustomer()
		values[types.FieldAltFirstName] = "Åke"
		values[types.FieldAltLastName] = "Ström"
		values[types.FieldAltMobileNumber] = "0739876543"
		sel := model.Selection{}.
			Select(lookup(t, f.catalog, "postnord")).
			Select(lookup(t, f.catalog, "invoice"))

		receipt, failure := agg.Submit(model.SubmitInput{Form: f.form(t, values), Selection: sel, Cart: f.cart, Alternate: true})
		gt.Value(t, failure).Nil()
		gt.Value(t, receipt.Customer.Recipient).NotNil().Required()
		gt.Value(t, *receipt.Customer.Recipient).Equal(model.Recipient{
			FirstName:    "Åke",
			LastName:     "Ström",
			MobileNumber: "0739876543",
		})
	})
}
