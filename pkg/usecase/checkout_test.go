package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kassa/pkg/domain/model"
	"github.com/secmon-lab/kassa/pkg/domain/types"
	"github.com/secmon-lab/kassa/pkg/repository/memory"
	"github.com/secmon-lab/kassa/pkg/usecase"
)

func testCart() model.Cart {
	return model.Cart{{Product: model.Product{ID: "p1", Name: "Mug", Price: 10}, Quantity: 2}}
}

func fillCustomer(t *testing.T, ctx context.Context, uc *usecase.CheckoutUseCase, id model.CheckoutID) {
	t.Helper()
	values := map[types.FieldID]string{
		types.FieldFirstName:    "Anna",
		types.FieldLastName:     "Lind",
		types.FieldMobileNumber: "0701234567",
		types.FieldAddress:      "Storgatan 1",
		types.FieldPostal:       "11122",
		types.FieldCity:         "Stockholm",
	}
	for field, v := range values {
		_, err := uc.SetField(ctx, id, field, v)
		gt.NoError(t, err).Required()
	}
}

func TestCheckoutUseCase_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("opens with empty form", func(t *testing.T) {
		uc := usecase.New(memory.New()).Checkout
		checkout, err := uc.Open(ctx, testCart())
		gt.NoError(t, err).Required()

		gt.Value(t, checkout.Status).Equal(types.CheckoutStatusEditing)
		gt.Value(t, checkout.Form.Value(types.FieldFirstName)).Equal("")
		gt.Value(t, checkout.Total()).Equal(model.Amount(20))
	})

	t.Run("rejects invalid cart", func(t *testing.T) {
		uc := usecase.New(memory.New()).Checkout
		_, err := uc.Open(ctx, model.Cart{{Product: model.Product{ID: "p1", Price: 10}, Quantity: 0}})
		gt.Error(t, err).Is(model.ErrInvalidCart)
		gt.Bool(t, usecase.IsBadRequest(err)).True()
	})

	t.Run("catalog defaults are preselected", func(t *testing.T) {
		catalog, err := model.NewCatalog(model.CatalogInput{
			Deliveries:      []model.DeliveryOption{{OptionInfo: model.OptionInfo{ID: "pickup", Name: "Pickup"}}},
			Payments:        []model.PaymentOption{{OptionInfo: model.OptionInfo{ID: "swish", Name: "Swish"}}},
			DefaultDelivery: "pickup",
		})
		gt.NoError(t, err).Required()

		uc := usecase.New(memory.New(), usecase.WithCatalog(catalog)).Checkout
		checkout, err := uc.Open(ctx, testCart())
		gt.NoError(t, err).Required()
		gt.Value(t, checkout.Selection.Delivery).NotNil().Required()
		gt.Value(t, checkout.Selection.Delivery.ID).Equal(types.OptionID("pickup"))
		gt.Value(t, checkout.Selection.Payment).Nil()
	})
}

func TestCheckoutUseCase_SetField(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New()).Checkout
	checkout, err := uc.Open(ctx, testCart())
	gt.NoError(t, err).Required()

	updated, err := uc.SetField(ctx, checkout.ID, types.FieldFirstName, "Anna1")
	gt.NoError(t, err).Required()
	entry, _ := updated.Form.Get(types.FieldFirstName)
	gt.Bool(t, entry.Error).True()

	updated, err = uc.SetField(ctx, checkout.ID, types.FieldFirstName, "Anna")
	gt.NoError(t, err).Required()
	entry, _ = updated.Form.Get(types.FieldFirstName)
	gt.Bool(t, entry.Error).False()

	_, err = uc.SetField(ctx, checkout.ID, "nickname", "x")
	gt.Error(t, err).Is(model.ErrUnknownField)

	_, err = uc.SetField(ctx, "missing", types.FieldFirstName, "Anna")
	gt.Bool(t, usecase.IsNotFound(err)).True()
}

func TestCheckoutUseCase_SelectOption(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New()).Checkout
	checkout, err := uc.Open(ctx, testCart())
	gt.NoError(t, err).Required()

	_, err = uc.SelectOption(ctx, checkout.ID, "card")
	gt.NoError(t, err).Required()
	_, err = uc.SelectOption(ctx, checkout.ID, "visa")
	gt.NoError(t, err).Required()
	updated, err := uc.SelectOption(ctx, checkout.ID, "dhl-express")
	gt.NoError(t, err).Required()

	gt.Value(t, updated.Selection.Delivery.ID).Equal(types.OptionID("dhl-express"))
	gt.Value(t, updated.Selection.Payment.ID).Equal(types.OptionID("card"))
	gt.Value(t, updated.Selection.SubPayment.ID).Equal(types.OptionID("visa"))

	total, err := uc.Total(ctx, checkout.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, total).Equal(model.Amount(20 + 9900))

	_, err = uc.SelectOption(ctx, checkout.ID, "bitcoin")
	gt.Error(t, err).Is(model.ErrUnknownOption)
}

func TestCheckoutUseCase_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("empty first name is rejected without confirmation", func(t *testing.T) {
		var calls int
		uc := usecase.New(memory.New(), usecase.WithReceiptConfirmer(func(context.Context, *model.Receipt) { calls++ })).Checkout
		checkout, err := uc.Open(ctx, testCart())
		gt.NoError(t, err).Required()
		fillCustomer(t, ctx, uc, checkout.ID)
		_, err = uc.SetField(ctx, checkout.ID, types.FieldFirstName, "")
		gt.NoError(t, err).Required()
		_, err = uc.SelectOption(ctx, checkout.ID, "postnord")
		gt.NoError(t, err).Required()
		_, err = uc.SelectOption(ctx, checkout.ID, "swish")
		gt.NoError(t, err).Required()

		result, err := uc.Submit(ctx, checkout.ID, func(context.Context, *model.Receipt) { calls++ })
		gt.NoError(t, err).Required()
		gt.Value(t, result.Receipt).Nil()
		gt.Value(t, result.Failure).NotNil().Required()
		gt.Value(t, calls).Equal(0)

		stored, err := uc.Get(ctx, checkout.ID)
		gt.NoError(t, err).Required()
		entry, _ := stored.Form.Get(types.FieldFirstName)
		gt.Bool(t, entry.Error).True()
		gt.Value(t, stored.Status).Equal(types.CheckoutStatusEditing)
	})

	t.Run("valid checkout confirms exactly once", func(t *testing.T) {
		var serverSide []*model.Receipt
		uc := usecase.New(memory.New(), usecase.WithReceiptConfirmer(func(_ context.Context, r *model.Receipt) {
			serverSide = append(serverSide, r)
		})).Checkout
		checkout, err := uc.Open(ctx, testCart())
		gt.NoError(t, err).Required()
		fillCustomer(t, ctx, uc, checkout.ID)
		_, err = uc.SelectOption(ctx, checkout.ID, "postnord")
		gt.NoError(t, err).Required()
		_, err = uc.SelectOption(ctx, checkout.ID, "swish")
		gt.NoError(t, err).Required()

		expected, err := uc.Total(ctx, checkout.ID)
		gt.NoError(t, err).Required()

		var confirmed []*model.Receipt
		result, err := uc.Submit(ctx, checkout.ID, func(_ context.Context, r *model.Receipt) {
			confirmed = append(confirmed, r)
		})
		gt.NoError(t, err).Required()
		gt.Value(t, result.Failure).Nil()
		gt.Value(t, result.Receipt).NotNil().Required()
		gt.A(t, confirmed).Length(1)
		gt.A(t, serverSide).Length(1)
		gt.Value(t, confirmed[0].Total).Equal(expected)
		gt.Value(t, confirmed[0].Total).Equal(model.Amount(20 + 4900))

		stored, err := uc.Get(ctx, checkout.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.Status).Equal(types.CheckoutStatusSubmitted)
		gt.Value(t, stored.Receipt.ID).Equal(result.Receipt.ID)

		_, err = uc.Submit(ctx, checkout.ID, func(_ context.Context, r *model.Receipt) {
			confirmed = append(confirmed, r)
		})
		gt.Bool(t, usecase.IsConflict(err)).True()
		gt.A(t, confirmed).Length(1)

		_, err = uc.SetField(ctx, checkout.ID, types.FieldCity, "Lund")
		gt.Bool(t, usecase.IsConflict(err)).True()
	})
}

func TestCheckoutUseCase_ReplaceAllAndClose(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New()).Checkout
	checkout, err := uc.Open(ctx, testCart())
	gt.NoError(t, err).Required()

	updated, err := uc.ReplaceAll(ctx, checkout.ID, map[types.FieldID]model.FieldEntry{
		types.FieldCity: {Value: "Umeå"},
	})
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Form.Value(types.FieldCity)).Equal("Umeå")

	updated, err = uc.SetAlternate(ctx, checkout.ID, true)
	gt.NoError(t, err).Required()
	gt.Bool(t, updated.Alternate).True()

	gt.NoError(t, uc.Close(ctx, checkout.ID)).Required()
	_, err = uc.Get(ctx, checkout.ID)
	gt.Bool(t, usecase.IsNotFound(err)).True()
}
