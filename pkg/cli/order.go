package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/kassa/pkg/domain/model"
	"github.com/secmon-lab/kassa/pkg/domain/types"
	"github.com/secmon-lab/kassa/pkg/usecase"
)

// orderFile is an offline checkout: the cart, the form values and the
// chosen options
type orderFile struct {
	Alternate  bool              `toml:"alternate"`
	Delivery   string            `toml:"delivery"`
	Payment    string            `toml:"payment"`
	SubPayment string            `toml:"sub_payment"`
	Fields     map[string]string `toml:"fields"`
	Items      []orderItem       `toml:"item"`
}

type orderItem struct {
	ID     string `toml:"id"`
	Name   string `toml:"name"`
	Price  int64  `toml:"price"`
	Amount int    `toml:"amount"`
}

func loadOrder(path string) (*orderFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read order file", goerr.V("path", path))
	}

	var order orderFile
	if err := toml.Unmarshal(data, &order); err != nil {
		return nil, goerr.Wrap(err, "failed to parse order file", goerr.V("path", path))
	}
	return &order, nil
}

func (o *orderFile) cart() model.Cart {
	cart := make(model.Cart, len(o.Items))
	for i, item := range o.Items {
		cart[i] = model.CartLine{
			Product: model.Product{
				ID:    item.ID,
				Name:  item.Name,
				Price: model.Amount(item.Price),
			},
			Quantity: item.Amount,
		}
	}
	return cart
}

// submitOrder replays the order against a fresh checkout the same way a
// customer would fill in the checkout view, then submits it
func submitOrder(ctx context.Context, uc *usecase.CheckoutUseCase, order *orderFile, confirm usecase.ReceiptConfirmer) (*usecase.SubmitResult, error) {
	for id := range order.Fields {
		if _, ok := uc.Schema().Lookup(types.FieldID(id)); !ok {
			return nil, goerr.Wrap(model.ErrUnknownField, "order has unknown field", goerr.V(model.FieldIDKey, id))
		}
	}

	checkout, err := uc.Open(ctx, order.cart())
	if err != nil {
		return nil, err
	}

	// fields are set in form order so the outcome does not depend on map order
	for _, spec := range uc.Schema().Fields {
		value, ok := order.Fields[spec.ID.String()]
		if !ok {
			continue
		}
		if _, err := uc.SetField(ctx, checkout.ID, spec.ID, value); err != nil {
			return nil, err
		}
	}
	if _, err := uc.SetAlternate(ctx, checkout.ID, order.Alternate); err != nil {
		return nil, err
	}

	for _, id := range []string{order.Delivery, order.Payment, order.SubPayment} {
		if id == "" {
			continue
		}
		if _, err := uc.SelectOption(ctx, checkout.ID, types.OptionID(id)); err != nil {
			return nil, err
		}
	}

	return uc.Submit(ctx, checkout.ID, confirm)
}
