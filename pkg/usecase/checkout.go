package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kassa/pkg/domain/interfaces"
	"github.com/secmon-lab/kassa/pkg/domain/model"
	"github.com/secmon-lab/kassa/pkg/domain/model/config"
	"github.com/secmon-lab/kassa/pkg/domain/types"
	"github.com/secmon-lab/kassa/pkg/utils/logging"
)

// ReceiptConfirmer receives the receipt of a completed checkout. It is
// called exactly once per checkout and its outcome is not awaited by the
// checkout state.
type ReceiptConfirmer func(ctx context.Context, receipt *model.Receipt)

// CheckoutUseCase handles the checkout flow: editing the form, choosing
// options and submitting
type CheckoutUseCase struct {
	repo       interfaces.Repository
	schema     *config.FieldSchema
	catalog    *model.Catalog
	aggregator *model.Aggregator
	confirmers []ReceiptConfirmer
}

// NewCheckoutUseCase creates a new CheckoutUseCase instance
func NewCheckoutUseCase(repo interfaces.Repository, schema *config.FieldSchema, catalog *model.Catalog, confirmers ...ReceiptConfirmer) *CheckoutUseCase {
	return &CheckoutUseCase{
		repo:       repo,
		schema:     schema,
		catalog:    catalog,
		aggregator: model.NewAggregator(schema),
		confirmers: confirmers,
	}
}

// Catalog returns the option catalog in use
func (uc *CheckoutUseCase) Catalog() *model.Catalog {
	return uc.catalog
}

// Schema returns the field schema in use
func (uc *CheckoutUseCase) Schema() *config.FieldSchema {
	return uc.schema
}

// Open starts a new checkout for cart
func (uc *CheckoutUseCase) Open(ctx context.Context, cart model.Cart) (*model.Checkout, error) {
	if err := cart.Validate(); err != nil {
		return nil, goerr.Wrap(err, "cannot open checkout")
	}

	checkout := model.NewCheckout(uc.schema, cart, uc.catalog.DefaultSelection())
	created, err := uc.repo.Checkout().Create(ctx, checkout)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create checkout")
	}

	logging.From(ctx).Info("checkout opened",
		slog.String("checkout_id", created.ID.String()),
		slog.Int("lines", len(created.Cart)),
		slog.Int64("item_total", int64(created.Cart.ItemTotal())),
	)
	return created, nil
}

// Get returns the checkout
func (uc *CheckoutUseCase) Get(ctx context.Context, id model.CheckoutID) (*model.Checkout, error) {
	checkout, err := uc.repo.Checkout().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get checkout", goerr.V(model.CheckoutIDKey, id))
	}
	return checkout, nil
}

// Close discards the checkout
func (uc *CheckoutUseCase) Close(ctx context.Context, id model.CheckoutID) error {
	if err := uc.repo.Checkout().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to close checkout", goerr.V(model.CheckoutIDKey, id))
	}
	logging.From(ctx).Info("checkout closed", slog.String("checkout_id", id.String()))
	return nil
}

// SetField writes one form field and returns the updated checkout
func (uc *CheckoutUseCase) SetField(ctx context.Context, id model.CheckoutID, field types.FieldID, value string) (*model.Checkout, error) {
	updated, err := uc.repo.Checkout().Update(ctx, id, func(c *model.Checkout) error {
		return c.SetField(field, value)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to set field",
			goerr.V(model.CheckoutIDKey, id), goerr.V(model.FieldIDKey, field))
	}

	entry, _ := updated.Form.Get(field)
	logging.From(ctx).Debug("checkout field updated",
		slog.String("checkout_id", id.String()),
		slog.String("field", field.String()),
		slog.Bool("error", entry.Error),
	)
	return updated, nil
}

// ReplaceAll overwrites the whole form
func (uc *CheckoutUseCase) ReplaceAll(ctx context.Context, id model.CheckoutID, entries map[types.FieldID]model.FieldEntry) (*model.Checkout, error) {
	updated, err := uc.repo.Checkout().Update(ctx, id, func(c *model.Checkout) error {
		return c.ReplaceAll(entries)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to replace form", goerr.V(model.CheckoutIDKey, id))
	}
	return updated, nil
}

// SetAlternate turns the alternate recipient on or off
func (uc *CheckoutUseCase) SetAlternate(ctx context.Context, id model.CheckoutID, enabled bool) (*model.Checkout, error) {
	updated, err := uc.repo.Checkout().Update(ctx, id, func(c *model.Checkout) error {
		return c.SetAlternate(enabled)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to set alternate recipient", goerr.V(model.CheckoutIDKey, id))
	}
	return updated, nil
}

// SelectOption chooses the catalog option with the given ID
func (uc *CheckoutUseCase) SelectOption(ctx context.Context, id model.CheckoutID, optionID types.OptionID) (*model.Checkout, error) {
	opt, err := uc.catalog.Lookup(optionID)
	if err != nil {
		return nil, goerr.Wrap(err, "cannot select option", goerr.V(model.CheckoutIDKey, id))
	}

	updated, err := uc.repo.Checkout().Update(ctx, id, func(c *model.Checkout) error {
		return c.SelectOption(opt)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to select option",
			goerr.V(model.CheckoutIDKey, id), goerr.V(model.OptionIDKey, optionID))
	}

	logging.From(ctx).Debug("checkout option selected",
		slog.String("checkout_id", id.String()),
		slog.String("option", optionID.String()),
		slog.String("type", opt.Type().String()),
	)
	return updated, nil
}

// Total returns the current total of the checkout
func (uc *CheckoutUseCase) Total(ctx context.Context, id model.CheckoutID) (model.Amount, error) {
	checkout, err := uc.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return checkout.Total(), nil
}

// SubmitResult is the outcome of Submit. Exactly one field is set.
type SubmitResult struct {
	Receipt *model.Receipt
	Failure *model.ValidationFailure
}

// Submit validates the checkout. On success the checkout is frozen and
// confirm, followed by every confirmer of the use case, receives the
// receipt once. On failure the form of the checkout is replaced by the
// annotated one.
func (uc *CheckoutUseCase) Submit(ctx context.Context, id model.CheckoutID, confirm ReceiptConfirmer) (*SubmitResult, error) {
	var result SubmitResult

	_, err := uc.repo.Checkout().Update(ctx, id, func(c *model.Checkout) error {
		receipt, failure, err := c.Submit(uc.aggregator, nil)
		if err != nil {
			return err
		}
		result = SubmitResult{Receipt: receipt, Failure: failure}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to submit checkout", goerr.V(model.CheckoutIDKey, id))
	}

	logger := logging.From(ctx)
	if result.Failure != nil {
		logger.Info("checkout submission rejected",
			slog.String("checkout_id", id.String()),
			slog.Any("issues", result.Failure.Issues),
		)
		return &result, nil
	}

	logger.Info("checkout submitted",
		slog.String("checkout_id", id.String()),
		slog.String("receipt_id", string(result.Receipt.ID)),
		slog.Int64("total", int64(result.Receipt.Total)),
	)

	// confirmation happens after the state is committed so a receipt is
	// never handed out for a checkout that is still editable
	if confirm != nil {
		confirm(ctx, result.Receipt.Clone())
	}
	for _, c := range uc.confirmers {
		c(ctx, result.Receipt.Clone())
	}

	return &result, nil
}
