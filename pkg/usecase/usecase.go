package usecase

import (
	"github.com/secmon-lab/kassa/pkg/domain/interfaces"
	"github.com/secmon-lab/kassa/pkg/domain/model"
	"github.com/secmon-lab/kassa/pkg/domain/model/config"
)

type UseCases struct {
	repo       interfaces.Repository
	schema     *config.FieldSchema
	catalog    *model.Catalog
	confirmers []ReceiptConfirmer
	Checkout   *CheckoutUseCase
	Sweep      *SweepUseCase
}

type Option func(*UseCases)

func WithFieldSchema(schema *config.FieldSchema) Option {
	return func(uc *UseCases) {
		uc.schema = schema
	}
}

func WithCatalog(catalog *model.Catalog) Option {
	return func(uc *UseCases) {
		uc.catalog = catalog
	}
}

func WithReceiptConfirmer(confirmer ReceiptConfirmer) Option {
	return func(uc *UseCases) {
		uc.confirmers = append(uc.confirmers, confirmer)
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:    repo,
		schema:  config.DefaultFieldSchema(),
		catalog: model.DefaultCatalog(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Checkout = NewCheckoutUseCase(repo, uc.schema, uc.catalog, uc.confirmers...)
	uc.Sweep = NewSweepUseCase(repo)

	return uc
}
