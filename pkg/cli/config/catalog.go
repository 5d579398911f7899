package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/kassa/pkg/domain/model"
	domainConfig "github.com/secmon-lab/kassa/pkg/domain/model/config"
	"github.com/secmon-lab/kassa/pkg/domain/types"
	"github.com/secmon-lab/kassa/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// CatalogFile is the TOML representation of the delivery and payment
// catalog together with overrides of the checkout form fields
type CatalogFile struct {
	Defaults   CatalogDefaults `toml:"defaults"`
	Deliveries []OptionEntry   `toml:"delivery"`
	Payments   []PaymentEntry  `toml:"payment"`
	Fields     []FieldEntry    `toml:"field"`
}

// CatalogDefaults names options preselected on every new checkout
type CatalogDefaults struct {
	Delivery string `toml:"delivery"`
	Payment  string `toml:"payment"`
}

// OptionEntry is a delivery option or a payment sub-option
type OptionEntry struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Fee         int64  `toml:"fee"`
	Description string `toml:"description"`
}

// PaymentEntry is a payment method with its nested sub-options
type PaymentEntry struct {
	ID             string        `toml:"id"`
	Name           string        `toml:"name"`
	Fee            int64         `toml:"fee"`
	Description    string        `toml:"description"`
	RequiredFields []string      `toml:"required_fields"`
	Options        []OptionEntry `toml:"option"`
}

// FieldEntry overrides a field of the built-in checkout form
type FieldEntry struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Kind     string `toml:"kind"`
	Required *bool  `toml:"required"`
}

// Validate checks if the OptionEntry is valid
func (o *OptionEntry) Validate() error {
	if err := types.OptionID(o.ID).Validate(); err != nil {
		return goerr.Wrap(ErrInvalidConfig, "invalid option ID",
			goerr.V(OptionIDKey, o.ID), goerr.V("reason", err.Error()))
	}
	if o.Name == "" {
		return goerr.Wrap(ErrMissingName, "option name is required", goerr.V(OptionIDKey, o.ID))
	}
	if o.Fee < 0 {
		return goerr.Wrap(ErrNegativeFee, "invalid option fee", goerr.V(OptionIDKey, o.ID), goerr.V("fee", o.Fee))
	}
	return nil
}

func (p *PaymentEntry) option() OptionEntry {
	return OptionEntry{ID: p.ID, Name: p.Name, Fee: p.Fee, Description: p.Description}
}

// Validate checks if the PaymentEntry is valid
func (p *PaymentEntry) Validate() error {
	opt := p.option()
	if err := opt.Validate(); err != nil {
		return err
	}
	for _, f := range p.RequiredFields {
		if !isKnownField(f) {
			return goerr.Wrap(ErrUnknownFieldID, "payment requires unknown field",
				goerr.V(OptionIDKey, p.ID), goerr.V(FieldIDKey, f))
		}
	}
	for i, sub := range p.Options {
		if err := sub.Validate(); err != nil {
			return goerr.Wrap(err, "invalid payment sub-option",
				goerr.V(OptionIDKey, p.ID), goerr.V(OptionIndexKey, i))
		}
	}
	return nil
}

// Validate checks if the FieldEntry is valid
func (f *FieldEntry) Validate() error {
	if !isKnownField(f.ID) {
		return goerr.Wrap(ErrUnknownFieldID, "field is not part of the checkout form", goerr.V(FieldIDKey, f.ID))
	}
	if f.Kind != "" && !types.FieldKind(f.Kind).IsValid() {
		return goerr.Wrap(ErrInvalidFieldKind, "invalid field kind",
			goerr.V(FieldIDKey, f.ID), goerr.V(FieldKindKey, f.Kind))
	}
	return nil
}

func isKnownField(id string) bool {
	for _, known := range types.AllFieldIDs() {
		if string(known) == id {
			return true
		}
	}
	return false
}

// Validate checks if the CatalogFile is valid. Option IDs must be unique
// across deliveries, payments and sub-options.
func (c *CatalogFile) Validate() error {
	optionIDs := make(map[string]bool)
	seen := func(id string) error {
		if optionIDs[id] {
			return goerr.Wrap(ErrDuplicateOptionID, "option ID is used twice", goerr.V(OptionIDKey, id))
		}
		optionIDs[id] = true
		return nil
	}

	for i, d := range c.Deliveries {
		if err := d.Validate(); err != nil {
			return goerr.Wrap(err, "invalid delivery option", goerr.V(OptionIndexKey, i))
		}
		if err := seen(d.ID); err != nil {
			return err
		}
	}

	for i, p := range c.Payments {
		if err := p.Validate(); err != nil {
			return goerr.Wrap(err, "invalid payment option", goerr.V(OptionIndexKey, i))
		}
		if err := seen(p.ID); err != nil {
			return err
		}
		for _, sub := range p.Options {
			if err := seen(sub.ID); err != nil {
				return err
			}
		}
	}

	if (len(c.Deliveries) == 0) != (len(c.Payments) == 0) {
		return goerr.Wrap(ErrInvalidConfig, "delivery and payment options must be configured together")
	}

	fieldIDs := make(map[string]bool)
	for i, f := range c.Fields {
		if err := f.Validate(); err != nil {
			return goerr.Wrap(err, "invalid field", goerr.V(FieldIndexKey, i))
		}
		if fieldIDs[f.ID] {
			return goerr.Wrap(ErrDuplicateFieldID, "field is configured twice", goerr.V(FieldIDKey, f.ID))
		}
		fieldIDs[f.ID] = true
	}

	return nil
}

// LoadCatalogFile loads the catalog configuration from a TOML file
func LoadCatalogFile(path string) (*CatalogFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "catalog file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V(ConfigPathKey, path))
	}

	var file CatalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML catalog",
			goerr.V(ConfigPathKey, path), goerr.V("reason", err.Error()))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "catalog validation failed", goerr.V(ConfigPathKey, path))
	}

	return &file, nil
}

// ToCatalog converts the file into a domain catalog. Without any option
// the built-in catalog is returned.
func (c *CatalogFile) ToCatalog() (*model.Catalog, error) {
	if len(c.Deliveries) == 0 && len(c.Payments) == 0 {
		return model.DefaultCatalog(), nil
	}

	input := model.CatalogInput{
		DefaultDelivery: types.OptionID(c.Defaults.Delivery),
		DefaultPayment:  types.OptionID(c.Defaults.Payment),
	}

	for _, d := range c.Deliveries {
		input.Deliveries = append(input.Deliveries, model.DeliveryOption{OptionInfo: d.info()})
	}

	for _, p := range c.Payments {
		required := make([]types.FieldID, len(p.RequiredFields))
		for i, f := range p.RequiredFields {
			required[i] = types.FieldID(f)
		}
		input.Payments = append(input.Payments, model.PaymentOption{
			OptionInfo:     p.option().info(),
			RequiredFields: required,
		})

		for _, sub := range p.Options {
			input.SubPayments = append(input.SubPayments, model.PaymentSubOption{
				OptionInfo: sub.info(),
				Parent:     types.OptionID(p.ID),
			})
		}
	}

	catalog, err := model.NewCatalog(input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build catalog")
	}
	return catalog, nil
}

func (o OptionEntry) info() model.OptionInfo {
	return model.OptionInfo{
		ID:          types.OptionID(o.ID),
		Name:        o.Name,
		Fee:         model.Amount(o.Fee),
		Description: o.Description,
	}
}

// ToFieldSchema applies the field overrides to the built-in checkout form
func (c *CatalogFile) ToFieldSchema() *domainConfig.FieldSchema {
	schema := domainConfig.DefaultFieldSchema()

	for _, override := range c.Fields {
		for i := range schema.Fields {
			spec := &schema.Fields[i]
			if string(spec.ID) != override.ID {
				continue
			}
			if override.Name != "" {
				spec.Name = override.Name
			}
			if override.Kind != "" {
				spec.Kind = types.FieldKind(override.Kind)
			}
			if override.Required != nil {
				spec.Required = *override.Required
			}
		}
	}

	return schema
}

// Catalog holds CLI flags for the catalog configuration
type Catalog struct {
	path string
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Aliases:     []string{"c"},
			Usage:       "Path to catalog TOML file (built-in catalog if omitted)",
			Sources:     cli.EnvVars("KASSA_CATALOG"),
			Destination: &c.path,
		},
	}
}

// Path returns the configured catalog file path
func (c *Catalog) Path() string {
	return c.path
}

// Configure loads the catalog and the field schema
func (c *Catalog) Configure() (*model.Catalog, *domainConfig.FieldSchema, error) {
	if c.path == "" {
		logging.Default().Info("Using built-in catalog")
		return model.DefaultCatalog(), domainConfig.DefaultFieldSchema(), nil
	}

	file, err := LoadCatalogFile(c.path)
	if err != nil {
		return nil, nil, err
	}

	catalog, err := file.ToCatalog()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "invalid catalog", goerr.V(ConfigPathKey, c.path))
	}

	logging.Default().Info("Catalog loaded",
		"path", c.path,
		"deliveries", len(catalog.Deliveries()),
		"payments", len(catalog.Payments()),
		"field_overrides", len(file.Fields),
	)
	return catalog, file.ToFieldSchema(), nil
}
