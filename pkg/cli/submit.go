package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kassa/pkg/cli/config"
	"github.com/secmon-lab/kassa/pkg/domain/model"
	"github.com/secmon-lab/kassa/pkg/repository/memory"
	"github.com/secmon-lab/kassa/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// ErrOrderRejected is returned when an offline order does not pass validation
var ErrOrderRejected = goerr.New("order rejected")

func cmdSubmit() *cli.Command {
	var catalogCfg config.Catalog
	var noColor bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored output",
			Sources:     cli.EnvVars("KASSA_NO_COLOR"),
			Destination: &noColor,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:      "submit",
		Usage:     "Run an order file through checkout and print the receipt",
		ArgsUsage: "ORDER_FILE",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if noColor {
				color.NoColor = true
			}

			path := c.Args().First()
			if path == "" {
				return goerr.New("order file is required")
			}

			catalog, schema, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load catalog")
			}

			order, err := loadOrder(path)
			if err != nil {
				return err
			}

			out := newPrinter(c.Root().Writer)
			uc := usecase.New(memory.New(), usecase.WithCatalog(catalog), usecase.WithFieldSchema(schema))
			result, err := submitOrder(ctx, uc.Checkout, order, func(_ context.Context, receipt *model.Receipt) {
				out.receipt(receipt)
			})
			if err != nil {
				return goerr.Wrap(err, "failed to submit order", goerr.V("path", path))
			}

			if result.Failure != nil {
				out.failure(result.Failure)
				return goerr.Wrap(ErrOrderRejected, "order did not pass validation",
					goerr.V("path", path), goerr.V("fields", result.Failure.Fields()))
			}
			return nil
		},
	}
}
