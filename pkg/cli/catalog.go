package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kassa/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdCatalog() *cli.Command {
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
		Name:  "catalog",
		Usage: "Validate the catalog configuration and print it",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if noColor {
				color.NoColor = true
			}

			catalog, schema, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}

			newPrinter(c.Root().Writer).catalog(catalog, schema)
			return nil
		},
	}
}
