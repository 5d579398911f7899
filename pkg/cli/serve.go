package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/secmon-lab/kassa/pkg/cli/config"
	httpctrl "github.com/secmon-lab/kassa/pkg/controller/http"
	"github.com/secmon-lab/kassa/pkg/domain/model"
	"github.com/secmon-lab/kassa/pkg/service/worker"
	"github.com/secmon-lab/kassa/pkg/usecase"
	"github.com/secmon-lab/kassa/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var sweepInterval time.Duration
	var checkoutTTL time.Duration
	var catalogCfg config.Catalog
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("KASSA_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "sweep-interval",
			Usage:       "Interval of discarding idle checkouts",
			Value:       5 * time.Minute,
			Sources:     cli.EnvVars("KASSA_SWEEP_INTERVAL"),
			Destination: &sweepInterval,
		},
		&cli.DurationFlag{
			Name:        "checkout-ttl",
			Usage:       "Idle time after which an open checkout is discarded",
			Value:       time.Hour,
			Sources:     cli.EnvVars("KASSA_CHECKOUT_TTL"),
			Destination: &checkoutTTL,
		},
	}

	// Add shared config flags
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, schema, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load catalog")
			}

			repo, err := repoCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo,
				usecase.WithCatalog(catalog),
				usecase.WithFieldSchema(schema),
				usecase.WithReceiptConfirmer(logReceipt),
			)

			sweeper, err := worker.NewCheckoutSweepWorker(uc.Sweep, sweepInterval, checkoutTTL)
			if err != nil {
				return goerr.Wrap(err, "failed to create checkout sweep worker")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc.Checkout),
				ReadHeaderTimeout: 30 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			sweeper.Start(ctx)
			defer sweeper.Stop()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server", goerr.V("addr", addr))
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				logging.Default().Info("Shutting down HTTP server")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				return nil
			})

			if err := g.Wait(); err != nil {
				return err
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}

// logReceipt records every completed checkout
func logReceipt(ctx context.Context, receipt *model.Receipt) {
	logging.From(ctx).Info("receipt confirmed",
		"receipt_id", receipt.ID,
		"checkout_id", receipt.CheckoutID,
		"delivery", receipt.Delivery.ID,
		"payment", receipt.Payment.ID,
		"total", int64(receipt.Total),
	)
}
