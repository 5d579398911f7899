package http

import (
	"context"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/kassa/pkg/domain/model"
	"github.com/secmon-lab/kassa/pkg/domain/model/config"
	"github.com/secmon-lab/kassa/pkg/domain/types"
	"github.com/secmon-lab/kassa/pkg/usecase"
	"github.com/secmon-lab/kassa/pkg/utils/logging"
)

// CheckoutUseCase is the part of the checkout use case served over HTTP
type CheckoutUseCase interface {
	Catalog() *model.Catalog
	Schema() *config.FieldSchema
	Open(ctx context.Context, cart model.Cart) (*model.Checkout, error)
	Get(ctx context.Context, id model.CheckoutID) (*model.Checkout, error)
	Close(ctx context.Context, id model.CheckoutID) error
	SetField(ctx context.Context, id model.CheckoutID, field types.FieldID, value string) (*model.Checkout, error)
	ReplaceAll(ctx context.Context, id model.CheckoutID, entries map[types.FieldID]model.FieldEntry) (*model.Checkout, error)
	SetAlternate(ctx context.Context, id model.CheckoutID, enabled bool) (*model.Checkout, error)
	SelectOption(ctx context.Context, id model.CheckoutID, optionID types.OptionID) (*model.Checkout, error)
	Total(ctx context.Context, id model.CheckoutID) (model.Amount, error)
	Submit(ctx context.Context, id model.CheckoutID, confirm usecase.ReceiptConfirmer) (*usecase.SubmitResult, error)
}

type Server struct {
	router     *chi.Mux
	checkoutUC CheckoutUseCase
	maxBody    int64
}

type Options func(*Server)

// WithMaxBodySize limits the size of request bodies in bytes
func WithMaxBodySize(size int64) Options {
	return func(s *Server) {
		s.maxBody = size
	}
}

func New(checkoutUC CheckoutUseCase, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:     r,
		checkoutUC: checkoutUC,
		maxBody:    1 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	// panics are reported to Sentry, then recovered by Recoverer
	r.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.catalogHandler)

		r.Route("/checkouts", func(r chi.Router) {
			r.Post("/", s.openCheckoutHandler)

			r.Route("/{checkoutID}", func(r chi.Router) {
				r.Get("/", s.getCheckoutHandler)
				r.Delete("/", s.closeCheckoutHandler)
				r.Put("/fields", s.replaceFieldsHandler)
				r.Put("/fields/{fieldID}", s.setFieldHandler)
				r.Put("/alternate", s.setAlternateHandler)
				r.Put("/options/{optionID}", s.selectOptionHandler)
				r.Get("/total", s.totalHandler)
				r.Post("/submit", s.submitHandler)
			})
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
