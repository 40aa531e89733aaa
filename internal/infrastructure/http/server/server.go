package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	clienthandler "lexcaribe/ms_fiscal_core/internal/adapters/http/client"
	documenthandler "lexcaribe/ms_fiscal_core/internal/adapters/http/document"
	healthhandler "lexcaribe/ms_fiscal_core/internal/adapters/http/health"
	invoicehandler "lexcaribe/ms_fiscal_core/internal/adapters/http/invoice"
	ncfhandler "lexcaribe/ms_fiscal_core/internal/adapters/http/ncf"
	reporthandler "lexcaribe/ms_fiscal_core/internal/adapters/http/report"
	"lexcaribe/ms_fiscal_core/internal/infrastructure/config"
	"lexcaribe/ms_fiscal_core/internal/infrastructure/http/middleware"
)

// Server is the HTTP boundary of the fiscal core.
type Server struct {
	log        *slog.Logger
	cfg        config.AppConfig
	httpServer *http.Server
	auth       *middleware.JWTAuthenticator
}

// Options carries the wired handlers the server routes to.
type Options struct {
	Config config.AppConfig
	Logger *slog.Logger

	Health   *healthhandler.Handler
	Invoices *invoicehandler.Handler
	NCF      *ncfhandler.Handler
	Clients  *clienthandler.Handler
	Reports  *reporthandler.Handler
	PDF      *documenthandler.Handler
}

// New builds the router and the underlying http.Server.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}

	auth, err := middleware.NewJWTAuthenticator(opts.Config.Auth, opts.Logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(auth.Middleware)

	r.Get("/health", opts.Health.Status)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/facturas", func(r chi.Router) {
			r.Post("/", opts.Invoices.Create)
			r.Get("/", opts.Invoices.List)
			r.Get("/{id}", opts.Invoices.Get)
			r.Post("/{id}/pago", opts.Invoices.MarkPaid)
			r.Post("/{id}/anulacion", opts.Invoices.Cancel)
			r.Get("/{id}/pdf", opts.PDF.Download)
		})

		r.Route("/ncf", func(r chi.Router) {
			r.Get("/tipos", opts.NCF.Types)
			r.Get("/siguiente", opts.NCF.Next)
			r.Get("/{ncf}/historial", opts.NCF.History)
		})

		r.Post("/admin/ncf/reset", opts.NCF.Reset)

		r.Route("/clientes", func(r chi.Router) {
			r.Post("/", opts.Clients.Create)
			r.Get("/", opts.Clients.List)
			r.Get("/{id}", opts.Clients.Get)
		})

		// The exports walk a full month of invoices; their context deadline
		// is extended beyond the default write timeout.
		r.Route("/reportes", func(r chi.Router) {
			r.Use(middleware.ReportTimeout(opts.Config.HTTP))
			r.Get("/607", opts.Reports.Download607)
			r.Get("/608", opts.Reports.Download608)
		})
	})

	srv := &http.Server{
		Addr:         opts.Config.HTTP.Address(),
		Handler:      r,
		ReadTimeout:  opts.Config.HTTP.ReadTimeout,
		WriteTimeout: opts.Config.HTTP.WriteTimeout,
		IdleTimeout:  opts.Config.HTTP.IdleTimeout,
	}

	return &Server{
		log:        opts.Logger,
		cfg:        opts.Config,
		httpServer: srv,
		auth:       auth,
	}, nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until the context is cancelled, then shuts down gracefully
// within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server started", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.log.Info("HTTP server stopped")
		return nil
	case err := <-errCh:
		return err
	}
}

// Close releases server resources.
func (s *Server) Close() {
	if s.auth != nil {
		s.auth.Close()
	}
}
