package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"imid/internal/config"
	"imid/internal/infrastructure"
	customMiddleware "imid/internal/middleware"
	transporthttp "imid/internal/transport/http"
	"imid/pkg/contracts"
	"imid/pkg/contracts/domain"
)

// Application serves the artifacts of an analysis run over HTTP
type Application struct {
	Config    *config.Config
	Router    *chi.Mux
	Server    *http.Server
	Logger    *slog.Logger
	Telemetry *infrastructure.Telemetry
	Reports   *transporthttp.ReportStore
}

// NewApplication builds the dashboard around report. A nil report is allowed; the
// report endpoints then answer 503.
func NewApplication(cfg *config.Config, logger *slog.Logger, tel *infrastructure.Telemetry, report *domain.Report) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if tel == nil {
		tel = infrastructure.NoopTelemetry()
	}

	a := &Application{
		Config:    cfg,
		Logger:    logger,
		Telemetry: tel,
		Reports:   transporthttp.NewReportStore(report),
	}

	if err := a.setupRouter(); err != nil {
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}
	a.createServer()
	return a, nil
}

func (a *Application) setupRouter() error {
	r := chi.NewRouter()

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.Telemetry)
	if err != nil {
		return err
	}

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(otelMiddleware.Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	if rl := a.Config.Server.RateLimit; rl.Enabled {
		r.Use(customMiddleware.NewRateLimiter(rl.RPS, rl.Burst, a.Logger).Handler)
	}

	dashboard := transporthttp.NewDashboardHandler(a.Reports, a.Logger)
	r.Get("/", dashboard.Index)
	r.Route("/charts", func(r chi.Router) {
		r.Use(middleware.Compress(5))
		r.Handle("/*", transporthttp.Charts("/charts/", a.Config.Output.Dir))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		health := transporthttp.NewHealthHandler(a.Reports, a.Logger)
		r.Get("/health", health.HealthCheck)
		r.Get("/version", health.Version)
		r.Mount("/insights", transporthttp.NewInsightsHandler(a.Reports, a.Logger).Routes())
	})

	r.Handle("/metrics", a.Telemetry.MetricsHandler())

	a.Router = r
	return nil
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         a.Config.Server.Addr,
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
	}
}

// Start begins serving in the background; a listener failure cancels ctx through cancel
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting dashboard",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("addr", a.Config.Server.Addr),
		slog.String("output_dir", a.Config.Output.Dir))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	return nil
}

// Stop gracefully stops the server. Telemetry stays with whoever created it.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down dashboard")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.Logger.InfoContext(ctx, "Dashboard shutdown complete")
	return nil
}

// Run serves until ctx is done or the process is interrupted
func (a *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.WithoutCancel(ctx))
}
