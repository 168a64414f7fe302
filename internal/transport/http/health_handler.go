package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"imid/pkg/contracts"
)

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	ReportReady bool   `json:"report_ready"`
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	reports   ReportProvider
	startedAt time.Time
	logger    *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(reports ReportProvider, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		reports:   reports,
		startedAt: time.Now(),
		logger:    logger.With(slog.String("handler", "health")),
	}
}

// HealthCheck handles GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{
		Status:      "ok",
		Version:     contracts.Version,
		Uptime:      time.Since(h.startedAt).Round(time.Second).String(),
		ReportReady: h.reports.Report() != nil,
	})
}

// Version handles GET /api/version
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, contracts.GetVersionInfo())
}
