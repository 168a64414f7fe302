package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apperrors "imid/internal/errors"
	"imid/pkg/contracts/domain"
)

// ViewResponse is one aggregate view with its insight sentences
type ViewResponse struct {
	domain.AggregateView
	Insights []string `json:"insights"`
}

// InsightsHandler serves the analysis report as JSON
type InsightsHandler struct {
	reports ReportProvider
	logger  *slog.Logger
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(reports ReportProvider, logger *slog.Logger) *InsightsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InsightsHandler{
		reports: reports,
		logger:  logger.With(slog.String("handler", "insights")),
	}
}

// Routes mounts the insights endpoints
func (h *InsightsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetReport)
	r.Get("/{view}", h.GetView)
	return r
}

// GetReport handles GET /api/insights
func (h *InsightsHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report := h.reports.Report()
	if report == nil {
		render.Render(w, r, apperrors.NewErrorResponse(apperrors.ErrServiceUnavailable))
		return
	}
	render.JSON(w, r, report)
}

// GetView handles GET /api/insights/{view}
func (h *InsightsHandler) GetView(w http.ResponseWriter, r *http.Request) {
	report := h.reports.Report()
	if report == nil {
		render.Render(w, r, apperrors.NewErrorResponse(apperrors.ErrServiceUnavailable))
		return
	}

	name := domain.ViewName(chi.URLParam(r, "view"))
	view, ok := report.View(name)
	if !ok {
		h.logger.DebugContext(r.Context(), "Unknown view requested", slog.String("view", string(name)))
		render.Render(w, r, apperrors.NewErrorResponse(
			apperrors.NewWithDetails(http.StatusNotFound, "VIEW_NOT_FOUND", "Unknown view", map[string]string{"view": string(name)})))
		return
	}

	render.JSON(w, r, ViewResponse{AggregateView: view, Insights: report.Insights[name]})
}
