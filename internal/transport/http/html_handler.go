package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"imid/internal/config"
	"imid/pkg/contracts/domain"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        li { margin: 6px 0; }
        .insights { color: #444; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <p>Source: {{.Report.Source}} ({{.Report.RowCount}} rows)</p>
    <h2>Charts</h2>
    <ul>
    {{- range .Charts}}
        <li><a href="/charts/{{.File}}">{{.Label}}</a></li>
    {{- end}}
    </ul>
    <p><a href="/charts/{{.RecapFile}}">Analysis recap</a></p>
    {{- range .Sections}}
    <h3>{{.Label}}</h3>
    <ul class="insights">
        {{- range .Lines}}
        <li>{{.}}</li>
        {{- end}}
    </ul>
    {{- end}}
</body>
</html>
`))

type chartLink struct {
	Label string
	File  string
}

type insightSection struct {
	Label string
	Lines []string
}

type indexPage struct {
	Title     string
	Report    *domain.Report
	Charts    []chartLink
	RecapFile string
	Sections  []insightSection
}

// DashboardHandler serves the HTML index of a report
type DashboardHandler struct {
	reports ReportProvider
	logger  *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(reports ReportProvider, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		reports: reports,
		logger:  logger.With(slog.String("handler", "dashboard")),
	}
}

// Index handles GET /
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	report := h.reports.Report()
	if report == nil {
		http.Error(w, "No analysis report available", http.StatusServiceUnavailable)
		return
	}

	page := indexPage{
		Title:     config.AppName + " - " + config.AppLongName,
		Report:    report,
		RecapFile: filepath.Base(report.RecapPath),
	}
	for _, chart := range report.Charts {
		page.Charts = append(page.Charts, chartLink{Label: report.Label(chart.View), File: filepath.Base(chart.Path)})
	}
	for _, name := range domain.ViewOrder {
		if lines := report.Insights[name]; len(lines) > 0 {
			page.Sections = append(page.Sections, insightSection{Label: report.Label(name), Lines: lines})
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, page); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render index",
			slog.String("error", err.Error()))
	}
}

// Charts serves the files of the report's output directory under prefix
func Charts(prefix, dir string) http.Handler {
	return http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
}
