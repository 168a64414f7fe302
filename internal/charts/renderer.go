package charts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	apperrors "imid/internal/errors"
	"imid/pkg/contracts/domain"
)

// chartFiles are the fixed artifact names of the five views
var chartFiles = map[domain.ViewName]string{
	domain.ViewSentiment:           "sentiment_breakdown_pie.html",
	domain.ViewEngagementsTrend:    "engagement_trend_line.html",
	domain.ViewPlatformEngagements: "platform_engagements_bar.html",
	domain.ViewMediaType:           "media_type_mix_pie.html",
	domain.ViewTopLocations:        "top_locations_bar.html",
}

// palettes per view; the first color is used for single-series charts
var palettes = map[domain.ViewName][]string{
	domain.ViewSentiment:           pastel,
	domain.ViewEngagementsTrend:    {"#636efa"},
	domain.ViewPlatformEngagements: set2,
	domain.ViewMediaType:           dark2,
	domain.ViewTopLocations:        vivid,
}

var (
	pastel = []string{"#66c5cc", "#f6cf71", "#f89c74", "#dcb0f2", "#87c55f", "#9eb9f3", "#fe88b1", "#c9db74", "#8be0a4", "#b497e7", "#b3b3b3"}
	set2   = []string{"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3", "#a6d854", "#ffd92f", "#e5c494", "#b3b3b3"}
	dark2  = []string{"#1b9e77", "#d95f02", "#7570b3", "#e7298a", "#66a61e", "#e6ab02", "#a6761d", "#666666"}
	vivid  = []string{"#e58606", "#5d69b1", "#52bca3", "#99c945", "#cc61b0", "#24796c", "#daa51b", "#2f8ac4", "#764e9f", "#ed645a", "#a5aa99"}
)

// FileName returns the artifact name for a view
func FileName(view domain.AggregateView) string {
	if name, ok := chartFiles[view.Name]; ok {
		return name
	}
	return fmt.Sprintf("%s_%s.html", view.Name, view.Chart)
}

type renderable interface {
	Render(w io.Writer) error
}

// Renderer writes one self-contained interactive HTML page per aggregate view.
type Renderer struct {
	assetsHost string
	logger     *slog.Logger
}

// NewRenderer creates a renderer. An empty assetsHost keeps the go-echarts default CDN.
func NewRenderer(assetsHost string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{assetsHost: assetsHost, logger: logger}
}

// Render writes the chart for view into dir, which must already exist.
func (r *Renderer) Render(ctx context.Context, dir string, view domain.AggregateView) (domain.ChartFile, error) {
	if err := ctx.Err(); err != nil {
		return domain.ChartFile{}, err
	}

	chart, err := r.build(view)
	if err != nil {
		return domain.ChartFile{}, err
	}

	path := filepath.Join(dir, FileName(view))
	file, err := os.Create(path)
	if err != nil {
		return domain.ChartFile{}, apperrors.NewStorageError("failed to create chart file", err).
			WithContext("path", path)
	}
	defer file.Close()

	if err := chart.Render(file); err != nil {
		return domain.ChartFile{}, apperrors.NewStorageError("failed to render chart", err).
			WithContext("path", path)
	}

	r.logger.DebugContext(ctx, "Chart written",
		slog.String("view", string(view.Name)),
		slog.String("path", path),
		slog.Int("points", len(view.Entries)))

	return domain.ChartFile{View: view.Name, Path: path}, nil
}

// RenderAll writes every chart in order and stops at the first failure. Charts written
// before the failure are returned alongside the error.
func (r *Renderer) RenderAll(ctx context.Context, dir string, views []domain.AggregateView) ([]domain.ChartFile, error) {
	files := make([]domain.ChartFile, 0, len(views))
	for _, view := range views {
		file, err := r.Render(ctx, dir, view)
		if err != nil {
			return files, err
		}
		files = append(files, file)
	}
	return files, nil
}

func (r *Renderer) build(view domain.AggregateView) (renderable, error) {
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:  view.Title,
			AssetsHost: r.assetsHost,
			Width:      "1000px",
			Height:     "560px",
		}),
		charts.WithTitleOpts(opts.Title{Title: view.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	}
	if palette, ok := palettes[view.Name]; ok {
		global = append(global, charts.WithColorsOpts(opts.Colors(palette)))
	}

	switch view.Chart {
	case domain.ChartPie:
		return pieChart(view, global), nil
	case domain.ChartLine:
		return lineChart(view, global), nil
	case domain.ChartBar:
		return barChart(view, global), nil
	default:
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("unsupported chart kind %q", view.Chart)).
			WithContext("view", string(view.Name))
	}
}

func pieChart(view domain.AggregateView, global []charts.GlobalOpts) renderable {
	data := make([]opts.PieData, 0, len(view.Entries))
	for _, e := range view.Entries {
		data = append(data, opts.PieData{Name: e.Key, Value: e.Value})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(global...)
	pie.AddSeries(view.KeyName, data,
		charts.WithLabelOpts(opts.Label{Show: true, Formatter: "{b}: {d}%"}),
	)
	return pie
}

func lineChart(view domain.AggregateView, global []charts.GlobalOpts) renderable {
	x := make([]string, 0, len(view.Entries))
	data := make([]opts.LineData, 0, len(view.Entries))
	for _, e := range view.Entries {
		x = append(x, e.Key)
		data = append(data, opts.LineData{Value: e.Value})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(append(global,
		charts.WithXAxisOpts(opts.XAxis{Name: view.KeyName}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Total Engagements"}),
	)...)
	line.SetXAxis(x).AddSeries("Total Engagements", data)
	return line
}

func barChart(view domain.AggregateView, global []charts.GlobalOpts) renderable {
	x := make([]string, 0, len(view.Entries))
	data := make([]opts.BarData, 0, len(view.Entries))
	for _, e := range view.Entries {
		x = append(x, e.Key)
		data = append(data, opts.BarData{Value: e.Value})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(global,
		charts.WithXAxisOpts(opts.XAxis{Name: view.KeyName}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Total Engagements"}),
	)...)
	bar.SetXAxis(x).AddSeries("Total Engagements", data)
	return bar
}
