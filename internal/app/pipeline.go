package app

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"imid/internal/charts"
	"imid/internal/config"
	"imid/internal/dataprocessing"
	apperrors "imid/internal/errors"
	"imid/internal/exporter"
	"imid/internal/infrastructure"
	"imid/internal/validation"
	"imid/pkg/contracts/domain"
)

// Run outcomes recorded on imid_pipeline_runs_total
const (
	OutcomeSuccess = "success"
	OutcomeWarning = "warning"
	OutcomeFailure = "failure"
)

// LoadedFunc is called once the input has been validated, before any artifact is written
type LoadedFunc func(ctx context.Context, table *domain.Table, stats dataprocessing.LoadStats, outputDir string)

// Pipeline runs one analysis: load, aggregate, render charts and write the recap.
type Pipeline struct {
	cfg       *config.Config
	loader    *dataprocessing.Loader
	analyzer  *dataprocessing.Analyzer
	validator *validation.FileValidator
	renderer  *charts.Renderer
	recap     *exporter.RecapWriter
	telemetry *infrastructure.Telemetry
	logger    *slog.Logger
	onLoaded  LoadedFunc
}

// PipelineOption customizes a Pipeline
type PipelineOption func(*Pipeline)

// WithLoadedHook registers fn to run after a successful load
func WithLoadedHook(fn LoadedFunc) PipelineOption {
	return func(p *Pipeline) {
		p.onLoaded = fn
	}
}

// WithTelemetry records spans and metrics through t
func WithTelemetry(t *infrastructure.Telemetry) PipelineOption {
	return func(p *Pipeline) {
		if t != nil {
			p.telemetry = t
		}
	}
}

// NewPipeline wires the pipeline stages from configuration
func NewPipeline(cfg *config.Config, logger *slog.Logger, options ...PipelineOption) *Pipeline {
	if cfg == nil {
		cfg = config.LibraryDefault()
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{
		cfg:       cfg,
		loader:    dataprocessing.NewLoader(cfg.Input, logger),
		analyzer:  dataprocessing.NewAnalyzer(cfg.Input, cfg.Insights, logger),
		validator: validation.NewFileValidator(logger),
		renderer:  charts.NewRenderer(cfg.Output.ChartAssetsHost, logger),
		recap:     exporter.NewRecapWriter(logger),
		telemetry: infrastructure.NoopTelemetry(),
		logger:    logger,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// OutputDir is where the pipeline writes its artifacts
func (p *Pipeline) OutputDir() string {
	return p.cfg.Output.Dir
}

// Run analyzes inputPath and writes every artifact. Input problems are returned as
// *errors.AppError before the output directory is touched.
func (p *Pipeline) Run(ctx context.Context, inputPath string) (*domain.Report, error) {
	start := time.Now()
	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)
	logger := infrastructure.LoggerWithContext(ctx, p.logger)

	ctx, span := p.telemetry.Tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(
			attribute.String("input", inputPath),
			attribute.String("output_dir", p.OutputDir()),
		))
	defer span.End()

	logger.InfoContext(ctx, "Pipeline started",
		slog.String("input", inputPath),
		slog.String("output_dir", p.OutputDir()))

	report, err := p.run(ctx, runID, inputPath)

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.IsWarning() {
			outcome = OutcomeWarning
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	p.telemetry.Metrics.RecordRun(ctx, outcome, time.Since(start).Seconds())

	if err != nil {
		logger.WarnContext(ctx, "Pipeline halted",
			slog.String("outcome", outcome),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return nil, err
	}

	logger.InfoContext(ctx, "Pipeline completed",
		slog.Int("rows", report.RowCount),
		slog.Int("charts", len(report.Charts)),
		slog.String("recap", report.RecapPath),
		slog.Duration("duration", time.Since(start)))
	return report, nil
}

func (p *Pipeline) run(ctx context.Context, runID, inputPath string) (*domain.Report, error) {
	table, stats, err := p.load(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	if p.onLoaded != nil {
		p.onLoaded(ctx, table, stats, p.OutputDir())
	}

	actx, span := p.telemetry.Tracer.Start(ctx, "pipeline.analyze")
	views, insights, err := p.analyzer.Analyze(actx, table)
	span.End()
	if err != nil {
		return nil, err
	}

	dir := p.OutputDir()
	if err := p.validator.ValidateOutputDirectory(dir); err != nil {
		return nil, err
	}

	rctx, span := p.telemetry.Tracer.Start(ctx, "pipeline.render")
	chartFiles, err := p.renderer.RenderAll(rctx, dir, views)
	p.telemetry.Metrics.ChartsWritten.Add(rctx, int64(len(chartFiles)))
	span.End()
	if err != nil {
		return nil, err
	}

	recapPath, err := p.recap.Write(dir, exporter.BuildRecap(insights, p.cfg.Insights.TopLocations))
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		RunID:     runID,
		Source:    inputPath,
		OutputDir: dir,
		RowCount:  table.Len(),
		Views:     views,
		Insights:  insights,
		Charts:    chartFiles,
		RecapPath: recapPath,
	}

	if p.cfg.Output.ExportTables {
		paths, err := exporter.NewTableExporter(dir, p.logger).ExportViews(views)
		if err != nil {
			return nil, err
		}
		report.TablePaths = paths
	}

	return report, nil
}

func (p *Pipeline) load(ctx context.Context, inputPath string) (*domain.Table, dataprocessing.LoadStats, error) {
	ctx, span := p.telemetry.Tracer.Start(ctx, "pipeline.load")
	defer span.End()

	table, stats, err := p.loader.Load(ctx, inputPath)

	m := p.telemetry.Metrics
	m.RowsRead.Add(ctx, int64(stats.RowsRead))
	m.RowsDropped.Add(ctx, int64(stats.RowsDropped))
	m.EngagementsCoerced.Add(ctx, int64(stats.EngagementsCoerced))
	span.SetAttributes(
		attribute.Int("rows_read", stats.RowsRead),
		attribute.Int("rows_dropped", stats.RowsDropped),
	)

	if err != nil {
		return nil, stats, err
	}
	return table, stats, nil
}
