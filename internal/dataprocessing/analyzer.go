package dataprocessing

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"imid/internal/config"
	"imid/pkg/contracts/domain"
)

// Analyzer computes every configured view over a validated table.
type Analyzer struct {
	specs  []ViewSpec
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer over the five fixed views
func NewAnalyzer(input config.InputConfig, advice config.InsightsConfig, logger *slog.Logger) *Analyzer {
	return NewAnalyzerWithViews(DefaultViews(input, advice), logger)
}

// NewAnalyzerWithViews creates an analyzer over an explicit view list.
func NewAnalyzerWithViews(specs []ViewSpec, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{specs: specs, logger: logger}
}

// Analyze computes the views concurrently. The table is only read. Views come back in
// view order together with the insight sentences of each view.
func (a *Analyzer) Analyze(ctx context.Context, table *domain.Table) ([]domain.AggregateView, domain.InsightSet, error) {
	views := make([]domain.AggregateView, len(a.specs))
	sentences := make([][]string, len(a.specs))

	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range a.specs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			views[i] = Aggregate(table, spec)
			if spec.Insights != nil {
				sentences[i] = spec.Insights(views[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	insights := make(domain.InsightSet, len(a.specs))
	for i, view := range views {
		insights[view.Name] = sentences[i]
		a.logger.DebugContext(ctx, "View aggregated",
			slog.String("view", string(view.Name)),
			slog.Int("entries", len(view.Entries)),
			slog.Int64("total", view.Total()))
	}

	return views, insights, nil
}
