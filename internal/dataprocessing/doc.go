// Package dataprocessing turns a social-media activity export into the aggregate views
// the dashboard reports on.
//
// # Architecture
//
// The package has two stages:
//
// 1. Loader: reads a CSV or XLSX file, normalizes the header, checks the required
// columns and cleans each row (bad dates drop the row, bad engagement counts become 0)
// 2. Analyzer: runs one parameterized aggregation per ViewSpec and derives the insight
// sentences of each view
//
// # Usage
//
//	loader := dataprocessing.NewLoader(cfg.Input, logger)
//	table, stats, err := loader.Load(ctx, "data.csv")
//	if err != nil {
//	    return err
//	}
//
//	analyzer := dataprocessing.NewAnalyzer(cfg.Input, cfg.Insights, logger)
//	views, insights, err := analyzer.Analyze(ctx, table)
//
// # Views
//
// Five views are computed, always in the same order:
//
//	sentiment             row count per sentiment, blanks counted as "missing"
//	engagements_trend     engagement sum per calendar day, chronological
//	platform_engagements  engagement sum per platform
//	media_type            row count per media type, blanks counted as "missing"
//	top_locations         engagement sum per location, top insights.top_locations only
//
// Ranked views sort by value descending and keep first-encountered order for ties.
//
// # Error Handling
//
// Terminal input problems are returned as *errors.AppError with types NOT_FOUND,
// EMPTY_INPUT, READ, MISSING_COLUMNS and NO_VALID_ROWS. Row-level problems never abort
// a load; they are counted in LoadStats.
package dataprocessing
