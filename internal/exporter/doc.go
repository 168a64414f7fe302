// Package exporter writes the text artifacts of an analysis run.
//
// BuildRecap assembles the recap document from the insight set and RecapWriter stores
// it as media_intelligence_recap.txt. TableExporter optionally writes each aggregate
// view as <view>.csv through CSVWriter, with a UTF-8 BOM for spreadsheet tools.
//
// Example usage:
//
//	recap := exporter.BuildRecap(insights, cfg.Insights.TopLocations)
//	path, err := exporter.NewRecapWriter(logger).Write(outputDir, recap)
//
//	paths, err := exporter.NewTableExporter(outputDir, logger).ExportViews(views)
package exporter
