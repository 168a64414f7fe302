package exporter

import (
	"log/slog"
	"strconv"

	apperrors "imid/internal/errors"
	"imid/pkg/contracts/domain"
)

// TableExporter writes each aggregate view as a two-column CSV table
type TableExporter struct {
	writer *CSVWriter
	logger *slog.Logger
}

// NewTableExporter creates an exporter writing into dir
func NewTableExporter(dir string, logger *slog.Logger) *TableExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableExporter{
		writer: NewCSVWriter(dir, logger),
		logger: logger,
	}
}

// ExportViews writes <view>.csv for every view and returns the written paths in view order
func (e *TableExporter) ExportViews(views []domain.AggregateView) ([]string, error) {
	paths := make([]string, 0, len(views))
	for _, view := range views {
		path, err := e.writer.WriteCSV(string(view.Name)+".csv", WriteOptions{
			Headers:   e.getHeaders(view),
			Records:   e.viewToCSVRows(view),
			BOMPrefix: true,
		})
		if err != nil {
			return paths, apperrors.NewStorageError("failed to export view table", err).
				WithContext("view", string(view.Name))
		}
		paths = append(paths, path)
	}

	e.logger.Info("View tables exported", slog.Int("tables", len(paths)))
	return paths, nil
}

func (e *TableExporter) getHeaders(view domain.AggregateView) []string {
	key := view.KeyName
	if key == "" {
		key = "Key"
	}
	value := "Count"
	if view.Metric != "count" {
		value = "Total Engagements"
	}
	return []string{key, value}
}

func (e *TableExporter) viewToCSVRows(view domain.AggregateView) [][]string {
	rows := make([][]string, 0, len(view.Entries))
	for _, entry := range view.Entries {
		rows = append(rows, []string{entry.Key, strconv.FormatInt(entry.Value, 10)})
	}
	return rows
}
