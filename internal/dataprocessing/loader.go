package dataprocessing

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"imid/internal/config"
	apperrors "imid/internal/errors"
	"imid/internal/validation"
	"imid/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadStats summarizes row-level recovery performed while loading.
type LoadStats struct {
	RowsRead           int `json:"rows_read"`
	RowsDropped        int `json:"rows_dropped"`
	EngagementsCoerced int `json:"engagements_coerced"`
}

// Loader reads a tabular source and produces the validated record table.
type Loader struct {
	cfg       config.InputConfig
	validator *validation.FileValidator
	logger    *slog.Logger
}

// NewLoader creates a loader for the given input configuration
func NewLoader(cfg config.InputConfig, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		cfg:       cfg,
		validator: validation.NewFileValidator(logger),
		logger:    logger,
	}
}

// Load reads path and returns the cleaned table. Rows with unparseable dates are
// dropped and unusable engagement counts become 0. Terminal conditions are returned
// as *errors.AppError values.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Table, LoadStats, error) {
	var stats LoadStats

	if err := l.validator.ValidateInputFile(path); err != nil {
		return nil, stats, err
	}
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	rows, err := l.readRows(path)
	if err != nil {
		return nil, stats, err
	}

	if len(rows) == 0 {
		l.logger.ErrorContext(ctx, "Input has no header row", slog.String("file", path))
		return nil, stats, apperrors.NewEmptyInputError(path)
	}
	if len(rows) == 1 {
		l.logger.ErrorContext(ctx, "Input has no data rows", slog.String("file", path))
		return nil, stats, apperrors.NewEmptyInputError(path)
	}

	columns, missing := resolveColumns(rows[0])
	if len(missing) > 0 {
		l.logger.ErrorContext(ctx, "Input is missing required columns",
			slog.String("file", path),
			slog.Any("missing_columns", missing))
		return nil, stats, apperrors.NewMissingColumnsError(missing)
	}

	table := &domain.Table{
		Source:  path,
		Records: make([]domain.Record, 0, len(rows)-1),
	}

	for i, row := range rows[1:] {
		stats.RowsRead++

		rawDate := columns.cell(row, domain.ColumnDate)
		date, ok := ParseDate(rawDate, l.cfg.DateLayouts)
		if !ok {
			stats.RowsDropped++
			l.logger.DebugContext(ctx, "Dropping row with unparseable date",
				slog.Int("row", i+2),
				slog.String("date", rawDate))
			continue
		}

		engagements, coerced := ParseEngagements(columns.cell(row, domain.ColumnEngagements))
		if coerced {
			stats.EngagementsCoerced++
		}

		table.Records = append(table.Records, domain.Record{
			Date:        date,
			Platform:    strings.TrimSpace(columns.cell(row, domain.ColumnPlatform)),
			Sentiment:   strings.TrimSpace(columns.cell(row, domain.ColumnSentiment)),
			Location:    strings.TrimSpace(columns.cell(row, domain.ColumnLocation)),
			Engagements: engagements,
			MediaType:   strings.TrimSpace(columns.cell(row, domain.ColumnMediaType)),
		})
	}

	l.logger.InfoContext(ctx, "Input loaded",
		slog.String("file", path),
		slog.Int("rows_read", stats.RowsRead),
		slog.Int("rows_kept", table.Len()),
		slog.Int("rows_dropped", stats.RowsDropped),
		slog.Int("engagements_coerced", stats.EngagementsCoerced))

	if table.Len() == 0 {
		l.logger.WarnContext(ctx, "No valid date entries found after cleaning",
			slog.String("file", path),
			slog.Int("rows_dropped", stats.RowsDropped))
		return nil, stats, apperrors.NewNoValidRowsError(stats.RowsDropped)
	}

	return table, stats, nil
}

func (l *Loader) readRows(path string) ([][]string, error) {
	switch validation.DetectFormat(path) {
	case validation.FormatXLSX:
		return readWorkbookRows(path)
	default:
		return readDelimitedRows(path, l.delimiter())
	}
}

func (l *Loader) delimiter() rune {
	if l.cfg.Delimiter == "" {
		return ','
	}
	return []rune(l.cfg.Delimiter)[0]
}

// readDelimitedRows reads every record of a delimited text file. Blank lines are skipped
// and rows may carry any number of fields.
func readDelimitedRows(path string, delimiter rune) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewReadError(path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewReadError(path, err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// readWorkbookRows reads the first sheet of an xlsx workbook as strings.
func readWorkbookRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewReadError(path, fmt.Errorf("failed to open workbook: %w", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewReadError(path, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err))
	}

	rows := make([][]string, 0, len(all))
	for _, row := range all {
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// columnIndex maps required column names to their position in the header.
type columnIndex map[string]int

func (c columnIndex) cell(row []string, column string) string {
	i, ok := c[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// resolveColumns normalizes the header and reports required columns it lacks, in
// required-column order. The first occurrence of a duplicated name wins.
func resolveColumns(header []string) (columnIndex, []string) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		normalized := NormalizeColumnName(name)
		if _, dup := positions[normalized]; !dup {
			positions[normalized] = i
		}
	}

	index := make(columnIndex, len(domain.RequiredColumns))
	var missing []string
	for _, required := range domain.RequiredColumns {
		i, ok := positions[required]
		if !ok {
			missing = append(missing, required)
			continue
		}
		index[required] = i
	}
	return index, missing
}
