package dataprocessing

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"imid/internal/config"
	apperrors "imid/internal/errors"
	"imid/internal/shared/testutil"
	"imid/pkg/contracts/domain"
)

func newTestLoader(t *testing.T) *Loader {
	logger, _ := testutil.NewTestLogger(t)
	return NewLoader(config.Default().Input, logger)
}

func TestLoader_Load_SampleFile(t *testing.T) {
	path := testutil.WriteSampleCSV(t)

	table, stats, err := newTestLoader(t).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, LoadStats{RowsRead: 5, RowsDropped: 1, EngagementsCoerced: 1}, stats)
	require.Equal(t, 4, table.Len())
	assert.Equal(t, path, table.Source)

	first := table.Records[0]
	assert.Equal(t, "2024-01-01", first.Day())
	assert.Equal(t, "Twitter", first.Platform)
	assert.Equal(t, "Positive", first.Sentiment)
	assert.Equal(t, "Jakarta", first.Location)
	assert.Equal(t, int64(100), first.Engagements)
	assert.Equal(t, "Image", first.MediaType)

	// unusable engagement count keeps the row with 0
	assert.Equal(t, "2024-01-02", table.Records[2].Day())
	assert.Equal(t, int64(0), table.Records[2].Engagements)

	// blank sentiment survives loading
	assert.Equal(t, "", table.Records[3].Sentiment)
	assert.Equal(t, int64(175), table.TotalEngagements())
}

func TestLoader_Load_MixedCaseHeadersWithBadDate(t *testing.T) {
	content := "Date,Platform,Sentiment,Location,Engagements,Media Type\n" +
		"2024-03-01,X,Positive,Paris,10,Image\n" +
		"yesterday,X,Negative,Paris,5,Video\n" +
		"2024-03-02,Y,Neutral,Lyon,7,Text\n"
	path := testutil.WriteFile(t, t.TempDir(), "mixed.csv", content)

	table, stats, err := newTestLoader(t).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 1, stats.RowsDropped)
	// relative order preserved
	assert.Equal(t, "2024-03-01", table.Records[0].Day())
	assert.Equal(t, "2024-03-02", table.Records[1].Day())
}

func TestLoader_Load_MixedDateFormats(t *testing.T) {
	content := "date,platform,sentiment,location,engagements,media_type\n" +
		"2024-01-01 10:00:00+00:00,X,Positive,Paris,10,Image\n" +
		"1/2/24,X,Negative,Paris,5,Video\n" +
		"3 Jan 2024,Y,Neutral,Lyon,7,Text\n"
	path := testutil.WriteFile(t, t.TempDir(), "dates.csv", content)

	table, stats, err := newTestLoader(t).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.RowsDropped)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, "2024-01-01", table.Records[0].Day())
	assert.Equal(t, "2024-01-02", table.Records[1].Day())
	assert.Equal(t, "2024-01-03", table.Records[2].Day())
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		noFile   bool
		wantType apperrors.ErrorType
		check    func(t *testing.T, err error)
	}{
		{
			name:     "file does not exist",
			noFile:   true,
			wantType: apperrors.ErrTypeNotFound,
		},
		{
			name:     "zero bytes",
			content:  "",
			wantType: apperrors.ErrTypeEmptyInput,
		},
		{
			name:     "only blank lines",
			content:  "\n\n\n",
			wantType: apperrors.ErrTypeEmptyInput,
		},
		{
			name:     "header only",
			content:  "date,platform,sentiment,location,engagements,media_type\n",
			wantType: apperrors.ErrTypeEmptyInput,
		},
		{
			name:     "missing location column",
			content:  "date,platform,sentiment,engagements,media_type\n2024-01-01,A,Positive,1,Image\n",
			wantType: apperrors.ErrTypeMissingColumns,
			check: func(t *testing.T, err error) {
				assert.Equal(t, []string{"location"}, apperrors.MissingColumns(err))
			},
		},
		{
			name:     "several missing columns reported in required order",
			content:  "media_type,platform\nImage,A\n",
			wantType: apperrors.ErrTypeMissingColumns,
			check: func(t *testing.T, err error) {
				assert.Equal(t,
					[]string{"date", "sentiment", "location", "engagements"},
					apperrors.MissingColumns(err))
			},
		},
		{
			name:     "unterminated quote",
			content:  "date,platform,sentiment,location,engagements,media_type\n\"2024-01-01,A,Positive,Paris,1,Image\n",
			wantType: apperrors.ErrTypeRead,
		},
		{
			name: "every date unparseable",
			content: "date,platform,sentiment,location,engagements,media_type\n" +
				"soon,A,Positive,Paris,1,Image\n" +
				",B,Negative,Lyon,2,Video\n",
			wantType: apperrors.ErrTypeNoValidRows,
			check: func(t *testing.T, err error) {
				appErr, ok := apperrors.AsAppError(err)
				require.True(t, ok)
				assert.True(t, appErr.IsWarning())
				assert.Equal(t, 2, appErr.Context["rows_dropped"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "input.csv")
			if !tt.noFile {
				path = testutil.WriteFile(t, dir, "input.csv", tt.content)
			}

			table, _, err := newTestLoader(t).Load(context.Background(), path)

			require.Error(t, err)
			assert.Nil(t, table)
			assert.True(t, apperrors.IsType(err, tt.wantType), "got %v", err)
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestLoader_Load_ShortRowsAndExtraColumns(t *testing.T) {
	content := "\xEF\xBB\xBFdate, Platform ,sentiment,location,engagements,media_type,campaign\n" +
		"2024-01-01,A,Positive,Paris,12,Image,spring\n" +
		"2024-01-02,B,Negative\n"
	path := testutil.WriteFile(t, t.TempDir(), "short.csv", content)

	table, stats, err := newTestLoader(t).Load(context.Background(), path)
	require.NoError(t, err)

	require.Equal(t, 2, table.Len())
	assert.Equal(t, "A", table.Records[0].Platform)
	assert.Equal(t, "", table.Records[1].Location)
	assert.Equal(t, int64(0), table.Records[1].Engagements)
	assert.Equal(t, 1, stats.EngagementsCoerced)
}

func TestLoader_Load_CustomDelimiter(t *testing.T) {
	cfg := config.Default().Input
	cfg.Delimiter = ";"
	content := "date;platform;sentiment;location;engagements;media_type\n2024-01-01;A;Positive;Paris;3;Image\n"
	path := testutil.WriteFile(t, t.TempDir(), "semi.csv", content)

	table, _, err := NewLoader(cfg, nil).Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, int64(3), table.Records[0].Engagements)
}

func TestLoader_Load_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Date", "Platform", "Sentiment", "Location", "Engagements", "Media Type"},
		{"2024-02-01", "TikTok", "Positive", "Osaka", 40, "Video"},
		{"2024-02-02", "TikTok", "Negative", "Kyoto", "n/a", "Image"},
		{"garbage", "YouTube", "Neutral", "Tokyo", 5, "Video"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, stats, err := newTestLoader(t).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, LoadStats{RowsRead: 3, RowsDropped: 1, EngagementsCoerced: 1}, stats)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, int64(40), table.Records[0].Engagements)
	assert.Equal(t, "Osaka", table.Records[0].Location)
}

func TestLoader_Load_CorruptWorkbook(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "broken.xlsx", "not a zip archive")

	_, _, err := newTestLoader(t).Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeRead))
}

func TestLoader_Load_CanceledContext(t *testing.T) {
	path := testutil.WriteSampleCSV(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := newTestLoader(t).Load(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveColumns(t *testing.T) {
	index, missing := resolveColumns([]string{"MEDIA TYPE", "engagements", "Location", "sentiment", " platform", "Date", "date"})

	assert.Empty(t, missing)
	assert.Equal(t, 5, index[domain.ColumnDate])
	assert.Equal(t, 0, index[domain.ColumnMediaType])
}
