package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVWriter_WriteCSV(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		options WriteOptions
		wantBOM bool
		want    [][]string
	}{
		{
			name: "headers and records with BOM",
			file: "views/sentiment.csv",
			options: WriteOptions{
				Headers:   []string{"Sentiment", "Count"},
				Records:   [][]string{{"Positive", "2"}, {"Negative, mild", "1"}},
				BOMPrefix: true,
			},
			wantBOM: true,
			want:    [][]string{{"Sentiment", "Count"}, {"Positive", "2"}, {"Negative, mild", "1"}},
		},
		{
			name: "records only",
			file: "plain.csv",
			options: WriteOptions{
				Records: [][]string{{"a", "b"}},
			},
			want: [][]string{{"a", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writer := NewCSVWriter(dir, nil)

			path, err := writer.WriteCSV(tt.file, tt.options)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.file), path)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBOM, bytes.HasPrefix(data, utf8BOM))

			records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
			require.NoError(t, err)
			assert.Equal(t, tt.want, records)
		})
	}
}

func TestCSVWriter_AbsolutePath(t *testing.T) {
	target := filepath.Join(t.TempDir(), "abs.csv")
	writer := NewCSVWriter("/does/not/matter", nil)

	path, err := writer.WriteCSV(target, WriteOptions{Records: [][]string{{"x"}}})
	require.NoError(t, err)
	assert.Equal(t, target, path)
	assert.FileExists(t, target)
}

func TestCSVWriter_UnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := NewCSVWriter(blocker, nil).WriteCSV("out.csv", WriteOptions{})
	assert.Error(t, err)
}
