package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleCSV is a small valid export with mixed-case headers, one unparseable date, one
// unusable engagement count and a blank sentiment.
const SampleCSV = `Date,Platform,Sentiment,Location,Engagements,Media Type
2024-01-01,Twitter,Positive,Jakarta,100,Image
2024-01-01,Instagram,Negative,Bandung,50,Video
2024-01-02,Twitter,Positive,Jakarta,bad,Text
not-a-date,Facebook,Neutral,Surabaya,999,Image
2024-01-03,Facebook,,Medan,25,Image
`

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", name, err)
	}
	return path
}

// WriteSampleCSV writes SampleCSV to a fresh temp directory.
func WriteSampleCSV(t *testing.T) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "data.csv", SampleCSV)
}
