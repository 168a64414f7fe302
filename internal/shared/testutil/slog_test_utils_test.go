package testutil

import (
	"log/slog"
	"os"
	"sync"
	"testing"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("rows loaded", slog.String("file", "data.csv"))
		logger.Error("load failed", slog.Int("code", 2))

		if handler.Count() != 2 {
			t.Errorf("Expected 2 records, got %d", handler.Count())
		}
		if !handler.ContainsMessage("rows loaded") {
			t.Error("Expected to find 'rows loaded'")
		}
		if !handler.ContainsAttr("file", "data.csv") {
			t.Error("Expected to find attribute file=data.csv")
		}
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		if got := len(handler.GetRecordsByLevel(slog.LevelWarn)); got != 1 {
			t.Errorf("Expected 1 warn record, got %d", got)
		}
		AssertLogContains(t, handler, slog.LevelDebug, "debug")
	})

	t.Run("bound attributes are shared", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		runLogger := logger.With(slog.String("trace_id", "abc"))
		runLogger.Info("stage done")
		logger.Info("unbound")

		if handler.Count() != 2 {
			t.Fatalf("Expected derived logger to share records, got %d", handler.Count())
		}
		records := handler.GetRecords()
		if records[0].Attrs["trace_id"] != "abc" {
			t.Errorf("Expected trace_id on derived record, got %v", records[0].Attrs)
		}
		if _, ok := records[1].Attrs["trace_id"]; ok {
			t.Error("Expected parent logger records without trace_id")
		}
		AssertNoErrors(t, handler)
	})

	t.Run("thread safety", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				logger.Info("concurrent log", slog.Int("goroutine", n))
			}(i)
		}
		wg.Wait()

		if handler.Count() != 10 {
			t.Errorf("Expected 10 records from concurrent logging, got %d", handler.Count())
		}
	})
}

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, t.TempDir(), "nested/data.csv", SampleCSV)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}
	if string(data) != SampleCSV {
		t.Error("Fixture content mismatch")
	}
}
