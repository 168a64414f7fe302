package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"imid/internal/config"
	apperrors "imid/internal/errors"
	"imid/pkg/contracts/domain"
)

// RecapTitle heads every recap document
const RecapTitle = "Media Intelligence Dashboard Recap"

// recapSection pairs a view with its recap heading
type recapSection struct {
	view  domain.ViewName
	title string
}

// heading fills the locations limit into the title
func (s recapSection) heading(topLocations int) string {
	if s.view == domain.ViewTopLocations {
		return fmt.Sprintf(s.title, topLocations)
	}
	return s.title
}

// recapSections lists the recap headings in document order
var recapSections = []recapSection{
	{domain.ViewSentiment, "Sentiment Breakdown Insights"},
	{domain.ViewEngagementsTrend, "Engagement Trend Over Time Insights"},
	{domain.ViewPlatformEngagements, "Platform Engagements Insights"},
	{domain.ViewMediaType, "Media Type Mix Insights"},
	{domain.ViewTopLocations, "Top %d Locations by Engagements Insights"},
}

// BuildRecap assembles the recap document. Views without insights get no section.
// topLocations fills the locations heading; non-positive values use the default.
func BuildRecap(insights domain.InsightSet, topLocations int) string {
	if topLocations <= 0 {
		topLocations = config.DefaultTopLocations
	}

	var b strings.Builder
	b.WriteString("# " + RecapTitle + "\n\n")

	for _, section := range recapSections {
		lines := insights[section.view]
		if len(lines) == 0 {
			continue
		}
		b.WriteString("## " + section.heading(topLocations) + "\n")
		for _, line := range lines {
			b.WriteString("- " + line + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RecapWriter persists recap documents
type RecapWriter struct {
	logger *slog.Logger
}

// NewRecapWriter creates a recap writer
func NewRecapWriter(logger *slog.Logger) *RecapWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecapWriter{logger: logger}
}

// Write stores recap as UTF-8 text in dir and returns the file path
func (w *RecapWriter) Write(dir, recap string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create output directory", err).
			WithContext("directory", dir)
	}

	path := filepath.Join(dir, config.RecapFileName)
	if err := os.WriteFile(path, []byte(recap), 0644); err != nil {
		return "", apperrors.NewStorageError("failed to write recap", err).
			WithContext("path", path)
	}

	w.logger.Info("Recap written",
		slog.String("path", path),
		slog.Int("bytes", len(recap)))
	return path, nil
}
