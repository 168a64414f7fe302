package domain

import "fmt"

// ViewName identifies one of the five fixed aggregate views.
type ViewName string

const (
	ViewSentiment           ViewName = "sentiment"
	ViewEngagementsTrend    ViewName = "engagements_trend"
	ViewPlatformEngagements ViewName = "platform_engagements"
	ViewMediaType           ViewName = "media_type"
	ViewTopLocations        ViewName = "top_locations"
)

// ViewOrder is the fixed order views are computed, rendered and recapped in.
var ViewOrder = []ViewName{
	ViewSentiment,
	ViewEngagementsTrend,
	ViewPlatformEngagements,
	ViewMediaType,
	ViewTopLocations,
}

// Label returns the human readable name used in console output. Limited views are
// labelled through AggregateView.Label.
func (v ViewName) Label() string {
	switch v {
	case ViewSentiment:
		return "Sentiment Breakdown"
	case ViewEngagementsTrend:
		return "Engagement Trend"
	case ViewPlatformEngagements:
		return "Platform Engagements"
	case ViewMediaType:
		return "Media Type Mix"
	case ViewTopLocations:
		return "Top Locations"
	default:
		return string(v)
	}
}

// ChartKind is the shape a view is drawn as.
type ChartKind string

const (
	ChartPie  ChartKind = "pie"
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
)

// ViewEntry is one key of an aggregate view with its derived value.
type ViewEntry struct {
	Key   string `json:"key"`
	Value int64  `json:"value"`
}

// AggregateView maps a categorical key to a count or an engagement sum,
// ordered by the view's ranking rule.
type AggregateView struct {
	Name    ViewName    `json:"name"`
	Title   string      `json:"title"`
	KeyName string      `json:"key_name"`
	Metric  string      `json:"metric"`
	Chart   ChartKind   `json:"chart"`
	Limit   int         `json:"limit,omitempty"`
	Entries []ViewEntry `json:"entries"`
}

// Label returns the view's console name, carrying its entry limit when it has one.
func (v AggregateView) Label() string {
	if v.Name == ViewTopLocations && v.Limit > 0 {
		return fmt.Sprintf("Top %d Locations", v.Limit)
	}
	return v.Name.Label()
}

// Total sums the values of every entry in the view, saturating at math.MaxInt64.
func (v AggregateView) Total() int64 {
	var total int64
	for _, e := range v.Entries {
		total = AddEngagements(total, e.Value)
	}
	return total
}

// Empty reports whether the view has no entries.
func (v AggregateView) Empty() bool {
	return len(v.Entries) == 0
}

// InsightSet maps each view to its ordered insight sentences.
type InsightSet map[ViewName][]string

// ChartFile records a chart artifact written for a view.
type ChartFile struct {
	View ViewName `json:"view"`
	Path string   `json:"path"`
}

// Report is everything a single pipeline run produced.
type Report struct {
	RunID      string          `json:"run_id"`
	Source     string          `json:"source"`
	OutputDir  string          `json:"output_dir"`
	RowCount   int             `json:"row_count"`
	Views      []AggregateView `json:"views"`
	Insights   InsightSet      `json:"insights"`
	Charts     []ChartFile     `json:"charts"`
	RecapPath  string          `json:"recap_path"`
	TablePaths []string        `json:"table_paths,omitempty"`
}

// Label returns the display name of the named view as computed in this report.
func (r *Report) Label(name ViewName) string {
	if v, ok := r.View(name); ok {
		return v.Label()
	}
	return name.Label()
}

// View returns the named view from the report.
func (r *Report) View(name ViewName) (AggregateView, bool) {
	for _, v := range r.Views {
		if v.Name == name {
			return v, true
		}
	}
	return AggregateView{}, false
}
