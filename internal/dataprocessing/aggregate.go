package dataprocessing

import (
	"math"
	"sort"
	"strconv"

	"imid/pkg/contracts/domain"
)

// Metric is how records sharing a key are combined.
type Metric int

const (
	// MetricCount counts rows per key
	MetricCount Metric = iota
	// MetricSumEngagements sums engagements per key
	MetricSumEngagements
)

func (m Metric) String() string {
	switch m {
	case MetricCount:
		return "count"
	case MetricSumEngagements:
		return "sum_engagements"
	default:
		return "unknown"
	}
}

// Ranking orders the entries of a view.
type Ranking int

const (
	// RankByValueDesc sorts by value, largest first; equal values keep first-encountered order
	RankByValueDesc Ranking = iota
	// RankChronological sorts ISO date keys ascending
	RankChronological
)

// ViewSpec describes one aggregate view: how rows are keyed, combined, ranked and
// turned into insight sentences.
type ViewSpec struct {
	Name    domain.ViewName
	Title   string
	KeyName string
	Chart   domain.ChartKind
	// Key extracts the grouping key; rows reporting false are left out of the view
	Key      func(domain.Record) (string, bool)
	Metric   Metric
	Ranking  Ranking
	Limit    int
	Insights func(domain.AggregateView) []string
}

// Aggregate groups the table by spec.Key and applies the spec's metric, ranking and limit.
func Aggregate(table *domain.Table, spec ViewSpec) domain.AggregateView {
	index := make(map[string]int)
	entries := make([]domain.ViewEntry, 0)

	if table != nil {
		for _, r := range table.Records {
			key, ok := spec.Key(r)
			if !ok {
				continue
			}
			i, seen := index[key]
			if !seen {
				i = len(entries)
				index[key] = i
				entries = append(entries, domain.ViewEntry{Key: key})
			}
			switch spec.Metric {
			case MetricCount:
				entries[i].Value++
			case MetricSumEngagements:
				entries[i].Value = domain.AddEngagements(entries[i].Value, r.Engagements)
			}
		}
	}

	switch spec.Ranking {
	case RankByValueDesc:
		sort.SliceStable(entries, func(a, b int) bool {
			return entries[a].Value > entries[b].Value
		})
	case RankChronological:
		sort.SliceStable(entries, func(a, b int) bool {
			return entries[a].Key < entries[b].Key
		})
	}

	if spec.Limit > 0 && len(entries) > spec.Limit {
		entries = entries[:spec.Limit]
	}

	return domain.AggregateView{
		Name:    spec.Name,
		Title:   spec.Title,
		KeyName: spec.KeyName,
		Metric:  spec.Metric.String(),
		Chart:   spec.Chart,
		Limit:   spec.Limit,
		Entries: entries,
	}
}

// Percent returns part as a percentage of total rounded to 2 decimals, or 0 when total is
// not positive.
func Percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

// FormatPercent renders a percentage with exactly 2 decimals.
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}
