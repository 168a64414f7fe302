package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"

	"imid/internal/config"
	"imid/pkg/contracts/domain"
)

const notAvailable = "N/A"

// DefaultViews returns the five fixed views in report order.
func DefaultViews(input config.InputConfig, advice config.InsightsConfig) []ViewSpec {
	missing := input.MissingLabel
	if missing == "" {
		missing = config.DefaultMissingLabel
	}
	topLocations := advice.TopLocations
	if topLocations <= 0 {
		topLocations = config.DefaultTopLocations
	}

	return []ViewSpec{
		{
			Name:     domain.ViewSentiment,
			Title:    "Sentiment Breakdown",
			KeyName:  "Sentiment",
			Chart:    domain.ChartPie,
			Key:      bucketed(func(r domain.Record) string { return r.Sentiment }, missing),
			Metric:   MetricCount,
			Ranking:  RankByValueDesc,
			Insights: sentimentInsights,
		},
		{
			Name:     domain.ViewEngagementsTrend,
			Title:    "Engagement Trend Over Time",
			KeyName:  "Date",
			Chart:    domain.ChartLine,
			Key:      func(r domain.Record) (string, bool) { return r.Day(), true },
			Metric:   MetricSumEngagements,
			Ranking:  RankChronological,
			Insights: trendInsights,
		},
		{
			Name:     domain.ViewPlatformEngagements,
			Title:    "Engagements by Platform",
			KeyName:  "Platform",
			Chart:    domain.ChartBar,
			Key:      present(func(r domain.Record) string { return r.Platform }),
			Metric:   MetricSumEngagements,
			Ranking:  RankByValueDesc,
			Insights: platformInsights(advice),
		},
		{
			Name:     domain.ViewMediaType,
			Title:    "Media Type Mix",
			KeyName:  "Media Type",
			Chart:    domain.ChartPie,
			Key:      bucketed(func(r domain.Record) string { return r.MediaType }, missing),
			Metric:   MetricCount,
			Ranking:  RankByValueDesc,
			Insights: mediaTypeInsights(advice),
		},
		{
			Name:     domain.ViewTopLocations,
			Title:    fmt.Sprintf("Top %d Locations by Engagements", topLocations),
			KeyName:  "Location",
			Chart:    domain.ChartBar,
			Key:      present(func(r domain.Record) string { return r.Location }),
			Metric:   MetricSumEngagements,
			Ranking:  RankByValueDesc,
			Limit:    topLocations,
			Insights: locationInsights(advice, topLocations),
		},
	}
}

// bucketed keys blank values under the missing label.
func bucketed(field func(domain.Record) string, missing string) func(domain.Record) (string, bool) {
	return func(r domain.Record) (string, bool) {
		v := field(r)
		if strings.TrimSpace(v) == "" {
			return missing, true
		}
		return v, true
	}
}

// present leaves rows with a blank value out of the view.
func present(field func(domain.Record) string) func(domain.Record) (string, bool) {
	return func(r domain.Record) (string, bool) {
		v := field(r)
		return v, strings.TrimSpace(v) != ""
	}
}

func sentimentInsights(view domain.AggregateView) []string {
	top, lowest := notAvailable, notAvailable
	total := view.Total()
	var share float64
	if !view.Empty() {
		top = view.Entries[0].Key
		lowest = view.Entries[len(view.Entries)-1].Key
		share = Percent(view.Entries[0].Value, total)
	}

	return []string{
		fmt.Sprintf("The dominant sentiment is '%s', accounting for %s%% of all entries.", top, FormatPercent(share)),
		fmt.Sprintf("'%s' is the least frequent sentiment.", lowest),
		fmt.Sprintf("A total of %d sentiment entries were analyzed.", total),
	}
}

func trendInsights(view domain.AggregateView) []string {
	highest, lowest := notAvailable, notAvailable
	if !view.Empty() {
		maxEntry, minEntry := view.Entries[0], view.Entries[0]
		for _, e := range view.Entries[1:] {
			if e.Value > maxEntry.Value {
				maxEntry = e
			}
			if e.Value < minEntry.Value {
				minEntry = e
			}
		}
		highest, lowest = maxEntry.Key, minEntry.Key
	}

	return []string{
		fmt.Sprintf("The highest engagement occurred on %s.", highest),
		fmt.Sprintf("The lowest engagement occurred on %s.", lowest),
		fmt.Sprintf("Overall, the data covers a period with a total of %d engagements.", view.Total()),
	}
}

func platformInsights(advice config.InsightsConfig) func(domain.AggregateView) []string {
	return func(view domain.AggregateView) []string {
		top := notAvailable
		total := view.Total()
		var share float64
		if !view.Empty() {
			top = view.Entries[0].Key
			share = Percent(view.Entries[0].Value, total)
		}

		return []string{
			fmt.Sprintf("'%s' is the leading platform in terms of engagements, contributing %s%% of the total.", top, FormatPercent(share)),
			fmt.Sprintf("The sum of engagements across all platforms is %d.", total),
			advice.PlatformFocus,
		}
	}
}

func mediaTypeInsights(advice config.InsightsConfig) func(domain.AggregateView) []string {
	return func(view domain.AggregateView) []string {
		top := notAvailable
		var share float64
		if !view.Empty() {
			top = view.Entries[0].Key
			share = Percent(view.Entries[0].Value, view.Total())
		}

		return []string{
			fmt.Sprintf("'%s' is the most prevalent media type, making up %s%% of the analyzed content.", top, FormatPercent(share)),
			advice.MediaDiversity,
			advice.MediaPresence,
		}
	}
}

func locationInsights(advice config.InsightsConfig, limit int) func(domain.AggregateView) []string {
	keyAreas := strings.ReplaceAll(advice.LocationsKeyAreas, config.LimitPlaceholder, strconv.Itoa(limit))

	return func(view domain.AggregateView) []string {
		top := notAvailable
		if !view.Empty() {
			top = view.Entries[0].Key
		}

		return []string{
			fmt.Sprintf("The top location by engagements is '%s'.", top),
			keyAreas,
			advice.LocationsFollowUp,
		}
	}
}
