package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"imid/internal/config"
	"imid/pkg/contracts/domain"
)

func TestInsights_PerView(t *testing.T) {
	advice := config.Default().Insights

	tests := []struct {
		name    domain.ViewName
		entries []domain.ViewEntry
		want    []string
	}{
		{
			name:    domain.ViewSentiment,
			entries: []domain.ViewEntry{{Key: "Positive", Value: 2}, {Key: "Negative", Value: 1}},
			want: []string{
				"The dominant sentiment is 'Positive', accounting for 66.67% of all entries.",
				"'Negative' is the least frequent sentiment.",
				"A total of 3 sentiment entries were analyzed.",
			},
		},
		{
			name:    domain.ViewEngagementsTrend,
			entries: []domain.ViewEntry{{Key: "2024-01-01", Value: 5}, {Key: "2024-01-02", Value: 9}, {Key: "2024-01-03", Value: 9}, {Key: "2024-01-04", Value: 1}},
			want: []string{
				"The highest engagement occurred on 2024-01-02.",
				"The lowest engagement occurred on 2024-01-04.",
				"Overall, the data covers a period with a total of 24 engagements.",
			},
		},
		{
			name:    domain.ViewPlatformEngagements,
			entries: []domain.ViewEntry{{Key: "Twitter", Value: 100}, {Key: "Instagram", Value: 50}, {Key: "Facebook", Value: 25}},
			want: []string{
				"'Twitter' is the leading platform in terms of engagements, contributing 57.14% of the total.",
				"The sum of engagements across all platforms is 175.",
				advice.PlatformFocus,
			},
		},
		{
			name:    domain.ViewMediaType,
			entries: []domain.ViewEntry{{Key: "Image", Value: 1}, {Key: "Video", Value: 1}},
			want: []string{
				"'Image' is the most prevalent media type, making up 50.00% of the analyzed content.",
				advice.MediaDiversity,
				advice.MediaPresence,
			},
		},
		{
			name:    domain.ViewTopLocations,
			entries: []domain.ViewEntry{{Key: "Jakarta", Value: 100}, {Key: "Bandung", Value: 50}},
			want: []string{
				"The top location by engagements is 'Jakarta'.",
				"The top 5 locations represent key geographical areas for engagement.",
				advice.LocationsFollowUp,
			},
		},
	}

	specs := DefaultViews(config.Default().Input, advice)
	for i, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			spec := specs[i]
			assert.Equal(t, tt.name, spec.Name)

			view := domain.AggregateView{Name: spec.Name, Entries: tt.entries}
			assert.Equal(t, tt.want, spec.Insights(view))
		})
	}
}

func TestInsights_EmptyViewsDefault(t *testing.T) {
	cfg := config.Default()
	specs := DefaultViews(cfg.Input, cfg.Insights)
	empty := domain.AggregateView{Entries: []domain.ViewEntry{}}

	assert.Equal(t, []string{
		"The dominant sentiment is 'N/A', accounting for 0.00% of all entries.",
		"'N/A' is the least frequent sentiment.",
		"A total of 0 sentiment entries were analyzed.",
	}, specs[0].Insights(empty))

	assert.Equal(t, []string{
		"The highest engagement occurred on N/A.",
		"The lowest engagement occurred on N/A.",
		"Overall, the data covers a period with a total of 0 engagements.",
	}, specs[1].Insights(empty))

	assert.Equal(t,
		"'N/A' is the leading platform in terms of engagements, contributing 0.00% of the total.",
		specs[2].Insights(empty)[0])
	assert.Equal(t, "The top location by engagements is 'N/A'.", specs[4].Insights(empty)[0])
}

func TestInsights_ZeroEngagementsNoDivision(t *testing.T) {
	cfg := config.Default()
	spec := DefaultViews(cfg.Input, cfg.Insights)[2]

	view := domain.AggregateView{Entries: []domain.ViewEntry{{Key: "A", Value: 0}, {Key: "B", Value: 0}}}
	got := spec.Insights(view)

	assert.Equal(t, "'A' is the leading platform in terms of engagements, contributing 0.00% of the total.", got[0])
	assert.Equal(t, "The sum of engagements across all platforms is 0.", got[1])
}

func TestDefaultViews_AdvisoryOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Insights.PlatformFocus = "Custom advice."
	cfg.Insights.TopLocations = 3

	specs := DefaultViews(cfg.Input, cfg.Insights)

	assert.Equal(t, "Custom advice.", specs[2].Insights(domain.AggregateView{})[2])
	assert.Equal(t, 3, specs[4].Limit)
	assert.Equal(t, "Top 3 Locations by Engagements", specs[4].Title)
	assert.Equal(t, "The top 3 locations represent key geographical areas for engagement.",
		specs[4].Insights(domain.AggregateView{})[1])
}

func TestDefaultViews_LocationsAdviceWithoutPlaceholder(t *testing.T) {
	cfg := config.Default()
	cfg.Insights.LocationsKeyAreas = "Regional focus matters."

	specs := DefaultViews(cfg.Input, cfg.Insights)

	assert.Equal(t, "Regional focus matters.", specs[4].Insights(domain.AggregateView{})[1])
}
