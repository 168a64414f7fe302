package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddEngagements(t *testing.T) {
	tests := []struct {
		name     string
		total, n int64
		want     int64
	}{
		{"small", 2, 3, 5},
		{"zero", 0, 0, 0},
		{"reaches max", math.MaxInt64 - 1, 1, math.MaxInt64},
		{"saturates", math.MaxInt64, math.MaxInt64, math.MaxInt64},
		{"saturates from below", math.MaxInt64 - 5, 10, math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddEngagements(tt.total, tt.n))
		})
	}
}

func TestTotalsSaturate(t *testing.T) {
	table := &Table{Records: []Record{
		{Engagements: math.MaxInt64},
		{Engagements: math.MaxInt64},
	}}
	assert.Equal(t, int64(math.MaxInt64), table.TotalEngagements())

	view := AggregateView{Entries: []ViewEntry{{Key: "A", Value: math.MaxInt64}, {Key: "B", Value: 7}}}
	assert.Equal(t, int64(math.MaxInt64), view.Total())

	var empty *Table
	assert.Equal(t, int64(0), empty.TotalEngagements())
}
