package domain

import (
	"math"
	"time"
)

// Column names every input table must carry after normalization.
const (
	ColumnDate        = "date"
	ColumnPlatform    = "platform"
	ColumnSentiment   = "sentiment"
	ColumnLocation    = "location"
	ColumnEngagements = "engagements"
	ColumnMediaType   = "media_type"
)

// RequiredColumns lists the required columns in the order they are reported when missing.
var RequiredColumns = []string{
	ColumnDate,
	ColumnPlatform,
	ColumnSentiment,
	ColumnLocation,
	ColumnEngagements,
	ColumnMediaType,
}

// Record is a single validated row of social-media activity.
// Date is always set and Engagements is never negative.
type Record struct {
	Date        time.Time `json:"date"`
	Platform    string    `json:"platform"`
	Sentiment   string    `json:"sentiment"`
	Location    string    `json:"location"`
	Engagements int64     `json:"engagements"`
	MediaType   string    `json:"media_type"`
}

// Day returns the calendar day of the record in ISO form.
func (r Record) Day() string {
	return r.Date.Format("2006-01-02")
}

// Table is the validated record table, rows kept in input order.
type Table struct {
	Source  string   `json:"source"`
	Records []Record `json:"records"`
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// TotalEngagements sums engagements across every row.
func (t *Table) TotalEngagements() int64 {
	if t == nil {
		return 0
	}
	var total int64
	for _, r := range t.Records {
		total = AddEngagements(total, r.Engagements)
	}
	return total
}

// AddEngagements adds two non-negative engagement counts, saturating at math.MaxInt64.
func AddEngagements(total, n int64) int64 {
	if n > math.MaxInt64-total {
		return math.MaxInt64
	}
	return total + n
}
