package http

import (
	"imid/pkg/contracts/domain"
)

// ReportProvider exposes the report the dashboard serves
type ReportProvider interface {
	Report() *domain.Report
}

// ReportStore holds the report of the run the dashboard was started for
type ReportStore struct {
	report *domain.Report
}

// NewReportStore creates a store holding report, which may be nil
func NewReportStore(report *domain.Report) *ReportStore {
	return &ReportStore{report: report}
}

// Report returns the stored report or nil
func (s *ReportStore) Report() *domain.Report {
	return s.report
}
