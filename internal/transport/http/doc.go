// Package http implements the dashboard's HTTP handlers. Handlers stay thin: they read
// the current report from a ReportProvider and format it as HTML or JSON.
//
// Routes served by the dashboard:
//
//	GET /                    index page linking charts, recap and insights
//	GET /charts/*            chart pages and recap from the output directory
//	GET /api/insights        full report as JSON
//	GET /api/insights/{view} one view with its insights
//	GET /api/health          liveness and report readiness
//	GET /api/version         build information
package http
