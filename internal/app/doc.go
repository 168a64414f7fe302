// Package app wires the analysis pipeline and the dashboard server together.
//
// # Pipeline
//
// Pipeline.Run performs one analysis of a CSV or XLSX export:
//
//  1. Load and validate the input (dataprocessing.Loader)
//  2. Compute the five aggregate views and their insights
//  3. Create the output directory
//  4. Render one chart file per view
//  5. Write the recap, and the per-view tables when enabled
//
// Input problems stop the run before the output directory is touched and are
// returned as *errors.AppError values. Console narrates a run for the CLI.
//
// # Dashboard
//
// Application serves a finished report: an HTML index at /, the chart files
// under /charts/, JSON under /api and Prometheus metrics at /metrics. Run blocks
// until SIGINT or SIGTERM and then shuts the server down gracefully.
//
// The package never calls os.Exit; the command layer decides the exit status.
package app
