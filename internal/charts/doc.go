// Package charts renders aggregate views as interactive HTML pages using go-echarts.
//
// Each of the five views has a fixed file name and chart shape: pie charts for the
// sentiment and media type mixes, a line chart for the engagement trend and bar charts
// for platforms and top locations. Pages load the ECharts script from the configured
// assets host.
package charts
