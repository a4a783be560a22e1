// Copyright 2025 The salescope authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"html/template"
	"io"
	"os"
)

// HTMLReporter generates self-contained HTML reports with embedded charts
type HTMLReporter struct {
	logger *Logger
	charts *ChartGenerator
}

// NewHTMLReporter creates a new HTML report generator
func NewHTMLReporter(logger *Logger) *HTMLReporter {
	return &HTMLReporter{
		logger: logger,
		charts: NewChartGenerator(),
	}
}

// htmlReportData is the template payload
type htmlReportData struct {
	Result           *AnalysisResult
	Version          string
	ForecastChart    string
	SegmentChart     string
	SeasonalityChart string
}

// GenerateHTMLReport renders the analysis as a single HTML file. Chart
// rendering failures are logged and the section is skipped, never fatal.
func (hr *HTMLReporter) GenerateHTMLReport(result *AnalysisResult, outputPath string) error {
	hr.logger.Info("Generating HTML report")

	var writer io.Writer
	if outputPath == "" {
		writer = os.Stdout
	} else {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	data := &htmlReportData{
		Result:  result,
		Version: GetVersion(),
	}

	if chart, err := hr.charts.GenerateForecastChart(result.Forecast); err == nil {
		data.ForecastChart = chart
	} else {
		hr.logger.Debug("Skipping forecast chart", "error", err)
	}
	if chart, err := hr.charts.GenerateSegmentChart(result.Segmentation); err == nil {
		data.SegmentChart = chart
	} else {
		hr.logger.Debug("Skipping segment chart", "error", err)
	}
	var seasonality *SeasonalityResult
	if result.Patterns != nil {
		seasonality = result.Patterns.Seasonality
	}
	if chart, err := hr.charts.GenerateSeasonalityChart(seasonality); err == nil {
		data.SeasonalityChart = chart
	} else {
		hr.logger.Debug("Skipping seasonality chart", "error", err)
	}

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"currency": FormatCurrency,
		"pct":      func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	}).Parse(htmlReportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	if err := tmpl.Execute(writer, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if outputPath != "" {
		hr.logger.Info("HTML report saved", "path", outputPath)
	}

	return nil
}

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Sales Analysis Report</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #1a1a2e; color: #e0e0e0; margin: 0; padding: 2rem; }
  .container { max-width: 1240px; margin: 0 auto; }
  h1 { color: #ffffff; border-bottom: 2px solid #0f3460; padding-bottom: 0.5rem; }
  h2 { color: #e94560; margin-top: 2rem; }
  .meta { color: #888; font-size: 0.9rem; }
  .card { background: #16213e; border-radius: 8px; padding: 1.25rem; margin: 1rem 0; }
  .score { font-size: 2.5rem; font-weight: 700; }
  .success { color: #4caf50; }
  .warning { color: #ff9800; }
  .danger { color: #f44336; }
  .fallback { background: #3a2e1e; border-left: 4px solid #ff9800; padding: 0.75rem 1rem; border-radius: 4px; margin: 0.75rem 0; }
  table { width: 100%; border-collapse: collapse; margin: 1rem 0; }
  th, td { text-align: left; padding: 0.5rem 0.75rem; border-bottom: 1px solid #0f3460; }
  th { color: #e94560; }
  img.chart { width: 100%; border-radius: 8px; margin: 1rem 0; }
  .rec { margin: 0.75rem 0; }
  .impact-high { color: #e94560; font-weight: 700; }
  .impact-medium { color: #ff9800; }
</style>
</head>
<body>
<div class="container">
  <h1>Sales Analysis Report</h1>
  <p class="meta">Generated {{.Result.GeneratedAt.Format "2006-01-02 15:04:05"}}{{if .Result.Source}} from {{.Result.Source}}{{end}} ({{.Result.RowCount}} rows) &middot; salescope {{.Version}}</p>

  {{if .Result.Quality}}
  <h2>Data Quality</h2>
  <div class="card">
    <div class="score {{.Result.Quality.Color}}">{{.Result.Quality.Score}}/100</div>
    <p>{{.Result.Quality.Comment}}</p>
    {{if .Result.Quality.Issues}}
    <ul>{{range .Result.Quality.Issues}}<li>{{.}}</li>{{end}}</ul>
    {{end}}
  </div>
  {{end}}

  {{if .Result.Forecast}}
  <h2>Revenue Forecast</h2>
  {{if eq .Result.Forecast.PredictionAccuracy "Demo"}}
  <div class="fallback">Not enough history for a real forecast; the figures below are illustrative.</div>
  {{end}}
  <div class="card">
    <table>
      <tr><th>Growth rate</th><td>{{pct .Result.Forecast.GrowthRate}}</td></tr>
      <tr><th>Next month revenue</th><td>{{currency .Result.Forecast.NextMonthRevenue}}</td></tr>
      <tr><th>Prediction accuracy</th><td>{{.Result.Forecast.PredictionAccuracy}}</td></tr>
    </table>
    <p>{{.Result.Forecast.Summary}}</p>
  </div>
  {{if .ForecastChart}}<img class="chart" src="data:image/png;base64,{{.ForecastChart}}" alt="Revenue forecast chart">{{end}}
  {{end}}

  {{if .Result.Segmentation}}
  <h2>Customer Segments</h2>
  <div class="card">
    <table>
      <tr><th>Segment</th><th>Customers</th><th>Avg Revenue</th><th>Avg Purchases</th></tr>
      {{range .Result.Segmentation.Segments}}
      <tr><td>{{.Segment}}</td><td>{{.Count}}</td><td>{{currency .AvgRevenue}}</td><td>{{printf "%.1f" .AvgFrequency}}</td></tr>
      {{end}}
    </table>
  </div>
  {{if .SegmentChart}}<img class="chart" src="data:image/png;base64,{{.SegmentChart}}" alt="Customer segments chart">{{end}}
  {{end}}

  {{if .Result.Patterns}}
  <h2>Product Patterns</h2>
  {{if .Result.Patterns.Fallback}}
  <div class="fallback">Product, date or revenue data was missing; the patterns below are illustrative.</div>
  {{end}}
  {{if .Result.Patterns.Lifecycle}}
  <div class="card">
    <table>
      <tr><th>Product</th><th>Stage</th><th>Confidence</th><th>Revenue</th></tr>
      {{range .Result.Patterns.Lifecycle}}
      <tr><td>{{.Product}}</td><td>{{.Stage}}</td><td>{{.Confidence}}</td><td>{{currency .TotalRevenue}}</td></tr>
      {{end}}
    </table>
  </div>
  {{end}}
  {{if .SeasonalityChart}}<img class="chart" src="data:image/png;base64,{{.SeasonalityChart}}" alt="Weekly sales pattern chart">{{end}}
  {{if .Result.Patterns.Anomalies}}
  <div class="card">
    <table>
      <tr><th>Product</th><th>Date</th><th>Type</th><th>Severity</th><th>Value</th><th>Expected</th></tr>
      {{range .Result.Patterns.Anomalies}}
      <tr><td>{{.Product}}</td><td>{{.Date}}</td><td>{{.Type}}</td><td>{{.Severity}}</td><td>{{currency .Value}}</td><td>{{.ExpectedRange}}</td></tr>
      {{end}}
    </table>
  </div>
  {{end}}
  {{end}}

  {{if .Result.TopProducts}}
  <h2>Top Products</h2>
  <div class="card">
    <table>
      <tr><th>Product</th><th>Revenue</th><th>Units</th></tr>
      {{range .Result.TopProducts.Products}}
      <tr><td>{{.Product}}</td><td>{{currency .Revenue}}</td><td>{{printf "%.0f" .Quantity}}</td></tr>
      {{end}}
    </table>
    <p>Total revenue: <strong>{{currency .Result.TopProducts.TotalRevenue}}</strong></p>
  </div>
  {{end}}

  {{if .Result.Growth}}
  <h2>Growth</h2>
  <div class="card">
    <table>
      <tr><th>Week over week</th><td>{{pct .Result.Growth.WowGrowth}}</td></tr>
      <tr><th>Month over month</th><td>{{pct .Result.Growth.MomGrowth}}</td></tr>
      <tr><th>Best 7-day streak</th><td>{{currency .Result.Growth.BestStreak}} (from {{.Result.Growth.BestStreakDate}})</td></tr>
      <tr><th>Latest daily revenue</th><td>{{currency .Result.Growth.CurrentRevenue}}</td></tr>
    </table>
  </div>
  {{end}}

  {{if .Result.MissedRevenue}}{{if .Result.MissedRevenue.Count}}
  <h2>Missed Revenue</h2>
  <div class="card">
    <table>
      <tr><th>Product</th><th>Occurrences</th><th>Avg Price</th><th>Potential</th></tr>
      {{range .Result.MissedRevenue.Opportunities}}
      <tr><td>{{.Product}}</td><td>{{.MissedSales}}</td><td>{{currency .AvgPrice}}</td><td>{{currency .PotentialRevenue}}</td></tr>
      {{end}}
    </table>
    <p>Total potential: <strong>{{currency .Result.MissedRevenue.TotalMissedRevenue}}</strong></p>
  </div>
  {{end}}{{end}}

  {{if .Result.Recommendations}}
  <h2>Recommendations</h2>
  {{range .Result.Recommendations}}
  <div class="card rec">
    <strong>{{.Title}}</strong>
    <span class="impact-{{if eq .Impact "High"}}high{{else}}medium{{end}}">{{.Impact}} impact</span>
    <p>{{.Recommendation}}</p>
  </div>
  {{end}}
  {{end}}

  <p class="meta">Report generated by salescope</p>
</div>
</body>
</html>
`
