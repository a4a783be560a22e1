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
	"io"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
)

// Reporter generates markdown reports from analysis results
type Reporter struct {
	logger *Logger
}

// NewReporter creates a new report generator
func NewReporter(logger *Logger) *Reporter {
	return &Reporter{
		logger: logger,
	}
}

// GenerateReport creates a markdown report from analysis results
func (r *Reporter) GenerateReport(result *AnalysisResult, outputPath string) error {
	r.logger.Info("Generating report")

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

	r.writeHeader(writer, result)
	r.writeMapping(writer, result)
	r.writeQuality(writer, result)
	r.writeForecast(writer, result)
	r.writeSegmentation(writer, result)
	r.writePatterns(writer, result)
	r.writeTopProducts(writer, result)
	r.writeGrowth(writer, result)
	r.writeMissedRevenue(writer, result)
	r.writeRecommendations(writer, result)
	r.writeComponentErrors(writer, result)
	r.writeFooter(writer)

	if outputPath != "" {
		r.logger.Info("Report saved", "path", outputPath)
	}

	return nil
}

// writeHeader writes the report header
func (r *Reporter) writeHeader(w io.Writer, result *AnalysisResult) {
	fmt.Fprintf(w, "# Sales Analysis Report\n\n")
	fmt.Fprintf(w, "**Generated:** %s\n\n", result.GeneratedAt.Format("2006-01-02 15:04:05"))
	if result.Source != "" {
		fmt.Fprintf(w, "**Source:** %s (%d rows)\n\n", result.Source, result.RowCount)
	} else {
		fmt.Fprintf(w, "**Rows analyzed:** %d\n\n", result.RowCount)
	}
	fmt.Fprintf(w, "**salescope version:** %s\n\n", GetVersion())
	fmt.Fprintf(w, "---\n\n")
}

// writeMapping writes the resolved column mapping section
func (r *Reporter) writeMapping(w io.Writer, result *AnalysisResult) {
	if len(result.Mapping) == 0 {
		return
	}

	fmt.Fprintf(w, "## 🗺️ Column Mapping\n\n")
	fmt.Fprintf(w, "| Field | Column | Confidence |\n")
	fmt.Fprintf(w, "|-------|--------|------------|\n")

	fields := make([]string, 0, len(result.Mapping))
	for field := range result.Mapping {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		mapping := result.Mapping[field]
		fmt.Fprintf(w, "| %s | %s | %.0f%% |\n", field, mapping.Column, mapping.Confidence*100)
	}
	fmt.Fprintf(w, "\n")
}

// writeQuality writes the data quality section
func (r *Reporter) writeQuality(w io.Writer, result *AnalysisResult) {
	quality := result.Quality
	if quality == nil {
		return
	}

	indicator := "✅"
	switch quality.Color {
	case "warning":
		indicator = "⚡"
	case "danger":
		indicator = "⚠️"
	}

	fmt.Fprintf(w, "## 🔍 Data Quality\n\n")
	fmt.Fprintf(w, "**Score:** %s %d/100\n\n", indicator, quality.Score)
	fmt.Fprintf(w, "> %s\n\n", quality.Comment)

	fmt.Fprintf(w, "| Metric | Value |\n")
	fmt.Fprintf(w, "|--------|-------|\n")
	fmt.Fprintf(w, "| Rows | %d |\n", quality.Stats.TotalRows)
	fmt.Fprintf(w, "| Columns | %d |\n", quality.Stats.TotalColumns)
	fmt.Fprintf(w, "| Missing cells | %.1f%% |\n", quality.Stats.MissingPct)
	fmt.Fprintf(w, "| Duplicate rows | %.1f%% |\n", quality.Stats.DuplicatePct)
	fmt.Fprintf(w, "| Outlier rows | %.1f%% |\n", quality.Stats.OutlierPct)
	fmt.Fprintf(w, "\n")

	if len(quality.Issues) > 0 {
		fmt.Fprintf(w, "**Issues found:**\n\n")
		for _, issue := range quality.Issues {
			fmt.Fprintf(w, "- %s\n", issue)
		}
		fmt.Fprintf(w, "\n")
	}
}

// writeForecast writes the revenue forecast section
func (r *Reporter) writeForecast(w io.Writer, result *AnalysisResult) {
	forecast := result.Forecast
	if forecast == nil {
		return
	}

	fmt.Fprintf(w, "## 📈 Revenue Forecast\n\n")

	if forecast.PredictionAccuracy == "Demo" {
		fmt.Fprintf(w, "> ⚠️ Not enough history for a real forecast; the figures below are illustrative.\n\n")
	}

	trendIndicator := "↗️"
	if forecast.GrowthRate < 0 {
		trendIndicator = "↘️"
	}

	fmt.Fprintf(w, "| Metric | Value |\n")
	fmt.Fprintf(w, "|--------|-------|\n")
	fmt.Fprintf(w, "| %s Growth rate | %.1f%% |\n", trendIndicator, forecast.GrowthRate)
	fmt.Fprintf(w, "| 💰 Next month revenue | %s |\n", FormatCurrency(forecast.NextMonthRevenue))
	fmt.Fprintf(w, "| 🎯 Prediction accuracy | %s |\n", forecast.PredictionAccuracy)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "> %s\n\n", forecast.Summary)
}

// writeSegmentation writes the customer segments section
func (r *Reporter) writeSegmentation(w io.Writer, result *AnalysisResult) {
	segmentation := result.Segmentation
	if segmentation == nil {
		return
	}

	fmt.Fprintf(w, "## 👥 Customer Segments\n\n")
	fmt.Fprintf(w, "| Segment | Customers | Avg Revenue | Avg Purchases |\n")
	fmt.Fprintf(w, "|---------|-----------|-------------|---------------|\n")
	for _, segment := range segmentation.Segments {
		fmt.Fprintf(w, "| %s | %d | %s | %.1f |\n",
			segment.Segment,
			segment.Count,
			FormatCurrency(segment.AvgRevenue),
			segment.AvgFrequency,
		)
	}
	fmt.Fprintf(w, "\n")
}

// writePatterns writes the lifecycle, seasonality and anomaly sections
func (r *Reporter) writePatterns(w io.Writer, result *AnalysisResult) {
	patterns := result.Patterns
	if patterns == nil {
		return
	}

	fmt.Fprintf(w, "## 🔄 Product Patterns\n\n")

	if patterns.Fallback {
		fmt.Fprintf(w, "> ⚠️ Product, date or revenue data was missing; the patterns below are illustrative.\n\n")
	}

	if len(patterns.Lifecycle) > 0 {
		fmt.Fprintf(w, "### Product Lifecycle\n\n")
		fmt.Fprintf(w, "| Product | Stage | Confidence | Revenue |\n")
		fmt.Fprintf(w, "|---------|-------|------------|--------|\n")
		for _, lc := range patterns.Lifecycle {
			stageIndicator := stageEmoji(lc.Stage)
			fmt.Fprintf(w, "| %s | %s %s | %s | %s |\n",
				lc.Product, stageIndicator, lc.Stage, lc.Confidence, FormatCurrency(lc.TotalRevenue))
		}
		fmt.Fprintf(w, "\n")
	}

	if patterns.Seasonality != nil && patterns.Seasonality.PeakDay != "" {
		s := patterns.Seasonality
		fmt.Fprintf(w, "### Weekly Pattern\n\n")
		fmt.Fprintf(w, "**Peak day:** %s | **Slowest day:** %s | **Strength:** %.2f\n\n",
			s.PeakDay, s.LowDay, s.SeasonalityStrength)
	}

	if len(patterns.Anomalies) > 0 {
		fmt.Fprintf(w, "### ⚠️ Anomalies\n\n")
		fmt.Fprintf(w, "| Product | Date | Type | Severity | Value | Expected |\n")
		fmt.Fprintf(w, "|---------|------|------|----------|-------|----------|\n")
		for _, a := range patterns.Anomalies {
			typeIndicator := "📈"
			if a.Type == "drop" {
				typeIndicator = "📉"
			}
			fmt.Fprintf(w, "| %s | %s | %s %s | %s | %s | %s |\n",
				a.Product, a.Date, typeIndicator, a.Type, a.Severity,
				FormatCurrency(a.Value), a.ExpectedRange)
		}
		fmt.Fprintf(w, "\n")
	}
}

// writeTopProducts writes the top products section
func (r *Reporter) writeTopProducts(w io.Writer, result *AnalysisResult) {
	top := result.TopProducts
	if top == nil || len(top.Products) == 0 {
		return
	}

	fmt.Fprintf(w, "## 🏆 Top Products\n\n")
	fmt.Fprintf(w, "| Rank | Product | Revenue | Units |\n")
	fmt.Fprintf(w, "|------|---------|---------|-------|\n")
	medals := []string{"🥇", "🥈", "🥉"}
	for i, product := range top.Products {
		medal := fmt.Sprintf("%d", i+1)
		if i < len(medals) {
			medal = medals[i]
		}
		fmt.Fprintf(w, "| %s | %s | %s | %.0f |\n",
			medal, product.Product, FormatCurrency(product.Revenue), product.Quantity)
	}
	fmt.Fprintf(w, "\n**Total revenue:** %s\n\n", FormatCurrency(top.TotalRevenue))
}

// writeGrowth writes the growth metrics and best selling time sections
func (r *Reporter) writeGrowth(w io.Writer, result *AnalysisResult) {
	if result.Growth != nil {
		growth := result.Growth
		fmt.Fprintf(w, "## 🚀 Growth\n\n")
		fmt.Fprintf(w, "| Metric | Value |\n")
		fmt.Fprintf(w, "|--------|-------|\n")
		fmt.Fprintf(w, "| Week over week | %+.1f%% |\n", growth.WowGrowth)
		fmt.Fprintf(w, "| Month over month | %+.1f%% |\n", growth.MomGrowth)
		fmt.Fprintf(w, "| Best 7-day streak | %s (from %s) |\n",
			FormatCurrency(growth.BestStreak), growth.BestStreakDate)
		fmt.Fprintf(w, "| Latest daily revenue | %s |\n", FormatCurrency(growth.CurrentRevenue))
		fmt.Fprintf(w, "\n")
	}

	if result.TimeAnalysis != nil {
		fmt.Fprintf(w, "### 🕐 Best Selling Time\n\n")
		fmt.Fprintf(w, "**%s** is your strongest day. %s.\n\n",
			result.TimeAnalysis.BestDay, result.TimeAnalysis.Recommendation)
	}
}

// writeMissedRevenue writes the missed opportunities section
func (r *Reporter) writeMissedRevenue(w io.Writer, result *AnalysisResult) {
	missed := result.MissedRevenue
	if missed == nil || missed.Count == 0 {
		return
	}

	fmt.Fprintf(w, "## 💸 Missed Revenue\n\n")
	fmt.Fprintf(w, "Products listed with a price but zero units sold:\n\n")
	fmt.Fprintf(w, "| Product | Occurrences | Avg Price | Potential |\n")
	fmt.Fprintf(w, "|---------|-------------|-----------|----------|\n")
	for _, opp := range missed.Opportunities {
		fmt.Fprintf(w, "| %s | %d | %s | %s |\n",
			opp.Product, opp.MissedSales,
			FormatCurrency(opp.AvgPrice), FormatCurrency(opp.PotentialRevenue))
	}
	fmt.Fprintf(w, "\n**Total potential:** %s\n\n", FormatCurrency(missed.TotalMissedRevenue))
}

// writeRecommendations writes the recommendations section
func (r *Reporter) writeRecommendations(w io.Writer, result *AnalysisResult) {
	if len(result.Recommendations) == 0 {
		return
	}

	fmt.Fprintf(w, "## 💡 Recommendations\n\n")
	for i, rec := range result.Recommendations {
		impactIndicator := "⚡"
		if rec.Impact == "High" {
			impactIndicator = "🔥"
		}
		fmt.Fprintf(w, "%d. **%s** %s\n", i+1, rec.Title, impactIndicator)
		fmt.Fprintf(w, "   %s\n\n", rec.Recommendation)
	}
}

// writeComponentErrors writes any skipped component notes
func (r *Reporter) writeComponentErrors(w io.Writer, result *AnalysisResult) {
	if len(result.ComponentErrors) == 0 {
		return
	}

	fmt.Fprintf(w, "## ⚠️ Skipped Analyses\n\n")

	components := make([]string, 0, len(result.ComponentErrors))
	for component := range result.ComponentErrors {
		components = append(components, component)
	}
	sort.Strings(components)

	for _, component := range components {
		fmt.Fprintf(w, "- **%s**: %s\n", component, result.ComponentErrors[component])
	}
	fmt.Fprintf(w, "\n")
}

// writeFooter writes the report footer
func (r *Reporter) writeFooter(w io.Writer) {
	fmt.Fprintf(w, "---\n\n")
	fmt.Fprintf(w, "*Report generated by salescope*\n")
}

// stageEmoji returns an indicator for a lifecycle stage
func stageEmoji(stage string) string {
	switch stage {
	case StageLaunch:
		return "🚀"
	case StageGrowth:
		return "📈"
	case StageMature:
		return "⚖️"
	default:
		return "📉"
	}
}

// FormatCurrency formats a value as dollars with thousands separators
func FormatCurrency(value float64) string {
	if value < 0 {
		return fmt.Sprintf("-$%s", humanize.FormatFloat("#,###.##", -value))
	}
	return fmt.Sprintf("$%s", humanize.FormatFloat("#,###.##", value))
}
