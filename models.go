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
	"time"
)

// Table is the raw rectangular payload parsed from an uploaded file.
// Cells are kept as strings until the normalizer types them.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// FieldMapping records which raw column was chosen for a canonical field
type FieldMapping struct {
	Column     string  `json:"column"`
	Confidence float64 `json:"confidence"`
}

// DateFormatInfo describes the detected date format of the mapped date column
type DateFormatInfo struct {
	Layout     string  `json:"layout"`
	Confidence float64 `json:"confidence"`
	Parseable  bool    `json:"parseable"`
}

// NormalizedRow is one row of the dataset after schema normalization.
// Nil pointers mark values that did not parse; Revenue is set only when
// both Quantity and Price parsed.
type NormalizedRow struct {
	Product  string     `json:"product,omitempty"`
	Quantity *float64   `json:"quantity,omitempty"`
	Price    *float64   `json:"price,omitempty"`
	Revenue  *float64   `json:"revenue,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	Customer string     `json:"customer"`
}

// Dataset is the normalized, immutable snapshot built once per request
type Dataset struct {
	Rows        []NormalizedRow         `json:"rows"`
	Mapping     map[string]FieldMapping `json:"mapping"`
	Suggestions map[string][]string     `json:"suggestions,omitempty"`
	Errors      []string                `json:"errors,omitempty"`
	DateFormat  *DateFormatInfo         `json:"date_format,omitempty"`
	Raw         *Table                  `json:"-"`
}

// HasField reports whether a canonical field was mapped
func (d *Dataset) HasField(field string) bool {
	_, ok := d.Mapping[field]
	return ok
}

// CustomerFeatureVector holds the per-customer RFM features used for
// segmentation
type CustomerFeatureVector struct {
	Customer      string  `json:"customer"`
	TotalRevenue  float64 `json:"total_revenue"`
	AvgRevenue    float64 `json:"avg_revenue"`
	Frequency     int     `json:"frequency"`
	Recency       int     `json:"recency"`
	TotalQuantity float64 `json:"total_quantity"`
	Segment       string  `json:"segment,omitempty"`
}

// SegmentSummary describes one of the three customer segments
type SegmentSummary struct {
	Segment      string  `json:"segment"`
	Count        int     `json:"count"`
	AvgRevenue   float64 `json:"avg_revenue"`
	AvgFrequency float64 `json:"avg_frequency"`
}

// SegmentationResult holds the full segmentation output
type SegmentationResult struct {
	Segments        []SegmentSummary        `json:"segments"`
	SampleCustomers []CustomerFeatureVector `json:"sample_customers"`
}

// DailyRevenuePoint is one point of the daily revenue series
type DailyRevenuePoint struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
}

// ForecastResult holds the revenue trend projection
type ForecastResult struct {
	GrowthRate         float64             `json:"growth_rate"`
	NextMonthRevenue   float64             `json:"next_month_revenue"`
	PredictionAccuracy string              `json:"prediction_accuracy"`
	History            []DailyRevenuePoint `json:"history"`
	Projection         []DailyRevenuePoint `json:"projection"`
	Summary            string              `json:"summary"`
}

// ProductLifecycle classifies a product's sales trajectory
type ProductLifecycle struct {
	Product      string  `json:"product"`
	Stage        string  `json:"stage"`
	Confidence   string  `json:"confidence"`
	TrendValue   float64 `json:"trend_value"`
	TotalRevenue float64 `json:"total_revenue"`
}

// SeasonalityResult holds the weekly seasonality pattern
type SeasonalityResult struct {
	WeeklyPattern       map[string]float64 `json:"weekly_pattern"`
	PeakDay             string             `json:"peak_day"`
	LowDay              string             `json:"low_day"`
	SeasonalityStrength float64            `json:"seasonality_strength"`
}

// Anomaly is a statistically unusual daily revenue point for a product
type Anomaly struct {
	Product          string  `json:"product"`
	Date             string  `json:"date"`
	Type             string  `json:"type"`     // "spike" or "drop"
	Severity         string  `json:"severity"` // "medium" or "high"
	Value            float64 `json:"value"`
	ExpectedRange    string  `json:"expected_range"`
	DeviationPercent float64 `json:"deviation_percent"`
}

// PatternResult bundles the three per-product sub-analyses
type PatternResult struct {
	Lifecycle   []ProductLifecycle `json:"lifecycle"`
	Seasonality *SeasonalityResult `json:"seasonality"`
	Anomalies   []Anomaly          `json:"anomalies"`
	Fallback    bool               `json:"fallback"`
}

// QualityStats holds the raw statistics behind the quality score
type QualityStats struct {
	TotalRows    int     `json:"total_rows"`
	TotalColumns int     `json:"total_columns"`
	MissingPct   float64 `json:"missing_pct"`
	DuplicatePct float64 `json:"duplicate_pct"`
	OutlierPct   float64 `json:"outlier_pct"`
}

// QualityReport scores the dataset's data quality from 0 to 100
type QualityReport struct {
	Score   int          `json:"score"`
	Comment string       `json:"comment"`
	Color   string       `json:"color"`
	Issues  []string     `json:"issues"`
	Stats   QualityStats `json:"stats"`
}

// ProductRevenue is a product's aggregate revenue and quantity
type ProductRevenue struct {
	Product  string  `json:"product"`
	Revenue  float64 `json:"revenue"`
	Quantity float64 `json:"quantity"`
}

// TopProductsResult lists the best performing products by revenue
type TopProductsResult struct {
	Products     []ProductRevenue `json:"products"`
	TotalRevenue float64          `json:"total_revenue"`
}

// TimeAnalysisResult identifies the strongest selling weekday
type TimeAnalysisResult struct {
	BestDay        string             `json:"best_day"`
	DayRevenue     map[string]float64 `json:"day_revenue"`
	Recommendation string             `json:"recommendation"`
}

// GrowthMetrics holds week-over-week and month-over-month revenue growth
type GrowthMetrics struct {
	WowGrowth      float64   `json:"wow_growth"`
	MomGrowth      float64   `json:"mom_growth"`
	BestStreak     float64   `json:"best_streak"`
	BestStreakDate string    `json:"best_streak_date"`
	Sparkline      []float64 `json:"sparkline"`
	CurrentRevenue float64   `json:"current_revenue"`
}

// MissedOpportunity is a product with listed price but zero quantity sold
type MissedOpportunity struct {
	Product          string  `json:"product"`
	MissedSales      int     `json:"missed_sales"`
	AvgPrice         float64 `json:"avg_price"`
	PotentialRevenue float64 `json:"potential_revenue"`
}

// MissedOpportunitiesResult aggregates missed revenue across products
type MissedOpportunitiesResult struct {
	Opportunities      []MissedOpportunity `json:"opportunities"`
	TotalMissedRevenue float64             `json:"total_missed_revenue"`
	Count              int                 `json:"count"`
}

// Recommendation is one deterministic, ranked action item
type Recommendation struct {
	Type           string `json:"type"`
	Title          string `json:"title"`
	Recommendation string `json:"recommendation"`
	Impact         string `json:"impact"`
}

// AnalysisResult is the merged output of one engine invocation
type AnalysisResult struct {
	GeneratedAt     time.Time                  `json:"generated_at"`
	Source          string                     `json:"source,omitempty"`
	Mapping         map[string]FieldMapping    `json:"mapping"`
	RowCount        int                        `json:"row_count"`
	Quality         *QualityReport             `json:"quality,omitempty"`
	Forecast        *ForecastResult            `json:"forecast,omitempty"`
	Segmentation    *SegmentationResult        `json:"segmentation,omitempty"`
	Patterns        *PatternResult             `json:"patterns,omitempty"`
	TopProducts     *TopProductsResult         `json:"top_products,omitempty"`
	TimeAnalysis    *TimeAnalysisResult        `json:"time_analysis,omitempty"`
	Growth          *GrowthMetrics             `json:"growth,omitempty"`
	MissedRevenue   *MissedOpportunitiesResult `json:"missed_revenue,omitempty"`
	Recommendations []Recommendation           `json:"recommendations"`
	ComponentErrors map[string]string          `json:"component_errors,omitempty"`
}
