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

// All illustrative fallback payloads live in this file so the fixed numbers
// are not scattered across components. Every payload is structurally
// identical to the real output of its component; callers can detect a
// fallback by the documented marker values (e.g. PredictionAccuracy
// "Demo"), never by shape.

package main

import "time"

// ExampleForecast is the deterministic demo forecast returned when there
// are not enough distinct days for a real trend fit
func ExampleForecast(now time.Time) *ForecastResult {
	today := now.Truncate(24 * time.Hour)

	history := make([]DailyRevenuePoint, 30)
	for i := range history {
		history[i] = DailyRevenuePoint{
			Date:    today.AddDate(0, 0, i-30),
			Revenue: 5000 + float64(i)*50,
		}
	}

	last := history[len(history)-1].Revenue
	projection := make([]DailyRevenuePoint, 30)
	for i := range projection {
		projection[i] = DailyRevenuePoint{
			Date:    today.AddDate(0, 0, i+1),
			Revenue: last + float64(i+1)*60,
		}
	}

	return &ForecastResult{
		GrowthRate:         12.5,
		NextMonthRevenue:   45000,
		PredictionAccuracy: "Demo",
		History:            history,
		Projection:         projection,
		Summary:            "Sales expected to grow by 8-12% over next 30 days",
	}
}

// ExampleLifecycle is the illustrative lifecycle output used when product,
// date or revenue is missing
func ExampleLifecycle() []ProductLifecycle {
	return []ProductLifecycle{
		{Product: "Laptop", Stage: StageMature, Confidence: "High", TrendValue: 0.05, TotalRevenue: 12000},
		{Product: "Mouse", Stage: StageGrowth, Confidence: "Medium", TrendValue: 0.35, TotalRevenue: 1800},
		{Product: "Monitor", Stage: StageDecline, Confidence: "Medium", TrendValue: -0.25, TotalRevenue: 3200},
	}
}

// ExampleSeasonality is the illustrative weekly pattern
func ExampleSeasonality() *SeasonalityResult {
	return &SeasonalityResult{
		WeeklyPattern: map[string]float64{
			"Monday": 0.85, "Tuesday": 0.92, "Wednesday": 1.05,
			"Thursday": 1.15, "Friday": 1.25, "Saturday": 1.35, "Sunday": 0.75,
		},
		PeakDay:             "Saturday",
		LowDay:              "Sunday",
		SeasonalityStrength: 0.35,
	}
}

// ExampleAnomalies is the illustrative anomaly list
func ExampleAnomalies() []Anomaly {
	return []Anomaly{
		{
			Product:          "Wireless Headphones",
			Type:             "drop",
			Severity:         "high",
			Value:            45.0,
			ExpectedRange:    "$120.00 - $180.00",
			DeviationPercent: 65.0,
		},
		{
			Product:          "Gaming Mouse",
			Type:             "spike",
			Severity:         "medium",
			Value:            250.0,
			ExpectedRange:    "$80.00 - $150.00",
			DeviationPercent: 85.0,
		},
	}
}

// ExampleGrowthMetrics is the illustrative growth snapshot used below the
// two-week minimum
func ExampleGrowthMetrics() *GrowthMetrics {
	return &GrowthMetrics{
		WowGrowth:      12.5,
		MomGrowth:      8.3,
		BestStreak:     8450.0,
		BestStreakDate: "2024-01-15",
		Sparkline: []float64{
			800, 950, 1200, 1100, 1300, 1450, 1380,
			1520, 1600, 1750, 1680, 1820, 1950, 2100,
		},
		CurrentRevenue: 2100.0,
	}
}

// ExampleTimeAnalysis is the illustrative best-selling-time result
func ExampleTimeAnalysis() *TimeAnalysisResult {
	return &TimeAnalysisResult{
		BestDay: "Saturday",
		DayRevenue: map[string]float64{
			"Monday": 8500, "Tuesday": 12000, "Wednesday": 9500,
			"Thursday": 11000, "Friday": 15000, "Saturday": 18000, "Sunday": 7500,
		},
		Recommendation: "Consider running promotions on Saturdays",
	}
}

// ExampleTopProducts is the illustrative top-products list
func ExampleTopProducts() *TopProductsResult {
	products := []ProductRevenue{
		{Product: "Laptop", Revenue: 15000, Quantity: 25},
		{Product: "Monitor", Revenue: 8500, Quantity: 18},
		{Product: "Keyboard", Revenue: 3200, Quantity: 45},
	}
	return &TopProductsResult{
		Products:     products,
		TotalRevenue: 26700,
	}
}
