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
	"math"
	"sort"
	"time"
)

// Forecaster projects the daily revenue trend forward
type Forecaster struct {
	config *Config
	logger *Logger
	now    func() time.Time
}

// NewForecaster creates a new forecaster
func NewForecaster(config *Config, logger *Logger) *Forecaster {
	return &Forecaster{
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// Forecast fits a linear trend to the daily revenue series and projects it
// over the configured horizon. With fewer than the minimum number of
// distinct days it returns the clearly labeled demo fallback
// (PredictionAccuracy "Demo") instead of failing.
func (f *Forecaster) Forecast(ds *Dataset) *ForecastResult {
	series := dailyRevenue(ds.Rows)

	if len(series) < f.config.MinForecastDays {
		f.logger.LogFallback(&DataError{
			Component: "forecast",
			Message:   fmt.Sprintf("need at least %d distinct days, have %d", f.config.MinForecastDays, len(series)),
		})
		return ExampleForecast(f.now())
	}

	// Fit revenue against day offset since series start
	start := series[0].Date
	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, p := range series {
		xs[i] = p.Date.Sub(start).Hours() / 24
		ys[i] = p.Revenue
	}
	slope, intercept := linearFit(xs, ys)

	lastDate := series[len(series)-1].Date
	lastOffset := xs[len(xs)-1]

	projection := make([]DailyRevenuePoint, f.config.ForecastHorizonDays)
	projValues := make([]float64, f.config.ForecastHorizonDays)
	for i := range projection {
		offset := lastOffset + float64(i+1)
		value := intercept + slope*offset
		projection[i] = DailyRevenuePoint{
			Date:    lastDate.AddDate(0, 0, i+1),
			Revenue: value,
		}
		projValues[i] = value
	}

	// Growth compares the projected mean against the last week of history
	recent := series
	if len(recent) > 7 {
		recent = recent[len(recent)-7:]
	}
	recentValues := make([]float64, len(recent))
	for i, p := range recent {
		recentValues[i] = p.Revenue
	}
	recentMean := calculateMean(recentValues)
	projMean := calculateMean(projValues)

	growthRate := 0.0
	if recentMean != 0 {
		growthRate = (projMean - recentMean) / recentMean * 100
	}
	if math.IsNaN(growthRate) || math.IsInf(growthRate, 0) {
		growthRate = 0
	}

	accuracy := "Moderate"
	if len(series) >= highAccuracyDays {
		accuracy = "High"
	}

	summary := fmt.Sprintf("Sales expected to grow by %.1f%% over next %d days", growthRate, f.config.ForecastHorizonDays)
	if growthRate < 0 {
		summary = fmt.Sprintf("Sales expected to decline by %.1f%% over next %d days", -growthRate, f.config.ForecastHorizonDays)
	}

	return &ForecastResult{
		GrowthRate:         roundTo(growthRate, 1),
		NextMonthRevenue:   roundTo(projMean*30, 2),
		PredictionAccuracy: accuracy,
		History:            series,
		Projection:         projection,
		Summary:            summary,
	}
}

// dailyRevenue groups rows by calendar day and sums revenue, producing the
// ascending daily series. Rows without a parsed date or derived revenue are
// simply absent; no gaps are filled.
func dailyRevenue(rows []NormalizedRow) []DailyRevenuePoint {
	daily := make(map[time.Time]float64)
	for _, row := range rows {
		if row.Date == nil || row.Revenue == nil {
			continue
		}
		daily[*row.Date] += *row.Revenue
	}

	series := make([]DailyRevenuePoint, 0, len(daily))
	for date, revenue := range daily {
		series = append(series, DailyRevenuePoint{Date: date, Revenue: revenue})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series
}

// roundTo rounds to the given number of decimal places
func roundTo(value float64, places int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
