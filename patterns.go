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

// PatternDetector finds product lifecycles, weekly seasonality and
// per-product anomalies in the normalized rows
type PatternDetector struct {
	config *Config
	logger *Logger
}

// NewPatternDetector creates a new pattern detector
func NewPatternDetector(config *Config, logger *Logger) *PatternDetector {
	return &PatternDetector{
		config: config,
		logger: logger,
	}
}

// Detect runs all three pattern analyses. When product, date or revenue
// cannot be derived it returns the illustrative payloads with the Fallback
// flag set so the caller can label the output.
func (p *PatternDetector) Detect(ds *Dataset) *PatternResult {
	hasRevenue := ds.HasField(FieldQuantity) && ds.HasField(FieldPrice)
	if !ds.HasField(FieldProduct) || !ds.HasField(FieldDate) || !hasRevenue {
		p.logger.LogFallback(&DataError{
			Component: "patterns",
			Message:   "product, date or revenue not available",
		})
		return &PatternResult{
			Lifecycle:   ExampleLifecycle(),
			Seasonality: ExampleSeasonality(),
			Anomalies:   ExampleAnomalies(),
			Fallback:    true,
		}
	}

	return &PatternResult{
		Lifecycle:   p.detectLifecycle(ds),
		Seasonality: p.detectSeasonality(ds),
		Anomalies:   p.detectAnomalies(ds),
	}
}

// productSeries maps each product to its ascending daily revenue series
func productSeries(rows []NormalizedRow) map[string][]DailyRevenuePoint {
	byProduct := make(map[string]map[time.Time]float64)
	for _, row := range rows {
		if row.Product == "" || row.Date == nil || row.Revenue == nil {
			continue
		}
		daily, ok := byProduct[row.Product]
		if !ok {
			daily = make(map[time.Time]float64)
			byProduct[row.Product] = daily
		}
		daily[*row.Date] += *row.Revenue
	}

	series := make(map[string][]DailyRevenuePoint, len(byProduct))
	for product, daily := range byProduct {
		points := make([]DailyRevenuePoint, 0, len(daily))
		for date, revenue := range daily {
			points = append(points, DailyRevenuePoint{Date: date, Revenue: revenue})
		}
		sort.Slice(points, func(i, j int) bool {
			return points[i].Date.Before(points[j].Date)
		})
		series[product] = points
	}
	return series
}

// detectLifecycle stages each product by comparing the mean of its last
// three daily points against the mean of its first three. Products with
// fewer than three points are still in Launch.
func (p *PatternDetector) detectLifecycle(ds *Dataset) []ProductLifecycle {
	series := productSeries(ds.Rows)

	lifecycle := make([]ProductLifecycle, 0, len(series))
	for product, points := range series {
		total := 0.0
		for _, pt := range points {
			total += pt.Revenue
		}

		if len(points) < 3 {
			lifecycle = append(lifecycle, ProductLifecycle{
				Product:      product,
				Stage:        StageLaunch,
				Confidence:   "Low",
				TotalRevenue: total,
			})
			continue
		}

		first := make([]float64, 3)
		last := make([]float64, 3)
		for i := 0; i < 3; i++ {
			first[i] = points[i].Revenue
			last[i] = points[len(points)-3+i].Revenue
		}
		firstMean := calculateMean(first)
		lastMean := calculateMean(last)

		trend := 0.0
		if firstMean != 0 {
			trend = (lastMean - firstMean) / firstMean
		}

		stage := StageDecline
		switch {
		case trend > 0.2:
			stage = StageGrowth
		case trend > -0.1:
			stage = StageMature
		}

		confidence := "Medium"
		if len(points) > 10 {
			confidence = "High"
		}

		lifecycle = append(lifecycle, ProductLifecycle{
			Product:      product,
			Stage:        stage,
			Confidence:   confidence,
			TrendValue:   roundTo(trend, 3),
			TotalRevenue: roundTo(total, 2),
		})
	}

	sort.Slice(lifecycle, func(i, j int) bool {
		if lifecycle[i].TotalRevenue != lifecycle[j].TotalRevenue {
			return lifecycle[i].TotalRevenue > lifecycle[j].TotalRevenue
		}
		return lifecycle[i].Product < lifecycle[j].Product
	})
	return lifecycle
}

// detectSeasonality computes each weekday's mean row revenue relative to
// the overall mean. Strength is the coefficient of variation of the weekday
// means.
func (p *PatternDetector) detectSeasonality(ds *Dataset) *SeasonalityResult {
	sums := make(map[string]float64, 7)
	counts := make(map[string]int, 7)
	var all []float64

	for _, row := range ds.Rows {
		if row.Date == nil || row.Revenue == nil {
			continue
		}
		day := row.Date.Weekday().String()
		sums[day] += *row.Revenue
		counts[day]++
		all = append(all, *row.Revenue)
	}

	overallMean := calculateMean(all)

	pattern := make(map[string]float64, 7)
	var dayMeans []float64
	peakDay, lowDay := "", ""
	peakVal, lowVal := math.Inf(-1), math.Inf(1)

	for _, day := range weekdayOrder {
		if counts[day] == 0 {
			continue
		}
		mean := sums[day] / float64(counts[day])
		dayMeans = append(dayMeans, mean)

		ratio := 0.0
		if overallMean != 0 {
			ratio = mean / overallMean
		}
		pattern[day] = roundTo(ratio, 2)

		if mean > peakVal {
			peakVal = mean
			peakDay = day
		}
		if mean < lowVal {
			lowVal = mean
			lowDay = day
		}
	}

	strength := 0.0
	if mean := calculateMean(dayMeans); mean != 0 {
		strength = calculateStdDev(dayMeans, mean) / mean
	}

	return &SeasonalityResult{
		WeeklyPattern:       pattern,
		PeakDay:             peakDay,
		LowDay:              lowDay,
		SeasonalityStrength: roundTo(strength, 3),
	}
}

// detectAnomalies flags daily revenue points outside each product's IQR
// bounds. Only products with enough daily points are considered; the most
// deviant anomalies across all products are kept.
func (p *PatternDetector) detectAnomalies(ds *Dataset) []Anomaly {
	series := productSeries(ds.Rows)

	var anomalies []Anomaly
	for product, points := range series {
		if len(points) < p.config.MinAnomalyPoints {
			continue
		}

		values := make([]float64, len(points))
		for i, pt := range points {
			values[i] = pt.Revenue
		}
		lower, upper, _, _ := iqrBounds(values)
		median := calculateMedian(values)
		mean := calculateMean(values)
		std := calculateStdDev(values, mean)

		for i, v := range values {
			if v >= lower && v <= upper {
				continue
			}

			kind := "spike"
			if v < lower {
				kind = "drop"
			}

			severity := "medium"
			if math.Abs(v-median) > 2*std {
				severity = "high"
			}

			deviation := 0.0
			if median != 0 {
				deviation = math.Abs(v-median) / median * 100
			}

			anomaly := Anomaly{
				Product:          product,
				Date:             points[i].Date.Format("2006-01-02"),
				Type:             kind,
				Severity:         severity,
				Value:            roundTo(v, 2),
				ExpectedRange:    fmt.Sprintf("$%.2f - $%.2f", lower, upper),
				DeviationPercent: roundTo(deviation, 1),
			}
			anomalies = append(anomalies, anomaly)
			p.logger.LogAnomalyDetected(product, anomaly.Date, kind, anomaly.DeviationPercent)
		}
	}

	sort.Slice(anomalies, func(i, j int) bool {
		if anomalies[i].DeviationPercent != anomalies[j].DeviationPercent {
			return anomalies[i].DeviationPercent > anomalies[j].DeviationPercent
		}
		return anomalies[i].Product < anomalies[j].Product
	})

	if len(anomalies) > p.config.MaxAnomalies {
		anomalies = anomalies[:p.config.MaxAnomalies]
	}
	return anomalies
}
