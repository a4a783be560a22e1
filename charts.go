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
	"encoding/base64"
	"fmt"

	charts "github.com/vicanso/go-charts/v2"
)

// ChartGenerator renders the analysis charts embedded in HTML reports
type ChartGenerator struct {
	theme string
}

// NewChartGenerator creates a new chart generator
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{
		theme: "dark", // Match our HTML report dark theme
	}
}

// GenerateForecastChart creates a line chart of daily revenue history plus
// the projection. The projection series is padded with zeros over the
// history range so it starts where history ends.
func (cg *ChartGenerator) GenerateForecastChart(forecast *ForecastResult) (string, error) {
	if forecast == nil || len(forecast.History) == 0 {
		return "", fmt.Errorf("no forecast data available")
	}

	var labels []string
	historyValues := make([]float64, 0, len(forecast.History)+len(forecast.Projection))
	projectionValues := make([]float64, 0, len(forecast.History)+len(forecast.Projection))

	for _, p := range forecast.History {
		labels = append(labels, p.Date.Format("Jan 2"))
		historyValues = append(historyValues, p.Revenue)
		projectionValues = append(projectionValues, 0)
	}
	for _, p := range forecast.Projection {
		labels = append(labels, p.Date.Format("Jan 2"))
		historyValues = append(historyValues, 0)
		projectionValues = append(projectionValues, p.Revenue)
	}

	p, err := charts.LineRender(
		[][]float64{historyValues, projectionValues},
		charts.TitleTextOptionFunc("Revenue Forecast"),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc([]string{"History ($)", "Projection ($)"}, charts.PositionRight),
		charts.ThemeOptionFunc(cg.theme),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render forecast chart: %w", err)
	}

	return chartBase64(p)
}

// GenerateSegmentChart creates a pie chart of customer segment sizes
func (cg *ChartGenerator) GenerateSegmentChart(segmentation *SegmentationResult) (string, error) {
	if segmentation == nil || len(segmentation.Segments) == 0 {
		return "", fmt.Errorf("no segmentation data available")
	}

	var values []float64
	var labels []string
	for _, segment := range segmentation.Segments {
		values = append(values, float64(segment.Count))
		labels = append(labels, segment.Segment)
	}

	p, err := charts.PieRender(
		values,
		charts.TitleTextOptionFunc("Customer Segments"),
		charts.LegendLabelsOptionFunc(labels, charts.PositionRight),
		charts.ThemeOptionFunc(cg.theme),
		charts.WidthOptionFunc(600),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render segment chart: %w", err)
	}

	return chartBase64(p)
}

// GenerateSeasonalityChart creates a bar chart of the weekly revenue pattern
func (cg *ChartGenerator) GenerateSeasonalityChart(seasonality *SeasonalityResult) (string, error) {
	if seasonality == nil || len(seasonality.WeeklyPattern) == 0 {
		return "", fmt.Errorf("no seasonality data available")
	}

	var values []float64
	var labels []string
	for _, day := range weekdayOrder {
		ratio, ok := seasonality.WeeklyPattern[day]
		if !ok {
			continue
		}
		values = append(values, ratio)
		labels = append(labels, day[:3])
	}

	p, err := charts.BarRender(
		[][]float64{values},
		charts.TitleTextOptionFunc("Weekly Sales Pattern"),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc([]string{"Relative revenue"}, charts.PositionRight),
		charts.ThemeOptionFunc(cg.theme),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render seasonality chart: %w", err)
	}

	return chartBase64(p)
}

// chartBase64 converts a rendered chart to base64 for HTML embedding
func chartBase64(p *charts.Painter) (string, error) {
	buf, err := p.Bytes()
	if err != nil {
		return "", fmt.Errorf("failed to generate chart bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
