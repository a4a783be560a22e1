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
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// saleRow builds a normalized row with derived revenue
func saleRow(product string, qty, price float64, date time.Time, customer string) NormalizedRow {
	revenue := qty * price
	return NormalizedRow{
		Product:  product,
		Quantity: &qty,
		Price:    &price,
		Revenue:  &revenue,
		Date:     &date,
		Customer: customer,
	}
}

func defaultTestConfig() *Config {
	config, err := LoadConfig("")
	if err != nil {
		panic(err)
	}
	return config
}

func TestForecastDemoFallback(t *testing.T) {
	rows := []NormalizedRow{
		saleRow("Widget", 1, 10, day("2024-01-01"), "c1"),
		saleRow("Widget", 2, 10, day("2024-01-01"), "c2"),
		saleRow("Gadget", 1, 20, day("2024-01-02"), "c1"),
	}

	f := NewForecaster(defaultTestConfig(), testLogger())
	f.now = func() time.Time { return day("2024-02-01") }

	result := f.Forecast(&Dataset{Rows: rows})
	if result.PredictionAccuracy != "Demo" {
		t.Fatalf("got accuracy %q, want Demo", result.PredictionAccuracy)
	}
	if result.GrowthRate != 12.5 {
		t.Fatalf("got growth %v, want 12.5", result.GrowthRate)
	}
	if result.NextMonthRevenue != 45000 {
		t.Fatalf("got next month revenue %v, want 45000", result.NextMonthRevenue)
	}
	if len(result.History) != 30 || len(result.Projection) != 30 {
		t.Fatalf("got %d history and %d projection points, want 30 each",
			len(result.History), len(result.Projection))
	}
}

func TestForecastLinearTrend(t *testing.T) {
	var rows []NormalizedRow
	start := day("2024-01-01")
	for i := 0; i < 10; i++ {
		rows = append(rows, saleRow("Widget", 1, 100+float64(i)*10, start.AddDate(0, 0, i), "c1"))
	}

	f := NewForecaster(defaultTestConfig(), testLogger())
	result := f.Forecast(&Dataset{Rows: rows})

	if result.PredictionAccuracy != "Moderate" {
		t.Fatalf("got accuracy %q, want Moderate", result.PredictionAccuracy)
	}
	if len(result.Projection) != 30 {
		t.Fatalf("got %d projection points, want 30", len(result.Projection))
	}
	if result.GrowthRate <= 0 {
		t.Fatalf("rising trend: got growth %v, want positive", result.GrowthRate)
	}
	if len(result.History) != 10 {
		t.Fatalf("got %d history points, want 10", len(result.History))
	}

	// Projection continues day by day after the last observed date
	first := result.Projection[0].Date
	if want := day("2024-01-11"); !first.Equal(want) {
		t.Fatalf("got first projected date %v, want %v", first, want)
	}
}

func TestForecastHighAccuracy(t *testing.T) {
	var rows []NormalizedRow
	start := day("2024-01-01")
	for i := 0; i < 25; i++ {
		rows = append(rows, saleRow("Widget", 1, 100, start.AddDate(0, 0, i), "c1"))
	}

	f := NewForecaster(defaultTestConfig(), testLogger())
	result := f.Forecast(&Dataset{Rows: rows})

	if result.PredictionAccuracy != "High" {
		t.Fatalf("got accuracy %q, want High", result.PredictionAccuracy)
	}
}

func TestForecastZeroRevenueGuard(t *testing.T) {
	var rows []NormalizedRow
	start := day("2024-01-01")
	for i := 0; i < 10; i++ {
		rows = append(rows, saleRow("Widget", 0, 0, start.AddDate(0, 0, i), "c1"))
	}

	f := NewForecaster(defaultTestConfig(), testLogger())
	result := f.Forecast(&Dataset{Rows: rows})

	if result.GrowthRate != 0 {
		t.Fatalf("got growth %v, want 0 for flat zero revenue", result.GrowthRate)
	}
}

func TestDailyRevenueAggregation(t *testing.T) {
	rows := []NormalizedRow{
		saleRow("Widget", 1, 10, day("2024-01-02"), "c1"),
		saleRow("Gadget", 1, 5, day("2024-01-02"), "c1"),
		saleRow("Widget", 1, 10, day("2024-01-01"), "c1"),
		{Product: "NoDate"},
	}

	series := dailyRevenue(rows)
	if len(series) != 2 {
		t.Fatalf("got %d points, want 2", len(series))
	}
	if !series[0].Date.Before(series[1].Date) {
		t.Fatal("series not sorted ascending")
	}
	if !almostEqual(series[1].Revenue, 15) {
		t.Fatalf("got %v, want 15", series[1].Revenue)
	}
}
