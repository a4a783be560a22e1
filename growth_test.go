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
)

func TestTopProductsRanking(t *testing.T) {
	rows := []NormalizedRow{
		saleRow("Laptop", 2, 1000, day("2024-01-01"), "c1"),
		saleRow("Mouse", 10, 20, day("2024-01-01"), "c2"),
		saleRow("Monitor", 3, 300, day("2024-01-02"), "c1"),
		saleRow("Cable", 5, 5, day("2024-01-02"), "c3"),
		saleRow("Laptop", 1, 1000, day("2024-01-03"), "c2"),
	}
	ds := &Dataset{Rows: rows, Mapping: fullMapping()}

	result := TopProducts(ds)
	if result == nil {
		t.Fatal("got nil result")
	}
	if len(result.Products) != 3 {
		t.Fatalf("got %d products, want 3", len(result.Products))
	}
	if result.Products[0].Product != "Laptop" {
		t.Fatalf("got top product %q, want Laptop", result.Products[0].Product)
	}
	if !almostEqual(result.Products[0].Revenue, 3000) {
		t.Fatalf("got top revenue %v, want 3000", result.Products[0].Revenue)
	}
	if result.Products[1].Product != "Monitor" {
		t.Fatalf("got second product %q, want Monitor", result.Products[1].Product)
	}

	// Total includes products outside the top three
	if !almostEqual(result.TotalRevenue, 3000+900+200+25) {
		t.Fatalf("got total %v, want %v", result.TotalRevenue, 3000+900+200+25.0)
	}
}

func TestAnalyzeSellingTimesBestDay(t *testing.T) {
	rows := []NormalizedRow{
		saleRow("Widget", 1, 100, day("2024-01-01"), "c1"), // Monday
		saleRow("Widget", 1, 150, day("2024-01-02"), "c1"), // Tuesday
		saleRow("Widget", 1, 500, day("2024-01-06"), "c1"), // Saturday
		saleRow("Widget", 1, 200, day("2024-01-13"), "c1"), // Saturday
	}
	ds := &Dataset{Rows: rows, Mapping: fullMapping()}

	result := AnalyzeSellingTimes(ds)
	if result == nil {
		t.Fatal("got nil result")
	}
	if result.BestDay != "Saturday" {
		t.Fatalf("got best day %q, want Saturday", result.BestDay)
	}
	if result.Recommendation != "Consider running promotions on Saturdays" {
		t.Fatalf("unexpected recommendation %q", result.Recommendation)
	}
	if !almostEqual(result.DayRevenue["Saturday"], 700) {
		t.Fatalf("got Saturday revenue %v, want 700", result.DayRevenue["Saturday"])
	}
}

func TestComputeGrowthMetrics(t *testing.T) {
	var rows []NormalizedRow
	start := day("2024-01-01") // Monday, start of ISO week 1
	for i := 0; i < 28; i++ {
		rows = append(rows, saleRow("Widget", 1, float64(i+1)*10, start.AddDate(0, 0, i), "c1"))
	}
	ds := &Dataset{Rows: rows, Mapping: fullMapping()}

	result := ComputeGrowthMetrics(ds, defaultTestConfig(), testLogger())

	// Week 4 (days 22-28) vs week 3 (days 15-21): (1750-1260)/1260
	if !almostEqual(result.WowGrowth, 38.9) {
		t.Fatalf("got wow %v, want 38.9", result.WowGrowth)
	}
	// Single month in the series
	if result.MomGrowth != 0 {
		t.Fatalf("got mom %v, want 0", result.MomGrowth)
	}
	if !almostEqual(result.BestStreak, 1750) {
		t.Fatalf("got best streak %v, want 1750", result.BestStreak)
	}
	if result.BestStreakDate != "2024-01-22" {
		t.Fatalf("got streak date %q, want 2024-01-22", result.BestStreakDate)
	}
	if !almostEqual(result.CurrentRevenue, 280) {
		t.Fatalf("got current revenue %v, want 280", result.CurrentRevenue)
	}
	if len(result.Sparkline) != 28 {
		t.Fatalf("got %d sparkline points, want 28", len(result.Sparkline))
	}
}

func TestComputeGrowthMetricsFallback(t *testing.T) {
	var rows []NormalizedRow
	start := day("2024-01-01")
	for i := 0; i < 5; i++ {
		rows = append(rows, saleRow("Widget", 1, 100, start.AddDate(0, 0, i), "c1"))
	}
	ds := &Dataset{Rows: rows, Mapping: fullMapping()}

	result := ComputeGrowthMetrics(ds, defaultTestConfig(), testLogger())
	if result.WowGrowth != 12.5 || result.BestStreakDate != "2024-01-15" {
		t.Fatalf("expected illustrative metrics, got %+v", result)
	}
}

func TestFindMissedOpportunities(t *testing.T) {
	rows := []NormalizedRow{
		saleRow("Widget", 0, 50, day("2024-01-01"), "c1"),
		saleRow("Widget", 0, 60, day("2024-01-02"), "c2"),
		saleRow("Widget", 2, 55, day("2024-01-03"), "c1"),
		saleRow("Gadget", 1, 20, day("2024-01-01"), "c3"),
	}
	ds := &Dataset{Rows: rows, Mapping: fullMapping()}

	result := FindMissedOpportunities(ds)
	if result == nil {
		t.Fatal("got nil result")
	}
	if result.Count != 1 {
		t.Fatalf("got %d products, want 1", result.Count)
	}

	opp := result.Opportunities[0]
	if opp.Product != "Widget" {
		t.Fatalf("got product %q, want Widget", opp.Product)
	}
	if opp.MissedSales != 2 {
		t.Fatalf("got %d missed sales, want 2", opp.MissedSales)
	}
	if !almostEqual(opp.AvgPrice, 55) {
		t.Fatalf("got avg price %v, want 55", opp.AvgPrice)
	}
	if !almostEqual(opp.PotentialRevenue, 110) {
		t.Fatalf("got potential %v, want 110", opp.PotentialRevenue)
	}
	if !almostEqual(result.TotalMissedRevenue, 110) {
		t.Fatalf("got total %v, want 110", result.TotalMissedRevenue)
	}
}

func TestFindMissedOpportunitiesNoneFound(t *testing.T) {
	rows := []NormalizedRow{
		saleRow("Widget", 2, 55, day("2024-01-03"), "c1"),
	}
	ds := &Dataset{Rows: rows, Mapping: fullMapping()}

	result := FindMissedOpportunities(ds)
	if result == nil {
		t.Fatal("got nil result")
	}
	if result.Count != 0 || result.TotalMissedRevenue != 0 {
		t.Fatalf("got %+v, want empty result", result)
	}
}
