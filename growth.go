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
	"sort"
)

// TopProducts ranks products by total revenue and returns the top three
func TopProducts(ds *Dataset) *TopProductsResult {
	if !ds.HasField(FieldProduct) {
		return nil
	}

	type agg struct {
		revenue  float64
		quantity float64
	}
	byProduct := make(map[string]*agg)
	for _, row := range ds.Rows {
		if row.Product == "" {
			continue
		}
		a, ok := byProduct[row.Product]
		if !ok {
			a = &agg{}
			byProduct[row.Product] = a
		}
		if row.Revenue != nil {
			a.revenue += *row.Revenue
		}
		if row.Quantity != nil {
			a.quantity += *row.Quantity
		}
	}
	if len(byProduct) == 0 {
		return nil
	}

	products := make([]ProductRevenue, 0, len(byProduct))
	total := 0.0
	for product, a := range byProduct {
		products = append(products, ProductRevenue{
			Product:  product,
			Revenue:  roundTo(a.revenue, 2),
			Quantity: a.quantity,
		})
		total += a.revenue
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Revenue != products[j].Revenue {
			return products[i].Revenue > products[j].Revenue
		}
		return products[i].Product < products[j].Product
	})

	if len(products) > 3 {
		products = products[:3]
	}
	return &TopProductsResult{
		Products:     products,
		TotalRevenue: roundTo(total, 2),
	}
}

// AnalyzeSellingTimes totals revenue per weekday and names the best one
func AnalyzeSellingTimes(ds *Dataset) *TimeAnalysisResult {
	if !ds.HasField(FieldDate) {
		return nil
	}

	totals := make(map[string]float64, 7)
	for _, row := range ds.Rows {
		if row.Date == nil || row.Revenue == nil {
			continue
		}
		totals[row.Date.Weekday().String()] += *row.Revenue
	}
	if len(totals) == 0 {
		return nil
	}

	bestDay := ""
	bestVal := 0.0
	dayRevenue := make(map[string]float64, 7)
	for _, day := range weekdayOrder {
		total, ok := totals[day]
		if !ok {
			continue
		}
		dayRevenue[day] = roundTo(total, 2)
		if bestDay == "" || total > bestVal {
			bestDay = day
			bestVal = total
		}
	}

	return &TimeAnalysisResult{
		BestDay:        bestDay,
		DayRevenue:     dayRevenue,
		Recommendation: fmt.Sprintf("Consider running promotions on %ss", bestDay),
	}
}

// ComputeGrowthMetrics derives week-over-week and month-over-month growth
// from the daily revenue series. Below two weeks of history the illustrative
// snapshot is returned instead.
func ComputeGrowthMetrics(ds *Dataset, config *Config, logger *Logger) *GrowthMetrics {
	series := dailyRevenue(ds.Rows)

	if len(series) < minGrowthDays {
		logger.LogFallback(&DataError{
			Component: "growth",
			Message:   fmt.Sprintf("need at least %d distinct days, have %d", minGrowthDays, len(series)),
		})
		return ExampleGrowthMetrics()
	}

	// Week over week, comparing the two most recent ISO weeks with data
	weekTotals := make(map[string]float64)
	var weekKeys []string
	for _, p := range series {
		year, week := p.Date.ISOWeek()
		key := fmt.Sprintf("%04d-%02d", year, week)
		if _, ok := weekTotals[key]; !ok {
			weekKeys = append(weekKeys, key)
		}
		weekTotals[key] += p.Revenue
	}
	sort.Strings(weekKeys)
	wow := periodGrowth(weekTotals, weekKeys)

	// Month over month
	monthTotals := make(map[string]float64)
	var monthKeys []string
	for _, p := range series {
		key := p.Date.Format("2006-01")
		if _, ok := monthTotals[key]; !ok {
			monthKeys = append(monthKeys, key)
		}
		monthTotals[key] += p.Revenue
	}
	sort.Strings(monthKeys)
	mom := periodGrowth(monthTotals, monthKeys)

	// Best seven consecutive daily points
	bestStreak := 0.0
	bestStart := series[0].Date
	window := 7
	if len(series) < window {
		window = len(series)
	}
	sum := 0.0
	for i := 0; i < window; i++ {
		sum += series[i].Revenue
	}
	bestStreak = sum
	for i := window; i < len(series); i++ {
		sum += series[i].Revenue - series[i-window].Revenue
		if sum > bestStreak {
			bestStreak = sum
			bestStart = series[i-window+1].Date
		}
	}

	sparkline := make([]float64, 0, 30)
	start := 0
	if len(series) > 30 {
		start = len(series) - 30
	}
	for _, p := range series[start:] {
		sparkline = append(sparkline, roundTo(p.Revenue, 2))
	}

	return &GrowthMetrics{
		WowGrowth:      roundTo(wow, 1),
		MomGrowth:      roundTo(mom, 1),
		BestStreak:     roundTo(bestStreak, 2),
		BestStreakDate: bestStart.Format("2006-01-02"),
		Sparkline:      sparkline,
		CurrentRevenue: roundTo(series[len(series)-1].Revenue, 2),
	}
}

// periodGrowth compares the last two period totals as a percentage
func periodGrowth(totals map[string]float64, keys []string) float64 {
	if len(keys) < 2 {
		return 0
	}
	prev := totals[keys[len(keys)-2]]
	last := totals[keys[len(keys)-1]]
	if prev == 0 {
		return 0
	}
	return (last - prev) / prev * 100
}

// FindMissedOpportunities reports products that were listed with a price
// but recorded zero quantity sold
func FindMissedOpportunities(ds *Dataset) *MissedOpportunitiesResult {
	if !ds.HasField(FieldProduct) || !ds.HasField(FieldQuantity) || !ds.HasField(FieldPrice) {
		return nil
	}

	type agg struct {
		count    int
		priceSum float64
	}
	byProduct := make(map[string]*agg)
	var order []string
	for _, row := range ds.Rows {
		if row.Product == "" || row.Quantity == nil || row.Price == nil {
			continue
		}
		if *row.Quantity != 0 || *row.Price <= 0 {
			continue
		}
		a, ok := byProduct[row.Product]
		if !ok {
			a = &agg{}
			byProduct[row.Product] = a
			order = append(order, row.Product)
		}
		a.count++
		a.priceSum += *row.Price
	}

	result := &MissedOpportunitiesResult{Opportunities: []MissedOpportunity{}}
	for _, product := range order {
		a := byProduct[product]
		avgPrice := a.priceSum / float64(a.count)
		potential := avgPrice * float64(a.count)
		result.Opportunities = append(result.Opportunities, MissedOpportunity{
			Product:          product,
			MissedSales:      a.count,
			AvgPrice:         roundTo(avgPrice, 2),
			PotentialRevenue: roundTo(potential, 2),
		})
		result.TotalMissedRevenue += potential
	}
	sort.Slice(result.Opportunities, func(i, j int) bool {
		if result.Opportunities[i].PotentialRevenue != result.Opportunities[j].PotentialRevenue {
			return result.Opportunities[i].PotentialRevenue > result.Opportunities[j].PotentialRevenue
		}
		return result.Opportunities[i].Product < result.Opportunities[j].Product
	})
	result.TotalMissedRevenue = roundTo(result.TotalMissedRevenue, 2)
	result.Count = len(result.Opportunities)
	return result
}
