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

import "fmt"

// SynthesizeRecommendations turns the analysis outputs into at most four
// action items. The rules are deterministic: the same inputs always produce
// the same items in the same order.
func SynthesizeRecommendations(ds *Dataset, top *TopProductsResult, times *TimeAnalysisResult) []Recommendation {
	recommendations := make([]Recommendation, 0, 4)

	if top != nil && len(top.Products) >= 2 {
		recommendations = append(recommendations, Recommendation{
			Type:  "bundling",
			Title: "Product Bundling Opportunity",
			Recommendation: fmt.Sprintf("Bundle %s with %s to increase average order value",
				top.Products[0].Product, top.Products[1].Product),
			Impact: "High",
		})
	}

	if hasPricedSales(ds) {
		recommendations = append(recommendations, Recommendation{
			Type:           "pricing",
			Title:          "Price Optimization",
			Recommendation: "Review pricing on slow movers; small discounts can unlock stalled inventory",
			Impact:         "Medium",
		})
	}

	recommendations = append(recommendations, Recommendation{
		Type:           "inventory",
		Title:          "Inventory Planning",
		Recommendation: "Keep top sellers stocked ahead of peak periods to avoid missed sales",
		Impact:         "High",
	})

	if times != nil && times.Recommendation != "" {
		recommendations = append(recommendations, Recommendation{
			Type:           "timing",
			Title:          "Promotion Timing",
			Recommendation: times.Recommendation,
			Impact:         "Medium",
		})
	}

	if len(recommendations) > 4 {
		recommendations = recommendations[:4]
	}
	return recommendations
}

// hasPricedSales reports whether at least one row carries both a parsed
// quantity and a positive price
func hasPricedSales(ds *Dataset) bool {
	for _, row := range ds.Rows {
		if row.Quantity != nil && row.Price != nil && *row.Price > 0 {
			return true
		}
	}
	return false
}
