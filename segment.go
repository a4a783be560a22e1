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
	"math"
	"math/rand"
	"sort"
	"time"
)

// Segmenter clusters customers into the three labeled segments using their
// RFM features (recency, frequency, monetary value)
type Segmenter struct {
	config *Config
	logger *Logger
	now    func() time.Time
}

// NewSegmenter creates a new segmenter
func NewSegmenter(config *Config, logger *Logger) *Segmenter {
	return &Segmenter{
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// Segment aggregates per-customer features, standardizes them, and runs
// k-means with a fixed seed. Missing revenue is a hard error: a synthetic
// segmentation would be misleading business data, so the caller must be
// told segmentation is unavailable.
func (s *Segmenter) Segment(ds *Dataset) (*SegmentationResult, error) {
	if !ds.HasField(FieldQuantity) || !ds.HasField(FieldPrice) {
		return nil, &FieldError{Component: "segmentation", Field: FieldRevenue}
	}

	features := s.customerFeatures(ds)
	if len(features) == 0 {
		return nil, &FieldError{Component: "segmentation", Field: FieldRevenue}
	}

	// Standardize the four numeric features across customers
	n := len(features)
	cols := make([][]float64, 4)
	for i := range cols {
		cols[i] = make([]float64, n)
	}
	for i, f := range features {
		cols[0][i] = f.TotalRevenue
		cols[1][i] = f.AvgRevenue
		cols[2][i] = float64(f.Frequency)
		cols[3][i] = float64(f.Recency)
	}
	for i := range cols {
		cols[i] = standardize(cols[i])
	}

	points := make([][]float64, n)
	for i := range points {
		points[i] = []float64{cols[0][i], cols[1][i], cols[2][i], cols[3][i]}
	}

	assignments := s.cluster(points)
	labels := s.labelClusters(features, assignments)

	for i := range features {
		features[i].Segment = labels[assignments[i]]
	}

	result := &SegmentationResult{
		Segments: s.summarize(features),
	}

	sampleSize := 10
	if len(features) < sampleSize {
		sampleSize = len(features)
	}
	result.SampleCustomers = features[:sampleSize]

	s.logger.Info("Customer segmentation completed",
		"customers", len(features),
		"clusters", s.config.ClusterCount)

	return result, nil
}

// customerFeatures groups rows per customer into RFM feature vectors.
// Recency is days between now and the customer's most recent purchase;
// customers with no parseable dates default to 30.
func (s *Segmenter) customerFeatures(ds *Dataset) []CustomerFeatureVector {
	type agg struct {
		revenue     float64
		revenueRows int
		frequency   int
		quantity    float64
		lastSeen    *time.Time
	}

	byCustomer := make(map[string]*agg)
	var order []string
	for _, row := range ds.Rows {
		if row.Customer == "" {
			continue
		}
		a, ok := byCustomer[row.Customer]
		if !ok {
			a = &agg{}
			byCustomer[row.Customer] = a
			order = append(order, row.Customer)
		}
		a.frequency++
		if row.Revenue != nil {
			a.revenue += *row.Revenue
			a.revenueRows++
		}
		if row.Quantity != nil {
			a.quantity += *row.Quantity
		}
		if row.Date != nil && (a.lastSeen == nil || row.Date.After(*a.lastSeen)) {
			a.lastSeen = row.Date
		}
	}

	now := s.now()
	features := make([]CustomerFeatureVector, 0, len(order))
	for _, customer := range order {
		a := byCustomer[customer]
		avg := 0.0
		if a.revenueRows > 0 {
			avg = a.revenue / float64(a.revenueRows)
		}
		recency := 30
		if a.lastSeen != nil {
			recency = int(now.Sub(*a.lastSeen).Hours() / 24)
		}
		features = append(features, CustomerFeatureVector{
			Customer:      customer,
			TotalRevenue:  a.revenue,
			AvgRevenue:    avg,
			Frequency:     a.frequency,
			Recency:       recency,
			TotalQuantity: a.quantity,
		})
	}
	return features
}

// cluster runs k-means with the configured restart count and fixed seed,
// keeping the assignment with the lowest inertia. Fewer points than
// clusters degenerates to one point per cluster.
func (s *Segmenter) cluster(points [][]float64) []int {
	k := s.config.ClusterCount
	n := len(points)

	if n <= k {
		assignments := make([]int, n)
		for i := range assignments {
			assignments[i] = i
		}
		return assignments
	}

	bestInertia := math.Inf(1)
	var best []int

	for restart := 0; restart < s.config.ClusterRestarts; restart++ {
		rng := rand.New(rand.NewSource(s.config.ClusterSeed + int64(restart)))
		assignments, inertia := kmeansOnce(points, k, rng)
		if inertia < bestInertia {
			bestInertia = inertia
			best = assignments
		}
	}

	return best
}

// kmeansOnce is one Lloyd's-algorithm run from a random initialization
func kmeansOnce(points [][]float64, k int, rng *rand.Rand) ([]int, float64) {
	n := len(points)
	dims := len(points[0])

	// Initialize centroids from k distinct random points
	perm := rng.Perm(n)
	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = append([]float64(nil), points[perm[i]]...)
	}

	assignments := make([]int, n)
	for iter := 0; iter < 100; iter++ {
		changed := false
		for i, p := range points {
			best := 0
			bestDist := squaredDistance(p, centroids[0])
			for c := 1; c < k; c++ {
				if d := squaredDistance(p, centroids[c]); d < bestDist {
					bestDist = d
					best = c
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		// Recompute centroids; an empty cluster keeps its previous position
		counts := make([]int, k)
		sums := make([][]float64, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, p := range points {
			c := assignments[i]
			counts[c]++
			for d := range p {
				sums[c][d] += p[d]
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for d := 0; d < dims; d++ {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}

		if !changed {
			break
		}
	}

	inertia := 0.0
	for i, p := range points {
		inertia += squaredDistance(p, centroids[assignments[i]])
	}
	return assignments, inertia
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

// labelClusters maps cluster indices to the three segment labels. A cluster
// whose mean total revenue reaches the global 75th percentile is High
// Value; otherwise a cluster whose mean frequency reaches the global median
// is Occasional; the rest are One-Time. Clusters are evaluated richest
// first and each label is used once, so the result is always three
// distinct labels.
func (s *Segmenter) labelClusters(features []CustomerFeatureVector, assignments []int) map[int]string {
	k := s.config.ClusterCount

	revenues := make([]float64, len(features))
	frequencies := make([]float64, len(features))
	for i, f := range features {
		revenues[i] = f.TotalRevenue
		frequencies[i] = float64(f.Frequency)
	}
	revenueP75 := quantile(revenues, 0.75)
	freqMedian := quantile(frequencies, 0.5)

	type clusterStats struct {
		index    int
		meanRev  float64
		meanFreq float64
	}
	stats := make([]clusterStats, k)
	counts := make([]int, k)
	for i := range stats {
		stats[i].index = i
	}
	for i, f := range features {
		c := assignments[i]
		if c >= k {
			c = k - 1
		}
		stats[c].meanRev += f.TotalRevenue
		stats[c].meanFreq += float64(f.Frequency)
		counts[c]++
	}
	for c := range stats {
		if counts[c] > 0 {
			stats[c].meanRev /= float64(counts[c])
			stats[c].meanFreq /= float64(counts[c])
		}
	}

	// Richest clusters claim labels first
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].meanRev > stats[j].meanRev
	})

	priority := []string{SegmentHighValue, SegmentOccasional, SegmentOneTime}
	used := make(map[string]bool, k)
	labels := make(map[int]string, k)

	for _, st := range stats {
		var label string
		switch {
		case st.meanRev >= revenueP75 && st.meanRev > 0:
			label = SegmentHighValue
		case st.meanFreq >= freqMedian && st.meanFreq > 0:
			label = SegmentOccasional
		default:
			label = SegmentOneTime
		}
		if used[label] {
			for _, fallback := range priority {
				if !used[fallback] {
					label = fallback
					break
				}
			}
		}
		used[label] = true
		labels[st.index] = label
	}

	return labels
}

// summarize builds the three segment summaries in priority order
func (s *Segmenter) summarize(features []CustomerFeatureVector) []SegmentSummary {
	byLabel := make(map[string]*SegmentSummary)
	for _, label := range []string{SegmentHighValue, SegmentOccasional, SegmentOneTime} {
		byLabel[label] = &SegmentSummary{Segment: label}
	}

	for _, f := range features {
		summary := byLabel[f.Segment]
		if summary == nil {
			continue
		}
		summary.Count++
		summary.AvgRevenue += f.TotalRevenue
		summary.AvgFrequency += float64(f.Frequency)
	}

	result := make([]SegmentSummary, 0, 3)
	for _, label := range []string{SegmentHighValue, SegmentOccasional, SegmentOneTime} {
		summary := byLabel[label]
		if summary.Count > 0 {
			summary.AvgRevenue /= float64(summary.Count)
			summary.AvgFrequency /= float64(summary.Count)
		}
		result = append(result, *summary)
	}
	return result
}
