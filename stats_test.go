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
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateMean(t *testing.T) {
	got := calculateMean([]float64{1, 2, 3, 4})
	if !almostEqual(got, 2.5) {
		t.Fatalf("got %v, want 2.5", got)
	}

	if got := calculateMean(nil); got != 0 {
		t.Fatalf("empty mean: got %v, want 0", got)
	}
}

func TestCalculateMedian(t *testing.T) {
	if got := calculateMedian([]float64{3, 1, 2}); !almostEqual(got, 2) {
		t.Fatalf("odd median: got %v, want 2", got)
	}
	if got := calculateMedian([]float64{4, 1, 3, 2}); !almostEqual(got, 2.5) {
		t.Fatalf("even median: got %v, want 2.5", got)
	}
}

func TestQuantileInterpolation(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	if got := quantile(values, 0); !almostEqual(got, 1) {
		t.Fatalf("q0: got %v, want 1", got)
	}
	if got := quantile(values, 1); !almostEqual(got, 4) {
		t.Fatalf("q1: got %v, want 4", got)
	}
	if got := quantile(values, 0.5); !almostEqual(got, 2.5) {
		t.Fatalf("q0.5: got %v, want 2.5", got)
	}
}

func TestIQRBoundsOrdering(t *testing.T) {
	values := []float64{98, 99, 100, 102, 105, 110, 900}

	lower, upper, q1, q3 := iqrBounds(values)
	if !(lower <= q1 && q1 <= q3 && q3 <= upper) {
		t.Fatalf("bounds out of order: lower=%v q1=%v q3=%v upper=%v", lower, q1, q3, upper)
	}
	if 900 <= upper {
		t.Fatalf("expected 900 above upper bound %v", upper)
	}
}

func TestLinearFit(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{1, 3, 5, 7} // y = 2x + 1

	slope, intercept := linearFit(xs, ys)
	if !almostEqual(slope, 2) {
		t.Fatalf("slope: got %v, want 2", slope)
	}
	if !almostEqual(intercept, 1) {
		t.Fatalf("intercept: got %v, want 1", intercept)
	}
}

func TestLinearFitDegenerate(t *testing.T) {
	// All x identical: fit falls back to a flat line at the mean
	slope, intercept := linearFit([]float64{2, 2, 2}, []float64{1, 2, 3})
	if slope != 0 {
		t.Fatalf("slope: got %v, want 0", slope)
	}
	if !almostEqual(intercept, 2) {
		t.Fatalf("intercept: got %v, want 2", intercept)
	}
}

func TestStandardizeConstantSeries(t *testing.T) {
	got := standardize([]float64{5, 5, 5})
	for i, v := range got {
		if v != 0 {
			t.Fatalf("index %d: got %v, want 0", i, v)
		}
	}
}

func TestStandardizeZeroMeanUnitVariance(t *testing.T) {
	got := standardize([]float64{1, 2, 3, 4, 5})

	sum := 0.0
	for _, v := range got {
		sum += v
	}
	if !almostEqual(sum, 0) {
		t.Fatalf("standardized mean: got %v, want 0", sum/float64(len(got)))
	}
}
