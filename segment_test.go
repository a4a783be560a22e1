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
	"errors"
	"reflect"
	"testing"
	"time"
)

// segmentationDataset builds three clearly separated customer groups:
// heavy spenders, regulars and one-off buyers.
func segmentationDataset() *Dataset {
	var rows []NormalizedRow
	start := day("2024-01-01")

	// Heavy spenders: frequent, large orders, recent
	for _, customer := range []string{"alice", "bob", "carol"} {
		for i := 0; i < 8; i++ {
			rows = append(rows, saleRow("Laptop", 2, 500, start.AddDate(0, 0, i*3), customer))
		}
	}

	// Regulars: moderate orders
	for _, customer := range []string{"dave", "erin", "frank"} {
		for i := 0; i < 4; i++ {
			rows = append(rows, saleRow("Mouse", 1, 40, start.AddDate(0, 0, i*5), customer))
		}
	}

	// One-off buyers
	for _, customer := range []string{"grace", "henry", "iris"} {
		rows = append(rows, saleRow("Cable", 1, 10, start, customer))
	}

	return &Dataset{
		Rows: rows,
		Mapping: map[string]FieldMapping{
			FieldProduct:  {Column: "Product", Confidence: 1},
			FieldQuantity: {Column: "Quantity", Confidence: 1},
			FieldPrice:    {Column: "Price", Confidence: 1},
			FieldDate:     {Column: "Date", Confidence: 1},
			FieldCustomer: {Column: "Customer", Confidence: 1},
		},
	}
}

func newTestSegmenter() *Segmenter {
	s := NewSegmenter(defaultTestConfig(), testLogger())
	s.now = func() time.Time { return day("2024-02-15") }
	return s
}

func TestSegmentThreeDistinctLabels(t *testing.T) {
	result, err := newTestSegmenter().Segment(segmentationDataset())
	if err != nil {
		t.Fatalf("Segment returned error: %v", err)
	}

	if len(result.Segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(result.Segments))
	}

	labels := make(map[string]bool)
	total := 0
	for _, segment := range result.Segments {
		labels[segment.Segment] = true
		total += segment.Count
	}
	if len(labels) != 3 {
		t.Fatalf("got labels %v, want 3 distinct", labels)
	}
	if total != 9 {
		t.Fatalf("segment counts sum to %d, want 9", total)
	}
}

func TestSegmentEveryCustomerAssigned(t *testing.T) {
	result, err := newTestSegmenter().Segment(segmentationDataset())
	if err != nil {
		t.Fatalf("Segment returned error: %v", err)
	}

	if len(result.SampleCustomers) != 9 {
		t.Fatalf("got %d sample customers, want 9", len(result.SampleCustomers))
	}
	for _, customer := range result.SampleCustomers {
		if customer.Segment == "" {
			t.Fatalf("customer %q has no segment", customer.Customer)
		}
	}
}

func TestSegmentHeavySpendersLabeledHighValue(t *testing.T) {
	result, err := newTestSegmenter().Segment(segmentationDataset())
	if err != nil {
		t.Fatalf("Segment returned error: %v", err)
	}

	for _, customer := range result.SampleCustomers {
		if customer.Customer == "alice" && customer.Segment != SegmentHighValue {
			t.Fatalf("alice: got segment %q, want %q", customer.Segment, SegmentHighValue)
		}
		if customer.Customer == "grace" && customer.Segment == SegmentHighValue {
			t.Fatalf("grace: got segment %q, want a lower tier", customer.Segment)
		}
	}
}

func TestSegmentDeterministic(t *testing.T) {
	first, err := newTestSegmenter().Segment(segmentationDataset())
	if err != nil {
		t.Fatalf("Segment returned error: %v", err)
	}
	second, err := newTestSegmenter().Segment(segmentationDataset())
	if err != nil {
		t.Fatalf("Segment returned error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("same input produced different segmentations")
	}
}

func TestSegmentMissingRevenueIsHardError(t *testing.T) {
	ds := &Dataset{
		Rows: []NormalizedRow{{Product: "Widget", Customer: "alice"}},
		Mapping: map[string]FieldMapping{
			FieldProduct: {Column: "Product", Confidence: 1},
		},
	}

	_, err := newTestSegmenter().Segment(ds)
	if err == nil {
		t.Fatal("expected error when revenue cannot be derived")
	}

	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("got %T, want *FieldError", err)
	}
	if fieldErr.Field != FieldRevenue {
		t.Fatalf("got field %q, want %q", fieldErr.Field, FieldRevenue)
	}
}

func TestSegmentFewCustomers(t *testing.T) {
	ds := &Dataset{
		Rows: []NormalizedRow{
			saleRow("Widget", 1, 100, day("2024-01-01"), "alice"),
			saleRow("Widget", 1, 50, day("2024-01-02"), "bob"),
		},
		Mapping: map[string]FieldMapping{
			FieldQuantity: {Column: "Quantity", Confidence: 1},
			FieldPrice:    {Column: "Price", Confidence: 1},
		},
	}

	result, err := newTestSegmenter().Segment(ds)
	if err != nil {
		t.Fatalf("Segment returned error: %v", err)
	}

	if len(result.Segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(result.Segments))
	}
	for _, customer := range result.SampleCustomers {
		if customer.Segment == "" {
			t.Fatalf("customer %q has no segment", customer.Customer)
		}
	}
}
