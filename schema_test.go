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
	"testing"
)

func testLogger() *Logger {
	return NewLogger(false)
}

func TestNormalizeMessySpreadsheet(t *testing.T) {
	table := &Table{
		Headers: []string{"Item", "Qty", "UnitPrice", "OrderDate"},
		Rows: [][]string{
			{"Widget", "5", "9.99", "2024-01-05"},
			{"Gadget", "2", "24.50", "2024-01-06"},
			{"Widget", "1", "9.99", "2024-01-07"},
		},
	}

	ds, err := NewNormalizer(testLogger()).Normalize(table)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	for field, wantColumn := range map[string]string{
		FieldProduct:  "Item",
		FieldQuantity: "Qty",
		FieldPrice:    "UnitPrice",
		FieldDate:     "OrderDate",
	} {
		mapping, ok := ds.Mapping[field]
		if !ok {
			t.Fatalf("field %q not mapped", field)
		}
		if mapping.Column != wantColumn {
			t.Fatalf("field %q: got column %q, want %q", field, mapping.Column, wantColumn)
		}
		if mapping.Confidence != 1.0 {
			t.Fatalf("field %q: got confidence %v, want 1.0", field, mapping.Confidence)
		}
	}

	if len(ds.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(ds.Rows))
	}

	row := ds.Rows[0]
	if row.Product != "Widget" {
		t.Fatalf("got product %q, want Widget", row.Product)
	}
	if row.Revenue == nil || !almostEqual(*row.Revenue, 5*9.99) {
		t.Fatalf("got revenue %v, want %v", row.Revenue, 5*9.99)
	}
	if row.Date == nil || row.Date.Format("2006-01-02") != "2024-01-05" {
		t.Fatalf("got date %v, want 2024-01-05", row.Date)
	}
}

func TestNormalizeSyntheticCustomers(t *testing.T) {
	table := &Table{
		Headers: []string{"Item", "Qty", "UnitPrice", "OrderDate"},
		Rows: [][]string{
			{"A", "1", "1.00", "2024-01-01"},
			{"B", "1", "1.00", "2024-01-02"},
			{"C", "1", "1.00", "2024-01-03"},
			{"D", "1", "1.00", "2024-01-04"},
		},
	}

	ds, err := NewNormalizer(testLogger()).Normalize(table)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	// No customer column: consecutive rows are grouped under synthetic IDs
	if got := ds.Rows[0].Customer; got != "Customer_1" {
		t.Fatalf("row 0 customer: got %q, want Customer_1", got)
	}
	if got := ds.Rows[2].Customer; got != "Customer_1" {
		t.Fatalf("row 2 customer: got %q, want Customer_1", got)
	}
	if got := ds.Rows[3].Customer; got != "Customer_2" {
		t.Fatalf("row 3 customer: got %q, want Customer_2", got)
	}
}

func TestNormalizeHeaderRecovery(t *testing.T) {
	table := &Table{
		Headers: []string{"Unnamed: 0", "Unnamed: 1", "Unnamed: 2", "Unnamed: 3"},
		Rows: [][]string{
			{"Quarterly Sales", "", "", ""},
			{"Product", "Quantity", "Price", "Date"},
			{"Widget", "5", "9.99", "2024-01-05"},
			{"Gadget", "2", "24.50", "2024-01-06"},
		},
	}

	ds, err := NewNormalizer(testLogger()).Normalize(table)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	if mapping := ds.Mapping[FieldProduct]; mapping.Column != "Product" {
		t.Fatalf("product column: got %q, want Product", mapping.Column)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(ds.Rows))
	}
	if ds.Rows[0].Product != "Widget" {
		t.Fatalf("got product %q, want Widget", ds.Rows[0].Product)
	}
}

func TestNormalizeSchemaUnresolved(t *testing.T) {
	table := &Table{
		Headers: []string{"1", "2", "3"},
		Rows: [][]string{
			{"4", "5", "6"},
			{"7", "8", "9"},
		},
	}

	_, err := NewNormalizer(testLogger()).Normalize(table)
	if err == nil {
		t.Fatal("expected error for unresolvable schema")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("got %T, want *SchemaError", err)
	}
}

func TestNormalizeUnmappedFieldRecordsSuggestion(t *testing.T) {
	table := &Table{
		Headers: []string{"Item", "Qty", "OrderDate"},
		Rows: [][]string{
			{"Widget", "5", "2024-01-05"},
		},
	}

	ds, err := NewNormalizer(testLogger()).Normalize(table)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	if ds.HasField(FieldPrice) {
		t.Fatal("price should not be mapped")
	}
	if len(ds.Errors) == 0 {
		t.Fatal("expected an error entry for the missing price column")
	}
}

func TestBestFieldMatch(t *testing.T) {
	// Exact match after normalization wins outright
	col, score := bestFieldMatch([]string{"Quantity Sold"}, fieldSynonyms[FieldQuantity])
	if col != "Quantity Sold" || score != 1.0 {
		t.Fatalf("got (%q, %v), want (Quantity Sold, 1.0)", col, score)
	}

	// Substring containment scores below 1.0
	col, score = bestFieldMatch([]string{"Product Code X"}, fieldSynonyms[FieldProduct])
	if col != "Product Code X" {
		t.Fatalf("got column %q, want Product Code X", col)
	}
	if score <= matchThreshold || score >= 1.0 {
		t.Fatalf("got score %v, want between %v and 1.0", score, matchThreshold)
	}

	// Nothing close enough
	col, _ = bestFieldMatch([]string{"zzz"}, fieldSynonyms[FieldProduct])
	if col != "" {
		t.Fatalf("got column %q, want no match", col)
	}
}

func TestDetectDateFormatUK(t *testing.T) {
	table := &Table{
		Headers: []string{"Date"},
		Rows: [][]string{
			{"15/01/2024"},
			{"16/01/2024"},
			{"17/01/2024"},
		},
	}

	info := detectDateFormat(table, "Date")
	if info.Layout != "02/01/2006" {
		t.Fatalf("got layout %q, want 02/01/2006", info.Layout)
	}
	if !info.Parseable {
		t.Fatal("expected parseable date column")
	}
	if info.Confidence != 1.0 {
		t.Fatalf("got confidence %v, want 1.0", info.Confidence)
	}
}

func TestParseNumeric(t *testing.T) {
	if v := parseNumeric("$1,234.50"); v == nil || !almostEqual(*v, 1234.5) {
		t.Fatalf("got %v, want 1234.5", v)
	}
	if v := parseNumeric("£99"); v == nil || !almostEqual(*v, 99) {
		t.Fatalf("got %v, want 99", v)
	}
	if v := parseNumeric("abc"); v != nil {
		t.Fatalf("got %v, want nil", *v)
	}
	if v := parseNumeric(""); v != nil {
		t.Fatalf("got %v, want nil", *v)
	}
}
