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
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadTableCSV(t *testing.T) {
	path := writeTempFile(t, "sales.csv",
		"Product,Quantity,Price\nWidget,5,9.99\nGadget,2,24.50\n")

	table, err := LoadTable(path, testLogger())
	if err != nil {
		t.Fatalf("LoadTable returned error: %v", err)
	}

	if len(table.Headers) != 3 || table.Headers[0] != "Product" {
		t.Fatalf("got headers %v, want [Product Quantity Price]", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if table.Rows[1][2] != "24.50" {
		t.Fatalf("got cell %q, want 24.50", table.Rows[1][2])
	}
}

func TestLoadTableTSV(t *testing.T) {
	path := writeTempFile(t, "sales.tsv",
		"Product\tQuantity\nWidget\t5\n")

	table, err := LoadTable(path, testLogger())
	if err != nil {
		t.Fatalf("LoadTable returned error: %v", err)
	}
	if len(table.Headers) != 2 {
		t.Fatalf("got %d headers, want 2", len(table.Headers))
	}
	if table.Rows[0][0] != "Widget" {
		t.Fatalf("got cell %q, want Widget", table.Rows[0][0])
	}
}

func TestLoadTableRaggedRows(t *testing.T) {
	path := writeTempFile(t, "ragged.csv",
		"A,B,C\n1,2,3\n4,5\n")

	table, err := LoadTable(path, testLogger())
	if err != nil {
		t.Fatalf("LoadTable returned error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if len(table.Rows[1]) != 2 {
		t.Fatalf("got %d cells in short row, want 2", len(table.Rows[1]))
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "absent.csv"), testLogger())
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("got %T, want *LoadError", err)
	}
}

func TestLoadTableEmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty.csv", "")

	if _, err := LoadTable(path, testLogger()); err == nil {
		t.Fatal("expected error for empty file")
	}
}
