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

func TestCacheRoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("NewCache returned error: %v", err)
	}
	defer cache.Close()

	want := &QualityReport{Score: 85, Comment: "Good data quality with minor issues"}
	if err := cache.Set("key1", want, time.Hour); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	var got QualityReport
	hit, err := cache.Get("key1", &got)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got.Score != want.Score || got.Comment != want.Comment {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCacheExpiry(t *testing.T) {
	cache, err := NewCache(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("NewCache returned error: %v", err)
	}
	defer cache.Close()

	if err := cache.Set("key1", "value", -time.Second); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	var got string
	hit, err := cache.Get("key1", &got)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if hit {
		t.Fatal("expected miss for expired entry")
	}
}

func TestCacheMiss(t *testing.T) {
	cache, err := NewCache(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("NewCache returned error: %v", err)
	}
	defer cache.Close()

	var got string
	hit, err := cache.Get("absent", &got)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if hit {
		t.Fatal("expected miss for absent key")
	}
}

func TestHashTableSensitivity(t *testing.T) {
	table := &Table{
		Headers: []string{"Product", "Quantity"},
		Rows:    [][]string{{"Widget", "5"}},
	}

	base := HashTable(table)
	if base != HashTable(table) {
		t.Fatal("hash not stable for identical content")
	}

	changed := &Table{
		Headers: []string{"Product", "Quantity"},
		Rows:    [][]string{{"Widget", "6"}},
	}
	if base == HashTable(changed) {
		t.Fatal("hash unchanged after cell edit")
	}

	reheaded := &Table{
		Headers: []string{"Product", "Qty"},
		Rows:    [][]string{{"Widget", "5"}},
	}
	if base == HashTable(reheaded) {
		t.Fatal("hash unchanged after header edit")
	}
}
