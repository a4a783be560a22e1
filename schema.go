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
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Normalizer maps an arbitrary raw table onto the canonical sales fields
// {product, quantity, price, date, customer} and derives revenue.
type Normalizer struct {
	logger *Logger
}

// NewNormalizer creates a new schema normalizer
func NewNormalizer(logger *Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize builds an immutable Dataset from the raw table. It returns a
// SchemaError when no usable headers can be found; partial field mapping
// is not fatal and is recorded on the Dataset instead.
func (n *Normalizer) Normalize(table *Table) (*Dataset, error) {
	if headersLookSynthetic(table.Headers) {
		n.logger.Info("Synthetic column names detected, attempting header recovery",
			"columns", strings.Join(table.Headers, ", "))

		recovered, ok := recoverHeaders(table)
		if !ok || headersLookSynthetic(recovered.Headers) {
			return nil, &SchemaError{
				Columns: table.Headers,
				Message: "unable to detect column headers in the uploaded file",
			}
		}
		table = recovered
	}

	ds := &Dataset{
		Mapping:     make(map[string]FieldMapping),
		Suggestions: make(map[string][]string),
		Raw:         table,
	}

	for _, field := range []string{FieldProduct, FieldQuantity, FieldPrice, FieldDate, FieldCustomer} {
		column, score := bestFieldMatch(table.Headers, fieldSynonyms[field])
		if column != "" {
			ds.Mapping[field] = FieldMapping{Column: column, Confidence: score}
			n.logger.LogSchemaMapping(field, column, score)
			continue
		}

		// Customer is optional; synthetic IDs are assigned during
		// materialization so segmentation stays possible.
		if field == FieldCustomer {
			continue
		}

		ds.Errors = append(ds.Errors, fmt.Sprintf("Could not find '%s' column", field))
		if alts := suggestAlternatives(table.Headers, fieldSynonyms[field]); len(alts) > 0 {
			ds.Suggestions[field] = alts
		}
	}

	if mapping, ok := ds.Mapping[FieldDate]; ok {
		info := detectDateFormat(table, mapping.Column)
		ds.DateFormat = &info
		n.logger.Debug("Date format detected",
			"layout", info.Layout,
			"confidence", fmt.Sprintf("%.2f", info.Confidence),
			"parseable", info.Parseable)
	}

	n.materialize(table, ds)

	n.logger.Info("Schema normalized",
		"rows", len(ds.Rows),
		"mapped_fields", len(ds.Mapping),
		"unmapped_fields", len(ds.Errors))

	return ds, nil
}

// headersLookSynthetic reports whether the column names look auto-generated
// (spreadsheet export placeholders or plain indexes) rather than real headers
func headersLookSynthetic(headers []string) bool {
	for _, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" || strings.Contains(h, "Unnamed") || isAllDigits(h) {
			return true
		}
	}
	return false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// recoverHeaders scans the first rows for one that looks like a header row
// (at least 3 non-empty cells, not all numeric), promotes it, and drops
// everything above it plus fully empty rows and columns.
func recoverHeaders(table *Table) (*Table, bool) {
	limit := headerScanRows
	if len(table.Rows) < limit {
		limit = len(table.Rows)
	}

	headerIdx := -1
	for i := 0; i < limit; i++ {
		nonEmpty := 0
		allNumeric := true
		for _, cell := range table.Rows[i] {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			nonEmpty++
			if !isAllDigits(cell) {
				allNumeric = false
			}
		}
		if nonEmpty >= 3 && !allNumeric {
			headerIdx = i
			break
		}
	}

	if headerIdx == -1 {
		return nil, false
	}

	headers := make([]string, len(table.Rows[headerIdx]))
	for i, cell := range table.Rows[headerIdx] {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			cell = fmt.Sprintf("Col_%d", i)
		}
		headers[i] = cell
	}

	rows := make([][]string, 0, len(table.Rows)-headerIdx-1)
	for _, row := range table.Rows[headerIdx+1:] {
		if rowIsEmpty(row) {
			continue
		}
		rows = append(rows, row)
	}

	cleaned := dropEmptyColumns(&Table{Headers: headers, Rows: rows})
	if len(cleaned.Rows) == 0 || len(cleaned.Headers) < 3 {
		return nil, false
	}

	return cleaned, true
}

func rowIsEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// dropEmptyColumns removes columns whose data cells are all empty
func dropEmptyColumns(table *Table) *Table {
	keep := make([]bool, len(table.Headers))
	for col := range table.Headers {
		for _, row := range table.Rows {
			if col < len(row) && strings.TrimSpace(row[col]) != "" {
				keep[col] = true
				break
			}
		}
	}

	headers := make([]string, 0, len(table.Headers))
	for col, k := range keep {
		if k {
			headers = append(headers, table.Headers[col])
		}
	}

	rows := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		cells := make([]string, 0, len(headers))
		for col, k := range keep {
			if !k {
				continue
			}
			if col < len(row) {
				cells = append(cells, row[col])
			} else {
				cells = append(cells, "")
			}
		}
		rows[i] = cells
	}

	return &Table{Headers: headers, Rows: rows}
}

// normalizeColumnName lowercases a column name and collapses separators so
// "Order Date" and "order-date" both become "order_date"
func normalizeColumnName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}

// bestFieldMatch scores every (column, synonym) pair and returns the single
// best column above the match threshold. Exact normalized equality wins
// outright; substring containment scores by relative length; a character
// overlap ratio above the fuzzy threshold covers close variants.
func bestFieldMatch(columns []string, synonyms []string) (string, float64) {
	bestMatch := ""
	bestScore := 0.0

	for _, col := range columns {
		colClean := normalizeColumnName(col)
		if colClean == "" {
			continue
		}

		for _, synonym := range synonyms {
			if colClean == synonym {
				return col, 1.0
			}

			if strings.Contains(colClean, synonym) {
				score := float64(len(synonym)) / float64(len(colClean))
				if score > bestScore {
					bestScore = score
					bestMatch = col
				}
			}

			similarity := charOverlap(colClean, synonym)
			if similarity > fuzzyThreshold && similarity > bestScore {
				bestScore = similarity
				bestMatch = col
			}
		}
	}

	if bestScore > matchThreshold {
		return bestMatch, bestScore
	}
	return "", 0
}

// charOverlap counts how many characters of a appear in b, relative to the
// longer string
func charOverlap(a, b string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	common := 0
	for _, r := range a {
		if strings.ContainsRune(b, r) {
			common++
		}
	}

	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	return float64(common) / float64(maxLen)
}

// suggestAlternatives returns up to 3 columns that share a word fragment
// with the field's leading synonyms
func suggestAlternatives(columns []string, synonyms []string) []string {
	limit := 5
	if len(synonyms) < limit {
		limit = len(synonyms)
	}

	var suggestions []string
	for _, col := range columns {
		colClean := normalizeColumnName(col)
		for _, synonym := range synonyms[:limit] {
			matched := false
			for _, word := range strings.Split(synonym, "_") {
				if word != "" && strings.Contains(colClean, word) {
					matched = true
					break
				}
			}
			if matched {
				suggestions = append(suggestions, col)
				break
			}
		}
		if len(suggestions) == 3 {
			break
		}
	}
	return suggestions
}

// detectDateFormat tries each known layout against a sample of the date
// column and keeps the one with the highest parse ratio
func detectDateFormat(table *Table, column string) DateFormatInfo {
	idx := columnIndex(table.Headers, column)
	if idx == -1 {
		return DateFormatInfo{}
	}

	var sample []string
	for _, row := range table.Rows {
		if idx >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[idx])
		if cell == "" {
			continue
		}
		sample = append(sample, cell)
		if len(sample) == dateSampleRows {
			break
		}
	}

	if len(sample) == 0 {
		return DateFormatInfo{}
	}

	bestLayout := ""
	bestRate := 0.0
	for _, layout := range dateLayouts {
		parsed := 0
		for _, cell := range sample {
			if _, err := time.Parse(layout, cell); err == nil {
				parsed++
			}
		}
		rate := float64(parsed) / float64(len(sample))
		if rate > bestRate {
			bestRate = rate
			bestLayout = layout
		}
		if bestRate > 0.8 {
			break
		}
	}

	return DateFormatInfo{
		Layout:     bestLayout,
		Confidence: bestRate,
		Parseable:  bestRate > 0.5,
	}
}

func columnIndex(headers []string, column string) int {
	for i, h := range headers {
		if h == column {
			return i
		}
	}
	return -1
}

// materialize builds the normalized rows: mapped columns are renamed to
// canonical fields, quantity/price coerced to numbers (unparsable becomes
// nil, never an error), dates parsed, and revenue derived where both
// operands are present.
func (n *Normalizer) materialize(table *Table, ds *Dataset) {
	productIdx := mappedIndex(table, ds, FieldProduct)
	quantityIdx := mappedIndex(table, ds, FieldQuantity)
	priceIdx := mappedIndex(table, ds, FieldPrice)
	dateIdx := mappedIndex(table, ds, FieldDate)
	customerIdx := mappedIndex(table, ds, FieldCustomer)

	ds.Rows = make([]NormalizedRow, 0, len(table.Rows))
	for i, raw := range table.Rows {
		row := NormalizedRow{}

		if productIdx >= 0 && productIdx < len(raw) {
			row.Product = strings.TrimSpace(raw[productIdx])
		}
		if quantityIdx >= 0 && quantityIdx < len(raw) {
			row.Quantity = parseNumeric(raw[quantityIdx])
		}
		if priceIdx >= 0 && priceIdx < len(raw) {
			row.Price = parseNumeric(raw[priceIdx])
		}
		if row.Quantity != nil && row.Price != nil {
			revenue := *row.Quantity * *row.Price
			row.Revenue = &revenue
		}
		if dateIdx >= 0 && dateIdx < len(raw) {
			row.Date = n.parseDate(raw[dateIdx], ds.DateFormat)
		}

		if customerIdx >= 0 && customerIdx < len(raw) {
			row.Customer = strings.TrimSpace(raw[customerIdx])
		} else if customerIdx == -1 {
			row.Customer = fmt.Sprintf("Customer_%d", i/syntheticCustomerGroup+1)
		}

		ds.Rows = append(ds.Rows, row)
	}
}

func mappedIndex(table *Table, ds *Dataset, field string) int {
	mapping, ok := ds.Mapping[field]
	if !ok {
		return -1
	}
	return columnIndex(table.Headers, mapping.Column)
}

// parseNumeric coerces a cell to a number, tolerating currency symbols and
// thousands separators. Unparsable cells become nil.
func parseNumeric(cell string) *float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}

	cell = strings.TrimLeft(cell, "$£€")
	cell = strings.ReplaceAll(cell, ",", "")
	cell = strings.TrimSpace(cell)

	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	return &value
}

// parseDate parses a date cell using the detected layout first, falling
// back to the full layout list. Time-of-day components are truncated so
// every date is a calendar day.
func (n *Normalizer) parseDate(cell string, info *DateFormatInfo) *time.Time {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}

	if info != nil && info.Layout != "" {
		if t, err := time.Parse(info.Layout, cell); err == nil {
			day := t.Truncate(24 * time.Hour)
			return &day
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			day := t.Truncate(24 * time.Hour)
			return &day
		}
	}

	return nil
}
