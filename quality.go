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
	"strings"
)

// AssessQuality scores the raw table from 0 to 100. It is a pure function:
// no fallback data is needed because the score itself communicates how
// trustworthy the dataset is.
//
// The score starts at 100 and takes ordered deductions for missing cells,
// duplicate rows and statistical outliers; within each category only the
// worse tier applies.
func AssessQuality(ds *Dataset) *QualityReport {
	table := ds.Raw
	rowCount := len(table.Rows)
	colCount := len(table.Headers)

	report := &QualityReport{
		Score:  100,
		Issues: []string{},
		Stats: QualityStats{
			TotalRows:    rowCount,
			TotalColumns: colCount,
		},
	}

	if rowCount == 0 || colCount == 0 {
		report.Score = 0
		report.Comment = "Poor data quality, requires cleanup"
		report.Color = "danger"
		report.Issues = append(report.Issues, "Dataset is empty")
		return report
	}

	score := 100

	// Missing cells
	missing := 0
	for _, row := range table.Rows {
		for col := 0; col < colCount; col++ {
			if col >= len(row) || strings.TrimSpace(row[col]) == "" {
				missing++
			}
		}
	}
	missingPct := float64(missing) / float64(rowCount*colCount) * 100
	report.Stats.MissingPct = missingPct
	if missingPct > 10 {
		score -= 30
		report.Issues = append(report.Issues, fmt.Sprintf("High missing data: %.1f%%", missingPct))
	} else if missingPct > 5 {
		score -= 15
		report.Issues = append(report.Issues, fmt.Sprintf("Some missing data: %.1f%%", missingPct))
	}

	// Duplicate rows
	seen := make(map[string]bool, rowCount)
	duplicates := 0
	for _, row := range table.Rows {
		key := strings.Join(row, "\x1f")
		if seen[key] {
			duplicates++
		} else {
			seen[key] = true
		}
	}
	duplicatePct := float64(duplicates) / float64(rowCount) * 100
	report.Stats.DuplicatePct = duplicatePct
	if duplicatePct > 5 {
		score -= 25
		report.Issues = append(report.Issues, fmt.Sprintf("High duplicates: %.1f%%", duplicatePct))
	} else if duplicatePct > 0 {
		score -= 10
		report.Issues = append(report.Issues, fmt.Sprintf("Some duplicates: %.1f%%", duplicatePct))
	}

	// Outlier rows: a row counts once no matter how many of its numeric
	// values fall outside the IQR bounds of their column
	outlierRows := countOutlierRows(table)
	outlierPct := float64(outlierRows) / float64(rowCount) * 100
	report.Stats.OutlierPct = outlierPct
	if outlierPct > 10 {
		score -= 25
		report.Issues = append(report.Issues, fmt.Sprintf("Many outliers: %.1f%%", outlierPct))
	} else if outlierPct > 5 {
		score -= 15
		report.Issues = append(report.Issues, fmt.Sprintf("Some outliers: %.1f%%", outlierPct))
	}

	if score < 0 {
		score = 0
	}
	report.Score = score

	switch {
	case score >= 90:
		report.Comment = "Excellent data quality!"
		report.Color = "success"
	case score >= 75:
		report.Comment = "Good data quality with minor issues"
		report.Color = "warning"
	case score >= 60:
		report.Comment = "Fair data quality, needs attention"
		report.Color = "warning"
	default:
		report.Comment = "Poor data quality, requires cleanup"
		report.Color = "danger"
	}

	return report
}

// countOutlierRows unions IQR outliers across all numeric columns. A column
// is treated as numeric when more than half of its non-empty cells parse as
// numbers.
func countOutlierRows(table *Table) int {
	outliers := make(map[int]bool)

	for col := range table.Headers {
		values := make([]float64, 0, len(table.Rows))
		rowIdx := make([]int, 0, len(table.Rows))
		nonEmpty := 0

		for i, row := range table.Rows {
			if col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			nonEmpty++
			if v := parseNumeric(cell); v != nil {
				values = append(values, *v)
				rowIdx = append(rowIdx, i)
			}
		}

		if nonEmpty == 0 || float64(len(values))/float64(nonEmpty) <= 0.5 {
			continue
		}

		lower, upper, _, _ := iqrBounds(values)
		for j, v := range values {
			if v < lower || v > upper {
				outliers[rowIdx[j]] = true
			}
		}
	}

	return len(outliers)
}
