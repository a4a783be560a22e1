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
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// progressThreshold is the row count above which loading shows a progress bar
const progressThreshold = 5000

// LoadTable reads a delimited file into a raw table. The first record is
// taken as headers; the normalizer decides later whether they are real.
// Ragged rows are allowed, the quality assessor counts the short cells as
// missing.
func LoadTable(path string, logger *Logger) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		reader.Comma = '\t'
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(records) == 0 {
		return nil, &LoadError{Path: path, Err: errors.New("file contains no records")}
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := records[1:]
	table := &Table{
		Headers: headers,
		Rows:    make([][]string, 0, len(rows)),
	}

	var bar *progressbar.ProgressBar
	if len(rows) > progressThreshold {
		bar = progressbar.Default(int64(len(rows)), "loading rows")
	}
	for _, record := range rows {
		table.Rows = append(table.Rows, record)
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
	}

	logger.Debug("Table loaded", "path", path, "rows", len(table.Rows), "columns", len(headers))

	return table, nil
}
