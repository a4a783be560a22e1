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
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// HistoryRun is one stored analysis run summary
type HistoryRun struct {
	ID           int64     `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Source       string    `json:"source"`
	RowCount     int       `json:"row_count"`
	QualityScore int       `json:"quality_score"`
	GrowthRate   float64   `json:"growth_rate"`
	Accuracy     string    `json:"accuracy"`
}

// Storage persists analysis history in sqlite and caches results on disk
type Storage struct {
	basePath string
	db       *sql.DB
	cache    *Cache
	logger   *Logger
}

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	source TEXT NOT NULL,
	row_count INTEGER NOT NULL,
	quality_score INTEGER NOT NULL,
	growth_rate REAL NOT NULL,
	accuracy TEXT NOT NULL,
	result TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// NewStorage creates the storage directory, history database and cache
func NewStorage(basePath string, logger *Logger) (*Storage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, &StorageError{
			Operation: "create_directory",
			Path:      basePath,
			Err:       err,
		}
	}

	dbPath := filepath.Join(basePath, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &StorageError{
			Operation: "open_database",
			Path:      dbPath,
			Err:       err,
		}
	}

	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, &StorageError{
			Operation: "create_schema",
			Path:      dbPath,
			Err:       err,
		}
	}

	cache, err := NewCache(basePath, logger)
	if err != nil {
		db.Close()
		return nil, &StorageError{
			Operation: "initialize_cache",
			Path:      basePath,
			Err:       err,
		}
	}

	logger.Debug("Storage initialized", "path", basePath)

	return &Storage{
		basePath: basePath,
		db:       db,
		cache:    cache,
		logger:   logger,
	}, nil
}

// SaveRun appends an analysis result to the history database
func (s *Storage) SaveRun(result *AnalysisResult) error {
	s.logger.LogStorageOperation("save_run", s.basePath)

	payload, err := json.Marshal(result)
	if err != nil {
		return &StorageError{
			Operation: "encode_result",
			Path:      s.basePath,
			Err:       err,
		}
	}

	qualityScore := 0
	if result.Quality != nil {
		qualityScore = result.Quality.Score
	}
	growthRate := 0.0
	accuracy := ""
	if result.Forecast != nil {
		growthRate = result.Forecast.GrowthRate
		accuracy = result.Forecast.PredictionAccuracy
	}

	_, err = s.db.Exec(
		`INSERT INTO runs (created_at, source, row_count, quality_score, growth_rate, accuracy, result)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.GeneratedAt.Format(time.RFC3339),
		result.Source,
		result.RowCount,
		qualityScore,
		growthRate,
		accuracy,
		string(payload),
	)
	if err != nil {
		return &StorageError{
			Operation: "insert_run",
			Path:      s.basePath,
			Err:       err,
		}
	}

	return nil
}

// ListRuns returns the most recent run summaries, newest first
func (s *Storage) ListRuns(limit int) ([]HistoryRun, error) {
	rows, err := s.db.Query(
		`SELECT id, created_at, source, row_count, quality_score, growth_rate, accuracy
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, &StorageError{
			Operation: "query_runs",
			Path:      s.basePath,
			Err:       err,
		}
	}
	defer rows.Close()

	var runs []HistoryRun
	for rows.Next() {
		var run HistoryRun
		var createdAt string
		if err := rows.Scan(&run.ID, &createdAt, &run.Source, &run.RowCount,
			&run.QualityScore, &run.GrowthRate, &run.Accuracy); err != nil {
			return nil, &StorageError{
				Operation: "scan_run",
				Path:      s.basePath,
				Err:       err,
			}
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = t
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{
			Operation: "iterate_runs",
			Path:      s.basePath,
			Err:       err,
		}
	}

	return runs, nil
}

// LoadRun loads a full stored analysis result by id
func (s *Storage) LoadRun(id int64) (*AnalysisResult, error) {
	var payload string
	err := s.db.QueryRow(`SELECT result FROM runs WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		return nil, &StorageError{
			Operation: "load_run",
			Path:      s.basePath,
			Err:       err,
		}
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, &StorageError{
			Operation: "decode_result",
			Path:      s.basePath,
			Err:       err,
		}
	}
	return &result, nil
}

// SaveCache saves data to cache with a TTL (time-to-live)
func (s *Storage) SaveCache(key string, data interface{}, ttl time.Duration) error {
	return s.cache.Set(key, data, ttl)
}

// LoadCache loads data from cache if it exists and hasn't expired
func (s *Storage) LoadCache(key string, target interface{}) (bool, error) {
	return s.cache.Get(key, target)
}

// ClearCache clears all cache entries
func (s *Storage) ClearCache() error {
	return s.cache.Clear()
}

// Close closes all storage resources
func (s *Storage) Close() error {
	var firstErr error
	if s.cache != nil {
		firstErr = s.cache.Close()
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
