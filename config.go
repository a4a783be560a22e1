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
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// Forecast settings
	ForecastHorizonDays int `yaml:"forecast_horizon_days"`
	MinForecastDays     int `yaml:"min_forecast_days"`

	// Segmentation settings
	ClusterCount    int   `yaml:"cluster_count"`
	ClusterSeed     int64 `yaml:"cluster_seed"`
	ClusterRestarts int   `yaml:"cluster_restarts"`

	// Pattern detection settings
	MinAnomalyPoints int `yaml:"min_anomaly_points"`
	MaxAnomalies     int `yaml:"max_anomalies"`

	// Storage
	StoragePath string `yaml:"storage_path"`

	// Cache TTL in hours; 0 disables the result cache
	CacheTTLHours int `yaml:"cache_ttl_hours"`

	// Debugging
	Debug bool `yaml:"debug"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Set defaults
	config := &Config{
		ForecastHorizonDays: forecastHorizonDays,
		MinForecastDays:     minForecastDays,
		ClusterCount:        3,
		ClusterSeed:         42,
		ClusterRestarts:     10,
		MinAnomalyPoints:    minAnomalyPoints,
		MaxAnomalies:        maxAnomalies,
		StoragePath:         getDefaultStoragePath(),
		CacheTTLHours:       24,
		Debug:               false,
	}

	// If no path provided, return defaults with env var overrides
	if path == "" {
		config.applyEnvironmentVariables()
		return config, nil
	}

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Field: "config file", Message: fmt.Sprintf("failed to read %s: %v", path, err)}
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, &ConfigError{Field: "config file", Message: fmt.Sprintf("failed to parse %s: %v", path, err)}
	}

	// Apply environment variable overrides
	config.applyEnvironmentVariables()

	return config, nil
}

// getDefaultStoragePath returns the default storage path
func getDefaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".salescope"
	}
	return filepath.Join(home, ".config", "salescope")
}

// applyEnvironmentVariables overrides config with environment variables
func (c *Config) applyEnvironmentVariables() {
	if val := os.Getenv("SALESCOPE_STORAGE_PATH"); val != "" {
		c.StoragePath = val
	}
	if val := os.Getenv("SALESCOPE_CLUSTER_SEED"); val != "" {
		if seed, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.ClusterSeed = seed
		}
	}
	if val := os.Getenv("SALESCOPE_CACHE_TTL_HOURS"); val != "" {
		if ttl, err := strconv.Atoi(val); err == nil {
			c.CacheTTLHours = ttl
		}
	}
	if val := os.Getenv("SALESCOPE_DEBUG"); val == "true" || val == "1" {
		c.Debug = true
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	if c.ForecastHorizonDays < 1 || c.ForecastHorizonDays > 365 {
		errors = append(errors, "forecast_horizon_days must be between 1 and 365")
	}

	if c.MinForecastDays < 2 {
		errors = append(errors, "min_forecast_days must be at least 2")
	}

	if c.ClusterCount != 3 {
		errors = append(errors, "cluster_count must be 3 (segments are labeled High Value / Occasional / One-Time)")
	}

	if c.ClusterRestarts < 1 {
		errors = append(errors, "cluster_restarts must be at least 1")
	}

	if c.MinAnomalyPoints < 4 {
		errors = append(errors, "min_anomaly_points must be at least 4 to compute quartiles")
	}

	if c.MaxAnomalies < 1 {
		errors = append(errors, "max_anomalies must be at least 1")
	}

	if c.CacheTTLHours < 0 {
		errors = append(errors, "cache_ttl_hours must not be negative")
	}

	// Set default storage path if empty
	if c.StoragePath == "" {
		c.StoragePath = getDefaultStoragePath()
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}
