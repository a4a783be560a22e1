// Copyright 2025 The salescope authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"
)

func main() {
	// Define command-line flags
	configPath := flag.String("config", "", "Path to configuration file (optional)")
	inputPath := flag.String("input", "", "Path to the sales file to analyze (CSV or TSV)")
	outputPath := flag.String("output", "", "Output file for report (default: stdout)")
	htmlOutput := flag.Bool("html", false, "Generate HTML report instead of Markdown")
	jsonOutput := flag.Bool("json", false, "Output raw analysis result as JSON")
	storeRun := flag.Bool("store", false, "Save this run to analysis history")
	historyCount := flag.Int("history", 0, "Show the last N stored runs and exit")
	noCache := flag.Bool("no-cache", false, "Skip the result cache")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	// Show version and exit
	if *showVersion {
		fmt.Printf("salescope %s\n", GetVersion())
		os.Exit(0)
	}

	// Initialize logger
	logger := NewLogger(*debug)
	logger.Info("Starting salescope", "version", GetVersion())

	// Load configuration
	config, err := LoadConfig(*configPath)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *debug {
		config.Debug = true
		logger = NewLogger(true)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Initialize storage
	logger.Info("Initializing storage", "path", config.StoragePath)
	storage, err := NewStorage(config.StoragePath, logger.WithComponent("storage"))
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	// History listing does not need an input file
	if *historyCount > 0 {
		runs, err := storage.ListRuns(*historyCount)
		if err != nil {
			logger.Error("Failed to list runs", "error", err)
			os.Exit(1)
		}
		if len(runs) == 0 {
			logger.UserMessage("No stored runs")
			return
		}
		for _, run := range runs {
			logger.UserMessage("%d  %s  %s  rows=%d  quality=%d  growth=%.1f%%  accuracy=%s",
				run.ID, run.CreatedAt.Format("2006-01-02 15:04"), run.Source,
				run.RowCount, run.QualityScore, run.GrowthRate, run.Accuracy)
		}
		return
	}

	if *inputPath == "" {
		logger.Error("No input file provided, use -input")
		flag.Usage()
		os.Exit(1)
	}

	// Load the raw table
	logger.Info("Loading sales data", "path", *inputPath)
	table, err := LoadTable(*inputPath, logger.WithComponent("loader"))
	if err != nil {
		logger.Error("Failed to load sales data", "error", err)
		os.Exit(1)
	}

	// Check the result cache before re-analyzing unchanged input
	cacheKey := HashTable(table)
	useCache := !*noCache && config.CacheTTLHours > 0

	var result *AnalysisResult
	if useCache {
		var cached AnalysisResult
		hit, err := storage.LoadCache(cacheKey, &cached)
		if err != nil {
			logger.Warn("Cache lookup failed", "error", err)
		} else if hit {
			logger.Info("Using cached analysis", "key", cacheKey[:12])
			result = &cached
		}
	}

	if result == nil {
		analyzer := NewAnalyzer(config, logger)

		logger.Info("Performing analysis")
		result, err = analyzer.Analyze(table, *inputPath)
		if err != nil {
			logger.Error("Failed to perform analysis", "error", err)
			os.Exit(1)
		}

		if useCache {
			ttl := time.Duration(config.CacheTTLHours) * time.Hour
			if err := storage.SaveCache(cacheKey, result, ttl); err != nil {
				logger.Warn("Failed to cache analysis", "error", err)
			}
		}
	}

	// Save to history on request
	if *storeRun {
		if err := storage.SaveRun(result); err != nil {
			logger.Warn("Failed to save run", "error", err)
		}
	}

	// Generate report (JSON, HTML or Markdown)
	switch {
	case *jsonOutput:
		if err := writeResultJSON(result, *outputPath); err != nil {
			logger.Error("Failed to write JSON result", "error", err)
			os.Exit(1)
		}
	case *htmlOutput:
		htmlReporter := NewHTMLReporter(logger)
		if err := htmlReporter.GenerateHTMLReport(result, *outputPath); err != nil {
			logger.Error("Failed to generate HTML report", "error", err)
			os.Exit(1)
		}
	default:
		reporter := NewReporter(logger)
		if err := reporter.GenerateReport(result, *outputPath); err != nil {
			logger.Error("Failed to generate report", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Analysis completed successfully")
}

// writeResultJSON dumps the full analysis result as indented JSON
func writeResultJSON(result *AnalysisResult, outputPath string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	data = append(data, '\n')

	if outputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outputPath, data, 0644)
}
