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

// SchemaError means column headers could not be resolved to canonical
// fields. It is fatal: nothing downstream is meaningful without a mapping.
type SchemaError struct {
	Columns []string
	Message string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema unresolved: %s (raw columns: %s)", e.Message, strings.Join(e.Columns, ", "))
}

// FieldError means a component's mandatory canonical field is missing.
// Fatal for that component only; others continue independently.
type FieldError struct {
	Component string
	Field     string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s requires the %q field, which could not be derived from the uploaded data", e.Component, e.Field)
}

// DataError means there is not enough data for a trustworthy result. It is
// not surfaced to callers; components translate it into their documented
// fallback output.
type DataError struct {
	Component string
	Message   string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: %s", e.Component, e.Message)
}

// LoadError represents a failure reading or parsing the input file
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// StorageError represents a history store or cache operation error
type StorageError struct {
	Operation string
	Path      string
	Err       error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s at %s: %v", e.Operation, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Field, e.Message)
}
