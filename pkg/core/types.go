/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package core

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrMalformedInput is matched by every error NewProblem returns.
	ErrMalformedInput = errors.New("malformed input")
	// ErrInvalidAssignment is matched by every error Assignment.Verify returns.
	ErrInvalidAssignment = errors.New("invalid assignment")
)

// Collection names used in validation errors.
const (
	CollectionProviders = "providers"
	CollectionRequests  = "requests"
)

// Provider offers a fixed number of service hours.
type Provider struct {
	// Name uniquely identifies the provider within a problem.
	Name string `json:"name" yaml:"name"`
	// Capacity is the total number of hours the provider can serve.
	Capacity int `json:"hours" yaml:"hours"`
}

// Request needs a fixed number of service hours from a single provider.
type Request struct {
	// Name uniquely identifies the request within a problem.
	Name string `json:"name" yaml:"name"`
	// Hours is the amount of service the request requires.
	Hours int `json:"hours" yaml:"hours"`
}

// ValidationError describes a single malformed entry of a problem.
type ValidationError struct {
	Collection string
	Name       string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %q: %s", ErrMalformedInput, e.Collection, e.Name, e.Reason)
}

// Unwrap lets callers match the error with errors.Is(err, ErrMalformedInput).
func (e *ValidationError) Unwrap() error {
	return ErrMalformedInput
}

// ProvidersFromMap converts a name to capacity map into providers sorted by name.
func ProvidersFromMap(m map[string]int) []Provider {
	names := sortedKeys(m)
	out := make([]Provider, len(names))
	for i, name := range names {
		out[i] = Provider{Name: name, Capacity: m[name]}
	}
	return out
}

// RequestsFromMap converts a name to hours map into requests sorted by name.
func RequestsFromMap(m map[string]int) []Request {
	names := sortedKeys(m)
	out := make([]Request, len(names))
	for i, name := range names {
		out[i] = Request{Name: name, Hours: m[name]}
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
