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
	"fmt"
	"sort"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Assignment maps a provider name to the names of the requests it serves.
type Assignment map[string]sets.Set[string]

// Pair is one (provider, request) edge of an assignment.
type Pair struct {
	Provider string
	Request  string
}

// Verify checks that every request of the problem is served by exactly one
// known provider and that no provider is loaded beyond its capacity.
func (a Assignment) Verify(p *Problem) error {
	owner := make(map[string]string, p.NumRequests())
	for provider, requests := range a {
		pr, ok := p.Provider(provider)
		if !ok {
			return fmt.Errorf("%w: unknown provider %q", ErrInvalidAssignment, provider)
		}
		load := 0
		for request := range requests {
			r, ok := p.Request(request)
			if !ok {
				return fmt.Errorf("%w: provider %q serves unknown request %q", ErrInvalidAssignment, provider, request)
			}
			if prev, dup := owner[request]; dup {
				return fmt.Errorf("%w: request %q served by both %q and %q", ErrInvalidAssignment, request, prev, provider)
			}
			owner[request] = provider
			load += r.Hours
		}
		if load > pr.Capacity {
			return fmt.Errorf("%w: provider %q assigned %d hours, capacity %d", ErrInvalidAssignment, provider, load, pr.Capacity)
		}
	}
	for _, r := range p.requests {
		if _, ok := owner[r.Name]; !ok {
			return fmt.Errorf("%w: request %q is not served", ErrInvalidAssignment, r.Name)
		}
	}
	return nil
}

// Load returns the hours committed to the given provider. Unknown request
// names are ignored.
func (a Assignment) Load(p *Problem, provider string) int {
	load := 0
	for request := range a[provider] {
		if r, ok := p.Request(request); ok {
			load += r.Hours
		}
	}
	return load
}

// ProviderOf returns the provider serving the given request.
func (a Assignment) ProviderOf(request string) (string, bool) {
	for provider, requests := range a {
		if requests.Has(request) {
			return provider, true
		}
	}
	return "", false
}

// Providers returns the provider names in ascending order.
func (a Assignment) Providers() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pairs returns every (provider, request) edge, sorted by provider then request.
func (a Assignment) Pairs() []Pair {
	var pairs []Pair
	for _, provider := range a.Providers() {
		for _, request := range sets.List(a[provider]) {
			pairs = append(pairs, Pair{Provider: provider, Request: request})
		}
	}
	return pairs
}

// Clone returns a deep copy of the assignment.
func (a Assignment) Clone() Assignment {
	if a == nil {
		return nil
	}
	out := make(Assignment, len(a))
	for provider, requests := range a {
		out[provider] = requests.Clone()
	}
	return out
}
