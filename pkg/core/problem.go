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

// Problem is an immutable, validated set of providers and requests.
type Problem struct {
	providers     []Provider
	requests      []Request
	providerIndex map[string]int
	requestIndex  map[string]int
}

// NewProblem validates the given collections and returns a Problem holding
// private copies of them. Names must be unique within each collection and all
// amounts must be non-negative.
func NewProblem(providers []Provider, requests []Request) (*Problem, error) {
	p := &Problem{
		providers:     make([]Provider, len(providers)),
		requests:      make([]Request, len(requests)),
		providerIndex: make(map[string]int, len(providers)),
		requestIndex:  make(map[string]int, len(requests)),
	}
	copy(p.providers, providers)
	copy(p.requests, requests)

	for i, pr := range p.providers {
		if _, exists := p.providerIndex[pr.Name]; exists {
			return nil, &ValidationError{Collection: CollectionProviders, Name: pr.Name, Reason: "duplicate name"}
		}
		if pr.Capacity < 0 {
			return nil, &ValidationError{Collection: CollectionProviders, Name: pr.Name, Reason: "negative capacity"}
		}
		p.providerIndex[pr.Name] = i
	}
	for i, r := range p.requests {
		if _, exists := p.requestIndex[r.Name]; exists {
			return nil, &ValidationError{Collection: CollectionRequests, Name: r.Name, Reason: "duplicate name"}
		}
		if r.Hours < 0 {
			return nil, &ValidationError{Collection: CollectionRequests, Name: r.Name, Reason: "negative hours"}
		}
		p.requestIndex[r.Name] = i
	}
	return p, nil
}

// Providers returns the providers in their original order.
func (p *Problem) Providers() []Provider {
	out := make([]Provider, len(p.providers))
	copy(out, p.providers)
	return out
}

// Requests returns the requests in their original order.
func (p *Problem) Requests() []Request {
	out := make([]Request, len(p.requests))
	copy(out, p.requests)
	return out
}

// Provider looks up a provider by name.
func (p *Problem) Provider(name string) (Provider, bool) {
	i, ok := p.providerIndex[name]
	if !ok {
		return Provider{}, false
	}
	return p.providers[i], true
}

// Request looks up a request by name.
func (p *Problem) Request(name string) (Request, bool) {
	i, ok := p.requestIndex[name]
	if !ok {
		return Request{}, false
	}
	return p.requests[i], true
}

func (p *Problem) NumProviders() int { return len(p.providers) }

func (p *Problem) NumRequests() int { return len(p.requests) }

// TotalCapacity is the sum of all provider capacities.
func (p *Problem) TotalCapacity() int {
	total := 0
	for _, pr := range p.providers {
		total += pr.Capacity
	}
	return total
}

// TotalDemand is the sum of all request hours.
func (p *Problem) TotalDemand() int {
	total := 0
	for _, r := range p.requests {
		total += r.Hours
	}
	return total
}
