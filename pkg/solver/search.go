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

package solver

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/llm-d/llm-d-hour-scheduler/pkg/config"
	"github.com/llm-d/llm-d-hour-scheduler/pkg/core"
)

const unassigned = -1

// search holds the state of one depth-first exploration. It is owned by a
// single goroutine and never outlives the solve that created it.
type search struct {
	providers []core.Provider
	requests  []core.Request

	// remaining[p] is provider p's capacity minus the hours committed on the current path.
	remaining []int
	// owner[r] is the provider index request r is committed to, or unassigned.
	owner []int

	nodes      int64
	backtracks int64

	// total, when set, counts nodes across all searches of a parallel solve.
	total         *atomic.Int64
	maxNodes      int64
	checkInterval int64
	observer      Observer
}

func newSearch(problem *core.Problem, cfg *config.SolverConfig, total *atomic.Int64, observer Observer) *search {
	s := &search{
		providers:     problem.Providers(),
		requests:      problem.Requests(),
		total:         total,
		maxNodes:      cfg.MaxNodes,
		checkInterval: cfg.CheckInterval,
		observer:      observer,
	}
	s.remaining = make([]int, len(s.providers))
	for i, p := range s.providers {
		s.remaining[i] = p.Capacity
	}
	s.owner = make([]int, len(s.requests))
	for i := range s.owner {
		s.owner[i] = unassigned
	}
	return s
}

// visit accounts for one search node and enforces the node budget and
// cancellation.
func (s *search) visit(ctx context.Context) error {
	s.nodes++
	visited := s.nodes
	if s.total != nil {
		visited = s.total.Add(1)
	}
	if s.maxNodes > 0 && visited > s.maxNodes {
		return fmt.Errorf("%w after %d nodes", ErrBudgetExhausted, s.maxNodes)
	}
	if s.checkInterval > 0 && s.nodes%s.checkInterval == 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("search cancelled after %d nodes: %w", s.nodes, err)
		}
	}
	return nil
}

func (s *search) fits(request, provider int) bool {
	return s.remaining[provider] >= s.requests[request].Hours
}

func (s *search) commit(request, provider int) {
	s.remaining[provider] -= s.requests[request].Hours
	s.owner[request] = provider
	if s.observer != nil {
		s.observer(Event{Kind: Commit, Depth: request, Request: s.requests[request].Name, Provider: s.providers[provider].Name})
	}
}

func (s *search) undo(request, provider int) {
	s.remaining[provider] += s.requests[request].Hours
	s.owner[request] = unassigned
	s.backtracks++
	if s.observer != nil {
		s.observer(Event{Kind: Undo, Depth: request, Request: s.requests[request].Name, Provider: s.providers[provider].Name})
	}
}

// place explores the subtree whose next unplaced request is next. It returns
// true with the successful placements left committed in owner, or false with
// all placements made below this node undone.
func (s *search) place(ctx context.Context, next int) (bool, error) {
	if next > len(s.requests) {
		panic(fmt.Sprintf("solver: search depth %d exceeds %d requests", next, len(s.requests)))
	}
	if err := s.visit(ctx); err != nil {
		return false, err
	}
	if next == len(s.requests) {
		return true, nil
	}
	for p := range s.providers {
		if !s.fits(next, p) {
			continue
		}
		s.commit(next, p)
		ok, err := s.place(ctx, next+1)
		if err != nil || ok {
			return ok, err
		}
		s.undo(next, p)
	}
	return false, nil
}

// assignment builds the schedule from a successful search.
func (s *search) assignment() core.Assignment {
	return buildAssignment(s.providers, s.requests, s.owner)
}
