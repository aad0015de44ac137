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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/llm-d/llm-d-hour-scheduler/pkg/config"
	"github.com/llm-d/llm-d-hour-scheduler/pkg/core"
)

// ErrBudgetExhausted is returned when a search visits more nodes than allowed.
var ErrBudgetExhausted = errors.New("search node budget exhausted")

// Solver is an interface that defines the method for scheduling requests onto providers
type Solver interface {
	// Solve searches for a schedule serving every request of the problem
	Solve(ctx context.Context, problem *core.Problem) (*Result, error)
}

// Strategy is an enumeration of the different strategies that can be used by the Solver
type Strategy int

// enumeration of Strategy
const (
	SequentialStrategy Strategy = iota
	ParallelStrategy
)

func (s Strategy) String() string {
	switch s {
	case SequentialStrategy:
		return config.StrategySequential
	case ParallelStrategy:
		return config.StrategyParallel
	default:
		return "unknown"
	}
}

// ParseStrategy maps a configuration name to a Strategy. The empty string is sequential.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "", config.StrategySequential:
		return SequentialStrategy, nil
	case config.StrategyParallel:
		return ParallelStrategy, nil
	default:
		return 0, fmt.Errorf("unsupported solver strategy: %q", name)
	}
}

// Stats describes the work done by one solve.
type Stats struct {
	// Nodes is the number of search nodes visited, the root included.
	Nodes int64
	// Backtracks is the number of placements undone.
	Backtracks int64
	// Duration is the wall time of the solve.
	Duration time.Duration
}

// Result is the outcome of a solve.
type Result struct {
	// Feasible reports whether every request could be placed.
	Feasible bool
	// Assignment holds one valid schedule when Feasible, and is nil otherwise.
	// Every provider of the problem has an entry, possibly empty.
	Assignment core.Assignment
	// Stats holds search statistics.
	Stats Stats
}

// EventKind distinguishes the transitions reported to an Observer.
type EventKind int

const (
	// Commit is reported when a request is tentatively placed with a provider.
	Commit EventKind = iota
	// Undo is reported when a placement is rolled back.
	Undo
)

// Event is a single search transition.
type Event struct {
	Kind     EventKind
	Depth    int
	Request  string
	Provider string
}

// Observer receives every search transition. With the parallel strategy it is
// called from several goroutines.
type Observer func(Event)

type options struct {
	observer Observer
}

// Option customizes a Solver.
type Option func(*options)

// WithObserver installs a per-node observer.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// NewSolver is a factory that creates a new Solver based on the provided strategy.
// A nil config selects the defaults.
func NewSolver(strategy Strategy, cfg *config.SolverConfig, opts ...Option) (Solver, error) {
	if cfg == nil {
		cfg = config.Default()
	} else {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid solver configuration: %w", err)
		}
		normalized := *cfg
		normalized.Normalize()
		cfg = &normalized
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	switch strategy {
	case SequentialStrategy:
		return &SequentialSolver{config: cfg, observer: o.observer}, nil
	case ParallelStrategy:
		return &ParallelSolver{config: cfg, observer: o.observer}, nil
	default:
		return nil, fmt.Errorf("unsupported solver strategy: %v", strategy)
	}
}

// NewSolverFromConfig creates the Solver named by cfg.Strategy.
func NewSolverFromConfig(cfg *config.SolverConfig, opts ...Option) (Solver, error) {
	name := ""
	if cfg != nil {
		name = cfg.Strategy
	}
	strategy, err := ParseStrategy(name)
	if err != nil {
		return nil, err
	}
	return NewSolver(strategy, cfg, opts...)
}

// Solve decides whether every request can be served by exactly one provider
// without exceeding any capacity, using the sequential strategy with default
// settings. Malformed input is reported as an error matching
// core.ErrMalformedInput; an infeasible problem returns false with a nil error.
func Solve(ctx context.Context, providers []core.Provider, requests []core.Request) (bool, core.Assignment, error) {
	problem, err := core.NewProblem(providers, requests)
	if err != nil {
		return false, nil, err
	}
	s, err := NewSolver(SequentialStrategy, nil)
	if err != nil {
		return false, nil, err
	}
	result, err := s.Solve(ctx, problem)
	if err != nil {
		return false, nil, err
	}
	return result.Feasible, result.Assignment, nil
}

// trivialResult settles the problems that need no search: no requests is
// always feasible, requests without providers never are.
func trivialResult(problem *core.Problem) (*Result, bool) {
	if problem.NumRequests() == 0 {
		return &Result{Feasible: true, Assignment: buildAssignment(problem.Providers(), nil, nil)}, true
	}
	if problem.NumProviders() == 0 {
		return &Result{Feasible: false}, true
	}
	return nil, false
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}
