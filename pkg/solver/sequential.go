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
	"time"

	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/llm-d/llm-d-hour-scheduler/internal/logging"
	"github.com/llm-d/llm-d-hour-scheduler/pkg/config"
	"github.com/llm-d/llm-d-hour-scheduler/pkg/core"
)

// SequentialSolver implements the Solver interface with a single depth-first search
type SequentialSolver struct {
	config   *config.SolverConfig
	observer Observer
}

// Solve runs the backtracking search on the calling goroutine
func (s *SequentialSolver) Solve(ctx context.Context, problem *core.Problem) (*Result, error) {
	logger := ctrl.LoggerFrom(ctx)
	start := time.Now()

	if result, ok := trivialResult(problem); ok {
		result.Stats.Duration = time.Since(start)
		logger.V(logging.DEBUG).Info("Solved without search",
			"providers", problem.NumProviders(),
			"requests", problem.NumRequests(),
			"feasible", result.Feasible)
		return result, nil
	}

	ctx, cancel := withTimeout(ctx, s.config.Timeout)
	defer cancel()

	st := newSearch(problem, s.config, nil, s.observer)
	ok, err := st.place(ctx, 0)
	stats := Stats{Nodes: st.nodes, Backtracks: st.backtracks, Duration: time.Since(start)}
	if err != nil {
		logger.V(logging.DEBUG).Info("Search aborted",
			"nodes", stats.Nodes,
			"error", err.Error())
		return &Result{Stats: stats}, err
	}

	result := &Result{Feasible: ok, Stats: stats}
	if ok {
		result.Assignment = st.assignment()
	}
	logger.V(logging.DEBUG).Info("Search finished",
		"strategy", SequentialStrategy.String(),
		"feasible", ok,
		"nodes", stats.Nodes,
		"backtracks", stats.Backtracks,
		"duration", stats.Duration)
	return result, nil
}
