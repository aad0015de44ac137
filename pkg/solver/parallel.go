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
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/llm-d/llm-d-hour-scheduler/internal/logging"
	"github.com/llm-d/llm-d-hour-scheduler/pkg/config"
	"github.com/llm-d/llm-d-hour-scheduler/pkg/core"
)

// ParallelSolver implements the Solver interface by exploring the provider
// choices of the first request concurrently. Each branch owns its own search
// state. The first branch to succeed wins and the others are cancelled, so the
// verdict matches the sequential strategy while the returned schedule may be
// any valid one.
type ParallelSolver struct {
	config   *config.SolverConfig
	observer Observer
}

// Solve runs one depth-first search per admissible provider of the first request
func (s *ParallelSolver) Solve(ctx context.Context, problem *core.Problem) (*Result, error) {
	logger := ctrl.LoggerFrom(ctx)
	start := time.Now()

	if result, ok := trivialResult(problem); ok {
		result.Stats.Duration = time.Since(start)
		return result, nil
	}

	ctx, cancel := withTimeout(ctx, s.config.Timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.EffectiveParallelism())
	searchCtx, stop := context.WithCancel(gctx)
	defer stop()

	var (
		total      atomic.Int64
		backtracks atomic.Int64
		found      atomic.Bool
		once       sync.Once
		winner     *search
	)

	// The root node is shared by every branch.
	root := newSearch(problem, s.config, &total, nil)
	if err := root.visit(ctx); err != nil {
		return &Result{Stats: Stats{Nodes: total.Load(), Duration: time.Since(start)}}, err
	}

	for p := range root.providers {
		if !root.fits(0, p) {
			continue
		}
		g.Go(func() error {
			if searchCtx.Err() != nil {
				return nil
			}
			st := newSearch(problem, s.config, &total, s.observer)
			st.commit(0, p)
			ok, err := st.place(searchCtx, 1)
			backtracks.Add(st.backtracks)
			if err != nil {
				if found.Load() {
					return nil
				}
				return err
			}
			if ok {
				once.Do(func() {
					winner = st
					found.Store(true)
					stop()
				})
				return nil
			}
			// The whole branch failed: its root placement is undone too.
			backtracks.Add(1)
			return nil
		})
	}
	err := g.Wait()

	stats := Stats{Nodes: total.Load(), Backtracks: backtracks.Load(), Duration: time.Since(start)}
	if winner != nil {
		logger.V(logging.DEBUG).Info("Search finished",
			"strategy", ParallelStrategy.String(),
			"feasible", true,
			"nodes", stats.Nodes,
			"duration", stats.Duration)
		return &Result{Feasible: true, Assignment: winner.assignment(), Stats: stats}, nil
	}
	if err != nil {
		logger.V(logging.DEBUG).Info("Search aborted",
			"nodes", stats.Nodes,
			"error", err.Error())
		return &Result{Stats: stats}, err
	}
	logger.V(logging.DEBUG).Info("Search finished",
		"strategy", ParallelStrategy.String(),
		"feasible", false,
		"nodes", stats.Nodes,
		"duration", stats.Duration)
	return &Result{Feasible: false, Stats: stats}, nil
}
