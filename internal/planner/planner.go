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
// Package planner runs one scheduling round for an HourSchedule and records
// the outcome in its status.
package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/utils/clock"
	"k8s.io/utils/ptr"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/llm-d/llm-d-hour-scheduler/api/v1alpha1"
	"github.com/llm-d/llm-d-hour-scheduler/internal/loader"
	"github.com/llm-d/llm-d-hour-scheduler/internal/logging"
	"github.com/llm-d/llm-d-hour-scheduler/internal/metrics"
	"github.com/llm-d/llm-d-hour-scheduler/pkg/config"
	"github.com/llm-d/llm-d-hour-scheduler/pkg/core"
	"github.com/llm-d/llm-d-hour-scheduler/pkg/solver"
)

// Planner decides HourSchedules with a configured solver.
type Planner struct {
	config   *config.SolverConfig
	strategy solver.Strategy
	recorder *metrics.Recorder
	clock    clock.PassiveClock
}

// Option customizes a Planner.
type Option func(*Planner)

// WithRecorder records every run on r.
func WithRecorder(r *metrics.Recorder) Option {
	return func(p *Planner) {
		p.recorder = r
	}
}

// WithClock sets the clock stamping LastRunTime.
func WithClock(c clock.PassiveClock) Option {
	return func(p *Planner) {
		p.clock = c
	}
}

// NewPlanner creates a Planner. A nil config selects the solver defaults.
func NewPlanner(cfg *config.SolverConfig, opts ...Option) (*Planner, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid solver configuration: %w", err)
	}
	strategy, err := solver.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	p := &Planner{
		config:   cfg,
		strategy: strategy,
		clock:    clock.RealClock{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Plan solves the problem described by hs.Spec and writes the outcome into
// hs.Status. Infeasibility is not an error. Malformed specs and aborted
// searches are returned as errors after the status has been updated.
func (p *Planner) Plan(ctx context.Context, hs *v1alpha1.HourSchedule) (*solver.Result, error) {
	logger := ctrl.LoggerFrom(ctx).WithValues("hourSchedule", hs.Name)

	hs.Status.LastRunTime = metav1.NewTime(p.clock.Now())
	hs.Status.Feasible = nil
	hs.Status.Assignments = nil
	hs.Status.Stats = v1alpha1.SearchStats{}

	problem, err := loader.ToProblem(hs.Spec)
	if err != nil {
		p.recorder.ObserveSolve(p.strategy.String(), metrics.OutcomeError, solver.Stats{})
		p.setCondition(hs, metav1.ConditionFalse, v1alpha1.ReasonInvalidProblem, err.Error())
		logger.Error(err, "Invalid scheduling problem")
		return nil, err
	}

	var opts []solver.Option
	if trace := logger.V(logging.TRACE); trace.Enabled() {
		opts = append(opts, solver.WithObserver(traceObserver(trace)))
	}
	s, err := solver.NewSolver(p.strategy, p.config, opts...)
	if err != nil {
		return nil, err
	}

	logger.V(logging.VERBOSE).Info("Solving",
		"strategy", p.strategy.String(),
		"providers", problem.NumProviders(),
		"requests", problem.NumRequests(),
		"capacity", problem.TotalCapacity(),
		"demand", problem.TotalDemand())

	result, err := s.Solve(ctx, problem)
	var stats solver.Stats
	if result != nil {
		stats = result.Stats
	}
	p.recorder.ObserveSolve(p.strategy.String(), metrics.Outcome(result, err), stats)
	hs.Status.Stats = v1alpha1.SearchStats{Nodes: stats.Nodes, Backtracks: stats.Backtracks}

	if err != nil {
		p.setCondition(hs, metav1.ConditionUnknown, v1alpha1.ReasonSearchAborted, err.Error())
		logger.Error(err, "Search aborted", "nodes", stats.Nodes)
		return result, err
	}

	hs.Status.Feasible = ptr.To(result.Feasible)
	if result.Feasible {
		if verr := result.Assignment.Verify(problem); verr != nil {
			return result, fmt.Errorf("solver returned an invalid schedule: %w", verr)
		}
		hs.Status.Assignments = toProviderAssignments(result.Assignment)
		p.setCondition(hs, metav1.ConditionTrue, v1alpha1.ReasonScheduleFound,
			fmt.Sprintf("all %d requests scheduled", problem.NumRequests()))
	} else {
		p.setCondition(hs, metav1.ConditionFalse, v1alpha1.ReasonNoSchedule,
			"no schedule serves every request")
	}

	logger.Info("Schedule decided",
		"feasible", result.Feasible,
		"nodes", stats.Nodes,
		"backtracks", stats.Backtracks,
		"duration", stats.Duration)
	return result, nil
}

func (p *Planner) setCondition(hs *v1alpha1.HourSchedule, status metav1.ConditionStatus, reason, message string) {
	meta.SetStatusCondition(&hs.Status.Conditions, metav1.Condition{
		Type:               v1alpha1.TypeScheduled,
		Status:             status,
		ObservedGeneration: hs.Generation,
		LastTransitionTime: hs.Status.LastRunTime,
		Reason:             reason,
		Message:            message,
	})
}

// toProviderAssignments flattens a schedule, providers and requests sorted by name.
func toProviderAssignments(a core.Assignment) []v1alpha1.ProviderAssignment {
	out := make([]v1alpha1.ProviderAssignment, 0, len(a))
	for _, provider := range a.Providers() {
		out = append(out, v1alpha1.ProviderAssignment{
			Provider: provider,
			Requests: sets.List(a[provider]),
		})
	}
	return out
}

func traceObserver(logger logr.Logger) solver.Observer {
	return func(e solver.Event) {
		switch e.Kind {
		case solver.Commit:
			logger.Info("Commit", "depth", e.Depth, "request", e.Request, "provider", e.Provider)
		case solver.Undo:
			logger.Info("Backtrack", "depth", e.Depth, "request", e.Request, "provider", e.Provider)
		}
	}
}

// IsAborted reports whether err ended a search before it decided the problem.
func IsAborted(err error) bool {
	return errors.Is(err, solver.ErrBudgetExhausted) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
