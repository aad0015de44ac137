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

package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/llm-d/llm-d-hour-scheduler/pkg/solver"
)

const (
	namespace = "hours"
	subsystem = "solver"

	// SolvesTotalMetric counts finished solves by strategy and outcome.
	SolvesTotalMetric = namespace + "_" + subsystem + "_solves_total"
	// NodesMetric is the distribution of search nodes visited per solve.
	NodesMetric = namespace + "_" + subsystem + "_nodes"
	// DurationMetric is the distribution of solve wall time.
	DurationMetric = namespace + "_" + subsystem + "_duration_seconds"
)

// Outcome labels
const (
	OutcomeFeasible   = "feasible"
	OutcomeInfeasible = "infeasible"
	OutcomeError      = "error"
)

// Recorder records solver metrics on a registry chosen by the caller.
type Recorder struct {
	solves   *prometheus.CounterVec
	nodes    *prometheus.HistogramVec
	duration *prometheus.HistogramVec
}

// NewRecorder creates the solver collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solves_total",
				Help:      "Number of solves by strategy and outcome.",
			},
			[]string{"strategy", "outcome"},
		),
		nodes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "nodes",
				Help:      "Search nodes visited per solve.",
				Buckets:   prometheus.ExponentialBuckets(1, 10, 7),
			},
			[]string{"strategy"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "duration_seconds",
				Help:      "Wall time per solve in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"strategy"},
		),
	}
	for _, c := range []prometheus.Collector{r.solves, r.nodes, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register solver metrics: %w", err)
		}
	}
	return r, nil
}

// Outcome maps a solve result to its outcome label.
func Outcome(result *solver.Result, err error) string {
	switch {
	case err != nil:
		return OutcomeError
	case result != nil && result.Feasible:
		return OutcomeFeasible
	default:
		return OutcomeInfeasible
	}
}

// ObserveSolve records one finished solve.
func (r *Recorder) ObserveSolve(strategy, outcome string, stats solver.Stats) {
	if r == nil {
		return
	}
	r.solves.WithLabelValues(strategy, outcome).Inc()
	r.nodes.WithLabelValues(strategy).Observe(float64(stats.Nodes))
	r.duration.WithLabelValues(strategy).Observe(stats.Duration.Seconds())
}

// WriteText writes every metric family of g in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
