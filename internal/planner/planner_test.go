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

package planner

import (
	"context"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/llm-d/llm-d-hour-scheduler/api/v1alpha1"
	"github.com/llm-d/llm-d-hour-scheduler/internal/logging"
	"github.com/llm-d/llm-d-hour-scheduler/internal/metrics"
	"github.com/llm-d/llm-d-hour-scheduler/pkg/config"
	"github.com/llm-d/llm-d-hour-scheduler/pkg/core"
	"github.com/llm-d/llm-d-hour-scheduler/pkg/solver"
)

func makeSchedule(providers []v1alpha1.ProviderSpec, requests []v1alpha1.RequestSpec) *v1alpha1.HourSchedule {
	return &v1alpha1.HourSchedule{
		TypeMeta: metav1.TypeMeta{
			APIVersion: v1alpha1.GroupVersion.String(),
			Kind:       v1alpha1.HourScheduleKind,
		},
		ObjectMeta: metav1.ObjectMeta{Name: "hs-test", Namespace: "default", Generation: 3},
		Spec: v1alpha1.HourScheduleSpec{
			Providers: providers,
			Requests:  requests,
		},
	}
}

func trapSchedule() *v1alpha1.HourSchedule {
	return makeSchedule(
		[]v1alpha1.ProviderSpec{{Name: "Workaholic", Hours: 10}, {Name: "Average", Hours: 8}, {Name: "Lazy", Hours: 6}},
		[]v1alpha1.RequestSpec{{Name: "Eight", Hours: 8}, {Name: "Six", Hours: 6}, {Name: "Five1", Hours: 5}, {Name: "Five2", Hours: 5}},
	)
}

func stressSchedule() *v1alpha1.HourSchedule {
	requests := make([]v1alpha1.RequestSpec, 17)
	for i := range requests {
		requests[i] = v1alpha1.RequestSpec{Name: "Patient " + string(rune('A'+i)), Hours: 2}
	}
	return makeSchedule([]v1alpha1.ProviderSpec{{Name: "Doctor A", Hours: 17}, {Name: "Doctor B", Hours: 17}}, requests)
}

const solvesHeader = `
# HELP hours_solver_solves_total Number of solves by strategy and outcome.
# TYPE hours_solver_solves_total counter
`

var _ = Describe("Planner", func() {
	var (
		ctx      context.Context
		registry *prometheus.Registry
		recorder *metrics.Recorder
		now      time.Time
		fake     *clocktesting.FakePassiveClock
	)

	BeforeEach(func() {
		ctx = logging.NewTestLoggerIntoContext(context.Background())
		registry = prometheus.NewRegistry()
		var err error
		recorder, err = metrics.NewRecorder(registry)
		Expect(err).NotTo(HaveOccurred())
		now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		fake = clocktesting.NewFakePassiveClock(now)
	})

	newPlanner := func(cfg *config.SolverConfig) *Planner {
		p, err := NewPlanner(cfg, WithRecorder(recorder), WithClock(fake))
		Expect(err).NotTo(HaveOccurred())
		return p
	}

	expectSolves := func(lines string) {
		Expect(testutil.GatherAndCompare(registry, strings.NewReader(solvesHeader+lines), metrics.SolvesTotalMetric)).To(Succeed())
	}

	Context("with a feasible problem", func() {
		It("should write the schedule and a Scheduled condition", func() {
			hs := trapSchedule()
			result, err := newPlanner(nil).Plan(ctx, hs)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Feasible).To(BeTrue())

			Expect(hs.Status.Feasible).NotTo(BeNil())
			Expect(*hs.Status.Feasible).To(BeTrue())
			Expect(hs.Status.Assignments).To(Equal([]v1alpha1.ProviderAssignment{
				{Provider: "Average", Requests: []string{"Eight"}},
				{Provider: "Lazy", Requests: []string{"Six"}},
				{Provider: "Workaholic", Requests: []string{"Five1", "Five2"}},
			}))
			Expect(hs.Status.Stats.Nodes).To(Equal(result.Stats.Nodes))
			Expect(hs.Status.Stats.Backtracks).To(BeNumerically(">", 0))
			Expect(hs.Status.LastRunTime.Time).To(Equal(now))

			cond := meta.FindStatusCondition(hs.Status.Conditions, v1alpha1.TypeScheduled)
			Expect(cond).NotTo(BeNil())
			Expect(cond.Status).To(Equal(metav1.ConditionTrue))
			Expect(cond.Reason).To(Equal(v1alpha1.ReasonScheduleFound))
			Expect(cond.ObservedGeneration).To(Equal(int64(3)))
		})

		It("should list providers that serve nothing", func() {
			hs := makeSchedule(
				[]v1alpha1.ProviderSpec{{Name: "Busy", Hours: 5}, {Name: "Idle", Hours: 5}},
				[]v1alpha1.RequestSpec{{Name: "Only", Hours: 5}},
			)
			_, err := newPlanner(nil).Plan(ctx, hs)
			Expect(err).NotTo(HaveOccurred())
			Expect(hs.Status.Assignments).To(Equal([]v1alpha1.ProviderAssignment{
				{Provider: "Busy", Requests: []string{"Only"}},
				{Provider: "Idle", Requests: []string{}},
			}))
		})

		It("should produce a valid schedule with the parallel strategy", func() {
			hs := trapSchedule()
			result, err := newPlanner(&config.SolverConfig{Strategy: config.StrategyParallel, Parallelism: 2}).Plan(ctx, hs)
			Expect(err).NotTo(HaveOccurred())
			Expect(*hs.Status.Feasible).To(BeTrue())
			Expect(hs.Status.Assignments).To(HaveLen(3))
			Expect(result.Stats.Nodes).To(BeNumerically(">", 0))
			expectSolves(`hours_solver_solves_total{outcome="feasible",strategy="parallel"} 1
`)
		})
	})

	Context("with an infeasible problem", func() {
		It("should record the verdict without assignments", func() {
			hs := makeSchedule(
				[]v1alpha1.ProviderSpec{{Name: "Dr. Zhivago", Hours: 8}, {Name: "Dr. Strange", Hours: 8}},
				[]v1alpha1.RequestSpec{{Name: "You Poor Soul", Hours: 9}},
			)
			result, err := newPlanner(nil).Plan(ctx, hs)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Feasible).To(BeFalse())
			Expect(*hs.Status.Feasible).To(BeFalse())
			Expect(hs.Status.Assignments).To(BeNil())

			cond := meta.FindStatusCondition(hs.Status.Conditions, v1alpha1.TypeScheduled)
			Expect(cond).NotTo(BeNil())
			Expect(cond.Status).To(Equal(metav1.ConditionFalse))
			Expect(cond.Reason).To(Equal(v1alpha1.ReasonNoSchedule))
		})

		It("should clear a previous schedule when the problem changes", func() {
			hs := trapSchedule()
			p := newPlanner(nil)
			_, err := p.Plan(ctx, hs)
			Expect(err).NotTo(HaveOccurred())
			Expect(hs.Status.Assignments).NotTo(BeEmpty())

			hs.Spec.Providers[2].Hours = 5
			fake.SetTime(now.Add(time.Minute))
			_, err = p.Plan(ctx, hs)
			Expect(err).NotTo(HaveOccurred())
			Expect(*hs.Status.Feasible).To(BeFalse())
			Expect(hs.Status.Assignments).To(BeNil())
			Expect(hs.Status.Conditions).To(HaveLen(1))
			Expect(hs.Status.Conditions[0].Reason).To(Equal(v1alpha1.ReasonNoSchedule))
			Expect(hs.Status.LastRunTime.Time).To(Equal(now.Add(time.Minute)))

			expectSolves(`hours_solver_solves_total{outcome="feasible",strategy="sequential"} 1
hours_solver_solves_total{outcome="infeasible",strategy="sequential"} 1
`)
		})
	})

	Context("with a malformed problem", func() {
		It("should report InvalidProblem and return the error", func() {
			hs := makeSchedule(
				[]v1alpha1.ProviderSpec{{Name: "A", Hours: 1}, {Name: "A", Hours: 2}},
				[]v1alpha1.RequestSpec{{Name: "X", Hours: 1}},
			)
			result, err := newPlanner(nil).Plan(ctx, hs)
			Expect(err).To(MatchError(core.ErrMalformedInput))
			Expect(result).To(BeNil())
			Expect(hs.Status.Feasible).To(BeNil())

			cond := meta.FindStatusCondition(hs.Status.Conditions, v1alpha1.TypeScheduled)
			Expect(cond).NotTo(BeNil())
			Expect(cond.Status).To(Equal(metav1.ConditionFalse))
			Expect(cond.Reason).To(Equal(v1alpha1.ReasonInvalidProblem))
			Expect(cond.Message).To(ContainSubstring("duplicate name"))

			expectSolves(`hours_solver_solves_total{outcome="error",strategy="sequential"} 1
`)
		})
	})

	Context("when the search is cut short", func() {
		It("should report SearchAborted on node budget exhaustion", func() {
			hs := stressSchedule()
			_, err := newPlanner(&config.SolverConfig{MaxNodes: 10}).Plan(ctx, hs)
			Expect(err).To(MatchError(solver.ErrBudgetExhausted))
			Expect(IsAborted(err)).To(BeTrue())
			Expect(hs.Status.Feasible).To(BeNil())
			Expect(hs.Status.Stats.Nodes).To(BeNumerically(">", 10))

			cond := meta.FindStatusCondition(hs.Status.Conditions, v1alpha1.TypeScheduled)
			Expect(cond).NotTo(BeNil())
			Expect(cond.Status).To(Equal(metav1.ConditionUnknown))
			Expect(cond.Reason).To(Equal(v1alpha1.ReasonSearchAborted))
		})

		It("should report SearchAborted on cancellation", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			hs := stressSchedule()
			_, err := newPlanner(&config.SolverConfig{CheckInterval: 1}).Plan(cancelled, hs)
			Expect(err).To(MatchError(context.Canceled))
			Expect(IsAborted(err)).To(BeTrue())
		})
	})

	Context("with an invalid configuration", func() {
		It("should refuse to build a planner", func() {
			_, err := NewPlanner(&config.SolverConfig{Strategy: "greedy"})
			Expect(err).To(HaveOccurred())
			_, err = NewPlanner(&config.SolverConfig{MaxNodes: -1})
			Expect(err).To(HaveOccurred())
		})

		It("should not treat ordinary errors as aborted searches", func() {
			Expect(IsAborted(core.ErrMalformedInput)).To(BeFalse())
		})
	})
})
