package solver

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/llm-d/llm-d-hour-scheduler/pkg/config"
	"github.com/llm-d/llm-d-hour-scheduler/pkg/core"
)

type scenario struct {
	providers []core.Provider
	requests  []core.Request
	feasible  bool
	// want is the exact schedule the sequential strategy must return, when set.
	want core.Assignment
}

func stressRequests() []core.Request {
	requests := make([]core.Request, 17)
	for i := range requests {
		requests[i] = core.Request{Name: "Patient " + string(rune('A'+i)), Hours: 2}
	}
	return requests
}

var scenarios = map[string]scenario{
	"request larger than any provider": {
		providers: []core.Provider{{Name: "Dr. Zhivago", Capacity: 8}, {Name: "Dr. Strange", Capacity: 8}, {Name: "Dr. Horrible", Capacity: 8}},
		requests:  []core.Request{{Name: "You Poor Soul", Hours: 9}},
		feasible:  false,
	},
	"provider with spare hours": {
		providers: []core.Provider{{Name: "A", Capacity: 12}},
		requests:  []core.Request{{Name: "P", Hours: 8}},
		feasible:  true,
		want:      core.Assignment{"A": sets.New("P")},
	},
	"exact fit of one request": {
		providers: []core.Provider{{Name: "Dr. Wheelock", Capacity: 8}},
		requests:  []core.Request{{Name: "Lucky Patient", Hours: 8}},
		feasible:  true,
		want:      core.Assignment{"Dr. Wheelock": sets.New("Lucky Patient")},
	},
	"one provider many requests": {
		providers: []core.Provider{{Name: "House", Capacity: 7}},
		requests:  []core.Request{{Name: "A", Hours: 4}, {Name: "B", Hours: 2}, {Name: "C", Hours: 1}},
		feasible:  true,
		want:      core.Assignment{"House": sets.New("A", "B", "C")},
	},
	"multiple providers multiple requests": {
		providers: []core.Provider{{Name: "House", Capacity: 7}, {Name: "AutoDoc", Capacity: 70}},
		requests: []core.Request{
			{Name: "A", Hours: 4}, {Name: "B", Hours: 2}, {Name: "C", Hours: 1},
			{Name: "D", Hours: 40}, {Name: "E", Hours: 20}, {Name: "F", Hours: 10},
		},
		feasible: true,
		want: core.Assignment{
			"House":   sets.New("A", "B", "C"),
			"AutoDoc": sets.New("D", "E", "F"),
		},
	},
	"greedy choice must be undone": {
		providers: []core.Provider{{Name: "Workaholic", Capacity: 10}, {Name: "Average", Capacity: 8}, {Name: "Lazy", Capacity: 6}},
		requests:  []core.Request{{Name: "Eight", Hours: 8}, {Name: "Six", Hours: 6}, {Name: "Five1", Hours: 5}, {Name: "Five2", Hours: 5}},
		feasible:  true,
		want: core.Assignment{
			"Workaholic": sets.New("Five1", "Five2"),
			"Average":    sets.New("Eight"),
			"Lazy":       sets.New("Six"),
		},
	},
	"no providers": {
		requests: []core.Request{{Name: "You Poor Soul", Hours: 8}},
		feasible: false,
	},
	"no requests": {
		providers: []core.Provider{{Name: "A", Capacity: 3}, {Name: "B", Capacity: 0}},
		feasible:  true,
		want:      core.Assignment{"A": sets.New[string](), "B": sets.New[string]()},
	},
	"no providers and no requests": {
		feasible: true,
		want:     core.Assignment{},
	},
	"equal totals two providers": {
		providers: []core.Provider{{Name: "A", Capacity: 3}, {Name: "B", Capacity: 3}},
		requests:  []core.Request{{Name: "X", Hours: 2}, {Name: "Y", Hours: 2}, {Name: "Z", Hours: 2}},
		feasible:  false,
	},
	"equal totals three providers": {
		providers: []core.Provider{{Name: "A", Capacity: 8}, {Name: "B", Capacity: 8}, {Name: "C", Capacity: 8}},
		requests: []core.Request{
			{Name: "U", Hours: 5}, {Name: "V", Hours: 5}, {Name: "W", Hours: 5},
			{Name: "X", Hours: 4}, {Name: "Y", Hours: 3}, {Name: "Z", Hours: 2},
		},
		feasible: false,
	},
	"zero hour request on zero capacity provider": {
		providers: []core.Provider{{Name: "Idle", Capacity: 0}},
		requests:  []core.Request{{Name: "Checkup", Hours: 0}},
		feasible:  true,
		want:      core.Assignment{"Idle": sets.New("Checkup")},
	},
	"stress: two providers seventeen requests": {
		providers: []core.Provider{{Name: "Doctor A", Capacity: 17}, {Name: "Doctor B", Capacity: 17}},
		requests:  stressRequests(),
		feasible:  false,
	},
}

var _ = Describe("Solver", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	for _, strategy := range []Strategy{SequentialStrategy, ParallelStrategy} {
		Context("with the "+strategy.String()+" strategy", func() {
			for _, name := range slices.Sorted(maps.Keys(scenarios)) {
				sc := scenarios[name]
				It("handles "+name, func() {
					problem, err := core.NewProblem(sc.providers, sc.requests)
					Expect(err).NotTo(HaveOccurred())

					s, err := NewSolver(strategy, &config.SolverConfig{Parallelism: 2})
					Expect(err).NotTo(HaveOccurred())

					result, err := s.Solve(ctx, problem)
					Expect(err).NotTo(HaveOccurred())
					Expect(result.Feasible).To(Equal(sc.feasible))

					if !sc.feasible {
						Expect(result.Assignment).To(BeNil())
						return
					}
					Expect(result.Assignment.Verify(problem)).To(Succeed())
					Expect(result.Assignment).To(HaveLen(problem.NumProviders()))
					if sc.want != nil && strategy == SequentialStrategy {
						Expect(cmp.Diff(sc.want, result.Assignment)).To(BeEmpty())
					}
				})
			}
		})
	}

	Context("when solving from raw collections", func() {
		It("reports malformed input separately from infeasibility", func() {
			ok, schedule, err := Solve(ctx,
				[]core.Provider{{Name: "A", Capacity: 1}, {Name: "A", Capacity: 2}},
				[]core.Request{{Name: "X", Hours: 1}})
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, core.ErrMalformedInput)).To(BeTrue())
			Expect(ok).To(BeFalse())
			Expect(schedule).To(BeNil())
		})

		It("rejects negative requirements before searching", func() {
			_, _, err := Solve(ctx,
				[]core.Provider{{Name: "A", Capacity: 1}},
				[]core.Request{{Name: "X", Hours: -1}})
			Expect(errors.Is(err, core.ErrMalformedInput)).To(BeTrue())
		})

		It("returns false without an error for an infeasible problem", func() {
			ok, schedule, err := Solve(ctx,
				[]core.Provider{{Name: "A", Capacity: 8}},
				[]core.Request{{Name: "X", Hours: 9}})
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(schedule).To(BeNil())
		})

		It("treats repeated calls with the same names independently", func() {
			providers := []core.Provider{{Name: "A", Capacity: 4}}
			ok, _, err := Solve(ctx, providers, []core.Request{{Name: "X", Hours: 4}})
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, schedule, err := Solve(ctx, providers, []core.Request{{Name: "X", Hours: 3}, {Name: "Y", Hours: 1}})
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(schedule["A"].Equal(sets.New("X", "Y"))).To(BeTrue())
		})
	})

	Context("when constructing solvers", func() {
		It("rejects unknown strategies", func() {
			_, err := NewSolver(Strategy(42), nil)
			Expect(err).To(HaveOccurred())
		})

		It("rejects invalid configuration", func() {
			_, err := NewSolver(SequentialStrategy, &config.SolverConfig{MaxNodes: -1})
			Expect(err).To(HaveOccurred())
		})

		It("builds the strategy named in the configuration", func() {
			s, err := NewSolverFromConfig(&config.SolverConfig{Strategy: "parallel"})
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(BeAssignableToTypeOf(&ParallelSolver{}))

			s, err = NewSolverFromConfig(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(BeAssignableToTypeOf(&SequentialSolver{}))

			_, err = NewSolverFromConfig(&config.SolverConfig{Strategy: "greedy"})
			Expect(err).To(HaveOccurred())
		})
	})
})
