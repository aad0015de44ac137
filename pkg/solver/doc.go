// Package solver decides whether every request of a scheduling problem can be
// served by exactly one provider, and produces one such schedule when it can.
//
// Key Components:
//
//   - Solver: interface implemented by every search strategy
//   - SequentialSolver: depth-first backtracking on the calling goroutine
//   - ParallelSolver: explores the first request's provider choices concurrently
//   - Solve: convenience entry point taking the two raw collections
//
// Search Strategy:
//
// Requests are placed one at a time in problem order. For the next request,
// every provider is tried once, in problem order, and only if its remaining
// capacity covers the request. A placement is committed, the rest of the
// requests are searched, and on failure the placement is undone before the next
// provider is tried. A request is never left unplaced, so a branch fails as soon
// as some request fits nowhere. The first complete placement ends the search.
//
// Infeasibility is a normal result (Result.Feasible == false), never an error.
// Errors are reserved for malformed input (core.ErrMalformedInput), an
// exhausted node budget (ErrBudgetExhausted) and context cancellation.
//
// Example usage:
//
//	ok, schedule, err := solver.Solve(ctx, providers, requests)
//	if err != nil {
//	    return err
//	}
//	if !ok {
//	    log.Info("no schedule exists")
//	}
//
// The solver is designed to be:
//   - Deterministic: equal inputs explore the same search tree (sequential strategy)
//   - Bounded: callers may cap the number of visited nodes or the wall time
//   - Observable: per-solve statistics and an optional per-node observer
package solver
