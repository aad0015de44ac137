// Package core provides the problem model for the hour scheduler.
//
// A scheduling problem consists of two ordered collections:
//
//   - Provider: a named entity offering a bounded number of service hours
//   - Request: a named entity requiring a fixed number of service hours
//
// A Problem validates both collections once, at construction, and is read-only
// afterwards. The order in which providers and requests are supplied is kept and
// is the order the solver explores them in, so equal inputs always produce the
// same search.
//
// An Assignment maps each provider name to the set of request names it serves.
// A valid Assignment places every request with exactly one provider and never
// exceeds a provider's capacity:
//
//	problem, err := core.NewProblem(
//	    []core.Provider{{Name: "House", Capacity: 7}},
//	    []core.Request{{Name: "A", Hours: 4}, {Name: "B", Hours: 3}},
//	)
//	if err != nil {
//	    // errors.Is(err, core.ErrMalformedInput)
//	}
//	assignment := core.Assignment{"House": sets.New("A", "B")}
//	if err := assignment.Verify(problem); err != nil {
//	    // errors.Is(err, core.ErrInvalidAssignment)
//	}
//
// The package has no dependency on the solver and performs no I/O.
package core
