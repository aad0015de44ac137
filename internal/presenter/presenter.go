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
package presenter

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/llm-d/llm-d-hour-scheduler/pkg/core"
)

const (
	// FeasibleMessage introduces a schedule.
	FeasibleMessage = "It's possible to schedule everyone! Here's one way to do so."
	// InfeasibleMessage reports that no schedule exists.
	InfeasibleMessage = "Unfortunately, it's not possible for everyone to be seen."
)

// Pluralize formats a count followed by word, adding an "s" unless n is 1.
func Pluralize(n int, word string) string {
	return PluralizeAs(n, word, word+"s")
}

// PluralizeAs formats a count followed by the singular or plural form.
func PluralizeAs(n int, singular, plural string) string {
	if n == 1 {
		return strconv.Itoa(n) + " " + singular
	}
	return strconv.Itoa(n) + " " + plural
}

// PrintProblem lists the providers and requests of p in model order.
func PrintProblem(w io.Writer, p *core.Problem) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "There are %s:\n", Pluralize(p.NumProviders(), "provider"))
	for _, provider := range p.Providers() {
		fmt.Fprintf(&buf, "  %s (%s free)\n", provider.Name, Pluralize(provider.Capacity, "hour"))
	}
	fmt.Fprintf(&buf, "There are %s:\n", Pluralize(p.NumRequests(), "request"))
	for _, request := range p.Requests() {
		fmt.Fprintf(&buf, "  %s (%s needed)\n", request.Name, Pluralize(request.Hours, "hour"))
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// PrintSchedule lists the requests each provider sees, providers and requests
// sorted by name.
func PrintSchedule(w io.Writer, a core.Assignment) error {
	var buf bytes.Buffer
	for _, provider := range a.Providers() {
		requests := a[provider]
		fmt.Fprintf(&buf, "  %s sees %s\n", provider, Pluralize(requests.Len(), "request"))
		for _, request := range sets.List(requests) {
			fmt.Fprintf(&buf, "    %s\n", request)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// PrintOutcome writes the verdict line, followed by the schedule when feasible.
func PrintOutcome(w io.Writer, feasible bool, a core.Assignment) error {
	if !feasible {
		_, err := fmt.Fprintln(w, InfeasibleMessage)
		return err
	}
	if _, err := fmt.Fprintln(w, FeasibleMessage); err != nil {
		return err
	}
	return PrintSchedule(w, a)
}

// Edges returns one (provider, request) pair per served request, sorted by
// provider then request.
func Edges(a core.Assignment) []core.Pair {
	return a.Pairs()
}
