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
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/llm-d/llm-d-hour-scheduler/pkg/core"
)

// buildAssignment copies the committed request owners into a new Assignment.
// Every provider gets an entry, even when it serves nothing.
func buildAssignment(providers []core.Provider, requests []core.Request, owner []int) core.Assignment {
	out := make(core.Assignment, len(providers))
	for _, p := range providers {
		out[p.Name] = sets.New[string]()
	}
	for r, p := range owner {
		if p == unassigned {
			continue
		}
		out[providers[p].Name].Insert(requests[r].Name)
	}
	return out
}
