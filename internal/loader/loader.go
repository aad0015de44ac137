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
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/llm-d/llm-d-hour-scheduler/api/v1alpha1"
	"github.com/llm-d/llm-d-hour-scheduler/pkg/core"
)

// ErrInvalidDocument is returned for problem files that cannot be read as a
// scheduling problem. Duplicate names and negative hours are not reported
// here; they surface as core.ErrMalformedInput when the problem is built.
var ErrInvalidDocument = errors.New("invalid problem document")

// problemFile is the plain problem format. The doctors and patients keys are
// accepted as aliases of providers and requests.
type problemFile struct {
	Name      string  `yaml:"name"`
	Providers []entry `yaml:"providers"`
	Requests  []entry `yaml:"requests"`
	Doctors   []entry `yaml:"doctors"`
	Patients  []entry `yaml:"patients"`
}

type entry struct {
	Name  string `yaml:"name"`
	Hours int    `yaml:"hours"`
}

// Load reads a problem file. Plain files are named after the file when they
// carry no name of their own.
func Load(path string) (*v1alpha1.HourSchedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file %s: %w", path, err)
	}
	hs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if hs.Name == "" {
		hs.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return hs, nil
}

// Parse decodes either an HourSchedule manifest or a plain problem file.
// Entry order in the document is kept.
func Parse(data []byte) (*v1alpha1.HourSchedule, error) {
	var probe struct {
		APIVersion string `yaml:"apiVersion"`
		Kind       string `yaml:"kind"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var hs *v1alpha1.HourSchedule
	var err error
	switch probe.Kind {
	case v1alpha1.HourScheduleKind:
		hs, err = parseManifest(data)
	case "":
		hs, err = parsePlain(data)
	default:
		return nil, fmt.Errorf("%w: unsupported kind %q", ErrInvalidDocument, probe.Kind)
	}
	if err != nil {
		return nil, err
	}
	if err := checkNames(hs.Spec); err != nil {
		return nil, err
	}
	return hs, nil
}

func parseManifest(data []byte) (*v1alpha1.HourSchedule, error) {
	hs := &v1alpha1.HourSchedule{}
	if err := sigsyaml.UnmarshalStrict(data, hs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if hs.APIVersion != "" && hs.APIVersion != v1alpha1.GroupVersion.String() {
		return nil, fmt.Errorf("%w: unsupported apiVersion %q", ErrInvalidDocument, hs.APIVersion)
	}
	return hs, nil
}

func parsePlain(data []byte) (*v1alpha1.HourSchedule, error) {
	var f problemFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if len(f.Providers) > 0 && len(f.Doctors) > 0 {
		return nil, fmt.Errorf("%w: both providers and doctors are set", ErrInvalidDocument)
	}
	if len(f.Requests) > 0 && len(f.Patients) > 0 {
		return nil, fmt.Errorf("%w: both requests and patients are set", ErrInvalidDocument)
	}

	hs := &v1alpha1.HourSchedule{
		TypeMeta: metav1.TypeMeta{
			APIVersion: v1alpha1.GroupVersion.String(),
			Kind:       v1alpha1.HourScheduleKind,
		},
		ObjectMeta: metav1.ObjectMeta{Name: f.Name},
	}
	for _, e := range slices.Concat(f.Providers, f.Doctors) {
		hs.Spec.Providers = append(hs.Spec.Providers, v1alpha1.ProviderSpec{Name: e.Name, Hours: e.Hours})
	}
	for _, e := range slices.Concat(f.Requests, f.Patients) {
		hs.Spec.Requests = append(hs.Spec.Requests, v1alpha1.RequestSpec{Name: e.Name, Hours: e.Hours})
	}
	return hs, nil
}

func checkNames(spec v1alpha1.HourScheduleSpec) error {
	for i, p := range spec.Providers {
		if p.Name == "" {
			return fmt.Errorf("%w: provider %d has no name", ErrInvalidDocument, i)
		}
	}
	for i, r := range spec.Requests {
		if r.Name == "" {
			return fmt.Errorf("%w: request %d has no name", ErrInvalidDocument, i)
		}
	}
	return nil
}

// ToProblem builds the problem model of an HourSchedule spec.
func ToProblem(spec v1alpha1.HourScheduleSpec) (*core.Problem, error) {
	providers := make([]core.Provider, len(spec.Providers))
	for i, p := range spec.Providers {
		providers[i] = core.Provider{Name: p.Name, Capacity: p.Hours}
	}
	requests := make([]core.Request, len(spec.Requests))
	for i, r := range spec.Requests {
		requests[i] = core.Request{Name: r.Name, Hours: r.Hours}
	}
	return core.NewProblem(providers, requests)
}

// ListProblems returns the paths of the problem files in dir, sorted by name.
func ListProblems(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list problems in %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}
