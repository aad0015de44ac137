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

package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/llm-d/llm-d-hour-scheduler/internal/logging"
)

// GlobalDefaultsKey is the profile entry holding defaults for every other profile.
const GlobalDefaultsKey = "default"

// SolverProfiles holds named solver configurations.
// Maps profile name to its configuration.
type SolverProfiles map[string]SolverConfig

// ParseSolverProfiles parses named solver profiles. Each value is a YAML
// document describing a SolverConfig:
//   - "default": global defaults for all profiles
//   - "<name>": overrides applied on top of the defaults
//
// Entries that fail to parse or validate are skipped.
func ParseSolverProfiles(data map[string]string) SolverProfiles {
	out := make(SolverProfiles)
	if data == nil {
		return out
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		var cfg SolverConfig
		if err := yaml.Unmarshal([]byte(data[key]), &cfg); err != nil {
			ctrl.Log.Info("Failed to parse solver profile entry, skipping",
				"key", key,
				"error", err)
			continue
		}
		if err := cfg.Validate(); err != nil {
			ctrl.Log.Info("Invalid solver profile entry, skipping",
				"key", key,
				"error", err)
			continue
		}
		out[key] = cfg
	}

	ctrl.Log.V(logging.DEBUG).Info("Parsed solver profiles",
		"profileCount", len(out))

	return out
}

// LoadSolverProfiles reads a YAML file mapping profile names to SolverConfig documents.
func LoadSolverProfiles(path string) (SolverProfiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles file: %w", err)
	}
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing profiles file: %w", err)
	}
	entries := make(map[string]string, len(raw))
	for name, node := range raw {
		doc, err := yaml.Marshal(&node)
		if err != nil {
			return nil, fmt.Errorf("re-encoding profile %q: %w", name, err)
		}
		entries[name] = string(doc)
	}
	return ParseSolverProfiles(entries), nil
}

// Profile returns the effective, normalized configuration for the named
// profile. Unknown names yield the defaults.
func (p SolverProfiles) Profile(name string) *SolverConfig {
	result := *Default()
	if defaults, ok := p[GlobalDefaultsKey]; ok {
		result = merge(result, defaults)
	}
	if override, ok := p[name]; ok && name != GlobalDefaultsKey {
		result = merge(result, override)
	}
	result.Normalize()
	return &result
}

// merge overlays the non-zero fields of override onto base.
func merge(base, override SolverConfig) SolverConfig {
	if override.Strategy != "" {
		base.Strategy = override.Strategy
	}
	if override.Parallelism != 0 {
		base.Parallelism = override.Parallelism
	}
	if override.MaxNodes != 0 {
		base.MaxNodes = override.MaxNodes
	}
	if override.CheckInterval != 0 {
		base.CheckInterval = override.CheckInterval
	}
	if override.TimeoutString != "" {
		base.TimeoutString = override.TimeoutString
		base.Timeout = 0
	}
	return base
}

// ApplyProfile installs cfg as the configuration layer of v. Environment
// variables and explicitly set flags still take precedence in Load.
func ApplyProfile(v *viper.Viper, cfg *SolverConfig) error {
	values := map[string]any{
		KeyStrategy:      cfg.Strategy,
		KeyParallelism:   cfg.Parallelism,
		KeyMaxNodes:      cfg.MaxNodes,
		KeyCheckInterval: cfg.CheckInterval,
	}
	if cfg.Timeout > 0 {
		values[KeyTimeout] = cfg.Timeout.String()
	}
	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("applying solver profile: %w", err)
	}
	return nil
}
