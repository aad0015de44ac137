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
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// StrategySequential explores the search tree depth-first on the calling goroutine.
	StrategySequential = "sequential"
	// StrategyParallel explores the first request's provider choices concurrently.
	StrategyParallel = "parallel"

	// DefaultCheckInterval is how many search nodes are visited between context checks.
	DefaultCheckInterval = 1024

	// EnvPrefix is the prefix of environment variables read by Load.
	EnvPrefix = "HOURS"
)

// Keys used in viper and as flag names.
const (
	KeyStrategy      = "strategy"
	KeyParallelism   = "parallelism"
	KeyMaxNodes      = "max-nodes"
	KeyCheckInterval = "check-interval"
	KeyTimeout       = "timeout"
)

// SolverConfig holds the settings of a single solve.
type SolverConfig struct {
	// Strategy selects the search strategy (sequential or parallel).
	Strategy string `yaml:"strategy,omitempty" json:"strategy,omitempty"`

	// Parallelism bounds the number of concurrently explored branches of the
	// parallel strategy. Zero means GOMAXPROCS.
	Parallelism int `yaml:"parallelism,omitempty" json:"parallelism,omitempty"`

	// MaxNodes aborts the search after visiting this many nodes. Zero means unlimited.
	MaxNodes int64 `yaml:"maxNodes,omitempty" json:"maxNodes,omitempty"`

	// CheckInterval is the number of nodes between context cancellation checks.
	CheckInterval int64 `yaml:"checkInterval,omitempty" json:"checkInterval,omitempty"`

	// Timeout bounds a single solve. Zero means no deadline beyond the caller's context.
	Timeout time.Duration `yaml:"-" json:"-"`

	// TimeoutString is the YAML form of Timeout (e.g., "500ms", "2s").
	TimeoutString string `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// Default returns the configuration used when none is supplied.
func Default() *SolverConfig {
	return &SolverConfig{
		Strategy:      StrategySequential,
		CheckInterval: DefaultCheckInterval,
	}
}

// Validate checks for invalid configuration values.
func (c *SolverConfig) Validate() error {
	switch strings.ToLower(c.Strategy) {
	case "", StrategySequential, StrategyParallel:
	default:
		return fmt.Errorf("strategy must be %q or %q, got %q", StrategySequential, StrategyParallel, c.Strategy)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must be >= 0, got %d", c.Parallelism)
	}
	if c.MaxNodes < 0 {
		return fmt.Errorf("maxNodes must be >= 0, got %d", c.MaxNodes)
	}
	if c.CheckInterval < 0 {
		return fmt.Errorf("checkInterval must be >= 0, got %d", c.CheckInterval)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", c.Timeout)
	}
	if c.TimeoutString != "" {
		d, err := time.ParseDuration(c.TimeoutString)
		if err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("timeout must be >= 0, got %s", d)
		}
	}
	return nil
}

// Normalize fills in defaults for unset fields. It assumes Validate passed.
func (c *SolverConfig) Normalize() {
	c.Strategy = strings.ToLower(c.Strategy)
	if c.Strategy == "" {
		c.Strategy = StrategySequential
	}
	if c.CheckInterval == 0 {
		c.CheckInterval = DefaultCheckInterval
	}
	if c.TimeoutString != "" && c.Timeout == 0 {
		c.Timeout, _ = time.ParseDuration(c.TimeoutString)
	}
}

// EffectiveParallelism returns the number of branches the parallel strategy may run at once.
func (c *SolverConfig) EffectiveParallelism() int {
	if c.Parallelism > 0 {
		return c.Parallelism
	}
	return runtime.GOMAXPROCS(0)
}

// BindFlags registers the solver flags on fs and binds them into v.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	def := Default()
	fs.String(KeyStrategy, def.Strategy, "Search strategy: sequential or parallel")
	fs.Int(KeyParallelism, def.Parallelism, "Maximum concurrently explored branches for the parallel strategy (0 = GOMAXPROCS)")
	fs.Int64(KeyMaxNodes, def.MaxNodes, "Abort the search after visiting this many nodes (0 = unlimited)")
	fs.Int64(KeyCheckInterval, def.CheckInterval, "Number of search nodes between cancellation checks")
	fs.Duration(KeyTimeout, def.Timeout, "Deadline for a single solve (0 = none)")

	for _, key := range []string{KeyStrategy, KeyParallelism, KeyMaxNodes, KeyCheckInterval, KeyTimeout} {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			return fmt.Errorf("binding flag %s: %w", key, err)
		}
	}
	return nil
}

// Load builds a validated SolverConfig from v. Environment variables such as
// HOURS_MAX_NODES override values read from a config file.
func Load(v *viper.Viper) (*SolverConfig, error) {
	def := Default()
	v.SetDefault(KeyStrategy, def.Strategy)
	v.SetDefault(KeyCheckInterval, def.CheckInterval)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := &SolverConfig{
		Strategy:      v.GetString(KeyStrategy),
		Parallelism:   v.GetInt(KeyParallelism),
		MaxNodes:      v.GetInt64(KeyMaxNodes),
		CheckInterval: v.GetInt64(KeyCheckInterval),
		Timeout:       v.GetDuration(KeyTimeout),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid solver configuration: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}
