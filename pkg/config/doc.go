// Package config provides configuration management for the hour scheduler.
//
// This package handles loading and validation of solver settings from
// command-line flags, environment variables, and configuration files.
//
// Configuration Types:
//
//   - SolverConfig: search strategy, parallelism, node budget and timeout
//   - SolverProfiles: named SolverConfig overrides parsed from YAML entries
//
// Configuration Sources:
//
//  1. Command-line flags (highest priority)
//  2. Environment variables (prefix HOURS_)
//  3. Configuration file (--config)
//  4. Default values (lowest priority)
//
// Example usage:
//
//	v := viper.New()
//	if err := config.BindFlags(pflag.CommandLine, v); err != nil {
//	    return err
//	}
//	pflag.Parse()
//	cfg, err := config.Load(v)
//	if err != nil {
//	    return err
//	}
//
// All configuration values are validated on load.
package config
