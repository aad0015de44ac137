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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/llm-d/llm-d-hour-scheduler/api/v1alpha1"
	"github.com/llm-d/llm-d-hour-scheduler/internal/loader"
	"github.com/llm-d/llm-d-hour-scheduler/internal/logging"
	"github.com/llm-d/llm-d-hour-scheduler/internal/metrics"
	"github.com/llm-d/llm-d-hour-scheduler/internal/planner"
	"github.com/llm-d/llm-d-hour-scheduler/internal/presenter"
	"github.com/llm-d/llm-d-hour-scheduler/pkg/config"
)

// Process exit codes
const (
	exitFeasible   = 0
	exitError      = 1
	exitInfeasible = 2
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

type options struct {
	problems     []string
	dir          string
	configFile   string
	profile      string
	output       string
	printMetrics bool
	verbosity    int
}

func main() {
	os.Exit(run(ctrl.SetupSignalHandler(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code: 0 when
// every problem is feasible, 2 when at least one is not, 1 on any error.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &options{}
	v := viper.New()

	fs := pflag.NewFlagSet("hour-scheduler", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringSliceVar(&opts.problems, "problem", nil, "Problem file to solve (repeatable)")
	fs.StringVar(&opts.dir, "dir", "", "Solve every problem file (*.yaml, *.yml) in this directory")
	fs.StringVar(&opts.configFile, "config", "", "YAML file of named solver profiles")
	fs.StringVar(&opts.profile, "profile", config.GlobalDefaultsKey, "Solver profile to use from --config")
	fs.StringVar(&opts.output, "output", outputText, "Output format: text or yaml")
	fs.BoolVar(&opts.printMetrics, "print-metrics", false, "Print solver metrics in Prometheus text format after solving")
	fs.IntVar(&opts.verbosity, "v", 0, "Number for the log level verbosity")
	if err := config.BindFlags(fs, v); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	zapOpts := zap.Options{
		Development: true,
		DestWriter:  stderr,
	}
	goFlags := flag.NewFlagSet("zap", flag.ContinueOnError)
	zapOpts.BindFlags(goFlags)
	fs.AddGoFlagSet(goFlags)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitFeasible
		}
		return exitError
	}

	logger := logging.InitLogging(&zapOpts, opts.verbosity)
	ctx = log.IntoContext(ctx, logger)

	if opts.output != outputText && opts.output != outputYAML {
		logger.Error(fmt.Errorf("unsupported output format %q", opts.output), "Invalid flags")
		return exitError
	}

	if opts.configFile != "" {
		profiles, err := config.LoadSolverProfiles(opts.configFile)
		if err != nil {
			logger.Error(err, "Failed to load solver profiles", "path", opts.configFile)
			return exitError
		}
		if err := config.ApplyProfile(v, profiles.Profile(opts.profile)); err != nil {
			logger.Error(err, "Failed to apply solver profile", "profile", opts.profile)
			return exitError
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		logger.Error(err, "Invalid solver configuration")
		return exitError
	}

	registry := prometheus.NewRegistry()
	recorder, err := metrics.NewRecorder(registry)
	if err != nil {
		logger.Error(err, "Failed to set up metrics")
		return exitError
	}
	p, err := planner.NewPlanner(cfg, planner.WithRecorder(recorder))
	if err != nil {
		logger.Error(err, "Failed to create planner")
		return exitError
	}

	paths, err := problemPaths(opts)
	if err != nil {
		logger.Error(err, "No problems to solve")
		return exitError
	}
	logger.V(logging.VERBOSE).Info("Solving problems",
		"count", len(paths),
		"strategy", cfg.Strategy,
		"maxNodes", cfg.MaxNodes,
		"timeout", cfg.Timeout)

	code := exitFeasible
	for i, path := range paths {
		feasible, err := solveFile(ctx, p, path, opts.output, i, stdout)
		switch {
		case err != nil:
			logger.Error(err, "Failed to schedule problem", "path", path, "aborted", planner.IsAborted(err))
			code = exitError
		case !feasible && code == exitFeasible:
			code = exitInfeasible
		}
	}

	if opts.printMetrics {
		if err := metrics.WriteText(stdout, registry); err != nil {
			logger.Error(err, "Failed to print metrics")
			return exitError
		}
	}
	return code
}

func problemPaths(opts *options) ([]string, error) {
	paths := append([]string(nil), opts.problems...)
	if opts.dir != "" {
		listed, err := loader.ListProblems(opts.dir)
		if err != nil {
			return nil, err
		}
		paths = append(paths, listed...)
	}
	if len(paths) == 0 {
		return nil, errors.New("no problem files given: use --problem or --dir")
	}
	return paths, nil
}

// solveFile loads, solves and prints one problem. The index separates
// consecutive outputs.
func solveFile(ctx context.Context, p *planner.Planner, path, output string, index int, w io.Writer) (bool, error) {
	hs, err := loader.Load(path)
	if err != nil {
		return false, err
	}
	logger := ctrl.LoggerFrom(ctx).WithValues("path", path)
	ctx = log.IntoContext(ctx, logger)

	if output == outputYAML {
		return solveYAML(ctx, p, hs, w)
	}

	if index > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Problem %s\n", hs.Name)
	if problem, perr := loader.ToProblem(hs.Spec); perr == nil {
		if err := presenter.PrintProblem(w, problem); err != nil {
			return false, err
		}
	}
	result, err := p.Plan(ctx, hs)
	if err != nil {
		fmt.Fprintf(w, "Unable to schedule: %v\n", err)
		return false, err
	}
	if err := presenter.PrintOutcome(w, result.Feasible, result.Assignment); err != nil {
		return false, err
	}
	return result.Feasible, nil
}

// solveYAML writes the manifest with its status filled in, even when planning fails.
func solveYAML(ctx context.Context, p *planner.Planner, hs *v1alpha1.HourSchedule, w io.Writer) (bool, error) {
	result, planErr := p.Plan(ctx, hs)
	if err := writeManifest(w, hs); err != nil {
		return false, err
	}
	if planErr != nil {
		return false, planErr
	}
	return result.Feasible, nil
}

func writeManifest(w io.Writer, hs *v1alpha1.HourSchedule) error {
	data, err := sigsyaml.Marshal(hs)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", hs.Name, err)
	}
	if _, err := fmt.Fprintf(w, "---\n%s", data); err != nil {
		return err
	}
	return nil
}
