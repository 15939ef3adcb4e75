// Package cli wires the testgen command line.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jgarzik/testgen/internal/fixture"
	"github.com/jgarzik/testgen/internal/kv"
	"github.com/jgarzik/testgen/internal/plan"
)

// RootOptions holds the flags for a fixture run.
type RootOptions struct {
	StorePath   string
	JSONPath    string
	Plan        string
	NumericSync bool
	Engine      string
	ConfigPath  string
	Verbose     bool
}

// NewRootCommand creates the testgen root command.
//
// The root command itself performs the run, so the historical invocation
// shape (testgen -o DB -j JSON [-p PLAN] [-n]) keeps working; subcommands
// only add introspection.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "testgen -o DB-FILE -j JSON-FILE",
		Short: "Generate deterministic key-value store test fixtures",
		Long: `testgen populates a freshly created key-value store according to a named
plan and emits a JSON oracle describing exactly what was written, so a
separate verifier can open the store and check its contents.

Example:
  testgen -o basic.db -j basic.json
  testgen -o empty.db -j empty.json -p empty -n
  testgen -o small.db -j small.json -p small --config plans.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.StorePath, "out", "o", "", "output store path (required)")
	cmd.Flags().StringVarP(&opts.JSONPath, "json", "j", "", "output JSON oracle path (required)")
	cmd.Flags().StringVarP(&opts.Plan, "plan", "p", "basic", "test plan to generate")
	cmd.Flags().BoolVarP(&opts.NumericSync, "numsync", "n", false, "enable numeric-sync durability mode on the store")
	cmd.Flags().StringVar(&opts.Engine, "engine", kv.DefaultEngine, fmt.Sprintf("storage engine %v", kv.EngineNames()))
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML file defining additional plans")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	_ = cmd.MarkFlagRequired("out")
	_ = cmd.MarkFlagRequired("json")

	cmd.AddCommand(NewPlansCommand(opts))

	return cmd
}

func runGenerate(opts *RootOptions) error {
	setupLogging(opts.Verbose)

	registry, err := loadRegistry(opts.ConfigPath)
	if err != nil {
		return err
	}

	open, err := kv.Engine(opts.Engine)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	slog.Debug("run starting",
		"run_id", runID,
		"plan", opts.Plan,
		"engine", opts.Engine,
		"numsync", opts.NumericSync,
		"store", opts.StorePath,
		"json", opts.JSONPath,
	)

	if err := fixture.Run(fixture.Params{
		Plan:        opts.Plan,
		NumericSync: opts.NumericSync,
		StorePath:   opts.StorePath,
		JSONPath:    opts.JSONPath,
		Registry:    registry,
		Open:        open,
	}); err != nil {
		return err
	}

	slog.Debug("run complete", "run_id", runID)
	return nil
}

// loadRegistry returns the built-in plans, merged with the config file's
// plans when one is given.
func loadRegistry(configPath string) (*plan.Registry, error) {
	registry := plan.Builtin()
	if configPath == "" {
		return registry, nil
	}
	cfg, err := plan.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := registry.Merge(cfg); err != nil {
		return nil, err
	}
	return registry, nil
}

// setupLogging routes slog to stderr. The tool is silent on success unless
// verbose is set; the JSON oracle is the only product of a run.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
