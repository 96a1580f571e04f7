package app

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/andyballingall/json-schema-validator/internal/runner"
)

func NewTestCmd(env *cmdEnv) *cobra.Command {
	var verbose bool
	var watch bool
	var continueOnError bool
	outputVal := formatValue("text")

	cmd := &cobra.Command{
		Use:   "test <schema> [suite-dir]",
		Short: "Run a schema against its suite of pass/fail documents",
		Long: `
Runs a schema against a test suite directory containing a pass/ directory of
documents the schema must accept and a fail/ directory of documents it must
reject. The suite directory defaults to the directory containing the schema.`,
		Args: cobra.RangeArgs(1, 2),
		Example: `
  jsv test order.schema.json
  jsv test order.schema.json ./order-suite
  jsv test order.schema.json -w`,
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show the violations behind each expected failure")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch for changes and rerun the suite")
	cmd.Flags().BoolVarP(&continueOnError, "continue-on-error", "C", false,
		"Keep validating after a document fails its expectation (default is to stop on first failure)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		schemaPath := args[0]
		suiteDir := filepath.Dir(schemaPath)
		if len(args) > 1 {
			suiteDir = args[1]
		}

		noColour, _ := cmd.Flags().GetBool("nocolour")

		run := func() error {
			s, err := env.loadSchema(schemaPath)
			if err != nil {
				return err
			}
			r := runner.New(s)
			r.SetFailFast(!continueOnError)
			rep, err := r.RunSuite(cmd.Context(), suiteDir)
			if err != nil {
				return err
			}
			if err := writeReport(cmd.OutOrStdout(), rep, string(outputVal), verbose, !noColour); err != nil {
				return err
			}
			if !rep.Ok() {
				return &ValidationFailedError{Failed: len(rep.Failed()), Total: len(rep.Results)}
			}
			return nil
		}

		if watch {
			if err := run(); err != nil {
				env.logger.Error("suite failed", "error", err)
			}
			w := runner.NewWatcher([]string{schemaPath, suiteDir}, env.logger)
			return w.Watch(cmd.Context(), func() {
				if err := run(); err != nil {
					env.logger.Error("suite failed", "error", err)
				}
			})
		}

		return run()
	}

	return cmd
}
