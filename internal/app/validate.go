package app

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/andyballingall/json-schema-validator/internal/report"
	"github.com/andyballingall/json-schema-validator/internal/runner"
)

func NewValidateCmd(env *cmdEnv) *cobra.Command {
	var verbose bool
	var watch bool
	var workers int
	var schemaPath pathValue
	outputVal := formatValue("text")

	cmd := &cobra.Command{
		Use:   "validate [documents...]",
		Short: "Validate JSON documents against a schema",
		Args:  cobra.MinimumNArgs(1),
		Example: `
VALIDATING DOCUMENTS
  jsv validate -s order.schema.json order-1.json order-2.json
  jsv validate -s order.schema.json orders/*.json

WATCH MODE (rerun on changes to the schema or any document)
  jsv validate -s order.schema.json -w orders/*.json

MACHINE-READABLE OUTPUT
  jsv validate -s order.schema.json -o json order-1.json`,
	}

	cmd.Flags().VarP(&schemaPath, "schema", "s", "Path to the schema to validate against")
	_ = cmd.MarkFlagRequired("schema")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show every violation for each document")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of documents to validate concurrently (0 = one per CPU)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch for changes and rerun validation")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		noColour, _ := cmd.Flags().GetBool("nocolour")

		run := func() error {
			s, err := env.loadSchema(string(schemaPath))
			if err != nil {
				return err
			}
			r := runner.New(s)
			if workers > 0 {
				r.SetNumWorkers(workers)
			}
			rep, err := r.ValidateFiles(cmd.Context(), args)
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
				env.logger.Error("validation failed", "error", err)
			}
			w := runner.NewWatcher(append([]string{string(schemaPath)}, args...), env.logger)
			return w.Watch(cmd.Context(), func() {
				if err := run(); err != nil {
					env.logger.Error("validation failed", "error", err)
				}
			})
		}

		return run()
	}

	return cmd
}

func writeReport(w io.Writer, rep *runner.Report, output string, verbose, useColour bool) error {
	if output == "json" {
		jr := &report.JSONReporter{}
		return jr.Write(w, rep)
	}
	tr := &report.TextReporter{Verbose: verbose, UseColour: useColour}
	return tr.Write(w, rep)
}
