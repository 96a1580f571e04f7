package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/andyballingall/json-schema-validator/internal/config"
)

// Version is the current version of jsv, set at build time.
var Version = "dev"

var LongDescription = `
jsv validates JSON documents against JSON Schemas. Point it at a schema and
one or more documents, or at a suite of documents organised into pass/ and
fail/ directories, and it reports exactly which constraints each document
violates.
`

// cmdEnv holds the shared dependencies built once per invocation in
// PersistentPreRunE and consumed by the subcommands.
type cmdEnv struct {
	logger    *slog.Logger
	cfg       *config.Config
	logCloser io.Closer
}

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(env *cmdEnv, ll *slog.LevelVar, stderr io.Writer) *cobra.Command {
	var debug bool
	var noColour bool
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "jsv",
		Short:         "A validator for JSON Schema documents",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          LongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || isCompletionCommand(cmd) {
				return nil
			}
			// Skip if already initialised (e.g., in tests)
			if env.logger != nil {
				if debug {
					ll.Set(slog.LevelDebug)
				}
				return nil
			}

			if debug {
				ll.Set(slog.LevelDebug)
			}

			cfg, err := config.Load(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return fmt.Errorf("configuration failed: %w", err)
			}
			env.cfg = cfg

			logger, closer := setupLogger(stderr, ll, cfg.LogFile)
			env.logger = logger
			env.logCloser = closer

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigFile, "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.PersistentFlags().BoolVarP(&noColour, "nocolour", "c", false, "Disable colour in output")
	// Support alternate spellings
	rootCmd.PersistentFlags().BoolVar(&noColour, "nocolor", false, "")
	rootCmd.PersistentFlags().BoolVar(&noColour, "noColor", false, "")
	rootCmd.PersistentFlags().BoolVar(&noColour, "noColour", false, "")
	_ = rootCmd.PersistentFlags().MarkHidden("nocolor")
	_ = rootCmd.PersistentFlags().MarkHidden("noColor")
	_ = rootCmd.PersistentFlags().MarkHidden("noColour")

	// Subcommands
	rootCmd.AddCommand(NewValidateCmd(env))
	rootCmd.AddCommand(NewTestCmd(env))

	return rootCmd
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}
