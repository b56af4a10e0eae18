package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/amida/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string // YAML config file; falls back to AMIDA_CONFIG
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the amida CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "amida",
		Short: "amida - ghost-leg lottery ladders",
		Long:  "Generate, trace and resolve amidakuji (ghost-leg) ladders from the command line or over HTTP.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file (default $"+config.EnvConfigPath+")")

	// Add subcommands
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))
	cmd.AddCommand(NewResolveCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig reads the configuration named by --config or AMIDA_CONFIG.
// A bad config file is a command error.
func (o *RootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	return cfg, nil
}

// newLogger builds the diagnostic logger. Logs always go to w (stderr) so
// they never corrupt JSON output.
func (o *RootOptions) newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return cfg.NewLogger(w, o.Verbose)
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}
