package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/amida/internal/ladder"
	"github.com/roach88/amida/internal/loader"
)

// ResolveOptions holds flags for the resolve command.
type ResolveOptions struct {
	*RootOptions
	Top []string
}

// ResolveOutput is the JSON payload of the resolve command.
type ResolveOutput struct {
	ID       string           `json:"id"`
	Outcomes []ladder.Outcome `json:"outcomes"`
	Winners  []ladder.Outcome `json:"winners"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "resolve <ladder-file>",
		Short: "Pair every entry with the result it lands on",
		Long: `Resolve a ladder: trace every start column and pair the entry at the
top with the result label at the bottom.

Entry names come from the ladder file or from --top, which replaces them.
Winners are the outcomes whose result is the configured win label.

Examples:
  amida resolve draw.json
  amida resolve draw.yaml --top alice,bob,carol`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Top, "top", nil, "entry names by column, comma separated")

	return cmd
}

func runResolve(opts *ResolveOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	l, err := loader.LoadLadder(path)
	if err != nil {
		return reportError(formatter, "failed to load ladder", err)
	}

	if len(opts.Top) > 0 {
		if len(opts.Top) != l.Columns {
			msg := fmt.Sprintf("--top has %d names for %d columns", len(opts.Top), l.Columns)
			_ = formatter.Error(loader.ErrCodeInvalidRequest, msg, nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", loader.ErrCodeInvalidRequest, msg))
		}
		l.Top = opts.Top
	}

	outcomes, err := ladder.Resolve(l)
	if err != nil {
		return reportError(formatter, "resolve failed", err)
	}
	id, err := ladder.ID(l)
	if err != nil {
		return reportError(formatter, "resolve failed", err)
	}
	winners := ladder.Winners(outcomes, cfg.Generator.WinLabel)

	if opts.Format == "json" {
		if winners == nil {
			winners = []ladder.Outcome{}
		}
		return formatter.SuccessWithID(id, ResolveOutput{ID: id, Outcomes: outcomes, Winners: winners})
	}

	w := cmd.OutOrStdout()
	for _, o := range outcomes {
		fmt.Fprintf(w, "%s → %s\n", entryName(o), o.Result)
	}
	if len(winners) > 0 {
		fmt.Fprintln(w)
		for _, o := range winners {
			fmt.Fprintf(w, "★ %s\n", entryName(o))
		}
	}
	return nil
}

// entryName returns the top label of o, or its column when unnamed.
func entryName(o ladder.Outcome) string {
	if o.Entry != "" {
		return o.Entry
	}
	return fmt.Sprintf("#%d", o.Start)
}
