package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/amida/internal/ladder"
	"github.com/roach88/amida/internal/loader"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Start int
	All   bool
}

// TraceOutput is one traced path.
type TraceOutput struct {
	Start    int         `json:"start"`
	EndIndex int         `json:"endIndex"`
	Jogs     int         `json:"jogs"`
	Path     ladder.Path `json:"path"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <ladder-file>",
		Short: "Trace a token from a start column to the bottom",
		Long: `Trace the path a token dropped at a start column follows down a ladder.

The path starts at (start, 0) and ends at (final, levels). Every level adds
a descent waypoint, plus a jog waypoint when a rung moves the token.

Ladder files may be .json, .yaml, .yml, .cbor or .cue.

Examples:
  amida trace draw.json --start 2
  amida trace board.cue --all
  amida trace draw.cbor --all --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Start, "start", 0, "start column")
	cmd.Flags().BoolVar(&opts.All, "all", false, "trace every start column")

	return cmd
}

func runTrace(opts *TraceOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	l, err := loader.LoadLadder(path)
	if err != nil {
		return reportError(formatter, "failed to load ladder", err)
	}
	formatter.VerboseLog("Loaded %s: %d columns, %d levels, %d rungs", path, l.Columns, l.Levels, len(l.Rungs))

	var outputs []TraceOutput
	if opts.All {
		paths, err := ladder.TraceAll(l)
		if err != nil {
			return reportError(formatter, "trace failed", err)
		}
		for start, p := range paths {
			outputs = append(outputs, TraceOutput{Start: start, EndIndex: p.End(), Jogs: p.Jogs(), Path: p})
		}
	} else {
		p, err := ladder.Trace(l, opts.Start)
		if err != nil {
			return reportError(formatter, "trace failed", err)
		}
		outputs = append(outputs, TraceOutput{Start: opts.Start, EndIndex: p.End(), Jogs: p.Jogs(), Path: p})
	}

	if opts.Format == "json" {
		id, err := ladder.ID(l)
		if err != nil {
			return reportError(formatter, "trace failed", err)
		}
		if opts.All {
			return formatter.SuccessWithID(id, outputs)
		}
		return formatter.SuccessWithID(id, outputs[0])
	}

	w := cmd.OutOrStdout()
	for _, out := range outputs {
		fmt.Fprintf(w, "%d → %d  %s\n", out.Start, out.EndIndex, formatPath(out.Path))
	}
	return nil
}
