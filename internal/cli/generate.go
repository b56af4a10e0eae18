package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/amida/internal/ladder"
	"github.com/roach88/amida/internal/loader"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Columns      int
	Levels       int
	Density      float64
	Bottom       []string
	DefaultAtari bool
	Seed         int64
	Out          string
}

// GenerateOutput is the JSON payload of the generate command.
type GenerateOutput struct {
	Ladder ladder.Ladder `json:"ladder"`
	ID     string        `json:"id"`
	Seed   int64         `json:"seed"`
	File   string        `json:"file,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new ladder",
		Long: `Generate a new ladder with randomly placed rungs.

Each slot between neighbouring columns gets a rung with probability
--density, unless the rung would share a column with one already placed
at the same level. Without --density the probability is chosen so that
each pair of neighbouring columns gets about four rungs. Omitted --levels defaults to columns times the
configured factor. Bottom labels are backfilled with the configured lose
label; with --default-atari one backfilled entry wins if none of the
supplied ones does.

The same --seed always yields the same ladder.

Examples:
  amida generate --columns 5
  amida generate --columns 4 --levels 12 --density 0.4 --seed 42
  amida generate --columns 3 --bottom 1st --bottom 2nd --default-atari
  amida generate --columns 6 --out draw.cbor`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Columns, "columns", 0, "number of vertical lines (required, at least 2)")
	cmd.Flags().IntVar(&opts.Levels, "levels", 0, "number of rows (0 selects the default)")
	cmd.Flags().Float64Var(&opts.Density, "density", 0, "rung probability per slot in [0, 1] (default: automatic, from config)")
	cmd.Flags().StringArrayVar(&opts.Bottom, "bottom", nil, "bottom label by position (repeatable)")
	cmd.Flags().BoolVar(&opts.DefaultAtari, "default-atari", false, "guarantee a winner among backfilled labels")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (default: time based)")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "write the ladder to a .json, .yaml or .cbor file")
	_ = cmd.MarkFlagRequired("columns")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logger := opts.newLogger(cfg, cmd.ErrOrStderr())

	req := ladder.GenerateRequest{
		Columns:      opts.Columns,
		Levels:       opts.Levels,
		BottomLabels: opts.Bottom,
		DefaultAtari: opts.DefaultAtari,
	}
	if cmd.Flags().Changed("density") {
		req.RungDensity = opts.Density
	} else {
		cfg.DensityFor(&req)
	}
	seed := time.Now().UnixNano()
	if cmd.Flags().Changed("seed") {
		seed = opts.Seed
	}

	gen := ladder.NewSeededGenerator(seed, cfg.Policy())
	l, err := gen.Generate(req)
	if err != nil {
		return reportError(formatter, "generate failed", err)
	}

	id, err := ladder.ID(l)
	if err != nil {
		return reportError(formatter, "generate failed", err)
	}
	logger.Debug("generated ladder", "id", id, "columns", l.Columns, "levels", l.Levels, "rungs", len(l.Rungs), "seed", seed)

	if opts.Out != "" {
		if err := loader.SaveLadder(opts.Out, l); err != nil {
			return reportError(formatter, "failed to write ladder", err)
		}
		logger.Debug("wrote ladder", "file", opts.Out)
	}

	if opts.Format == "json" {
		return formatter.SuccessWithID(id, GenerateOutput{Ladder: l, ID: id, Seed: seed, File: opts.Out})
	}

	w := cmd.OutOrStdout()
	RenderLadder(w, l)
	fmt.Fprintf(w, "id:     %s\n", id)
	fmt.Fprintf(w, "seed:   %d\n", seed)
	if opts.Out != "" {
		fmt.Fprintf(w, "✓ Wrote %s\n", opts.Out)
	}
	return nil
}
