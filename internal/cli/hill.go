package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/internal/hillclimb"
)

// HillOptions holds flags for the hill command.
type HillOptions struct {
	*RootOptions
	FromLowest bool
	Trace      bool
	HideMap    bool
}

// HillResult is the JSON payload of the hill command.
type HillResult struct {
	Steps int               `json:"steps"`
	From  hillclimb.Point   `json:"from"`
	To    hillclimb.Point   `json:"to"`
	Path  []hillclimb.Point `json:"path,omitempty"`
}

// NewHillCommand creates the hill command.
func NewHillCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HillOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "hill <input>",
		Short: "Fewest steps up a height map",
		Long: `Read a height map of 'a'..'z' cells with a start 'S' and an end 'E' and
print the fewest steps from S to E, climbing at most one level per step.

Example:
  puzzlepath hill input.txt
  puzzlepath hill --from-lowest --format json input.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHill(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.FromLowest, "from-lowest", false, "start from whichever lowest cell is closest to E")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "log every expansion of the search at debug level")
	cmd.Flags().BoolVar(&opts.HideMap, "no-map", false, "do not print the map in text output")

	return cmd
}

func runHill(opts *HillOptions, input string, cmd *cobra.Command) error {
	logger := opts.Logger
	r, err := openInput(cmd, input)
	if err != nil {
		return err
	}
	defer r.Close()

	m, err := hillclimb.Parse(r)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to parse height map", err)
	}
	logger.Info("height map loaded", slog.Int("width", m.Width), slog.Int("height", m.Height))

	from := m.Start
	if opts.FromLowest {
		steps, best, found := m.FewestStepsFromLowest(astar.WithLogger(logger))
		if !found {
			return WrapExitError(ExitFailure, "no lowest cell reaches the end", ErrNoPath)
		}
		logger.Info("closest lowest cell", slog.Any("from", best), slog.Int("steps", steps))
		from = best
	}

	var path []hillclimb.Point
	var found bool
	if opts.Trace {
		path, found = traceHill(m, from, logger)
	} else {
		path, found = m.Path(from, astar.WithLogger(logger))
	}
	if !found {
		return WrapExitError(ExitFailure, fmt.Sprintf("%v cannot reach %v", from, m.End), ErrNoPath)
	}

	result := HillResult{Steps: len(path) - 1, From: from, To: m.End, Path: path}
	var text strings.Builder
	if !opts.HideMap {
		text.WriteString(m.String())
		text.WriteString("\n")
	}
	if opts.FromLowest {
		fmt.Fprintf(&text, "%d steps from %v\n", result.Steps, from)
	} else {
		fmt.Fprintf(&text, "%d steps\n", result.Steps)
	}
	return opts.formatter(cmd).Success(result, text.String())
}

func traceHill(m *hillclimb.Map, from hillclimb.Point, logger *slog.Logger) ([]hillclimb.Point, bool) {
	stepper := astar.NewStepper[hillclimb.Point, int](m, from, m.End)
	for {
		snap := stepper.Step()
		logger.Debug("step",
			slog.Int("index", snap.StepIndex),
			slog.Any("current", snap.Current),
			slog.Int("open", len(snap.Open)),
			slog.Int("relaxed", len(snap.Relaxed)),
		)
		if snap.Done {
			return snap.Path, snap.Found
		}
	}
}
