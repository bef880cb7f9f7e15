package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/internal/valves"
)

// ValvesOptions holds flags for the valves commands.
type ValvesOptions struct {
	*RootOptions
	Start   string
	Minutes int
	Pair    bool
}

// RouteResult is the JSON payload of the valves route command.
type RouteResult struct {
	Route   []valves.Label `json:"route"`
	Minutes int            `json:"minutes"`
}

// NewValvesCommand creates the valves command group.
func NewValvesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValvesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "valves",
		Short: "Route through and plan a network of valves",
	}

	cmd.AddCommand(newValvesPlanCommand(opts))
	cmd.AddCommand(newValvesRouteCommand(opts))
	return cmd
}

func newValvesPlanCommand(opts *ValvesOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <input>",
		Short: "Find the valve opening order that releases the most pressure",
		Long: `Read a valve network and print the order in which to open valves so that
the most pressure is released before time runs out. Walking a tunnel and
opening a valve take one minute each.

With --pair two walkers share the work: both start at the same valve, no
valve is opened twice and the combined release is maximised. The time
budget then defaults to valves.pair_minutes (26).

Example:
  puzzlepath valves plan input.txt
  puzzlepath valves plan --minutes 26 --start AA input.txt
  puzzlepath valves plan --pair input.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValvesPlan(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Start, "start", "", "valve to start from (default from config, AA)")
	cmd.Flags().IntVar(&opts.Minutes, "minutes", 0, "time budget in minutes (default from config, 30 or 26 with --pair)")
	cmd.Flags().BoolVar(&opts.Pair, "pair", false, "plan for two walkers opening disjoint sets of valves")
	return cmd
}

func newValvesRouteCommand(opts *ValvesOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "route <input> <from> <to>",
		Short: "Print the shortest tunnel route between two valves",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValvesRoute(opts, args[0], args[1], args[2], cmd)
		},
	}
}

func loadNetwork(cmd *cobra.Command, input string, logger *slog.Logger) (*valves.Network, error) {
	r, err := openInput(cmd, input)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	network, err := valves.ParseNetwork(r)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to parse valve network", err)
	}
	logger.Info("valve network loaded", slog.Int("valves", network.Len()), slog.Int("useful", len(network.Useful())))
	return network, nil
}

func runValvesPlan(opts *ValvesOptions, input string, cmd *cobra.Command) error {
	logger := opts.Logger
	network, err := loadNetwork(cmd, input, logger)
	if err != nil {
		return err
	}

	startName := opts.Config.Valves.Start
	if cmd.Flags().Changed("start") {
		startName = opts.Start
	}
	minutes := opts.Config.Valves.Minutes
	if opts.Pair {
		minutes = opts.Config.Valves.PairMinutes
	}
	if cmd.Flags().Changed("minutes") {
		minutes = opts.Minutes
	}
	start, err := valves.ParseLabel(startName)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid start valve", err)
	}

	planner, err := valves.NewPlanner(network, start, minutes, logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to prepare planner", err)
	}
	if opts.Pair {
		pair := planner.BestPair()
		text := fmt.Sprintf("Participant 1: %s\nParticipant 2: %s\nScore: %d\n", pair.First, pair.Second, pair.Released)
		return opts.formatter(cmd).Success(pair, text)
	}

	plan := planner.Best()
	text := fmt.Sprintf("%s\nTotal released: %d\n", plan, plan.Released)
	return opts.formatter(cmd).Success(plan, text)
}

func runValvesRoute(opts *ValvesOptions, input, fromName, toName string, cmd *cobra.Command) error {
	logger := opts.Logger
	network, err := loadNetwork(cmd, input, logger)
	if err != nil {
		return err
	}

	from, err := valves.ParseLabel(fromName)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid valve", err)
	}
	to, err := valves.ParseLabel(toName)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid valve", err)
	}

	route, err := network.Route(from, to, astar.WithLogger(logger))
	if err != nil {
		code := ExitCommandError
		if errors.Is(err, valves.ErrNoRoute) {
			code = ExitFailure
		}
		return WrapExitError(code, "failed to route", err)
	}

	result := RouteResult{Route: route, Minutes: len(route) - 1}
	parts := make([]string, len(route))
	for i, label := range route {
		parts[i] = label.String()
	}
	text := fmt.Sprintf("%s\n%d minutes\n", strings.Join(parts, " -> "), result.Minutes)
	return opts.formatter(cmd).Success(result, text)
}
