package astar

import (
	"log/slog"

	"github.com/pdrpinto/astar/v2/internal"
)

// Weight is the set of numeric types usable as edge weights.
// The zero value is the additive identity; absence of a score means unreachable.
type Weight interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Graph is generic over node type N and weight type W.
// N must be comparable so it can be used in maps.
//
// Implementations must be free of side effects. Weight is only called on
// pairs returned by Neighbors, and weights must never be negative.
type Graph[NodeType comparable, WeightType Weight] interface {
	// Heuristic returns a lower bound on the cost of travelling from one node to another.
	Heuristic(from NodeType, to NodeType) WeightType
	// Weight returns the cost of the direct edge between two nodes.
	Weight(from NodeType, to NodeType) WeightType
	// Neighbors returns the nodes reachable from node in one step.
	Neighbors(node NodeType) []NodeType
}

// Result contains the outcome of a search
type Result[NodeType comparable, WeightType Weight] struct {
	Path      []NodeType
	Cost      WeightType
	Expanded  int
	Discarded int
	Found     bool
}

// Options defines parameters for the search.
type Options struct {
	Logger *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger routes search diagnostics to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.New(slog.DiscardHandler)
	}
	return searchOptions
}

// FindPath returns the cheapest path from startNode to goalNode inclusive.
// The boolean is false when goalNode cannot be reached.
func FindPath[NodeType comparable, WeightType Weight](
	graph Graph[NodeType, WeightType],
	startNode NodeType,
	goalNode NodeType,
) ([]NodeType, bool) {
	result := Search(graph, startNode, goalNode)
	return result.Path, result.Found
}

// Search executes the A* search algorithm.
func Search[NodeType comparable, WeightType Weight](
	graph Graph[NodeType, WeightType],
	startNode NodeType,
	goalNode NodeType,
	options ...Option,
) Result[NodeType, WeightType] {
	searchOptions := applyOptions(options)
	logger := searchOptions.Logger

	if startNode == goalNode {
		logger.Debug("start is goal", slog.Any("node", startNode))
		return Result[NodeType, WeightType]{Path: []NodeType{startNode}, Found: true}
	}

	state := newSearchState(graph, startNode, goalNode, logger)
	for !state.done {
		state.step()
	}

	result := Result[NodeType, WeightType]{
		Expanded:  state.expanded,
		Discarded: state.frontier.discarded,
		Found:     state.found,
	}
	if state.found {
		result.Path = internal.ReconstructPath(state.cameFrom, startNode, goalNode)
		result.Cost = state.scores[goalNode]
	}
	logger.Debug("search finished",
		slog.Bool("found", result.Found),
		slog.Int("expanded", result.Expanded),
		slog.Int("discarded", result.Discarded),
		slog.Int("length", len(result.Path)),
	)
	return result
}

// PathCost sums the edge weights along path.
func PathCost[NodeType comparable, WeightType Weight](
	graph Graph[NodeType, WeightType],
	path []NodeType,
) WeightType {
	var total WeightType
	for i := 1; i < len(path); i++ {
		total += graph.Weight(path[i-1], path[i])
	}
	return total
}
