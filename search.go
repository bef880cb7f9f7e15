package astar

import (
	"context"
	"log/slog"
)

// searchState owns the frontier, score ledger and predecessor map of one search.
type searchState[NodeType comparable, WeightType Weight] struct {
	graph     Graph[NodeType, WeightType]
	startNode NodeType
	goalNode  NodeType
	logger    *slog.Logger

	frontier *frontier[NodeType, WeightType]
	scores   map[NodeType]WeightType
	cameFrom map[NodeType]NodeType

	expanded int
	done     bool
	found    bool
}

func newSearchState[NodeType comparable, WeightType Weight](
	graph Graph[NodeType, WeightType],
	startNode NodeType,
	goalNode NodeType,
	logger *slog.Logger,
) *searchState[NodeType, WeightType] {
	var zero WeightType
	state := &searchState[NodeType, WeightType]{
		graph:     graph,
		startNode: startNode,
		goalNode:  goalNode,
		logger:    logger,
		frontier:  newFrontier[NodeType, WeightType](),
		scores:    map[NodeType]WeightType{startNode: zero},
		cameFrom:  make(map[NodeType]NodeType),
	}
	state.frontier.offer(startNode, graph.Heuristic(startNode, goalNode))
	return state
}

// step expands the next live frontier node. It returns the expanded node and
// the relaxations it caused; expanded is false when the search ended without
// expanding anything, either because the goal was reached or the frontier ran dry.
func (s *searchState[NodeType, WeightType]) step() (current NodeType, relaxed []Relaxation[NodeType, WeightType], expanded bool) {
	if s.done {
		return current, nil, false
	}

	entry, ok := s.frontier.pop()
	if !ok {
		s.done = true
		s.logger.Debug("frontier exhausted", slog.Any("goal", s.goalNode))
		return current, nil, false
	}
	current = entry.Node

	// Goal check
	if current == s.goalNode {
		s.done = true
		s.found = true
		return current, nil, false
	}

	s.expanded++
	currentScore := s.scores[current]
	debug := s.logger.Enabled(context.Background(), slog.LevelDebug)
	if debug {
		s.logger.Debug("expanding node",
			slog.Any("node", current),
			slog.Any("score", currentScore),
			slog.Any("priority", entry.Priority),
		)
	}

	for _, neighbor := range s.graph.Neighbors(current) {
		tentativeScore := currentScore + s.graph.Weight(current, neighbor)
		if knownScore, reached := s.scores[neighbor]; reached && tentativeScore >= knownScore {
			continue
		}

		s.cameFrom[neighbor] = current
		s.scores[neighbor] = tentativeScore
		// The heuristic is taken between current and neighbor, not neighbor and goal.
		priority := tentativeScore + s.graph.Heuristic(current, neighbor)
		s.frontier.offer(neighbor, priority)

		relaxed = append(relaxed, Relaxation[NodeType, WeightType]{
			From:     current,
			To:       neighbor,
			Score:    tentativeScore,
			Priority: priority,
		})
		if debug {
			s.logger.Debug("relaxed edge",
				slog.Any("from", current),
				slog.Any("to", neighbor),
				slog.Any("score", tentativeScore),
				slog.Any("priority", priority),
			)
		}
	}
	return current, relaxed, true
}
