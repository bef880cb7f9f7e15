package astar

import (
	"log/slog"

	"github.com/pdrpinto/astar/v2/internal"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[NodeType comparable, WeightType Weight] struct {
	Current   NodeType
	Open      map[NodeType]bool
	CameFrom  map[NodeType]NodeType
	Relaxed   []Relaxation[NodeType, WeightType]
	Done      bool
	Found     bool
	Path      []NodeType
	Cost      WeightType
	StepIndex int
}

// Stepper runs the same search as Search one expansion at a time.
// It is not safe for concurrent use.
type Stepper[NodeType comparable, WeightType Weight] struct {
	state     *searchState[NodeType, WeightType]
	stepCount int
}

// NewStepper creates a stepper positioned before the first expansion.
func NewStepper[NodeType comparable, WeightType Weight](
	graph Graph[NodeType, WeightType],
	startNode NodeType,
	goalNode NodeType,
	options ...Option,
) *Stepper[NodeType, WeightType] {
	opts := applyOptions(options)
	return &Stepper[NodeType, WeightType]{
		state: newSearchState(graph, startNode, goalNode, opts.Logger.With(slog.String("mode", "step"))),
	}
}

// Done reports whether the search has finished.
func (s *Stepper[NodeType, WeightType]) Done() bool { return s.state.done }

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is done further calls return the final snapshot again.
func (s *Stepper[NodeType, WeightType]) Step() StepSnapshot[NodeType, WeightType] {
	if s.state.done {
		var none NodeType
		return s.snapshot(none, nil)
	}

	s.stepCount++
	current, relaxed, _ := s.state.step()
	return s.snapshot(current, relaxed)
}

func (s *Stepper[NodeType, WeightType]) snapshot(
	current NodeType,
	relaxed []Relaxation[NodeType, WeightType],
) StepSnapshot[NodeType, WeightType] {
	snap := StepSnapshot[NodeType, WeightType]{
		Current:   current,
		Open:      s.state.frontier.nodes(),
		CameFrom:  copyCameFrom(s.state.cameFrom),
		Relaxed:   relaxed,
		Done:      s.state.done,
		Found:     s.state.found,
		StepIndex: s.stepCount,
	}
	if s.state.found {
		snap.Current = s.state.goalNode
		snap.Path = internal.ReconstructPath(s.state.cameFrom, s.state.startNode, s.state.goalNode)
		snap.Cost = s.state.scores[s.state.goalNode]
	}
	return snap
}

func copyCameFrom[T comparable](m map[T]T) map[T]T {
	if m == nil {
		return nil
	}
	c := make(map[T]T, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
