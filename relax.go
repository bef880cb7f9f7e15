package astar

// Relaxation records one improving edge relaxation made while expanding From.
type Relaxation[NodeType comparable, WeightType Weight] struct {
	From     NodeType
	To       NodeType
	Score    WeightType
	Priority WeightType
}
