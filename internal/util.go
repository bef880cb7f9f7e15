package internal

import "fmt"

// ReconstructPath rebuilds the path from start to goal from the cameFrom map.
// It panics if the chain of predecessors breaks before reaching start.
func ReconstructPath[NodeType comparable](
	cameFrom map[NodeType]NodeType,
	start NodeType,
	goal NodeType,
) []NodeType {
	path := []NodeType{goal}
	current := goal
	for current != start {
		previousNode, exists := cameFrom[current]
		if !exists {
			panic(fmt.Sprintf("astar: no predecessor recorded for %v", current))
		}
		path = append(path, previousNode)
		current = previousNode
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
