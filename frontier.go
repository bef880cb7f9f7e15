package astar

import "container/heap"

type frontierEntry[NodeType comparable, WeightType Weight] struct {
	Node     NodeType
	Priority WeightType
}

type entryQueue[NodeType comparable, WeightType Weight] []frontierEntry[NodeType, WeightType]

func (queue entryQueue[NodeType, WeightType]) Len() int { return len(queue) }
func (queue entryQueue[NodeType, WeightType]) Less(i, j int) bool {
	return queue[i].Priority < queue[j].Priority
}
func (queue entryQueue[NodeType, WeightType]) Swap(i, j int) { queue[i], queue[j] = queue[j], queue[i] }

func (queue *entryQueue[NodeType, WeightType]) Push(x any) {
	*queue = append(*queue, x.(frontierEntry[NodeType, WeightType]))
}

func (queue *entryQueue[NodeType, WeightType]) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	entry := oldQueue[n-1]
	*queue = oldQueue[:n-1]
	return entry
}

// frontier is a min-priority open set with insert-or-improve semantics.
//
// Improvements push a fresh entry instead of fixing the old one in place.
// live holds the authoritative priority of every queued node; an entry that
// does not match it is stale and is dropped when it reaches the top.
type frontier[NodeType comparable, WeightType Weight] struct {
	queue     entryQueue[NodeType, WeightType]
	live      map[NodeType]WeightType
	discarded int
}

func newFrontier[NodeType comparable, WeightType Weight]() *frontier[NodeType, WeightType] {
	return &frontier[NodeType, WeightType]{
		queue: make(entryQueue[NodeType, WeightType], 0),
		live:  make(map[NodeType]WeightType),
	}
}

// offer queues node with priority unless it is already queued at a priority
// no greater than the offered one. It reports whether the frontier changed.
func (f *frontier[NodeType, WeightType]) offer(node NodeType, priority WeightType) bool {
	if queued, ok := f.live[node]; ok && queued <= priority {
		return false
	}
	f.live[node] = priority
	heap.Push(&f.queue, frontierEntry[NodeType, WeightType]{Node: node, Priority: priority})
	return true
}

// pop removes the live entry with the lowest priority, discarding stale
// entries on the way. ok is false once no live entry remains.
func (f *frontier[NodeType, WeightType]) pop() (entry frontierEntry[NodeType, WeightType], ok bool) {
	for f.queue.Len() > 0 {
		entry = heap.Pop(&f.queue).(frontierEntry[NodeType, WeightType])
		if current, queued := f.live[entry.Node]; !queued || current != entry.Priority {
			f.discarded++
			continue
		}
		delete(f.live, entry.Node)
		return entry, true
	}
	return entry, false
}

func (f *frontier[NodeType, WeightType]) nodes() map[NodeType]bool {
	m := make(map[NodeType]bool, len(f.live))
	for node := range f.live {
		m[node] = true
	}
	return m
}
