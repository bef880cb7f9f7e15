package valves

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// ErrTooManyValves is returned by NewPlanner when the useful valves do not
// fit in a bitmask.
var ErrTooManyValves = errors.New("valves: too many useful valves")

const maxUsefulValves = 64

// Opening records a valve and the minute it was opened.
type Opening struct {
	Valve  Label `json:"valve"`
	Minute int   `json:"minute"`
}

func (o Opening) String() string { return fmt.Sprintf("%s @ %d", o.Valve, o.Minute) }

// Plan is an ordered list of valve openings and the pressure it releases.
type Plan struct {
	Openings []Opening `json:"openings"`
	Released int       `json:"released"`
}

func (p Plan) String() string {
	parts := make([]string, len(p.Openings))
	for i, o := range p.Openings {
		parts[i] = o.String()
	}
	return strings.Join(parts, " -> ")
}

// Planner searches every opening order that fits in the time budget.
type Planner struct {
	network   *Network
	distances Distances
	start     Label
	minutes   int
	useful    []Label
	logger    *slog.Logger
}

// NewPlanner prepares a planner that starts at start with the given number of minutes.
func NewPlanner(network *Network, start Label, minutes int, logger *slog.Logger) (*Planner, error) {
	if minutes < 0 {
		return nil, fmt.Errorf("valves: negative time budget %d", minutes)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	useful := network.Useful()
	if len(useful) > maxUsefulValves {
		return nil, fmt.Errorf("%d useful valves, at most %d: %w", len(useful), maxUsefulValves, ErrTooManyValves)
	}
	distances, err := network.Distances(start, logger)
	if err != nil {
		return nil, err
	}
	return &Planner{
		network:   network,
		distances: distances,
		start:     start,
		minutes:   minutes,
		useful:    useful,
		logger:    logger,
	}, nil
}

// Released returns the pressure released by openings by the end of the budget.
func (p *Planner) Released(openings []Opening) int {
	total := 0
	for _, o := range openings {
		valve, _ := p.network.Valve(o.Valve)
		total += (p.minutes - o.Minute) * valve.Rate
	}
	return total
}

// Best returns the plan releasing the most pressure. Among equal plans the
// one found first in label order wins.
func (p *Planner) Best() Plan {
	best := Plan{}
	visited := p.walk(func(_ uint64, trail []Opening, released int) {
		if released > best.Released {
			best = Plan{Openings: append([]Opening(nil), trail...), Released: released}
		}
	})

	p.logger.Debug("plan found",
		slog.Int("released", best.Released),
		slog.Int("openings", len(best.Openings)),
		slog.Int("visited", visited),
	)
	return best
}

// PairPlan is the work of two walkers who start together and never open
// the same valve.
type PairPlan struct {
	First    Plan `json:"first"`
	Second   Plan `json:"second"`
	Released int  `json:"released"`
}

// BestPair returns the two plans with no valve in common whose combined
// release is highest. Each walker gets the planner's full time budget.
func (p *Planner) BestPair() PairPlan {
	bestBySet := make(map[uint64]Plan)
	visited := p.walk(func(set uint64, trail []Opening, released int) {
		if known, ok := bestBySet[set]; !ok || released > known.Released {
			bestBySet[set] = Plan{Openings: append([]Opening(nil), trail...), Released: released}
		}
	})

	sets := make([]uint64, 0, len(bestBySet))
	for set := range bestBySet {
		sets = append(sets, set)
	}
	slices.Sort(sets)

	best := PairPlan{First: bestBySet[0], Second: bestBySet[0]}
	for i, a := range sets {
		for _, b := range sets[i+1:] {
			if a&b != 0 {
				continue
			}
			released := bestBySet[a].Released + bestBySet[b].Released
			if released > best.Released {
				best = PairPlan{First: bestBySet[a], Second: bestBySet[b], Released: released}
			}
		}
	}

	p.logger.Debug("pair plan found",
		slog.Int("released", best.Released),
		slog.Int("valve_sets", len(sets)),
		slog.Int("visited", visited),
	)
	return best
}

// walk calls visit for every opening order that fits in the time budget,
// the empty one included, with the set of opened valves as a bitmask over
// p.useful. The trail passed to visit is reused between calls.
func (p *Planner) walk(visit func(set uint64, trail []Opening, released int)) int {
	var trail []Opening
	visited := 0

	var explore func(at Label, set uint64, minute, released int)
	explore = func(at Label, set uint64, minute, released int) {
		visited++
		visit(set, trail, released)
		for i, next := range p.useful {
			bit := uint64(1) << uint(i)
			if set&bit != 0 {
				continue
			}
			cost, ok := p.distances.Cost(at, next)
			if !ok || minute+cost > p.minutes {
				continue
			}
			valve, _ := p.network.Valve(next)
			openedAt := minute + cost

			trail = append(trail, Opening{Valve: next, Minute: openedAt})
			explore(next, set|bit, openedAt, released+(p.minutes-openedAt)*valve.Rate)
			trail = trail[:len(trail)-1]
		}
	}
	explore(p.start, 0, 0, 0)
	return visited
}
