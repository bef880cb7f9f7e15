// Package valves models a network of labelled valves joined by tunnels and
// plans which valves to open to release the most pressure in a time budget.
//
// Travel between valves is routed with the astar engine; every tunnel takes
// one minute and opening a valve takes one more.
package valves

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/pdrpinto/astar/v2"
)

// Sentinel errors for parsing and routing.
var (
	ErrMalformedLine = errors.New("valves: malformed line")
	ErrBadLabel      = errors.New("valves: label must be two upper-case letters")
	ErrDuplicate     = errors.New("valves: duplicate valve")
	ErrUnknownValve  = errors.New("valves: unknown valve")
	ErrNoRoute       = errors.New("valves: no route")
)

var lineRE = regexp.MustCompile(`^Valve (\S+) has flow rate=(\d+); tunnels? leads? to valves? (.+)$`)

// Label names a valve with two upper-case letters.
type Label [2]byte

// ParseLabel converts s into a Label.
func ParseLabel(s string) (Label, error) {
	if len(s) != 2 || !isUpper(s[0]) || !isUpper(s[1]) {
		return Label{}, fmt.Errorf("%q: %w", s, ErrBadLabel)
	}
	return Label{s[0], s[1]}, nil
}

func (l Label) String() string { return string(l[:]) }

// MarshalText renders the label as its two letters.
func (l Label) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

// Valve is a single valve and the tunnels leaving it.
type Valve struct {
	Rate    int
	Tunnels []Label
}

// Network is the full valve layout.
type Network struct {
	valves map[Label]Valve
	labels []Label
}

var _ astar.Graph[Label, int] = (*Network)(nil)

// ParseNetwork reads lines of the form
//
//	Valve AA has flow rate=0; tunnels lead to valves DD, II, BB
func ParseNetwork(r io.Reader) (*Network, error) {
	n := &Network{valves: make(map[Label]Valve)}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		match := lineRE.FindStringSubmatch(text)
		if match == nil {
			return nil, fmt.Errorf("line %d: %w", line, ErrMalformedLine)
		}
		label, err := ParseLabel(match[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if _, exists := n.valves[label]; exists {
			return nil, fmt.Errorf("line %d: %s: %w", line, label, ErrDuplicate)
		}
		rate, err := strconv.Atoi(match[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: flow rate: %w", line, err)
		}

		var tunnels []Label
		for _, field := range strings.Split(match[3], ",") {
			tunnel, err := ParseLabel(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("line %d: tunnel: %w", line, err)
			}
			tunnels = append(tunnels, tunnel)
		}

		n.valves[label] = Valve{Rate: rate, Tunnels: tunnels}
		n.labels = append(n.labels, label)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("valves: read network: %w", err)
	}

	for _, label := range n.labels {
		for _, tunnel := range n.valves[label].Tunnels {
			if _, ok := n.valves[tunnel]; !ok {
				return nil, fmt.Errorf("%s leads to %s: %w", label, tunnel, ErrUnknownValve)
			}
		}
	}
	slices.SortFunc(n.labels, compareLabels)
	return n, nil
}

func compareLabels(a, b Label) int { return strings.Compare(a.String(), b.String()) }

// Len returns the number of valves.
func (n *Network) Len() int { return len(n.valves) }

// Valve returns the valve with the given label.
func (n *Network) Valve(label Label) (Valve, bool) {
	v, ok := n.valves[label]
	return v, ok
}

// Useful returns the labels of valves with a positive flow rate, sorted.
func (n *Network) Useful() []Label {
	var labels []Label
	for _, label := range n.labels {
		if n.valves[label].Rate > 0 {
			labels = append(labels, label)
		}
	}
	return labels
}

// Heuristic is the same for every pair of valves.
func (n *Network) Heuristic(from, to Label) int { return len(n.valves) }

// Weight is one minute per tunnel.
func (n *Network) Weight(from, to Label) int { return 1 }

// Neighbors returns the valves one tunnel away.
func (n *Network) Neighbors(label Label) []Label { return n.valves[label].Tunnels }

// Route returns the shortest sequence of valves from one valve to another, both included.
func (n *Network) Route(from, to Label, options ...astar.Option) ([]Label, error) {
	for _, label := range []Label{from, to} {
		if _, ok := n.valves[label]; !ok {
			return nil, fmt.Errorf("%s: %w", label, ErrUnknownValve)
		}
	}
	result := astar.Search[Label, int](n, from, to, options...)
	if !result.Found {
		return nil, fmt.Errorf("%s to %s: %w", from, to, ErrNoRoute)
	}
	return result.Path, nil
}

// Distances holds the minutes needed to walk to a valve and open it.
type Distances map[[2]Label]int

// Cost returns the minutes from standing at one valve to having opened another.
func (d Distances) Cost(from, to Label) (int, bool) {
	c, ok := d[[2]Label{from, to}]
	return c, ok
}

// Distances computes the opening cost from start to every useful valve and
// between every pair of useful valves. Unreachable pairs are left out.
func (n *Network) Distances(start Label, logger *slog.Logger) (Distances, error) {
	if _, ok := n.valves[start]; !ok {
		return nil, fmt.Errorf("%s: %w", start, ErrUnknownValve)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	useful := n.Useful()
	d := make(Distances)
	record := func(from, to Label) {
		path, found := astar.FindPath[Label, int](n, from, to)
		if !found {
			logger.Debug("valve unreachable", slog.String("from", from.String()), slog.String("to", to.String()))
			return
		}
		d[[2]Label{from, to}] = len(path)
	}

	for _, label := range useful {
		record(start, label)
	}
	for i, a := range useful {
		for _, b := range useful[i+1:] {
			record(a, b)
			record(b, a)
		}
	}
	logger.Debug("distances computed", slog.Int("useful", len(useful)), slog.Int("pairs", len(d)))
	return d, nil
}
