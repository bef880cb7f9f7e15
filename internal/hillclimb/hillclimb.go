// Package hillclimb models a height map where each step may climb at most one
// level, and answers fewest-step questions over it with the astar engine.
package hillclimb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdrpinto/astar/v2"
)

// Sentinel errors returned by Parse.
var (
	ErrEmptyMap       = errors.New("hillclimb: empty map")
	ErrUnexpectedRune = errors.New("hillclimb: unexpected character")
	ErrRaggedRow      = errors.New("hillclimb: row width differs from first row")
	ErrMissingMarker  = errors.New("hillclimb: missing start or end marker")
	ErrDuplicateMark  = errors.New("hillclimb: duplicate start or end marker")
)

const (
	lowest  = 0
	highest = 'z' - 'a'
)

// Point is a cell position; X grows to the right and Y grows downwards.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Manhattan returns the taxicab distance between p and other.
func (p Point) Manhattan(other Point) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// Map is a rectangular height map with a start and an end cell.
type Map struct {
	Width, Height int
	Start, End    Point

	elevation [][]int
}

var _ astar.Graph[Point, int] = (*Map)(nil)

// Parse reads a height map made of 'a'..'z' cells, one 'S' (start, lowest
// elevation) and one 'E' (end, highest elevation).
func Parse(r io.Reader) (*Map, error) {
	m := &Map{}
	var haveStart, haveEnd bool

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if text == "" {
			continue
		}
		if m.Width == 0 {
			m.Width = len(text)
		} else if len(text) != m.Width {
			return nil, fmt.Errorf("line %d: width %d, want %d: %w", line, len(text), m.Width, ErrRaggedRow)
		}

		y := len(m.elevation)
		row := make([]int, len(text))
		for x, ch := range []byte(text) {
			switch {
			case ch == 'S':
				if haveStart {
					return nil, fmt.Errorf("line %d column %d: %w", line, x+1, ErrDuplicateMark)
				}
				haveStart = true
				m.Start = Point{X: x, Y: y}
				row[x] = lowest
			case ch == 'E':
				if haveEnd {
					return nil, fmt.Errorf("line %d column %d: %w", line, x+1, ErrDuplicateMark)
				}
				haveEnd = true
				m.End = Point{X: x, Y: y}
				row[x] = highest
			case ch >= 'a' && ch <= 'z':
				row[x] = int(ch - 'a')
			default:
				return nil, fmt.Errorf("line %d column %d: %q: %w", line, x+1, ch, ErrUnexpectedRune)
			}
		}
		m.elevation = append(m.elevation, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("hillclimb: read map: %w", err)
	}

	m.Height = len(m.elevation)
	if m.Height == 0 {
		return nil, ErrEmptyMap
	}
	if !haveStart || !haveEnd {
		return nil, ErrMissingMarker
	}
	return m, nil
}

// Elevation returns the height of p, from 0 ('a') to 25 ('z').
func (m *Map) Elevation(p Point) int { return m.elevation[p.Y][p.X] }

func (m *Map) contains(p Point) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// Heuristic is the Manhattan distance between the two cells.
func (m *Map) Heuristic(from, to Point) int { return from.Manhattan(to) }

// Weight is one for every step.
func (m *Map) Weight(from, to Point) int { return 1 }

// Neighbors returns the orthogonal cells that are at most one level higher than node.
func (m *Map) Neighbors(node Point) []Point {
	height := m.Elevation(node)
	candidates := [4]Point{
		{X: node.X - 1, Y: node.Y},
		{X: node.X + 1, Y: node.Y},
		{X: node.X, Y: node.Y - 1},
		{X: node.X, Y: node.Y + 1},
	}

	points := make([]Point, 0, len(candidates))
	for _, p := range candidates {
		if m.contains(p) && m.Elevation(p) <= height+1 {
			points = append(points, p)
		}
	}
	return points
}

// Lowest returns every cell at the lowest elevation in row-major order.
func (m *Map) Lowest() []Point {
	var points []Point
	for y, row := range m.elevation {
		for x, height := range row {
			if height == lowest {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}

// Path returns the fewest-step route from the given cell to the end cell.
func (m *Map) Path(from Point, options ...astar.Option) ([]Point, bool) {
	result := astar.Search[Point, int](m, from, m.End, options...)
	return result.Path, result.Found
}

// FewestSteps returns the number of steps from the given cell to the end cell.
func (m *Map) FewestSteps(from Point, options ...astar.Option) (int, bool) {
	path, found := m.Path(from, options...)
	if !found {
		return 0, false
	}
	return len(path) - 1, true
}

// FewestStepsFromLowest returns the fewest steps to the end cell from any
// lowest cell, along with the cell that achieves it.
func (m *Map) FewestStepsFromLowest(options ...astar.Option) (steps int, from Point, found bool) {
	for _, candidate := range m.Lowest() {
		n, ok := m.FewestSteps(candidate, options...)
		if ok && (!found || n < steps) {
			steps, from, found = n, candidate, true
		}
	}
	return steps, from, found
}

// String renders the map in its input alphabet, one row per line.
func (m *Map) String() string {
	var b strings.Builder
	for y, row := range m.elevation {
		for x, height := range row {
			switch (Point{X: x, Y: y}) {
			case m.Start:
				b.WriteByte('S')
			case m.End:
				b.WriteByte('E')
			default:
				b.WriteByte(byte('a' + height))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
