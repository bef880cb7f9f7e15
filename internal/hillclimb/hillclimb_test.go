package hillclimb

import (
	"os"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/astar/v2"
)

func loadExample(t *testing.T) *Map {
	t.Helper()
	f, err := os.Open("testdata/example.txt")
	require.NoError(t, err)
	defer f.Close()

	m, err := Parse(f)
	require.NoError(t, err)
	return m
}

func TestParseExample(t *testing.T) {
	m := loadExample(t)

	assert.Equal(t, 8, m.Width)
	assert.Equal(t, 5, m.Height)
	assert.Equal(t, Point{X: 0, Y: 0}, m.Start)
	assert.Equal(t, Point{X: 5, Y: 2}, m.End)
	assert.Equal(t, 0, m.Elevation(m.Start))
	assert.Equal(t, 25, m.Elevation(m.End))
	assert.Equal(t, int('q'-'a'), m.Elevation(Point{X: 3, Y: 0}))
}

func TestRenderRoundTrips(t *testing.T) {
	m := loadExample(t)

	g := goldie.New(t)
	g.Assert(t, "example_map", []byte(m.String()))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmptyMap},
		{"blank lines", "\n\n", ErrEmptyMap},
		{"bad rune", "Sa1\naaE\n", ErrUnexpectedRune},
		{"upper case", "SaB\naaE\n", ErrUnexpectedRune},
		{"ragged", "Saa\naE\n", ErrRaggedRow},
		{"no start", "aaa\naaE\n", ErrMissingMarker},
		{"no end", "Saa\naaa\n", ErrMissingMarker},
		{"two starts", "SaS\naaE\n", ErrDuplicateMark},
		{"two ends", "SaE\naaE\n", ErrDuplicateMark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseAcceptsCRLF(t *testing.T) {
	m, err := Parse(strings.NewReader("Sab\r\nzyE\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, m.Width)
	assert.Equal(t, 2, m.Height)
}

func TestNeighborsClimbAtMostOneLevel(t *testing.T) {
	m := &Map{
		Width: 3, Height: 3,
		elevation: [][]int{
			{0, 5, 0},
			{2, 3, 4},
			{0, 9, 1},
		},
	}

	assert.ElementsMatch(t, []Point{{X: 0, Y: 1}, {X: 2, Y: 1}}, m.Neighbors(Point{X: 1, Y: 1}))
	assert.Empty(t, m.Neighbors(Point{X: 2, Y: 0}))
	assert.Empty(t, m.Neighbors(Point{X: 0, Y: 0}))
	assert.ElementsMatch(t, []Point{{X: 0, Y: 2}, {X: 2, Y: 2}, {X: 1, Y: 1}}, m.Neighbors(Point{X: 1, Y: 2}), "descending is free")
}

func TestFewestStepsExample(t *testing.T) {
	m := loadExample(t)

	path, found := m.Path(m.Start)
	require.True(t, found)
	assert.Len(t, path, 32)
	for i := 1; i < len(path); i++ {
		assert.Contains(t, m.Neighbors(path[i-1]), path[i])
	}

	steps, found := m.FewestSteps(m.Start)
	require.True(t, found)
	assert.Equal(t, 31, steps)
}

func TestFewestStepsFromLowestExample(t *testing.T) {
	m := loadExample(t)

	steps, from, found := m.FewestStepsFromLowest()
	require.True(t, found)
	assert.Equal(t, 29, steps)
	assert.Equal(t, 0, m.Elevation(from))
}

func TestFewestStepsDetoursAroundWall(t *testing.T) {
	m := &Map{
		Width: 3, Height: 2,
		Start: Point{X: 0, Y: 0},
		End:   Point{X: 2, Y: 0},
		elevation: [][]int{
			{0, 2, 0},
			{0, 1, 0},
		},
	}

	steps, found := m.FewestSteps(m.Start)
	require.True(t, found)
	assert.Equal(t, 4, steps)
	assert.Greater(t, steps, m.Start.Manhattan(m.End))
}

func TestFewestStepsUnreachable(t *testing.T) {
	m, err := Parse(strings.NewReader("SaxE\n"))
	require.NoError(t, err)

	_, found := m.FewestSteps(m.Start)
	assert.False(t, found)
	_, _, found = m.FewestStepsFromLowest()
	assert.False(t, found)
}

func TestMapSatisfiesEngineProperties(t *testing.T) {
	m := loadExample(t)

	result := astar.Search[Point, int](m, m.Start, m.End)
	require.True(t, result.Found)
	assert.Equal(t, 31, result.Cost)
	assert.Equal(t, result.Cost, astar.PathCost[Point, int](m, result.Path))

	path, found := astar.FindPath[Point, int](m, m.End, m.End)
	require.True(t, found)
	assert.Equal(t, []Point{m.End}, path)
}
