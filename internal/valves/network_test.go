package valves

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadExample(t *testing.T) *Network {
	t.Helper()
	f, err := os.Open("testdata/example.txt")
	require.NoError(t, err)
	defer f.Close()

	n, err := ParseNetwork(f)
	require.NoError(t, err)
	return n
}

func label(t *testing.T, s string) Label {
	t.Helper()
	l, err := ParseLabel(s)
	require.NoError(t, err)
	return l
}

func labels(t *testing.T, ss ...string) []Label {
	t.Helper()
	out := make([]Label, len(ss))
	for i, s := range ss {
		out[i] = label(t, s)
	}
	return out
}

func TestParseLabel(t *testing.T) {
	l, err := ParseLabel("AB")
	require.NoError(t, err)
	assert.Equal(t, "AB", l.String())

	for _, bad := range []string{"", "A", "ABC", "ab", "A1"} {
		_, err := ParseLabel(bad)
		assert.ErrorIs(t, err, ErrBadLabel, bad)
	}
}

func TestLabelMarshalsAsText(t *testing.T) {
	data, err := json.Marshal(Opening{Valve: Label{'D', 'D'}, Minute: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"valve":"DD","minute":2}`, string(data))
}

func TestParseNetworkExample(t *testing.T) {
	n := loadExample(t)

	assert.Equal(t, 10, n.Len())
	hh, ok := n.Valve(label(t, "HH"))
	require.True(t, ok)
	assert.Equal(t, 22, hh.Rate)
	assert.Equal(t, labels(t, "GG"), hh.Tunnels)
	assert.Equal(t, labels(t, "DD", "II", "BB"), n.Neighbors(label(t, "AA")))
	assert.Equal(t, labels(t, "BB", "CC", "DD", "EE", "HH", "JJ"), n.Useful())
}

func TestParseNetworkErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"garbage", "hello\n", ErrMalformedLine},
		{"lower case label", "Valve aa has flow rate=0; tunnel leads to valve BB\n", ErrBadLabel},
		{"bad tunnel", "Valve AA has flow rate=0; tunnels lead to valves BB, C\n", ErrBadLabel},
		{"duplicate", "Valve AA has flow rate=0; tunnel leads to valve AA\nValve AA has flow rate=1; tunnel leads to valve AA\n", ErrDuplicate},
		{"dangling tunnel", "Valve AA has flow rate=0; tunnel leads to valve ZZ\n", ErrUnknownValve},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNetwork(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRoute(t *testing.T) {
	n := loadExample(t)

	route, err := n.Route(label(t, "AA"), label(t, "HH"))
	require.NoError(t, err)
	assert.Equal(t, labels(t, "AA", "DD", "EE", "FF", "GG", "HH"), route)

	route, err = n.Route(label(t, "JJ"), label(t, "JJ"))
	require.NoError(t, err)
	assert.Equal(t, labels(t, "JJ"), route)

	_, err = n.Route(label(t, "AA"), label(t, "ZZ"))
	assert.ErrorIs(t, err, ErrUnknownValve)
}

func TestRouteUnreachable(t *testing.T) {
	n, err := ParseNetwork(strings.NewReader(
		"Valve AA has flow rate=0; tunnel leads to valve AA\n" +
			"Valve BB has flow rate=5; tunnel leads to valve AA\n"))
	require.NoError(t, err)

	_, err = n.Route(label(t, "AA"), label(t, "BB"))
	assert.ErrorIs(t, err, ErrNoRoute)

	d, err := n.Distances(label(t, "AA"), nil)
	require.NoError(t, err)
	assert.Empty(t, d)
}

func TestDistances(t *testing.T) {
	n := loadExample(t)

	d, err := n.Distances(label(t, "AA"), nil)
	require.NoError(t, err)
	// 6 from the start plus 6*5 ordered pairs of useful valves
	assert.Len(t, d, 36)

	cost, ok := d.Cost(label(t, "AA"), label(t, "DD"))
	require.True(t, ok)
	assert.Equal(t, 2, cost)

	cost, ok = d.Cost(label(t, "JJ"), label(t, "HH"))
	require.True(t, ok)
	assert.Equal(t, 8, cost)

	cost, ok = d.Cost(label(t, "HH"), label(t, "JJ"))
	require.True(t, ok)
	assert.Equal(t, 8, cost)

	_, ok = d.Cost(label(t, "DD"), label(t, "AA"))
	assert.False(t, ok, "start is not a destination")

	_, err = n.Distances(label(t, "XX"), nil)
	assert.ErrorIs(t, err, ErrUnknownValve)
}
