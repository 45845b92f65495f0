package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBisect(t *testing.T) {
	vals := []int{1, 3, 5, 7, 9}
	search := func(q int) int {
		return Bisect(len(vals), func(i int) bool { return vals[i] > q })
	}
	require.Equal(t, 0, search(0))
	require.Equal(t, 1, search(1))
	require.Equal(t, 2, search(4))
	require.Equal(t, 5, search(9))
	require.Equal(t, 5, search(100))
	require.Equal(t, 0, Bisect(0, func(int) bool { return true }))
}

func TestFindCrossings(t *testing.T) {
	vals := []float64{11.5, 11.9, 12.1, 12.5, 12.2, 11.8, 11.4}

	got := FindCrossings(vals, nil, 12, CrossingAny)
	require.Equal(t, []Crossing{{Index: 1, Type: CrossingUp}, {Index: 4, Type: CrossingDown}}, got)

	require.Equal(t, []Crossing{{Index: 1, Type: CrossingUp}}, FindCrossings(vals, nil, 12, CrossingUp))
	require.Equal(t, []Crossing{{Index: 4, Type: CrossingDown}}, FindCrossings(vals, nil, 12, CrossingDown))
}

func TestFindCrossingsSkipsInvalid(t *testing.T) {
	vals := []float64{11, 0, 13, 14}
	valid := func(i int) bool { return i != 1 }
	require.Empty(t, FindCrossings(vals, valid, 12, CrossingAny))
}

func TestFindCrossingsExactTarget(t *testing.T) {
	vals := []float64{11.9, 12, 12.1}
	require.Equal(t, []Crossing{{Index: 0, Type: CrossingUp}}, FindCrossings(vals, nil, 12, CrossingAny))
}
