package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatCost(x, y int) float64 { return 1 }

func TestFindStraightLine(t *testing.T) {
	path := Find(10, 10, Point{0, 0}, Point{5, 0}, flatCost)
	require.NotNil(t, path)
	assert.Equal(t, Point{0, 0}, path[0])
	assert.Equal(t, Point{5, 0}, path[len(path)-1])
	assert.Len(t, path, 6)
}

func TestFindDiagonal(t *testing.T) {
	// Chebyshev movement: a pure diagonal is as short as a straight line.
	path := Find(10, 10, Point{0, 0}, Point{4, 4}, flatCost)
	require.NotNil(t, path)
	assert.Len(t, path, 5)
}

func TestFindRoutesAroundWall(t *testing.T) {
	// Vertical wall at x=5 with a gap at y=9.
	cost := func(x, y int) float64 {
		if x == 5 && y != 9 {
			return -1
		}
		return 1
	}
	path := Find(12, 12, Point{2, 2}, Point{9, 2}, cost)
	require.NotNil(t, path)
	for _, p := range path {
		if p.X == 5 {
			assert.Equal(t, 9, p.Y)
		}
	}
}

func TestFindUnreachable(t *testing.T) {
	cost := func(x, y int) float64 {
		if x == 5 {
			return -1
		}
		return 1
	}
	assert.Nil(t, Find(12, 12, Point{2, 2}, Point{9, 2}, cost))
}

func TestFindPrefersCheapTiles(t *testing.T) {
	// Row y=0 costs 10 per tile; row y=1 costs 1. The path should dip down.
	cost := func(x, y int) float64 {
		if y == 0 {
			return 10
		}
		return 1
	}
	path := Find(10, 10, Point{0, 0}, Point{6, 0}, cost)
	require.NotNil(t, path)
	dipped := false
	for _, p := range path[1 : len(path)-1] {
		if p.Y == 1 {
			dipped = true
		}
	}
	assert.True(t, dipped)
}

func TestFindDeterministic(t *testing.T) {
	a := Find(20, 20, Point{1, 1}, Point{17, 13}, flatCost)
	b := Find(20, 20, Point{1, 1}, Point{17, 13}, flatCost)
	assert.Equal(t, a, b)
}

func TestFindSameStartGoal(t *testing.T) {
	path := Find(10, 10, Point{3, 3}, Point{3, 3}, flatCost)
	assert.Equal(t, []Point{{3, 3}}, path)
}

func TestFindImpassableGoal(t *testing.T) {
	cost := func(x, y int) float64 {
		if x == 9 && y == 9 {
			return -1
		}
		return 1
	}
	assert.Nil(t, Find(10, 10, Point{0, 0}, Point{9, 9}, cost))
}
