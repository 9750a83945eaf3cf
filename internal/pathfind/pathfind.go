// Package pathfind provides grid A* search. The trade network and party
// movement consume it as a pure function; terrain costs come in through a
// callback so the package knows nothing about biomes or roads.
package pathfind

import "container/heap"

// CostFn returns the cost of entering a tile. A negative cost marks the
// tile impassable.
type CostFn func(x, y int) float64

// Point is a tile coordinate on the search grid.
type Point struct {
	X int
	Y int
}

// Find returns a path from start to goal, both endpoints included, or nil
// when no path exists. Movement is 8-directional; ties break toward lower
// (y, x) so results are deterministic.
func Find(width, height int, start, goal Point, cost CostFn) []Point {
	if !inBounds(start, width, height) || !inBounds(goal, width, height) {
		return nil
	}
	if cost(goal.X, goal.Y) < 0 {
		return nil
	}
	if start == goal {
		return []Point{start}
	}

	idx := func(p Point) int { return p.Y*width + p.X }
	gScore := make(map[int]float64, 64)
	cameFrom := make(map[int]Point, 64)
	gScore[idx(start)] = 0

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, &node{p: start, f: heuristic(start, goal)})
	inOpen := map[int]bool{idx(start): true}
	closed := make(map[int]bool, 64)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		ci := idx(cur.p)
		delete(inOpen, ci)
		if cur.p == goal {
			return rebuild(cameFrom, start, goal, width)
		}
		if closed[ci] {
			continue
		}
		closed[ci] = true

		for _, d := range neighborOrder {
			next := Point{cur.p.X + d.X, cur.p.Y + d.Y}
			if !inBounds(next, width, height) {
				continue
			}
			stepCost := cost(next.X, next.Y)
			if stepCost < 0 {
				continue
			}
			ni := idx(next)
			if closed[ni] {
				continue
			}
			tentative := gScore[ci] + stepCost
			if g, seen := gScore[ni]; seen && tentative >= g {
				continue
			}
			gScore[ni] = tentative
			cameFrom[ni] = cur.p
			if !inOpen[ni] {
				heap.Push(open, &node{p: next, f: tentative + heuristic(next, goal)})
				inOpen[ni] = true
			}
		}
	}
	return nil
}

// neighborOrder is fixed so equal-cost paths resolve identically run to run.
var neighborOrder = []Point{
	{0, -1}, {-1, 0}, {1, 0}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

func inBounds(p Point, width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// heuristic is Chebyshev distance, matching 8-directional movement.
func heuristic(a, b Point) float64 {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return float64(dx)
	}
	return float64(dy)
}

func rebuild(cameFrom map[int]Point, start, goal Point, width int) []Point {
	path := []Point{goal}
	cur := goal
	for cur != start {
		cur = cameFrom[cur.Y*width+cur.X]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type node struct {
	p Point
	f float64
}

type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	if h[i].p.Y != h[j].p.Y {
		return h[i].p.Y < h[j].p.Y
	}
	return h[i].p.X < h[j].p.X
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*node)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
