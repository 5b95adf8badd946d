package motion

import (
	"fmt"

	"fieldctl/geometry"
)

// node is one vertex of an RRT tree: its position and the index of its
// parent within the same tree's slice (-1 for the root).
type node struct {
	pos    geometry.Point2
	parent int
}

func nearestIndex(tree []node, target geometry.Point2) int {
	best := 0
	bestDist := tree[0].pos.DistanceTo(target)
	for i := 1; i < len(tree); i++ {
		if d := tree[i].pos.DistanceTo(target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// extend grows tree by one step toward target, stopping short at step if
// target is farther away. Returns the new tree, the index of the node it
// added, and whether that node landed exactly on target. idx is -1 if the
// step would land on a non-free point.
func extend(tree []node, target geometry.Point2, step float64, isFree func(geometry.Point2) bool) ([]node, int, bool) {
	from := nearestIndex(tree, target)
	fromPos := tree[from].pos
	dist := fromPos.DistanceTo(target)

	reached := dist <= step
	newPos := target
	if !reached {
		newPos = fromPos.Add(fromPos.To(target).Normalize().Scale(step))
	}
	if !isFree(newPos) {
		return tree, -1, false
	}
	tree = append(tree, node{pos: newPos, parent: from})
	return tree, len(tree) - 1, reached
}

// connect repeatedly extends tree toward target until it reaches target,
// stalls on an obstacle, or the step limit is hit.
func connect(tree []node, target geometry.Point2, step float64, isFree func(geometry.Point2) bool, maxSteps int) ([]node, int, bool) {
	for i := 0; i < maxSteps; i++ {
		newTree, idx, reached := extend(tree, target, step, isFree)
		tree = newTree
		if idx < 0 {
			return tree, -1, false
		}
		if reached {
			return tree, idx, true
		}
	}
	return tree, -1, false
}

// rrtConnect grows two trees, one rooted at start and one at goal,
// alternately extending the active tree toward a fresh sample and then
// trying to connect the other tree straight to the new node. It reports
// NoPathFound once maxTries iterations pass without a connection.
func rrtConnect(
	start, goal geometry.Point2,
	isFree func(geometry.Point2) bool,
	sample func() geometry.Point2,
	step float64,
	maxTries int,
) ([]geometry.Point2, error) {
	treeStart := []node{{pos: start, parent: -1}}
	treeGoal := []node{{pos: goal, parent: -1}}
	fromStart := true

	for i := 0; i < maxTries; i++ {
		sampled := sample()

		active, passive := &treeStart, &treeGoal
		if !fromStart {
			active, passive = &treeGoal, &treeStart
		}

		newActive, idx, _ := extend(*active, sampled, step, isFree)
		*active = newActive
		if idx < 0 {
			fromStart = !fromStart
			continue
		}

		newPassive, pidx, reached := connect(*passive, (*active)[idx].pos, step, isFree, maxTries)
		*passive = newPassive
		if reached {
			return buildPath(*active, idx, *passive, pidx, fromStart), nil
		}
		fromStart = !fromStart
	}
	return nil, fmt.Errorf("exhausted %d iterations", maxTries)
}

// buildPath walks both trees from the connecting nodes back to their roots
// and splices the two halves into one start-to-goal polyline.
func buildPath(activeTree []node, activeIdx int, passiveTree []node, passiveIdx int, activeIsStart bool) []geometry.Point2 {
	var fromActive []geometry.Point2
	for i := activeIdx; i != -1; i = activeTree[i].parent {
		fromActive = append(fromActive, activeTree[i].pos)
	}
	reverse(fromActive)

	var fromPassive []geometry.Point2
	for i := passiveIdx; i != -1; i = passiveTree[i].parent {
		fromPassive = append(fromPassive, passiveTree[i].pos)
	}

	full := append(fromActive, fromPassive...)
	if !activeIsStart {
		reverse(full)
	}
	return full
}

func reverse(pts []geometry.Point2) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
