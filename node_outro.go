// Copyright (C) 2022-2023, VigilantDoomer
//
// This file is part of VigilantBSP program.
//
// VigilantBSP is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// VigilantBSP is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VigilantBSP.  If not, see <https://www.gnu.org/licenses/>.
package convexbsp

import (
	"fmt"
	"math"
)

// node_outro.go
// Contains stuff executed after the tree was built: statistics, sanity
// checks, and the queries collaborators run against the finished tree. The
// finished tree is never modified, so these are safe to call concurrently

// Relative tolerance of per-linedef length comparison in VerifyTree
const VERIFY_LENGTH_TOLERANCE = 1e-6

func (w *NodesWork) printStats(tree *Tree) {
	w.log.Printf("[%s] Created %d subsectors, %d nodes. Got %d segs. Split segs %d times.\n",
		w.buildId, w.totals.NumSSectors, w.totals.NumNodes,
		w.totals.NumSegs, w.totals.SegSplits)
	if !tree.Root.IsLeaf() {
		root := tree.Nodes[tree.Root.Index()]
		w.log.Printf("[%s] Height of front and back subtrees = (%d,%d)\n",
			w.buildId, tree.heightOf(root.Front), tree.heightOf(root.Back))
	}
	w.log.Printf("[%s] Max seg count in subsector: %d\n", w.buildId,
		w.totals.MaxSegCountInSubsector)
	if w.totals.Degenerate > 0 || w.totals.Unresolvable > 0 {
		w.log.Error("[%s] Warning: %d degenerate subsectors, %d unresolvable partitions.\n",
			w.buildId, w.totals.Degenerate, w.totals.Unresolvable)
	}
}

// Height is the number of nodes on the longest path from root to a
// subsector (0 for a tree that is a single subsector)
func (t *Tree) Height() int {
	return t.heightOf(t.Root)
}

func (t *Tree) heightOf(ref ChildRef) int {
	if ref.IsLeaf() {
		return 0
	}
	node := &t.Nodes[ref.Index()]
	fHeight := t.heightOf(node.Front)
	bHeight := t.heightOf(node.Back)
	if fHeight < bHeight {
		return bHeight + 1
	}
	return fHeight + 1
}

// Locate descends the tree to the subsector containing point p. Points on a
// partition line go front. Returns index into t.Subsectors
func (t *Tree) Locate(p NodeVertex) int {
	ref := t.Root
	for !ref.IsLeaf() {
		node := &t.Nodes[ref.Index()]
		// positive is to the left = back
		cross := node.Dx*(p.Y-node.Y) - node.Dy*(p.X-node.X)
		if cross > 0 {
			ref = node.Back
		} else {
			ref = node.Front
		}
	}
	return ref.Index()
}

// Contains tells whether point p is inside subsector or on its boundary
// (within epsilon). Always false for degenerate subsectors
func (s *Subsector) Contains(p NodeVertex, epsilon float64) bool {
	if s.Degenerate || len(s.Segs) < 3 {
		return false
	}
	for _, seg := range s.Segs {
		if seg.len == 0 {
			continue
		}
		d := (seg.pdx*(p.Y-seg.start.Y) - seg.pdy*(p.X-seg.start.X)) / seg.len
		if d > epsilon { // left of seg is outside
			return false
		}
	}
	return true
}

// VerifyTree checks a finished tree against rings it was built from: every
// node has two valid children, every node and subsector is reachable exactly
// once, boundary length from every linedef is preserved, and every
// subsector not marked degenerate is convex
func VerifyTree(tree *Tree, rings []Ring, epsilon float64) error {
	nodeSeen := make([]bool, len(tree.Nodes))
	ssSeen := make([]bool, len(tree.Subsectors))
	stack := []ChildRef{tree.Root}
	for len(stack) > 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		idx := ref.Index()
		if ref.IsLeaf() {
			if idx >= len(ssSeen) {
				return fmt.Errorf("%w: reference to missing %s", ErrBadTree, ref)
			}
			if ssSeen[idx] {
				return fmt.Errorf("%w: %s referenced twice", ErrBadTree, ref)
			}
			ssSeen[idx] = true
			continue
		}
		if idx >= len(nodeSeen) {
			return fmt.Errorf("%w: reference to missing %s", ErrBadTree, ref)
		}
		if nodeSeen[idx] {
			return fmt.Errorf("%w: %s referenced twice", ErrBadTree, ref)
		}
		nodeSeen[idx] = true
		stack = append(stack, tree.Nodes[idx].Front, tree.Nodes[idx].Back)
	}
	for i, seen := range nodeSeen {
		if !seen {
			return fmt.Errorf("%w: node %d is unreachable", ErrBadTree, i)
		}
	}
	for i, seen := range ssSeen {
		if !seen {
			return fmt.Errorf("%w: subsector %d is unreachable", ErrBadTree, i)
		}
	}

	want := make(map[LineRef]float64)
	for _, ring := range rings {
		for _, ls := range ring {
			want[ls.Linedef] += math.Hypot(ls.End.X-ls.Start.X, ls.End.Y-ls.Start.Y)
		}
	}
	got := make(map[LineRef]float64)
	for i := range tree.Subsectors {
		ss := &tree.Subsectors[i]
		for _, seg := range ss.Segs {
			if !seg.IsCloser() {
				got[seg.linedef] += seg.len
			}
		}
		if ss.Degenerate {
			continue
		}
		if states := IsItConvex(ss.Segs, epsilon); states.State != StateFinishedIsConvex {
			return fmt.Errorf("%w: subsector %d is %s (%s)", ErrBadTree, i,
				states.State.String(), states.Reason.String())
		}
	}
	for line, l := range want {
		if math.Abs(got[line]-l) > VERIFY_LENGTH_TOLERANCE*math.Max(1, l) {
			return fmt.Errorf("%w: linedef %d has length %v in subsectors, %v in map",
				ErrBadTree, line, got[line], l)
		}
	}
	for line := range got {
		if _, ok := want[line]; !ok {
			return fmt.Errorf("%w: linedef %d is not in map", ErrBadTree, line)
		}
	}
	return nil
}
