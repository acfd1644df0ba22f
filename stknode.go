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

// This unit contains algorithm to build BSP tree breadth-first rather than
// depth-first. Regions waiting to be processed are kept in a queue, each with
// its depth, so that the depth limit is checked without relying on call
// stack, and malformed input that keeps producing new regions results in an
// error rather than stack overflow

// Stk stands for "stUck", as in being stuck to give a name to it.

// StkQueue grows when new things enqueued, but doesn't remove values when
// dequeued. Only cursor is moved on dequeue
type StkQueue struct {
	tasks []StkQueueTask
	cur   int // cursor (points at task not yet processed)
}

type StkQueueTask struct {
	num         int        // index of self in queue
	parentNode  int        // index of parent node in w.nodes (-1 for root)
	isBackChild bool       // whether it's parent back or front subnode
	depth       int        // depth in tree relative to root (root is at 0)
	segs        []*NodeSeg // region to process
}

func (q *StkQueue) Enqueue(segs []*NodeSeg, parentNode int, isBackChild bool,
	depth int) {
	q.tasks = append(q.tasks, StkQueueTask{
		num:         len(q.tasks),
		parentNode:  parentNode,
		isBackChild: isBackChild,
		depth:       depth,
		segs:        segs,
	})
}

// Dequeue returns a copy of next task or nil when all were processed. The
// copy stays valid when queue grows
func (q *StkQueue) Dequeue() *StkQueueTask {
	if q.cur == len(q.tasks) {
		return nil
	}
	task := q.tasks[q.cur]
	q.cur++
	return &task
}

func (q *StkQueue) Len() int {
	return len(q.tasks) - q.cur
}

// StkEntryPoint builds the whole tree from the root region and returns
// reference to the root
func StkEntryPoint(w *NodesWork, allSegs []*NodeSeg) (ChildRef, error) {
	q := &StkQueue{}
	q.Enqueue(allSegs, -1, false, 0)
	var root ChildRef
	for task := q.Dequeue(); task != nil; task = q.Dequeue() {
		ref, err := StkCreateNode(w, task, q)
		if err != nil {
			return 0, err
		}
		if task.parentNode < 0 {
			root = ref
		} else if task.isBackChild {
			w.nodes[task.parentNode].Back = ref
		} else {
			w.nodes[task.parentNode].Front = ref
		}
	}
	return root, nil
}

// StkCreateNode processes one region: makes it a subsector if it is convex
// or degenerate, otherwise partitions it and queues both sides
func StkCreateNode(w *NodesWork, task *StkQueueTask, q *StkQueue) (ChildRef, error) {
	states := IsItConvex(task.segs, w.epsilon)
	switch states.State {
	case StateFinishedIsConvex:
		return w.CreateSSector(states.Traversal, false, REASON_NONE), nil
	case StateFinishedIsDegenerate:
		w.log.Verbose(1, "[%s] Degenerate region of %d segs at depth %d (%s)\n",
			w.buildId, len(task.segs), task.depth, states.Reason.String())
		return w.CreateSSector(task.segs, true, states.Reason), nil
	}

	if isFlat(task.segs, w.epsilon) {
		// Whatever partition is picked, one side closes into the same
		// region again
		w.log.Verbose(1, "[%s] Region of %d segs at depth %d encloses no area (%s)\n",
			w.buildId, len(task.segs), task.depth, states.Reason.String())
		return w.CreateSSector(task.segs, true, REASON_FLAT), nil
	}

	if task.depth >= w.maxDepth {
		return 0, &BuildError{
			Err:          ErrRecursionLimit,
			Depth:        task.depth,
			Segs:         len(task.segs),
			Subsectors:   w.totals.NumSSectors,
			Degenerate:   w.totals.Degenerate,
			Unresolvable: w.totals.Unresolvable,
		}
	}

	w.log.DumpSegs(fmt.Sprintf("Non-convex region at depth %d (%s)",
		task.depth, states.Reason.String()), task.segs)
	best := w.pickNode(w, task.segs)
	if best == nil {
		// No seg has anything on its back side. Can't be partitioned by
		// any of its own segs, so let collaborators deal with it
		w.totals.Unresolvable++
		w.log.Error("[%s] Warning: no partition for region of %d segs at depth %d (%s), leaving it as degenerate subsector\n",
			w.buildId, len(task.segs), task.depth, states.Reason.String())
		return w.CreateSSector(task.segs, true, REASON_UNRESOLVABLE), nil
	}
	if w.sliverPicked {
		w.totals.Unresolvable++
		w.log.Error("[%s] Warning: every partition of region of %d segs at depth %d leaves a side too small to close, using %s\n",
			w.buildId, len(task.segs), task.depth, best.String())
	}

	num, rights, lefts := w.createNode(task.segs, best)
	w.log.Verbose(2, "[%s] Node %d at depth %d: partition %s, %d front %d back\n",
		w.buildId, num, task.depth, best.String(), len(rights), len(lefts))
	q.Enqueue(rights, num, false, task.depth+1)
	q.Enqueue(lefts, num, true, task.depth+1)
	return ChildRef(num), nil
}

// isFlat tells whether region is thinner than epsilon on average
func isFlat(ts []*NodeSeg, epsilon float64) bool {
	perimeter := 0.0
	for _, seg := range ts {
		perimeter += seg.len
	}
	return math.Abs(segsArea(ts)) <= epsilon*perimeter
}
