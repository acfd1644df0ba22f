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
	"math"
)

// To be able to divide the nodes down, this routine must decide which is the
// best Seg to use as a nodeline. Credit to Raphael Quinet and DEU for the
// original implementation, Lee Killough for performance improvements.
// Aliases (idea from Zennode) are used to evaluate collinear segs only once.

const INITIAL_BIG_COST = math.MaxInt

// Added to cost of a partition that leaves a side unable to close into a
// region. Such partitions are only ever picked when there is nothing else
const SLIVER_PENALTY = 1000

// A side needs at least this many segs, closers of ancestors included, to
// enclose an area: closing it along the partition line adds at least one
// more
const SLIVER_SEGS = 2

// Result of evaluating one partition candidate against a region
type partitionEval struct {
	part      *NodeSeg
	front     int
	back      int
	frontReal int // non-closer segs on front side
	backReal  int
	splits    int
	cost      int
}

func (e *partitionEval) addFront(real bool) {
	e.front++
	if real {
		e.frontReal++
	}
}

func (e *partitionEval) addBack(real bool) {
	e.back++
	if real {
		e.backReal++
	}
}

func (e *partitionEval) isSliver() bool {
	return e.front < SLIVER_SEGS || e.back < SLIVER_SEGS
}

// A side with no map segs leaves all of them on the other side, which then
// gets the same treatment again
func (e *partitionEval) makesProgress() bool {
	return e.frontReal > 0 && e.backReal > 0
}

func (e *partitionEval) balance() int {
	diff := e.front - e.back
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// Tells whether cur should replace best. Returning false on equal keeps the
// earlier candidate
type partitionIsBetterFunc func(cur, best *partitionEval) bool

// PickNode_traditional is an implementation of PickNode that is classic (since
// DEU5beta source code (c) Raphael Quinet) way to pick a partition: partitions
// are chosen based on seg so that there is minimal amount of seg splits and the
// difference in the number of segs on both sides is minimal.
func PickNode_traditional(w *NodesWork, ts []*NodeSeg) *NodeSeg {
	return w.pickBest(ts, traditionalIsBetter, true)
}

// PickNode_longest picks the longest seg that came from a map line, falling
// back on split pieces only when none of original segs can partition
func PickNode_longest(w *NodesWork, ts []*NodeSeg) *NodeSeg {
	return w.pickBest(ts, longestIsBetter, false)
}

// PickNode_splits minimizes splits alone, balance is only a tie-break
func PickNode_splits(w *NodesWork, ts []*NodeSeg) *NodeSeg {
	return w.pickBest(ts, splitsIsBetter, false)
}

func traditionalIsBetter(cur, best *partitionEval) bool {
	if cur.cost != best.cost {
		return cur.cost < best.cost
	}
	return cur.part.len > best.part.len
}

func longestIsBetter(cur, best *partitionEval) bool {
	if cur.part.minise != best.part.minise {
		return !cur.part.minise
	}
	if cur.part.len != best.part.len {
		return cur.part.len > best.part.len
	}
	return cur.splits < best.splits
}

func splitsIsBetter(cur, best *partitionEval) bool {
	if cur.splits != best.splits {
		return cur.splits < best.splits
	}
	return cur.balance() < best.balance()
}

// pickBest evaluates every seg of the region as a partition and returns the
// best one according to isBetter, or nil if every candidate leaves one of
// the sides empty. Candidates that would leave a side unable to close into
// a region are kept separately and picked only if there is no other choice,
// in which case w.sliverPicked is set. When prune is true, candidates that
// are known to cost more than the best one found so far are discarded as
// soon as that becomes evident
func (w *NodesWork) pickBest(ts []*NodeSeg, isBetter partitionIsBetterFunc,
	prune bool) *NodeSeg {
	var clean, sliver *partitionEval
	w.sliverPicked = false
	w.segAliasObj.UnvisitAll() // remove marks from previous PickNode calls

	for _, part := range ts { // Use each Seg as partition
		if part.IsCloser() {
			// Lies on a partition line of some ancestor node, so whole region
			// is at one side of it
			continue
		}
		alias := w.segAliasObj.AliasOf(part)
		if alias != 0 {
			if w.segAliasObj.MarkAndRecall(alias) {
				// A collinear seg was already evaluated, the partition line
				// would be the same
				continue
			}
		} else {
			alias = w.segAliasObj.Generate()
			w.segAliasObj.SetAlias(part, alias)
		}

		bestcost := INITIAL_BIG_COST
		if prune && clean != nil {
			bestcost = clean.cost
		}
		e := &partitionEval{part: part}
		if w.evalPartition(ts, e, alias, bestcost) {
			continue
		}
		// Make sure at least one Seg is on each side of the partition
		if e.front == 0 || e.back == 0 {
			continue
		}
		w.costPartition(e)
		if e.isSliver() {
			if !e.makesProgress() {
				continue
			}
			if sliver == nil || isBetter(e, sliver) {
				sliver = e
			}
		} else if clean == nil || isBetter(e, clean) {
			clean = e
		}
	}
	if clean != nil {
		return clean.part
	}
	if sliver != nil {
		w.sliverPicked = true
		return sliver.part
	}
	return nil
}

// evalPartition counts segs on both sides of partition e.part and the number
// of splits it would cause. Collinear segs inherit the partition's alias.
// If returns true, the partition must be skipped, because it produced many
// splits early so that cost exceed bestcost
func (w *NodesWork) evalPartition(ts []*NodeSeg, e *partitionEval, alias int,
	bestcost int) bool {
	part := e.part
	c := newIntersectionContext(part, w.epsilon)
	splitCost := 2 * w.pickNodeFactor
	for _, check := range ts { // Check partition against all Segs
		real := !check.IsCloser()
		if check == part {
			e.addFront(real)
			continue
		}
		c.setCheck(check)
		val := c.doLinesIntersect()
		if isSplitVal(val) {
			e.splits++
			e.addFront(real)
			e.addBack(real)
			if bestcost != INITIAL_BIG_COST && e.splits*splitCost > bestcost {
				// This is the heart of my pruning idea
				// it catches bad segs early on. Killough
				return true
			}
		} else if isCollinearVal(val) {
			w.segAliasObj.SetAlias(check, alias)
			if check.pdx*part.pdx+check.pdy*part.pdy < 0 {
				e.addBack(real)
			} else {
				e.addFront(real)
			}
		} else if val&34 != 0 {
			// one end to the left, the other to the left or on the line
			e.addBack(real)
		} else {
			e.addFront(real)
		}
	}
	return false
}

func (w *NodesWork) costPartition(e *partitionEval) {
	e.cost = 2*w.pickNodeFactor*e.splits + e.balance()
	if e.part.minise {
		e.cost += w.minisePenalty
	}
	if e.isSliver() {
		e.cost += SLIVER_PENALTY
	}
}
