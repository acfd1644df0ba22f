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

// minisegs
package convexbsp

import (
	"sort"
)

// After a region is divided, neither side is a ring anymore: the chain of
// segs is broken where it crossed the partition line. Every side is closed
// again with closers, segs that run along the partition line without
// belonging to any map line (GL nodes call these minisegs).

// Point on partition line where the chain of segs is broken
type danglingPoint struct {
	v     NodeVertex
	dist  float64 // along partition line
	isEnd bool    // a seg ends here and nothing starts from here
	seg   *NodeSeg
}

type danglingPoints []danglingPoint

func (x danglingPoints) Len() int      { return len(x) }
func (x danglingPoints) Swap(i, j int) { x[i], x[j] = x[j], x[i] }
func (x danglingPoints) Less(i, j int) bool {
	if x[i].dist != x[j].dist {
		return x[i].dist < x[j].dist
	}
	// Not expected to happen, but keep the sort deterministic
	return !x[i].isEnd && x[j].isEnd
}

// closeSide adds closers to a side produced by DivideSegs. Points where more
// segs end than start, or more start than end, are collected among those on
// the partition line, sorted along it, and paired with their neighbour. Each
// pair receives one closer running from the point where a seg ends to the
// point where a seg starts
func (w *NodesWork) closeSide(c *IntersectionContext, side []*NodeSeg) []*NodeSeg {
	vm := CreateVertexMap(w.epsilon)
	PopulateVertexMap(vm, side)
	var points danglingPoints
	for _, it := range vm.All {
		balance := len(it.ends) - len(it.starts)
		if balance == 0 || c.WhichSide(it.V) != 0 {
			continue
		}
		dp := danglingPoint{
			v:     it.V,
			dist:  c.alongLine(it.V),
			isEnd: balance > 0,
		}
		if dp.isEnd {
			dp.seg = it.ends[0]
		} else {
			dp.seg = it.starts[0]
			balance = -balance
		}
		for i := 0; i < balance; i++ {
			points = append(points, dp)
		}
	}
	sort.Sort(points)

	for i := 0; i+1 < len(points); i += 2 {
		a, b := points[i], points[i+1]
		if a.isEnd == b.isEnd {
			w.log.Verbose(1, "Can't close region along partition between %s and %s: both are chain %s\n",
				a.v.String(), b.v.String(), endpointWord(a.isEnd))
			continue
		}
		if !a.isEnd {
			a, b = b, a
		}
		// closer continues the seg that ends at its start
		closer := w.arena.newCloser(a.v, b.v, a.seg.sector)
		if closer.len < w.epsilon {
			continue
		}
		side = append(side, closer)
		w.totals.Closers++
	}
	if len(points)%2 != 0 {
		w.log.Verbose(1, "Odd number (%d) of broken chain points along partition, one left unclosed\n",
			len(points))
	}
	return side
}

func endpointWord(isEnd bool) string {
	if isEnd {
		return "ends"
	}
	return "starts"
}
