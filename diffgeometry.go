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

// diffgeometry.go
package convexbsp

import (
	"math"
	"strings"
)

// All the geometry that decides on which side of a partition line things
// are goes here. Coordinates are floating point throughout, "on the line"
// means closer than epsilon to it.

// DoLinesIntersect and ComputeIntersection use this
type IntersectionContext struct {
	psx, psy, pex, pey float64 // start, end of partition coordinates
	pdx, pdy           float64 // partition direction (end - start)
	plen               float64
	lsx, lsy, lex, ley float64 // - same for checking line
	epsilon            float64
}

func newIntersectionContext(part *NodeSeg, epsilon float64) *IntersectionContext {
	return &IntersectionContext{
		psx:     part.start.X,
		psy:     part.start.Y,
		pex:     part.end.X,
		pey:     part.end.Y,
		pdx:     part.pdx,
		pdy:     part.pdy,
		plen:    part.len,
		epsilon: epsilon,
	}
}

func (c *IntersectionContext) setCheck(check *NodeSeg) {
	c.lsx = check.start.X
	c.lsy = check.start.Y
	c.lex = check.end.X
	c.ley = check.end.Y
}

// pointDist is the signed distance from partition line to a point. Positive
// is to the left, negative to the right
func (c *IntersectionContext) pointDist(x, y float64) float64 {
	return (c.pdx*(y-c.psy) - c.pdy*(x-c.psx)) / c.plen
}

// WhichSide returns 1 for points to the right of partition line (front),
// -1 for points to the left (back) and 0 for points on the line
func (c *IntersectionContext) WhichSide(v NodeVertex) int {
	d := c.pointDist(v.X, v.Y)
	if d > c.epsilon {
		return -1
	} else if d < -c.epsilon {
		return 1
	}
	return 0
}

// projection of a point along the partition line, used to sort points that
// lie on it
func (c *IntersectionContext) alongLine(v NodeVertex) float64 {
	return ((v.X-c.psx)*c.pdx + (v.Y-c.psy)*c.pdy) / c.plen
}

// computeIntersection calculates the point of intersection of checking seg
// with partition line. Only valid if the seg is known to cross it
func (c *IntersectionContext) computeIntersection() NodeVertex {
	a := c.pointDist(c.lsx, c.lsy)
	b := c.pointDist(c.lex, c.ley)
	d := a - b
	if d == 0 {
		// parallel, caller should never have got here
		return NodeVertex{X: c.lsx, Y: c.lsy}
	}
	t := a / d
	return NodeVertex{
		X: c.lsx + (c.lex-c.lsx)*t,
		Y: c.lsy + (c.ley-c.lsy)*t,
	}
}

// doLinesIntersect returns 'val' which has 3 bits assigned to the start
// and 3 to the end. These allow a decent evaluation of the lines state.
// bit 0,1,2 = checking lines end point and bits 4,5,6 = start point.
// Bits 0,4 mean point is on the same line, 1,5 mean point is to the left of
// the line, 2,6 mean point is to the right of the line.
// An end closer than epsilon to the partition line is treated as lying on
// it, so no sliver piece is ever produced.
func (c *IntersectionContext) doLinesIntersect() uint8 {
	a := c.pointDist(c.lsx, c.lsy)
	b := c.pointDist(c.lex, c.ley)
	if math.Abs(a) <= c.epsilon {
		a = 0
	}
	if math.Abs(b) <= c.epsilon {
		b = 0
	}

	var val uint8

	if a == 0 {
		val = val | 16 // start is on middle
	} else if a > 0 {
		val = val | 32 // start is on left side
	} else {
		val = val | 64 // start is on right side
	}

	if b == 0 {
		val = val | 1 // end is on middle
	} else if b > 0 {
		val = val | 2 // end is on left side
	} else {
		val = val | 4 // end is on right side
	}

	return val
}

func isSplitVal(val uint8) bool {
	return ((val&2 != 0) && (val&64 != 0)) || ((val&4 != 0) && (val&32 != 0))
}

func isCollinearVal(val uint8) bool {
	return (val&1 != 0) && (val&16 != 0)
}

// segsArea is the signed area enclosed by closed chains of segs, positive
// when counter-clockwise. Holes have the opposite sign of their outline and
// so are subtracted
func segsArea(ts []*NodeSeg) float64 {
	area := 0.0
	for _, seg := range ts {
		area += seg.start.X*seg.end.Y - seg.end.X*seg.start.Y
	}
	return area / 2
}

// SignedArea of a closed polygon given by its vertices (shoelace). Positive
// for counter-clockwise order when y axis points up
func SignedArea(pts []NodeVertex) float64 {
	area := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return area / 2
}

func replaceAfterDotZeros(s string) string {
	return strings.ReplaceAll(s, ".000000", ".")
}
