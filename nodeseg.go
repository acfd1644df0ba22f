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

// LineRef identifies the map line a seg was created from. Lines are owned by
// the map, the seg only remembers the index
type LineRef int

// Closers created along partition lines do not come from any line
const NO_LINEDEF LineRef = -1

const NO_SECTOR = -1

type NodeVertex struct {
	X float64
	Y float64
}

func (v NodeVertex) String() string {
	return replaceAfterDotZeros(fmt.Sprintf("(%f,%f)", v.X, v.Y))
}

// NodeSeg is a directed edge. Once created it is never modified: splitting
// creates new segs. Two segs with same coordinates are still different segs,
// identity is the id assigned by SegArena
type NodeSeg struct {
	id       int
	start    NodeVertex
	end      NodeVertex
	linedef  LineRef
	sector   int
	minise   bool    // synthesized by a split (piece of a seg, or a closer)
	offset   float64 // distance along linedef to start of seg
	pdx, pdy float64
	len      float64
}

func (s *NodeSeg) Id() int           { return s.id }
func (s *NodeSeg) Start() NodeVertex { return s.start }
func (s *NodeSeg) End() NodeVertex   { return s.end }
func (s *NodeSeg) Linedef() LineRef  { return s.linedef }
func (s *NodeSeg) Sector() int       { return s.sector }
func (s *NodeSeg) IsMinise() bool    { return s.minise }
func (s *NodeSeg) Offset() float64   { return s.offset }
func (s *NodeSeg) Dx() float64       { return s.pdx }
func (s *NodeSeg) Dy() float64       { return s.pdy }
func (s *NodeSeg) Len() float64      { return s.len }

// IsCloser reports whether seg was made along a partition line to close a
// region, rather than from a map line
func (s *NodeSeg) IsCloser() bool { return s.linedef == NO_LINEDEF }

func (s *NodeSeg) String() string {
	return fmt.Sprintf("seg#%d[%s-%s line %d]", s.id, s.start.String(),
		s.end.String(), s.linedef)
}

// SegArena owns every seg ever created during a build, including the ones
// that were later split and so no longer appear in any region. Index in
// segs is the seg id
type SegArena struct {
	segs []*NodeSeg
}

func NewSegArena() *SegArena {
	return &SegArena{
		segs: make([]*NodeSeg, 0, 1024),
	}
}

// NewSeg registers an original seg from a map line
func (a *SegArena) NewSeg(start, end NodeVertex, linedef LineRef,
	sector int) *NodeSeg {
	return a.add(start, end, linedef, sector, false, 0)
}

func (a *SegArena) add(start, end NodeVertex, linedef LineRef, sector int,
	minise bool, offset float64) *NodeSeg {
	s := &NodeSeg{
		id:      len(a.segs),
		start:   start,
		end:     end,
		linedef: linedef,
		sector:  sector,
		minise:  minise,
		offset:  offset,
		pdx:     end.X - start.X,
		pdy:     end.Y - start.Y,
	}
	s.len = math.Sqrt(s.pdx*s.pdx + s.pdy*s.pdy)
	a.segs = append(a.segs, s)
	return s
}

// splitAt produces two new segs that meet at v. The parent remains in the
// arena untouched
func (a *SegArena) splitAt(parent *NodeSeg, v NodeVertex) (*NodeSeg, *NodeSeg) {
	first := a.add(parent.start, v, parent.linedef, parent.sector, true,
		parent.offset)
	second := a.add(v, parent.end, parent.linedef, parent.sector, true,
		parent.offset+first.len)
	return first, second
}

func (a *SegArena) newCloser(start, end NodeVertex, sector int) *NodeSeg {
	return a.add(start, end, NO_LINEDEF, sector, true, 0)
}

func (a *SegArena) Get(id int) *NodeSeg {
	return a.segs[id]
}

func (a *SegArena) Len() int {
	return len(a.segs)
}
