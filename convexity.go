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

// convexity
package convexbsp

import (
	"math"
)

// Convexity of a region is decided by walking around it, rather than testing
// every seg against every other seg: the walk stops on the first vertex that
// turns the wrong way. The state of the walk is kept in ConvexStates, which
// can be driven one step at a time (tests do that) or run until finished.
// A region is expected to be a ring: each seg's end is the next seg's start.

type ConvexState int

const (
	StateNotStarted ConvexState = iota
	StateLoaded
	StateTraversing
	StateFinishedIsDegenerate
	StateFinishedIsConvex
	StateFinishedIsSplittable
)

func (s ConvexState) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateLoaded:
		return "Loaded"
	case StateTraversing:
		return "Traversing"
	case StateFinishedIsDegenerate:
		return "FinishedIsDegenerate"
	case StateFinishedIsConvex:
		return "FinishedIsConvex"
	case StateFinishedIsSplittable:
		return "FinishedIsSplittable"
	}
	return "Unknown"
}

func (s ConvexState) IsTerminal() bool {
	return s == StateFinishedIsDegenerate || s == StateFinishedIsConvex ||
		s == StateFinishedIsSplittable
}

// Endpoint tells which end of CurrentSegment the cursor is at
type Endpoint int

const (
	EndpointStart Endpoint = iota
	EndpointEnd
)

// Rotation is the turn made at a vertex. On means collinear (within epsilon)
type Rotation int

const (
	RotationOn Rotation = iota
	RotationLeft
	RotationRight
)

func (r Rotation) String() string {
	switch r {
	case RotationLeft:
		return "Left"
	case RotationRight:
		return "Right"
	}
	return "On"
}

// Why convexity pass ended in the state it ended
type ConvexReason int

const (
	REASON_NONE         ConvexReason = iota
	REASON_TOO_FEW                   // less than 3 segs can't enclose an area
	REASON_BROKEN                    // ring does not close, next seg not found
	REASON_FLAT                      // encloses no area: all turns collinear, or too thin
	REASON_MULTISECTOR               // segs of more than one sector
	REASON_REFLEX                    // a turn contradicts previous ones
	REASON_REVERSAL                  // ring goes back on itself
	REASON_MULTILOOP                 // ring closed before all segs were visited
	REASON_WINDING                   // ring turns around more than once
	REASON_UNRESOLVABLE              // set by builder: no partition could split it
)

func (r ConvexReason) String() string {
	switch r {
	case REASON_NONE:
		return "none"
	case REASON_TOO_FEW:
		return "too few segs"
	case REASON_BROKEN:
		return "broken connectivity"
	case REASON_FLAT:
		return "zero area"
	case REASON_MULTISECTOR:
		return "multiple sectors"
	case REASON_REFLEX:
		return "reflex vertex"
	case REASON_REVERSAL:
		return "reversal"
	case REASON_MULTILOOP:
		return "multiple loops"
	case REASON_WINDING:
		return "self-overlapping"
	case REASON_UNRESOLVABLE:
		return "unresolvable partition"
	}
	return "unknown"
}

// How far total turning of a closed ring may deviate from a full turn
const WINDING_TOLERANCE = 1e-3

// ConvexTraversal lists segs in the order they were visited
type ConvexTraversal []*NodeSeg

type ConvexStates struct {
	State           ConvexState
	Traversal       ConvexTraversal
	StartSegment    *NodeSeg
	CurrentSegment  *NodeSeg
	CurrentEndpoint Endpoint
	Rotation        Rotation // last computed turn
	Established     Rotation // first non-collinear turn, all others must match
	SegsVisited     int
	TotalSegs       int
	Reason          ConvexReason

	region  []*NodeSeg
	epsilon float64
	vmap    *VertexMap
	visited map[int]bool
	turnSum float64
}

func NewConvexStates(region []*NodeSeg, epsilon float64) *ConvexStates {
	s := &ConvexStates{}
	s.Reset(region, epsilon)
	return s
}

// Reset makes the object ready to evaluate another region. Traversal of the
// previous one is not reused, so callers may keep it
func (s *ConvexStates) Reset(region []*NodeSeg, epsilon float64) {
	*s = ConvexStates{
		State:   StateNotStarted,
		region:  region,
		epsilon: epsilon,
	}
}

// Load initializes cursor at start of first seg
func (s *ConvexStates) Load() {
	if s.State != StateNotStarted {
		return
	}
	s.TotalSegs = len(s.region)
	if s.TotalSegs > 0 {
		s.StartSegment = s.region[0]
	}
	s.CurrentSegment = s.StartSegment
	s.CurrentEndpoint = EndpointStart
	s.Rotation = RotationOn
	s.Established = RotationOn
	s.SegsVisited = 0
	s.Traversal = make(ConvexTraversal, 0, s.TotalSegs)
	s.State = StateLoaded
}

// Step makes exactly one transition and returns the new state. Terminal
// states are never left
func (s *ConvexStates) Step() ConvexState {
	switch s.State {
	case StateNotStarted:
		s.Load()
	case StateLoaded:
		if s.TotalSegs < 3 {
			s.finish(StateFinishedIsDegenerate, REASON_TOO_FEW)
			break
		}
		if s.hasManySectors() {
			s.finish(StateFinishedIsSplittable, REASON_MULTISECTOR)
			break
		}
		s.vmap = CreateVertexMap(s.epsilon)
		PopulateVertexMap(s.vmap, s.region)
		s.visited = make(map[int]bool, s.TotalSegs)
		s.State = StateTraversing
	case StateTraversing:
		if s.TotalSegs < 3 {
			s.finish(StateFinishedIsDegenerate, REASON_TOO_FEW)
			break
		}
		s.traverse()
	}
	return s.State
}

// Run steps until finished
func (s *ConvexStates) Run() ConvexState {
	for !s.State.IsTerminal() {
		s.Step()
	}
	return s.State
}

func (s *ConvexStates) Finished() bool {
	return s.State.IsTerminal()
}

func (s *ConvexStates) finish(state ConvexState, reason ConvexReason) {
	s.State = state
	s.Reason = reason
	// lookup structures are of no use past this point
	s.vmap = nil
	s.visited = nil
}

// All ssectors must come from same sector. Original idea, Lee Killough.
// Closers inherit a sector from the seg they continue, those without one
// are ignored
func (s *ConvexStates) hasManySectors() bool {
	sector := NO_SECTOR
	for _, seg := range s.region {
		if seg.sector == NO_SECTOR {
			continue
		}
		if sector == NO_SECTOR {
			sector = seg.sector
		} else if seg.sector != sector {
			return true
		}
	}
	return false
}

// traverse visits current seg and moves cursor to the next one
func (s *ConvexStates) traverse() {
	cur := s.CurrentSegment
	s.visited[cur.id] = true
	s.Traversal = append(s.Traversal, cur)
	s.SegsVisited++
	s.CurrentEndpoint = EndpointEnd

	next := s.nextSegment(cur)
	if next == nil {
		s.finish(StateFinishedIsDegenerate, REASON_BROKEN)
		return
	}

	rot, reversal, angle := turnAt(cur, next, s.epsilon)
	s.Rotation = rot
	if reversal {
		s.finish(StateFinishedIsSplittable, REASON_REVERSAL)
		return
	}
	s.turnSum += angle
	if rot != RotationOn {
		if s.Established == RotationOn {
			s.Established = rot
		} else if rot != s.Established {
			s.finish(StateFinishedIsSplittable, REASON_REFLEX)
			return
		}
	}

	s.CurrentSegment = next
	s.CurrentEndpoint = EndpointStart
	if next != s.StartSegment {
		return
	}
	// Loop closed
	if s.SegsVisited < s.TotalSegs {
		s.finish(StateFinishedIsSplittable, REASON_MULTILOOP)
	} else if s.Established == RotationOn {
		s.finish(StateFinishedIsDegenerate, REASON_FLAT)
	} else if math.Abs(math.Abs(s.turnSum)-2*math.Pi) > WINDING_TOLERANCE {
		s.finish(StateFinishedIsSplittable, REASON_WINDING)
	} else {
		s.finish(StateFinishedIsConvex, REASON_NONE)
	}
}

// nextSegment picks the seg that continues the ring from the end of cur.
// Unvisited segs are preferred to closing the loop, so that a region made of
// several rings touching at a vertex is walked as far as possible. Among
// unvisited, one of the same sector as cur goes first
func (s *ConvexStates) nextSegment(cur *NodeSeg) *NodeSeg {
	closes := false
	var other *NodeSeg
	for _, cand := range s.vmap.SegsStartingAt(cur.end) {
		if cand == s.StartSegment {
			closes = true
			continue
		}
		if s.visited[cand.id] {
			continue
		}
		if cand.sector == cur.sector {
			return cand
		}
		if other == nil {
			other = cand
		}
	}
	if other != nil {
		return other
	}
	if closes {
		return s.StartSegment
	}
	return nil
}

// turnAt computes the turn made at the vertex where cur ends and next starts.
// The turn is collinear if next's end is closer than epsilon to the line of
// cur. Also returns whether next goes back along cur, and the signed angle
// of the turn
func turnAt(cur, next *NodeSeg, epsilon float64) (Rotation, bool, float64) {
	cross := cur.pdx*next.pdy - cur.pdy*next.pdx
	dot := cur.pdx*next.pdx + cur.pdy*next.pdy
	angle := math.Atan2(cross, dot)
	if cur.len == 0 || math.Abs(cross/cur.len) <= epsilon {
		return RotationOn, dot < 0, angle
	}
	if cross > 0 {
		return RotationLeft, false, angle
	}
	return RotationRight, false, angle
}

// IsItConvex runs a full convexity pass over region
func IsItConvex(region []*NodeSeg, epsilon float64) *ConvexStates {
	s := NewConvexStates(region, epsilon)
	s.Run()
	return s
}
