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
	"testing"
)

func TestConvexSquare(t *testing.T) {
	segs := ringSegs(NewSegArena(), squarePoints(0, 0, 10), 0, 0)
	states := IsItConvex(segs, DEFAULT_EPSILON)
	if states.State != StateFinishedIsConvex {
		t.Fatalf("square: got %s (%s), expected convex\n", states.State,
			states.Reason)
	}
	if states.SegsVisited != states.TotalSegs || states.TotalSegs != 4 {
		t.Errorf("square: visited %d of %d segs\n", states.SegsVisited,
			states.TotalSegs)
	}
	for i, seg := range states.Traversal {
		if seg != segs[i] {
			t.Errorf("square: traversal[%d] = %s, expected %s\n", i, seg, segs[i])
		}
	}
	if states.Established != RotationRight {
		t.Errorf("square: winding %s, expected Right (clockwise)\n",
			states.Established)
	}
	if math.Abs(states.turnSum+2*math.Pi) > 1e-9 {
		t.Errorf("square: total turn %v, expected -2pi\n", states.turnSum)
	}
}

func TestConvexCounterClockwise(t *testing.T) {
	pts := squarePoints(0, 0, 10)
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
	states := IsItConvex(ringSegs(NewSegArena(), pts, 0, 0), DEFAULT_EPSILON)
	if states.State != StateFinishedIsConvex || states.Established != RotationLeft {
		t.Errorf("ccw square: got %s winding %s\n", states.State, states.Established)
	}
}

func TestLShapeSplittableAtReflex(t *testing.T) {
	segs := ringSegs(NewSegArena(), lShapePoints(), 0, 0)
	states := IsItConvex(segs, DEFAULT_EPSILON)
	if states.State != StateFinishedIsSplittable {
		t.Fatalf("L: got %s, expected splittable\n", states.State)
	}
	if states.Reason != REASON_REFLEX {
		t.Errorf("L: reason %s, expected %s\n", states.Reason, REASON_REFLEX)
	}
	// Reflex vertex (10,10) is where seg 2 ends
	if states.SegsVisited != 3 {
		t.Errorf("L: stopped after %d segs, expected 3\n", states.SegsVisited)
	}
	if states.Rotation != RotationLeft {
		t.Errorf("L: last turn %s, expected Left\n", states.Rotation)
	}
}

func TestTooFewSegsIsDegenerate(t *testing.T) {
	arena := NewSegArena()
	nan := math.NaN()
	// Geometry is garbage on purpose: it must not be looked at
	segs := []*NodeSeg{
		arena.NewSeg(vx(nan, 0), vx(1, nan), 0, 0),
		arena.NewSeg(vx(1, nan), vx(nan, 0), 1, 0),
	}
	states := NewConvexStates(segs, DEFAULT_EPSILON)
	if states.Step() != StateLoaded {
		t.Fatalf("expected Loaded after first step, got %s\n", states.State)
	}
	if states.Step() != StateFinishedIsDegenerate {
		t.Fatalf("expected FinishedIsDegenerate after second step, got %s\n",
			states.State)
	}
	if states.Reason != REASON_TOO_FEW || states.SegsVisited != 0 ||
		len(states.Traversal) != 0 {
		t.Errorf("got reason %s, %d visited, traversal of %d\n", states.Reason,
			states.SegsVisited, len(states.Traversal))
	}

	empty := IsItConvex(nil, DEFAULT_EPSILON)
	if empty.State != StateFinishedIsDegenerate {
		t.Errorf("empty region: got %s\n", empty.State)
	}
}

func TestBrokenRingIsDegenerate(t *testing.T) {
	segs := ringSegs(NewSegArena(), squarePoints(0, 0, 10), 0, 0)[:3]
	states := IsItConvex(segs, DEFAULT_EPSILON)
	if states.State != StateFinishedIsDegenerate || states.Reason != REASON_BROKEN {
		t.Fatalf("got %s (%s), expected degenerate with broken connectivity\n",
			states.State, states.Reason)
	}
	if states.SegsVisited != 3 {
		t.Errorf("visited %d, expected 3\n", states.SegsVisited)
	}
}

func TestCollinearPointsDontBreakConvexity(t *testing.T) {
	pts := []NodeVertex{vx(0, 0), vx(0, 5), vx(0, 10), vx(5, 10), vx(10, 10),
		vx(10, 5), vx(10, 0), vx(5, 0)}
	states := IsItConvex(ringSegs(NewSegArena(), pts, 0, 0), DEFAULT_EPSILON)
	if states.State != StateFinishedIsConvex || states.SegsVisited != 8 {
		t.Errorf("got %s after %d segs, expected convex after 8\n",
			states.State, states.SegsVisited)
	}
	// Within epsilon of the line counts as collinear too
	pts[1] = vx(DEFAULT_EPSILON/4, 5)
	states = IsItConvex(ringSegs(NewSegArena(), pts, 0, 0), DEFAULT_EPSILON)
	if states.State != StateFinishedIsConvex {
		t.Errorf("near-collinear: got %s (%s)\n", states.State, states.Reason)
	}
}

func TestStepByStep(t *testing.T) {
	segs := ringSegs(NewSegArena(), squarePoints(0, 0, 10), 0, 0)
	states := NewConvexStates(segs, DEFAULT_EPSILON)
	if states.State != StateNotStarted || states.Finished() {
		t.Fatalf("fresh object in state %s\n", states.State)
	}
	states.Step()
	if states.State != StateLoaded || states.TotalSegs != 4 ||
		states.StartSegment != segs[0] || states.CurrentSegment != segs[0] ||
		states.CurrentEndpoint != EndpointStart ||
		states.Rotation != RotationOn || states.SegsVisited != 0 {
		t.Fatalf("bad Loaded state: %+v\n", states)
	}
	if states.Step() != StateTraversing {
		t.Fatalf("expected Traversing, got %s\n", states.State)
	}
	for i := 1; i <= 3; i++ {
		if states.Step() != StateTraversing {
			t.Fatalf("step %d: expected Traversing, got %s\n", i, states.State)
		}
		if states.SegsVisited != i || states.CurrentSegment != segs[i] ||
			states.Rotation != RotationRight ||
			states.CurrentEndpoint != EndpointStart {
			t.Errorf("step %d: visited %d at %s turn %s\n", i,
				states.SegsVisited, states.CurrentSegment, states.Rotation)
		}
	}
	if states.Step() != StateFinishedIsConvex {
		t.Fatalf("expected convex on last step, got %s\n", states.State)
	}
	if states.CurrentSegment != states.StartSegment {
		t.Errorf("cursor did not return to start segment\n")
	}
	// Terminal states are never left
	states.Step()
	if states.State != StateFinishedIsConvex || states.SegsVisited != 4 {
		t.Errorf("step after finish changed state to %s (%d visited)\n",
			states.State, states.SegsVisited)
	}
}

func TestResetReusesObject(t *testing.T) {
	arena := NewSegArena()
	states := IsItConvex(ringSegs(arena, lShapePoints(), 0, 0), DEFAULT_EPSILON)
	lTraversal := states.Traversal
	square := ringSegs(arena, squarePoints(50, 50, 5), 6, 0)
	states.Reset(square, DEFAULT_EPSILON)
	if states.State != StateNotStarted || states.SegsVisited != 0 {
		t.Fatalf("Reset left state %s\n", states.State)
	}
	if states.Run() != StateFinishedIsConvex {
		t.Errorf("after reset: got %s\n", states.State)
	}
	if len(lTraversal) != 3 {
		t.Errorf("traversal of previous region was modified: %d segs\n",
			len(lTraversal))
	}
}

func TestConvexLeafIdempotence(t *testing.T) {
	segs := ringSegs(NewSegArena(), randomConvexPoints(testRandom, 9, 100), 0, 0)
	first := IsItConvex(segs, DEFAULT_EPSILON)
	if first.State != StateFinishedIsConvex {
		t.Fatalf("got %s\n", first.State)
	}
	second := IsItConvex(first.Traversal, DEFAULT_EPSILON)
	if second.State != StateFinishedIsConvex ||
		second.SegsVisited != first.SegsVisited {
		t.Errorf("second pass got %s after %d segs\n", second.State,
			second.SegsVisited)
	}
}

func TestTwoLoopsAreSplittable(t *testing.T) {
	arena := NewSegArena()
	segs := ringSegs(arena, squarePoints(0, 0, 10), 0, 0)
	segs = append(segs, ringSegs(arena, squarePoints(20, 0, 10), 4, 0)...)
	states := IsItConvex(segs, DEFAULT_EPSILON)
	if states.State != StateFinishedIsSplittable || states.Reason != REASON_MULTILOOP {
		t.Errorf("got %s (%s), expected splittable with multiple loops\n",
			states.State, states.Reason)
	}
	if states.SegsVisited != 4 {
		t.Errorf("visited %d, expected 4\n", states.SegsVisited)
	}
}

func TestPentagramIsSplittable(t *testing.T) {
	// Every turn is the same way, but it goes around twice
	pts := make([]NodeVertex, 5)
	for i := range pts {
		a := math.Pi/2 - float64(i)*4*math.Pi/5
		pts[i] = vx(100*math.Cos(a), 100*math.Sin(a))
	}
	states := IsItConvex(ringSegs(NewSegArena(), pts, 0, 0), DEFAULT_EPSILON)
	if states.State != StateFinishedIsSplittable || states.Reason != REASON_WINDING {
		t.Errorf("got %s (%s), expected splittable as self-overlapping\n",
			states.State, states.Reason)
	}
	if states.SegsVisited != 5 {
		t.Errorf("visited %d, expected 5\n", states.SegsVisited)
	}
}

func TestReversalIsSplittable(t *testing.T) {
	pts := []NodeVertex{vx(0, 0), vx(10, 0), vx(5, 0)}
	states := IsItConvex(ringSegs(NewSegArena(), pts, 0, 0), DEFAULT_EPSILON)
	if states.State != StateFinishedIsSplittable || states.Reason != REASON_REVERSAL {
		t.Errorf("got %s (%s), expected splittable with reversal\n",
			states.State, states.Reason)
	}
}

func TestManySectorsAreSplittable(t *testing.T) {
	arena := NewSegArena()
	segs := ringSegs(arena, squarePoints(0, 0, 10), 0, 0)
	segs[2] = arena.NewSeg(segs[2].Start(), segs[2].End(), 2, 1)
	states := IsItConvex(segs, DEFAULT_EPSILON)
	if states.State != StateFinishedIsSplittable ||
		states.Reason != REASON_MULTISECTOR || states.SegsVisited != 0 {
		t.Errorf("got %s (%s) after %d segs\n", states.State, states.Reason,
			states.SegsVisited)
	}

	// Segs without a sector don't count
	segs[2] = arena.NewSeg(segs[2].Start(), segs[2].End(), 2, NO_SECTOR)
	states = IsItConvex(segs, DEFAULT_EPSILON)
	if states.State != StateFinishedIsConvex {
		t.Errorf("got %s (%s), expected convex\n", states.State, states.Reason)
	}
}

func TestRandomConvexPolygons(t *testing.T) {
	for i := 0; i < 200; i++ {
		n := 3 + testRandom.Intn(14)
		pts := randomConvexPoints(testRandom, n, 100)
		states := IsItConvex(ringSegs(NewSegArena(), pts, 0, 0), DEFAULT_EPSILON)
		if states.State != StateFinishedIsConvex || states.SegsVisited != n {
			t.Fatalf("polygon %v: got %s (%s) after %d of %d segs\n", pts,
				states.State, states.Reason, states.SegsVisited, n)
		}
	}
}

func TestRandomReflexPolygons(t *testing.T) {
	for i := 0; i < 200; i++ {
		n := 7 + testRandom.Intn(6)
		pts := randomConvexPoints(testRandom, n, 100)
		// Pull one vertex towards the centre, making it reflex. Vertex k is
		// where seg k-1 ends
		k := 2 + testRandom.Intn(n-2)
		pts[k] = vx(pts[k].X/10, pts[k].Y/10)
		states := IsItConvex(ringSegs(NewSegArena(), pts, 0, 0), DEFAULT_EPSILON)
		if states.State != StateFinishedIsSplittable || states.Reason != REASON_REFLEX {
			t.Fatalf("polygon %v: got %s (%s)\n", pts, states.State, states.Reason)
		}
		if states.SegsVisited > k {
			t.Fatalf("polygon %v: stopped after %d segs, reflex vertex is %d\n",
				pts, states.SegsVisited, k)
		}
	}
}
