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

// diffgeometry_test.go
package convexbsp

import (
	"math"
	"testing"
)

func TestWhichSide(t *testing.T) {
	arena := NewSegArena()
	// Going up, right side is +x
	part := arena.NewSeg(vx(0, 0), vx(0, 10), 0, 0)
	c := newIntersectionContext(part, DEFAULT_EPSILON)
	cases := []struct {
		v    NodeVertex
		want int
	}{
		{vx(5, 5), 1},
		{vx(-5, 5), -1},
		{vx(0, 100), 0},
		{vx(DEFAULT_EPSILON/2, 3), 0},
		{vx(-2*DEFAULT_EPSILON, 3), -1},
	}
	for _, tc := range cases {
		if got := c.WhichSide(tc.v); got != tc.want {
			t.Errorf("WhichSide(%s) = %d, expected %d\n", tc.v, got, tc.want)
		}
	}
}

func TestDoLinesIntersect(t *testing.T) {
	arena := NewSegArena()
	part := arena.NewSeg(vx(0, 0), vx(0, 10), 0, 0)
	c := newIntersectionContext(part, DEFAULT_EPSILON)
	cases := []struct {
		name      string
		check     *NodeSeg
		val       uint8
		split     bool
		collinear bool
	}{
		{"crossing right to left", arena.NewSeg(vx(5, 5), vx(-5, 5), 1, 0), 64 | 2, true, false},
		{"crossing left to right", arena.NewSeg(vx(-5, 5), vx(5, 8), 1, 0), 32 | 4, true, false},
		{"right side", arena.NewSeg(vx(5, 5), vx(5, 8), 1, 0), 64 | 4, false, false},
		{"touching from left", arena.NewSeg(vx(-5, 5), vx(0, 5), 1, 0), 32 | 1, false, false},
		{"collinear", arena.NewSeg(vx(0, 20), vx(0, 30), 1, 0), 16 | 1, false, true},
		{"collinear opposite", arena.NewSeg(vx(0, -1), vx(0, -5), 1, 0), 16 | 1, false, true},
		{"end within epsilon", arena.NewSeg(vx(5, 5), vx(-DEFAULT_EPSILON/2, 5), 1, 0), 64 | 1, false, false},
	}
	for _, tc := range cases {
		c.setCheck(tc.check)
		val := c.doLinesIntersect()
		if val != tc.val {
			t.Errorf("%s: val = %d, expected %d\n", tc.name, val, tc.val)
		}
		if isSplitVal(val) != tc.split || isCollinearVal(val) != tc.collinear {
			t.Errorf("%s: split %v collinear %v\n", tc.name, isSplitVal(val),
				isCollinearVal(val))
		}
	}
}

func TestComputeIntersection(t *testing.T) {
	arena := NewSegArena()
	part := arena.NewSeg(vx(0, 0), vx(10, 10), 0, 0)
	c := newIntersectionContext(part, DEFAULT_EPSILON)
	c.setCheck(arena.NewSeg(vx(0, 10), vx(10, 0), 1, 0))
	v := c.computeIntersection()
	if math.Abs(v.X-5) > 1e-12 || math.Abs(v.Y-5) > 1e-12 {
		t.Errorf("got %s, expected (5,5)\n", v)
	}
	if d := c.alongLine(v); math.Abs(d-math.Sqrt(50)) > 1e-12 {
		t.Errorf("distance along partition %v\n", d)
	}
}

func TestSignedArea(t *testing.T) {
	if a := SignedArea(squarePoints(0, 0, 10)); a != -100 {
		t.Errorf("clockwise square has area %v, expected -100\n", a)
	}
	if a := SignedArea([]NodeVertex{vx(0, 0), vx(4, 0), vx(0, 3)}); a != 6 {
		t.Errorf("counter-clockwise triangle has area %v, expected 6\n", a)
	}
}

func TestVertexString(t *testing.T) {
	if s := vx(1, 2.5).String(); s != "(1.,2.500000)" {
		t.Errorf("got %s\n", s)
	}
}
