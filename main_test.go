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
	"bytes"
	"math"
	"math/rand"
	"sort"
	"testing"
	"time"
)

// Seeded once per run, property tests draw their input from it
var testRandom *rand.Rand

func TestMain(m *testing.M) {
	benchmarkRandom := rand.NewSource(time.Now().UnixNano())
	testRandom = rand.New(benchmarkRandom)
	m.Run()
}

func vx(x, y float64) NodeVertex {
	return NodeVertex{X: x, Y: y}
}

// ringSegs creates a closed chain of segs over points, linedefs numbered
// from firstLine
func ringSegs(arena *SegArena, pts []NodeVertex, firstLine LineRef,
	sector int) []*NodeSeg {
	res := make([]*NodeSeg, 0, len(pts))
	for i := range pts {
		res = append(res, arena.NewSeg(pts[i], pts[(i+1)%len(pts)],
			firstLine+LineRef(i), sector))
	}
	return res
}

func makeRing(pts []NodeVertex, firstLine LineRef, sector int) Ring {
	res := make(Ring, 0, len(pts))
	for i := range pts {
		res = append(res, LineSeg{
			Start:   pts[i],
			End:     pts[(i+1)%len(pts)],
			Linedef: firstLine + LineRef(i),
			Sector:  sector,
		})
	}
	return res
}

// Clockwise, y up
func squarePoints(x, y, size float64) []NodeVertex {
	return []NodeVertex{vx(x, y), vx(x, y+size), vx(x+size, y+size), vx(x+size, y)}
}

func lShapePoints() []NodeVertex {
	return []NodeVertex{vx(0, 0), vx(0, 20), vx(10, 20), vx(10, 10),
		vx(20, 10), vx(20, 0)}
}

// Room 0..30 with a pillar 10..20 in the middle
func pillarRings() []Ring {
	pillar := []NodeVertex{vx(10, 10), vx(20, 10), vx(20, 20), vx(10, 20)}
	return []Ring{
		makeRing(squarePoints(0, 0, 30), 0, 0),
		makeRing(pillar, 4, 0),
	}
}

// randomConvexPoints returns clockwise vertices of a convex polygon inscribed
// in a circle. Angles are jittered around even spacing, so that no gap
// between neighbours gets as big as 2*pi/n*4/3
func randomConvexPoints(rnd *rand.Rand, n int, radius float64) []NodeVertex {
	step := 2 * math.Pi / float64(n)
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = float64(i)*step + (rnd.Float64()-0.5)*step/3
	}
	// decreasing angle is clockwise
	sort.Sort(sort.Reverse(sort.Float64Slice(angles)))
	pts := make([]NodeVertex, n)
	for i, a := range angles {
		pts[i] = vx(radius*math.Cos(a), radius*math.Sin(a))
	}
	return pts
}

// randomStarPoints returns clockwise vertices of a simple polygon that is
// star-shaped around the origin, with every vertex between 0.3 and 1 radius
// away from it
func randomStarPoints(rnd *rand.Rand, n int, radius float64) []NodeVertex {
	pts := randomConvexPoints(rnd, n, radius)
	for i, p := range pts {
		k := 0.3 + 0.7*rnd.Float64()
		pts[i] = vx(p.X*k, p.Y*k)
	}
	return pts
}

// quietLogger discards everything but keeps it around for inspection
func quietLogger() (*MyLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return CreateLogger(buf, buf, 0), buf
}

func segsLength(segs []*NodeSeg) float64 {
	l := 0.0
	for _, seg := range segs {
		l += seg.Len()
	}
	return l
}
