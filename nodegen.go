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
	"time"

	"github.com/google/uuid"
)

// Nodes Generator, ooh yes

const SSECTOR_DEEP_MASK = 0x80000000

// LineSeg is a seg as supplied by the map: a directed edge with region
// interior to the right of it
type LineSeg struct {
	Start   NodeVertex
	End     NodeVertex
	Linedef LineRef
	Sector  int
}

// Ring is a closed chain of segs, each one's End matches the next one's Start
type Ring []LineSeg

type NodesInput struct {
	Rings  []Ring
	Config *Config   // nil means DefaultConfig()
	Log    *MyLogger // nil means package-wide Log
}

// PickNodeFunc is a signature of all PickNode* function variants (see
// picknode.go). Returns nil if no seg can partition the region
type PickNodeFunc func(*NodesWork, []*NodeSeg) *NodeSeg

type NodesTotals struct {
	InitialSegs            int
	NumNodes               int
	NumSSectors            int
	NumSegs                int
	MaxSegCountInSubsector int
	SegSplits              int
	Closers                int
	Degenerate             int
	Unresolvable           int
}

type NodesWork struct {
	arena          *SegArena
	buildId        uuid.UUID
	log            *MyLogger
	totals         *NodesTotals
	nodes          []Node
	subsectors     []Subsector
	segAliasObj    *SegAliasHolder
	pickNode       PickNodeFunc
	pickNodeFactor int
	minisePenalty  int
	maxDepth       int
	epsilon        float64
	sliverPicked   bool // set by PickNode* when the partition it returned leaves a side that can't close
	// partition line of last DivideSegs call
	nodeX, nodeY, nodeDx, nodeDy float64
}

type NodeBounds struct {
	Xmin float64
	Ymin float64
	Xmax float64
	Ymax float64
}

// ChildRef points either to a node or (if SSECTOR_DEEP_MASK bit is set) to
// a subsector
type ChildRef uint32

func (r ChildRef) IsLeaf() bool {
	return r&SSECTOR_DEEP_MASK != 0
}

func (r ChildRef) Index() int {
	return int(r &^ SSECTOR_DEEP_MASK)
}

func (r ChildRef) String() string {
	if r.IsLeaf() {
		return fmt.Sprintf("subsector %d", r.Index())
	}
	return fmt.Sprintf("node %d", r.Index())
}

// Node has partition line going from (X, Y) in direction (Dx, Dy). Front is
// to the right of it
type Node struct {
	X, Y   float64
	Dx, Dy float64
	Fbox   NodeBounds // front bounding box
	Bbox   NodeBounds // back bounding box
	Front  ChildRef
	Back   ChildRef
}

type Subsector struct {
	// Boundary, in traversal order if the subsector is convex
	Segs       []*NodeSeg
	Degenerate bool
	Reason     ConvexReason
}

type Tree struct {
	ID         uuid.UUID
	Nodes      []Node
	Subsectors []Subsector
	Root       ChildRef
	Stats      NodesTotals
}

// BuildTree builds nodes for rings with the package logger
func BuildTree(rings []Ring, cfg *Config) (*Tree, error) {
	return NodesGenerator(&NodesInput{
		Rings:  rings,
		Config: cfg,
	})
}

func NodesGenerator(input *NodesInput) (*Tree, error) {
	start := time.Now()
	cfg := input.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lg := input.Log
	if lg == nil {
		lg = Log
	}
	lg.Configure(cfg)
	buildId := uuid.New()

	arena := NewSegArena()
	allSegs := CreateSegs(input.Rings, arena, lg)
	if len(allSegs) == 0 {
		lg.Error("[%s] Failed to create any SEGs (BAD). Quitting (%s).\n",
			buildId, time.Since(start))
		return nil, ErrNoSegs
	}

	rootBox := FindLimits(allSegs)
	lg.Printf("[%s] Initial number of segs is %d.\n", buildId, len(allSegs))
	lg.Printf("[%s] Nodes: map goes from (%v,%v) to (%v,%v)\n", buildId,
		rootBox.Xmin, rootBox.Ymin, rootBox.Xmax, rootBox.Ymax)

	workData := newNodesWork(cfg, lg, arena, buildId)
	workData.totals.InitialSegs = len(allSegs)

	// The main act
	root, err := StkEntryPoint(workData, allSegs)
	if err != nil {
		lg.Error("[%s] Nodes build failed: %s (%s)\n", buildId, err.Error(),
			time.Since(start))
		return nil, err
	}

	tree := &Tree{
		ID:         buildId,
		Nodes:      workData.nodes,
		Subsectors: workData.subsectors,
		Root:       root,
		Stats:      *workData.totals,
	}
	workData.printStats(tree)
	lg.Printf("[%s] Nodes took %s\n", buildId, time.Since(start))
	return tree, nil
}

func newNodesWork(cfg *Config, lg *MyLogger, arena *SegArena,
	buildId uuid.UUID) *NodesWork {
	w := &NodesWork{
		arena:          arena,
		buildId:        buildId,
		log:            lg,
		totals:         &NodesTotals{},
		segAliasObj:    new(SegAliasHolder),
		pickNode:       PickNodeFuncFromOption(cfg.PickNode),
		pickNodeFactor: cfg.PickNodeFactor,
		minisePenalty:  cfg.MinisePenalty,
		maxDepth:       cfg.MaxDepth,
		epsilon:        cfg.Epsilon,
	}
	w.segAliasObj.Init()
	return w
}

// DivideSegs splits region ts by partition line of seg best into the right
// (front) and left (back) sides. Segs crossing the line are split in two,
// segs lying on the line go front if they run along the partition, back
// otherwise. Sides are not closed yet
func (w *NodesWork) DivideSegs(ts []*NodeSeg, best *NodeSeg) ([]*NodeSeg, []*NodeSeg) {
	w.nodeX = best.start.X
	w.nodeY = best.start.Y
	w.nodeDx = best.pdx
	w.nodeDy = best.pdy

	c := newIntersectionContext(best, w.epsilon)
	rights := make([]*NodeSeg, 0, len(ts))
	lefts := make([]*NodeSeg, 0, len(ts))
	for _, tmps := range ts {
		if tmps == best {
			// Seg from which partition is derived is hardcoded to go right
			rights = append(rights, tmps)
			continue
		}
		c.setCheck(tmps)
		val := c.doLinesIntersect()
		if isSplitVal(val) {
			v := c.computeIntersection()
			first, second := w.arena.splitAt(tmps, v)
			w.totals.SegSplits++
			if val&64 != 0 { // start is on the right
				rights = append(rights, first)
				lefts = append(lefts, second)
			} else {
				lefts = append(lefts, first)
				rights = append(rights, second)
			}
		} else if isCollinearVal(val) {
			if tmps.pdx*best.pdx+tmps.pdy*best.pdy < 0 {
				lefts = append(lefts, tmps)
			} else {
				rights = append(rights, tmps)
			}
		} else if val&34 != 0 {
			lefts = append(lefts, tmps)
		} else {
			rights = append(rights, tmps)
		}
	}
	return rights, lefts
}

// createNode divides region with partition best, closes both sides and
// records a new node. Returns index of the node and both (closed) sides
func (w *NodesWork) createNode(ts []*NodeSeg, best *NodeSeg) (int, []*NodeSeg, []*NodeSeg) {
	rights, lefts := w.DivideSegs(ts, best)
	c := newIntersectionContext(best, w.epsilon)
	rights = w.closeSide(c, rights)
	lefts = w.closeSide(c, lefts)
	w.nodes = append(w.nodes, Node{
		X:    w.nodeX,
		Y:    w.nodeY,
		Dx:   w.nodeDx,
		Dy:   w.nodeDy,
		Fbox: FindLimits(rights),
		Bbox: FindLimits(lefts),
	})
	w.totals.NumNodes++
	return len(w.nodes) - 1, rights, lefts
}

// CreateSSector records a subsector and returns reference to it
func (w *NodesWork) CreateSSector(segs []*NodeSeg, degenerate bool,
	reason ConvexReason) ChildRef {
	w.subsectors = append(w.subsectors, Subsector{
		Segs:       segs,
		Degenerate: degenerate,
		Reason:     reason,
	})
	w.totals.NumSSectors++
	w.totals.NumSegs += len(segs)
	if len(segs) > w.totals.MaxSegCountInSubsector {
		w.totals.MaxSegCountInSubsector = len(segs)
	}
	if degenerate {
		w.totals.Degenerate++
	}
	return ChildRef(len(w.subsectors)-1) | SSECTOR_DEEP_MASK
}

func FindLimits(ts []*NodeSeg) NodeBounds {
	r := NodeBounds{
		Xmin: math.Inf(1),
		Ymin: math.Inf(1),
		Xmax: math.Inf(-1),
		Ymax: math.Inf(-1),
	}
	for _, seg := range ts {
		for _, v := range [2]NodeVertex{seg.start, seg.end} {
			r.Xmin = math.Min(r.Xmin, v.X)
			r.Ymin = math.Min(r.Ymin, v.Y)
			r.Xmax = math.Max(r.Xmax, v.X)
			r.Ymax = math.Max(r.Ymax, v.Y)
		}
	}
	return r
}
