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

// Block edge, in multiples of epsilon. Must be at least 2 for the lookup in
// a single block to work
const VMAP_BLOCK_FACTOR = 256

// VertexMap is a ZDBSP thingy. Allows to lookup close-enough vertices among
// existing ones. Here it also remembers which segs start and which segs end
// at every vertex, which is what traversal of a region and closing regions
// along partition lines need
type VertexMap struct {
	epsilon   float64
	blockSize float64
	Grid      map[vmapBlock][]*VertexEntry
	All       []*VertexEntry // insertion order, for deterministic iteration
}

type vmapBlock struct {
	bx, by int64
}

type VertexEntry struct {
	V      NodeVertex
	starts []*NodeSeg
	ends   []*NodeSeg
}

func CreateVertexMap(epsilon float64) *VertexMap {
	return &VertexMap{
		epsilon:   epsilon,
		blockSize: epsilon * VMAP_BLOCK_FACTOR,
		Grid:      make(map[vmapBlock][]*VertexEntry),
	}
}

func (vm *VertexMap) GetBlock(x, y float64) vmapBlock {
	return vmapBlock{
		bx: int64(math.Floor(x / vm.blockSize)),
		by: int64(math.Floor(y / vm.blockSize)),
	}
}

// Find returns the entry for a vertex close enough to v, or nil
func (vm *VertexMap) Find(v NodeVertex) *VertexEntry {
	for _, it := range vm.Grid[vm.GetBlock(v.X, v.Y)] {
		if math.Abs(it.V.X-v.X) < vm.epsilon &&
			math.Abs(it.V.Y-v.Y) < vm.epsilon {
			return it
		}
	}
	return nil
}

func (vm *VertexMap) SelectVertexClose(v NodeVertex) *VertexEntry {
	if it := vm.Find(v); it != nil {
		return it
	}
	return vm.insertVertex(v)
}

func (vm *VertexMap) insertVertex(v NodeVertex) *VertexEntry {
	// If a vertex is near a block boundary, then it will be inserted on
	// both sides of the boundary so that SelectVertexClose can find
	// it by checking in only one block.
	ret := &VertexEntry{V: v}
	blk := [4]vmapBlock{
		vm.GetBlock(v.X-vm.epsilon, v.Y-vm.epsilon),
		vm.GetBlock(v.X+vm.epsilon, v.Y-vm.epsilon),
		vm.GetBlock(v.X-vm.epsilon, v.Y+vm.epsilon),
		vm.GetBlock(v.X+vm.epsilon, v.Y+vm.epsilon),
	}
	for i := 0; i < 4; i++ {
		dup := false
		for j := 0; j < i; j++ {
			if blk[j] == blk[i] {
				dup = true
				break
			}
		}
		if !dup {
			vm.Grid[blk[i]] = append(vm.Grid[blk[i]], ret)
		}
	}
	vm.All = append(vm.All, ret)
	return ret
}

func PopulateVertexMap(vm *VertexMap, segs []*NodeSeg) {
	for _, seg := range segs {
		st := vm.SelectVertexClose(seg.start)
		st.starts = append(st.starts, seg)
		en := vm.SelectVertexClose(seg.end)
		en.ends = append(en.ends, seg)
	}
}

// SegsStartingAt lists segs whose start vertex is close to v
func (vm *VertexMap) SegsStartingAt(v NodeVertex) []*NodeSeg {
	it := vm.Find(v)
	if it == nil {
		return nil
	}
	return it.starts
}
