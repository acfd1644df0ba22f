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

// segalias
package convexbsp

// Cheap integer aliases for collinear segs. Test one seg as a partition per
// all the collinear ones: they produce the same partition line, and so the
// same evaluation. Segs are immutable here, so alias is kept by seg id in the
// holder rather than in the seg itself
type SegAliasHolder struct {
	visited  map[int]bool
	aliases  map[int]int // seg id -> alias
	maxAlias int         // max known alias so far. Incremented by Generate
}

// Init must be called before SegAliasHolder can be used for the first time
func (s *SegAliasHolder) Init() {
	s.visited = make(map[int]bool)
	s.aliases = make(map[int]int)
	s.maxAlias = 0
}

// Generate returns a new available alias that was not in use AND marks
// it as visited. Minimal return value is 1, so that 0 means "no alias was
// assigned"
func (s *SegAliasHolder) Generate() int {
	s.maxAlias++
	s.visited[s.maxAlias] = true
	return s.maxAlias
}

// MarkAndRecall marks alias as visited but returns whether it was visited already
func (s *SegAliasHolder) MarkAndRecall(alias int) bool {
	b := s.visited[alias]
	if !b {
		s.visited[alias] = true
	}
	return b
}

func (s *SegAliasHolder) AliasOf(seg *NodeSeg) int {
	return s.aliases[seg.id]
}

func (s *SegAliasHolder) SetAlias(seg *NodeSeg, alias int) {
	s.aliases[seg.id] = alias
}

// UnvisitAll marks all aliases as not yet visited - used in beginning of
// PickNode* before loop on partitions, so that values from previous PickNode
// calls are not retained. Assigned aliases are forgotten too: a region is
// a different set of segs at every node
func (s *SegAliasHolder) UnvisitAll() {
	s.visited = make(map[int]bool)
	s.aliases = make(map[int]int)
}
