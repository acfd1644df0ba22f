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

// node_intro.go
// Contains stuff executed before BSP partition evaluation and division starts,
// such as creation of initial segs from rings
// NOTE that it is nodegen.go (and not this file) that contains the actual
// node generator start

func PickNodeFuncFromOption(userOption int) PickNodeFunc {
	switch userOption {
	case PICKNODE_TRADITIONAL:
		{
			return PickNode_traditional
		}
	case PICKNODE_LONGEST:
		{
			return PickNode_longest
		}
	case PICKNODE_SPLITS:
		{
			return PickNode_splits
		}
	default:
		{
			// Config.Validate rejects these
			Log.Panic("Invalid argument\n")
			return nil
		}
	}
}

// CreateSegs registers a seg in arena for every seg of every ring, in the
// order they are given. Segs of zero length are skipped: they can't be a
// partition nor bound anything
func CreateSegs(rings []Ring, arena *SegArena, lg *MyLogger) []*NodeSeg {
	cnt := 0
	for _, ring := range rings {
		cnt += len(ring)
	}
	res := make([]*NodeSeg, 0, cnt)
	for i, ring := range rings {
		for j, ls := range ring {
			if ls.Start == ls.End {
				lg.Verbose(1, "Ring %d seg %d (linedef %d) has zero length and will be skipped.\n",
					i, j, ls.Linedef)
				continue
			}
			next := ring[(j+1)%len(ring)]
			if ls.End != next.Start {
				// Build still goes on, the region will end up degenerate if
				// chain can't be followed
				lg.Verbose(1, "Ring %d seg %d (linedef %d) ends at %s but the next one starts at %s.\n",
					i, j, ls.Linedef, ls.End.String(), next.Start.String())
			}
			res = append(res, arena.NewSeg(ls.Start, ls.End, ls.Linedef, ls.Sector))
		}
	}
	return res
}
