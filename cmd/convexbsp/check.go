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
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vigilantdoomer/convexbsp"
	"github.com/vigilantdoomer/convexbsp/ringfile"
)

var checkTrace bool

var checkCmd = &cobra.Command{
	Use:   "check {map.yaml}",
	Short: "Tell which sectors are convex",
	Long: `Runs convexity pass over every sector of the map (all of its rings taken
together) and prints the outcome. With --trace every step of the pass is
printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		m, err := ringfile.Load(args[0])
		if err != nil {
			return fmt.Errorf("loading map: %w", err)
		}

		order, bySector := sectorRegions(m.ToRings())
		for _, sector := range order {
			states := convexbsp.NewConvexStates(bySector[sector], cfg.Epsilon)
			for !states.Finished() {
				states.Step()
				if checkTrace {
					traceStep(sector, states)
				}
			}
			fmt.Printf("sector %d: %s, %d of %d segs visited (%s)\n", sector,
				states.State.String(), states.SegsVisited, states.TotalSegs,
				states.Reason.String())
		}
		return nil
	},
}

// sectorRegions groups segs of rings by sector, sectors in order of first
// appearance. Segs are filtered the same way the builder does it
func sectorRegions(rings []convexbsp.Ring) ([]int, map[int][]*convexbsp.NodeSeg) {
	var order []int
	bySector := make(map[int][]*convexbsp.NodeSeg)
	arena := convexbsp.NewSegArena()
	for _, seg := range convexbsp.CreateSegs(rings, arena, convexbsp.Log) {
		if _, ok := bySector[seg.Sector()]; !ok {
			order = append(order, seg.Sector())
		}
		bySector[seg.Sector()] = append(bySector[seg.Sector()], seg)
	}
	return order, bySector
}

func traceStep(sector int, states *convexbsp.ConvexStates) {
	cur := "none"
	if states.CurrentSegment != nil {
		cur = states.CurrentSegment.String()
	}
	fmt.Printf("  sector %d: %-20s visited %d/%d at %s, turn %s, winding %s\n",
		sector, states.State.String(), states.SegsVisited, states.TotalSegs,
		cur, states.Rotation.String(), states.Established.String())
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkTrace, "trace", false, "Print every step of convexity pass")
}
