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
package ringfile

import (
	"io"

	"github.com/vigilantdoomer/convexbsp"
	"gopkg.in/yaml.v3"
)

type (
	TreeDump struct {
		ID         string                `yaml:"id"`
		Root       string                `yaml:"root"`
		Height     int                   `yaml:"height"`
		Stats      convexbsp.NodesTotals `yaml:"stats"`
		Nodes      []NodeDump            `yaml:"nodes"`
		Subsectors []SubsectorDump       `yaml:"subsectors"`
	}

	NodeDump struct {
		// Partition is x, y, dx, dy.
		Partition [4]float64 `yaml:"partition,flow"`
		// Bounding boxes are xmin, ymin, xmax, ymax.
		Fbox  [4]float64 `yaml:"fbox,flow"`
		Bbox  [4]float64 `yaml:"bbox,flow"`
		Front string     `yaml:"front"`
		Back  string     `yaml:"back"`
	}

	SubsectorDump struct {
		Degenerate bool      `yaml:"degenerate,omitempty"`
		Reason     string    `yaml:"reason,omitempty"`
		Segs       []SegDump `yaml:"segs"`
	}

	SegDump struct {
		Start   Vec2 `yaml:"start,flow"`
		End     Vec2 `yaml:"end,flow"`
		Linedef int  `yaml:"linedef"`
		Sector  int  `yaml:"sector"`
		Minise  bool `yaml:"minise,omitempty"`
	}
)

func boxDump(b convexbsp.NodeBounds) [4]float64 {
	return [4]float64{b.Xmin, b.Ymin, b.Xmax, b.Ymax}
}

func vec(v convexbsp.NodeVertex) Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// DumpTree converts tree to its YAML representation
func DumpTree(tree *convexbsp.Tree) *TreeDump {
	d := &TreeDump{
		ID:         tree.ID.String(),
		Root:       tree.Root.String(),
		Height:     tree.Height(),
		Stats:      tree.Stats,
		Nodes:      make([]NodeDump, len(tree.Nodes)),
		Subsectors: make([]SubsectorDump, len(tree.Subsectors)),
	}
	for i, node := range tree.Nodes {
		d.Nodes[i] = NodeDump{
			Partition: [4]float64{node.X, node.Y, node.Dx, node.Dy},
			Fbox:      boxDump(node.Fbox),
			Bbox:      boxDump(node.Bbox),
			Front:     node.Front.String(),
			Back:      node.Back.String(),
		}
	}
	for i := range tree.Subsectors {
		ss := &tree.Subsectors[i]
		sd := SubsectorDump{
			Degenerate: ss.Degenerate,
			Segs:       make([]SegDump, len(ss.Segs)),
		}
		if ss.Degenerate {
			sd.Reason = ss.Reason.String()
		}
		for j, seg := range ss.Segs {
			sd.Segs[j] = SegDump{
				Start:   vec(seg.Start()),
				End:     vec(seg.End()),
				Linedef: int(seg.Linedef()),
				Sector:  seg.Sector(),
				Minise:  seg.IsMinise(),
			}
		}
		d.Subsectors[i] = sd
	}
	return d
}

// WriteTree writes tree as YAML to w
func WriteTree(w io.Writer, tree *convexbsp.Tree) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(4)
	if err := encoder.Encode(DumpTree(tree)); err != nil {
		return err
	}
	return encoder.Close()
}
