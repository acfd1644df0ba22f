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

// Package ringfile reads map outlines from YAML files and writes built trees
// back in YAML, for the command line tool and for tests
package ringfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vigilantdoomer/convexbsp"
	"gopkg.in/yaml.v3"
)

const (
	// Outer ring of every sector is made clockwise, the others (holes)
	// counter-clockwise, so that interior is to the right of every seg
	ORIENT_AUTO = "auto"
	// Rings are used as written
	ORIENT_KEEP = "keep"
)

var ErrBadMap = errors.New("invalid map file")

type (
	Map struct {
		// Orient is either "auto" (default) or "keep".
		Orient string `yaml:"orient,omitempty"`
		// Sectors is a list of regions of the map. Every sector has one or more
		// rings: the first one is its outline, more rings are holes in it.
		Sectors []Sector `yaml:"sectors"`
	}

	Sector struct {
		Id    int       `yaml:"id"`
		Rings []Outline `yaml:"rings"`
	}

	// Outline is a list of points, the last one connects back to the first.
	// Every edge becomes one linedef, numbered through the whole file in
	// order of appearance.
	Outline []Vec2

	Vec2 struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
	}
)

func (v Vec2) vertex() convexbsp.NodeVertex {
	return convexbsp.NodeVertex{X: v.X, Y: v.Y}
}

// Load reads map from path
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func Parse(r io.Reader) (*Map, error) {
	m := &Map{}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadMap, err.Error())
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Map) Validate() error {
	switch m.Orient {
	case "", ORIENT_AUTO, ORIENT_KEEP:
	default:
		return fmt.Errorf("%w: unknown orient %q", ErrBadMap, m.Orient)
	}
	if len(m.Sectors) == 0 {
		return fmt.Errorf("%w: no sectors", ErrBadMap)
	}
	for i, sector := range m.Sectors {
		if len(sector.Rings) == 0 {
			return fmt.Errorf("%w: sector %d (#%d) has no rings", ErrBadMap, sector.Id, i)
		}
		for j, ring := range sector.Rings {
			if len(ring) < 2 {
				return fmt.Errorf("%w: sector %d ring %d has %d points, need at least 2",
					ErrBadMap, sector.Id, j, len(ring))
			}
		}
	}
	return nil
}

// Save writes map to path, creating directories if needed
func (m *Map) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	defer encoder.Close()
	encoder.SetIndent(4)

	return encoder.Encode(m)
}

// ToRings converts map to input of node builder. Linedef numbers are given
// to edges in order of appearance, and are not changed by orientation
func (m *Map) ToRings() []convexbsp.Ring {
	rings := make([]convexbsp.Ring, 0)
	linedef := convexbsp.LineRef(0)
	for _, sector := range m.Sectors {
		for j, outline := range sector.Rings {
			ring := make(convexbsp.Ring, len(outline))
			for k := range outline {
				ring[k] = convexbsp.LineSeg{
					Start:   outline[k].vertex(),
					End:     outline[(k+1)%len(outline)].vertex(),
					Linedef: linedef,
					Sector:  sector.Id,
				}
				linedef++
			}
			if m.Orient != ORIENT_KEEP {
				clockwise := outline.Area() < 0
				if clockwise != (j == 0) {
					ring = reverseRing(ring)
				}
			}
			rings = append(rings, ring)
		}
	}
	return rings
}

// Area is the signed area of outline, positive when it is counter-clockwise
func (o Outline) Area() float64 {
	pts := make([]convexbsp.NodeVertex, len(o))
	for i, v := range o {
		pts[i] = v.vertex()
	}
	return convexbsp.SignedArea(pts)
}

func reverseRing(ring convexbsp.Ring) convexbsp.Ring {
	res := make(convexbsp.Ring, len(ring))
	for i, ls := range ring {
		res[len(ring)-1-i] = convexbsp.LineSeg{
			Start:   ls.End,
			End:     ls.Start,
			Linedef: ls.Linedef,
			Sector:  ls.Sector,
		}
	}
	return res
}
