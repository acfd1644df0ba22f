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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const VERSION = "0.1.0"

/*
picknode: Partition selection algorithm.
	0 Split minimization with seg balancing (default)
	1 Longest original seg
	2 Fewest splits only, balance as a tie-break
factor: Tuning factor (seg split cost)
	17 - default seg split cost
minise_penalty: Cost of picking a synthesized seg as partition
max_depth: Tree depth at which a build is aborted
epsilon: Distance below which a point is considered to be on a line
verbosity: Add verbosity to text output
dump_segs: Dump non-convex regions for debugging
*/

const (
	PICKNODE_TRADITIONAL = iota
	PICKNODE_LONGEST
	PICKNODE_SPLITS
)

// Default factor of BSP v5.2.
const PICKNODE_FACTOR = 17

const MINISE_PENALTY = 8

const DEFAULT_MAX_DEPTH = 256

const DEFAULT_EPSILON = 1.0 / 1024.0

type Config struct {
	// Function references can not be compared in Go (even for equality).
	// Thus PickNode is the option user might modify, the function is
	// derived from it when the build starts (see PickNodeFuncFromOption)
	PickNode       int     `yaml:"picknode"`
	PickNodeFactor int     `yaml:"factor"`
	MinisePenalty  int     `yaml:"minise_penalty"`
	MaxDepth       int     `yaml:"max_depth"`
	Epsilon        float64 `yaml:"epsilon"`
	VerbosityLevel int     `yaml:"verbosity"`
	DumpSegsFlag   bool    `yaml:"dump_segs"` // seg debugging
}

func DefaultConfig() *Config {
	return &Config{
		PickNode:       PICKNODE_TRADITIONAL,
		PickNodeFactor: PICKNODE_FACTOR,
		MinisePenalty:  MINISE_PENALTY,
		MaxDepth:       DEFAULT_MAX_DEPTH,
		Epsilon:        DEFAULT_EPSILON,
	}
}

// LoadConfig reads config from yaml file. Fields absent from the file keep
// their default values
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.PickNode {
	case PICKNODE_TRADITIONAL, PICKNODE_LONGEST, PICKNODE_SPLITS:
	default:
		return fmt.Errorf("%w: unknown picknode %d", ErrBadConfig, c.PickNode)
	}
	if c.PickNodeFactor < 0 {
		return fmt.Errorf("%w: factor must not be negative", ErrBadConfig)
	}
	if c.MinisePenalty < 0 {
		return fmt.Errorf("%w: minise_penalty must not be negative", ErrBadConfig)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: max_depth must be at least 1", ErrBadConfig)
	}
	if !(c.Epsilon > 0) {
		return fmt.Errorf("%w: epsilon must be positive", ErrBadConfig)
	}
	return nil
}
