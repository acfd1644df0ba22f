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
	"os"

	"github.com/spf13/cobra"
	"github.com/vigilantdoomer/convexbsp"
)

var (
	configPath string
	verbosity  int
	pickNode   string
	maxDepth   int
	dumpSegs   bool
)

var rootCmd = &cobra.Command{
	Use:   "convexbsp",
	Short: "convexbsp - convex subsector tree builder",
	Long: `convexbsp partitions map outlines into convex subsectors connected by a
binary space partition tree. Maps are read from YAML files listing sector
outlines, the tree is written as YAML.`,
	Version:           convexbsp.VERSION,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var pickNodeNames = map[string]int{
	"traditional": convexbsp.PICKNODE_TRADITIONAL,
	"longest":     convexbsp.PICKNODE_LONGEST,
	"splits":      convexbsp.PICKNODE_SPLITS,
}

// loadConfig reads config file (if one was given) and applies command line
// flags on top of it
func loadConfig(cmd *cobra.Command) (*convexbsp.Config, error) {
	cfg := convexbsp.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = convexbsp.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.VerbosityLevel = verbosity
	}
	if flags.Changed("picknode") {
		option, ok := pickNodeNames[pickNode]
		if !ok {
			return nil, fmt.Errorf("%w: unknown picknode %q", convexbsp.ErrBadConfig, pickNode)
		}
		cfg.PickNode = option
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = maxDepth
	}
	if flags.Changed("dump-segs") {
		cfg.DumpSegsFlag = dumpSegs
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	convexbsp.Log.Configure(cfg)
	return cfg, nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file")
	flags.CountVarP(&verbosity, "verbose", "v", "Verbose output (repeat for more)")
	flags.StringVar(&pickNode, "picknode", "traditional", "Partition selection (traditional/longest/splits)")
	flags.IntVar(&maxDepth, "max-depth", convexbsp.DEFAULT_MAX_DEPTH, "Tree depth at which build is aborted")
	flags.BoolVar(&dumpSegs, "dump-segs", false, "Dump non-convex regions to stderr")
}
