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
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vigilantdoomer/convexbsp"
	"github.com/vigilantdoomer/convexbsp/ringfile"
)

var (
	buildOutput string
	buildVerify bool
)

var buildCmd = &cobra.Command{
	Use:   "build {map.yaml}",
	Short: "Build the tree for a map",
	Long:  `Builds nodes and subsectors for the map and writes the tree as YAML to the output file (stdout by default).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		m, err := ringfile.Load(args[0])
		if err != nil {
			return fmt.Errorf("loading map: %w", err)
		}
		rings := m.ToRings()

		// Statistics go to stderr when the tree itself goes to stdout
		logOut := io.Writer(os.Stdout)
		if buildOutput == "" {
			logOut = os.Stderr
		}
		lg := convexbsp.CreateLogger(logOut, os.Stderr, cfg.VerbosityLevel)
		lg.Configure(cfg)

		tree, err := convexbsp.NodesGenerator(&convexbsp.NodesInput{
			Rings:  rings,
			Config: cfg,
			Log:    lg,
		})
		if cfg.DumpSegsFlag {
			fmt.Fprint(os.Stderr, lg.GetDumpedSegs())
		}
		if err != nil {
			return fmt.Errorf("building %s: %w", args[0], err)
		}
		if buildVerify {
			if err := convexbsp.VerifyTree(tree, rings, cfg.Epsilon); err != nil {
				return err
			}
			lg.Printf("[%s] Tree verified.\n", tree.ID)
		}

		out := io.Writer(os.Stdout)
		if buildOutput != "" {
			f, err := os.Create(buildOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		if err := ringfile.WriteTree(out, tree); err != nil {
			return fmt.Errorf("writing tree: %w", err)
		}
		lg.Sync()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output file (default stdout)")
	buildCmd.Flags().BoolVar(&buildVerify, "verify", false, "Verify the tree after building it")
}
