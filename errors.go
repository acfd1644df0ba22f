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
	"errors"
	"fmt"
)

var (
	// ErrNoSegs is returned when input produced no segs at all (empty or
	// zero-length only)
	ErrNoSegs = errors.New("no segs to build nodes from")

	// ErrRecursionLimit means splitting went deeper than Config.MaxDepth.
	// Malformed input is the usual cause
	ErrRecursionLimit = errors.New("node depth limit exceeded")

	ErrBadConfig = errors.New("invalid config")

	// ErrBadTree is what VerifyTree wraps
	ErrBadTree = errors.New("tree verification failed")
)

// BuildError is what a failed build returns. Degenerate leaves by themselves
// never fail a build, but their count is reported to help diagnose the map
type BuildError struct {
	Err          error
	Depth        int
	Segs         int // segs in the region that could not be processed
	Subsectors   int // created before the failure
	Degenerate   int
	Unresolvable int
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s at depth %d (region of %d segs; %d subsectors built, %d degenerate, %d unresolvable partitions)",
		e.Err.Error(), e.Depth, e.Segs, e.Subsectors, e.Degenerate, e.Unresolvable)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
