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

// Central log (stdout/stderr) of the node builder
package convexbsp

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type MyLogger struct {
	syslog         *log.Logger
	errlog         *log.Logger
	verbosityLevel int
	dumpSegs       bool
	segs           bytes.Buffer
	// Mutex is used to order writes to stdout and stderr, as well as Sync call
	mu sync.Mutex
}

// CreateLogger makes a logger that writes normal output to out and errors
// to errw. Messages passed to Verbose are output only when their level is
// not above verbosity
func CreateLogger(out, errw io.Writer, verbosity int) *MyLogger {
	return &MyLogger{
		syslog:         log.New(out, "", 0),
		errlog:         log.New(errw, "", 0),
		verbosityLevel: verbosity,
	}
}

var Log = CreateLogger(os.Stdout, os.Stderr, 0)

// Applies verbosity and seg dumping settings from config
func (log *MyLogger) Configure(cfg *Config) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.verbosityLevel = cfg.VerbosityLevel
	log.dumpSegs = cfg.DumpSegsFlag
}

// Your generic printf to let user see things
func (log *MyLogger) Printf(s string, a ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.syslog.Printf(s, a...)
}

// As generic as printf, but writes to stderr instead of stdout
// Does NOT interrupt execution of the program
func (log *MyLogger) Error(s string, a ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.errlog.Printf(s, a...)
}

// For advanced users or users that are curious, or programmers, there is
// stuff they might want to see but only when they can really bother to spend
// time reading it
func (log *MyLogger) Verbose(verbosityLevel int, s string, a ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if verbosityLevel <= log.verbosityLevel {
		log.syslog.Printf(s, a...)
	}
}

// Panicking is not a good thing, but at least we can now use formatted printing
// for it
func (log *MyLogger) Panic(s string, a ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	panic(fmt.Sprintf(s, a...))
}

// DumpSegs records coordinates of segs in a region. Does nothing unless
// seg dumping was enabled in config
func (log *MyLogger) DumpSegs(title string, ts []*NodeSeg) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if !log.dumpSegs || len(ts) == 0 {
		return
	}
	allSector := ts[0].sector
	log.segs.WriteString(fmt.Sprintf("%s (sector #%d):\n", title, allSector))
	for _, tmps := range ts {
		log.segs.WriteString(fmt.Sprintf(
			"  Seg: %d Linedef: %d (%v,%v) - (%v, %v)",
			tmps.id, tmps.linedef, tmps.start.X, tmps.start.Y,
			tmps.end.X, tmps.end.Y))
		if tmps.sector != allSector {
			log.segs.WriteString(fmt.Sprintf(" Sector = %d\n", tmps.sector))
		} else {
			log.segs.WriteString("\n")
		}
	}
}

func (log *MyLogger) GetDumpedSegs() string {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.segs.String()
}

// Sync is used to wait until all messages are written to the output
func (log *MyLogger) Sync() {
	log.mu.Lock()
	log.mu.Unlock()
}
