// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Rvrun boots the rvos kernel and runs a batch workload to
// completion.
//
// Usage:
//
//	rvrun [-c config.toml] [-w workload.txtar] [-trace] [-cpuprofile file]
//
// Without -w, the workload embedded in the rvkern package is run.
// The scheduler stopping with "no ready task" is the success path:
// every task in the batch has exited.
package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/BurntSushi/toml"
	"golang.org/x/term"

	"rsc.io/rvos/internal/logging"
	"rsc.io/rvos/rvapp"
	"rsc.io/rvos/rvkern"
)

var (
	configfile = flag.String("c", "", "read configuration from `file`")
	workload   = flag.String("w", "", "run workload archive `file`")
	trace      = flag.Bool("trace", false, "trace every syscall")
	cpuprofile = flag.String("cpuprofile", "", "write cpuprofile to `file`")
)

// Config is the rvrun TOML configuration. Flags override it.
type Config struct {
	LogLevel string
	LogDir   string
	LogKeep  uint
	Workload string
	Trace    bool
}

func main() {
	log.SetPrefix("rvrun: ")
	log.SetFlags(0)
	flag.Parse()

	cfg := Config{LogLevel: "info", LogKeep: 24}
	if *configfile != "" {
		if _, err := toml.DecodeFile(*configfile, &cfg); err != nil {
			log.Fatal(err)
		}
	}
	if *workload != "" {
		cfg.Workload = *workload
	}
	if *trace {
		cfg.Trace = true
	}

	logging.SetColors(term.IsTerminal(int(os.Stderr.Fd())))
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		log.Fatal(err)
	}
	if cfg.Trace {
		logging.SetLevel("trace")
	}
	if cfg.LogDir != "" {
		if err := logging.SetFileRotationHooker(cfg.LogDir, cfg.LogKeep); err != nil {
			log.Fatal(err)
		}
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	archive := rvkern.DefaultWorkload
	if cfg.Workload != "" {
		b, err := os.ReadFile(cfg.Workload)
		if err != nil {
			log.Fatal(err)
		}
		archive = b
	}

	sys := rvkern.NewSystem(os.Stdout)
	if err := sys.LoadWorkload(archive, rvapp.Lookup); err != nil {
		log.Fatal(err)
	}

	if err := sys.Run(); !errors.Is(err, rvkern.ErrNoReadyTask) {
		log.Fatal(err)
	}
}
