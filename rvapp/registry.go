// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rvapp holds the built-in user programs: cooperative
// functions that only talk to the kernel through the syscall
// gateway, so everything they do shows up in task telemetry.
package rvapp

import (
	"sort"

	"rsc.io/rvos/rvkern"
)

var progs = map[string]rvkern.Prog{}

// Register adds a program under name, replacing any previous one.
func Register(name string, p rvkern.Prog) {
	progs[name] = p
}

// Lookup resolves a program name, for use with LoadWorkload.
func Lookup(name string) (rvkern.Prog, bool) {
	p, ok := progs[name]
	return p, ok
}

// Names lists registered programs, sorted.
func Names() []string {
	names := make([]string, 0, len(progs))
	for name := range progs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
