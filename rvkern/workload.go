// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvkern

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/tools/txtar"
)

//go:embed workload.txtar
var DefaultWorkload []byte

// A WorkloadEntry is one manifest line: a program to load, its
// argument vector, and an optional priority.
type WorkloadEntry struct {
	Prog string
	Args []string
	Pri  int64
}

// ParseWorkload reads a workload archive: a txtar with a "manifest"
// file naming one program per line (blank lines and # comments
// skipped, trailing pri=N sets the priority), plus data files exposed
// to programs by name.
func ParseWorkload(data []byte) ([]WorkloadEntry, map[string][]byte, error) {
	ar := txtar.Parse(data)
	var manifest []byte
	files := make(map[string][]byte)
	for _, f := range ar.Files {
		if f.Name == "manifest" {
			manifest = f.Data
			continue
		}
		files[f.Name] = f.Data
	}
	if manifest == nil {
		return nil, nil, fmt.Errorf("workload: no manifest file")
	}

	var entries []WorkloadEntry
	for i, line := range strings.Split(string(manifest), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		e := WorkloadEntry{Prog: fields[0], Pri: DefaultPriority}
		for _, f := range fields[1:] {
			if rest, ok := strings.CutPrefix(f, "pri="); ok {
				pri, err := strconv.ParseInt(rest, 10, 64)
				if err != nil || pri < MinPriority {
					return nil, nil, fmt.Errorf("workload: manifest line %d: bad priority %q", i+1, rest)
				}
				e.Pri = pri
				continue
			}
			e.Args = append(e.Args, f)
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return nil, nil, fmt.Errorf("workload: empty manifest")
	}
	return entries, files, nil
}

// LoadWorkload parses a workload archive and loads every manifest
// entry, resolving program names through resolve.
func (sys *System) LoadWorkload(data []byte, resolve func(string) (Prog, bool)) error {
	entries, files, err := ParseWorkload(data)
	if err != nil {
		return err
	}
	for name, b := range files {
		sys.files[name] = b
	}
	for _, e := range entries {
		prog, ok := resolve(e.Prog)
		if !ok {
			return fmt.Errorf("workload: unknown program %q", e.Prog)
		}
		t, err := sys.Load(e.Prog, prog, e.Args)
		if err != nil {
			return err
		}
		t.Sys.mu.Lock()
		t.priority = e.Pri
		t.Sys.mu.Unlock()
	}
	return nil
}
