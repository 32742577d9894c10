// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Rvpack converts a directory to the txtar workload format used by
// the rvkern package and related commands, and lists or validates
// existing archives.
//
// Usage:
//
//	rvpack [-o out.txtar] dir
//	rvpack -l archive.txtar
//
// The directory must contain a manifest file; every other file is
// packed as workload data. With -l, the archive's manifest entries
// are listed and checked against the built-in program registry.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/txtar"

	"rsc.io/rvos/rvapp"
	"rsc.io/rvos/rvkern"
)

var (
	outfile = flag.String("o", "", "write output txtar to `file` (default standard output)")
	lflag   = flag.Bool("l", false, "list and validate workload archive")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: rvpack [-o out.txtar] dir\n")
	fmt.Fprintf(os.Stderr, "       rvpack -l archive.txtar\n")
	os.Exit(2)
}

func main() {
	log.SetPrefix("rvpack: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
	}

	if *lflag {
		list(flag.Arg(0))
		return
	}
	pack(flag.Arg(0))
}

func pack(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatal(err)
	}
	ar := &txtar.Archive{
		Comment: []byte(fmt.Sprintf("rvos workload packed from %s\n", filepath.Base(dir))),
	}
	haveManifest := false
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			log.Fatal(err)
		}
		if e.Name() == "manifest" {
			haveManifest = true
		}
		if !strings.HasSuffix(string(data), "\n") {
			data = append(data, '\n')
		}
		ar.Files = append(ar.Files, txtar.File{Name: e.Name(), Data: data})
	}
	if !haveManifest {
		log.Fatalf("%s: no manifest file", dir)
	}
	sort.Slice(ar.Files, func(i, j int) bool {
		if ar.Files[i].Name == "manifest" {
			return true
		}
		if ar.Files[j].Name == "manifest" {
			return false
		}
		return ar.Files[i].Name < ar.Files[j].Name
	})

	out := txtar.Format(ar)
	if _, _, err := rvkern.ParseWorkload(out); err != nil {
		log.Fatal(err)
	}
	if *outfile == "" {
		os.Stdout.Write(out)
		return
	}
	if err := os.WriteFile(*outfile, out, 0o666); err != nil {
		log.Fatal(err)
	}
}

func list(file string) {
	data, err := os.ReadFile(file)
	if err != nil {
		log.Fatal(err)
	}
	entries, files, err := rvkern.ParseWorkload(data)
	if err != nil {
		log.Fatal(err)
	}
	bad := 0
	for _, e := range entries {
		line := e.Prog
		if len(e.Args) > 0 {
			line += " " + strings.Join(e.Args, " ")
		}
		if e.Pri != rvkern.DefaultPriority {
			line += fmt.Sprintf(" pri=%d", e.Pri)
		}
		if _, ok := rvapp.Lookup(e.Prog); !ok {
			line += "  (unknown program)"
			bad++
		}
		fmt.Println(line)
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s  %d bytes\n", name, len(files[name]))
	}
	if bad > 0 {
		log.Fatalf("%d unknown program(s); known: %s", bad, strings.Join(rvapp.Names(), " "))
	}
}
