// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvkern

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDefaultWorkload(t *testing.T) {
	entries, files, err := ParseWorkload(DefaultWorkload)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Fatal("default workload has no entries")
	}
	if _, ok := files["motd"]; !ok {
		t.Error("default workload missing motd data file")
	}
	for _, e := range entries {
		if e.Pri < MinPriority {
			t.Errorf("%s: priority %d below minimum %d", e.Prog, e.Pri, MinPriority)
		}
	}
}

func TestParseWorkload(t *testing.T) {
	archive := `comment
-- manifest --
# a comment
hello world pri=3

cat motd
-- motd --
hi
`
	entries, files, err := ParseWorkload([]byte(archive))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("have %d entries, want 2", len(entries))
	}
	e := entries[0]
	if e.Prog != "hello" || len(e.Args) != 1 || e.Args[0] != "world" || e.Pri != 3 {
		t.Errorf("entry 0 = %+v, want hello [world] pri=3", e)
	}
	if entries[1].Pri != DefaultPriority {
		t.Errorf("entry 1 pri = %d, want default %d", entries[1].Pri, DefaultPriority)
	}
	if string(files["motd"]) != "hi\n" {
		t.Errorf("motd = %q, want %q", files["motd"], "hi\n")
	}
}

func TestParseWorkloadErrors(t *testing.T) {
	tests := []struct {
		name    string
		archive string
		want    string
	}{
		{"no manifest", "-- data --\nx\n", "no manifest"},
		{"empty manifest", "-- manifest --\n# nothing\n", "empty manifest"},
		{"bad priority", "-- manifest --\nhello pri=abc\n", "bad priority"},
		{"low priority", "-- manifest --\nhello pri=1\n", "bad priority"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseWorkload([]byte(tt.archive))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadWorkload(t *testing.T) {
	sys, _ := testSystem()
	noop := func(u *U) {}
	resolve := func(name string) (Prog, bool) {
		if name == "noop" {
			return noop, true
		}
		return nil, false
	}

	archive := "-- manifest --\nnoop a b pri=4\nnoop\n"
	if err := sys.LoadWorkload([]byte(archive), resolve); err != nil {
		t.Fatal(err)
	}
	tasks := sys.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("loaded %d tasks, want 2", len(tasks))
	}
	if pri := tasks[0].Priority(); pri != 4 {
		t.Errorf("task 0 priority = %d, want 4", pri)
	}
	if pri := tasks[1].Priority(); pri != DefaultPriority {
		t.Errorf("task 1 priority = %d, want %d", pri, DefaultPriority)
	}

	if err := sys.LoadWorkload([]byte("-- manifest --\nmissing\n"), resolve); err == nil {
		t.Error("unknown program loaded, want error")
	}

	if err := sys.Run(); !errors.Is(err, ErrNoReadyTask) {
		t.Fatalf("Run() = %v, want ErrNoReadyTask", err)
	}
}

func TestWorkloadDataFile(t *testing.T) {
	sys, buf := testSystem()
	archive := "-- manifest --\ncat motd\n-- motd --\nhello from the archive\n"
	resolve := func(name string) (Prog, bool) {
		return func(u *U) {
			b, ok := u.File(u.Args()[0])
			if !ok {
				t.Errorf("File(%q) not found", u.Args()[0])
				return
			}
			u.Write(1, b)
		}, true
	}
	if err := sys.LoadWorkload([]byte(archive), resolve); err != nil {
		t.Fatal(err)
	}
	if err := sys.Run(); !errors.Is(err, ErrNoReadyTask) {
		t.Fatalf("Run() = %v, want ErrNoReadyTask", err)
	}
	if got := buf.String(); got != "hello from the archive\n" {
		t.Errorf("console = %q, want %q", got, "hello from the archive\n")
	}
}
