// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvkern

import (
	"errors"
	"math"
	"testing"
)

func TestMapValidation(t *testing.T) {
	tests := []struct {
		name   string
		start  uint64
		length uint64
		port   uint64
		want   Errno
	}{
		{"ok", 0x1000, 0x1000, PermRead | PermWrite, 0},
		{"misaligned", 0x1001, 0x1000, PermRead, EALIGN},
		{"no perms", 0x1000, 0x1000, 0, EACCES},
		{"high bits", 0x1000, 0x1000, 0x9, EACCES},
		{"zero length", 0x1000, 0, PermRead, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var as addrSpace
			if e := as.mapRange(tt.start, tt.length, tt.port); e != tt.want {
				t.Errorf("map(%#x, %#x, %#x) = %v, want %v", tt.start, tt.length, tt.port, e, tt.want)
			}
		})
	}
}

func TestMapOverlap(t *testing.T) {
	var as addrSpace
	if e := as.mapRange(0x1000, 0x1000, PermRead|PermWrite); e != 0 {
		t.Fatalf("map(0x1000, 0x1000) = %v, want 0", e)
	}
	// [0x1800, 0x2800) intersects [0x1000, 0x2000): rejected, space unchanged.
	if e := as.mapRange(0x1800, 0x1000, PermRead); e != EOVERLAP {
		t.Fatalf("map(0x1800, 0x1000) = %v, want EOVERLAP", e)
	}
	if n := len(as.regions); n != 1 {
		t.Fatalf("have %d regions after rejected overlap, want 1", n)
	}
	if r := as.regions[0]; r.Start != 0x1000 || r.End != 0x2000 {
		t.Fatalf("region [%#x, %#x), want [0x1000, 0x2000)", r.Start, r.End)
	}
}

func TestMapRoundsUp(t *testing.T) {
	var as addrSpace
	if e := as.mapRange(0x1000, 0x0800, PermRead); e != 0 {
		t.Fatalf("map = %v, want 0", e)
	}
	if r := as.regions[0]; r.End != 0x2000 {
		t.Fatalf("region end %#x, want 0x2000 (rounded to page)", r.End)
	}
	// The next page is free: rounding stopped at the page boundary.
	if e := as.mapRange(0x2000, 0x1000, PermRead); e != 0 {
		t.Fatalf("map after rounded region = %v, want 0", e)
	}
}

func TestMapWraparound(t *testing.T) {
	var as addrSpace
	if e := as.mapRange(0x1000, 0x1000, PermRead); e != 0 {
		t.Fatalf("map = %v, want 0", e)
	}
	// start+size wraps past the top of the address space: a region
	// with End below Start must never be inserted.
	if e := as.mapRange(0xFFFFFFFFFFFFF000, 0x2000, PermRead); e != EFAULT {
		t.Fatalf("map(0xFFFFFFFFFFFFF000, 0x2000) = %v, want EFAULT", e)
	}
	// The page round-up itself wraps to 0.
	if e := as.mapRange(0x3000, math.MaxUint64, PermRead); e != EFAULT {
		t.Fatalf("map(0x3000, MaxUint64) = %v, want EFAULT", e)
	}
	if n := len(as.regions); n != 1 {
		t.Fatalf("have %d regions after rejected wraps, want 1", n)
	}
	for _, r := range as.regions {
		if r.Start >= r.End {
			t.Fatalf("region invariant broken: [%#x, %#x)", r.Start, r.End)
		}
	}
	if e := as.unmapRange(0xFFFFFFFFFFFFF000, 0x2000); e != EFAULT {
		t.Fatalf("unmap(0xFFFFFFFFFFFFF000, 0x2000) = %v, want EFAULT", e)
	}
}

func TestUnmapRoundTrip(t *testing.T) {
	var as addrSpace
	if e := as.mapRange(0x1000, 0x1000, PermRead); e != 0 {
		t.Fatalf("map = %v, want 0", e)
	}
	if e := as.unmapRange(0x1000, 0x1000); e != 0 {
		t.Fatalf("unmap = %v, want 0", e)
	}
	if n := len(as.regions); n != 0 {
		t.Fatalf("have %d regions after round trip, want 0", n)
	}
	if e := as.unmapRange(0x1000, 0x1000); e != ENOMAP {
		t.Fatalf("second unmap = %v, want ENOMAP", e)
	}
}

func TestUnmapValidation(t *testing.T) {
	var as addrSpace
	as.mapRange(0x1000, 0x2000, PermRead) // [0x1000, 0x3000)

	tests := []struct {
		name   string
		start  uint64
		length uint64
		want   Errno
	}{
		{"misaligned start", 0x1001, 0x1000, EALIGN},
		{"misaligned end", 0x1000, 0x0800, EALIGN},
		{"straddles region", 0x1000, 0x1000, ENOMAP},
		{"partly unmapped", 0x1000, 0x3000, ENOMAP},
		{"wholly unmapped", 0x8000, 0x1000, ENOMAP},
		{"zero length", 0x8000, 0, 0},
		{"exact", 0x1000, 0x2000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if e := as.unmapRange(tt.start, tt.length); e != tt.want {
				t.Errorf("unmap(%#x, %#x) = %v, want %v", tt.start, tt.length, e, tt.want)
			}
		})
	}
}

func TestUnmapSpansRegions(t *testing.T) {
	var as addrSpace
	as.mapRange(0x1000, 0x1000, PermRead)
	as.mapRange(0x2000, 0x1000, PermWrite)
	if e := as.unmapRange(0x1000, 0x2000); e != 0 {
		t.Fatalf("unmap spanning two exact regions = %v, want 0", e)
	}
	if n := len(as.regions); n != 0 {
		t.Fatalf("have %d regions, want 0", n)
	}
}

func TestMmapSyscall(t *testing.T) {
	sys, _ := testSystem()
	task, _ := sys.Load("a", func(u *U) {
		if ret := u.Mmap(0x1000, 0x1000, PermRead|PermWrite); ret != 0 {
			t.Errorf("mmap = %d, want 0", ret)
		}
		if ret := u.Mmap(0x1800, 0x1000, PermRead); ret != -int64(EOVERLAP) {
			t.Errorf("overlapping mmap = %d, want %d", ret, -int64(EOVERLAP))
		}
		if ret := u.Munmap(0x1000, 0x1000); ret != 0 {
			t.Errorf("munmap = %d, want 0", ret)
		}
		if ret := u.Munmap(0x1000, 0x1000); ret != -int64(ENOMAP) {
			t.Errorf("second munmap = %d, want %d", ret, -int64(ENOMAP))
		}
	}, nil)
	if err := sys.Run(); !errors.Is(err, ErrNoReadyTask) {
		t.Fatalf("Run() = %v, want ErrNoReadyTask", err)
	}
	if n := len(task.Regions()); n != 0 {
		t.Errorf("have %d regions after batch, want 0", n)
	}
}
