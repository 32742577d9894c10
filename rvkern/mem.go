// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvkern

import "sort"

// Region permission bits, matching the mmap port argument.
const (
	PermRead  = 1 << 0
	PermWrite = 1 << 1
	PermExec  = 1 << 2

	permMask = PermRead | PermWrite | PermExec
)

// A Region is one mapped virtual range, [Start, End), page-aligned,
// with its permission bits. Regions in one address space never overlap.
type Region struct {
	Start uint64
	End   uint64
	Perm  uint8
}

// addrSpace is the ordered region list owned by one task. Physical
// backing is outside this kernel; only the bookkeeping lives here.
type addrSpace struct {
	regions []Region // sorted by Start
}

func pageAligned(addr uint64) bool {
	return addr%PageSize == 0
}

func pageRoundUp(n uint64) uint64 {
	return (n + PageSize - 1) / PageSize * PageSize
}

// mapRange validates and inserts [start, start+length) rounded up to
// whole pages. On any failure the address space is unchanged.
func (as *addrSpace) mapRange(start, length, port uint64) Errno {
	if !pageAligned(start) {
		return EALIGN
	}
	if port&^uint64(permMask) != 0 || port&permMask == 0 {
		return EACCES
	}
	if length == 0 {
		return 0
	}
	size := pageRoundUp(length)
	// A wrapped round-up comes out as 0; a wrapped end would put
	// End below Start and corrupt every later overlap check.
	if size == 0 || start > ^uint64(0)-size {
		return EFAULT
	}
	end := start + size
	for _, r := range as.regions {
		if start < r.End && r.Start < end {
			return EOVERLAP
		}
	}
	as.regions = append(as.regions, Region{Start: start, End: end, Perm: uint8(port)})
	sort.Slice(as.regions, func(i, j int) bool {
		return as.regions[i].Start < as.regions[j].Start
	})
	return 0
}

// unmapRange validates and removes [start, start+length). The range
// must be exactly tiled by existing regions; partially mapped or
// partially covered ranges are rejected, not truncated.
func (as *addrSpace) unmapRange(start, length uint64) Errno {
	if !pageAligned(start) || !pageAligned(length) {
		return EALIGN
	}
	if length == 0 {
		return 0
	}
	if start > ^uint64(0)-length {
		return EFAULT
	}
	end := start + length
	covered := uint64(0)
	for _, r := range as.regions {
		if r.End <= start || end <= r.Start {
			continue
		}
		if r.Start < start || end < r.End {
			return ENOMAP // region straddles the range boundary
		}
		covered += r.End - r.Start
	}
	if covered != end-start {
		return ENOMAP
	}
	keep := as.regions[:0]
	for _, r := range as.regions {
		if r.End <= start || end <= r.Start {
			keep = append(keep, r)
		}
	}
	as.regions = keep
	return 0
}

// Regions returns a copy of the task's mapped regions in address order.
func (t *Task) Regions() []Region {
	t.Sys.mu.Lock()
	defer t.Sys.mu.Unlock()
	return append([]Region(nil), t.space.regions...)
}
