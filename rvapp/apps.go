// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvapp

import (
	"fmt"
	"strings"

	"rsc.io/rvos/rvkern"
)

func init() {
	Register("hello", hello)
	Register("yielder", yielder)
	Register("clock", clock)
	Register("mapper", mapper)
	Register("report", report)
	Register("cat", cat)
}

func hello(u *rvkern.U) {
	msg := "hello"
	if args := u.Args(); len(args) > 0 {
		msg += " " + strings.Join(args, " ")
	}
	u.WriteString(msg + "\n")
}

// yielder gives up the processor a few times so its neighbors
// interleave, then reports how often it ran.
func yielder(u *rvkern.U) {
	for i := 0; i < 3; i++ {
		u.WriteString(fmt.Sprintf("yielder: pass %d\n", i))
		u.Yield()
	}
}

func clock(u *rvkern.U) {
	t0, ret := u.GetTime()
	if ret < 0 {
		u.Exit(1)
	}
	u.Yield()
	t1, ret := u.GetTime()
	if ret < 0 {
		u.Exit(1)
	}
	u.WriteString(fmt.Sprintf("clock: %d.%06d -> %d.%06d\n", t0.Sec, t0.Usec, t1.Sec, t1.Usec))
}

// mapper exercises the region manager: a map, a rejected overlap,
// and the round trip back to an empty space.
func mapper(u *rvkern.U) {
	if ret := u.Mmap(0x1000, 0x1000, rvkern.PermRead|rvkern.PermWrite); ret != 0 {
		u.WriteString("mapper: mmap failed\n")
		u.Exit(1)
	}
	if ret := u.Mmap(0x1800, 0x1000, rvkern.PermRead); ret >= 0 {
		u.WriteString("mapper: overlap not rejected\n")
		u.Exit(1)
	}
	if ret := u.Munmap(0x1000, 0x1000); ret != 0 {
		u.WriteString("mapper: munmap failed\n")
		u.Exit(1)
	}
	u.WriteString("mapper: ok\n")
}

// report prints this task's own telemetry via task_info.
func report(u *rvkern.U) {
	u.Yield()
	info, ret := u.TaskInfo()
	if ret < 0 {
		u.Exit(1)
	}
	calls := uint32(0)
	for _, n := range info.SyscallCounts {
		calls += n
	}
	u.WriteString(fmt.Sprintf("report: status=%v calls=%d first=%dus time=%dus\n",
		info.Status, calls, info.FirstScheduled, info.TotalTime))
}

// cat prints a data file from the workload archive.
func cat(u *rvkern.U) {
	args := u.Args()
	if len(args) != 1 {
		u.WriteString("usage: cat file\n")
		u.Exit(1)
	}
	b, ok := u.File(args[0])
	if !ok {
		u.WriteString("cat: " + args[0] + ": no such file\n")
		u.Exit(1)
	}
	u.Write(1, b)
}
