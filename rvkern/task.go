// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvkern

import (
	"encoding/binary"
	"fmt"
)

type Status int8

const (
	Uninitialized Status = iota
	Ready
	Running
	Exited
)

func (s Status) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	case Exited:
		return "Exited"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// A Task is one entry of the task table. Its identity is its slot
// index, stable for the life of the system; slots are never reused.
type Task struct {
	Sys  *System
	ID   int
	Name string

	status   Status
	ctx      taskContext
	exitCode int32
	priority int64

	Args  [3]uint64 // syscall args
	Error Errno     // syscall error
	ret   int64     // syscall result

	Mem   []byte // user memory image
	space addrSpace

	counts       map[uint32]uint32
	stamps       map[uint32]int64
	firstSched   int64 // usec; -1 until first dispatch
	lastDispatch int64
	runTime      int64 // usec accumulated outside Running
}

// Status reports the task's lifecycle state.
func (t *Task) Status() Status {
	t.Sys.mu.Lock()
	defer t.Sys.mu.Unlock()
	return t.status
}

// Priority reports the task's stored scheduling weight.
// The scheduler does not consult it; it is metadata only.
func (t *Task) Priority() int64 {
	t.Sys.mu.Lock()
	defer t.Sys.mu.Unlock()
	return t.priority
}

// ExitCode reports the code passed to exit. Valid once status is Exited.
func (t *Task) ExitCode() int32 {
	t.Sys.mu.Lock()
	defer t.Sys.mu.Unlock()
	return t.exitCode
}

// mem returns count bytes of user memory at addr, or nil with
// t.Error = EFAULT if the range is out of bounds or addr is null.
// addr and count are task-supplied; comparing against the remaining
// space keeps the check safe from uint64 wraparound.
func (t *Task) mem(addr, count uint64) []byte {
	if addr == 0 || addr > uint64(len(t.Mem)) || count > uint64(len(t.Mem))-addr {
		t.Error = EFAULT
		return nil
	}
	return t.Mem[addr : addr+count]
}

// TaskInfo is the task_info snapshot: lifecycle status, per-syscall
// telemetry, and running time, all in the get_time unit (microseconds
// since boot).
type TaskInfo struct {
	Status         Status
	SyscallCounts  map[uint32]uint32
	SyscallStamps  map[uint32]int64
	FirstScheduled int64 // -1 if never dispatched
	TotalTime      int64
}

// infoLocked snapshots the task at time now. Caller holds sys.mu.
func (t *Task) infoLocked(now int64) TaskInfo {
	info := TaskInfo{
		Status:         t.status,
		SyscallCounts:  make(map[uint32]uint32, len(t.counts)),
		SyscallStamps:  make(map[uint32]int64, len(t.stamps)),
		FirstScheduled: t.firstSched,
		TotalTime:      t.runTime,
	}
	for id, n := range t.counts {
		info.SyscallCounts[id] = n
	}
	for id, us := range t.stamps {
		info.SyscallStamps[id] = us
	}
	if t.status == Running {
		info.TotalTime += now - t.lastDispatch
	}
	return info
}

// Info snapshots the task's status and telemetry.
func (t *Task) Info() TaskInfo {
	t.Sys.mu.Lock()
	defer t.Sys.mu.Unlock()
	return t.infoLocked(t.Sys.now())
}

// Wire layout of the task_info out-struct:
// status u32, counts [MaxSyscall]u32, stamps [MaxSyscall]i64,
// first_scheduled i64, total_time i64, little-endian.
const TaskInfoSize = 4 + MaxSyscall*4 + MaxSyscall*8 + 8 + 8

func (info *TaskInfo) marshal() []byte {
	b := make([]byte, TaskInfoSize)
	le := binary.LittleEndian
	le.PutUint32(b, uint32(info.Status))
	off := 4
	for id := uint32(0); id < MaxSyscall; id++ {
		le.PutUint32(b[off+int(id)*4:], info.SyscallCounts[id])
	}
	off += MaxSyscall * 4
	for id := uint32(0); id < MaxSyscall; id++ {
		le.PutUint64(b[off+int(id)*8:], uint64(info.SyscallStamps[id]))
	}
	off += MaxSyscall * 8
	le.PutUint64(b[off:], uint64(info.FirstScheduled))
	le.PutUint64(b[off+8:], uint64(info.TotalTime))
	return b
}

// ParseTaskInfo decodes a task_info out-struct. Ids with zero counts
// are omitted from the maps.
func ParseTaskInfo(b []byte) (TaskInfo, error) {
	if len(b) < TaskInfoSize {
		return TaskInfo{}, fmt.Errorf("task info: have %d bytes, want %d", len(b), TaskInfoSize)
	}
	le := binary.LittleEndian
	info := TaskInfo{
		Status:        Status(le.Uint32(b)),
		SyscallCounts: make(map[uint32]uint32),
		SyscallStamps: make(map[uint32]int64),
	}
	off := 4
	for id := uint32(0); id < MaxSyscall; id++ {
		if n := le.Uint32(b[off+int(id)*4:]); n != 0 {
			info.SyscallCounts[id] = n
		}
	}
	off += MaxSyscall * 4
	for id := uint32(0); id < MaxSyscall; id++ {
		if us := int64(le.Uint64(b[off+int(id)*8:])); us != 0 {
			info.SyscallStamps[id] = us
		}
	}
	off += MaxSyscall * 8
	info.FirstScheduled = int64(le.Uint64(b[off:]))
	info.TotalTime = int64(le.Uint64(b[off+8:]))
	return info, nil
}
