// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvkern

import "encoding/binary"

// U is the user-mode environment handed to a program: syscall
// wrappers that marshal arguments through the task's own memory and
// enter the gateway, so telemetry sees exactly what the program did.
type U struct {
	task *Task
	args []string
}

// Syscall argument marshaling area in user memory. One call at a
// time per task, so wrappers reuse it freely. Address 0 stays
// unmapped so null pointers fault.
const uargBase = 0x100

// Args returns the program's argument vector from the workload.
func (u *U) Args() []string { return u.args }

// Task returns the calling task, for introspection by tests and
// diagnostic programs.
func (u *U) Task() *Task { return u.task }

// File returns a read-only data file from the workload archive.
func (u *U) File(name string) ([]byte, bool) {
	b, ok := u.task.Sys.files[name]
	return b, ok
}

// Syscall enters the gateway directly with raw arguments.
func (u *U) Syscall(id uint32, a0, a1, a2 uint64) int64 {
	return u.task.Syscall(id, a0, a1, a2)
}

// Write copies b into user memory and invokes the write syscall.
func (u *U) Write(fd int, b []byte) int64 {
	if uargBase+len(b) > len(u.task.Mem) {
		b = b[:len(u.task.Mem)-uargBase]
	}
	copy(u.task.Mem[uargBase:], b)
	return u.task.Syscall(SYS_write, uint64(fd), uargBase, uint64(len(b)))
}

// WriteString writes s to the console descriptor.
func (u *U) WriteString(s string) int64 {
	return u.Write(1, []byte(s))
}

// Exit terminates the task. Never returns.
func (u *U) Exit(code int) {
	u.task.Syscall(SYS_exit, uint64(int64(code)), 0, 0)
	panic("unreachable after exit")
}

// Yield gives up the processor until the scheduler comes back around.
func (u *U) Yield() int64 {
	return u.task.Syscall(SYS_yield, 0, 0, 0)
}

// GetTime invokes get_time and decodes the TimeVal result.
func (u *U) GetTime() (TimeVal, int64) {
	ret := u.task.Syscall(SYS_gettime, uargBase, 0, 0)
	if ret < 0 {
		return TimeVal{}, ret
	}
	b := u.task.Mem[uargBase : uargBase+timeValSize]
	return TimeVal{
		Sec:  int64(binary.LittleEndian.Uint64(b)),
		Usec: int64(binary.LittleEndian.Uint64(b[8:])),
	}, ret
}

// TaskInfo invokes task_info and decodes the snapshot.
func (u *U) TaskInfo() (TaskInfo, int64) {
	ret := u.task.Syscall(SYS_taskinfo, uargBase, 0, 0)
	if ret < 0 {
		return TaskInfo{}, ret
	}
	info, err := ParseTaskInfo(u.task.Mem[uargBase:])
	if err != nil {
		return TaskInfo{}, -int64(EFAULT)
	}
	return info, ret
}

// Mmap maps [start, start+length) with the given permission bits.
func (u *U) Mmap(start, length, port uint64) int64 {
	return u.task.Syscall(SYS_mmap, start, length, port)
}

// Munmap unmaps [start, start+length).
func (u *U) Munmap(start, length uint64) int64 {
	return u.task.Syscall(SYS_munmap, start, length, 0)
}

// SetPriority stores a scheduling weight and returns the accepted
// value.
func (u *U) SetPriority(pri int64) int64 {
	return u.task.Syscall(SYS_setpriority, uint64(pri), 0, 0)
}
