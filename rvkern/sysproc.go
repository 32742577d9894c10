// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvkern

import "encoding/binary"

/*
 * exit system call. Terminal: the calling task's code path never
 * executes again.
 */
func sysexit(t *Task) {
	t.Sys.exit(t, int32(t.Args[0]))
}

/*
 * yield system call. Voluntary suspension; returns 0 once the task
 * is rescheduled.
 */
func sysyield(t *Task) {
	t.Sys.suspend(t)
	t.ret = 0
}

// TimeVal is the get_time out-struct: seconds and microseconds,
// two little-endian i64 words.
type TimeVal struct {
	Sec  int64
	Usec int64
}

const timeValSize = 16

/*
 * get_time system call. Pure; writes a TimeVal to Args[0] and
 * ignores the timezone argument. The out location is untouched
 * on failure.
 */
func sysgettime(t *Task) {
	out := t.mem(t.Args[0], timeValSize)
	if out == nil {
		return
	}
	us := t.Sys.now()
	binary.LittleEndian.PutUint64(out, uint64(us/1e6))
	binary.LittleEndian.PutUint64(out[8:], uint64(us%1e6))
	t.ret = 0
}

/*
 * task_info system call. Snapshots the calling task's status,
 * telemetry, and running time into the out-struct at Args[0].
 * The out location is untouched on failure.
 */
func systaskinfo(t *Task) {
	out := t.mem(t.Args[0], TaskInfoSize)
	if out == nil {
		return
	}
	t.Sys.mu.Lock()
	info := t.infoLocked(t.Sys.now())
	t.Sys.mu.Unlock()
	copy(out, info.marshal())
	t.ret = 0
}

/*
 * set_priority system call. Stores the priority as task metadata;
 * the scheduler is free to ignore it. Returns the accepted value.
 */
func syssetpriority(t *Task) {
	pri := int64(t.Args[0])
	if pri < MinPriority {
		t.Error = EINVAL
		return
	}
	t.Sys.mu.Lock()
	t.priority = pri
	t.Sys.mu.Unlock()
	t.ret = pri
}
