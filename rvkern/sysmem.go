// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvkern

/*
 * mmap system call. Maps [start, start+len) with the given port
 * bits into the calling task's address space. Validation only;
 * physical frames are someone else's problem.
 */
func sysmmap(t *Task) {
	t.Sys.mu.Lock()
	defer t.Sys.mu.Unlock()
	if e := t.space.mapRange(t.Args[0], t.Args[1], t.Args[2]); e != 0 {
		t.Error = e
		return
	}
	t.ret = 0
}

/*
 * munmap system call. Removes [start, start+len) from the calling
 * task's address space; the range must be fully mapped.
 */
func sysmunmap(t *Task) {
	t.Sys.mu.Lock()
	defer t.Sys.mu.Unlock()
	if e := t.space.unmapRange(t.Args[0], t.Args[1]); e != 0 {
		t.Error = e
		return
	}
	t.ret = 0
}
