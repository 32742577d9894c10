// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvkern

import "rsc.io/rvos/internal/logging"

// processor is the per-core cursor: the one task checked out of the
// table while it executes, and a dedicated idle context the scheduling
// loop switches through. Switching via the idle context instead of
// task-to-task means the loop never needs the previous task's context,
// which matters when that task has exited.
type processor struct {
	current *Task
	idle    taskContext
}

// TakeCurrent removes and returns the running task, leaving none
// checked out; later calls observe nil until the next dispatch.
func (sys *System) TakeCurrent() *Task {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	t := sys.proc.current
	sys.proc.current = nil
	return t
}

// Current returns the running task without transferring ownership,
// or nil when control is in the idle loop.
func (sys *System) Current() *Task {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	return sys.proc.current
}

// Run is the scheduling loop. It repeatedly fetches a Ready task,
// marks it Running, stamps its dispatch times, and switches into its
// context; control returns to the idle context when the task yields
// or exits. The first iteration is the bootstrap dispatch of slot 0.
// Run returns only with ErrNoReadyTask, when every task has exited.
func (sys *System) Run() error {
	for {
		sys.mu.Lock()
		t := sys.fetchLocked()
		if t == nil {
			sys.mu.Unlock()
			logging.Logger.Info("no ready task; batch complete")
			return ErrNoReadyTask
		}
		now := sys.now()
		if t.firstSched < 0 {
			t.firstSched = now
		}
		t.lastDispatch = now
		t.status = Running
		sys.proc.current = t
		sys.mu.Unlock()
		swtch(&sys.proc.idle, &t.ctx)
	}
}
