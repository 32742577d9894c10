// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvkern

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"rsc.io/rvos/internal/logging"
)

// A Prog is the entry point of a user program. It runs on its own
// control flow and interacts with the kernel only through u.
type Prog func(u *U)

// A System is a fixed-capacity task table plus the single logical
// processor driving it. All table state is guarded by mu; lock
// windows never span a context switch.
type System struct {
	mu      sync.Mutex
	tasks   []*Task
	current int // table cursor; -1 before the first dispatch

	proc processor

	Console io.Writer
	files   map[string][]byte // read-only workload data files

	start time.Time
	now   func() int64 // usec since boot
}

// NewSystem creates an empty system whose write syscall output goes
// to console.
func NewSystem(console io.Writer) *System {
	sys := &System{
		Console: console,
		current: -1,
		files:   make(map[string][]byte),
		start:   time.Now(),
	}
	sys.now = func() int64 { return time.Since(sys.start).Microseconds() }
	sys.proc.idle = newContext()
	return sys
}

// Tasks returns the task table slots in load order.
func (sys *System) Tasks() []*Task {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	return append([]*Task(nil), sys.tasks...)
}

// Load places a program in the next free table slot. The task is
// created Uninitialized, its initial context is built, and it
// becomes Ready for the scheduler.
func (sys *System) Load(name string, prog Prog, args []string) (*Task, error) {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	if len(sys.tasks) >= NTASK {
		return nil, fmt.Errorf("load %s: task table full (%d tasks)", name, NTASK)
	}
	t := &Task{
		Sys:        sys,
		ID:         len(sys.tasks),
		Name:       name,
		status:     Uninitialized,
		priority:   DefaultPriority,
		Mem:        make([]byte, UserMemSize),
		counts:     make(map[uint32]uint32),
		stamps:     make(map[uint32]int64),
		firstSched: -1,
	}
	t.ctx = newContext()
	go t.run(prog, args)
	t.status = Ready
	sys.tasks = append(sys.tasks, t)
	logging.Logger.WithFields(logrus.Fields{"task": t.ID, "name": name}).Debug("task loaded")
	return t, nil
}

// run is the trampoline for a fresh context: parked until the task
// is first dispatched, then the program body, then an implicit exit
// for programs that return instead of calling Exit.
func (t *Task) run(prog Prog, args []string) {
	<-t.ctx.resume
	u := &U{task: t, args: args}
	prog(u)
	u.Exit(0)
}

// fetchLocked is the scheduling algorithm: scan cyclically from the
// slot after the cursor and pick the first Ready task. Round-robin;
// priority is never consulted. Caller holds sys.mu.
func (sys *System) fetchLocked() *Task {
	n := len(sys.tasks)
	for i := 1; i <= n; i++ {
		idx := (sys.current + i) % n
		if t := sys.tasks[idx]; t.status == Ready {
			sys.current = idx
			return t
		}
	}
	return nil
}

// suspend is the yield path: Running -> Ready, give the task back to
// the table, and return to the idle control flow. Control comes back
// here when this task is next selected.
func (sys *System) suspend(t *Task) {
	sys.mu.Lock()
	t.runTime += sys.now() - t.lastDispatch
	t.status = Ready
	sys.proc.current = nil
	sys.mu.Unlock()
	swtch(&t.ctx, &sys.proc.idle)
}

// exit is the terminal path: Running -> Exited, then hand off to the
// idle control flow without parking. Never returns; the trampoline
// goroutine unwinds via Goexit.
func (sys *System) exit(t *Task, code int32) {
	sys.mu.Lock()
	t.runTime += sys.now() - t.lastDispatch
	t.status = Exited
	t.exitCode = code
	sys.proc.current = nil
	sys.mu.Unlock()
	logging.Logger.WithFields(logrus.Fields{"task": t.ID, "code": code}).Info("task exited")
	sys.proc.idle.resume <- true
	runtime.Goexit()
}
