// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvkern

// A taskContext is the resumption handle for one control flow:
// a goroutine parked on the resume channel. A fresh context is a
// trampoline goroutine blocked before its program's entry point;
// a live context is a goroutine blocked inside a previous swtch.
type taskContext struct {
	resume chan bool
}

func newContext() taskContext {
	return taskContext{resume: make(chan bool)}
}

// swtch suspends the calling control flow and resumes to.
// The statement after swtch executes only when some later switch
// targets from again. Callers must not hold sys.mu across swtch.
func swtch(from, to *taskContext) {
	to.resume <- true
	<-from.resume
}
