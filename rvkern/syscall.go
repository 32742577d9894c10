// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvkern

import (
	"github.com/sirupsen/logrus"

	"rsc.io/rvos/internal/logging"
)

// Syscall is the gateway: the single entry point for every syscall
// the task makes. The invocation is recorded against the task before
// dispatch, unconditionally, so telemetry observes unsupported ids
// and failing calls too. Returns the handler's result, or the errno
// negated.
func (t *Task) Syscall(id uint32, a0, a1, a2 uint64) int64 {
	sys := t.Sys
	sys.mu.Lock()
	t.counts[id]++
	t.stamps[id] = sys.now()
	sys.mu.Unlock()

	ent, ok := sysent[id]
	if !ok {
		logging.Logger.WithFields(logrus.Fields{"task": t.ID, "id": id}).Trace("unsupported syscall")
		return -int64(ENOSYS)
	}

	t.Args = [3]uint64{a0, a1, a2}
	t.Error = 0
	t.ret = 0
	if logging.Logger.IsLevelEnabled(logrus.TraceLevel) {
		logging.Logger.WithFields(logrus.Fields{
			"task": t.ID, "sys": ent.name, "args": t.Args[:ent.args],
		}).Trace("syscall")
	}
	ent.impl(t)
	if t.Error != 0 {
		logging.Logger.WithFields(logrus.Fields{
			"task": t.ID, "sys": ent.name, "errno": t.Error.Error(),
		}).Trace("syscall failed")
		return -int64(t.Error)
	}
	return t.ret
}
