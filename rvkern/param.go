// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvkern

/*
 * tunable variables
 */
const (
	NTASK       = 16      /* max number of tasks in the table */
	PageSize    = 4096    /* granularity of mapped regions */
	UserMemSize = 1 << 16 /* bytes of user memory per task */
	MaxSyscall  = 500     /* syscall ids reported by task_info */

	MinPriority     = 2  /* smallest priority set_priority accepts */
	DefaultPriority = 16 /* priority of a freshly loaded task */
)
