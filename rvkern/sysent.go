// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvkern

// Syscall identifiers (RISC-V Linux numbering where one exists).
const (
	SYS_write       uint32 = 64
	SYS_exit        uint32 = 93
	SYS_yield       uint32 = 124
	SYS_setpriority uint32 = 140
	SYS_gettime     uint32 = 169
	SYS_munmap      uint32 = 215
	SYS_mmap        uint32 = 222
	SYS_taskinfo    uint32 = 410
)

type sysentry struct {
	args int
	name string
	impl func(*Task)
}

var sysent = map[uint32]sysentry{
	SYS_write:       {3, "write", syswrite},
	SYS_exit:        {1, "exit", sysexit},
	SYS_yield:       {0, "yield", sysyield},
	SYS_setpriority: {1, "set_priority", syssetpriority},
	SYS_gettime:     {2, "get_time", sysgettime},
	SYS_munmap:      {2, "munmap", sysmunmap},
	SYS_mmap:        {3, "mmap", sysmmap},
	SYS_taskinfo:    {1, "task_info", systaskinfo},
}
