// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvkern

import (
	"errors"
	"fmt"
)

const (
	EINVAL Errno = 1 + iota /* invalid argument */
	EFAULT                  /* bad address or length */
	EBADF                   /* bad file descriptor */
	EALIGN                  /* address not page-aligned */
	EACCES                  /* bad permission bits */
	EOVERLAP                /* region overlaps an existing mapping */
	ENOMAP                  /* range not fully mapped */
	ENOSYS                  /* unsupported syscall */
	EIO                     /* console write failed */
)

type Errno int8

func (e Errno) Error() string {
	if 0 <= e && int(e) < len(enames) && enames[e] != "" {
		return enames[e]
	}
	return fmt.Sprintf("Errno(%d)", int(e))
}

var enames = []string{
	"",
	"EINVAL",
	"EFAULT",
	"EBADF",
	"EALIGN",
	"EACCES",
	"EOVERLAP",
	"ENOMAP",
	"ENOSYS",
	"EIO",
}

// ErrNoReadyTask is returned by Run when no task is runnable:
// the batch has finished and there is no external source of new work.
var ErrNoReadyTask = errors.New("no ready task")
