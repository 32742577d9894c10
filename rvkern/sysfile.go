// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvkern

/*
 * write system call. Only the console descriptors exist in this
 * kernel: fd 1 and fd 2 both reach the system console.
 */
func syswrite(t *Task) {
	fd := int64(t.Args[0])
	if fd != 1 && fd != 2 {
		t.Error = EBADF
		return
	}
	b := t.mem(t.Args[1], t.Args[2])
	if b == nil {
		return
	}
	n, err := t.Sys.Console.Write(b)
	if err != nil {
		t.Error = EIO
		return
	}
	t.ret = int64(n)
}
