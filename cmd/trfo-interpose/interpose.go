// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command trfo-interpose builds as a C shared library (c-shared) that
// LD_PRELOADs ahead of libc, giving it first refusal on open, close,
// read, write, lseek, stat, unlink, getdirentries, getdirtree and
// freedirtree (spec §1, hard core item 1). Every exported symbol
// forwards to trfoclient, which decides whether the call is local or
// remote; a local fd-taking call falls back to the real libc
// implementation, looked up once through dlsym(RTLD_NEXT, ...) so this
// shim never recurses into itself.
package main

/*
#define _GNU_SOURCE
#include <sys/types.h>
#include <sys/stat.h>
#include <dirent.h>
#include <dlfcn.h>
#include <stdint.h>
#include <errno.h>
#include <unistd.h>

static void trfo_set_errno(int e) { errno = e; }

typedef int (*trfo_close_fn)(int);
typedef ssize_t (*trfo_read_fn)(int, void *, size_t);
typedef ssize_t (*trfo_write_fn)(int, const void *, size_t);
typedef off_t (*trfo_lseek_fn)(int, off_t, int);
typedef ssize_t (*trfo_getdirentries_fn)(int, char *, size_t, off_t *);

static trfo_close_fn real_close_fn;
static trfo_read_fn real_read_fn;
static trfo_write_fn real_write_fn;
static trfo_lseek_fn real_lseek_fn;
static trfo_getdirentries_fn real_getdirentries_fn;

static int trfo_real_close(int fd) {
    if (!real_close_fn) real_close_fn = (trfo_close_fn)dlsym(RTLD_NEXT, "close");
    if (!real_close_fn) { errno = ENOSYS; return -1; }
    return real_close_fn(fd);
}

static ssize_t trfo_real_read(int fd, void *buf, size_t count) {
    if (!real_read_fn) real_read_fn = (trfo_read_fn)dlsym(RTLD_NEXT, "read");
    if (!real_read_fn) { errno = ENOSYS; return -1; }
    return real_read_fn(fd, buf, count);
}

static ssize_t trfo_real_write(int fd, const void *buf, size_t count) {
    if (!real_write_fn) real_write_fn = (trfo_write_fn)dlsym(RTLD_NEXT, "write");
    if (!real_write_fn) { errno = ENOSYS; return -1; }
    return real_write_fn(fd, buf, count);
}

static off_t trfo_real_lseek(int fd, off_t offset, int whence) {
    if (!real_lseek_fn) real_lseek_fn = (trfo_lseek_fn)dlsym(RTLD_NEXT, "lseek");
    if (!real_lseek_fn) { errno = ENOSYS; return -1; }
    return real_lseek_fn(fd, offset, whence);
}

static ssize_t trfo_real_getdirentries(int fd, char *buf, size_t nbytes, off_t *basep) {
    if (!real_getdirentries_fn) real_getdirentries_fn = (trfo_getdirentries_fn)dlsym(RTLD_NEXT, "getdirentries");
    if (!real_getdirentries_fn) { errno = ENOSYS; return -1; }
    return real_getdirentries_fn(fd, buf, nbytes, basep);
}
*/
import "C"

import (
	"runtime/cgo"
	"syscall"
	"unsafe"

	"github.com/sirupsen/logrus"

	"code.hybscloud.com/trfo/trfoclient"
)

var log = logrus.StandardLogger()

func init() { log.SetLevel(logrus.WarnLevel) }

func setErrno(err error) {
	if errno, ok := err.(syscall.Errno); ok {
		C.trfo_set_errno(C.int(errno))
	}
}

// trfo_open is exported as the platform open(2) signature. open has no
// incoming descriptor to route on, so it is always remote (spec §4.5
// item 2) — no real local implementation is ever consulted here.
//
//export trfo_open
func trfo_open(path *C.char, flags C.int, mode C.mode_t) C.int {
	goPath := C.GoString(path)
	fd, err := trfoclient.Open(goPath, int(flags), uint32(mode))
	if err != nil || fd < 0 {
		if err == nil {
			setErrno(trfoclient.Errno())
		}
		return -1
	}
	return C.int(fd)
}

// trfo_close is exported as the platform close(2) signature.
//
//export trfo_close
func trfo_close(fd C.int) C.int {
	if !trfoclient.IsRemote(int(fd)) {
		return C.trfo_real_close(fd)
	}
	rc, err := trfoclient.Close(int(fd))
	if err != nil || rc < 0 {
		if err == nil {
			setErrno(trfoclient.Errno())
		}
		return -1
	}
	return C.int(rc)
}

// trfo_read is exported as the platform read(2) signature.
//
//export trfo_read
func trfo_read(fd C.int, buf unsafe.Pointer, count C.size_t) C.ssize_t {
	if !trfoclient.IsRemote(int(fd)) {
		return C.trfo_real_read(fd, buf, count)
	}
	data, n, err := trfoclient.Read(int(fd), int(count))
	if err != nil || n < 0 {
		if err == nil {
			setErrno(trfoclient.Errno())
		}
		return -1
	}
	if n > 0 {
		dst := unsafe.Slice((*byte)(buf), int(count))
		copy(dst, data[:n])
	}
	return C.ssize_t(n)
}

// trfo_write is exported as the platform write(2) signature.
//
//export trfo_write
func trfo_write(fd C.int, buf unsafe.Pointer, count C.size_t) C.ssize_t {
	if !trfoclient.IsRemote(int(fd)) {
		return C.trfo_real_write(fd, buf, count)
	}
	src := unsafe.Slice((*byte)(buf), int(count))
	data := make([]byte, len(src))
	copy(data, src)

	n, err := trfoclient.Write(int(fd), data)
	if err != nil || n < 0 {
		if err == nil {
			setErrno(trfoclient.Errno())
		}
		return -1
	}
	return C.ssize_t(n)
}

// trfo_lseek is exported as the platform lseek(2) signature.
//
//export trfo_lseek
func trfo_lseek(fd C.int, offset C.off_t, whence C.int) C.off_t {
	if !trfoclient.IsRemote(int(fd)) {
		return C.trfo_real_lseek(fd, offset, whence)
	}
	pos, err := trfoclient.Lseek(int(fd), int64(offset), int(whence))
	if err != nil || pos < 0 {
		if err == nil {
			setErrno(trfoclient.Errno())
		}
		return -1
	}
	return C.off_t(pos)
}

// trfo_xstat is exported as glibc's versioned __xstat(3) signature,
// the indirection behind the public stat(2) on the platform this
// shim targets. ver is forwarded on the wire but ignored server-side
// (spec §6). stat has no descriptor to route on, so it is always
// remote, same as open.
//
//export trfo_xstat
func trfo_xstat(ver C.int, path *C.char, buf *C.struct_stat) C.int {
	goPath := C.GoString(path)
	info, rc, err := trfoclient.Stat(int32(ver), goPath)
	if err != nil || rc < 0 {
		if err == nil {
			setErrno(trfoclient.Errno())
		}
		return -1
	}
	buf.st_dev = C.dev_t(info.Dev)
	buf.st_ino = C.ino_t(info.Ino)
	buf.st_mode = C.mode_t(info.Mode)
	buf.st_nlink = C.nlink_t(info.Nlink)
	buf.st_uid = C.uid_t(info.Uid)
	buf.st_gid = C.gid_t(info.Gid)
	buf.st_rdev = C.dev_t(info.Rdev)
	buf.st_size = C.off_t(info.Size)
	buf.st_blksize = C.blksize_t(info.Blksize)
	buf.st_blocks = C.blkcnt_t(info.Blocks)
	return C.int(rc)
}

// trfo_unlink is exported as the platform unlink(2) signature.
//
//export trfo_unlink
func trfo_unlink(path *C.char) C.int {
	goPath := C.GoString(path)
	rc, err := trfoclient.Unlink(goPath)
	if err != nil || rc < 0 {
		if err == nil {
			setErrno(trfoclient.Errno())
		}
		return -1
	}
	return C.int(rc)
}

// trfo_getdirentries is exported as the platform getdirentries(2)
// signature.
//
//export trfo_getdirentries
func trfo_getdirentries(fd C.int, buf unsafe.Pointer, nbytes C.size_t, basep *C.off_t) C.ssize_t {
	if !trfoclient.IsRemote(int(fd)) {
		return C.trfo_real_getdirentries(fd, (*C.char)(buf), nbytes, basep)
	}
	data, n, newBasep, err := trfoclient.Getdirentries(int(fd), int(nbytes), int64(*basep))
	if err != nil || n < 0 {
		if err == nil {
			setErrno(trfoclient.Errno())
		}
		return -1
	}
	*basep = C.off_t(newBasep)
	if n > 0 {
		dst := unsafe.Slice((*byte)(buf), int(nbytes))
		copy(dst, data)
	}
	return C.ssize_t(n)
}

// trfo_getdirtree is exported as the platform getdirtree(3) signature.
// The returned value is an opaque runtime/cgo.Handle, not a real
// pointer: the decoded *wire.DirTreeNode lives entirely on the Go
// heap, and the handle is what lets the Go runtime keep it alive
// across the cgo boundary until trfo_freedirtree releases it. A failed
// call still returns a handle to an empty node and copies the server's
// error into errno.
//
//export trfo_getdirtree
func trfo_getdirtree(path *C.char) C.uintptr_t {
	goPath := C.GoString(path)
	tree, err := trfoclient.Getdirtree(goPath)
	if err != nil {
		return 0
	}
	if tree.Name == "" {
		setErrno(trfoclient.Errno())
	}
	return C.uintptr_t(cgo.NewHandle(tree))
}

// trfo_freedirtree is exported as the platform freedirtree(3) signature.
// It never performs network I/O (spec §8 property 7): releasing the
// tree is pure Go-side bookkeeping, deleting the cgo.Handle entry.
//
//export trfo_freedirtree
func trfo_freedirtree(handle C.uintptr_t) {
	if handle == 0 {
		return
	}
	cgo.Handle(handle).Delete()
}

func main() {}
