// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package trfoclient

import (
	"syscall"

	"golang.org/x/sys/unix"

	"code.hybscloud.com/trfo/wire"
)

// errnoOf extracts the real syscall.Errno from a golang.org/x/sys/unix
// local-call failure, falling back to EIO for anything else.
func errnoOf(err error) syscall.Errno {
	if errno, ok := err.(unix.Errno); ok {
		return syscall.Errno(errno)
	}
	return syscall.EIO
}

// Open forwards to the server per spec §4.5 item 2: open has no
// incoming descriptor to route on, so it is always remote. On success
// the descriptor the server returns (already FD_OFFSET-translated,
// per spec §4.6/§4.7) is handed back to the caller unchanged and the
// watermark is lowered to admit it.
func Open(path string, flags int, mode uint32) (int, error) { return theClient().Open(path, flags, mode) }

func (c *Client) Open(path string, flags int, mode uint32) (int, error) {
	log := c.callLogger("open").WithField("path", path)

	c.mu.Lock()
	defer c.mu.Unlock()

	payload := wire.EncodeOpenRequest(wire.OpenRequest{
		Flags: uint32(flags),
		Mode:  uint16(mode),
		Path:  path,
	})
	resp, err := c.sendRequestLocked(wire.OpOpen, payload)
	if err != nil {
		log.WithError(err).Warn("open: request failed")
		return -1, err
	}
	if resp.Errno != 0 {
		c.lastErrno = syscall.Errno(resp.Errno)
		return -1, nil
	}

	remoteFD, err := wire.DecodeOpenResponse(resp.Data)
	if err != nil {
		return -1, err
	}

	fd := int(remoteFD)
	if fd < c.minFD {
		c.minFD = fd
	}
	c.openCount++
	return fd, nil
}

// Close routes fd to the server when it is remote (spec §4.5 item 3).
// A local fd is closed through the real local implementation and never
// generates a request (spec §4.5 item 1). A successful remote close that
// brings the open-descriptor count to zero also closes the cached
// connection; the next remote call reconnects.
func Close(fd int) (int, error) { return theClient().Close(fd) }

func (c *Client) Close(fd int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRemoteLocked(fd) {
		if err := unix.Close(fd); err != nil {
			c.lastErrno = errnoOf(err)
			return -1, nil
		}
		return 0, nil
	}

	resp, err := c.sendRequestLocked(wire.OpClose, wire.EncodeCloseRequest(int32(fd)))
	if err != nil {
		c.callLogger("close").WithError(err).Warn("close: request failed")
		return -1, err
	}
	if resp.Errno != 0 {
		c.lastErrno = syscall.Errno(resp.Errno)
		return -1, nil
	}

	rc, err := wire.DecodeCloseResponse(resp.Data)
	if err != nil {
		return -1, err
	}
	if c.openCount > 0 {
		c.openCount--
		if c.openCount == 0 {
			c.closeConnLocked()
		}
	}
	return int(rc), nil
}

// Read routes fd to the server when it is remote, per spec §4.5 item 1:
// a local fd is served by the real local read(2) and its result is
// returned verbatim, with no network traffic at all.
func Read(fd int, count int) ([]byte, int, error) { return theClient().Read(fd, count) }

func (c *Client) Read(fd int, count int) ([]byte, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRemoteLocked(fd) {
		buf := make([]byte, count)
		n, err := unix.Read(fd, buf)
		if err != nil {
			c.lastErrno = errnoOf(err)
			return nil, -1, nil
		}
		return buf[:n], n, nil
	}

	req := wire.ReadRequest{Fd: int32(fd), Count: uint64(count)}
	resp, err := c.sendRequestLocked(wire.OpRead, wire.EncodeReadRequest(req))
	if err != nil {
		c.callLogger("read").WithError(err).Warn("read: request failed")
		return nil, -1, err
	}
	if resp.Errno != 0 {
		c.lastErrno = syscall.Errno(resp.Errno)
		return nil, -1, nil
	}

	n, data, err := wire.DecodeReadResponse(resp.Data)
	if err != nil {
		return nil, -1, err
	}
	return data, int(n), nil
}

// Write routes fd to the server when it is remote, falling back to the
// real local write(2) otherwise (spec §4.5 item 1).
func Write(fd int, data []byte) (int, error) { return theClient().Write(fd, data) }

func (c *Client) Write(fd int, data []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRemoteLocked(fd) {
		n, err := unix.Write(fd, data)
		if err != nil {
			c.lastErrno = errnoOf(err)
			return -1, nil
		}
		return n, nil
	}

	req := wire.WriteRequest{Fd: int32(fd), Count: uint64(len(data)), Data: data}
	resp, err := c.sendRequestLocked(wire.OpWrite, wire.EncodeWriteRequest(req))
	if err != nil {
		c.callLogger("write").WithError(err).Warn("write: request failed")
		return -1, err
	}
	if resp.Errno != 0 {
		c.lastErrno = syscall.Errno(resp.Errno)
		return -1, nil
	}

	n, err := wire.DecodeWriteResponse(resp.Data)
	if err != nil {
		return -1, err
	}
	return int(n), nil
}

// Lseek routes fd to the server when it is remote. Per spec §4.5 item 5,
// lseek is special-cased: if no remote descriptor is currently open, it
// short-circuits with "bad file descriptor" without even attempting a
// local call or contacting the server. Otherwise a local fd falls back
// to the real local lseek(2) (item 1).
func Lseek(fd int, offset int64, whence int) (int64, error) {
	return theClient().Lseek(fd, offset, whence)
}

func (c *Client) Lseek(fd int, offset int64, whence int) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.openCount == 0 {
		c.lastErrno = syscall.EBADF
		return -1, nil
	}
	if !c.isRemoteLocked(fd) {
		pos, err := unix.Seek(fd, offset, whence)
		if err != nil {
			c.lastErrno = errnoOf(err)
			return -1, nil
		}
		return pos, nil
	}

	req := wire.LseekRequest{Fd: int32(fd), Offset: offset, Whence: int32(whence)}
	resp, err := c.sendRequestLocked(wire.OpLseek, wire.EncodeLseekRequest(req))
	if err != nil {
		c.callLogger("lseek").WithError(err).Warn("lseek: request failed")
		return -1, err
	}
	if resp.Errno != 0 {
		c.lastErrno = syscall.Errno(resp.Errno)
		return -1, nil
	}

	pos, err := wire.DecodeLseekResponse(resp.Data)
	if err != nil {
		return -1, err
	}
	return pos, nil
}

// Stat forwards path to the server unconditionally — there is no
// descriptor to route on, so every Stat call is remote (spec §4.5
// item 5). ver is carried on the wire for layout fidelity but the
// server ignores it (spec §6).
func Stat(ver int32, path string) (wire.StatInfo, int, error) { return theClient().Stat(ver, path) }

func (c *Client) Stat(ver int32, path string) (wire.StatInfo, int, error) {
	log := c.callLogger("stat").WithField("path", path)

	c.mu.Lock()
	defer c.mu.Unlock()

	req := wire.StatRequest{Ver: ver, Path: path}
	resp, err := c.sendRequestLocked(wire.OpStat, wire.EncodeStatRequest(req))
	if err != nil {
		log.WithError(err).Warn("stat: request failed")
		return wire.StatInfo{}, -1, err
	}
	if resp.Errno != 0 {
		c.lastErrno = syscall.Errno(resp.Errno)
		return wire.StatInfo{}, -1, nil
	}

	rc, info, err := wire.DecodeStatResponse(resp.Data)
	if err != nil {
		return wire.StatInfo{}, -1, err
	}
	return info, int(rc), nil
}

// Unlink forwards path to the server unconditionally, per spec §4.5
// item 5.
func Unlink(path string) (int, error) { return theClient().Unlink(path) }

func (c *Client) Unlink(path string) (int, error) {
	log := c.callLogger("unlink").WithField("path", path)

	c.mu.Lock()
	defer c.mu.Unlock()

	resp, err := c.sendRequestLocked(wire.OpUnlink, wire.EncodeUnlinkRequest(path))
	if err != nil {
		log.WithError(err).Warn("unlink: request failed")
		return -1, err
	}
	if resp.Errno != 0 {
		c.lastErrno = syscall.Errno(resp.Errno)
		return -1, nil
	}

	rc, err := wire.DecodeUnlinkResponse(resp.Data)
	if err != nil {
		return -1, err
	}
	return int(rc), nil
}

// Getdirentries routes fd to the server when it is remote. Per spec
// §4.5 item 5 it shares lseek's no-remote-descriptors short-circuit;
// otherwise a local fd falls back to the real local getdirentries(2)
// (item 1). basep is both an input (the directory-stream cookie) and
// an output (the updated cookie), matching the platform signature.
func Getdirentries(fd int, nbytes int, basep int64) ([]byte, int64, int64, error) {
	return theClient().Getdirentries(fd, nbytes, basep)
}

func (c *Client) Getdirentries(fd int, nbytes int, basep int64) ([]byte, int64, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.openCount == 0 {
		c.lastErrno = syscall.EBADF
		return nil, -1, basep, nil
	}
	if !c.isRemoteLocked(fd) {
		buf := make([]byte, nbytes)
		n, err := unix.Getdents(fd, buf)
		if err != nil {
			c.lastErrno = errnoOf(err)
			return nil, -1, basep, nil
		}
		return buf[:n], int64(n), basep, nil
	}

	req := wire.GetdirentriesRequest{Fd: int32(fd), Basep: basep, Nbytes: uint64(nbytes)}
	resp, err := c.sendRequestLocked(wire.OpGetdirentries, wire.EncodeGetdirentriesRequest(req))
	if err != nil {
		c.callLogger("getdirentries").WithError(err).Warn("getdirentries: request failed")
		return nil, -1, basep, err
	}
	if resp.Errno != 0 {
		c.lastErrno = syscall.Errno(resp.Errno)
		return nil, -1, basep, nil
	}

	n, newBasep, data, err := wire.DecodeGetdirentriesResponse(resp.Data)
	if err != nil {
		return nil, -1, basep, err
	}
	return data, n, newBasep, nil
}

// Getdirtree forwards path to the server unconditionally, per spec
// §4.5 item 6, and decodes the full recursive subtree in one round
// trip.
//
// When the server reports a failure, Getdirtree still returns a
// non-nil, empty, childless node (not nil) and a nil error; Errno()
// then holds the server's error. A caller must not treat a non-nil
// result as success.
func Getdirtree(path string) (*wire.DirTreeNode, error) { return theClient().Getdirtree(path) }

func (c *Client) Getdirtree(path string) (*wire.DirTreeNode, error) {
	log := c.callLogger("getdirtree").WithField("path", path)

	c.mu.Lock()
	defer c.mu.Unlock()

	resp, err := c.sendRequestLocked(wire.OpGetdirtree, wire.EncodeGetdirtreeRequest(path))
	if err != nil {
		log.WithError(err).Warn("getdirtree: request failed")
		return nil, err
	}
	if resp.Errno != 0 {
		c.lastErrno = syscall.Errno(resp.Errno)
		return &wire.DirTreeNode{}, nil
	}

	root, err := wire.DecodeGetdirtreeResponse(resp.Data)
	if err != nil {
		return nil, err
	}
	return root, nil
}

// FreeDirTree releases a tree returned by Getdirtree. It never makes a
// network call: the whole point of decoding into plain Go values is
// that the garbage collector already owns the memory (spec §4.5 item 6,
// §8 property 7). It exists only so callers translating the original
// open/close-style API have a symmetric call to make.
func FreeDirTree(*wire.DirTreeNode) {}

// IsRemote reports whether fd would be routed to the server by the
// process-wide default Client. The cgo interposition shim uses this to
// decide, before ever calling into trfoclient, whether a local fd
// needs the real libc passthrough instead.
func IsRemote(fd int) bool { return theClient().IsRemote(fd) }

// IsRemote reports whether fd would be routed to the server by c.
func (c *Client) IsRemote(fd int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isRemoteLocked(fd)
}
