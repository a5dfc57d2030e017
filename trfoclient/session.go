// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package trfoclient

import (
	"net"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"

	"code.hybscloud.com/trfo/wire"
)

// noRemoteFD is the watermark's initial value: larger than any
// descriptor the server could ever return, so that every fd compares
// as "less than the watermark" — i.e. local — until the first
// successful remote open lowers it (spec §3, §4.5 item 1).
const noRemoteFD = 1<<31 - 1

// connState is the client connection's state machine from spec §4.8:
// Disconnected -> Connected -> Disconnected.
type connState int

const (
	disconnected connState = iota
	connected
)

// Client holds one process's remote-file-operation session: a cached
// connection, the remote-descriptor watermark, the open-descriptor
// count, and the last captured errno. All fields are guarded by one
// mutex — spec §5 notes this state is unsynchronized in the original
// single-threaded design and that "a single mutex around each stub
// suffices" for a multithreaded target.
type Client struct {
	mu sync.Mutex

	opts  options
	state connState
	conn  net.Conn

	minFD     int
	openCount int

	lastErrno syscall.Errno
}

// NewClient constructs a Client. The connection is not established
// until the first call that needs it (spec §3's lazy-connect lifecycle).
func NewClient(opts ...Option) *Client {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return &Client{
		opts:  o,
		state: disconnected,
		minFD: noRemoteFD,
	}
}

var (
	defaultClientOnce sync.Once
	defaultClient     *Client
)

// theClient returns the process-wide default Client used by the
// package-level Open/Close/... functions, constructing it on first use.
func theClient() *Client {
	defaultClientOnce.Do(func() {
		defaultClient = NewClient()
	})
	return defaultClient
}

// Errno reports the errno captured by the most recent failing call on
// the process-wide default Client — the package-level analogue of C's
// global errno (spec §3, §7).
func Errno() syscall.Errno { return theClient().Errno() }

// Errno reports the errno captured by the most recent call on c whose
// return value signaled failure. It is left untouched by successful
// calls.
func (c *Client) Errno() syscall.Errno {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErrno
}

func (c *Client) setErrno(e syscall.Errno) {
	c.mu.Lock()
	c.lastErrno = e
	c.mu.Unlock()
}

// isRemoteLocked reports whether fd should be routed to the server,
// per spec §4.5 item 1: any fd less than the watermark is local.
// Callers must hold c.mu.
func (c *Client) isRemoteLocked(fd int) bool {
	return fd >= c.minFD
}

// ensureConnectedLocked dials the server if the cached connection is
// closed, transitioning Disconnected -> Connected (spec §4.8). Callers
// must hold c.mu.
func (c *Client) ensureConnectedLocked() error {
	if c.state == connected && c.conn != nil {
		return nil
	}
	conn, err := c.opts.dial(c.opts.addr, c.opts.dialTimeout)
	if err != nil {
		c.opts.log.WithError(err).Warn("trfoclient: connect failed")
		return wire.ErrTransport
	}
	c.conn = conn
	c.state = connected
	return nil
}

// closeConnLocked tears down the cached connection and transitions back
// to Disconnected. Callers must hold c.mu.
func (c *Client) closeConnLocked() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = nil
	c.state = disconnected
}

// sendRequestLocked is the Go realization of spec §4.5's send_request: it
// ensures the cached connection is open, frames and sends the request,
// then reads and decodes the response. Callers must hold c.mu.
func (c *Client) sendRequestLocked(opcode wire.Opcode, payload []byte) (wire.Response, error) {
	if err := c.ensureConnectedLocked(); err != nil {
		return wire.Response{}, err
	}

	frame := wire.EncodeFrame(wire.Frame{Opcode: opcode, Payload: payload})
	if err := wire.SendAll(c.conn, frame); err != nil {
		c.closeConnLocked()
		return wire.Response{}, err
	}

	raw, err := wire.RecvFrame(c.conn)
	if err != nil {
		c.closeConnLocked()
		return wire.Response{}, wire.ErrTransport
	}

	resp, err := wire.DecodeResponse(raw)
	if err != nil {
		c.closeConnLocked()
		return wire.Response{}, err
	}
	return resp, nil
}

// callLogger is a small helper so call sites can log consistently
// without repeating the logrus field set.
func (c *Client) callLogger(op string) *logrus.Entry {
	return c.opts.log.WithField("op", op)
}
