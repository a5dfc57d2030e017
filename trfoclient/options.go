// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package trfoclient

import (
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"code.hybscloud.com/trfo/internal/config"
)

// options configures a Client. The functional-options pattern mirrors
// the teacher framer package's Options/Option pair.
type options struct {
	addr        string
	dialTimeout time.Duration
	log         *logrus.Logger
	dial        func(addr string, timeout time.Duration) (net.Conn, error)
}

func defaultOptions() options {
	cfg, err := config.Load()
	addr := cfg.Addr()
	if err != nil {
		addr = config.DefaultHost + ":" + config.DefaultPort
	}
	return options{
		addr:        addr,
		dialTimeout: 10 * time.Second,
		log:         logrus.StandardLogger(),
		dial: func(addr string, timeout time.Duration) (net.Conn, error) {
			return net.DialTimeout("tcp", addr, timeout)
		},
	}
}

// Option configures a Client constructed by NewClient.
type Option func(*options)

// WithAddress overrides the server address (host:port), bypassing
// spec §6's environment-variable configuration entirely.
func WithAddress(addr string) Option {
	return func(o *options) { o.addr = addr }
}

// WithDialTimeout bounds how long (re)connecting may block.
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) { o.dialTimeout = d }
}

// WithLogger overrides the logrus logger used for call tracing and
// transport/protocol failures.
func WithLogger(log *logrus.Logger) Option {
	return func(o *options) { o.log = log }
}

// withDialer overrides the dial function. Unexported: only tests need
// to substitute a net.Pipe-backed fake connection for a real dial.
func withDialer(dial func(addr string, timeout time.Duration) (net.Conn, error)) Option {
	return func(o *options) { o.dial = dial }
}
