//go:build linux

// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package connstats

import (
	"net"

	"github.com/mikioh/tcp"
	"github.com/mikioh/tcpinfo"
	"github.com/sirupsen/logrus"
)

// LogAccept logs RTT diagnostics for a freshly accepted TCP connection,
// tagged with connID for correlation with the rest of that connection's
// log lines. A non-TCP connection, or any failure reading TCP_INFO, is
// silently skipped — this is a best-effort diagnostic, never a
// correctness dependency.
func LogAccept(conn net.Conn, connID string, log *logrus.Logger) {
	logOnce(conn, connID, log, "accepted")
}

// LogClose logs the same diagnostics at connection close, so a reader
// can see how RTT moved over the connection's lifetime.
func LogClose(conn net.Conn, connID string, log *logrus.Logger) {
	logOnce(conn, connID, log, "closed")
}

func logOnce(conn net.Conn, connID string, log *logrus.Logger, event string) {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return
	}
	tc, err := tcp.NewConn(tcpConn)
	if err != nil {
		return
	}
	var o tcpinfo.Info
	var b [256]byte
	raw, err := tc.Option(o.Level(), o.Name(), b[:])
	if err != nil {
		return
	}
	info, ok := raw.(*tcpinfo.Info)
	if !ok {
		return
	}
	log.WithFields(logrus.Fields{
		"conn_id": connID,
		"event":   event,
		"rtt":     info.RTT,
		"rttvar":  info.RTTVar,
	}).Debug("tcp connection diagnostics")
}
