// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package trfoserver

import (
	"net"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"code.hybscloud.com/trfo/internal/connstats"
)

// Server accepts connections and serves request frames against the
// local filesystem on behalf of each one, per spec §4.6.
type Server struct {
	log *logrus.Logger
}

// NewServer constructs a Server. A nil logger falls back to logrus's
// standard logger.
func NewServer(log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{log: log}
}

// Serve accepts connections from ln until it returns an error (for
// example, because the listener was closed), serving each one on its
// own goroutine. It never returns nil.
func (s *Server) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go s.handleConn(conn)
	}
}

// handleConn serves one connection until the peer closes it or a
// transport/protocol error makes the stream unrecoverable, per spec
// §4.6: "reads frames in a loop ... exits cleanly on peer close".
func (s *Server) handleConn(conn net.Conn) {
	connID := uuid.NewString()
	log := s.log.WithField("conn_id", connID)

	defer conn.Close()
	defer connstats.LogClose(conn, connID, s.log)
	connstats.LogAccept(conn, connID, s.log)
	log.Info("connection accepted")

	h := newConnHandler(conn, log)
	if err := h.loop(); err != nil {
		log.WithError(err).Warn("connection terminated")
		return
	}
	log.Info("connection closed by peer")
}
