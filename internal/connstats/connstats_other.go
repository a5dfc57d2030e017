//go:build !linux

// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package connstats

import (
	"net"

	"github.com/sirupsen/logrus"
)

// LogAccept is a no-op outside Linux: TCP_INFO is not portable.
func LogAccept(conn net.Conn, connID string, log *logrus.Logger) {}

// LogClose is a no-op outside Linux: TCP_INFO is not portable.
func LogClose(conn net.Conn, connID string, log *logrus.Logger) {}
