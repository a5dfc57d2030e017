// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package connstats logs TCP connection diagnostics (round-trip time
// and its variance) at accept and close time. It never influences
// protocol behavior or return values — purely a logged side channel,
// tagged with the connection's conn_id.
//
// Implementation is platform-gated the same way internal/bo is: a real
// implementation on Linux (where github.com/mikioh/tcpinfo can read
// TCP_INFO), and a no-op everywhere else.
package connstats
