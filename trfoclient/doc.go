// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package trfoclient implements the call-interposition layer's client
// side: functions with the platform signatures of open, close, read,
// write, lseek, stat, unlink, getdirentries, getdirtree, and
// freedirtree (spec §1, hard core item 1), deciding per call whether to
// forward to the local implementation or marshal an RPC to a
// trfoserver instance (spec §4.5).
//
// Package-level functions (Open, Close, ...) operate against a single
// lazily-initialized Client, the Go analogue of the original C
// library's process-global _sockfd/min_fd/opened_fd state (spec §3,
// "Client session state"). Construct a *Client directly with NewClient
// for tests or for a process that talks to more than one server.
//
// Errno mimics C's global errno: after any call whose return value
// signals failure, Errno() reports the error the server captured (spec
// §3's err_no restoration rule). It is never disturbed by a successful
// call.
package trfoclient
