// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package trfoserver implements the call-interposition layer's server
// side (spec §1, hard core item 2): it accepts byte-stream connections,
// decodes request frames, performs the real POSIX operation against its
// own filesystem via golang.org/x/sys/unix, and replies with a response
// frame carrying the result or the errno the syscall produced.
//
// Each accepted connection is served by its own goroutine
// (handleConn). The original single-process implementation forks a
// child per connection; Go's runtime already multiplexes blocking
// syscalls across goroutines without the cost or portability problems
// of a real fork, so a goroutine is this system's idiomatic
// equivalent (spec §4.6).
package trfoserver
