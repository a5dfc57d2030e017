// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fdspace implements the descriptor-namespace scheme from spec
// §4.7: a constant offset added to a file descriptor on the server
// before it is returned to the client, and subtracted on the server
// when a descriptor is received back. The client never allocates in
// this range; it only compares against it.
package fdspace

// Offset is FD_OFFSET: added to every descriptor the server returns
// from open, and subtracted from every descriptor a client sends back
// in a later call. Chosen larger than any descriptor a real process is
// expected to hold locally.
const Offset = 1000

// ToRemote translates a server-local descriptor into the value handed
// back to the client.
func ToRemote(fd int) int { return fd + Offset }

// ToLocal translates a client-supplied descriptor back into the
// server's own descriptor space.
func ToLocal(fd int) int { return fd - Offset }

// IsRemote reports whether fd is in the remote range: any descriptor at
// or above Offset. trfoclient does not call it; the client routes on its
// own watermark of the lowest descriptor a remote open has returned.
func IsRemote(fd int) bool { return fd >= Offset }
