// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package trfoclient

import (
	"testing"

	"code.hybscloud.com/trfo/wire"
)

// TestLocalDescriptorsNeverReachTheNetwork covers spec §8 property 4:
// a descriptor below the watermark (i.e. never returned by a remote
// Open) must not generate any request at all — it is served by the
// real local implementation instead.
func TestLocalDescriptorsNeverReachTheNetwork(t *testing.T) {
	called := false
	opt, _ := newFakeServer(t, func(op wire.Opcode, payload []byte) wire.Response {
		called = true
		return wire.Response{Errno: 0, Data: wire.EncodeCloseResponse(0)}
	})
	c := NewClient(opt, WithAddress("unused:0"))

	if _, err := c.Close(3); err != nil {
		t.Fatalf("Close on a local fd: %v", err)
	}
	if called {
		t.Fatalf("a local descriptor must never be forwarded to the server")
	}
}

// TestOpenLowersWatermarkIntoRemoteNamespace covers spec §8 property 4
// from the other direction: once Open returns a descriptor, operations
// against it must be recognized as remote and reach the server, with
// the wire-level fd passed through unchanged in both directions (spec
// §4.6/§4.7: the server owns the FD_OFFSET add/subtract, not the
// client).
func TestOpenLowersWatermarkIntoRemoteNamespace(t *testing.T) {
	const remoteFD = int32(1005)
	var sawFD int32 = -1

	opt, _ := newFakeServer(t, func(op wire.Opcode, payload []byte) wire.Response {
		switch op {
		case wire.OpOpen:
			return wire.Response{Data: wire.EncodeOpenResponse(remoteFD)}
		case wire.OpClose:
			fd, _ := wire.DecodeCloseRequest(payload)
			sawFD = fd
			return wire.Response{Data: wire.EncodeCloseResponse(0)}
		}
		return wire.Response{Errno: int32(22)}
	})
	c := NewClient(opt, WithAddress("unused:0"))

	local, err := c.Open("/a", 0, 0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if local != int(remoteFD) {
		t.Fatalf("Open returned %d, want the server's fd %d unchanged", local, remoteFD)
	}
	if !c.IsRemote(local) {
		t.Fatalf("descriptor returned by Open must be recognized as remote")
	}

	if _, err := c.Close(local); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if sawFD != remoteFD {
		t.Fatalf("server observed fd %d, want the unchanged remote fd %d", sawFD, remoteFD)
	}
}
