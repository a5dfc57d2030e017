// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package trfoclient

import (
	"testing"

	"code.hybscloud.com/trfo/wire"
)

// TestConnectionLifecycleReconnectsAfterTransportFailure covers spec
// §8 property 6: the session transitions Disconnected -> Connected on
// demand, and a transport failure drops back to Disconnected so the
// next call reconnects rather than reusing a dead socket.
func TestConnectionLifecycleReconnectsAfterTransportFailure(t *testing.T) {
	opt, dialCount := newFakeServer(t, func(op wire.Opcode, payload []byte) wire.Response {
		return wire.Response{Errno: 0, Data: wire.EncodeOpenResponse(7)}
	})
	c := NewClient(opt, WithAddress("unused:0"))

	if c.state != disconnected {
		t.Fatalf("new client should start disconnected, got %v", c.state)
	}

	if _, err := c.Open("/a", 0, 0); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if c.state != connected {
		t.Fatalf("client should be connected after a successful call")
	}
	if *dialCount != 1 {
		t.Fatalf("expected exactly one dial, got %d", *dialCount)
	}

	// Simulate the server closing the connection out from under us. The
	// in-flight call that discovers this fails once (no mid-call retry,
	// per spec §5's single-synchronous-stub model); the call after it
	// finds the session Disconnected and reconnects.
	c.mu.Lock()
	c.conn.Close()
	c.mu.Unlock()

	if _, err := c.Open("/b", 0, 0); err == nil {
		t.Fatalf("Open on a dead connection should surface a transport error")
	}
	if c.state != disconnected {
		t.Fatalf("client should fall back to disconnected after a transport failure")
	}

	if _, err := c.Open("/c", 0, 0); err != nil {
		t.Fatalf("Open after reconnect: %v", err)
	}
	if *dialCount != 2 {
		t.Fatalf("expected a reconnect dial after transport failure, got %d dials", *dialCount)
	}
}

// TestDefaultClientIsSingleton covers the package-level default-Client
// convenience: repeated calls to theClient() return the same instance.
func TestDefaultClientIsSingleton(t *testing.T) {
	a := theClient()
	b := theClient()
	if a != b {
		t.Fatalf("theClient() should be a process-wide singleton")
	}
}
