// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package trfoclient

import (
	"net"
	"testing"
	"time"

	"code.hybscloud.com/trfo/wire"
)

// fakeHandler answers one decoded request frame with a response.
type fakeHandler func(op wire.Opcode, payload []byte) wire.Response

// newFakeServer starts a goroutine that serves exactly one net.Pipe
// connection per dial call, answering every frame with handle. It
// returns an Option that plugs the fake dialer into a Client and a
// dialCount pointer tracking how many times dial was invoked (to
// assert reconnect behavior).
func newFakeServer(t *testing.T, handle fakeHandler) (Option, *int) {
	t.Helper()
	dialCount := new(int)

	dial := func(addr string, timeout time.Duration) (net.Conn, error) {
		*dialCount++
		client, server := net.Pipe()
		go serveOnce(t, server, handle)
		return client, nil
	}
	return withDialer(dial), dialCount
}

func serveOnce(t *testing.T, conn net.Conn, handle fakeHandler) {
	defer conn.Close()
	for {
		raw, err := wire.RecvFrame(conn)
		if err != nil {
			return
		}
		frame, err := wire.DecodeFrame(raw)
		if err != nil {
			return
		}
		resp := handle(frame.Opcode, frame.Payload)
		if err := wire.SendAll(conn, wire.EncodeResponse(resp)); err != nil {
			return
		}
	}
}
