// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"testing"
)

// oneByteReader forces every underlying Read to return at most one
// byte, the way the teacher's stream_read_coverage_test.go exercises
// readStream against pathological chunk boundaries.
type oneByteReader struct {
	r io.Reader
}

func (o *oneByteReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return o.r.Read(p[:1])
}

// TestRecvFrameChunkBoundaries is property 3 from spec §8: RecvFrame
// correctly reassembles a payload delivered across arbitrary chunk
// boundaries.
func TestRecvFrameChunkBoundaries(t *testing.T) {
	payload := []byte("hello over the wire")
	wire := EncodeFrameBytesForTest(payload)

	cases := []struct {
		name string
		r    io.Reader
	}{
		{"whole", bytes.NewReader(wire)},
		{"one-byte-at-a-time", &oneByteReader{r: bytes.NewReader(wire)}},
		{"split-at-length-prefix", io.MultiReader(bytes.NewReader(wire[:2]), bytes.NewReader(wire[2:]))},
		{"split-mid-payload", io.MultiReader(bytes.NewReader(wire[:4+3]), bytes.NewReader(wire[4+3:]))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RecvFrame(tc.r)
			if err != nil {
				t.Fatalf("RecvFrame: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Fatalf("got %q, want %q", got, payload)
			}
		})
	}
}

// EncodeFrameBytesForTest builds a raw length-prefixed transmission the
// way SendAll would, without going through an io.Writer, so tests can
// feed arbitrarily chunked readers.
func EncodeFrameBytesForTest(payload []byte) []byte {
	header := make([]byte, 4)
	NewEncoder(header).PutUint32(0, uint32(len(payload)))
	return append(header, payload...)
}

func TestSendAllRecvFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := bytes.Repeat([]byte{'x'}, 70000) // exceeds one sendChunk
	if err := SendAll(&buf, payload); err != nil {
		t.Fatalf("SendAll: %v", err)
	}
	got, err := RecvFrame(&buf)
	if err != nil {
		t.Fatalf("RecvFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round-trip mismatch, got %d bytes want %d", len(got), len(payload))
	}
}

func TestRecvFrameRejectsNonPositiveLength(t *testing.T) {
	header := make([]byte, 4)
	NewEncoder(header).PutInt32(0, 0)
	if _, err := RecvFrame(bytes.NewReader(header)); err != ErrProtocol {
		t.Fatalf("got %v, want ErrProtocol", err)
	}
}

func TestRecvFrameCleanEOFAtBoundary(t *testing.T) {
	if _, err := RecvFrame(bytes.NewReader(nil)); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestRecvFrameTruncatedMidHeaderIsTransportError(t *testing.T) {
	if _, err := RecvFrame(bytes.NewReader([]byte{1, 2})); err != ErrTransport {
		t.Fatalf("got %v, want ErrTransport", err)
	}
}

func TestFrameEnvelopeRoundTrip(t *testing.T) {
	f := Frame{Opcode: OpRead, Payload: []byte{1, 2, 3, 4}}
	got, err := DecodeFrame(EncodeFrame(f))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Opcode != f.Opcode || !bytes.Equal(got.Payload, f.Payload) {
		t.Fatalf("got %+v, want %+v", got, f)
	}
}

func TestResponseEnvelopeRoundTrip(t *testing.T) {
	r := Response{Errno: 2, Data: []byte("ENOENT")}
	got, err := DecodeResponse(EncodeResponse(r))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Errno != r.Errno || !bytes.Equal(got.Data, r.Data) {
		t.Fatalf("got %+v, want %+v", got, r)
	}
}

func TestResponseEnvelopeAllowsEmptyData(t *testing.T) {
	got, err := DecodeResponse(EncodeResponse(Response{Errno: 0, Data: nil}))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Data) != 0 {
		t.Fatalf("expected empty data, got %v", got.Data)
	}
}
