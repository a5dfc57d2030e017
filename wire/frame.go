// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"code.hybscloud.com/trfo/internal/bo"
)

// sendChunk bounds a single underlying write, matching the teacher
// framer's internal buffer bound for short-write looping.
const sendChunk = 4096

// Frame is a request envelope: an opcode and its opcode-specific
// payload, as defined in spec §4.3.
type Frame struct {
	Opcode  Opcode
	Payload []byte
}

// EncodeFrame lays out [opcode u32][payload_size u32][payload] into a
// freshly allocated buffer.
func EncodeFrame(f Frame) []byte {
	buf := make([]byte, 8+len(f.Payload))
	e := NewEncoder(buf)
	off := e.PutUint32(0, uint32(f.Opcode))
	off = e.PutUint32(off, uint32(len(f.Payload)))
	e.PutBytes(off, f.Payload)
	return buf
}

// DecodeFrame reverses EncodeFrame. It fails with ErrProtocol if the
// declared payload size is non-positive or does not fit in buf.
func DecodeFrame(buf []byte) (Frame, error) {
	if len(buf) < 8 {
		return Frame{}, ErrProtocol
	}
	d := NewDecoder(buf)
	opcode, off := d.GetUint32(0)
	size, off := d.GetUint32(off)
	if int32(size) <= 0 {
		return Frame{}, ErrProtocol
	}
	if off+int(size) > len(buf) {
		return Frame{}, ErrProtocol
	}
	payload, _ := d.GetBytes(off, int(size))
	return Frame{Opcode: Opcode(opcode), Payload: payload}, nil
}

// Response is the server's reply envelope, as defined in spec §4.3.
type Response struct {
	Errno int32
	Data  []byte
}

// EncodeResponse lays out [err_no i32][size u32][data] into a freshly
// allocated buffer.
func EncodeResponse(r Response) []byte {
	buf := make([]byte, 8+len(r.Data))
	e := NewEncoder(buf)
	off := e.PutInt32(0, r.Errno)
	off = e.PutUint32(off, uint32(len(r.Data)))
	e.PutBytes(off, r.Data)
	return buf
}

// DecodeResponse reverses EncodeResponse. A zero-length data payload is
// valid here (getdirtree's documented failure signal uses it); DecodeResponse
// only rejects a size that does not fit in buf.
func DecodeResponse(buf []byte) (Response, error) {
	if len(buf) < 8 {
		return Response{}, ErrProtocol
	}
	d := NewDecoder(buf)
	errno, off := d.GetInt32(0)
	size, off := d.GetUint32(off)
	if off+int(size) > len(buf) {
		return Response{}, ErrProtocol
	}
	data, _ := d.GetBytes(off, int(size))
	return Response{Errno: errno, Data: data}, nil
}

// SendAll prepends a 4-byte host-native length prefix to b and writes
// the concatenation to w, looping on short writes in sendChunk-sized
// pieces until everything has been transferred.
//
// This is the Go realization of spec §4.1's send_all: the teacher
// framer's bounded-chunk write loop, minus the non-blocking retry
// machinery that has no role in this system's strictly synchronous
// client (spec §5 rules out internal concurrency on the client side).
func SendAll(w io.Writer, b []byte) error {
	header := make([]byte, 4)
	bo.Native().PutUint32(header, uint32(len(b)))

	if err := writeAll(w, header); err != nil {
		return err
	}
	return writeAll(w, b)
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		chunk := b
		if len(chunk) > sendChunk {
			chunk = chunk[:sendChunk]
		}
		n, err := w.Write(chunk)
		if n > 0 {
			b = b[n:]
		}
		if err != nil {
			return ErrTransport
		}
		if n == 0 {
			return ErrTransport
		}
	}
	return nil
}

// RecvFrame reads a 4-byte host-native length prefix from r followed by
// exactly that many bytes, and returns the payload.
//
// A clean close before any byte of a new message arrives is reported as
// io.EOF so a connection loop can distinguish "peer hung up between
// requests" (spec §4.6: "exits cleanly on peer close") from a genuine
// transport failure. Any other read error, or an EOF arriving mid-header
// or mid-payload, is ErrTransport. A non-positive declared length is
// ErrProtocol.
//
// This is the Go realization of spec §4.1's recv_frame: like the teacher
// framer's readStream, it reads the length prefix first (which may
// itself arrive split across multiple underlying reads) and then
// accumulates the payload into a freshly allocated buffer of exactly
// the declared size.
func RecvFrame(r io.Reader) ([]byte, error) {
	header := make([]byte, 4)
	n, err := readFull(r, header)
	if err != nil {
		if err == io.EOF && n == 0 {
			return nil, io.EOF
		}
		return nil, ErrTransport
	}
	length := int32(bo.Native().Uint32(header))
	if length <= 0 {
		return nil, ErrProtocol
	}

	payload := make([]byte, length)
	if _, err := readFull(r, payload); err != nil {
		return nil, ErrTransport
	}
	return payload, nil
}

// readFull reads exactly len(b) bytes from r, returning the number of
// bytes read and the terminal error (io.EOF included, unclassified —
// callers decide what EOF means at their call site).
func readFull(r io.Reader, b []byte) (int, error) {
	off := 0
	for off < len(b) {
		n, err := r.Read(b[off:])
		off += n
		if err != nil {
			return off, err
		}
	}
	return off, nil
}
