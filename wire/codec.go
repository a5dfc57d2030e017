// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wire implements the on-the-wire protocol shared by the client
// stubs and the server dispatcher: frame and response envelopes, the
// per-operation argument/return marshallers, and the recursive directory
// tree encoding.
//
// Every integer on the wire uses the host's native byte order (see
// internal/bo), not a fixed network order. This ties a client and server
// pair to machines of the same architecture and word size — a known
// sharp edge inherited from the system this protocol was modeled on, and
// preserved intentionally rather than silently fixed.
package wire

import "code.hybscloud.com/trfo/internal/bo"

// Encoder writes primitive values into a caller-owned buffer at
// increasing offsets, returning the next offset after each write. It
// never reallocates; callers size buf up front.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an Encoder that writes into buf.
func NewEncoder(buf []byte) *Encoder { return &Encoder{buf: buf} }

// Bytes returns the underlying buffer.
func (e *Encoder) Bytes() []byte { return e.buf }

// PutUint16 writes v at off and returns the next offset.
func (e *Encoder) PutUint16(off int, v uint16) int {
	bo.Native().PutUint16(e.buf[off:off+2], v)
	return off + 2
}

// PutUint32 writes v at off and returns the next offset.
func (e *Encoder) PutUint32(off int, v uint32) int {
	bo.Native().PutUint32(e.buf[off:off+4], v)
	return off + 4
}

// PutUint64 writes v at off and returns the next offset.
func (e *Encoder) PutUint64(off int, v uint64) int {
	bo.Native().PutUint64(e.buf[off:off+8], v)
	return off + 8
}

// PutInt32 writes v at off and returns the next offset.
func (e *Encoder) PutInt32(off int, v int32) int { return e.PutUint32(off, uint32(v)) }

// PutInt64 writes v at off and returns the next offset.
func (e *Encoder) PutInt64(off int, v int64) int { return e.PutUint64(off, uint64(v)) }

// PutBytes copies b into the buffer at off and returns the next offset.
func (e *Encoder) PutBytes(off int, b []byte) int {
	copy(e.buf[off:off+len(b)], b)
	return off + len(b)
}

// PutCString writes a NUL-terminated path string as a 4-byte length
// prefix (length includes the terminating NUL) followed by the bytes
// including that NUL, and returns the next offset.
func (e *Encoder) PutCString(off int, s string) int {
	off = e.PutUint32(off, uint32(len(s)+1))
	off = e.PutBytes(off, []byte(s))
	e.buf[off] = 0
	return off + 1
}

// Decoder reads primitive values out of a caller-owned buffer at
// increasing offsets, returning the next offset after each read.
type Decoder struct {
	buf []byte
}

// NewDecoder returns a Decoder reading from buf.
func NewDecoder(buf []byte) *Decoder { return &Decoder{buf: buf} }

// Len reports the size of the underlying buffer.
func (d *Decoder) Len() int { return len(d.buf) }

// GetUint16 reads a uint16 at off and returns (value, next offset).
func (d *Decoder) GetUint16(off int) (uint16, int) {
	return bo.Native().Uint16(d.buf[off : off+2]), off + 2
}

// GetUint32 reads a uint32 at off and returns (value, next offset).
func (d *Decoder) GetUint32(off int) (uint32, int) {
	return bo.Native().Uint32(d.buf[off : off+4]), off + 4
}

// GetUint64 reads a uint64 at off and returns (value, next offset).
func (d *Decoder) GetUint64(off int) (uint64, int) {
	return bo.Native().Uint64(d.buf[off : off+8]), off + 8
}

// GetInt32 reads an int32 at off and returns (value, next offset).
func (d *Decoder) GetInt32(off int) (int32, int) {
	v, next := d.GetUint32(off)
	return int32(v), next
}

// GetInt64 reads an int64 at off and returns (value, next offset).
func (d *Decoder) GetInt64(off int) (int64, int) {
	v, next := d.GetUint64(off)
	return int64(v), next
}

// GetBytes reads n bytes at off and returns (slice, next offset). The
// returned slice aliases the Decoder's buffer; callers that retain it
// past the lifetime of the buffer must copy it.
func (d *Decoder) GetBytes(off, n int) ([]byte, int) {
	return d.buf[off : off+n], off + n
}

// GetCString reads a length-prefixed string (length includes the
// terminating NUL) at off and returns (string without the NUL, next
// offset).
func (d *Decoder) GetCString(off int) (string, int) {
	n, off := d.GetUint32(off)
	b, off := d.GetBytes(off, int(n))
	if n > 0 {
		b = b[:len(b)-1] // drop the terminating NUL
	}
	return string(b), off
}
