// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// ReadRequest is the argument layout for read: fd i32, count usize.
type ReadRequest struct {
	Fd    int32
	Count uint64
}

// EncodeReadRequest marshals a ReadRequest.
func EncodeReadRequest(r ReadRequest) []byte {
	buf := make([]byte, 4+8)
	e := NewEncoder(buf)
	off := e.PutInt32(0, r.Fd)
	e.PutUint64(off, r.Count)
	return buf
}

// DecodeReadRequest unmarshals a ReadRequest.
func DecodeReadRequest(payload []byte) (ReadRequest, error) {
	if len(payload) < 4+8 {
		return ReadRequest{}, ErrProtocol
	}
	d := NewDecoder(payload)
	fd, off := d.GetInt32(0)
	count, _ := d.GetUint64(off)
	return ReadRequest{Fd: fd, Count: count}, nil
}

// EncodeReadResponse marshals the read return value: n isize; if n>0
// then bytes[n].
func EncodeReadResponse(n int64, data []byte) []byte {
	buf := make([]byte, 8+len(data))
	e := NewEncoder(buf)
	off := e.PutInt64(0, n)
	if n > 0 {
		e.PutBytes(off, data)
	}
	return buf
}

// DecodeReadResponse unmarshals the read return value.
func DecodeReadResponse(data []byte) (n int64, payload []byte, err error) {
	if len(data) < 8 {
		return 0, nil, ErrProtocol
	}
	d := NewDecoder(data)
	n, off := d.GetInt64(0)
	if n > 0 {
		if off+int(n) > len(data) {
			return 0, nil, ErrProtocol
		}
		payload, _ = d.GetBytes(off, int(n))
	}
	return n, payload, nil
}
