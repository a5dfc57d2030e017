// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// WriteRequest is the argument layout for write: fd i32, count usize,
// bytes[count].
type WriteRequest struct {
	Fd    int32
	Count uint64
	Data  []byte
}

// EncodeWriteRequest marshals a WriteRequest.
func EncodeWriteRequest(r WriteRequest) []byte {
	buf := make([]byte, 4+8+len(r.Data))
	e := NewEncoder(buf)
	off := e.PutInt32(0, r.Fd)
	off = e.PutUint64(off, r.Count)
	e.PutBytes(off, r.Data)
	return buf
}

// DecodeWriteRequest unmarshals a WriteRequest.
func DecodeWriteRequest(payload []byte) (WriteRequest, error) {
	if len(payload) < 4+8 {
		return WriteRequest{}, ErrProtocol
	}
	d := NewDecoder(payload)
	fd, off := d.GetInt32(0)
	count, off := d.GetUint64(off)
	if off+int(count) > len(payload) {
		return WriteRequest{}, ErrProtocol
	}
	data, _ := d.GetBytes(off, int(count))
	return WriteRequest{Fd: fd, Count: count, Data: data}, nil
}

// EncodeWriteResponse marshals the write return value: n isize.
func EncodeWriteResponse(n int64) []byte {
	buf := make([]byte, 8)
	NewEncoder(buf).PutInt64(0, n)
	return buf
}

// DecodeWriteResponse unmarshals the write return value.
func DecodeWriteResponse(data []byte) (int64, error) {
	if len(data) < 8 {
		return 0, ErrProtocol
	}
	n, _ := NewDecoder(data).GetInt64(0)
	return n, nil
}
