// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// LseekRequest is the argument layout for lseek: fd i32, offset i64,
// whence i32.
type LseekRequest struct {
	Fd     int32
	Offset int64
	Whence int32
}

// EncodeLseekRequest marshals a LseekRequest.
func EncodeLseekRequest(r LseekRequest) []byte {
	buf := make([]byte, 4+8+4)
	e := NewEncoder(buf)
	off := e.PutInt32(0, r.Fd)
	off = e.PutInt64(off, r.Offset)
	e.PutInt32(off, r.Whence)
	return buf
}

// DecodeLseekRequest unmarshals a LseekRequest.
func DecodeLseekRequest(payload []byte) (LseekRequest, error) {
	if len(payload) < 4+8+4 {
		return LseekRequest{}, ErrProtocol
	}
	d := NewDecoder(payload)
	fd, off := d.GetInt32(0)
	offset, off := d.GetInt64(off)
	whence, _ := d.GetInt32(off)
	return LseekRequest{Fd: fd, Offset: offset, Whence: whence}, nil
}

// EncodeLseekResponse marshals the lseek return value: pos i64.
func EncodeLseekResponse(pos int64) []byte {
	buf := make([]byte, 8)
	NewEncoder(buf).PutInt64(0, pos)
	return buf
}

// DecodeLseekResponse unmarshals the lseek return value.
func DecodeLseekResponse(data []byte) (int64, error) {
	if len(data) < 8 {
		return 0, ErrProtocol
	}
	pos, _ := NewDecoder(data).GetInt64(0)
	return pos, nil
}
