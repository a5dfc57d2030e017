// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// GetdirentriesRequest is the argument layout for getdirentries: fd i32,
// basep i64, nbytes usize.
type GetdirentriesRequest struct {
	Fd     int32
	Basep  int64
	Nbytes uint64
}

// EncodeGetdirentriesRequest marshals a GetdirentriesRequest.
func EncodeGetdirentriesRequest(r GetdirentriesRequest) []byte {
	buf := make([]byte, 4+8+8)
	e := NewEncoder(buf)
	off := e.PutInt32(0, r.Fd)
	off = e.PutInt64(off, r.Basep)
	e.PutUint64(off, r.Nbytes)
	return buf
}

// DecodeGetdirentriesRequest unmarshals a GetdirentriesRequest.
func DecodeGetdirentriesRequest(payload []byte) (GetdirentriesRequest, error) {
	if len(payload) < 4+8+8 {
		return GetdirentriesRequest{}, ErrProtocol
	}
	d := NewDecoder(payload)
	fd, off := d.GetInt32(0)
	basep, off := d.GetInt64(off)
	nbytes, _ := d.GetUint64(off)
	return GetdirentriesRequest{Fd: fd, Basep: basep, Nbytes: nbytes}, nil
}

// EncodeGetdirentriesResponse marshals the getdirentries return value:
// n isize, new_basep i64; if n>0 then bytes[n].
func EncodeGetdirentriesResponse(n int64, newBasep int64, data []byte) []byte {
	buf := make([]byte, 8+8+len(data))
	e := NewEncoder(buf)
	off := e.PutInt64(0, n)
	off = e.PutInt64(off, newBasep)
	if n > 0 {
		e.PutBytes(off, data)
	}
	return buf
}

// DecodeGetdirentriesResponse unmarshals the getdirentries return value.
func DecodeGetdirentriesResponse(data []byte) (n int64, newBasep int64, payload []byte, err error) {
	if len(data) < 8+8 {
		return 0, 0, nil, ErrProtocol
	}
	d := NewDecoder(data)
	n, off := d.GetInt64(0)
	newBasep, off = d.GetInt64(off)
	if n > 0 {
		if off+int(n) > len(data) {
			return 0, 0, nil, ErrProtocol
		}
		payload, _ = d.GetBytes(off, int(n))
	}
	return n, newBasep, payload, nil
}
