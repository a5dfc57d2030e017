// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// OpenRequest is the argument layout for the open operation: spec §4.4
// row "open" — flags u32, mode u16, pathlen u32, path[pathlen].
type OpenRequest struct {
	Flags uint32
	Mode  uint16
	Path  string
}

// EncodeOpenRequest marshals an OpenRequest.
func EncodeOpenRequest(r OpenRequest) []byte {
	buf := make([]byte, 4+2+4+len(r.Path)+1)
	e := NewEncoder(buf)
	off := e.PutUint32(0, r.Flags)
	off = e.PutUint16(off, r.Mode)
	e.PutCString(off, r.Path)
	return buf
}

// DecodeOpenRequest unmarshals an OpenRequest.
func DecodeOpenRequest(payload []byte) (OpenRequest, error) {
	if len(payload) < 4+2+4 {
		return OpenRequest{}, ErrProtocol
	}
	d := NewDecoder(payload)
	flags, off := d.GetUint32(0)
	mode, off := d.GetUint16(off)
	pathlen, off := d.GetUint32(off)
	if pathlen == 0 || off+int(pathlen) > len(payload) {
		return OpenRequest{}, ErrProtocol
	}
	raw, _ := d.GetBytes(off, int(pathlen))
	return OpenRequest{Flags: flags, Mode: mode, Path: string(raw[:len(raw)-1])}, nil
}

// EncodeOpenResponse marshals the open return value: fd i32 (already
// FD_OFFSET-translated by the server).
func EncodeOpenResponse(fd int32) []byte {
	buf := make([]byte, 4)
	NewEncoder(buf).PutInt32(0, fd)
	return buf
}

// DecodeOpenResponse unmarshals the open return value.
func DecodeOpenResponse(data []byte) (int32, error) {
	if len(data) < 4 {
		return 0, ErrProtocol
	}
	fd, _ := NewDecoder(data).GetInt32(0)
	return fd, nil
}
