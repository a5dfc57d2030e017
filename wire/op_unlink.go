// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// EncodeUnlinkRequest marshals the unlink argument layout: pathlen u32,
// path[pathlen].
func EncodeUnlinkRequest(path string) []byte {
	buf := make([]byte, 4+len(path)+1)
	NewEncoder(buf).PutCString(0, path)
	return buf
}

// DecodeUnlinkRequest unmarshals the unlink argument layout.
func DecodeUnlinkRequest(payload []byte) (string, error) {
	if len(payload) < 4 {
		return "", ErrProtocol
	}
	d := NewDecoder(payload)
	n, off := d.GetUint32(0)
	if n == 0 || off+int(n) > len(payload) {
		return "", ErrProtocol
	}
	raw, _ := d.GetBytes(off, int(n))
	return string(raw[:len(raw)-1]), nil
}

// EncodeUnlinkResponse marshals the unlink return value: rc i32.
func EncodeUnlinkResponse(rc int32) []byte {
	buf := make([]byte, 4)
	NewEncoder(buf).PutInt32(0, rc)
	return buf
}

// DecodeUnlinkResponse unmarshals the unlink return value.
func DecodeUnlinkResponse(data []byte) (int32, error) {
	if len(data) < 4 {
		return 0, ErrProtocol
	}
	rc, _ := NewDecoder(data).GetInt32(0)
	return rc, nil
}
