// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// EncodeCloseRequest marshals a close argument layout: fd i32.
func EncodeCloseRequest(fd int32) []byte {
	buf := make([]byte, 4)
	NewEncoder(buf).PutInt32(0, fd)
	return buf
}

// DecodeCloseRequest unmarshals a close argument layout.
func DecodeCloseRequest(payload []byte) (int32, error) {
	if len(payload) < 4 {
		return 0, ErrProtocol
	}
	fd, _ := NewDecoder(payload).GetInt32(0)
	return fd, nil
}

// EncodeCloseResponse marshals the close return value: rc i32.
func EncodeCloseResponse(rc int32) []byte {
	buf := make([]byte, 4)
	NewEncoder(buf).PutInt32(0, rc)
	return buf
}

// DecodeCloseResponse unmarshals the close return value.
func DecodeCloseResponse(data []byte) (int32, error) {
	if len(data) < 4 {
		return 0, ErrProtocol
	}
	rc, _ := NewDecoder(data).GetInt32(0)
	return rc, nil
}
