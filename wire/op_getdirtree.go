// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// EncodeGetdirtreeRequest marshals the getdirtree argument layout:
// pathlen u32, path[pathlen].
func EncodeGetdirtreeRequest(path string) []byte {
	buf := make([]byte, 4+len(path)+1)
	NewEncoder(buf).PutCString(0, path)
	return buf
}

// DecodeGetdirtreeRequest unmarshals the getdirtree argument layout.
func DecodeGetdirtreeRequest(payload []byte) (string, error) {
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

// EncodeGetdirtreeResponse marshals a getdirtree return value: the
// serialized tree, or a zero-length payload on failure.
//
// A zero-length response is the documented failure signal (spec §4.4,
// §9): the client must then propagate errno rather than read the
// payload as a tree.
func EncodeGetdirtreeResponse(root *DirTreeNode) []byte {
	if root == nil {
		return nil
	}
	return EncodeDirTree(root)
}

// DecodeGetdirtreeResponse unmarshals a getdirtree return value.
//
// When data is empty, it returns a freshly allocated, empty, childless
// node rather than nil — reproducing the documented anomaly in spec §9
// rather than silently fixing it: callers that expect a null on failure
// will not see one here either. Callers must still check the response
// errno to learn whether the call failed.
func DecodeGetdirtreeResponse(data []byte) (*DirTreeNode, error) {
	if len(data) == 0 {
		return &DirTreeNode{}, nil
	}
	node, _, err := DecodeDirTree(data)
	if err != nil {
		return nil, err
	}
	return node, nil
}
