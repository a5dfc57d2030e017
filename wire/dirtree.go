// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// DirTreeNode is the recursive directory-tree value produced by
// getdirtree and owned by whoever receives it — the client, after a
// successful RPC, is responsible for its own bookkeeping; there is no
// server-side counterpart to release (spec §3).
type DirTreeNode struct {
	Name    string
	Subdirs []*DirTreeNode
}

// dirTreeWorkItem is a stack frame for the explicit, non-recursive
// decode walk below.
type dirTreeWorkItem struct {
	node      *DirTreeNode
	remaining int
}

// EncodeDirTree serializes root depth-first preorder: num_subdirs (u32),
// name length (u64, a stand-in for a machine-word size_t), name bytes,
// then each child recursively — exactly the layout in spec §4.2.
//
// Native Go recursion is adequate here because the encode side always
// walks a tree the caller already holds in memory; the decode side
// below uses an explicit stack instead, per spec §9's guidance that a
// robust implementation should bound decode recursion depth.
func EncodeDirTree(root *DirTreeNode) []byte {
	buf := make([]byte, 0, 256)
	return appendDirTree(buf, root)
}

func appendDirTree(buf []byte, node *DirTreeNode) []byte {
	head := make([]byte, 4+8)
	e := NewEncoder(head)
	e.PutUint32(0, uint32(len(node.Subdirs)))
	e.PutUint64(4, uint64(len(node.Name)+1))
	buf = append(buf, head...)
	buf = append(buf, node.Name...)
	buf = append(buf, 0)
	for _, child := range node.Subdirs {
		buf = appendDirTree(buf, child)
	}
	return buf
}

// DecodeDirTree reverses EncodeDirTree. It tolerates arbitrary nesting
// depth up to available memory and does not detect cycles, since input
// trees are always finite by construction (spec §4.2, §9).
func DecodeDirTree(buf []byte) (*DirTreeNode, int, error) {
	root := &DirTreeNode{}
	stack := []dirTreeWorkItem{{node: root, remaining: -1}}
	off := 0

	d := NewDecoder(buf)
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.remaining == -1 {
			if off+4+8 > len(buf) {
				return nil, off, ErrProtocol
			}
			numSubdirs, next := d.GetUint32(off)
			nameLen, next := d.GetUint64(next)
			if nameLen == 0 || next+int(nameLen) > len(buf) {
				return nil, next, ErrProtocol
			}
			nameBytes, next := d.GetBytes(next, int(nameLen))
			off = next
			top.node.Name = string(nameBytes[:len(nameBytes)-1])
			top.node.Subdirs = make([]*DirTreeNode, 0, numSubdirs)
			top.remaining = int(numSubdirs)
			continue
		}
		if top.remaining == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		top.remaining--
		child := &DirTreeNode{}
		top.node.Subdirs = append(top.node.Subdirs, child)
		stack = append(stack, dirTreeWorkItem{node: child, remaining: -1})
	}

	return root, off, nil
}
