// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package trfoserver

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"code.hybscloud.com/trfo/wire"
)

func (h *connHandler) handleGetdirtree(payload []byte) wire.Response {
	path, err := wire.DecodeGetdirtreeRequest(payload)
	if err != nil {
		return wire.Response{Errno: int32(unix.EINVAL)}
	}
	root, err := walkDirTree(path)
	if err != nil {
		return errnoResponse(err)
	}
	return wire.Response{Data: wire.EncodeGetdirtreeResponse(root)}
}

// walkDirTree builds the recursive subdirectory tree rooted at path,
// matching spec §4.2's layout: only directories are recorded, in the
// order os.ReadDir yields them.
//
// Native recursion is fine on the encode side: the walk is bounded by
// the real filesystem's own directory depth, which os.ReadDir would
// already have choked on long before Go's goroutine stack grows
// unreasonably.
func walkDirTree(path string) (*wire.DirTreeNode, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if perr, ok := err.(*os.PathError); ok {
			return nil, perr.Err
		}
		return nil, err
	}

	node := &wire.DirTreeNode{Name: filepath.Base(path)}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		child, err := walkDirTree(filepath.Join(path, entry.Name()))
		if err != nil {
			continue
		}
		node.Subdirs = append(node.Subdirs, child)
	}
	return node, nil
}
