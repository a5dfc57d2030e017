// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import "testing"

// equalDirTree reports whether a and b have the same names, child
// counts, order, and depth — property 2 from spec §8.
func equalDirTree(a, b *DirTreeNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || len(a.Subdirs) != len(b.Subdirs) {
		return false
	}
	for i := range a.Subdirs {
		if !equalDirTree(a.Subdirs[i], b.Subdirs[i]) {
			return false
		}
	}
	return true
}

func TestDirTreeRoundTripFlat(t *testing.T) {
	root := &DirTreeNode{Name: "etc"}
	buf := EncodeDirTree(root)
	got, n, err := DecodeDirTree(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("consumed %d bytes, want %d", n, len(buf))
	}
	if !equalDirTree(got, root) {
		t.Fatalf("got %+v, want %+v", got, root)
	}
}

func TestDirTreeRoundTripNested(t *testing.T) {
	root := &DirTreeNode{
		Name: "etc",
		Subdirs: []*DirTreeNode{
			{Name: "cron.d"},
			{
				Name: "ssl",
				Subdirs: []*DirTreeNode{
					{Name: "certs"},
					{Name: "private"},
				},
			},
			{Name: "x11", Subdirs: []*DirTreeNode{{Name: "xorg.conf.d"}}},
		},
	}

	buf := EncodeDirTree(root)
	got, _, err := DecodeDirTree(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !equalDirTree(got, root) {
		t.Fatalf("got %+v, want %+v", got, root)
	}
}

func TestDirTreeRoundTripDeep(t *testing.T) {
	const depth = 200
	leaf := &DirTreeNode{Name: "leaf"}
	root := leaf
	for i := 0; i < depth; i++ {
		root = &DirTreeNode{Name: "d", Subdirs: []*DirTreeNode{root}}
	}

	buf := EncodeDirTree(root)
	got, _, err := DecodeDirTree(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !equalDirTree(got, root) {
		t.Fatalf("deep tree round-trip mismatch")
	}
}

func TestDirTreeEmptyResponseAnomaly(t *testing.T) {
	node, err := DecodeGetdirtreeResponse(nil)
	if err != nil {
		t.Fatalf("decode empty response: %v", err)
	}
	if node == nil {
		t.Fatal("expected a non-nil, empty node for a zero-size response (spec §9 anomaly)")
	}
	if node.Name != "" || len(node.Subdirs) != 0 {
		t.Fatalf("expected an empty node, got %+v", node)
	}
}
