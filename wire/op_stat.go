// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// StatRequest is the argument layout for stat: spec §4.4 row "stat" —
// ver i32, pathlen usize, path[pathlen]. ver mirrors the versioned
// __xstat ABI the original client library called through glibc; this
// server has no such ABI and ignores it, but the field stays on the
// wire so the byte layout matches the original exactly (see SPEC_FULL.md
// §6).
type StatRequest struct {
	Ver  int32
	Path string
}

// EncodeStatRequest marshals a StatRequest. Note pathlen here is a
// native word (uint64), unlike open/unlink/getdirtree's u32 pathlen —
// the table in spec §4.4 specifies this distinction for stat
// specifically, and it is preserved rather than unified.
func EncodeStatRequest(r StatRequest) []byte {
	buf := make([]byte, 4+8+len(r.Path)+1)
	e := NewEncoder(buf)
	off := e.PutInt32(0, r.Ver)
	off = e.PutUint64(off, uint64(len(r.Path)+1))
	off = e.PutBytes(off, []byte(r.Path))
	buf[off] = 0
	return buf
}

// DecodeStatRequest unmarshals a StatRequest.
func DecodeStatRequest(payload []byte) (StatRequest, error) {
	if len(payload) < 4+8 {
		return StatRequest{}, ErrProtocol
	}
	d := NewDecoder(payload)
	ver, off := d.GetInt32(0)
	pathlen, off := d.GetUint64(off)
	if pathlen == 0 || off+int(pathlen) > len(payload) {
		return StatRequest{}, ErrProtocol
	}
	raw, _ := d.GetBytes(off, int(pathlen))
	return StatRequest{Ver: ver, Path: string(raw[:len(raw)-1])}, nil
}

// StatInfo is the fixed-layout subset of struct stat carried on the
// wire: enough for callers to answer size/mode/time questions without
// tying the protocol to one platform's exact struct stat layout.
type StatInfo struct {
	Dev       uint64
	Ino       uint64
	Mode      uint32
	Nlink     uint64
	Uid       uint32
	Gid       uint32
	Rdev      uint64
	Size      int64
	Blksize   int64
	Blocks    int64
	Atime     int64
	AtimeNsec int64
	Mtime     int64
	MtimeNsec int64
	Ctime     int64
	CtimeNsec int64
}

const statInfoWireSize = 116

// EncodeStatResponse marshals the stat return value: rc i32; if rc>=0
// then the StatInfo fields in StatInfo declaration order.
func EncodeStatResponse(rc int32, info StatInfo) []byte {
	size := 4
	if rc >= 0 {
		size += statInfoWireSize
	}
	buf := make([]byte, size)
	e := NewEncoder(buf)
	off := e.PutInt32(0, rc)
	if rc < 0 {
		return buf
	}
	off = e.PutUint64(off, info.Dev)
	off = e.PutUint64(off, info.Ino)
	off = e.PutUint32(off, info.Mode)
	off = e.PutUint64(off, info.Nlink)
	off = e.PutUint32(off, info.Uid)
	off = e.PutUint32(off, info.Gid)
	off = e.PutUint64(off, info.Rdev)
	off = e.PutInt64(off, info.Size)
	off = e.PutInt64(off, info.Blksize)
	off = e.PutInt64(off, info.Blocks)
	off = e.PutInt64(off, info.Atime)
	off = e.PutInt64(off, info.AtimeNsec)
	off = e.PutInt64(off, info.Mtime)
	off = e.PutInt64(off, info.MtimeNsec)
	off = e.PutInt64(off, info.Ctime)
	e.PutInt64(off, info.CtimeNsec)
	return buf
}

// DecodeStatResponse unmarshals the stat return value.
func DecodeStatResponse(data []byte) (rc int32, info StatInfo, err error) {
	if len(data) < 4 {
		return 0, StatInfo{}, ErrProtocol
	}
	d := NewDecoder(data)
	rc, off := d.GetInt32(0)
	if rc < 0 {
		return rc, StatInfo{}, nil
	}
	if len(data) < 4+statInfoWireSize {
		return 0, StatInfo{}, ErrProtocol
	}
	info.Dev, off = d.GetUint64(off)
	info.Ino, off = d.GetUint64(off)
	info.Mode, off = d.GetUint32(off)
	info.Nlink, off = d.GetUint64(off)
	info.Uid, off = d.GetUint32(off)
	info.Gid, off = d.GetUint32(off)
	info.Rdev, off = d.GetUint64(off)
	info.Size, off = d.GetInt64(off)
	info.Blksize, off = d.GetInt64(off)
	info.Blocks, off = d.GetInt64(off)
	info.Atime, off = d.GetInt64(off)
	info.AtimeNsec, off = d.GetInt64(off)
	info.Mtime, off = d.GetInt64(off)
	info.MtimeNsec, off = d.GetInt64(off)
	info.Ctime, off = d.GetInt64(off)
	info.CtimeNsec, _ = d.GetInt64(off)
	return rc, info, nil
}
