// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package trfoserver

import (
	"golang.org/x/sys/unix"

	"code.hybscloud.com/trfo/wire"
)

// statInfoFromStatT copies the fields of a platform unix.Stat_t into
// the wire's fixed StatInfo layout (spec §4.4's stat response table).
func statInfoFromStatT(st unix.Stat_t) wire.StatInfo {
	return wire.StatInfo{
		Dev:       uint64(st.Dev),
		Ino:       st.Ino,
		Mode:      st.Mode,
		Nlink:     uint64(st.Nlink),
		Uid:       st.Uid,
		Gid:       st.Gid,
		Rdev:      uint64(st.Rdev),
		Size:      st.Size,
		Blksize:   int64(st.Blksize),
		Blocks:    st.Blocks,
		Atime:     int64(st.Atim.Sec),
		AtimeNsec: int64(st.Atim.Nsec),
		Mtime:     int64(st.Mtim.Sec),
		MtimeNsec: int64(st.Mtim.Nsec),
		Ctime:     int64(st.Ctim.Sec),
		CtimeNsec: int64(st.Ctim.Nsec),
	}
}
