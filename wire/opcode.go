// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// Opcode identifies one remote file operation in the request frame.
type Opcode uint32

// Fixed opcode assignments. These values are part of the wire contract
// between client and server and must never be renumbered.
const (
	OpOpen          Opcode = 1
	OpWrite         Opcode = 2
	OpClose         Opcode = 3
	OpRead          Opcode = 4
	OpLseek         Opcode = 5
	OpStat          Opcode = 6
	OpUnlink        Opcode = 7
	OpGetdirentries Opcode = 8
	OpGetdirtree    Opcode = 9
)

func (op Opcode) String() string {
	switch op {
	case OpOpen:
		return "open"
	case OpWrite:
		return "write"
	case OpClose:
		return "close"
	case OpRead:
		return "read"
	case OpLseek:
		return "lseek"
	case OpStat:
		return "stat"
	case OpUnlink:
		return "unlink"
	case OpGetdirentries:
		return "getdirentries"
	case OpGetdirtree:
		return "getdirtree"
	default:
		return "unknown"
	}
}
