// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import "errors"

var (
	// ErrTransport reports a failure of the underlying stream: a connect,
	// send, recv, or a premature close. Both peers treat it as fatal.
	ErrTransport = errors.New("wire: transport error")

	// ErrProtocol reports a malformed frame: a non-positive length prefix,
	// a non-positive opcode payload size, or a declared size or field that
	// does not fit in the received bytes. A zero response size is valid.
	ErrProtocol = errors.New("wire: protocol error")
)
