// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"
)

// The TestOp*RoundTrip tests exercise property 1 from spec §8: for every opcode,
// marshalling a valid argument tuple and then unmarshalling yields equal
// values.
func TestOpOpenRoundTrip(t *testing.T) {
	want := OpenRequest{Flags: 0x241, Mode: 0644, Path: "/tmp/t.txt"}
	got, err := DecodeOpenRequest(EncodeOpenRequest(want))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	fd, err := DecodeOpenResponse(EncodeOpenResponse(1003))
	if err != nil || fd != 1003 {
		t.Fatalf("open response round-trip: fd=%d err=%v", fd, err)
	}
}

func TestOpCloseRoundTrip(t *testing.T) {
	fd, err := DecodeCloseRequest(EncodeCloseRequest(1007))
	if err != nil || fd != 1007 {
		t.Fatalf("close request: fd=%d err=%v", fd, err)
	}
	rc, err := DecodeCloseResponse(EncodeCloseResponse(0))
	if err != nil || rc != 0 {
		t.Fatalf("close response: rc=%d err=%v", rc, err)
	}
}

func TestOpReadRoundTrip(t *testing.T) {
	want := ReadRequest{Fd: 1001, Count: 4096}
	got, err := DecodeReadRequest(EncodeReadRequest(want))
	if err != nil || got != want {
		t.Fatalf("read request round-trip: got=%+v err=%v", got, err)
	}

	payload := []byte("hello")
	n, data, err := DecodeReadResponse(EncodeReadResponse(5, payload))
	if err != nil || n != 5 || !bytes.Equal(data, payload) {
		t.Fatalf("read response round-trip: n=%d data=%q err=%v", n, data, err)
	}

	n, data, err = DecodeReadResponse(EncodeReadResponse(-1, nil))
	if err != nil || n != -1 || len(data) != 0 {
		t.Fatalf("read response failure round-trip: n=%d data=%v err=%v", n, data, err)
	}
}

func TestOpWriteRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte{'B'}, 260)
	want := WriteRequest{Fd: 1002, Count: uint64(len(payload)), Data: payload}
	got, err := DecodeWriteRequest(EncodeWriteRequest(want))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Fd != want.Fd || got.Count != want.Count || !bytes.Equal(got.Data, want.Data) {
		t.Fatalf("write request round-trip mismatch")
	}

	n, err := DecodeWriteResponse(EncodeWriteResponse(260))
	if err != nil || n != 260 {
		t.Fatalf("write response round-trip: n=%d err=%v", n, err)
	}
}

func TestOpLseekRoundTrip(t *testing.T) {
	want := LseekRequest{Fd: 1000, Offset: -42, Whence: 2}
	got, err := DecodeLseekRequest(EncodeLseekRequest(want))
	if err != nil || got != want {
		t.Fatalf("lseek request round-trip: got=%+v err=%v", got, err)
	}
	pos, err := DecodeLseekResponse(EncodeLseekResponse(1234))
	if err != nil || pos != 1234 {
		t.Fatalf("lseek response round-trip: pos=%d err=%v", pos, err)
	}
}

func TestOpStatRoundTrip(t *testing.T) {
	want := StatRequest{Ver: 1, Path: "/etc/passwd"}
	got, err := DecodeStatRequest(EncodeStatRequest(want))
	if err != nil || got != want {
		t.Fatalf("stat request round-trip: got=%+v err=%v", got, err)
	}

	info := StatInfo{Dev: 1, Ino: 2, Mode: 0100644, Nlink: 1, Uid: 1000, Gid: 1000, Size: 4096, Mtime: 1700000000}
	rc, gotInfo, err := DecodeStatResponse(EncodeStatResponse(0, info))
	if err != nil || rc != 0 || gotInfo != info {
		t.Fatalf("stat response round-trip: rc=%d info=%+v err=%v", rc, gotInfo, err)
	}

	rc, _, err = DecodeStatResponse(EncodeStatResponse(-1, StatInfo{}))
	if err != nil || rc != -1 {
		t.Fatalf("stat response failure round-trip: rc=%d err=%v", rc, err)
	}
}

func TestOpUnlinkRoundTrip(t *testing.T) {
	path, err := DecodeUnlinkRequest(EncodeUnlinkRequest("/tmp/gone"))
	if err != nil || path != "/tmp/gone" {
		t.Fatalf("unlink request round-trip: path=%q err=%v", path, err)
	}
	rc, err := DecodeUnlinkResponse(EncodeUnlinkResponse(0))
	if err != nil || rc != 0 {
		t.Fatalf("unlink response round-trip: rc=%d err=%v", rc, err)
	}
}

func TestOpGetdirentriesRoundTrip(t *testing.T) {
	want := GetdirentriesRequest{Fd: 1004, Basep: 0, Nbytes: 512}
	got, err := DecodeGetdirentriesRequest(EncodeGetdirentriesRequest(want))
	if err != nil || got != want {
		t.Fatalf("getdirentries request round-trip: got=%+v err=%v", got, err)
	}

	payload := bytes.Repeat([]byte{0xAB}, 64)
	n, newBasep, data, err := DecodeGetdirentriesResponse(EncodeGetdirentriesResponse(64, 512, payload))
	if err != nil || n != 64 || newBasep != 512 || !bytes.Equal(data, payload) {
		t.Fatalf("getdirentries response round-trip: n=%d basep=%d err=%v", n, newBasep, err)
	}
}

func TestOpGetdirtreeRoundTrip(t *testing.T) {
	path, err := DecodeGetdirtreeRequest(EncodeGetdirtreeRequest("/etc"))
	if err != nil || path != "/etc" {
		t.Fatalf("getdirtree request round-trip: path=%q err=%v", path, err)
	}
}

// TestOpProtocolErrors checks that truncated/invalid payloads are
// rejected rather than causing a panic.
func TestOpProtocolErrors(t *testing.T) {
	if _, err := DecodeOpenRequest([]byte{1, 2, 3}); err != ErrProtocol {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
	if _, err := DecodeWriteRequest(EncodeWriteRequest(WriteRequest{Count: 100})[:6]); err != ErrProtocol {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
}
