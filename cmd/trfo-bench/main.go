// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command trfo-bench drives trfoclient directly against a running
// trfo-serverd, without needing the LD_PRELOAD-style call-interposition
// shim. It exercises the same sequence of operations as spec §8's S1
// and S6 scenarios and reports whether they succeeded, doubling as a
// manual smoke-test harness.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"code.hybscloud.com/trfo/trfoclient"
)

func main() {
	addr := flag.String("addr", "", "server address (host:port); empty uses internal/config resolution")
	path := flag.String("path", "/tmp/trfo-bench.txt", "remote path to exercise")
	flag.Parse()

	log := logrus.StandardLogger()

	var opts []trfoclient.Option
	if *addr != "" {
		opts = append(opts, trfoclient.WithAddress(*addr))
	}
	c := trfoclient.NewClient(opts...)

	if err := run(c, *path); err != nil {
		log.WithError(err).Fatal("trfo-bench failed")
	}
	fmt.Println("ok")
}

func run(c *trfoclient.Client, path string) error {
	fd, err := c.Open(path, os.O_CREAT|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	if fd < 0 {
		return fmt.Errorf("open: remote errno %v", c.Errno())
	}

	payload := bytes.Repeat([]byte{0x5a}, 65536)
	n, err := c.Write(fd, payload)
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if n != len(payload) {
		return fmt.Errorf("write: wrote %d of %d bytes", n, len(payload))
	}

	if rc, err := c.Close(fd); err != nil || rc != 0 {
		return fmt.Errorf("close: rc=%d err=%v", rc, err)
	}

	readFD, err := c.Open(path, os.O_RDONLY, 0)
	if err != nil || readFD < 0 {
		return fmt.Errorf("reopen: fd=%d err=%v errno=%v", readFD, err, c.Errno())
	}
	data, n, err := c.Read(readFD, len(payload))
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	if n != len(payload) || !bytes.Equal(data, payload) {
		return fmt.Errorf("read back %d bytes, content mismatch=%v", n, !bytes.Equal(data, payload))
	}
	if _, err := c.Close(readFD); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
