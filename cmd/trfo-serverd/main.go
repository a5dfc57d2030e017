// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command trfo-serverd is the remote-file-operations server daemon: it
// listens on the address resolved by internal/config and serves
// trfoserver requests until killed.
package main

import (
	"net"
	"os"

	"github.com/sirupsen/logrus"

	"code.hybscloud.com/trfo/internal/config"
	"code.hybscloud.com/trfo/trfoserver"
)

func main() {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		log.WithError(err).Fatal("listen")
	}
	log.WithField("addr", cfg.Addr()).Info("trfo-serverd listening")

	srv := trfoserver.NewServer(log)
	if err := srv.Serve(ln); err != nil {
		log.WithError(err).Error("serve loop exited")
		os.Exit(1)
	}
}
