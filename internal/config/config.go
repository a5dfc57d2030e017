// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads the host/port configuration shared by the
// client and the server (spec §6). Precedence, lowest to highest:
// built-in defaults, an optional INI file named by TRFO_CONFIG
// (grounded on samsamfire-gocanopen's gopkg.in/ini.v1 object-dictionary
// loader), then the server15440/serverport15440 environment variables
// spec.md names directly.
package config

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

const (
	// DefaultHost is the host used when neither an INI file nor the
	// environment specifies one.
	DefaultHost = "127.0.0.1"
	// DefaultPort is the port used when neither an INI file nor the
	// environment specifies one.
	DefaultPort = "15440"

	envHost   = "server15440"
	envPort   = "serverport15440"
	envConfig = "TRFO_CONFIG"
)

// Config is the resolved client/server endpoint configuration.
type Config struct {
	Host string
	Port string
}

// Addr returns "host:port", ready for net.Dial or net.Listen.
func (c Config) Addr() string { return fmt.Sprintf("%s:%s", c.Host, c.Port) }

// Load resolves a Config from the environment and, if TRFO_CONFIG names
// a readable file, an INI [server] section beneath it.
func Load() (Config, error) {
	cfg := Config{Host: DefaultHost, Port: DefaultPort}

	if path := os.Getenv(envConfig); path != "" {
		f, err := ini.Load(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
		section := f.Section("server")
		if v := section.Key("host").String(); v != "" {
			cfg.Host = v
		}
		if v := section.Key("port").String(); v != "" {
			cfg.Port = v
		}
	}

	if v := os.Getenv(envHost); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv(envPort); v != "" {
		cfg.Port = v
	}

	return cfg, nil
}
