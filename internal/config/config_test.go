// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "127.0.0.1:15440", cfg.Addr())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(envHost, "10.0.0.5")
	t.Setenv(envPort, "9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", cfg.Host)
	assert.Equal(t, "9000", cfg.Port)
}

func TestLoadIniThenEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/trfo.ini"
	require.NoError(t, os.WriteFile(path, []byte("[server]\nhost = 192.168.1.1\nport = 7000\n"), 0o644))

	t.Setenv(envConfig, path)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.1", cfg.Host)
	assert.Equal(t, "7000", cfg.Port)

	t.Setenv(envPort, "7001")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "7001", cfg.Port, "env should win over ini")
}
