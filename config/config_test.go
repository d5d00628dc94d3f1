package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	assert := assert.New(t)
	assert.Equal("charts", cfg.ChartDir)
	assert.Equal("exec", cfg.ExecDir)
	assert.Equal(TransportSerial, cfg.Transport.Kind)
	assert.Equal(115200, cfg.Transport.BaudRate)
	assert.Equal(":8088", cfg.Web.Addr)
	assert.Equal("info", cfg.Log.Level)
	assert.Equal(5*time.Millisecond, cfg.LagWarn())
	assert.Equal(time.Second, cfg.ProgressLogInterval())
}

func TestLoadOverridesAndFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
chart_dir: songs
dry_run: true
transport:
  kind: bridge
  port_name: /dev/ttyACM0
  fallback_ports: [/dev/ttyUSB1, /dev/ttyUSB2]
  timeout_ms: 250
replay:
  release_on_finish: true
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("songs", cfg.ChartDir)
	assert.Equal("exec", cfg.ExecDir)
	assert.Equal(TransportBridge, cfg.Transport.Kind)
	assert.Equal("/dev/ttyACM0", cfg.Transport.PortName)
	assert.Equal([]string{"/dev/ttyUSB1", "/dev/ttyUSB2"}, cfg.Transport.FallbackPorts)
	assert.Equal(115200, cfg.Transport.BaudRate)
	assert.Equal(250*time.Millisecond, cfg.BridgeTimeout())
	assert.True(cfg.Replay.ReleaseOnFinish)
	assert.Equal("debug", cfg.Log.Level)
	assert.Equal(TransportStdout, cfg.TransportKind(), "dry run forces stdout")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transport: [oops"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
