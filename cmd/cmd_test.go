package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Crush251/touchplay/config"
	"github.com/Crush251/touchplay/sequence"
)

const basicChart = "../chart/testdata/basic.json"

func TestPrintCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"print", basicChart})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Greater(t, len(lines), 30)
	assert.Equal(t, "0 0 2667 8000 0", lines[0])
	// 结尾是安全序列的最后一次抬起
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], " 9 0 0 1"), lines[len(lines)-1])
}

func TestLoadOrPreprocessReusesExecFile(t *testing.T) {
	cfg := config.Default()
	cfg.ExecDir = t.TempDir()

	first, err := loadOrPreprocess(cfg, zap.NewNop(), basicChart)
	require.NoError(t, err)
	out := sequence.ExecPath(cfg.ExecDir, basicChart)
	_, err = os.Stat(out)
	require.NoError(t, err)

	second, err := loadOrPreprocess(cfg, zap.NewNop(), basicChart)
	require.NoError(t, err)
	assert.Equal(t, first.Meta.ID, second.Meta.ID, "existing exec file is reused")

	direct, err := loadOrPreprocess(cfg, zap.NewNop(), out)
	require.NoError(t, err)
	assert.Equal(t, first.Records, direct.Records)

	_, err = loadOrPreprocess(cfg, zap.NewNop(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
