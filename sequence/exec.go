package sequence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

////////////////////////////////////////////////////////////////////////////////
// 预计算序列文件
////////////////////////////////////////////////////////////////////////////////

// ExecSuffix 预计算序列文件后缀
const ExecSuffix = ".exec.json"

// Version 序列文件格式版本
const Version = "1.0"

// TouchSequence 预计算的触摸序列
type TouchSequence struct {
	Meta    SequenceMeta `json:"meta"`
	Records []Record     `json:"records"`
}

// SequenceMeta 序列元数据
type SequenceMeta struct {
	ID              string    `json:"id"`                // 生成批次ID
	SourceFile      string    `json:"source_file"`       // 源谱面文件
	Title           string    `json:"title"`             // 谱面标题
	BPM             float64   `json:"bpm"`               // 初始BPM
	TotalDurationMS int       `json:"total_duration_ms"` // 总时长（毫秒）
	TotalEvents     int       `json:"total_events"`      // 记录总数
	TouchNotes      int       `json:"touch_notes"`       // 产生触摸的音符数
	GeneratedAt     time.Time `json:"generated_at"`      // 生成时间
	Version         string    `json:"version"`           // 版本号
}

// ExecPath 谱面对应的默认序列文件路径
func ExecPath(execDir, chartPath string) string {
	base := filepath.Base(chartPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(execDir, base+ExecSuffix)
}

// IsExecFile 是否为预计算序列文件
func IsExecFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ExecSuffix)
}

// Save 写入缩进JSON，目录不存在时创建
func (s *TouchSequence) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal sequence")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write %s", path)
}

// Load 读取序列文件并校验
func Load(path string) (*TouchSequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	var s TouchSequence
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if err := Validate(s.Records); err != nil {
		return nil, errors.Wrapf(err, "invalid sequence %s", path)
	}
	return &s, nil
}

// Duration 序列总时长
func (s *TouchSequence) Duration() time.Duration {
	return time.Duration(s.Meta.TotalDurationMS) * time.Millisecond
}
