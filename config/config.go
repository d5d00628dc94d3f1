package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

////////////////////////////////////////////////////////////////////////////////
// 配置
////////////////////////////////////////////////////////////////////////////////

// 传输方式
const (
	TransportSerial = "serial" // 串口触摸模拟设备
	TransportBridge = "bridge" // HTTP桥接服务
	TransportStdout = "stdout" // 只打印
)

// Config 主配置
type Config struct {
	ChartDir string `yaml:"chart_dir"` // 谱面目录
	ExecDir  string `yaml:"exec_dir"`  // 预计算序列目录
	DryRun   bool   `yaml:"dry_run"`   // 调试模式（只打印不发送）

	Transport TransportConfig `yaml:"transport"`
	Replay    ReplayConfig    `yaml:"replay"`

	Web struct {
		Addr string `yaml:"addr"` // 监听地址
	} `yaml:"web"`

	Log struct {
		Level string `yaml:"level"` // debug/info/warn/error
	} `yaml:"log"`
}

// TransportConfig 设备连接配置
type TransportConfig struct {
	Kind          string   `yaml:"kind"`           // serial/bridge/stdout
	PortName      string   `yaml:"port_name"`      // 串口名称，为空时自动查找
	FallbackPorts []string `yaml:"fallback_ports"` // 指定串口打不开时依次尝试
	BaudRate      int      `yaml:"baud_rate"`      // 波特率
	BridgeURL     string   `yaml:"bridge_url"`     // 桥接服务地址
	TimeoutMS     int      `yaml:"timeout_ms"`     // 桥接请求超时（毫秒）
}

// ReplayConfig 回放配置
type ReplayConfig struct {
	LagWarnMS       int  `yaml:"lag_warn_ms"`       // 超过该延迟记为迟到（毫秒）
	ReleaseOnFinish bool `yaml:"release_on_finish"` // 结束后抬起所有触摸点
	ProgressLogMS   int  `yaml:"progress_log_ms"`   // 进度日志最小间隔（毫秒）
}

// Default 默认配置
func Default() Config {
	var cfg Config
	cfg.fillDefaults()
	return cfg
}

// Load 加载配置文件，文件不存在时使用默认配置
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, pkgerrors.Wrapf(err, "read config %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, pkgerrors.Wrapf(err, "parse config %s", path)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults 空字段填默认值
func (cfg *Config) fillDefaults() {
	if cfg.ChartDir == "" {
		cfg.ChartDir = "charts"
	}
	if cfg.ExecDir == "" {
		cfg.ExecDir = "exec"
	}
	if cfg.Transport.Kind == "" {
		cfg.Transport.Kind = TransportSerial
	}
	if cfg.Transport.BaudRate == 0 {
		cfg.Transport.BaudRate = 115200
	}
	if cfg.Transport.BridgeURL == "" {
		cfg.Transport.BridgeURL = "http://localhost:5260"
	}
	if cfg.Transport.TimeoutMS == 0 {
		cfg.Transport.TimeoutMS = 100
	}
	if cfg.Replay.LagWarnMS == 0 {
		cfg.Replay.LagWarnMS = 5
	}
	if cfg.Replay.ProgressLogMS == 0 {
		cfg.Replay.ProgressLogMS = 1000
	}
	if cfg.Web.Addr == "" {
		cfg.Web.Addr = ":8088"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// TransportKind 实际使用的传输方式，调试模式强制打印
func (cfg Config) TransportKind() string {
	if cfg.DryRun {
		return TransportStdout
	}
	return cfg.Transport.Kind
}

// BridgeTimeout 桥接请求超时
func (cfg Config) BridgeTimeout() time.Duration {
	return time.Duration(cfg.Transport.TimeoutMS) * time.Millisecond
}

// LagWarn 迟到阈值
func (cfg Config) LagWarn() time.Duration {
	return time.Duration(cfg.Replay.LagWarnMS) * time.Millisecond
}

// ProgressLogInterval 进度日志间隔
func (cfg Config) ProgressLogInterval() time.Duration {
	return time.Duration(cfg.Replay.ProgressLogMS) * time.Millisecond
}
