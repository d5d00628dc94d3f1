package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Crush251/touchplay/config"
	"github.com/Crush251/touchplay/logging"
)

var (
	configPath string
	dryRun     bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "touchplay",
	Short: "谱面自动演奏：把谱面合成为多点触摸序列并回放到触摸模拟设备",
	Long: `touchplay 读取节奏游戏谱面，合成带时间戳的多点触摸事件，
然后通过串口（或HTTP桥接）按时间表发送到触摸模拟设备。`,
	Example: `  # 只打印触摸序列
  touchplay print charts/song.json

  # 预处理：生成 exec/song.exec.json
  touchplay preprocess charts/song.json

  # 自动预处理并立即回放
  touchplay play charts/song.json

  # 执行预计算序列（最快）
  touchplay play exec/song.exec.json

  # 启动Web服务（默认监听8088端口）
  touchplay serve --config config.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "配置文件路径")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry", false, "调试模式，只打印不发送")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别，覆盖配置文件")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// setup 加载配置并创建日志器，命令行参数优先
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}
	if dryRun {
		cfg.DryRun = true
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	log, err := logging.New(cfg.Log.Level)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

// signalContext 收到SIGINT/SIGTERM时取消
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
