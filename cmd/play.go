package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Crush251/touchplay/config"
	"github.com/Crush251/touchplay/replay"
	"github.com/Crush251/touchplay/sequence"
	"github.com/Crush251/touchplay/transport"
)

var playFresh bool

func init() {
	playCmd.Flags().BoolVar(&playFresh, "fresh", false, "忽略已有的预计算序列，重新生成")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <chart|exec.json>",
	Short: "回放到触摸模拟设备，谱面会先预处理",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		seq, err := loadOrPreprocess(cfg, log, args[0])
		if err != nil {
			return err
		}

		tr, err := transport.Open(cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := tr.Close(); err != nil {
				log.Warn("⚠️  关闭设备连接失败", zap.Error(err))
			}
		}()

		ctx, stop := signalContext()
		defer stop()

		engine := replay.NewEngine(seq, tr, replay.Options{
			LagWarn:         cfg.LagWarn(),
			ProgressLog:     cfg.ProgressLogInterval(),
			ReleaseOnFinish: cfg.Replay.ReleaseOnFinish,
		}, log)
		_, err = engine.Run(ctx)
		if ctx.Err() != nil {
			log.Info("🛑 收到退出信号，已关闭设备连接")
			return nil
		}
		return err
	},
}

// loadOrPreprocess 直接读取exec文件，或者为谱面生成（已存在时复用）
func loadOrPreprocess(cfg config.Config, log *zap.Logger, path string) (*sequence.TouchSequence, error) {
	if sequence.IsExecFile(path) {
		return sequence.Load(path)
	}
	out := sequence.ExecPath(cfg.ExecDir, path)
	if !playFresh {
		if _, err := os.Stat(out); err == nil {
			if seq, err := sequence.Load(out); err == nil {
				log.Info("📂 使用已有的预计算序列", zap.String("exec", out))
				return seq, nil
			}
		}
	}
	return sequence.NewPreprocessor(log).Generate(path, out)
}
