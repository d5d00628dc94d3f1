// Package logging 构建全局使用的zap日志器
package logging

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 控制台格式、ISO8601时间的日志器，输出到stderr
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Development = false
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Must 同New，出错时panic，只在启动阶段使用
func Must(level string) *zap.Logger {
	log, err := New(level)
	if err != nil {
		panic(err)
	}
	return log
}
