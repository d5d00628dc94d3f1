// Package transport 把触摸记录发送到触摸模拟设备。
package transport

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Crush251/touchplay/config"
	"github.com/Crush251/touchplay/sequence"
	"github.com/Crush251/touchplay/synth"
)

// Transport 触摸记录的发送端，Send必须按调用顺序到达设备
type Transport interface {
	Send(r sequence.Record) error
	Close() error
}

// Open 按配置打开传输，调试模式下只打印
func Open(cfg config.Config, log *zap.Logger) (Transport, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch kind := cfg.TransportKind(); kind {
	case config.TransportStdout:
		return NewWriter(os.Stdout), nil
	case config.TransportBridge:
		log.Info("🌐 使用桥接服务", zap.String("url", cfg.Transport.BridgeURL))
		return NewBridge(cfg.Transport.BridgeURL, cfg.BridgeTimeout()), nil
	case config.TransportSerial:
		name := cfg.Transport.PortName
		if name == "" {
			found, err := FindPort()
			if err != nil {
				return nil, err
			}
			name = found
		}
		return OpenSerial(name, cfg.Transport.FallbackPorts, cfg.Transport.BaudRate, log)
	default:
		return nil, errors.Errorf("unknown transport kind %q", kind)
	}
}

// ReleaseAll 抬起所有触摸点，用于回放结束或中断后的清理
func ReleaseAll(t Transport) error {
	var err error
	for id := 0; id < synth.PoolSize; id++ {
		err = multierr.Append(err, t.Send(sequence.Record{TouchID: id, Action: int(synth.ActionRelease)}))
	}
	return err
}
