package transport

import (
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.bug.st/serial.v1"
	"go.uber.org/zap"

	"github.com/Crush251/touchplay/sequence"
)

// Serial 串口触摸模拟设备
type Serial struct {
	mu   sync.Mutex
	name string
	port io.WriteCloser
}

// OpenSerial 打开串口，失败时依次尝试fallback
func OpenSerial(name string, fallbacks []string, baud int, log *zap.Logger) (*Serial, error) {
	if log == nil {
		log = zap.NewNop()
	}
	mode := &serial.Mode{BaudRate: baud}
	port, err := serial.Open(name, mode)
	if err != nil {
		found := false
		for _, alt := range fallbacks {
			port, err = serial.Open(alt, mode)
			if err == nil {
				log.Warn("⚠️  指定串口未连接，已切换到可用端口", zap.String("port", name), zap.String("using", alt))
				name = alt
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Wrapf(err, "open serial port %s (fallbacks %v)", name, fallbacks)
		}
	}
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, errors.Wrapf(err, "reset %s", name)
	}

	log.Info("✅ 串口已连接", zap.String("port", name), zap.Int("baud", baud))
	return newSerial(name, port), nil
}

func newSerial(name string, port io.WriteCloser) *Serial {
	return &Serial{name: name, port: port}
}

// Name 实际使用的串口名
func (s *Serial) Name() string {
	return s.name
}

// Send 写入一行设备协议
func (s *Serial) Send(r sequence.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return errors.Errorf("serial port %s is closed", s.name)
	}
	if _, err := io.WriteString(s.port, r.SerialLine()); err != nil {
		return errors.Wrapf(err, "write to %s", s.name)
	}
	return nil
}

// Close 关闭串口，可重复调用
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return errors.Wrapf(err, "close %s", s.name)
}

// ListPorts 列出系统串口
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, errors.Wrap(err, "list serial ports")
	}
	return ports, nil
}

// FindPort 返回第一个名字里带usb的串口
func FindPort() (string, error) {
	ports, err := ListPorts()
	if err != nil {
		return "", err
	}
	if name, ok := pickPort(ports); ok {
		return name, nil
	}
	return "", errors.Errorf("no usb serial port among %v", ports)
}

func pickPort(names []string) (string, bool) {
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), "usb") {
			return n, true
		}
	}
	return "", false
}
