// Package dump 直接和触摸模拟设备对话的调试控制台。
package dump

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.bug.st/serial.v1"

	"github.com/Crush251/touchplay/chart"
	"github.com/Crush251/touchplay/util"
)

// Console 串口调试控制台
type Console struct {
	port io.ReadWriteCloser
	wait time.Duration
}

// NewConsole 打开串口
func NewConsole(portName string, baud int) (*Console, error) {
	mode := &serial.Mode{BaudRate: baud}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, err
	}

	port.ResetInputBuffer()

	return newConsole(port), nil
}

func newConsole(port io.ReadWriteCloser) *Console {
	return &Console{port: port, wait: 50 * time.Millisecond}
}

func (c *Console) Close() {
	if c.port != nil {
		c.port.Close()
	}
}

// Send 写一行命令，稍等后读回设备的回应
func (c *Console) Send(line string) string {
	if !strings.HasSuffix(line, "\r") {
		line += "\r"
	}
	c.port.Write([]byte(line))

	time.Sleep(c.wait)
	buf := make([]byte, 1024)
	n, _ := c.port.Read(buf)
	return string(buf[:n])
}

// 命令方法
func (c *Console) Touch(id, x, y int) string { return c.Send(fmt.Sprintf("%d,%d,%d,0", id, x, y)) }
func (c *Console) Release(id int) string     { return c.Send(fmt.Sprintf("%d,0,0,1", id)) }

// Tap 按下后等待hold再抬起
func (c *Console) Tap(id, x, y int, hold time.Duration) []string {
	id = util.Clamp(id, 0, 9)
	replies := []string{c.Touch(id, x, y)}
	time.Sleep(hold)
	return append(replies, c.Release(id))
}

// Center 在屏幕中央点一下，用于确认设备连通
func (c *Console) Center() []string {
	return c.Tap(0, chart.ScreenCenter, chart.ScreenCenter, 20*time.Millisecond)
}

// ReleaseAll 抬起所有触摸点
func (c *Console) ReleaseAll() []string {
	var replies []string
	for id := 0; id < 10; id++ {
		replies = append(replies, c.Release(id))
	}
	return replies
}
