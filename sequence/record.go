package sequence

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/Crush251/touchplay/synth"
)

////////////////////////////////////////////////////////////////////////////////
// 输出记录
////////////////////////////////////////////////////////////////////////////////

// Record 一条触摸记录，也是发给设备的最小单位
type Record struct {
	TimeMS  int `json:"t"`  // 相对第一条记录的毫秒数
	TouchID int `json:"id"` // 触摸点编号 0..9
	X       int `json:"x"`
	Y       int `json:"y"`
	Action  int `json:"a"` // 0 按下/移动，1 抬起
}

// Millis 秒转毫秒，向下取整；加一个很小的量避免0.02*1000这类浮点误差
func Millis(seconds float64) int {
	return int(math.Floor(seconds*1000 + 1e-6))
}

// FromEvents 把合成的触摸事件转换为记录
func FromEvents(events []synth.TouchEvent) []Record {
	records := make([]Record, 0, len(events))
	for _, e := range events {
		records = append(records, Record{
			TimeMS:  Millis(e.Time),
			TouchID: e.ID,
			X:       e.X,
			Y:       e.Y,
			Action:  int(e.Action),
		})
	}
	return records
}

// String 文本格式："<ms> <id> <x> <y> <action>"
func (r Record) String() string {
	return fmt.Sprintf("%d %d %d %d %d", r.TimeMS, r.TouchID, r.X, r.Y, r.Action)
}

// SerialLine 设备串口协议："<id>,<x>,<y>,<action>\r"
func (r Record) SerialLine() string {
	return fmt.Sprintf("%d,%d,%d,%d\r", r.TouchID, r.X, r.Y, r.Action)
}

// WriteText 每条记录一行写入w
func WriteText(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if _, err := fmt.Fprintln(bw, r.String()); err != nil {
			return errors.Wrap(err, "write record")
		}
	}
	return errors.Wrap(bw.Flush(), "flush records")
}

// Validate 检查时间不递减、编号和动作合法、结束时没有未抬起的触摸点
func Validate(records []Record) error {
	var down [synth.PoolSize]bool
	last := 0
	for i, r := range records {
		if r.TimeMS < last {
			return errors.Errorf("record %d goes back in time: %dms after %dms", i, r.TimeMS, last)
		}
		last = r.TimeMS
		if r.TouchID < 0 || r.TouchID >= synth.PoolSize {
			return errors.Errorf("record %d has touch id %d out of range", i, r.TouchID)
		}
		switch synth.Action(r.Action) {
		case synth.ActionContact:
			down[r.TouchID] = true
		case synth.ActionRelease:
			down[r.TouchID] = false
		default:
			return errors.Errorf("record %d has unknown action %d", i, r.Action)
		}
	}
	for id, d := range down {
		if d {
			return errors.Errorf("touch id %d is never released", id)
		}
	}
	return nil
}
