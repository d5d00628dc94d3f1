package synth

import "fmt"

// ClassificationError 长条锚点上的修饰音符类型组合无法识别
type ClassificationError struct {
	Tick    int
	Lane    int
	Width   int
	Role    Role
	Subtype int
	Reason  string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classify slide %s at tick %d lane %d width %d: %s (subtype %d)",
		e.Role, e.Tick, e.Lane, e.Width, e.Reason, e.Subtype)
}

// PoolExhaustedError 同时触摸点超过设备上限
type PoolExhaustedError struct {
	Tick int
	Size int
}

func (e *PoolExhaustedError) Error() string {
	if e.Tick < 0 {
		return fmt.Sprintf("all %d touch ids are in use", e.Size)
	}
	return fmt.Sprintf("all %d touch ids are in use at tick %d", e.Size, e.Tick)
}
