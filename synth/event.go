package synth

// Action 触摸动作
type Action int

const (
	ActionContact Action = 0 // 按下或移动
	ActionRelease Action = 1 // 离开
)

func (a Action) String() string {
	switch a {
	case ActionContact:
		return "contact"
	case ActionRelease:
		return "release"
	default:
		return "unknown"
	}
}

// TouchEvent 一个触摸事件，Time在整体平移前可以为负
type TouchEvent struct {
	Time   float64
	ID     int
	Action Action
	X      int
	Y      int
}
