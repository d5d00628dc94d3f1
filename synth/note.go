package synth

import "github.com/Crush251/touchplay/chart"

// Kind 分类后的音符种类
type Kind int

const (
	KindTap Kind = iota
	KindFlick
	KindSlide
)

// Role 长条中的角色
type Role int

const (
	RoleStart Role = iota
	RoleEnd
	RoleWaypoint
	RoleHiddenWaypoint
)

func (r Role) String() string {
	switch r {
	case RoleStart:
		return "start"
	case RoleEnd:
		return "end"
	case RoleWaypoint:
		return "waypoint"
	case RoleHiddenWaypoint:
		return "hidden-waypoint"
	default:
		return "unknown"
	}
}

// IsWaypoint 是否为中继点（可视或不可视）
func (r Role) IsWaypoint() bool {
	return r == RoleWaypoint || r == RoleHiddenWaypoint
}

// Easing 长条两个锚点之间的插值曲线
type Easing int

const (
	EaseLinear Easing = iota
	EaseDecelerate
	EaseAccelerate
	EaseSkip // 忽略的中继点，不重置插值基准
)

// Flick 滑动方向
type Flick int

const (
	FlickNone Flick = iota
	FlickUp
	FlickUpperLeft
	FlickUpperRight
)

// flickOf 方向音符类型到滑动方向
func flickOf(dirType int) Flick {
	switch dirType {
	case chart.DirUp:
		return FlickUp
	case chart.DirUpperLeft:
		return FlickUpperLeft
	case chart.DirUpperRight:
		return FlickUpperRight
	}
	return FlickNone
}

// Note 分类后的音符
type Note struct {
	Kind    Kind
	Tick    int
	Lane    int
	Width   int
	Subtype int // 原始的点击/方向/长条类型

	Flick  Flick  // KindFlick 的方向
	Anchor Anchor // 只对 KindSlide 有效
}

// Anchor 长条锚点的分类信息
type Anchor struct {
	Role     Role
	Easing   Easing
	EndFlick Flick
	Group    int // 长条组编号，即谱面中的组下标
}

// Pos 音符位置
func (n Note) Pos() chart.Position {
	return chart.Position{Tick: n.Tick, Lane: n.Lane, Width: n.Width}
}

// X 音符的屏幕x坐标
func (n Note) X() int {
	return chart.LaneToX(n.Lane, n.Width)
}
