package chart

////////////////////////////////////////////////////////////////////////////////
// 谱面数据结构定义
////////////////////////////////////////////////////////////////////////////////

// 点击音符类型
const (
	TapNormal    = 1 // 普通点击
	TapCritical  = 2 // 金色点击
	TapInvisible = 3 // 不可视标记（只在分类时用于识别忽略中继点）
)

// 方向音符类型
const (
	DirUp         = 1 // 真上滑动
	DirDown       = 2 // 真下（减速修饰）
	DirUpperLeft  = 3 // 左上滑动
	DirUpperRight = 4 // 右上滑动
	DirLowerLeft  = 5 // 左下（加速修饰）
	DirLowerRight = 6 // 右下（加速修饰）
)

// 长条音符类型
const (
	SlideStart          = 1 // 开始
	SlideEnd            = 2 // 结束
	SlideWaypoint       = 3 // 中继点
	SlideHiddenWaypoint = 5 // 中继点（不可视）
)

// 可演奏的轨道范围，范围外的是fever等控制音符
const (
	MinLane = 2
	MaxLane = 13
)

// TapNote 点击音符
type TapNote struct {
	Tick  int `json:"tick" yaml:"tick"`
	Lane  int `json:"lane" yaml:"lane"`
	Width int `json:"width" yaml:"width"`
	Type  int `json:"type" yaml:"type"`
}

// DirectionalNote 方向音符
type DirectionalNote struct {
	Tick  int `json:"tick" yaml:"tick"`
	Lane  int `json:"lane" yaml:"lane"`
	Width int `json:"width" yaml:"width"`
	Type  int `json:"type" yaml:"type"`
}

// SlideNote 长条中的一个点
type SlideNote struct {
	Tick  int `json:"tick" yaml:"tick"`
	Lane  int `json:"lane" yaml:"lane"`
	Width int `json:"width" yaml:"width"`
	Type  int `json:"type" yaml:"type"`
}

// Position 音符位置，分类时所有匹配都按 (tick, lane, width) 完全相等
type Position struct {
	Tick  int
	Lane  int
	Width int
}

func (n TapNote) Pos() Position         { return Position{n.Tick, n.Lane, n.Width} }
func (n DirectionalNote) Pos() Position { return Position{n.Tick, n.Lane, n.Width} }
func (n SlideNote) Pos() Position       { return Position{n.Tick, n.Lane, n.Width} }

// IsFlick 是否为会生成触摸轨迹的滑动方向
func (n DirectionalNote) IsFlick() bool {
	return n.Type == DirUp || n.Type == DirUpperLeft || n.Type == DirUpperRight
}

// BarLength 拍号变化，目前合成时不使用
type BarLength struct {
	Tick  int
	Beats float64
}

// Chart 已解析的谱面
type Chart struct {
	Meta         map[string]any
	Tempo        *TempoMap
	BarLengths   []BarLength
	Taps         []TapNote
	Directionals []DirectionalNote
	Slides       [][]SlideNote // 组下标即长条ID
}

// Title 谱面标题，没有时返回空字符串
func (c *Chart) Title() string {
	if c.Meta == nil {
		return ""
	}
	if t, ok := c.Meta["title"].(string); ok {
		return t
	}
	return ""
}

// NoteCount 音符总数
func (c *Chart) NoteCount() int {
	n := len(c.Taps) + len(c.Directionals)
	for _, s := range c.Slides {
		n += len(s)
	}
	return n
}
