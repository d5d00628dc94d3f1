package synth

// EaseFunc 把[0,1]的进度映射为位移比例
type EaseFunc func(t float64) float64

// 曲线名称沿用谱面里的叫法，decelerate实际是二次方（起步慢），accelerate是反二次方
func easeLinear(t float64) float64     { return t }
func easeDecelerate(t float64) float64 { return t * t }
func easeAccelerate(t float64) float64 { return 1 - (1-t)*(1-t) }

// Func 返回插值函数，EaseSkip 按线性处理
func (e Easing) Func() EaseFunc {
	switch e {
	case EaseDecelerate:
		return easeDecelerate
	case EaseAccelerate:
		return easeAccelerate
	default:
		return easeLinear
	}
}

func (e Easing) String() string {
	switch e {
	case EaseLinear:
		return "linear"
	case EaseDecelerate:
		return "decelerate"
	case EaseAccelerate:
		return "accelerate"
	case EaseSkip:
		return "skip"
	default:
		return "unknown"
	}
}
