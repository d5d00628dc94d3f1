package synth

////////////////////////////////////////////////////////////////////////////////
// 合成常量（与触摸模拟设备的时序约定，不可配置）
////////////////////////////////////////////////////////////////////////////////

const (
	TapDuration        = 0.02   // 点击的按下时长[秒]
	FlickDuration      = 0.04   // 滑动的时长[秒]
	FlickOffset        = 800    // 滑动的移动距离
	FlickInterval      = 0.0166 // 滑动采样间隔[秒]，约60fps
	SlideDivisionTicks = 10     // 长条细分的tick间隔

	PoolSize = 10 // 设备支持的同时触摸点数
)

// 结尾安全序列：在最后一个事件之后让所有手指离开，再点一下屏幕中央
const (
	safetyReleaseOffset = 0.001
	safetyPressOffset   = 0.002
	safetyLiftOffset    = 0.003
)
