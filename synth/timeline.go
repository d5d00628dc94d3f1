package synth

import "sort"

// Assemble 按时间稳定排序，追加结尾安全序列，并把第一个事件平移到0
//
// 安全序列按阶段追加：先抬起全部编号，再在屏幕中央按下，最后再抬起，
// 保持整个序列时间不递减。
func Assemble(events []TouchEvent) []TouchEvent {
	out := make([]TouchEvent, 0, len(events)+3*PoolSize)
	out = append(out, events...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})

	last := 0.0
	if len(out) > 0 {
		last = out[len(out)-1].Time
	}
	phases := []struct {
		offset float64
		action Action
		x, y   int
	}{
		{safetyReleaseOffset, ActionRelease, 0, 0},
		{safetyPressOffset, ActionContact, ScreenCenter, ScreenCenter},
		{safetyLiftOffset, ActionRelease, 0, 0},
	}
	for _, ph := range phases {
		for id := 0; id < PoolSize; id++ {
			out = append(out, TouchEvent{
				Time:   last + ph.offset,
				ID:     id,
				Action: ph.action,
				X:      ph.x,
				Y:      ph.y,
			})
		}
	}

	origin := out[0].Time
	for i := range out {
		out[i].Time -= origin
	}
	return out
}
