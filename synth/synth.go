// Package synth 把谱面音符合成为多点触摸事件序列。
//
// 流程：Classify 分类音符，Trajectories 结合速度表和屏幕几何展开为触摸
// 轨迹并分配触摸点编号，Assemble 排序、追加安全序列并归零时间。
// 包内没有全局可变状态，相同输入总是得到相同输出。
package synth

import "github.com/Crush251/touchplay/chart"

// ScreenCenter 屏幕中央坐标，安全序列在这里点一下
const ScreenCenter = chart.ScreenCenter

// Synthesize 从谱面得到有序的触摸事件
func Synthesize(c *chart.Chart) ([]TouchEvent, error) {
	notes, err := Classify(c)
	if err != nil {
		return nil, err
	}
	raw, err := Trajectories(c.Tempo, notes)
	if err != nil {
		return nil, err
	}
	return Assemble(raw), nil
}
