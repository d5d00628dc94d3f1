package synth

import (
	"sort"

	"github.com/Crush251/touchplay/chart"
)

////////////////////////////////////////////////////////////////////////////////
// 音符分类
////////////////////////////////////////////////////////////////////////////////

// Classify 把谱面音符整理为按tick排序的分类音符流
//
// 长条锚点从同位置的方向音符得到插值曲线或结尾滑动，从同位置的隐藏点击
// 得到跳过标记；被长条或方向音符覆盖的点击、隐藏点击都会被去掉。
// 不修改输入，相同谱面多次调用结果相同。
func Classify(c *chart.Chart) ([]Note, error) {
	consumed := make([]bool, len(c.Directionals))

	var slides []Note
	anchors := make(map[chart.Position]bool)
	for g, group := range c.Slides {
		for _, sn := range group {
			n, err := classifyAnchor(c, sn, g, consumed)
			if err != nil {
				return nil, err
			}
			anchors[sn.Pos()] = true
			slides = append(slides, n)
		}
	}

	// 剩下的方向音符：滑动产生触摸，所有剩余的方向音符都会遮挡同位置点击
	occupied := anchors
	var flicks []Note
	for i, d := range c.Directionals {
		if consumed[i] {
			continue
		}
		occupied[d.Pos()] = true
		if !d.IsFlick() {
			continue
		}
		flicks = append(flicks, Note{
			Kind:    KindFlick,
			Tick:    d.Tick,
			Lane:    d.Lane,
			Width:   d.Width,
			Subtype: d.Type,
			Flick:   flickOf(d.Type),
		})
	}

	var taps []Note
	for _, t := range c.Taps {
		if occupied[t.Pos()] {
			continue
		}
		if t.Type != chart.TapNormal && t.Type != chart.TapCritical {
			continue
		}
		taps = append(taps, Note{
			Kind:    KindTap,
			Tick:    t.Tick,
			Lane:    t.Lane,
			Width:   t.Width,
			Subtype: t.Type,
		})
	}

	notes := make([]Note, 0, len(taps)+len(flicks)+len(slides))
	notes = append(notes, taps...)
	notes = append(notes, flicks...)
	notes = append(notes, slides...)
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Tick < notes[j].Tick
	})
	return notes, nil
}

// classifyAnchor 分类单个长条锚点
func classifyAnchor(c *chart.Chart, sn chart.SlideNote, group int, consumed []bool) (Note, error) {
	n := Note{
		Kind:    KindSlide,
		Tick:    sn.Tick,
		Lane:    sn.Lane,
		Width:   sn.Width,
		Subtype: sn.Type,
	}
	role, ok := roleOf(sn.Type)
	if !ok {
		return n, &ClassificationError{
			Tick: sn.Tick, Lane: sn.Lane, Width: sn.Width,
			Role: RoleWaypoint, Subtype: sn.Type,
			Reason: "unknown slide note type",
		}
	}
	n.Anchor = Anchor{Role: role, Easing: EaseLinear, Group: group}

	pos := sn.Pos()
	for i, d := range c.Directionals {
		if consumed[i] || d.Pos() != pos {
			continue
		}
		switch {
		case d.Type == chart.DirDown:
			n.Anchor.Easing = EaseDecelerate
		case d.Type == chart.DirLowerLeft || d.Type == chart.DirLowerRight:
			n.Anchor.Easing = EaseAccelerate
		case role == RoleEnd && d.IsFlick():
			n.Anchor.EndFlick = flickOf(d.Type)
			consumed[i] = true
		default:
			return n, &ClassificationError{
				Tick: sn.Tick, Lane: sn.Lane, Width: sn.Width,
				Role: role, Subtype: d.Type,
				Reason: "unsupported directional on slide anchor",
			}
		}
		break
	}

	if role.IsWaypoint() && hasSkipMarker(c.Taps, pos) {
		n.Anchor.Easing = EaseSkip
	}
	return n, nil
}

// hasSkipMarker 同位置是否有隐藏点击
func hasSkipMarker(taps []chart.TapNote, pos chart.Position) bool {
	for _, t := range taps {
		if t.Type == chart.TapInvisible && t.Pos() == pos {
			return true
		}
	}
	return false
}

func roleOf(slideType int) (Role, bool) {
	switch slideType {
	case chart.SlideStart:
		return RoleStart, true
	case chart.SlideEnd:
		return RoleEnd, true
	case chart.SlideWaypoint:
		return RoleWaypoint, true
	case chart.SlideHiddenWaypoint:
		return RoleHiddenWaypoint, true
	}
	return RoleWaypoint, false
}
