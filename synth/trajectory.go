package synth

import (
	"errors"
	"sort"

	"github.com/Crush251/touchplay/chart"
	"github.com/Crush251/touchplay/util"
)

////////////////////////////////////////////////////////////////////////////////
// 触摸轨迹合成
////////////////////////////////////////////////////////////////////////////////

// synthesizer 一次合成的状态，不在调用之间共享
type synthesizer struct {
	tempo  *chart.TempoMap
	pool   *Pool
	groups map[int][]Note
	events []TouchEvent
}

// Trajectories 把分类后的音符流展开为未排序的触摸事件
func Trajectories(tempo *chart.TempoMap, notes []Note) ([]TouchEvent, error) {
	s := &synthesizer{
		tempo:  tempo,
		pool:   NewPool(),
		groups: make(map[int][]Note),
	}
	for _, n := range notes {
		if n.Kind == KindSlide {
			s.groups[n.Anchor.Group] = append(s.groups[n.Anchor.Group], n)
		}
	}
	ids := make([]int, 0, len(s.groups))
	for g := range s.groups {
		ids = append(ids, g)
	}
	sort.Ints(ids)
	for _, g := range ids {
		if err := checkGroup(s.groups[g]); err != nil {
			return nil, err
		}
	}

	for _, n := range notes {
		// 扫描指针走到这个音符，之前已经结束的触摸点先归还
		s.pool.Sweep(s.seconds(n.Tick))

		var err error
		switch n.Kind {
		case KindTap:
			err = s.tap(n)
		case KindFlick:
			err = s.flick(n)
		case KindSlide:
			if n.Anchor.Role == RoleStart {
				err = s.slide(n)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return s.events, nil
}

// checkGroup 长条组必须以起点开始、终点结束
func checkGroup(anchors []Note) error {
	first, last := anchors[0], anchors[len(anchors)-1]
	if first.Anchor.Role != RoleStart {
		return &ClassificationError{
			Tick: first.Tick, Lane: first.Lane, Width: first.Width,
			Role: first.Anchor.Role, Subtype: first.Subtype,
			Reason: "slide group does not begin with a start",
		}
	}
	if last.Anchor.Role != RoleEnd || len(anchors) < 2 {
		return &ClassificationError{
			Tick: last.Tick, Lane: last.Lane, Width: last.Width,
			Role: last.Anchor.Role, Subtype: last.Subtype,
			Reason: "slide group does not finish with an end",
		}
	}
	return nil
}

func (s *synthesizer) seconds(tick int) float64 {
	return s.tempo.Seconds(tick)
}

// emit 记录一个事件，坐标向零截断为设备整数坐标
func (s *synthesizer) emit(t float64, id int, action Action, x, y float64) {
	s.events = append(s.events, TouchEvent{
		Time:   t,
		ID:     id,
		Action: action,
		X:      int(x),
		Y:      int(y),
	})
}

// allocate 从编号池取编号，耗尽时带上音符tick
func (s *synthesizer) allocate(tick int) (int, error) {
	id, err := s.pool.Allocate()
	if err != nil {
		var pe *PoolExhaustedError
		if errors.As(err, &pe) {
			pe.Tick = tick
		}
		return 0, err
	}
	return id, nil
}

// tap 按下后0.02秒抬起
func (s *synthesizer) tap(n Note) error {
	id, err := s.allocate(n.Tick)
	if err != nil {
		return err
	}
	t := s.seconds(n.Tick)
	x, y := float64(n.X()), float64(chart.ScreenY())
	s.emit(t, id, ActionContact, x, y)
	s.emit(t+TapDuration, id, ActionRelease, x, y)
	s.pool.Schedule(id, t+TapDuration)
	return nil
}

// flick 按下、滑动、在原位置抬起
func (s *synthesizer) flick(n Note) error {
	id, err := s.allocate(n.Tick)
	if err != nil {
		return err
	}
	t := s.seconds(n.Tick)
	x, y := float64(n.X()), float64(chart.ScreenY())
	s.emit(t, id, ActionContact, x, y)
	s.flickArc(t, id, x, y, n.Flick)
	s.emit(t+FlickDuration, id, ActionRelease, x, y)
	s.pool.Schedule(id, t+FlickDuration)
	return nil
}

// flickArc 从start开始每FlickInterval采样一次移动，不含抬起
func (s *synthesizer) flickArc(start float64, id int, x, y float64, dir Flick) {
	speed := FlickOffset / FlickDuration
	for t := start + FlickInterval; t < start+FlickDuration; t += FlickInterval {
		d := (t - start) * speed
		switch dir {
		case FlickUp:
			s.emit(t, id, ActionContact, x, y-d)
		case FlickUpperLeft:
			s.emit(t, id, ActionContact, x-d, y-d)
		case FlickUpperRight:
			s.emit(t, id, ActionContact, x+d, y-d)
		}
	}
}

// slide 从起点开始走完整个长条组
func (s *synthesizer) slide(start Note) error {
	id, err := s.allocate(start.Tick)
	if err != nil {
		return err
	}
	x := float64(start.X())
	s.emit(s.seconds(start.Tick), id, ActionContact, x, float64(chart.ScreenY()))

	w := &slideWalk{
		s:                 s,
		id:                id,
		anchors:           s.groups[start.Anchor.Group],
		divisionStartTick: start.Tick,
		divisionTick:      start.Tick,
		divisionStartX:    x,
		ease:              start.Anchor.Easing.Func(),
	}
	for !w.step() {
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// 长条游标
////////////////////////////////////////////////////////////////////////////////

// slideWalk 在一个长条组内逐段前进
//
// 插值链从最近一个非跳过锚点(divisionStart)到其后第一个非跳过锚点(reference)，
// 跳过的中继点只采样，不重置链。
type slideWalk struct {
	s       *synthesizer
	id      int
	anchors []Note
	cursor  int

	divisionStartTick int
	divisionTick      int
	divisionStartX    float64
	referenceTick     int
	referenceX        float64
	ease              EaseFunc
}

// step 处理cursor到下一个锚点之间的一段，走到终点时返回true
func (w *slideWalk) step() bool {
	y := float64(chart.ScreenY())
	cur := w.anchors[w.cursor]
	next := w.anchors[w.cursor+1]

	if cur.Anchor.Easing != EaseSkip {
		w.resetChain(cur)
	}

	for next.Tick-w.divisionTick > SlideDivisionTicks {
		w.divisionTick += SlideDivisionTicks
		w.s.emit(w.s.seconds(w.divisionTick), w.id, ActionContact, w.interpolate(w.divisionTick), y)
	}

	if next.Anchor.Role == RoleEnd {
		w.finish(next)
		return true
	}

	w.s.emit(w.s.seconds(next.Tick), w.id, ActionContact, w.interpolate(next.Tick), y)
	if next.Anchor.Easing != EaseSkip {
		w.ease = next.Anchor.Easing.Func()
	}
	w.cursor++
	return false
}

// resetChain 以cur为新的插值起点，找到下一个非跳过锚点作为参考
func (w *slideWalk) resetChain(cur Note) {
	w.divisionStartTick = cur.Tick
	w.divisionTick = cur.Tick
	w.divisionStartX = float64(cur.X())

	ref := w.anchors[w.cursor+1]
	for _, a := range w.anchors[w.cursor+1:] {
		if a.Anchor.Easing != EaseSkip {
			ref = a
			break
		}
	}
	w.referenceTick = ref.Tick
	w.referenceX = float64(ref.X())
}

// interpolate 按秒计算进度，返回tick处的x
func (w *slideWalk) interpolate(tick int) float64 {
	t0 := w.s.seconds(w.divisionStartTick)
	span := w.s.seconds(w.referenceTick) - t0
	progress := 1.0
	if span > 0 {
		progress = util.Clamp((w.s.seconds(tick)-t0)/span, 0, 1)
	}
	return w.ease(progress)*(w.referenceX-w.divisionStartX) + w.divisionStartX
}

// finish 在终点移动到终点坐标，然后直接抬起或滑动后抬起
func (w *slideWalk) finish(end Note) {
	t := w.s.seconds(end.Tick)
	x, y := float64(end.X()), float64(chart.ScreenY())
	w.s.emit(t, w.id, ActionContact, x, y)

	release := t
	if end.Anchor.EndFlick != FlickNone {
		w.s.flickArc(t, w.id, x, y, end.Anchor.EndFlick)
		release = t + FlickDuration
	}
	w.s.emit(release, w.id, ActionRelease, x, y)
	w.s.pool.Schedule(w.id, release)
}
