package chart

import (
	"fmt"
)

// TicksPerBeat 四分音符的tick数
const TicksPerBeat = 480

// BPMChange BPM变化点
type BPMChange struct {
	Tick int
	BPM  float64
}

// TempoMapError BPM表为空或不单调
type TempoMapError struct {
	Index  int
	Reason string
}

func (e *TempoMapError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid tempo map: %s", e.Reason)
	}
	return fmt.Sprintf("invalid tempo map at entry %d: %s", e.Index, e.Reason)
}

// TempoMap 将tick换算为秒
type TempoMap struct {
	changes []BPMChange
	// offsets[i] 为 changes[i] 开始时刻的秒数
	offsets []float64
}

// NewTempoMap 校验并创建BPM表
func NewTempoMap(changes []BPMChange) (*TempoMap, error) {
	if len(changes) == 0 {
		return nil, &TempoMapError{Index: -1, Reason: "empty"}
	}
	if changes[0].Tick != 0 {
		return nil, &TempoMapError{Index: 0, Reason: fmt.Sprintf("first change at tick %d, want 0", changes[0].Tick)}
	}
	for i, c := range changes {
		if c.BPM <= 0 {
			return nil, &TempoMapError{Index: i, Reason: fmt.Sprintf("bpm %v is not positive", c.BPM)}
		}
		if i > 0 && c.Tick <= changes[i-1].Tick {
			return nil, &TempoMapError{Index: i, Reason: fmt.Sprintf("tick %d not after %d", c.Tick, changes[i-1].Tick)}
		}
	}

	tm := &TempoMap{
		changes: append([]BPMChange(nil), changes...),
		offsets: make([]float64, len(changes)),
	}
	for i := 1; i < len(changes); i++ {
		prev := changes[i-1]
		tm.offsets[i] = tm.offsets[i-1] + secondsAt(changes[i].Tick-prev.Tick, prev.BPM)
	}
	return tm, nil
}

// secondsAt 在固定BPM下，ticks个tick经过的秒数
func secondsAt(ticks int, bpm float64) float64 {
	return (float64(ticks) / TicksPerBeat) * (60 / bpm)
}

// Seconds 将tick换算为从0开始的秒数
func (tm *TempoMap) Seconds(tick int) float64 {
	// BPM无变化
	if len(tm.changes) == 1 {
		return secondsAt(tick, tm.changes[0].BPM)
	}

	// 取tick严格大于的最后一个变化点，恰好落在变化点上时归属前一段
	idx := 0
	for i, c := range tm.changes {
		if tick > c.Tick {
			idx = i
		} else {
			break
		}
	}
	c := tm.changes[idx]
	return tm.offsets[idx] + secondsAt(tick-c.Tick, c.BPM)
}

// Changes 返回BPM变化点副本
func (tm *TempoMap) Changes() []BPMChange {
	return append([]BPMChange(nil), tm.changes...)
}

// InitialBPM 开头的BPM
func (tm *TempoMap) InitialBPM() float64 {
	return tm.changes[0].BPM
}
