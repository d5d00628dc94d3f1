package synth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Crush251/touchplay/chart"
)

func newChart(t *testing.T, changes ...chart.BPMChange) *chart.Chart {
	t.Helper()
	if len(changes) == 0 {
		changes = []chart.BPMChange{{Tick: 0, BPM: 120}}
	}
	tm, err := chart.NewTempoMap(changes)
	require.NoError(t, err)
	return &chart.Chart{Tempo: tm}
}

// body 去掉结尾的安全序列
func body(events []TouchEvent) []TouchEvent {
	return events[:len(events)-3*PoolSize]
}

// mixedChart 点击、滑动、两组长条交错，带速度变化
func mixedChart(t *testing.T) *chart.Chart {
	c := newChart(t, chart.BPMChange{Tick: 0, BPM: 120}, chart.BPMChange{Tick: 960, BPM: 180})
	c.Taps = []chart.TapNote{
		{Tick: 0, Lane: 2, Width: 2, Type: chart.TapNormal},
		{Tick: 240, Lane: 6, Width: 2, Type: chart.TapCritical},
		{Tick: 480, Lane: 10, Width: 2, Type: chart.TapNormal},
		{Tick: 480, Lane: 4, Width: 3, Type: chart.TapInvisible},
		{Tick: 1440, Lane: 8, Width: 2, Type: chart.TapNormal},
	}
	c.Directionals = []chart.DirectionalNote{
		{Tick: 240, Lane: 10, Width: 2, Type: chart.DirUp},
		{Tick: 720, Lane: 4, Width: 2, Type: chart.DirUpperRight},
		{Tick: 960, Lane: 12, Width: 2, Type: chart.DirUpperLeft},
		{Tick: 720, Lane: 2, Width: 2, Type: chart.DirDown},
	}
	c.Slides = [][]chart.SlideNote{
		{
			{Tick: 0, Lane: 4, Width: 3, Type: chart.SlideStart},
			{Tick: 480, Lane: 4, Width: 3, Type: chart.SlideWaypoint},
			{Tick: 960, Lane: 12, Width: 2, Type: chart.SlideEnd},
		},
		{
			{Tick: 720, Lane: 2, Width: 2, Type: chart.SlideStart},
			{Tick: 1200, Lane: 6, Width: 2, Type: chart.SlideHiddenWaypoint},
			{Tick: 1680, Lane: 2, Width: 2, Type: chart.SlideEnd},
		},
	}
	return c
}
