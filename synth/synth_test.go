package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Crush251/touchplay/chart"
)

func TestSynthesizeIsDeterministic(t *testing.T) {
	first, err := Synthesize(mixedChart(t))
	require.NoError(t, err)
	second, err := Synthesize(mixedChart(t))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSynthesizeChronologicalOrder(t *testing.T) {
	events, err := Synthesize(mixedChart(t))
	require.NoError(t, err)

	assert.Equal(t, 0.0, events[0].Time)
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(t, events[i-1].Time, events[i].Time, "event %d", i)
	}
}

func TestSynthesizeTouchPairing(t *testing.T) {
	events, err := Synthesize(mixedChart(t))
	require.NoError(t, err)

	down := make(map[int]bool)
	for i, e := range body(events) {
		require.True(t, e.ID >= 0 && e.ID < PoolSize, "event %d id %d", i, e.ID)
		switch e.Action {
		case ActionContact:
			down[e.ID] = true
		case ActionRelease:
			require.True(t, down[e.ID], "release of id %d without contact at event %d", e.ID, i)
			down[e.ID] = false
		}
	}
	for id, d := range down {
		assert.False(t, d, "id %d still down before the safety tail", id)
	}
}

func TestSynthesizeTouchCount(t *testing.T) {
	events, err := Synthesize(mixedChart(t))
	require.NoError(t, err)

	touches := 0
	for _, e := range body(events) {
		if e.Action == ActionRelease {
			touches++
		}
	}
	// 4个点击 + 1个独立滑动 + 2个长条，结尾滑动被长条吸收
	assert.Equal(t, 7, touches)
}

func TestSynthesizeNormalizesLateStart(t *testing.T) {
	c := newChart(t)
	c.Taps = []chart.TapNote{{Tick: 960, Lane: 2, Width: 4, Type: chart.TapNormal}}

	events, err := Synthesize(c)
	require.NoError(t, err)
	assert.Equal(t, 0.0, events[0].Time)
	assert.InDelta(t, 0.02, events[1].Time, 1e-9)
}

func TestSynthesizeEmptyChart(t *testing.T) {
	events, err := Synthesize(newChart(t))
	require.NoError(t, err)
	assert.Len(t, events, 3*PoolSize)
}

func TestSynthesizeFromFile(t *testing.T) {
	c, err := chart.Load("../chart/testdata/basic.json")
	require.NoError(t, err)

	events, err := Synthesize(c)
	require.NoError(t, err)
	ev := body(events)

	// 越界的控制音符在读取时已经去掉
	releases := 0
	for _, e := range ev {
		if e.Action == ActionRelease {
			releases++
		}
	}
	assert.Equal(t, 4, releases)
}
