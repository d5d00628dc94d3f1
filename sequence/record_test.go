package sequence

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Crush251/touchplay/chart"
	"github.com/Crush251/touchplay/synth"
)

func TestMillisTruncates(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, Millis(0))
	assert.Equal(20, Millis(0.02))
	assert.Equal(16, Millis(0.0166))
	assert.Equal(33, Millis(0.0166+0.0166))
	assert.Equal(41, Millis(0.02+0.021))
	assert.Equal(1999, Millis(1.9999))
}

func TestFromEventsSingleTap(t *testing.T) {
	tm, err := chart.NewTempoMap([]chart.BPMChange{{Tick: 0, BPM: 120}})
	require.NoError(t, err)
	c := &chart.Chart{
		Tempo: tm,
		Taps:  []chart.TapNote{{Tick: 0, Lane: 2, Width: 4, Type: chart.TapNormal}},
	}
	events, err := synth.Synthesize(c)
	require.NoError(t, err)

	records := FromEvents(events)
	require.Len(t, records, 2+3*synth.PoolSize)
	assert.Equal(t, Record{TimeMS: 0, TouchID: 0, X: 2667, Y: 8000, Action: 0}, records[0])
	assert.Equal(t, Record{TimeMS: 20, TouchID: 0, X: 2667, Y: 8000, Action: 1}, records[1])
	assert.Equal(t, Record{TimeMS: 21, TouchID: 9, X: 0, Y: 0, Action: 1}, records[11])
	assert.Equal(t, Record{TimeMS: 22, TouchID: 0, X: 5000, Y: 5000, Action: 0}, records[12])
	assert.NoError(t, Validate(records))
}

func TestRecordFormats(t *testing.T) {
	r := Record{TimeMS: 1250, TouchID: 3, X: 4417, Y: 7668, Action: 0}
	assert.Equal(t, "1250 3 4417 7668 0", r.String())
	assert.Equal(t, "3,4417,7668,0\r", r.SerialLine())

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, []Record{r, {TimeMS: 1270, TouchID: 3, X: 4417, Y: 8000, Action: 1}}))
	assert.Equal(t, "1250 3 4417 7668 0\n1270 3 4417 8000 1\n", buf.String())
}

func TestValidate(t *testing.T) {
	ok := []Record{
		{TimeMS: 0, TouchID: 1, Action: 0},
		{TimeMS: 5, TouchID: 1, Action: 0},
		{TimeMS: 20, TouchID: 1, Action: 1},
		{TimeMS: 21, TouchID: 4, Action: 1},
	}
	assert.NoError(t, Validate(ok))
	assert.NoError(t, Validate(nil))

	cases := map[string][]Record{
		"time goes back":  {{TimeMS: 10, TouchID: 0, Action: 0}, {TimeMS: 9, TouchID: 0, Action: 1}},
		"id out of range": {{TimeMS: 0, TouchID: 10, Action: 0}},
		"unknown action":  {{TimeMS: 0, TouchID: 0, Action: 2}},
		"never released":  {{TimeMS: 0, TouchID: 2, Action: 0}},
	}
	for name, records := range cases {
		assert.Error(t, Validate(records), name)
	}
}
