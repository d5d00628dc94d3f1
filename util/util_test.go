package util

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0.0, Clamp(-0.5, 0.0, 1.0))
	assert.Equal(1.0, Clamp(1.5, 0.0, 1.0))
	assert.Equal(0.25, Clamp(0.25, 0.0, 1.0))
	assert.Equal(3, Clamp(7, 0, 3))
}

func TestConvertToFloat(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{120.5, 120.5, true},
		{float32(2), 2, true},
		{60, 60, true},
		{int64(90), 90, true},
		{json.Number("150"), 150, true},
		{"fast", 0, false},
		{nil, 0, false},
	}

	for _, c := range cases {
		got, ok := ConvertToFloat(c.in)
		assert.Equal(t, c.ok, ok, "%v", c.in)
		assert.Equal(t, c.want, got, "%v", c.in)
	}
}
