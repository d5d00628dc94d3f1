package synth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolAllocatesInOrderUntilExhausted(t *testing.T) {
	p := NewPool()
	for want := 0; want < PoolSize; want++ {
		id, err := p.Allocate()
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
	assert.Equal(t, 0, p.Available())

	_, err := p.Allocate()
	var pe *PoolExhaustedError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, PoolSize, pe.Size)
}

func TestPoolReleaseIsFIFOAndIdempotent(t *testing.T) {
	p := NewPool()
	for i := 0; i < PoolSize; i++ {
		_, err := p.Allocate()
		require.NoError(t, err)
	}
	p.Release(5)
	p.Release(2)
	p.Release(5)
	p.Release(42)
	assert.Equal(t, 2, p.Available())

	id, err := p.Allocate()
	require.NoError(t, err)
	assert.Equal(t, 5, id)
	id, err = p.Allocate()
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}

func TestPoolSweepFreesOnlyPassedReleases(t *testing.T) {
	p := NewPool()
	for i := 0; i < PoolSize; i++ {
		_, err := p.Allocate()
		require.NoError(t, err)
	}
	p.Schedule(7, 1.0)
	p.Schedule(3, 0.5)
	p.Schedule(9, 3.0)

	p.Sweep(0.5)
	assert.Equal(t, 0, p.Available(), "release at exactly now is not passed yet")
	assert.Equal(t, 3, p.Pending())

	p.Sweep(2.0)
	assert.Equal(t, 2, p.Available())
	assert.Equal(t, 1, p.Pending())

	// 按排期顺序归还
	id, err := p.Allocate()
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	id, err = p.Allocate()
	require.NoError(t, err)
	assert.Equal(t, 3, id)
}
