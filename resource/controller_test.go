package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_MemoryLimit(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	assert.True(t, c.TryAcquireMemory(60))
	assert.True(t, c.TryAcquireMemory(40))
	assert.Equal(t, int64(100), c.MemoryUsage())

	assert.False(t, c.TryAcquireMemory(1))

	c.ReleaseMemory(40)
	assert.Equal(t, int64(60), c.MemoryUsage())
	assert.True(t, c.TryAcquireMemory(20))
}

func TestController_TrackingOnly(t *testing.T) {
	c := NewController(Config{})

	assert.True(t, c.TryAcquireMemory(1<<40), "no limit configured")
	assert.Equal(t, int64(1<<40), c.MemoryUsage())
	c.ReleaseMemory(1 << 40)
	assert.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_NilSafe(t *testing.T) {
	var c *Controller

	assert.True(t, c.TryAcquireMemory(10))
	c.ReleaseMemory(10)
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.NoError(t, c.WaitIO(context.Background(), 10))
}

func TestController_WaitIO(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	require.NoError(t, c.WaitIO(context.Background(), 1024))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	slow := NewController(Config{IOLimitBytesPerSec: 1})
	require.NoError(t, slow.WaitIO(context.Background(), 1))

	err := slow.WaitIO(ctx, 1)
	assert.Error(t, err)
}
