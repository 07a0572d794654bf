package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	b, err := JSON{}.Marshal(map[string]any{"id": 1})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, JSON{}.Unmarshal(b, &m))
	assert.Equal(t, float64(1), m["id"])
	assert.Equal(t, "json", JSON{}.Name())
}

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestMustMarshal(t *testing.T) {
	assert.NotPanics(t, func() {
		MustMarshal(nil, map[string]int{"a": 1})
	})
	assert.Panics(t, func() {
		MustMarshal(JSON{}, make(chan int))
	})
}
