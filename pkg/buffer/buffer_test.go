package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadFIFO(t *testing.T) {
	b, err := NewCircular[int](4)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		require.NoError(t, b.Write(i))
	}
	assert.Equal(t, 3, b.Size())

	for i := 1; i <= 3; i++ {
		v, ok := b.Read()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}

	_, ok := b.Read()
	assert.False(t, ok)
}

func TestDropOldestOnOverflow(t *testing.T) {
	var dropped []int
	b, err := NewCircular(2,
		WithOverflowPolicy[int](DropOldest),
		WithDropCallback(func(v int) { dropped = append(dropped, v) }))
	require.NoError(t, err)

	require.NoError(t, b.Write(1))
	require.NoError(t, b.Write(2))
	require.NoError(t, b.Write(3))

	assert.Equal(t, []int{1}, dropped)
	v, ok := b.Read()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	stats := b.Stats()
	assert.Equal(t, int64(1), stats.Drops)
	assert.Equal(t, int64(1), stats.Overflows)
}

func TestDropNewestOnOverflow(t *testing.T) {
	b, err := NewCircular(2, WithOverflowPolicy[int](DropNewest))
	require.NoError(t, err)

	require.NoError(t, b.Write(1))
	require.NoError(t, b.Write(2))
	require.NoError(t, b.Write(3))

	v, ok := b.Read()
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestReadBatch(t *testing.T) {
	b, err := NewCircular[string](8)
	require.NoError(t, err)

	for _, s := range []string{"a", "b", "c", "d"} {
		require.NoError(t, b.Write(s))
	}

	batch := b.ReadBatch(3)
	assert.Equal(t, []string{"a", "b", "c"}, batch)
	assert.Equal(t, 1, b.Size())

	assert.Nil(t, b.ReadBatch(0))
}

func TestPeekAndClear(t *testing.T) {
	b, err := NewCircular[int](4)
	require.NoError(t, err)

	require.NoError(t, b.Write(7))
	v, ok := b.Peek()
	require.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, b.Size())

	b.Clear()
	assert.True(t, b.IsEmpty())
}

func TestClosedBufferRejectsWrites(t *testing.T) {
	b, err := NewCircular[int](2)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	assert.Error(t, b.Write(1))
}
