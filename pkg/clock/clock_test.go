package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeAdvance(t *testing.T) {
	c := NewFake()
	start := c.Now()

	c.Advance(5 * time.Second)
	assert.Equal(t, start.Add(5*time.Second), c.Now())

	c.Sleep(250 * time.Millisecond)
	assert.Equal(t, start.Add(5*time.Second+250*time.Millisecond), c.Now())
}

func TestFakeAfterNeverBlocks(t *testing.T) {
	c := NewFake()
	start := c.Now()

	select {
	case ts := <-c.After(time.Minute):
		assert.Equal(t, start.Add(time.Minute), ts)
	default:
		t.Fatal("fake After must deliver immediately")
	}
}

func TestRealNowMonotonicOrder(t *testing.T) {
	c := NewReal()
	a := c.Now()
	b := c.Now()
	require.False(t, b.Before(a))
}
