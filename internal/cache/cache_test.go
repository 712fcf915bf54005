package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	c := New(2, time.Minute)

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestLRUEviction(t *testing.T) {
	c := New(2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)

	// touching "a" makes "b" the eviction candidate
	c.Get("a")
	c.Set("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestTTLExpiry(t *testing.T) {
	c := New(2, -time.Minute)

	c.Set("a", 1)
	_, ok := c.Get("a")
	assert.False(t, ok, "entries with an elapsed TTL must not be returned")
	assert.Equal(t, 0, c.Len(), "expired entry is removed on access")
}

func TestCleanExpired(t *testing.T) {
	c := New(4, -time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.CleanExpired()
	assert.Equal(t, 0, c.Len())
}

func TestDeleteAndClear(t *testing.T) {
	c := New(4, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestSetUpdatesExisting(t *testing.T) {
	c := New(2, time.Minute)
	c.Set("a", 1)
	c.Set("a", 2)

	v, _ := c.Get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}
