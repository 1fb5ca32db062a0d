package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Load())
	assert.NoError(t, store.Save())
	assert.Zero(t, store.Writes())
}

func TestNewConfigStoreWithValues(t *testing.T) {
	seed := map[string]any{"backend.url": "http://seed:5000"}
	store := NewConfigStoreWithValues(seed)
	seed["backend.url"] = "changed"

	assert.Equal(t, "http://seed:5000", store.GetString("backend.url"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStoreWithValues(map[string]any{
		"backend.url":              "http://localhost:5000",
		"bulk.concurrency":         4,
		"backend.rate_limit":       int64(10),
		"backend.timeout_seconds":  2.0,
		"backend.breaker_failures": " 3",
		"text":                     "not_a_number",
		"flag":                     true,
	})

	assert.Equal(t, "http://localhost:5000", store.GetString("backend.url"))
	assert.Equal(t, 4, store.GetInt("bulk.concurrency"))
	assert.Equal(t, 10, store.GetInt("backend.rate_limit"))
	assert.Equal(t, 2, store.GetInt("backend.timeout_seconds"))
	assert.Equal(t, 3, store.GetInt("backend.breaker_failures"))

	assert.Equal(t, 0, store.GetInt("text"))
	assert.Equal(t, 0, store.GetInt("flag"))
	assert.Equal(t, "", store.GetString("bulk.concurrency"))

	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_Set(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("backend.url", "a"))
	require.NoError(t, store.Set("backend.url", "b"))

	assert.Equal(t, "b", store.GetString("backend.url"))
	assert.Equal(t, 2, store.Writes())
}

func TestConfigStore_WriteErr(t *testing.T) {
	store := NewConfigStore()
	store.WriteErr = errors.New("disk full")

	assert.EqualError(t, store.Set("backend.url", "a"), "disk full")
	assert.EqualError(t, store.Save(), "disk full")

	_, ok := store.Get("backend.url")
	assert.False(t, ok)
	assert.Zero(t, store.Writes())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("bulk.concurrency", n)
			_ = store.GetInt("bulk.concurrency")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, store.Writes())
}
