package mutex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedRWMutex_SerialisesPerKey(t *testing.T) {
	var m KeyedRWMutex[string]
	counters := map[string]int{"a": 0, "b": 0}
	var guard sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		for _, key := range []string{"a", "b"} {
			wg.Add(1)
			go func(key string) {
				defer wg.Done()
				m.Lock(key)
				defer m.Unlock(key)

				guard.Lock()
				v := counters[key]
				guard.Unlock()

				guard.Lock()
				counters[key] = v + 1
				guard.Unlock()
			}(key)
		}
	}
	wg.Wait()

	assert.Equal(t, 100, counters["a"])
	assert.Equal(t, 100, counters["b"])
	assert.Zero(t, m.Len())
}

func TestKeyedRWMutex_SharedReaders(t *testing.T) {
	var m KeyedRWMutex[int]
	m.RLock(1)
	m.RLock(1)
	assert.Equal(t, 1, m.Len())

	m.RUnlock(1)
	m.RUnlock(1)
	assert.Zero(t, m.Len())
}

func TestKeyedRWMutex_UnlockUnknownKeyPanics(t *testing.T) {
	var m KeyedRWMutex[string]
	assert.Panics(t, func() { m.Unlock("nope") })
}
