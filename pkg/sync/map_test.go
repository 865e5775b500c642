package sync

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapStoreLoad(t *testing.T) {
	m := NewMap[string, int]()
	_, ok := m.Load("a")
	require.False(t, ok)

	m.Store("a", 1)
	v, ok := m.Load("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.Equal(t, 1, m.Length())
}

func TestMapLoadOrStore(t *testing.T) {
	m := NewMap[string, int]()
	v, loaded := m.LoadOrStore("a", 1)
	require.False(t, loaded)
	require.Equal(t, 1, v)

	v, loaded = m.LoadOrStore("a", 2)
	require.True(t, loaded)
	require.Equal(t, 1, v)
}

func TestMapLoadAndDelete(t *testing.T) {
	m := NewMap[string, int]()
	m.Store("a", 1)

	v, loaded := m.LoadAndDelete("a")
	require.True(t, loaded)
	require.Equal(t, 1, v)

	_, loaded = m.LoadAndDelete("a")
	require.False(t, loaded)
	require.Equal(t, 0, m.Length())
}

func TestMapRange(t *testing.T) {
	m := NewMap[int, int]()
	for i := 0; i < 5; i++ {
		m.Store(i, i*i)
	}

	seen := make(map[int]int)
	m.Range(func(key, value int) bool {
		seen[key] = value
		// mutation during iteration must not deadlock
		m.Delete(key)
		return true
	})
	require.Len(t, seen, 5)
	require.Equal(t, 0, m.Length())

	m.Store(1, 1)
	m.Store(2, 2)
	count := 0
	m.Range(func(int, int) bool {
		count++
		return false
	})
	require.Equal(t, 1, count)
}
