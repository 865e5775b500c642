package rand

import (
	"math/rand"
	"sync"
)

// Rand is a math/rand source safe for concurrent use.
type Rand struct {
	src  *rand.Rand
	lock sync.Mutex
}

func NewRand(seed int64) *Rand {
	return &Rand{
		src: rand.New(rand.NewSource(seed)),
	}
}

func (l *Rand) Int63() int64 {
	l.lock.Lock()
	val := l.src.Int63()
	l.lock.Unlock()
	return val
}

func (l *Rand) Uint32() uint32 {
	l.lock.Lock()
	val := l.src.Uint32()
	l.lock.Unlock()
	return val
}

func (l *Rand) Float64() float64 {
	l.lock.Lock()
	val := l.src.Float64()
	l.lock.Unlock()
	return val
}
