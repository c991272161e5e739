package sync

import "sync"

// Pool 泛型版本的sync.Pool
type Pool[T any] struct {
	p   sync.Pool
	New func() T
}

func NewPool[T any](fn func() T) *Pool[T] {
	return &Pool[T]{New: fn}
}

func (p *Pool[T]) Get() T {
	v := p.p.Get()
	if v == nil {
		if p.New != nil {
			return p.New()
		}
		return *new(T)
	}

	return v.(T)
}

func (p *Pool[T]) Put(v T) {
	p.p.Put(v)
}
