package sync

import "sync"

type WaitGroup struct {
	sync.WaitGroup
}

// Go 在新的goroutine中执行fn, 并在fn返回后调用Done
func (wg *WaitGroup) Go(fn func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		fn()
	}()
}
