package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFireInAttachmentOrder(t *testing.T) {
	var d Dispatcher[int]
	var calls []string
	d.Attach(func(v int) { calls = append(calls, "first") })
	d.Attach(func(v int) { calls = append(calls, "second") })
	d.Attach(func(v int) { assert.Equal(t, 7, v) })
	d.Attach(func(v int) { calls = append(calls, "fourth") })

	d.Fire(7)
	assert.Equal(t, []string{"first", "second", "fourth"}, calls)
}

func TestFireWithoutHandlers(t *testing.T) {
	var d Dispatcher[string]
	assert.NotPanics(t, func() { d.Fire("ok") })
}

func TestHandlerMayAttach(t *testing.T) {
	var d Dispatcher[struct{}]
	var late int
	d.Attach(func(struct{}) { d.Attach(func(struct{}) { late++ }) })

	d.Fire(struct{}{})
	assert.Equal(t, 0, late)
	d.Fire(struct{}{})
	assert.Equal(t, 1, late)
}

func TestConcurrentFire(t *testing.T) {
	var d Dispatcher[int]
	var mux sync.Mutex
	var sum int
	d.Attach(func(v int) {
		mux.Lock()
		sum += v
		mux.Unlock()
	})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Fire(1)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, sum)
}
