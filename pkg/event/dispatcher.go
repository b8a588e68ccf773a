// Package event runs callbacks attached to a named event of a single drone connection.
package event

import (
	"sync"
)

// Dispatcher holds the handlers of one event. Fire runs them in attachment order on the
// caller's goroutine.
type Dispatcher[T any] struct {
	mux      sync.RWMutex
	handlers []func(T)
}

func (d *Dispatcher[T]) Attach(handler func(T)) {
	d.mux.Lock()
	defer d.mux.Unlock()
	d.handlers = append(d.handlers, handler)
}

func (d *Dispatcher[T]) Fire(arg T) {
	d.mux.RLock()
	handlers := make([]func(T), len(d.handlers))
	copy(handlers, d.handlers)
	d.mux.RUnlock()

	for _, h := range handlers {
		h(arg)
	}
}
