// Package event provides a small synchronous observer registry.
package event

// SubscriptionID identifies one registered listener so it can be removed.
type SubscriptionID uint64

type listener[T any] struct {
	id SubscriptionID
	fn func(T)
}

// Emitter delivers payloads of type T to its listeners synchronously, in
// registration order. The zero value is ready to use. Not safe for
// concurrent use; the editor core is single-threaded.
type Emitter[T any] struct {
	next      SubscriptionID
	listeners []listener[T]
}

// On registers fn and returns the id to pass to Off.
func (e *Emitter[T]) On(fn func(T)) SubscriptionID {
	e.next++
	e.listeners = append(e.listeners, listener[T]{id: e.next, fn: fn})
	return e.next
}

// Off removes a listener. Unknown ids are ignored.
func (e *Emitter[T]) Off(id SubscriptionID) {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return
		}
	}
}

// Emit calls every listener with payload. Listeners added or removed while
// emitting take effect on the next Emit.
func (e *Emitter[T]) Emit(payload T) {
	snapshot := e.listeners
	for _, l := range snapshot {
		l.fn(payload)
	}
}

// Len returns the number of registered listeners.
func (e *Emitter[T]) Len() int {
	return len(e.listeners)
}
