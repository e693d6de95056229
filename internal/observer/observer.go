// Package observer provides explicit listener registration.
//
// One Notify call reaches every listener registered at that moment, in
// registration order. Registries are not safe for concurrent use.
package observer

// Registry holds listeners for values of type T.
type Registry[T any] struct {
	next      int
	listeners []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it again.
// A nil fn is ignored.
func (r *Registry[T]) Subscribe(fn func(T)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	r.next++
	id := r.next
	r.listeners = append(r.listeners, listener[T]{id: id, fn: fn})
	return func() { r.remove(id) }
}

func (r *Registry[T]) remove(id int) {
	for i, l := range r.listeners {
		if l.id == id {
			r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Notify calls every listener with v.
func (r *Registry[T]) Notify(v T) {
	if r == nil || len(r.listeners) == 0 {
		return
	}
	// Listeners may unsubscribe while being notified.
	ls := append([]listener[T](nil), r.listeners...)
	for _, l := range ls {
		l.fn(v)
	}
}

// Len returns the number of registered listeners.
func (r *Registry[T]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.listeners)
}
