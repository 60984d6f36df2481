// Package timeline provides an ordered feed whose newest item always comes first.
package timeline

// Timeline holds items most-recent-first: Prepend puts an item at index 0 and
// Items returns them in that order. The zero value is an empty timeline.
// A Timeline is not safe for concurrent use.
type Timeline[T any] struct {
	items []T
}

// FromOldest builds a timeline from items listed oldest first.
func FromOldest[T any](items []T) Timeline[T] {
	var t Timeline[T]
	for _, it := range items {
		t.Prepend(it)
	}
	return t
}

// Prepend records item as the newest entry.
func (t *Timeline[T]) Prepend(item T) {
	t.items = append(t.items, item)
}

func (t *Timeline[T]) Len() int {
	return len(t.items)
}

// Items returns a copy, newest first.
func (t *Timeline[T]) Items() []T {
	out := make([]T, len(t.items))
	for i, it := range t.items {
		out[len(t.items)-1-i] = it
	}
	return out
}

// Latest returns the newest item.
func (t *Timeline[T]) Latest() (T, bool) {
	if len(t.items) == 0 {
		var zero T
		return zero, false
	}
	return t.items[len(t.items)-1], true
}

// Filter returns the items matching keep, newest first.
func (t *Timeline[T]) Filter(keep func(T) bool) []T {
	out := []T{}
	for i := len(t.items) - 1; i >= 0; i-- {
		if keep(t.items[i]) {
			out = append(out, t.items[i])
		}
	}
	return out
}
