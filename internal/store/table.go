package store

import "sync"

// table is the insertion-ordered backing collection for one entity type.
// Every exported repository method takes the lock exactly once, so each
// scan-then-mutate sequence below runs as a single critical section.
type table[T any] struct {
	mu    sync.Mutex
	rows  []T
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &table[T]{clone: clone}
}

func (t *table[T]) all() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copyOf(t.rows)
}

func (t *table[T]) filter(match func(T) bool) []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]T, 0)
	for _, row := range t.rows {
		if match(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}

func (t *table[T]) first(match func(T) bool) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i := t.index(match); i >= 0 {
		return t.clone(t.rows[i]), true
	}
	var zero T
	return zero, false
}

func (t *table[T]) insert(rows ...T) []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, row := range rows {
		t.rows = append(t.rows, t.clone(row))
	}
	return t.copyOf(rows)
}

// upsert replaces the first matching row wholesale, or appends.
func (t *table[T]) upsert(row T, match func(T) bool) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i := t.index(match); i >= 0 {
		t.rows[i] = t.clone(row)
	} else {
		t.rows = append(t.rows, t.clone(row))
	}
	return t.clone(row)
}

// modify applies fn to the first matching row in place.
func (t *table[T]) modify(match func(T) bool, fn func(*T)) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.index(match)
	if i < 0 {
		var zero T
		return zero, false
	}
	fn(&t.rows[i])
	return t.clone(t.rows[i]), true
}

// appendDerived builds a new row from the current rows and appends it.
// derive reports false to abort without appending.
func (t *table[T]) appendDerived(derive func(rows []T) (T, bool)) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := derive(t.rows)
	if !ok {
		var zero T
		return zero, false
	}
	t.rows = append(t.rows, t.clone(row))
	return t.clone(row), true
}

func (t *table[T]) removeFirst(match func(T) bool) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.index(match)
	if i < 0 {
		var zero T
		return zero, false
	}
	removed := t.rows[i]
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return removed, true
}

// removeWhere deletes every matching row and returns them in store order.
func (t *table[T]) removeWhere(match func(T) bool) []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	removed := make([]T, 0)
	kept := t.rows[:0]
	for _, row := range t.rows {
		if match(row) {
			removed = append(removed, row)
		} else {
			kept = append(kept, row)
		}
	}
	clear(t.rows[len(kept):])
	t.rows = kept
	return removed
}

func (t *table[T]) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

func (t *table[T]) index(match func(T) bool) int {
	for i, row := range t.rows {
		if match(row) {
			return i
		}
	}
	return -1
}

func (t *table[T]) copyOf(rows []T) []T {
	out := make([]T, len(rows))
	for i, row := range rows {
		out[i] = t.clone(row)
	}
	return out
}
