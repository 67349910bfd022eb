package repo

import "sync"

// memoryTable is a mutex guarded row store with a monotonically increasing
// primary key. Deleted ids are never reused because rows are never deleted.
type memoryTable[T any] struct {
	mu     sync.RWMutex
	rows   map[int]T
	nextID int
}

func newMemoryTable[T any]() *memoryTable[T] {
	return &memoryTable[T]{rows: map[int]T{}, nextID: 1}
}

// insert assigns the next id through setID and stores the row. If check
// returns an error for any existing row, nothing is stored.
func (t *memoryTable[T]) insert(row T, setID func(*T, int), check func(existing T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if check != nil {
		for _, existing := range t.rows {
			if err := check(existing); err != nil {
				var zero T
				return zero, err
			}
		}
	}

	setID(&row, t.nextID)
	t.rows[t.nextID] = row
	t.nextID++
	return row, nil
}

func (t *memoryTable[T]) get(id int) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

func (t *memoryTable[T]) find(match func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, row := range t.rows {
		if match(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

func (t *memoryTable[T]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

func (t *memoryTable[T]) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = map[int]T{}
}
