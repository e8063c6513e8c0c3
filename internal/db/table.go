package db

// Table is an insertion-ordered collection keyed by integer ID. IDs come from
// a counter that only grows, so a deleted ID is never handed out again.
type Table[T any] struct {
	rows  map[int]T
	order []int
	seq   int
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{rows: make(map[int]T)}
}

// Insert allocates the next ID, builds the row with it and stores the row.
func (t *Table[T]) Insert(build func(id int) T) T {
	t.seq++
	row := build(t.seq)
	t.rows[t.seq] = row
	t.order = append(t.order, t.seq)
	return row
}

func (t *Table[T]) Get(id int) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

// Put replaces an existing row. It reports false if id is not present.
func (t *Table[T]) Put(id int, row T) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = row
	return true
}

func (t *Table[T]) Delete(id int) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns a copy of every row in insertion order.
func (t *Table[T]) All() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

// Find returns the first row, in insertion order, for which match is true.
func (t *Table[T]) Find(match func(T) bool) (T, bool) {
	for _, id := range t.order {
		if row := t.rows[id]; match(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns every row, in insertion order, for which match is true.
func (t *Table[T]) Filter(match func(T) bool) []T {
	out := make([]T, 0)
	for _, id := range t.order {
		if row := t.rows[id]; match(row) {
			out = append(out, row)
		}
	}
	return out
}

func (t *Table[T]) Len() int {
	return len(t.order)
}
