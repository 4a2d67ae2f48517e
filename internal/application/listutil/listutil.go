package listutil

// Optional holds the zero-or-one result of a lookup that may not match.
// Callers read it through First instead of checking nil, empty slices and
// single values at each call site.
type Optional[T any] struct {
	rows []T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{rows: []T{v}}
}

// None returns an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromRows keeps the first of rows, if any.
// PRE: none
// POST: Present() is true iff len(rows) > 0
func FromRows[T any](rows []T) Optional[T] {
	if len(rows) == 0 {
		return None[T]()
	}
	return Some(rows[0])
}

// First returns the held value and whether one exists.
func (o Optional[T]) First() (T, bool) {
	if len(o.rows) == 0 {
		var zero T
		return zero, false
	}
	return o.rows[0], true
}

// Present reports whether a value is held.
func (o Optional[T]) Present() bool {
	return len(o.rows) > 0
}

// Index is a read-only lookup of rows by key, built once per request.
type Index[T any] struct {
	byKey map[string]T
}

// NewIndex keys rows by key(row). Later rows with a duplicate key are ignored.
func NewIndex[T any](rows []T, key func(T) string) Index[T] {
	m := make(map[string]T, len(rows))
	for _, r := range rows {
		k := key(r)
		if _, dup := m[k]; dup {
			continue
		}
		m[k] = r
	}
	return Index[T]{byKey: m}
}

// Get looks up a row by key.
func (i Index[T]) Get(key string) Optional[T] {
	v, ok := i.byKey[key]
	if !ok {
		return None[T]()
	}
	return Some(v)
}

// Len returns the number of distinct keys.
func (i Index[T]) Len() int {
	return len(i.byKey)
}

// Unique returns the distinct non-empty values of key(row) in first-seen order.
// POST: never nil
func Unique[T any](rows []T, key func(T) string) []string {
	seen := make(map[string]bool, len(rows))
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		k := key(r)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
