// Package inmemdb is the in-memory storage behind the dev API.
package inmemdb

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("record not found")

// Table is a set of records keyed by an auto-incremented id.
type Table[T any] struct {
	mutex   sync.RWMutex
	table   map[int]*T
	pkCount int
	getID   func(T) int
	setID   func(*T, int)
}

func NewTable[T any](getID func(T) int, setID func(*T, int)) *Table[T] {
	return &Table[T]{table: make(map[int]*T), getID: getID, setID: setID}
}

// query returns every record ordered by id. Caller holds the lock.
func (t *Table[T]) query() []T {
	recs := make([]T, 0, len(t.table))
	for _, rec := range t.table {
		recs = append(recs, *rec)
	}
	sort.Slice(recs, func(i, j int) bool { return t.getID(recs[i]) < t.getID(recs[j]) })
	return recs
}

func (t *Table[T]) Insert(rec T) T {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.pkCount++
	t.setID(&rec, t.pkCount)
	t.table[t.pkCount] = &rec
	return rec
}

func (t *Table[T]) Get(id int) (T, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	if rec, ok := t.table[id]; ok {
		return *rec, nil
	}
	var zero T
	return zero, ErrNotFound
}

// Find returns the first record (by id) matching fn.
func (t *Table[T]) Find(fn func(T) bool) (T, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	for _, rec := range t.query() {
		if fn(rec) {
			return rec, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// Update applies fn to a copy of record id and stores it unless fn fails.
func (t *Table[T]) Update(id int, fn func(*T) error) (T, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	orig, ok := t.table[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	rec := *orig
	if err := fn(&rec); err != nil {
		return *orig, err
	}
	t.setID(&rec, id)
	t.table[id] = &rec
	return rec, nil
}

func (t *Table[T]) Delete(id int) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, ok := t.table[id]; !ok {
		return ErrNotFound
	}
	delete(t.table, id)
	return nil
}

// Query returns the records matching fn (every record when fn is nil), ordered by id.
func (t *Table[T]) Query(fn func(T) bool) []T {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	recs := t.query()
	if fn == nil {
		return recs
	}
	matched := make([]T, 0, len(recs))
	for _, rec := range recs {
		if fn(rec) {
			matched = append(matched, rec)
		}
	}
	return matched
}

func (t *Table[T]) Count(fn func(T) bool) int {
	return len(t.Query(fn))
}

// Paginate returns page `page` (1-based) of recs and the total count.
func Paginate[T any](recs []T, page, limit int) ([]T, int) {
	total := len(recs)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return recs, total
	}
	start := (page - 1) * limit
	if start >= total {
		return make([]T, 0), total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return recs[start:end], total
}
