package inmemdb

import (
	"errors"
	"testing"
)

type rec struct {
	ID   int
	Name string
}

func newRecTable() *Table[rec] {
	return NewTable(func(r rec) int { return r.ID }, func(r *rec, id int) { r.ID = id })
}

func TestTable_CRUD(t *testing.T) {
	tbl := newRecTable()
	a := tbl.Insert(rec{Name: "a"})
	b := tbl.Insert(rec{ID: 99, Name: "b"})
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("Insert() ids = %d, %d, want 1, 2", a.ID, b.ID)
	}

	got, err := tbl.Get(2)
	if err != nil || got.Name != "b" {
		t.Errorf("Get(2) = %+v, %v", got, err)
	}
	if _, err := tbl.Get(3); err != ErrNotFound {
		t.Errorf("Get(3) error = %v, want %v", err, ErrNotFound)
	}

	upd, err := tbl.Update(1, func(r *rec) error { r.Name = "A"; r.ID = 5; return nil })
	if err != nil || upd.Name != "A" || upd.ID != 1 {
		t.Errorf("Update(1) = %+v, %v", upd, err)
	}
	boom := errors.New("boom")
	if _, err := tbl.Update(1, func(r *rec) error { r.Name = "lost"; return boom }); err != boom {
		t.Errorf("Update() error = %v, want %v", err, boom)
	}
	if got, _ := tbl.Get(1); got.Name != "A" {
		t.Errorf("failed Update() changed the record: %+v", got)
	}

	if err := tbl.Delete(1); err != nil {
		t.Errorf("Delete(1) unexpected error = %v", err)
	}
	if err := tbl.Delete(1); err != ErrNotFound {
		t.Errorf("second Delete(1) error = %v, want %v", err, ErrNotFound)
	}
	if c := tbl.Count(nil); c != 1 {
		t.Errorf("Count() = %d, want 1", c)
	}
	if r := tbl.Insert(rec{}); r.ID != 3 {
		t.Errorf("Insert() after Delete() id = %d, want 3", r.ID)
	}
}

func TestPaginate(t *testing.T) {
	recs := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	tests := []struct {
		name      string
		page      int
		limit     int
		wantFirst int
		wantLen   int
	}{
		{name: "first page", page: 1, limit: 5, wantFirst: 1, wantLen: 5},
		{name: "last short page", page: 3, limit: 5, wantFirst: 11, wantLen: 2},
		{name: "past the end", page: 4, limit: 5, wantLen: 0},
		{name: "page below 1", page: 0, limit: 10, wantFirst: 1, wantLen: 10},
		{name: "no limit", page: 2, limit: 0, wantFirst: 1, wantLen: 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total := Paginate(recs, tt.page, tt.limit)
			if total != 12 {
				t.Errorf("total = %d, want 12", total)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0] != tt.wantFirst {
				t.Errorf("first = %d, want %d", got[0], tt.wantFirst)
			}
		})
	}
}
