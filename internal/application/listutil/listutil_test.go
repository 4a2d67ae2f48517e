package listutil

import (
	"reflect"
	"testing"
)

type row struct {
	id   string
	name string
}

// TestFromRows verifies the list-of-one accessor.
func TestFromRows(t *testing.T) {
	if _, ok := FromRows[row](nil).First(); ok {
		t.Error("nil rows should be empty")
	}
	if FromRows([]row{}).Present() {
		t.Error("empty rows should not be present")
	}
	got, ok := FromRows([]row{{"1", "a"}, {"2", "b"}}).First()
	if !ok || got.id != "1" {
		t.Errorf("First() = %+v, %v; want row 1", got, ok)
	}
}

// TestIndex_Get verifies keyed lookup and first-wins duplicates.
func TestIndex_Get(t *testing.T) {
	idx := NewIndex([]row{{"1", "a"}, {"2", "b"}, {"1", "dup"}}, func(r row) string { return r.id })
	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}
	if r, ok := idx.Get("1").First(); !ok || r.name != "a" {
		t.Errorf("Get(1) = %+v, %v; want a", r, ok)
	}
	if idx.Get("3").Present() {
		t.Error("Get(3) should be absent")
	}
}

// TestUnique verifies distinct keys in first-seen order, skipping blanks.
func TestUnique(t *testing.T) {
	got := Unique([]row{{"b", ""}, {"a", ""}, {"b", ""}, {"", ""}}, func(r row) string { return r.id })
	if !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("Unique() = %v, want [b a]", got)
	}
}

// TestUnique_Empty verifies an empty input yields an empty, non-nil slice.
func TestUnique_Empty(t *testing.T) {
	got := Unique[row](nil, func(r row) string { return r.id })
	if got == nil || len(got) != 0 {
		t.Errorf("Unique(nil) = %#v, want empty non-nil", got)
	}
}
