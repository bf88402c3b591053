package frame

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

var ErrMissingColumn = errors.New("missing column")

// MissingColumnError reports a required column that is absent from a table.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("missing required column %q", e.Column)
	}
	return fmt.Sprintf("%s: missing required column %q", e.Table, e.Column)
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// Table is an ordered set of equal-length columns. Operations return new
// tables and leave the receiver untouched.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

func New(columns ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(columns))}
	for i, col := range columns {
		if col == nil {
			return nil, fmt.Errorf("frame: nil column at position %d", i)
		}
		if _, exists := t.index[col.name]; exists {
			return nil, fmt.Errorf("frame: duplicate column %q", col.name)
		}
		if i == 0 {
			t.rows = col.Len()
		} else if col.Len() != t.rows {
			return nil, fmt.Errorf("frame: column %q has %d rows, want %d", col.name, col.Len(), t.rows)
		}
		t.index[col.name] = i
		t.columns = append(t.columns, col)
	}
	return t, nil
}

func MustNew(columns ...*Column) *Table {
	t, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.rows
}

func (t *Table) Names() []string {
	out := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		out = append(out, col.name)
	}
	return out
}

func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns nil when name is absent.
func (t *Table) Column(name string) *Column {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	return t.columns[i]
}

// Require returns a *MissingColumnError for the first absent name.
func (t *Table) Require(table string, names ...string) error {
	for _, name := range names {
		if !t.Has(name) {
			return &MissingColumnError{Table: table, Column: name}
		}
	}
	return nil
}

// With adds columns, replacing any existing column of the same name in place.
func (t *Table) With(columns ...*Column) (*Table, error) {
	merged := slices.Clone(t.columns)
	for _, col := range columns {
		if col.Len() != t.rows && len(t.columns) > 0 {
			return nil, fmt.Errorf("frame: column %q has %d rows, want %d", col.name, col.Len(), t.rows)
		}
		if i, ok := t.index[col.name]; ok {
			merged[i] = col
			continue
		}
		merged = append(merged, col)
	}
	return New(merged...)
}

func (t *Table) Select(names ...string) (*Table, error) {
	if err := t.Require("", names...); err != nil {
		return nil, err
	}
	cols := make([]*Column, 0, len(names))
	for _, name := range names {
		cols = append(cols, t.Column(name))
	}
	return New(cols...)
}

func (t *Table) Drop(names ...string) *Table {
	cols := make([]*Column, 0, len(t.columns))
	for _, col := range t.columns {
		if slices.Contains(names, col.name) {
			continue
		}
		cols = append(cols, col)
	}
	out, _ := New(cols...)
	if len(cols) == 0 {
		out.rows = 0
	}
	return out
}

// Take gathers rows by index; a negative index yields an all-null row.
func (t *Table) Take(idx []int) *Table {
	cols := make([]*Column, 0, len(t.columns))
	for _, col := range t.columns {
		cols = append(cols, col.Take(idx))
	}
	out, _ := New(cols...)
	out.rows = len(idx)
	return out
}

func (t *Table) Filter(keep func(row int) bool) *Table {
	idx := make([]int, 0, t.rows)
	for i := 0; i < t.rows; i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	return t.Take(idx)
}

// SortIndex returns the row order that stably sorts t by keys ascending.
func (t *Table) SortIndex(keys ...string) ([]int, error) {
	if err := t.Require("", keys...); err != nil {
		return nil, err
	}
	cols := make([]*Column, 0, len(keys))
	for _, key := range keys {
		cols = append(cols, t.Column(key))
	}
	idx := make([]int, t.rows)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		for _, col := range cols {
			if c := col.compare(idx[a], idx[b]); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return idx, nil
}

func (t *Table) SortBy(keys ...string) (*Table, error) {
	idx, err := t.SortIndex(keys...)
	if err != nil {
		return nil, err
	}
	return t.Take(idx), nil
}
