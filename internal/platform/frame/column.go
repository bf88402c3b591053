package frame

import (
	"fmt"
	"strconv"
)

type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Column is a named, typed, nullable vector. Columns are shared between
// tables, so a column must not be modified after it has been added to one.
type Column struct {
	name    string
	kind    Kind
	floats  []float64
	ints    []int
	strings []string
	bools   []bool
	valid   []bool
}

// NewColumn allocates a column of n null values.
func NewColumn(name string, kind Kind, n int) *Column {
	c := &Column{name: name, kind: kind, valid: make([]bool, n)}
	switch kind {
	case KindFloat:
		c.floats = make([]float64, n)
	case KindInt:
		c.ints = make([]int, n)
	case KindString:
		c.strings = make([]string, n)
	case KindBool:
		c.bools = make([]bool, n)
	}
	return c
}

func Floats(name string, values ...float64) *Column {
	c := NewColumn(name, KindFloat, len(values))
	for i, v := range values {
		c.SetFloat(i, v)
	}
	return c
}

func NullableFloats(name string, values []*float64) *Column {
	c := NewColumn(name, KindFloat, len(values))
	for i, v := range values {
		if v != nil {
			c.SetFloat(i, *v)
		}
	}
	return c
}

func Ints(name string, values ...int) *Column {
	c := NewColumn(name, KindInt, len(values))
	for i, v := range values {
		c.SetInt(i, v)
	}
	return c
}

func Strings(name string, values ...string) *Column {
	c := NewColumn(name, KindString, len(values))
	for i, v := range values {
		c.SetString(i, v)
	}
	return c
}

func NullableStrings(name string, values []*string) *Column {
	c := NewColumn(name, KindString, len(values))
	for i, v := range values {
		if v != nil {
			c.SetString(i, *v)
		}
	}
	return c
}

func Bools(name string, values ...bool) *Column {
	c := NewColumn(name, KindBool, len(values))
	for i, v := range values {
		c.SetBool(i, v)
	}
	return c
}

func NullableBools(name string, values []*bool) *Column {
	c := NewColumn(name, KindBool, len(values))
	for i, v := range values {
		if v != nil {
			c.SetBool(i, *v)
		}
	}
	return c
}

func (c *Column) Name() string { return c.name }
func (c *Column) Kind() Kind   { return c.kind }
func (c *Column) Len() int     { return len(c.valid) }

func (c *Column) Valid(i int) bool { return c.valid[i] }

func (c *Column) NullCount() int {
	n := 0
	for _, ok := range c.valid {
		if !ok {
			n++
		}
	}
	return n
}

func (c *Column) SetFloat(i int, v float64) {
	c.mustKind(KindFloat)
	c.floats[i] = v
	c.valid[i] = true
}

func (c *Column) SetInt(i int, v int) {
	c.mustKind(KindInt)
	c.ints[i] = v
	c.valid[i] = true
}

func (c *Column) SetString(i int, v string) {
	c.mustKind(KindString)
	c.strings[i] = v
	c.valid[i] = true
}

func (c *Column) SetBool(i int, v bool) {
	c.mustKind(KindBool)
	c.bools[i] = v
	c.valid[i] = true
}

func (c *Column) SetNull(i int) {
	c.valid[i] = false
}

// FloatAt reads row i as a float. Int and bool columns are widened.
func (c *Column) FloatAt(i int) (float64, bool) {
	if !c.valid[i] {
		return 0, false
	}
	switch c.kind {
	case KindFloat:
		return c.floats[i], true
	case KindInt:
		return float64(c.ints[i]), true
	case KindBool:
		if c.bools[i] {
			return 1, true
		}
		return 0, true
	default:
		v, err := strconv.ParseFloat(c.strings[i], 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
}

// IntAt reads row i as an int. Float values are truncated.
func (c *Column) IntAt(i int) (int, bool) {
	if !c.valid[i] {
		return 0, false
	}
	switch c.kind {
	case KindInt:
		return c.ints[i], true
	case KindFloat:
		return int(c.floats[i]), true
	case KindBool:
		if c.bools[i] {
			return 1, true
		}
		return 0, true
	default:
		v, err := strconv.Atoi(c.strings[i])
		if err != nil {
			return 0, false
		}
		return v, true
	}
}

func (c *Column) StringAt(i int) (string, bool) {
	if !c.valid[i] {
		return "", false
	}
	switch c.kind {
	case KindString:
		return c.strings[i], true
	case KindInt:
		return strconv.Itoa(c.ints[i]), true
	case KindFloat:
		return strconv.FormatFloat(c.floats[i], 'f', -1, 64), true
	default:
		return strconv.FormatBool(c.bools[i]), true
	}
}

func (c *Column) BoolAt(i int) (bool, bool) {
	if !c.valid[i] {
		return false, false
	}
	switch c.kind {
	case KindBool:
		return c.bools[i], true
	case KindInt:
		return c.ints[i] != 0, true
	case KindFloat:
		return c.floats[i] != 0, true
	default:
		v, err := strconv.ParseBool(c.strings[i])
		if err != nil {
			return false, false
		}
		return v, true
	}
}

// Take gathers rows by index. A negative index produces a null.
func (c *Column) Take(idx []int) *Column {
	out := NewColumn(c.name, c.kind, len(idx))
	for dst, src := range idx {
		if src < 0 || !c.valid[src] {
			continue
		}
		out.valid[dst] = true
		switch c.kind {
		case KindFloat:
			out.floats[dst] = c.floats[src]
		case KindInt:
			out.ints[dst] = c.ints[src]
		case KindString:
			out.strings[dst] = c.strings[src]
		case KindBool:
			out.bools[dst] = c.bools[src]
		}
	}
	return out
}

// compare orders row i against row j. Nulls sort after every value.
func (c *Column) compare(i, j int) int {
	vi, vj := c.valid[i], c.valid[j]
	switch {
	case !vi && !vj:
		return 0
	case !vi:
		return 1
	case !vj:
		return -1
	}
	switch c.kind {
	case KindFloat:
		return cmpOrdered(c.floats[i], c.floats[j])
	case KindInt:
		return cmpOrdered(c.ints[i], c.ints[j])
	case KindString:
		return cmpOrdered(c.strings[i], c.strings[j])
	default:
		bi, bj := 0, 0
		if c.bools[i] {
			bi = 1
		}
		if c.bools[j] {
			bj = 1
		}
		return cmpOrdered(bi, bj)
	}
}

func (c *Column) mustKind(kind Kind) {
	if c.kind != kind {
		panic(fmt.Sprintf("frame: column %q is %s, not %s", c.name, c.kind, kind))
	}
}

func cmpOrdered[T ~int | ~float64 | ~string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
