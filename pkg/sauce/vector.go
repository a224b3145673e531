// Package sauce provides ordered, keyed and string containers with
// validated, chainable operations.
//
// The three containers are Vector (an index-addressed sequence), Object (an
// insertion-ordered map with case-normalized keys) and String (a text buffer
// with copying and in-place operation pairs). ImmutableObject and
// AwareObject are overlays on Object that deny or record writes.
//
// None of the containers are safe for concurrent mutation.
package sauce

import (
	"iter"
	"strings"

	serrors "github.com/sambeau/sauce/pkg/sauce/errors"
)

// Vector is a growable, numerically indexed sequence of values of any type.
// The zero value is an empty Vector ready to use.
type Vector struct {
	items  []any
	cursor int
}

// NewVector creates a Vector from source. A nil source gives an empty
// Vector, a native slice or array or another Vector is copied element by
// element, and any other value (an Object or a map included) becomes the
// only element.
func NewVector(source any) *Vector {
	if isNil(source) {
		return &Vector{}
	}
	if items, ok := sliceItems(source); ok {
		return &Vector{items: append(make([]any, 0, len(items)), items...)}
	}
	return &Vector{items: []any{source}}
}

// Count returns the number of elements.
func (v *Vector) Count() int {
	return len(v.items)
}

// IsEmpty reports whether the Vector has no elements.
func (v *Vector) IsEmpty() bool {
	return len(v.items) == 0
}

// Get returns the element at index.
func (v *Vector) Get(index int) (any, error) {
	if index < 0 || index >= len(v.items) {
		return nil, serrors.NewOutOfRange("Vector.Get", index, len(v.items))
	}
	return v.items[index], nil
}

// Set stores value at index. An index equal to Count appends.
func (v *Vector) Set(index int, value any) error {
	if index < 0 || index > len(v.items) {
		return serrors.NewOutOfRange("Vector.Set", index, len(v.items))
	}
	if index == len(v.items) {
		v.items = append(v.items, value)
		return nil
	}
	v.items[index] = value
	return nil
}

// Remove deletes the element at index, shifting the following elements
// down by one, and returns it.
func (v *Vector) Remove(index int) (any, error) {
	if index < 0 || index >= len(v.items) {
		return nil, serrors.NewOutOfRange("Vector.Remove", index, len(v.items))
	}
	removed := v.items[index]
	copy(v.items[index:], v.items[index+1:])
	v.items[len(v.items)-1] = nil
	v.items = v.items[:len(v.items)-1]
	return removed, nil
}

// Exists reports whether index addresses an element.
func (v *Vector) Exists(index int) bool {
	return index >= 0 && index < len(v.items)
}

// Slice returns a new Vector of the elements from start, end-start elements
// long. Bounds past either end are truncated; a negative start counts from
// the end.
func (v *Vector) Slice(start, end int) *Vector {
	lo, hi := window(len(v.items), start, end-start)
	return &Vector{items: append([]any(nil), v.items[lo:hi]...)}
}

// Join converts every element to text and joins them with delimiter.
func (v *Vector) Join(delimiter any) (*String, error) {
	sep, err := textArg("Vector.Join", "delimiter", delimiter)
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(v.items))
	for i, item := range v.items {
		parts[i] = toText(item)
	}
	return &String{value: strings.Join(parts, sep)}, nil
}

// JoinDefault joins the elements with a single space.
func (v *Vector) JoinDefault() *String {
	s, _ := v.Join(" ")
	return s
}

// Map applies fn to every element in order and collects the non-nil
// results into a new Vector.
func (v *Vector) Map(fn func(any) any) (*Vector, error) {
	if fn == nil {
		return nil, serrors.NewNotCallable("Vector.Map", "callback", "null")
	}
	result := &Vector{}
	for i := 0; i < len(v.items); i++ {
		if value := fn(v.items[i]); !isNil(value) {
			result.items = append(result.items, value)
		}
	}
	return result, nil
}

// Select keeps the elements for which fn returns true.
func (v *Vector) Select(fn func(any) bool) (*Vector, error) {
	if fn == nil {
		return nil, serrors.NewNotCallable("Vector.Select", "callback", "null")
	}
	return v.Map(func(item any) any {
		if fn(item) {
			return item
		}
		return nil
	})
}

// Exclude drops the elements for which fn returns true.
func (v *Vector) Exclude(fn func(any) bool) (*Vector, error) {
	if fn == nil {
		return nil, serrors.NewNotCallable("Vector.Exclude", "callback", "null")
	}
	return v.Map(func(item any) any {
		if !fn(item) {
			return item
		}
		return nil
	})
}

// Push appends value. Native slices and arrays and other Vectors are
// flattened recursively; Objects and maps are appended as one element.
func (v *Vector) Push(value any) {
	if items, ok := sliceItems(value); ok {
		if other, isVec := value.(*Vector); isVec && other == v {
			items = append([]any(nil), items...)
		}
		for _, item := range items {
			v.Push(item)
		}
		return
	}
	v.items = append(v.items, value)
}

// Pop removes and returns the last element, or nil when empty.
func (v *Vector) Pop() any {
	if len(v.items) == 0 {
		return nil
	}
	last := v.items[len(v.items)-1]
	v.items[len(v.items)-1] = nil
	v.items = v.items[:len(v.items)-1]
	return last
}

// Shift removes and returns the first element, or nil when empty.
func (v *Vector) Shift() any {
	if len(v.items) == 0 {
		return nil
	}
	first, _ := v.Remove(0)
	return first
}

// Unshift inserts values at the front, keeping their order. A slice or
// Vector contributes its elements; anything else is inserted as is.
func (v *Vector) Unshift(values any) {
	items, ok := sliceItems(values)
	if !ok {
		items = []any{values}
	}
	front := make([]any, 0, len(items)+len(v.items))
	front = append(front, items...)
	v.items = append(front, v.items...)
}

// Prepend is an alias for Unshift.
func (v *Vector) Prepend(values any) {
	v.Unshift(values)
}

// Includes reports whether some element is identical to value.
func (v *Vector) Includes(value any) bool {
	for i := 0; i < len(v.items); i++ {
		if identical(v.items[i], value) {
			return true
		}
	}
	return false
}

// ToSlice returns a copy of the elements.
func (v *Vector) ToSlice() []any {
	return append(make([]any, 0, len(v.items)), v.items...)
}

// Serialize returns the elements as plain Go values, converting nested
// containers recursively.
func (v *Vector) Serialize() []any {
	out := make([]any, len(v.items))
	for i, item := range v.items {
		out[i] = serializeValue(item)
	}
	return out
}

// ============================================================================
// Iteration
// ============================================================================

// Current returns the element under the cursor, or nil past the end.
func (v *Vector) Current() any {
	if !v.Valid() {
		return nil
	}
	return v.items[v.cursor]
}

// Key returns the cursor position.
func (v *Vector) Key() int {
	return v.cursor
}

// Next advances the cursor while it addresses an element.
func (v *Vector) Next() {
	if v.Valid() {
		v.cursor++
	}
}

// Rewind resets the cursor to the first element.
func (v *Vector) Rewind() {
	v.cursor = 0
}

// Valid reports whether the cursor addresses an element.
func (v *Vector) Valid() bool {
	return v.cursor >= 0 && v.cursor < len(v.items)
}

// All returns an iterator over index/element pairs. It does not touch the
// cursor.
func (v *Vector) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i := 0; i < len(v.items); i++ {
			if !yield(i, v.items[i]) {
				return
			}
		}
	}
}
