package sauce

import (
	"iter"

	serrors "github.com/sambeau/sauce/pkg/sauce/errors"
)

// ImmutableObject is a read-only view over its own copy of an Object. Every
// write fails with an IllegalMutation error and leaves the entries as they
// were.
type ImmutableObject struct {
	inner *Object
}

// NewImmutableObject copies data into a new ImmutableObject. data is
// interpreted as by NewObject; methods defined on a source Object are kept.
func NewImmutableObject(data any) *ImmutableObject {
	return &ImmutableObject{inner: NewObject(data)}
}

// NewRecursiveImmutableObject works like NewImmutableObject but wraps nested
// array-like values as NewRecursiveObject does.
func NewRecursiveImmutableObject(data any) *ImmutableObject {
	return &ImmutableObject{inner: NewRecursiveObject(data)}
}

func (o *ImmutableObject) HasKey(key any) bool        { return o.inner.HasKey(key) }
func (o *ImmutableObject) Contains(key any) bool      { return o.inner.HasKey(key) }
func (o *ImmutableObject) Get(key any) any            { return o.inner.Get(key) }
func (o *ImmutableObject) Lookup(key any) (any, bool) { return o.inner.Lookup(key) }
func (o *ImmutableObject) Count() int                 { return o.inner.Count() }
func (o *ImmutableObject) IsEmpty() bool              { return o.inner.IsEmpty() }
func (o *ImmutableObject) All() iter.Seq2[string, any] {
	return o.inner.All()
}

func (o *ImmutableObject) Keys(pred func(key string) bool) *Vector {
	return o.inner.Keys(pred)
}

func (o *ImmutableObject) Values(pred func(key string, value any) bool) *Vector {
	return o.inner.Values(pred)
}

func (o *ImmutableObject) Collect(fn func(value any) any) *Vector {
	return o.inner.Collect(fn)
}

// Select returns a new, mutable Object with the entries accepted by pred.
func (o *ImmutableObject) Select(pred func(key string, value any) bool) *Object {
	return o.inner.Select(pred)
}

// SelectKeys returns a new, mutable Object with the listed keys.
func (o *ImmutableObject) SelectKeys(keys any) *Object {
	return o.inner.SelectKeys(keys)
}

// Merge builds a new, mutable Object from sources.
func (o *ImmutableObject) Merge(sources ...any) *Object {
	return o.inner.Merge(sources...)
}

func (o *ImmutableObject) ToMap() map[string]any     { return o.inner.ToMap() }
func (o *ImmutableObject) Serialize() map[string]any { return o.inner.Serialize() }
func (o *ImmutableObject) Methods() []string         { return o.inner.Methods() }

// Call invokes a method carried over from the source Object. The method
// receives the ImmutableObject, so writes it attempts through Invoke fail.
func (o *ImmutableObject) Call(name string, args ...any) (any, error) {
	return callInstance(o, o.inner.methods, name, args)
}

// Set always fails.
func (o *ImmutableObject) Set(key, value any) error {
	return serrors.NewIllegalMutation("ImmutableObject.Set")
}

// Unset always fails.
func (o *ImmutableObject) Unset(key any) error {
	return serrors.NewIllegalMutation("ImmutableObject.Unset")
}

// MergeInPlace always fails.
func (o *ImmutableObject) MergeInPlace(sources ...any) error {
	return serrors.NewIllegalMutation("ImmutableObject.MergeInPlace")
}

// Define always fails.
func (o *ImmutableObject) Define(name string, entry MethodEntry) error {
	return serrors.NewIllegalMutation("ImmutableObject.Define")
}
