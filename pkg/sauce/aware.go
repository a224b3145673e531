package sauce

import "iter"

// AwareObject forwards every write to an inner Object and records the
// normalized keys it touched. Each key is recorded once, in the order it
// was first touched, until ResetChanges is called. Entries present at
// construction are not recorded.
type AwareObject struct {
	inner   *Object
	changed *Vector
}

// NewAwareObject copies data into a new AwareObject, as NewObject does.
func NewAwareObject(data any) *AwareObject {
	return &AwareObject{inner: NewObject(data), changed: &Vector{}}
}

// NewRecursiveAwareObject works like NewAwareObject with recursive wrapping.
func NewRecursiveAwareObject(data any) *AwareObject {
	return &AwareObject{inner: NewRecursiveObject(data), changed: &Vector{}}
}

func (o *AwareObject) touch(key string) {
	if !o.changed.Includes(key) {
		o.changed.items = append(o.changed.items, key)
	}
}

// Set stores value under key and records the key.
func (o *AwareObject) Set(key, value any) {
	k := NormalizeKey(key)
	o.touch(k)
	o.inner.Set(k, value)
}

// Unset removes key and records it, whether or not it was present.
func (o *AwareObject) Unset(key any) {
	k := NormalizeKey(key)
	o.touch(k)
	o.inner.Unset(k)
}

// MergeInPlace merges sources as Object.MergeInPlace does and records every
// key written, appended entries included. It returns the receiver.
func (o *AwareObject) MergeInPlace(sources ...any) *AwareObject {
	for _, src := range sources {
		entries, ok := entriesOf(src)
		if !ok {
			o.touch(o.inner.append(src))
			continue
		}
		for _, e := range entries {
			o.touch(e.key)
			o.inner.m().Set(e.key, e.value)
		}
	}
	return o
}

// Changed returns a copy of the recorded keys in the order they were first
// written. Each key appears once however often it was written, so this is a
// set of touched keys rather than a log of writes.
func (o *AwareObject) Changed() *Vector {
	return NewVector(o.changed)
}

// ResetChanges forgets the recorded keys.
func (o *AwareObject) ResetChanges() {
	o.changed = &Vector{}
}

// Define registers a method on the inner Object. Methods are not entries and
// are not recorded.
func (o *AwareObject) Define(name string, entry MethodEntry) {
	o.inner.Define(name, entry)
}

// Call invokes a method defined on this object. The method receives the
// AwareObject, so writes it makes through Invoke are recorded.
func (o *AwareObject) Call(name string, args ...any) (any, error) {
	return callInstance(o, o.inner.methods, name, args)
}

func (o *AwareObject) HasKey(key any) bool        { return o.inner.HasKey(key) }
func (o *AwareObject) Contains(key any) bool      { return o.inner.HasKey(key) }
func (o *AwareObject) Get(key any) any            { return o.inner.Get(key) }
func (o *AwareObject) Lookup(key any) (any, bool) { return o.inner.Lookup(key) }
func (o *AwareObject) Count() int                 { return o.inner.Count() }
func (o *AwareObject) IsEmpty() bool              { return o.inner.IsEmpty() }
func (o *AwareObject) All() iter.Seq2[string, any] {
	return o.inner.All()
}

func (o *AwareObject) Keys(pred func(key string) bool) *Vector {
	return o.inner.Keys(pred)
}

func (o *AwareObject) Values(pred func(key string, value any) bool) *Vector {
	return o.inner.Values(pred)
}

func (o *AwareObject) Collect(fn func(value any) any) *Vector {
	return o.inner.Collect(fn)
}

func (o *AwareObject) Select(pred func(key string, value any) bool) *Object {
	return o.inner.Select(pred)
}

func (o *AwareObject) SelectKeys(keys any) *Object {
	return o.inner.SelectKeys(keys)
}

func (o *AwareObject) Merge(sources ...any) *Object {
	return o.inner.Merge(sources...)
}

func (o *AwareObject) ToMap() map[string]any     { return o.inner.ToMap() }
func (o *AwareObject) Serialize() map[string]any { return o.inner.Serialize() }
func (o *AwareObject) Methods() []string         { return o.inner.Methods() }
