package sauce

import (
	"fmt"
	"iter"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Object is an insertion-ordered map from normalized keys to values of any
// type. Keys are lower-cased strings; integer keys are stored in base 10.
// The zero value is an empty Object ready to use.
type Object struct {
	storage *orderedmap.OrderedMap[string, any]
	methods MethodRegistry
}

// NewObject creates an Object from data. Nil data gives an empty Object,
// array-like data (Objects, Vectors, native maps, slices and arrays) is
// copied entry by entry, and any other value is stored under the key "0".
func NewObject(data any) *Object {
	return newObject(data, false)
}

// NewRecursiveObject works like NewObject but also wraps every nested
// array-like value into an Object of its own.
func NewRecursiveObject(data any) *Object {
	return newObject(data, true)
}

func newObject(data any, recursive bool) *Object {
	o := &Object{storage: orderedmap.New[string, any]()}
	if isNil(data) {
		return o
	}

	entries, ok := entriesOf(data)
	if !ok {
		o.storage.Set("0", data)
		return o
	}

	for _, e := range entries {
		value := e.value
		if recursive && IsAnArray(value) {
			value = newObject(value, true)
		}
		o.storage.Set(e.key, value)
	}
	if src := asObject(data); src != nil && len(src.methods) > 0 {
		o.methods = src.methods.clone()
	}
	return o
}

// NormalizeKey returns the storage form of key: strings are lower-cased,
// integers are written in base 10 and anything else is formatted with
// fmt.Sprint and lower-cased.
func NormalizeKey(key any) string {
	switch k := key.(type) {
	case string:
		return lower(k)
	case *String:
		if k == nil {
			return ""
		}
		return lower(k.value)
	case int:
		return strconv.Itoa(k)
	case int8, int16, int32, int64:
		return strconv.FormatInt(toInt64(k), 10)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(k)
	case float32, float64:
		if i, ok := toIndex(k); ok {
			return strconv.Itoa(i)
		}
	case nil:
		return ""
	}
	return lower(fmt.Sprint(key))
}

// lower builds a new Caser per call since Casers keep state.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	}
	return 0
}

func (o *Object) m() *orderedmap.OrderedMap[string, any] {
	if o.storage == nil {
		o.storage = orderedmap.New[string, any]()
	}
	return o.storage
}

// HasKey reports whether key is present after normalization.
func (o *Object) HasKey(key any) bool {
	_, ok := o.m().Get(NormalizeKey(key))
	return ok
}

// Contains is an alias for HasKey.
func (o *Object) Contains(key any) bool {
	return o.HasKey(key)
}

// Get returns the value stored under key, or nil when absent.
func (o *Object) Get(key any) any {
	v, _ := o.m().Get(NormalizeKey(key))
	return v
}

// Lookup returns the value stored under key and whether it was present.
func (o *Object) Lookup(key any) (any, bool) {
	return o.m().Get(NormalizeKey(key))
}

// Set stores value under key, replacing any previous value in place.
func (o *Object) Set(key, value any) {
	o.m().Set(NormalizeKey(key), value)
}

// Unset removes key. Missing keys are ignored.
func (o *Object) Unset(key any) {
	o.m().Delete(NormalizeKey(key))
}

// Count returns the number of entries.
func (o *Object) Count() int {
	return o.m().Len()
}

// IsEmpty reports whether the Object has no entries.
func (o *Object) IsEmpty() bool {
	return o.m().Len() == 0
}

// All returns an iterator over the entries in insertion order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for pair := o.m().Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Keys returns the keys accepted by pred in insertion order. A nil pred
// accepts every key.
func (o *Object) Keys(pred func(key string) bool) *Vector {
	keys := &Vector{}
	for k := range o.All() {
		if pred == nil || pred(k) {
			keys.items = append(keys.items, k)
		}
	}
	return keys
}

// Values returns the values whose entries are accepted by pred. A nil pred
// accepts every entry.
func (o *Object) Values(pred func(key string, value any) bool) *Vector {
	values := &Vector{}
	for k, v := range o.All() {
		if pred == nil || pred(k, v) {
			values.items = append(values.items, v)
		}
	}
	return values
}

// Collect maps every value through fn. A nil fn returns the values as is.
func (o *Object) Collect(fn func(value any) any) *Vector {
	values := &Vector{items: make([]any, 0, o.Count())}
	for _, v := range o.All() {
		if fn != nil {
			v = fn(v)
		}
		values.items = append(values.items, v)
	}
	return values
}

// Select returns a new Object with the entries accepted by pred.
func (o *Object) Select(pred func(key string, value any) bool) *Object {
	result := NewObject(nil)
	for k, v := range o.All() {
		if pred == nil || pred(k, v) {
			result.storage.Set(k, v)
		}
	}
	return result
}

// SelectKeys returns a new Object with the entries whose keys are listed in
// keys. keys may be a single key, a slice or a Vector.
func (o *Object) SelectKeys(keys any) *Object {
	wanted := make(map[string]bool)
	for _, k := range NewVector(keys).items {
		wanted[NormalizeKey(k)] = true
	}
	return o.Select(func(key string, _ any) bool {
		return wanted[key]
	})
}

// Merge builds a new Object from sources. Array-like sources contribute the
// entries whose keys are not present yet, so the first source wins; other
// values are appended under the next integer key. The receiver itself is
// not part of the result.
func (o *Object) Merge(sources ...any) *Object {
	result := NewObject(nil)
	for _, src := range sources {
		entries, ok := entriesOf(src)
		if !ok {
			result.append(src)
			continue
		}
		for _, e := range entries {
			if _, present := result.storage.Get(e.key); !present {
				result.storage.Set(e.key, e.value)
			}
		}
	}
	return result
}

// MergeInPlace merges sources into the receiver. Entries of array-like
// sources overwrite existing ones; other values are appended under the next
// integer key. It returns the receiver.
func (o *Object) MergeInPlace(sources ...any) *Object {
	for _, src := range sources {
		entries, ok := entriesOf(src)
		if !ok {
			o.append(src)
			continue
		}
		for _, e := range entries {
			o.m().Set(e.key, e.value)
		}
	}
	return o
}

// append stores value under one past the largest non-negative integer key.
func (o *Object) append(value any) string {
	key := strconv.Itoa(o.nextIndex())
	o.m().Set(key, value)
	return key
}

func (o *Object) nextIndex() int {
	next := 0
	for k := range o.All() {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || strconv.Itoa(i) != k {
			continue
		}
		if i >= next {
			next = i + 1
		}
	}
	return next
}

// ToMap returns a snapshot of the entries. Later changes to the Object are
// not reflected in it.
func (o *Object) ToMap() map[string]any {
	out := make(map[string]any, o.Count())
	for k, v := range o.All() {
		out[k] = v
	}
	return out
}

// Serialize returns the entries as plain Go values, converting nested
// containers recursively.
func (o *Object) Serialize() map[string]any {
	out := make(map[string]any, o.Count())
	for k, v := range o.All() {
		out[k] = serializeValue(v)
	}
	return out
}

// ============================================================================
// Instance methods
// ============================================================================

// Define registers a method on this Object. Method names are normalized
// like keys.
func (o *Object) Define(name string, entry MethodEntry) {
	if o.methods == nil {
		o.methods = MethodRegistry{}
	}
	o.methods[NormalizeKey(name)] = entry
}

// Methods returns the sorted names of the methods defined on this Object.
func (o *Object) Methods() []string {
	return o.methods.Names()
}

// Call invokes the method name defined on this Object.
func (o *Object) Call(name string, args ...any) (any, error) {
	return callInstance(o, o.methods, name, args)
}
