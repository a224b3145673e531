package sauce

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	serrors "github.com/sambeau/sauce/pkg/sauce/errors"
)

// ============================================================================
// Shorthand constructors
// ============================================================================

// V builds a Vector. A single argument is used as the source, several
// arguments become the elements.
func V(values ...any) *Vector {
	switch len(values) {
	case 0:
		return NewVector(nil)
	case 1:
		return NewVector(values[0])
	default:
		return NewVector(values)
	}
}

// A builds an Object. A single argument is used as the data, several
// arguments are stored under the keys "0".."n-1".
func A(values ...any) *Object {
	switch len(values) {
	case 0:
		return NewObject(nil)
	case 1:
		return NewObject(values[0])
	default:
		return NewObject(values)
	}
}

// Ar works like A but wraps nested array-like values into Objects.
func Ar(values ...any) *Object {
	switch len(values) {
	case 0:
		return NewRecursiveObject(nil)
	case 1:
		return NewRecursiveObject(values[0])
	default:
		return NewRecursiveObject(values)
	}
}

// S concatenates parts into a new String.
func S(parts ...string) *String {
	return &String{value: strings.Join(parts, "")}
}

// Vs builds a Vector holding one String per argument.
func Vs(values ...string) *Vector {
	v := &Vector{items: make([]any, 0, len(values))}
	for _, s := range values {
		v.items = append(v.items, S(s))
	}
	return v
}

// ============================================================================
// Predicates
// ============================================================================

// IsAnArray reports whether v can be enumerated by key or index: native
// slices, arrays and maps, and the sauce containers.
func IsAnArray(v any) bool {
	switch v.(type) {
	case *Vector, *Object, *ImmutableObject, *AwareObject:
		return !isNil(v)
	case []byte:
		return false
	}
	if isNil(v) {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

// IsAString reports whether v is a string or a *String.
func IsAString(v any) bool {
	switch s := v.(type) {
	case string:
		return true
	case *String:
		return s != nil
	}
	return false
}

// IsNotNull reports whether v holds a value. Typed nil pointers, maps,
// slices and funcs count as null.
func IsNotNull(v any) bool {
	return !isNil(v)
}

// OrEquals returns v unless it is null, in which case fallback is returned.
func OrEquals(v, fallback any) any {
	if IsNotNull(v) {
		return v
	}
	return fallback
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func isNumeric(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return true
	case string:
		_, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return err == nil
	case *String:
		return n != nil && isNumeric(n.value)
	}
	return false
}

func isCallable(v any) bool {
	return !isNil(v) && reflect.TypeOf(v).Kind() == reflect.Func
}

// truthy mirrors the loose boolean conversion callers expect from
// predicates that return a value instead of a bool.
func truthy(v any) bool {
	if isNil(v) {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x != "" && x != "0"
	case *String:
		return x.value != "" && x.value != "0"
	case *Vector:
		return x.Count() > 0
	case *Object:
		return x.Count() > 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map:
		return rv.Len() > 0
	}
	return true
}

// ============================================================================
// Argument contracts
// ============================================================================

// Contract is a named predicate used to validate arguments.
type Contract struct {
	Name  string
	Check func(any) bool
}

var (
	IsText     = Contract{Name: "IsText", Check: IsAString}
	IsNumeric  = Contract{Name: "IsNumeric", Check: isNumeric}
	IsCallable = Contract{Name: "IsCallable", Check: isCallable}
	NotNull    = Contract{Name: "NotNull", Check: IsNotNull}
)

// Ensure returns an InvalidArgument error when value does not satisfy the
// contract. name is the argument name and op the operation reported.
func Ensure(name string, value any, contract Contract, op string) error {
	if contract.Check == nil {
		return serrors.NewNotCallable("Ensure", "contract "+contract.Name, "nil")
	}
	if !contract.Check(value) {
		return serrors.NewInvalidArgument(op, name, contract.Name, Render(value))
	}
	return nil
}

func emptyArgument(op, name string) error {
	return serrors.New("ARG-0003", map[string]any{"Op": op, "Name": name})
}

// textArg validates a text argument and returns its value.
func textArg(op, name string, v any) (string, error) {
	if err := Ensure(name, v, IsText, op); err != nil {
		return "", err
	}
	return toText(v), nil
}

// ============================================================================
// Rendering and conversion
// ============================================================================

// Render returns a short, unambiguous rendering of v for error messages.
func Render(v any) string {
	if isNil(v) {
		return "null"
	}
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case *String:
		return strconv.Quote(x.value)
	case *Vector, *Object, *ImmutableObject, *AwareObject:
		if b, err := json.Marshal(x); err == nil {
			return string(b)
		}
	}
	if isCallable(v) {
		return fmt.Sprintf("%T", v)
	}
	return fmt.Sprintf("%v", v)
}

func renderArgs(args []any) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = Render(a)
	}
	return out
}

// toText converts a value to its plain text form, as used by Join.
// Containers and native slices and maps are written as compact JSON.
func toText(v any) string {
	if isNil(v) {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case *String:
		return x.value
	case bool:
		if x {
			return "1"
		}
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	}
	if IsAnArray(v) {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err == nil {
			return strings.TrimSuffix(buf.String(), "\n")
		}
	}
	return fmt.Sprint(v)
}

// toIndex converts a dynamic argument to an integer position.
func toIndex(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return floatIndex(float64(n))
	case float64:
		return floatIndex(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return floatIndex(f)
		}
	case string:
		return textIndex(n)
	case *String:
		if n != nil {
			return textIndex(n.value)
		}
	}
	return 0, false
}

func floatIndex(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func textIndex(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return floatIndex(f)
	}
	return 0, false
}

// identical is strict equality that never panics on uncomparable values.
// Slices, maps and funcs compare by identity.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Slice:
		return ra.Len() == rb.Len() && ra.Pointer() == rb.Pointer()
	case reflect.Map, reflect.Func:
		return ra.Pointer() == rb.Pointer()
	}
	if !ra.Comparable() || !rb.Comparable() {
		return false
	}
	return a == b
}

// window resolves an (offset, length) pair against a sequence of n
// elements. A negative offset counts from the end; a negative length leaves
// that many elements off the end.
func window(n, start, length int) (int, int) {
	if start < 0 {
		start = max(n+start, 0)
	}
	if start > n {
		return n, n
	}
	end := n
	if length < 0 {
		end = n + length
	} else if length < n-start {
		end = start + length
	}
	if end < start {
		return start, start
	}
	return start, end
}

// ============================================================================
// Array-like enumeration
// ============================================================================

type entry struct {
	key   string
	value any
}

// sliceItems returns the elements of a sequence-like value.
func sliceItems(v any) ([]any, bool) {
	switch s := v.(type) {
	case nil:
		return nil, false
	case []any:
		return s, true
	case *Vector:
		if s == nil {
			return nil, false
		}
		return s.items, true
	case []byte:
		return nil, false
	case []string:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, true
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
	return nil, false
}

// entriesOf returns the key/value pairs of an array-like value with keys
// normalized. Native maps are enumerated in sorted key order.
func entriesOf(v any) ([]entry, bool) {
	if isNil(v) {
		return nil, false
	}
	if o := asObject(v); o != nil {
		out := make([]entry, 0, o.Count())
		for k, val := range o.All() {
			out = append(out, entry{key: k, value: val})
		}
		return out, true
	}
	if items, ok := sliceItems(v); ok {
		out := make([]entry, len(items))
		for i, val := range items {
			out[i] = entry{key: strconv.Itoa(i), value: val}
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out = append(out, entry{key: NormalizeKey(iter.Key().Interface()), value: iter.Value().Interface()})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return keyLess(out[i].key, out[j].key)
	})
	return out, true
}

// keyLess orders integer keys numerically before other keys.
func keyLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return ai < bi
	case aerr == nil:
		return true
	case berr == nil:
		return false
	}
	return a < b
}

// asObject returns the Object backing an Object or one of its overlays.
func asObject(v any) *Object {
	switch o := v.(type) {
	case *Object:
		return o
	case *ImmutableObject:
		if o != nil {
			return o.inner
		}
	case *AwareObject:
		if o != nil {
			return o.inner
		}
	}
	return nil
}
