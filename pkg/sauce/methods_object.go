package sauce

import serrors "github.com/sambeau/sauce/pkg/sauce/errors"

// ObjectMethodRegistry defines the methods available on Object values and,
// through the same entries, on ImmutableObject and AwareObject.
var ObjectMethodRegistry MethodRegistry

// AwareMethodRegistry adds change tracking to ObjectMethodRegistry.
var AwareMethodRegistry MethodRegistry

// objectReader is the read surface shared by Object and its overlays.
type objectReader interface {
	HasKey(key any) bool
	Get(key any) any
	Count() int
	IsEmpty() bool
	Keys(pred func(key string) bool) *Vector
	Values(pred func(key string, value any) bool) *Vector
	Collect(fn func(value any) any) *Vector
	Select(pred func(key string, value any) bool) *Object
	SelectKeys(keys any) *Object
	Merge(sources ...any) *Object
	ToMap() map[string]any
}

var (
	_ objectReader = (*Object)(nil)
	_ objectReader = (*ImmutableObject)(nil)
	_ objectReader = (*AwareObject)(nil)
)

func init() {
	ObjectMethodRegistry = MethodRegistry{
		"hasKey": {
			Fn:          objectHasKey,
			Arity:       "1",
			Description: "True when key is present",
		},
		"contains": {
			Fn:          objectHasKey,
			Arity:       "1",
			Description: "True when key is present",
		},
		"get": {
			Fn:          objectGet,
			Arity:       "1",
			Description: "Value under key, or null",
		},
		"set": {
			Fn:          objectSet,
			Arity:       "2",
			Description: "Store value under key",
			Mutates:     true,
		},
		"unset": {
			Fn:          objectUnset,
			Arity:       "1",
			Description: "Remove key",
			Mutates:     true,
		},
		"count": {
			Fn:          objectCount,
			Arity:       "0",
			Description: "Number of entries",
		},
		"isEmpty": {
			Fn:          objectIsEmpty,
			Arity:       "0",
			Description: "True when there are no entries",
		},
		"keys": {
			Fn:          objectKeys,
			Arity:       "0-1",
			Description: "Keys in insertion order (predicate?)",
		},
		"values": {
			Fn:          objectValues,
			Arity:       "0-1",
			Description: "Values in insertion order (predicate?)",
		},
		"collect": {
			Fn:          objectCollect,
			Arity:       "0-1",
			Description: "Map every value (fn?)",
		},
		"select": {
			Fn:          objectSelect,
			Arity:       "1",
			Description: "Entries accepted by a predicate or listed keys",
		},
		"merge": {
			Fn:          objectMerge,
			Arity:       "0+",
			Description: "New object from sources, first source wins",
		},
		"mergeInPlace": {
			Fn:          objectMergeInPlace,
			Arity:       "0+",
			Description: "Merge sources into this object, later sources win",
			Mutates:     true,
		},
		"toMap": {
			Fn:          objectToMap,
			Arity:       "0",
			Description: "Snapshot of the entries as a native map",
		},
	}
	RegisterMethodRegistry("object", ObjectMethodRegistry)
	RegisterMethodRegistry("immutable", ObjectMethodRegistry)

	AwareMethodRegistry = ObjectMethodRegistry.clone()
	AwareMethodRegistry["changed"] = MethodEntry{
		Fn:          awareChanged,
		Arity:       "0",
		Description: "Keys written since creation or the last reset",
	}
	AwareMethodRegistry["resetChanges"] = MethodEntry{
		Fn:          awareResetChanges,
		Arity:       "0",
		Description: "Forget the recorded keys",
	}
	RegisterMethodRegistry("aware", AwareMethodRegistry)
}

func objectHasKey(receiver any, args []any) (any, error) {
	return receiver.(objectReader).HasKey(args[0]), nil
}

func objectGet(receiver any, args []any) (any, error) {
	return receiver.(objectReader).Get(args[0]), nil
}

func objectCount(receiver any, args []any) (any, error) {
	return receiver.(objectReader).Count(), nil
}

func objectIsEmpty(receiver any, args []any) (any, error) {
	return receiver.(objectReader).IsEmpty(), nil
}

func objectKeys(receiver any, args []any) (any, error) {
	var pred func(string) bool
	if len(args) == 1 {
		fn, err := keyPredicateArg("Object.Keys", args[0])
		if err != nil {
			return nil, err
		}
		pred = fn
	}
	return receiver.(objectReader).Keys(pred), nil
}

func objectValues(receiver any, args []any) (any, error) {
	var pred func(string, any) bool
	if len(args) == 1 {
		fn, err := entryPredicateArg("Object.Values", args[0])
		if err != nil {
			return nil, err
		}
		pred = fn
	}
	return receiver.(objectReader).Values(pred), nil
}

func objectCollect(receiver any, args []any) (any, error) {
	var mapper func(any) any
	if len(args) == 1 {
		fn, err := mapperArg("Object.Collect", args[0])
		if err != nil {
			return nil, err
		}
		mapper = fn
	}
	return receiver.(objectReader).Collect(mapper), nil
}

// objectSelect accepts either an entry predicate or the keys to keep.
func objectSelect(receiver any, args []any) (any, error) {
	if isCallable(args[0]) {
		fn, err := entryPredicateArg("Object.Select", args[0])
		if err != nil {
			return nil, err
		}
		return receiver.(objectReader).Select(fn), nil
	}
	if !IsAnArray(args[0]) && !IsAString(args[0]) {
		return nil, serrors.NewInvalidArgument("Object.Select", "criterion", "IsCallable", Render(args[0]))
	}
	return receiver.(objectReader).SelectKeys(args[0]), nil
}

func objectMerge(receiver any, args []any) (any, error) {
	return receiver.(objectReader).Merge(args...), nil
}

func objectToMap(receiver any, args []any) (any, error) {
	return receiver.(objectReader).ToMap(), nil
}

func objectSet(receiver any, args []any) (any, error) {
	switch o := receiver.(type) {
	case *Object:
		o.Set(args[0], args[1])
	case *AwareObject:
		o.Set(args[0], args[1])
	case *ImmutableObject:
		return nil, o.Set(args[0], args[1])
	}
	return nil, nil
}

func objectUnset(receiver any, args []any) (any, error) {
	switch o := receiver.(type) {
	case *Object:
		o.Unset(args[0])
	case *AwareObject:
		o.Unset(args[0])
	case *ImmutableObject:
		return nil, o.Unset(args[0])
	}
	return nil, nil
}

func objectMergeInPlace(receiver any, args []any) (any, error) {
	switch o := receiver.(type) {
	case *Object:
		return o.MergeInPlace(args...), nil
	case *AwareObject:
		return o.MergeInPlace(args...), nil
	case *ImmutableObject:
		return nil, o.MergeInPlace(args...)
	}
	return receiver, nil
}

func awareChanged(receiver any, args []any) (any, error) {
	return receiver.(*AwareObject).Changed(), nil
}

func awareResetChanges(receiver any, args []any) (any, error) {
	receiver.(*AwareObject).ResetChanges()
	return nil, nil
}
