package sauce

import (
	"fmt"

	serrors "github.com/sambeau/sauce/pkg/sauce/errors"
)

// TypeName returns the registry name for v's type: "vector", "object",
// "string", "immutable" or "aware" for the containers, and a descriptive
// name for anything else.
func TypeName(v any) string {
	if isNil(v) {
		return "null"
	}
	switch v.(type) {
	case *Vector:
		return "vector"
	case *Object:
		return "object"
	case *String:
		return "string"
	case *ImmutableObject:
		return "immutable"
	case *AwareObject:
		return "aware"
	case string:
		return "text"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "float"
	}
	return fmt.Sprintf("%T", v)
}

// Invoke calls method on receiver through the registry of its type. For
// Objects and their overlays, methods defined on the instance are consulted
// after the built-in ones.
func Invoke(receiver any, method string, args ...any) (any, error) {
	typeName := TypeName(receiver)
	registry := GetRegistryForType(typeName)
	if registry == nil {
		return nil, serrors.New("CALL-0002", map[string]any{
			"Method": method,
			"Got":    Render(receiver),
		})
	}

	if result, found, err := dispatchFromRegistry(registry, receiver, method, args); found {
		return result, err
	}

	candidates := registry.Names()
	if o := asObject(receiver); o != nil {
		if result, found, err := dispatchFromRegistry(o.methods, receiver, NormalizeKey(method), args); found {
			return result, err
		}
		candidates = append(candidates, o.methods.Names()...)
	}

	return nil, serrors.NewMethodNotFound(method, typeName, renderArgs(args), candidates)
}

// Mutates reports whether calling method on receiver writes to the
// receiver's contents. Unknown and instance-defined methods report false.
func Mutates(receiver any, method string) bool {
	entry, ok := GetRegistryForType(TypeName(receiver)).Get(method)
	return ok && entry.Mutates
}

// MethodNames returns every method Invoke accepts on receiver, built-in and
// instance-defined.
func MethodNames(receiver any) []string {
	names := GetRegistryForType(TypeName(receiver)).Names()
	if o := asObject(receiver); o != nil {
		names = append(names, o.methods.Names()...)
	}
	return names
}

// MethodInfos describes every method Invoke accepts on receiver. Instance
// methods follow the built-in ones.
func MethodInfos(receiver any) []MethodInfo {
	infos := GetMethodsForType(TypeName(receiver))
	if o := asObject(receiver); o != nil {
		infos = append(infos, o.methods.ToMethodInfos()...)
	}
	return infos
}

// ============================================================================
// Dynamic argument conversion
// ============================================================================

func indexArg(op string, v any) (int, error) {
	i, ok := toIndex(v)
	if !ok {
		return 0, serrors.NewNonNumericIndex(op, Render(v))
	}
	return i, nil
}

func mapperArg(op string, v any) (func(any) any, error) {
	switch fn := v.(type) {
	case func(any) any:
		if fn != nil {
			return fn, nil
		}
	case func(any) bool:
		if fn != nil {
			return func(x any) any { return fn(x) }, nil
		}
	}
	return nil, serrors.NewNotCallable(op, "callback", Render(v))
}

func predicateArg(op string, v any) (func(any) bool, error) {
	switch fn := v.(type) {
	case func(any) bool:
		if fn != nil {
			return fn, nil
		}
	case func(any) any:
		if fn != nil {
			return func(x any) bool { return truthy(fn(x)) }, nil
		}
	}
	return nil, serrors.NewNotCallable(op, "callback", Render(v))
}

func keyPredicateArg(op string, v any) (func(string) bool, error) {
	if fn, ok := v.(func(string) bool); ok && fn != nil {
		return fn, nil
	}
	return nil, serrors.NewNotCallable(op, "predicate", Render(v))
}

func entryPredicateArg(op string, v any) (func(string, any) bool, error) {
	if fn, ok := v.(func(string, any) bool); ok && fn != nil {
		return fn, nil
	}
	return nil, serrors.NewNotCallable(op, "predicate", Render(v))
}
