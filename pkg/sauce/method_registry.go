package sauce

import (
	"maps"
	"sort"
	"strconv"
	"strings"

	serrors "github.com/sambeau/sauce/pkg/sauce/errors"
)

// MethodFunc is the signature for every method reachable through Invoke or
// Object.Call. The receiver is the container the method was called on.
type MethodFunc func(receiver any, args []any) (any, error)

// MethodEntry defines a single method with its implementation and metadata.
type MethodEntry struct {
	Fn          MethodFunc
	Arity       string // "0", "1", "0-1", "1+", "2", etc.
	Description string
	Mutates     bool // writes to the receiver's contents
}

// MethodInfo describes a method for help output.
type MethodInfo struct {
	Name        string `json:"name"`
	Arity       string `json:"arity"`
	Description string `json:"description"`
}

// MethodRegistry maps method names to their entries.
type MethodRegistry map[string]MethodEntry

// Names returns a sorted list of method names in this registry.
func (r MethodRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the method entry for the given name, if it exists.
func (r MethodRegistry) Get(name string) (MethodEntry, bool) {
	entry, ok := r[name]
	return entry, ok
}

// ToMethodInfos converts the registry to a slice of MethodInfo sorted by name.
func (r MethodRegistry) ToMethodInfos() []MethodInfo {
	methods := make([]MethodInfo, 0, len(r))
	for name, entry := range r {
		methods = append(methods, MethodInfo{
			Name:        name,
			Arity:       entry.Arity,
			Description: entry.Description,
		})
	}
	sort.Slice(methods, func(i, j int) bool {
		return methods[i].Name < methods[j].Name
	})
	return methods
}

func (r MethodRegistry) clone() MethodRegistry {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// typeRegistries maps type names to their built-in method registries.
var typeRegistries = map[string]MethodRegistry{}

// RegisterMethodRegistry registers a method registry for a type.
func RegisterMethodRegistry(typeName string, registry MethodRegistry) {
	typeRegistries[typeName] = registry
}

// GetRegistryForType returns the method registry for a type, or nil if not found.
func GetRegistryForType(typeName string) MethodRegistry {
	return typeRegistries[typeName]
}

// GetMethodsForType returns method info for a type from its registry.
func GetMethodsForType(typeName string) []MethodInfo {
	registry := typeRegistries[typeName]
	if registry == nil {
		return nil
	}
	return registry.ToMethodInfos()
}

// checkArity validates that the argument count matches the arity specification.
// Arity specs: "0", "1", "2", "0-1", "1-2", "0-2", "1+", "0+", "2+", etc.
func checkArity(spec string, got int) bool {
	spec = strings.TrimSpace(spec)

	// Exact match: "0", "1", "2", etc.
	if exact, err := strconv.Atoi(spec); err == nil {
		return got == exact
	}

	// Range: "0-1", "1-2", "0-2", etc.
	if lo, hi, ok := arityRange(spec); ok {
		return got >= lo && got <= hi
	}

	// Variadic: "1+", "0+", "2+", etc.
	if suffix, found := strings.CutSuffix(spec, "+"); found {
		minVal, err := strconv.Atoi(suffix)
		if err == nil {
			return got >= minVal
		}
	}

	// Unknown spec - be permissive
	return true
}

func arityRange(spec string) (int, int, bool) {
	lo, hi, found := strings.Cut(spec, "-")
	if !found {
		return 0, 0, false
	}
	minVal, errMin := strconv.Atoi(lo)
	maxVal, errMax := strconv.Atoi(hi)
	if errMin != nil || errMax != nil {
		return 0, 0, false
	}
	return minVal, maxVal, true
}

// newArityErrorFromSpec creates an arity error worded after the spec string.
func newArityErrorFromSpec(method, spec string, got int) *serrors.SauceError {
	spec = strings.TrimSpace(spec)

	if exact, err := strconv.Atoi(spec); err == nil {
		return serrors.NewArity(method, got, exact)
	}

	if lo, hi, ok := arityRange(spec); ok {
		return serrors.NewArityRange(method, got, lo, hi)
	}

	if suffix, found := strings.CutSuffix(spec, "+"); found {
		minVal, err := strconv.Atoi(suffix)
		if err == nil {
			return serrors.NewArityMin(method, got, minVal)
		}
	}

	return serrors.NewArity(method, got, 0)
}

// dispatchFromRegistry runs method from registry. found is false when the
// registry has no such method, leaving the error to the caller.
func dispatchFromRegistry(registry MethodRegistry, receiver any, method string, args []any) (result any, found bool, err error) {
	entry, ok := registry.Get(method)
	if !ok {
		return nil, false, nil
	}

	if !checkArity(entry.Arity, len(args)) {
		return nil, true, newArityErrorFromSpec(method, entry.Arity, len(args))
	}

	if entry.Fn == nil {
		return nil, true, serrors.NewNotCallable(method, "method", "null")
	}

	result, err = entry.Fn(receiver, args)
	return result, true, err
}

// callInstance looks up a method defined on a single Object and invokes it
// with receiver.
func callInstance(receiver any, methods MethodRegistry, name string, args []any) (any, error) {
	result, found, err := dispatchFromRegistry(methods, receiver, NormalizeKey(name), args)
	if !found {
		return nil, serrors.NewMethodNotFound(name, "", renderArgs(args), methods.Names())
	}
	return result, err
}
