// Package help describes the sauce container types and error codes for the
// shell (`:describe`) and the CLI (`sauce describe`).
package help

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sambeau/sauce/pkg/sauce"
	"github.com/sambeau/sauce/pkg/sauce/errors"
)

// TopicResult represents the help output for a topic
type TopicResult struct {
	Kind        string             `json:"kind"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Methods     []sauce.MethodInfo `json:"methods,omitempty"`
	TypeNames   []string           `json:"type_names,omitempty"`
	Errors      []ErrorEntry       `json:"errors,omitempty"`
}

// ErrorEntry describes one catalog error
type ErrorEntry struct {
	Code     string   `json:"code"`
	Class    string   `json:"class"`
	Template string   `json:"template"`
	Hints    []string `json:"hints,omitempty"`
}

// typeNames lists the types with method registries, in display order.
var typeNames = []string{"vector", "object", "string", "immutable", "aware"}

var typeDescriptions = map[string]string{
	"vector":    "Ordered, integer-indexed sequence of values.",
	"object":    "Ordered map with case-insensitive keys and per-instance methods.",
	"string":    "Mutable text with in-place and copying operations.",
	"immutable": "Object that denies every write after construction.",
	"aware":     "Object that records which keys were written.",
}

// DescribeTopic returns help information for the given topic.
// Topics can be: a type name (vector, object), "types", "errors" or an
// error code (RANGE-0001).
func DescribeTopic(topic string) (*TopicResult, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("no topic specified (try: types, errors, vector, object, string)")
	}

	if result := describeType(topic); result != nil {
		return result, nil
	}

	switch strings.ToLower(topic) {
	case "types":
		return describeTypes(), nil
	case "errors":
		return describeErrors(), nil
	}

	if result := describeErrorCode(topic); result != nil {
		return result, nil
	}

	return nil, unknownTopicError(topic)
}

// describeType returns help for a type, or nil if not found
func describeType(typeName string) *TopicResult {
	name := strings.ToLower(typeName)
	methods := sauce.GetMethodsForType(name)
	if methods == nil {
		return nil
	}
	return &TopicResult{
		Kind:        "type",
		Name:        name,
		Description: typeDescriptions[name],
		Methods:     methods,
	}
}

// describeTypes returns a list of all known types
func describeTypes() *TopicResult {
	names := make([]string, 0, len(typeNames))
	for _, name := range typeNames {
		if sauce.GetRegistryForType(name) != nil {
			names = append(names, name)
		}
	}
	return &TopicResult{
		Kind:      "type-list",
		Name:      "types",
		TypeNames: names,
	}
}

// describeErrors returns every catalog error sorted by code
func describeErrors() *TopicResult {
	entries := make([]ErrorEntry, 0, len(errors.ErrorCatalog))
	for code, def := range errors.ErrorCatalog {
		entries = append(entries, errorEntry(code, def))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Code < entries[j].Code
	})
	return &TopicResult{
		Kind:   "error-list",
		Name:   "errors",
		Errors: entries,
	}
}

func describeErrorCode(code string) *TopicResult {
	code = strings.ToUpper(code)
	def, ok := errors.ErrorCatalog[code]
	if !ok {
		return nil
	}
	return &TopicResult{
		Kind:   "error",
		Name:   code,
		Errors: []ErrorEntry{errorEntry(code, def)},
	}
}

func errorEntry(code string, def errors.ErrorDef) ErrorEntry {
	return ErrorEntry{
		Code:     code,
		Class:    string(def.Class),
		Template: def.Template,
		Hints:    def.Hints,
	}
}

// topics returns every name DescribeTopic accepts.
func topics() []string {
	all := append([]string{"types", "errors"}, typeNames...)
	codes := make([]string, 0, len(errors.ErrorCatalog))
	for code := range errors.ErrorCatalog {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return append(all, codes...)
}

// unknownTopicError generates a helpful error for unknown topics
func unknownTopicError(topic string) error {
	suggestions := errors.FindTopMatches(strings.ToLower(topic), topics(), 3)
	if len(suggestions) > 0 {
		return fmt.Errorf("unknown topic: %s\nDid you mean: %s?", topic, strings.Join(suggestions, ", "))
	}
	return fmt.Errorf("unknown topic: %s\nTry: types, errors, vector, object, string", topic)
}
