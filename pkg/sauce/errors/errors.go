// Package errors provides structured error types for the sauce containers.
//
// Every contract violation raised by a Vector, Object or String is a
// SauceError built from the catalog below. The error carries its class, a
// stable code, the operation that raised it and the template data, so callers
// can log or display it without further lookup.
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// ErrorClass categorizes errors for filtering and templating.
type ErrorClass string

const (
	ClassArgument ErrorClass = "argument" // Input fails a type/shape contract
	ClassRange    ErrorClass = "range"    // Index outside the valid bound
	ClassMutation ErrorClass = "mutation" // Write on a write-denying container
	ClassCall     ErrorClass = "call"     // Invocation failures, method lookup
	ClassArity    ErrorClass = "arity"    // Wrong argument count
	ClassFormat   ErrorClass = "format"   // Invalid encoded input
)

// SauceError represents any contract violation raised by the containers.
type SauceError struct {
	Class   ErrorClass     `json:"class"`           // Error category
	Code    string         `json:"code"`            // Error code (e.g., "ARG-0001")
	Op      string         `json:"op,omitempty"`    // Operation that failed (e.g., "String.StartsWith")
	Message string         `json:"message"`         // Human-readable message
	Hints   []string       `json:"hints,omitempty"` // Suggestions for fixing
	Data    map[string]any `json:"data,omitempty"`  // Template variables
}

// Sentinels for errors.Is. A sentinel with a Code matches that code only;
// otherwise it matches every error of its class.
var (
	ErrInvalidArgument = &SauceError{Class: ClassArgument, Message: "invalid argument"}
	ErrOutOfRange      = &SauceError{Class: ClassRange, Message: "out of range"}
	ErrIllegalMutation = &SauceError{Class: ClassMutation, Message: "illegal mutation"}
	ErrInvocation      = &SauceError{Class: ClassCall, Message: "invocation failed"}
	ErrMethodNotFound  = &SauceError{Class: ClassCall, Code: "CALL-0001", Message: "method not found"}
	ErrArity           = &SauceError{Class: ClassArity, Message: "wrong number of arguments"}
	ErrFormat          = &SauceError{Class: ClassFormat, Message: "invalid format"}
)

// Error implements the error interface.
func (e *SauceError) Error() string {
	return e.String()
}

// Is reports whether target is a sentinel this error belongs to.
func (e *SauceError) Is(target error) bool {
	t, ok := target.(*SauceError)
	if !ok {
		return false
	}
	if t.Code != "" {
		return e.Code == t.Code
	}
	return t.Class != "" && e.Class == t.Class
}

// String returns a formatted string representation of the error.
func (e *SauceError) String() string {
	var sb strings.Builder

	sb.WriteString(e.Message)

	for _, hint := range e.Hints {
		sb.WriteString("\n  ")
		sb.WriteString(hint)
	}

	return sb.String()
}

// PrettyString returns a multi-line formatted string for display.
func (e *SauceError) PrettyString() string {
	var sb strings.Builder

	switch e.Class {
	case ClassArgument:
		sb.WriteString("Invalid argument")
	case ClassRange:
		sb.WriteString("Out of range")
	case ClassMutation:
		sb.WriteString("Illegal mutation")
	case ClassFormat:
		sb.WriteString("Format error")
	default:
		sb.WriteString("Call error")
	}

	if e.Op != "" {
		sb.WriteString(":\n  in: ")
		sb.WriteString(e.Op)
		sb.WriteString("\n  ")
	} else {
		sb.WriteString(":\n  ")
	}

	sb.WriteString(e.Message)

	for i, hint := range e.Hints {
		sb.WriteString("\n  ")
		if i == 0 {
			sb.WriteString("Hint: ")
		} else {
			sb.WriteString(" or: ")
		}
		sb.WriteString(hint)
	}

	return sb.String()
}

// ToJSON returns the error as JSON bytes.
func (e *SauceError) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// WithOp returns a copy of the error with the operation set.
func (e *SauceError) WithOp(op string) *SauceError {
	c := *e
	c.Op = op
	return &c
}

// ErrorDef defines an error in the catalog.
type ErrorDef struct {
	Class    ErrorClass // Error category
	Template string     // Message template with {{.placeholders}}
	Hints    []string   // Hint templates (may use {{.placeholders}})
}

// ErrorCatalog maps error codes to their definitions.
var ErrorCatalog = map[string]ErrorDef{
	// ========================================
	// Argument errors (ARG-0xxx)
	// ========================================
	"ARG-0001": {
		Class:    ClassArgument,
		Template: "{{.Op}}: {{.Name}} does not comply with argument contract {{.Contract}}: {{.Got}}",
	},
	"ARG-0002": {
		Class:    ClassArgument,
		Template: "{{.Op}}: {{.Name}} must be callable, got {{.Got}}",
	},
	"ARG-0003": {
		Class:    ClassArgument,
		Template: "{{.Op}}: {{.Name}} must not be empty",
	},

	// ========================================
	// Range errors (RANGE-0xxx)
	// ========================================
	"RANGE-0001": {
		Class:    ClassRange,
		Template: "{{.Op}}: invalid index {{.Index}} (count {{.Count}})",
	},
	"RANGE-0002": {
		Class:    ClassRange,
		Template: "{{.Op}}: non-numeric index {{.Got}}",
		Hints:    []string{"vectors are indexed with integers from 0 to count-1"},
	},
	"RANGE-0003": {
		Class:    ClassRange,
		Template: "{{.Op}}: no entry {{.Key}}",
	},

	// ========================================
	// Mutation errors (MUT-0xxx)
	// ========================================
	"MUT-0001": {
		Class:    ClassMutation,
		Template: "{{.Op}}: this object is immutable",
	},
	"MUT-0002": {
		Class:    ClassMutation,
		Template: "{{.Op}}: the document is read-only",
		Hints:    []string{"the document was opened with --readonly"},
	},

	// ========================================
	// Call errors (CALL-0xxx)
	// ========================================
	"CALL-0001": {
		Class:    ClassCall,
		Template: "method not found: {{.Method}}{{if .Type}} for {{.Type}}{{end}} ({{.Args}})",
		// Hint "Did you mean `X`?" added dynamically by fuzzy matching
	},
	"CALL-0002": {
		Class:    ClassCall,
		Template: "cannot invoke {{.Method}} on {{.Got}}",
		Hints:    []string{"methods can be invoked on vectors, objects and strings"},
	},

	// ========================================
	// Arity errors (ARITY-0xxx)
	// ========================================
	"ARITY-0001": {
		Class:    ClassArity,
		Template: "wrong number of arguments to `{{.Function}}`. got={{.Got}}, want={{.Want}}",
	},
	"ARITY-0002": {
		Class:    ClassArity,
		Template: "`{{.Function}}` expects at least {{.Min}} argument(s), got {{.Got}}",
	},
	"ARITY-0003": {
		Class:    ClassArity,
		Template: "`{{.Function}}` expects {{.Min}}-{{.Max}} arguments, got {{.Got}}",
	},

	// ========================================
	// Format errors (FMT-0xxx)
	// ========================================
	"FMT-0001": {
		Class:    ClassFormat,
		Template: "invalid {{.Format}}: {{.GoError}}",
	},
	"FMT-0002": {
		Class:    ClassFormat,
		Template: "unknown format: {{.Format}}",
		Hints:    []string{"use json, yaml or auto"},
	},
	"FMT-0003": {
		Class:    ClassFormat,
		Template: "invalid datetime: {{.GoError}}",
	},
}

// New creates a SauceError from the catalog.
// If the code is not found, creates a generic error with the message.
func New(code string, data map[string]any) *SauceError {
	op, _ := data["Op"].(string)

	def, ok := ErrorCatalog[code]
	if !ok {
		// Unknown code - create a generic error
		msg := code
		if data != nil {
			if m, ok := data["message"].(string); ok {
				msg = m
			}
		}
		return &SauceError{
			Class:   ClassCall, // Default class
			Code:    code,
			Op:      op,
			Message: msg,
			Data:    data,
		}
	}

	msg := renderTemplate(def.Template, data)

	var hints []string
	for _, hintTmpl := range def.Hints {
		rendered := renderTemplate(hintTmpl, data)
		if rendered != "" {
			hints = append(hints, rendered)
		}
	}

	return &SauceError{
		Class:   def.Class,
		Code:    code,
		Op:      op,
		Message: msg,
		Hints:   hints,
		Data:    data,
	}
}

// NewSimple creates a simple error without using the catalog.
func NewSimple(class ErrorClass, message string) *SauceError {
	return &SauceError{
		Class:   class,
		Message: message,
	}
}

// NewSimpleWithHints creates a simple error with hints.
func NewSimpleWithHints(class ErrorClass, message string, hints ...string) *SauceError {
	return &SauceError{
		Class:   class,
		Message: message,
		Hints:   hints,
	}
}

// NewInvalidArgument reports a value that failed an argument contract.
func NewInvalidArgument(op, name, contract, got string) *SauceError {
	return New("ARG-0001", map[string]any{
		"Op":       op,
		"Name":     name,
		"Contract": contract,
		"Got":      got,
	})
}

// NewNotCallable reports a missing or unusable callback.
func NewNotCallable(op, name, got string) *SauceError {
	return New("ARG-0002", map[string]any{
		"Op":   op,
		"Name": name,
		"Got":  got,
	})
}

// NewOutOfRange reports an index outside the valid bound of a vector.
func NewOutOfRange(op string, index, count int) *SauceError {
	return New("RANGE-0001", map[string]any{
		"Op":    op,
		"Index": index,
		"Count": count,
	})
}

// NewNonNumericIndex reports an index that is not an integer.
func NewNonNumericIndex(op, got string) *SauceError {
	return New("RANGE-0002", map[string]any{
		"Op":  op,
		"Got": got,
	})
}

// NewMissingKey reports a lookup of a key or index that holds no entry.
func NewMissingKey(op, key string) *SauceError {
	return New("RANGE-0003", map[string]any{
		"Op":  op,
		"Key": key,
	})
}

// NewIllegalMutation reports a write on a write-denying container.
func NewIllegalMutation(op string) *SauceError {
	return New("MUT-0001", map[string]any{"Op": op})
}

// NewReadOnly creates an error for a write inside a read-only document.
func NewReadOnly(op string) *SauceError {
	return New("MUT-0002", map[string]any{"Op": op})
}

func renderTemplate(tmplStr string, data map[string]any) string {
	if data == nil {
		return tmplStr
	}

	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return tmplStr
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return tmplStr
	}

	return buf.String()
}

// ============================================================================
// Fuzzy Matching - "Did you mean?" suggestions
// ============================================================================

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

// FuzzyMatch represents a fuzzy match result with its distance.
type FuzzyMatch struct {
	Value    string
	Distance int
}

// matchThreshold scales the accepted edit distance with the input length.
// Short words (1-3): max 1 edit, medium (4-6): 2, longer: 3.
func matchThreshold(input string) int {
	switch {
	case len(input) >= 7:
		return 3
	case len(input) >= 4:
		return 2
	default:
		return 1
	}
}

// FindClosestMatch finds the closest match to the given string from candidates.
// Returns the best match if the distance is within the threshold, otherwise empty string.
func FindClosestMatch(input string, candidates []string) string {
	if len(input) == 0 || len(candidates) == 0 {
		return ""
	}

	inputLower := strings.ToLower(input)

	var bestMatch string
	bestDistance := -1

	for _, candidate := range candidates {
		dist := levenshteinDistance(inputLower, strings.ToLower(candidate))

		if bestDistance == -1 || dist < bestDistance {
			bestDistance = dist
			bestMatch = candidate
		}
	}

	// Don't suggest if distance is 0 (exact match) or over threshold
	if bestDistance <= 0 || bestDistance > matchThreshold(input) {
		return ""
	}

	return bestMatch
}

// FindTopMatches returns the top N closest matches to the input.
func FindTopMatches(input string, candidates []string, n int) []string {
	if len(input) == 0 || len(candidates) == 0 || n <= 0 {
		return nil
	}

	inputLower := strings.ToLower(input)

	var matches []FuzzyMatch
	for _, candidate := range candidates {
		dist := levenshteinDistance(inputLower, strings.ToLower(candidate))
		if dist > 0 {
			matches = append(matches, FuzzyMatch{Value: candidate, Distance: dist})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	threshold := matchThreshold(input)

	var result []string
	for i := 0; i < len(matches) && i < n; i++ {
		if matches[i].Distance <= threshold {
			result = append(result, matches[i].Value)
		}
	}

	return result
}

// NewMethodNotFound creates a method-not-found error with optional fuzzy matching.
// typeName may be empty for methods defined on a single instance.
func NewMethodNotFound(method, typeName string, args []string, availableMethods []string) *SauceError {
	data := map[string]any{
		"Method": method,
		"Type":   typeName,
		"Args":   strings.Join(args, ", "),
	}
	err := New("CALL-0001", data)

	if suggestion := FindClosestMatch(method, availableMethods); suggestion != "" {
		err.Hints = append(err.Hints, "Did you mean `"+suggestion+"`?")
	}

	return err
}

// NewArity reports an exact argument count mismatch.
func NewArity(function string, got, want int) *SauceError {
	return New("ARITY-0001", map[string]any{
		"Function": function,
		"Got":      got,
		"Want":     want,
	})
}

// NewArityMin reports too few arguments to a variadic method.
func NewArityMin(function string, got, minArgs int) *SauceError {
	return New("ARITY-0002", map[string]any{
		"Function": function,
		"Got":      got,
		"Min":      minArgs,
	})
}

// NewArityRange reports an argument count outside a range.
func NewArityRange(function string, got, minArgs, maxArgs int) *SauceError {
	return New("ARITY-0003", map[string]any{
		"Function": function,
		"Got":      got,
		"Min":      minArgs,
		"Max":      maxArgs,
	})
}

// NewFormat wraps a decoding failure.
func NewFormat(format string, err error) *SauceError {
	return New("FMT-0001", map[string]any{
		"Format":  format,
		"GoError": fmt.Sprint(err),
	})
}
