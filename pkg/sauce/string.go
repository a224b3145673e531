package sauce

import (
	"regexp"
	"strings"
)

// defaultTrimSet is the set of characters Trim strips when none are given.
const defaultTrimSet = " \t\n\r\x00\x0B"

var lineBreak = regexp.MustCompile(`\r\n|\n|\r`)

// String is a text buffer. Plain operations return a new String and leave
// the receiver unchanged; their InPlace counterparts modify the receiver and
// return it for chaining.
//
// Text arguments may be a string or a *String; anything else fails with an
// InvalidArgument error naming the argument and the operation.
type String struct {
	value string
}

// NewString creates a String from a string or copies another *String.
func NewString(value any) (*String, error) {
	s, err := textArg("String.New", "value", value)
	if err != nil {
		return nil, err
	}
	return &String{value: s}, nil
}

// String returns the raw text.
func (s *String) String() string {
	if s == nil {
		return ""
	}
	return s.value
}

// Length returns the length of the text in bytes.
func (s *String) Length() int {
	return len(s.value)
}

// StartsWith reports whether the text begins with needle.
func (s *String) StartsWith(needle any) (bool, error) {
	n, err := textArg("String.StartsWith", "needle", needle)
	if err != nil {
		return false, err
	}
	lo, hi := window(len(s.value), 0, len(n))
	return s.value[lo:hi] == n, nil
}

// EndsWith reports whether the text ends with needle.
func (s *String) EndsWith(needle any) (bool, error) {
	n, err := textArg("String.EndsWith", "needle", needle)
	if err != nil {
		return false, err
	}
	if len(n) > len(s.value) {
		return false, nil
	}
	lo, hi := window(len(s.value), len(s.value)-len(n), len(n))
	return s.value[lo:hi] == n, nil
}

// Includes reports whether needle occurs anywhere in the text.
func (s *String) Includes(needle any) (bool, error) {
	n, err := textArg("String.Includes", "needle", needle)
	if err != nil {
		return false, err
	}
	return strings.Contains(s.value, n), nil
}

// Equals reports whether other holds exactly the same text.
func (s *String) Equals(other any) (bool, error) {
	o, err := textArg("String.Equals", "other", other)
	if err != nil {
		return false, err
	}
	return s.value == o, nil
}

// Replace returns a copy with every occurrence of search replaced.
func (s *String) Replace(search, replace any) (*String, error) {
	out, err := s.replace("String.Replace", search, replace, false)
	if err != nil {
		return nil, err
	}
	return &String{value: out}, nil
}

// IReplace is the case-insensitive variant of Replace.
func (s *String) IReplace(search, replace any) (*String, error) {
	out, err := s.replace("String.IReplace", search, replace, true)
	if err != nil {
		return nil, err
	}
	return &String{value: out}, nil
}

// ReplaceInPlace replaces every occurrence of search in the receiver.
func (s *String) ReplaceInPlace(search, replace any) (*String, error) {
	out, err := s.replace("String.ReplaceInPlace", search, replace, false)
	if err != nil {
		return nil, err
	}
	s.value = out
	return s, nil
}

// IReplaceInPlace is the case-insensitive variant of ReplaceInPlace.
func (s *String) IReplaceInPlace(search, replace any) (*String, error) {
	out, err := s.replace("String.IReplaceInPlace", search, replace, true)
	if err != nil {
		return nil, err
	}
	s.value = out
	return s, nil
}

func (s *String) replace(op string, search, replace any, fold bool) (string, error) {
	from, err := textArg(op, "search", search)
	if err != nil {
		return "", err
	}
	to, err := textArg(op, "replace", replace)
	if err != nil {
		return "", err
	}
	if from == "" {
		return s.value, nil
	}
	if !fold {
		return strings.ReplaceAll(s.value, from, to), nil
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(from))
	return re.ReplaceAllLiteralString(s.value, to), nil
}

// Slice returns length bytes starting at start. A negative start counts
// from the end, a negative length leaves that many bytes off the end, and
// bounds past the end are truncated.
func (s *String) Slice(start, length int) *String {
	lo, hi := window(len(s.value), start, length)
	return &String{value: s.value[lo:hi]}
}

// SliceInPlace is the in-place variant of Slice.
func (s *String) SliceInPlace(start, length int) *String {
	lo, hi := window(len(s.value), start, length)
	s.value = s.value[lo:hi]
	return s
}

// Append returns a copy with text added at the end.
func (s *String) Append(text any) (*String, error) {
	t, err := textArg("String.Append", "text", text)
	if err != nil {
		return nil, err
	}
	return &String{value: s.value + t}, nil
}

// AppendInPlace adds text at the end of the receiver.
func (s *String) AppendInPlace(text any) (*String, error) {
	t, err := textArg("String.AppendInPlace", "text", text)
	if err != nil {
		return nil, err
	}
	s.value += t
	return s, nil
}

// Prepend returns a copy with text added at the front.
func (s *String) Prepend(text any) (*String, error) {
	t, err := textArg("String.Prepend", "text", text)
	if err != nil {
		return nil, err
	}
	return &String{value: t + s.value}, nil
}

// PrependInPlace adds text at the front of the receiver.
func (s *String) PrependInPlace(text any) (*String, error) {
	t, err := textArg("String.PrependInPlace", "text", text)
	if err != nil {
		return nil, err
	}
	s.value = t + s.value
	return s, nil
}

// Trim returns a copy with the given characters stripped from both ends.
// Without an argument whitespace and NUL bytes are stripped.
func (s *String) Trim(chars ...any) (*String, error) {
	set, err := trimSet("String.Trim", chars)
	if err != nil {
		return nil, err
	}
	return &String{value: strings.Trim(s.value, set)}, nil
}

// TrimInPlace is the in-place variant of Trim.
func (s *String) TrimInPlace(chars ...any) (*String, error) {
	set, err := trimSet("String.TrimInPlace", chars)
	if err != nil {
		return nil, err
	}
	s.value = strings.Trim(s.value, set)
	return s, nil
}

func trimSet(op string, chars []any) (string, error) {
	if len(chars) == 0 {
		return defaultTrimSet, nil
	}
	return textArg(op, "characters", chars[0])
}

// Split returns the pieces of the text between occurrences of delimiter.
func (s *String) Split(delimiter any) (*Vector, error) {
	sep, err := textArg("String.Split", "delimiter", delimiter)
	if err != nil {
		return nil, err
	}
	if sep == "" {
		return nil, emptyArgument("String.Split", "delimiter")
	}
	return NewVector(strings.Split(s.value, sep)), nil
}

// Fields splits the text on single spaces.
func (s *String) Fields() *Vector {
	v, _ := s.Split(" ")
	return v
}

// ToLines splits the text on \r\n, \n and \r. A single trailing line break
// does not produce an empty last line, and empty text has no lines.
func (s *String) ToLines() *Vector {
	text := s.value
	if text == "" {
		return &Vector{}
	}
	if loc := lineBreak.FindAllStringIndex(text, -1); len(loc) > 0 && loc[len(loc)-1][1] == len(text) {
		text = text[:loc[len(loc)-1][0]]
	}
	return NewVector(lineBreak.Split(text, -1))
}
