package repl

import (
	stderrors "errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/sambeau/sauce/pkg/sauce"
	"github.com/sambeau/sauce/pkg/sauce/errors"
	"github.com/sambeau/sauce/pkg/sauce/help"
)

// frame is one step of the navigation path.
type frame struct {
	name  string
	value any
}

// Session holds a loaded document and the position the shell has navigated
// to inside it. A session over an ImmutableObject is read-only all the way
// down: nested Objects, Vectors and Strings reject mutating methods too.
type Session struct {
	stack    []frame
	output   string
	readOnly bool
}

// NewSession starts a session at root. output is the result format, "json"
// or "yaml".
func NewSession(root any, output string) *Session {
	if output == "" {
		output = "json"
	}
	_, readOnly := root.(*sauce.ImmutableObject)
	return &Session{
		stack:    []frame{{value: wrapText(root)}},
		output:   output,
		readOnly: readOnly,
	}
}

// ReadOnly reports whether the session denies writes to the document.
func (s *Session) ReadOnly() bool {
	return s.readOnly
}

// Root returns the document the session was started with.
func (s *Session) Root() any {
	return s.stack[0].value
}

// Current returns the value at the current position.
func (s *Session) Current() any {
	return s.stack[len(s.stack)-1].value
}

// Path returns the current position as a slash separated path.
func (s *Session) Path() string {
	if len(s.stack) == 1 {
		return "/"
	}
	names := make([]string, 0, len(s.stack)-1)
	for _, f := range s.stack[1:] {
		names = append(names, f.name)
	}
	return "/" + strings.Join(names, "/")
}

// Exec runs one shell line and returns the text to print.
func (s *Session) Exec(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}
	if strings.HasPrefix(line, ":") {
		return s.command(line)
	}

	tokens, err := splitArgs(line)
	if err != nil {
		return "", err
	}
	args := make([]any, 0, len(tokens)-1)
	for _, tok := range tokens[1:] {
		args = append(args, tok.value())
	}

	method := tokens[0].text
	if s.readOnly && sauce.Mutates(s.Current(), method) {
		return "", errors.NewReadOnly(sauce.TypeName(s.Current()) + "." + method)
	}

	result, err := sauce.Invoke(s.Current(), method, args...)
	if err != nil {
		return "", err
	}
	return s.render(result)
}

func (s *Session) command(line string) (string, error) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case ":help", ":h", ":?":
		return helpText, nil
	case ":methods", ":m":
		return s.methods(), nil
	case ":cd":
		return s.cd(rest)
	case ":up":
		return s.cd("..")
	case ":json":
		return encode(s.Current(), "json")
	case ":yaml":
		return encode(s.Current(), "yaml")
	case ":type":
		return sauce.TypeName(s.Current()), nil
	case ":pwd":
		return s.Path(), nil
	case ":output":
		if rest != "json" && rest != "yaml" {
			return "", errors.New("FMT-0002", map[string]any{"Format": rest})
		}
		s.output = rest
		return "output " + rest, nil
	case ":describe", ":d":
		topic := rest
		if topic == "" {
			topic = sauce.TypeName(s.Current())
		}
		result, err := help.DescribeTopic(topic)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(help.FormatText(result), "\n"), nil
	}
	return "", errors.NewSimpleWithHints(errors.ClassCall, "unknown command: "+cmd, "type :help for commands")
}

const helpText = `Commands:
  <method> [args...]  Invoke a method on the current value
  :help, :h, :?       Show this help
  :methods, :m        List the methods of the current value
  :cd <path>          Move into an entry (a/0, .. moves up, /a from the root)
  :up                 Move to the parent value
  :pwd                Show the current path
  :type               Show the type of the current value
  :json, :yaml        Print the current value
  :output json|yaml   Set the result format
  :describe, :d [t]   Describe a type, "types", "errors" or an error code
  exit, quit          Leave the shell

Arguments are read as JSON when they parse, otherwise as text.
Use 'single quotes' for text that contains spaces.`

func (s *Session) methods() string {
	infos := sauce.MethodInfos(s.Current())
	if len(infos) == 0 {
		return "(no methods for " + sauce.TypeName(s.Current()) + ")"
	}
	var b strings.Builder
	for i, info := range infos {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %-16s %-4s %s", info.Name, info.Arity, info.Description)
	}
	return b.String()
}

func (s *Session) cd(target string) (string, error) {
	switch target {
	case "":
		return "", errors.New("ARG-0003", map[string]any{"Op": ":cd", "Name": "key"})
	case "/":
		s.stack = s.stack[:1]
		return s.Path(), nil
	case "..":
		if len(s.stack) > 1 {
			s.stack = s.stack[:len(s.stack)-1]
		}
		return s.Path(), nil
	}

	saved := slices.Clone(s.stack)
	if strings.HasPrefix(target, "/") {
		s.stack = s.stack[:1]
	}
	for _, part := range strings.Split(strings.Trim(target, "/"), "/") {
		if part == ".." {
			if len(s.stack) > 1 {
				s.stack = s.stack[:len(s.stack)-1]
			}
			continue
		}
		child, err := s.child(part)
		if err != nil {
			s.stack = saved
			return "", err
		}
		name := part
		if _, ok := s.Current().(*sauce.Vector); !ok {
			name = sauce.NormalizeKey(part)
		}
		s.stack = append(s.stack, frame{name: name, value: child})
	}
	return s.Path(), nil
}

// child looks up key in the current value. Plain text found on the way is
// wrapped into a String and, unless the session is read-only, stored back so
// String methods change the document.
func (s *Session) child(key string) (any, error) {
	parent := s.Current()

	var value any
	switch p := parent.(type) {
	case *sauce.Vector:
		i, err := strconv.Atoi(key)
		if err != nil {
			return nil, errors.NewNonNumericIndex(":cd", strconv.Quote(key))
		}
		v, err := p.Get(i)
		if err != nil {
			var se *errors.SauceError
			if stderrors.As(err, &se) {
				return nil, se.WithOp(":cd")
			}
			return nil, err
		}
		value = v
	case interface{ Lookup(key any) (any, bool) }:
		v, ok := p.Lookup(key)
		if !ok {
			return nil, errors.NewMissingKey(":cd", strconv.Quote(key))
		}
		value = v
	default:
		return nil, errors.NewMissingKey(":cd", strconv.Quote(key))
	}

	text, ok := value.(string)
	if !ok {
		return value, nil
	}
	wrapped := sauce.S(text)
	if s.readOnly {
		return wrapped, nil
	}
	switch p := parent.(type) {
	case *sauce.Vector:
		i, _ := strconv.Atoi(key)
		_ = p.Set(i, wrapped)
	case *sauce.Object:
		p.Set(key, wrapped)
	case *sauce.AwareObject:
		p.Set(key, wrapped)
	}
	return wrapped, nil
}

// Completions returns the words that complete the last word of line.
func (s *Session) Completions(line string) []string {
	if strings.HasPrefix(line, ":cd ") {
		prefix := strings.TrimPrefix(line, ":cd ")
		var out []string
		for _, key := range childKeys(s.Current()) {
			if strings.HasPrefix(key, prefix) {
				out = append(out, ":cd "+key)
			}
		}
		return out
	}
	if strings.ContainsAny(line, " \t") {
		return nil
	}

	words := append([]string{":help", ":methods", ":cd", ":up", ":pwd", ":type", ":json", ":yaml", ":output", ":describe", "exit"},
		sauce.MethodNames(s.Current())...)
	var out []string
	for _, w := range words {
		if line != "" && strings.HasPrefix(w, line) {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

func childKeys(v any) []string {
	switch c := v.(type) {
	case *sauce.Vector:
		keys := make([]string, c.Count())
		for i := range keys {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	case interface{ Keys(func(string) bool) *sauce.Vector }:
		var keys []string
		for _, k := range c.Keys(nil).All() {
			keys = append(keys, k.(string))
		}
		return keys
	}
	return nil
}

func (s *Session) render(v any) (string, error) {
	return encode(v, s.output)
}

func encode(v any, format string) (string, error) {
	b, err := sauce.Encode(v, format)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\n"), nil
}

// wrapText turns a plain text document into a String so it has methods.
func wrapText(v any) any {
	if text, ok := v.(string); ok {
		return sauce.S(text)
	}
	return v
}

// ============================================================================
// Argument splitting
// ============================================================================

type token struct {
	text   string
	quoted bool // single quoted text, never decoded
}

// value decodes the token as JSON, falling back to the raw text.
func (t token) value() any {
	if t.quoted {
		return t.text
	}
	v, err := sauce.Decode([]byte(t.text), "json")
	if err != nil {
		return t.text
	}
	return v
}

// splitArgs splits a line on whitespace, keeping JSON strings, arrays and
// objects together.
func splitArgs(line string) ([]token, error) {
	var tokens []token
	var cur strings.Builder
	depth := 0
	inString := false
	inQuote := false
	escapeNext := false
	started := false

	flush := func(quoted bool) {
		if started {
			tokens = append(tokens, token{text: cur.String(), quoted: quoted})
		}
		cur.Reset()
		started = false
	}

	for i := 0; i < len(line); i++ {
		ch := line[i]

		if inQuote {
			if ch == '\'' {
				inQuote = false
				flush(true)
				continue
			}
			cur.WriteByte(ch)
			continue
		}

		if escapeNext {
			escapeNext = false
			cur.WriteByte(ch)
			continue
		}

		if inString {
			cur.WriteByte(ch)
			switch ch {
			case '\\':
				escapeNext = true
			case '"':
				inString = false
			}
			continue
		}

		switch {
		case ch == '\'' && !started && depth == 0:
			inQuote = true
			started = true
			continue
		case ch == '"':
			inString = true
		case ch == '[' || ch == '{':
			depth++
		case ch == ']' || ch == '}':
			if depth > 0 {
				depth--
			}
		case (ch == ' ' || ch == '\t') && depth == 0:
			flush(false)
			continue
		}
		cur.WriteByte(ch)
		started = true
	}

	if inQuote || inString {
		return nil, errors.NewSimple(errors.ClassArgument, "unterminated quote")
	}
	flush(false)
	if len(tokens) == 0 {
		return nil, errors.New("ARG-0003", map[string]any{"Op": "shell", "Name": "method"})
	}
	return tokens, nil
}
