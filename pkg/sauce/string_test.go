package sauce

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	serrors "github.com/sambeau/sauce/pkg/sauce/errors"
)

func TestNewString(t *testing.T) {
	s, err := NewString("abc")
	if err != nil || s.String() != "abc" {
		t.Fatalf("NewString(abc) = %v, %v", s, err)
	}

	cp, err := NewString(s)
	if err != nil || cp.String() != "abc" {
		t.Fatalf("NewString(*String) = %v, %v", cp, err)
	}
	cp.AppendInPlace("d")
	if s.String() != "abc" {
		t.Error("copy shares its buffer with the source")
	}

	for _, bad := range []any{nil, 1, []byte("abc"), V("a")} {
		if _, err := NewString(bad); !errors.Is(err, serrors.ErrInvalidArgument) {
			t.Errorf("NewString(%v) error = %v, want InvalidArgument", bad, err)
		}
	}
}

func TestS(t *testing.T) {
	if got := S().String(); got != "" {
		t.Errorf("S() = %q, want empty", got)
	}
	if got := S("a", "b", "c").String(); got != "abc" {
		t.Errorf("S(a, b, c) = %q, want abc", got)
	}
}

func TestString_Length(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"héllo", 6},
	}
	for _, tt := range tests {
		if got := S(tt.in).Length(); got != tt.want {
			t.Errorf("S(%q).Length() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestString_StartsEndsWith(t *testing.T) {
	s := S("Lorem ipsum")

	tests := []struct {
		name   string
		call   func(any) (bool, error)
		needle any
		want   bool
	}{
		{"starts with Lorem", s.StartsWith, "Lorem", true},
		{"starts with ipsum", s.StartsWith, "ipsum", false},
		{"starts with empty", s.StartsWith, "", true},
		{"starts with longer", s.StartsWith, "Lorem ipsum dolor", false},
		{"starts with String", s.StartsWith, S("Lor"), true},
		{"ends with ipsum", s.EndsWith, "ipsum", true},
		{"ends with Lorem", s.EndsWith, "Lorem", false},
		{"ends with empty", s.EndsWith, "", true},
		{"ends with longer", s.EndsWith, "xLorem ipsum", false},
		{"includes em ip", s.Includes, "em ip", true},
		{"includes case differs", s.Includes, "LOREM", false},
		{"equals same", s.Equals, "Lorem ipsum", true},
		{"equals String", s.Equals, S("Lorem ipsum"), true},
		{"equals different", s.Equals, "lorem ipsum", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.call(tt.needle)
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestString_TextContracts(t *testing.T) {
	s := S("abc")

	tests := []struct {
		name string
		op   string
		call func() error
	}{
		{"starts_with(0)", "String.StartsWith", func() error { _, err := s.StartsWith(0); return err }},
		{"ends_with(nil)", "String.EndsWith", func() error { _, err := s.EndsWith(nil); return err }},
		{"includes(1.5)", "String.Includes", func() error { _, err := s.Includes(1.5); return err }},
		{"equals(V)", "String.Equals", func() error { _, err := s.Equals(V("abc")); return err }},
		{"replace search", "String.Replace", func() error { _, err := s.Replace(1, "x"); return err }},
		{"replace replacement", "String.Replace", func() error { _, err := s.Replace("a", 1); return err }},
		{"append", "String.Append", func() error { _, err := s.Append(true); return err }},
		{"prepend in place", "String.PrependInPlace", func() error { _, err := s.PrependInPlace(3); return err }},
		{"trim", "String.Trim", func() error { _, err := s.Trim(9); return err }},
		{"split", "String.Split", func() error { _, err := s.Split(0); return err }},
		{"split empty", "String.Split", func() error { _, err := s.Split(""); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, serrors.ErrInvalidArgument) {
				t.Fatalf("error = %v, want InvalidArgument", err)
			}
			if !strings.Contains(err.Error(), tt.op) {
				t.Errorf("error %q does not name %s", err, tt.op)
			}
		})
	}

	if s.String() != "abc" {
		t.Errorf("failed calls changed the receiver to %q", s)
	}
}

func TestString_StartsWithRendersValue(t *testing.T) {
	_, err := S("abc").StartsWith(0)
	var se *serrors.SauceError
	if !errors.As(err, &se) {
		t.Fatalf("error type = %T, want *SauceError", err)
	}
	want := "String.StartsWith: needle does not comply with argument contract IsText: 0"
	if se.Message != want {
		t.Errorf("Message = %q, want %q", se.Message, want)
	}
}

func TestString_Replace(t *testing.T) {
	s := S("Hello hello HELLO")

	r, err := s.Replace("hello", "bye")
	if err != nil {
		t.Fatal(err)
	}
	if r.String() != "Hello bye HELLO" {
		t.Errorf("Replace = %q", r)
	}

	ir, err := s.IReplace("hello", "bye")
	if err != nil {
		t.Fatal(err)
	}
	if ir.String() != "bye bye bye" {
		t.Errorf("IReplace = %q", ir)
	}

	special, _ := S("a.b.c").IReplace(".", "$1")
	if special.String() != "a$1b$1c" {
		t.Errorf("IReplace with metacharacters = %q", special)
	}

	same, _ := s.Replace("", "x")
	if same.String() != s.String() {
		t.Errorf("Replace with empty search = %q", same)
	}

	if s.String() != "Hello hello HELLO" {
		t.Errorf("Replace changed the receiver to %q", s)
	}

	got, _ := s.ReplaceInPlace("HELLO", "world")
	if got != s || s.String() != "Hello hello world" {
		t.Errorf("ReplaceInPlace = %q (same receiver: %v)", s, got == s)
	}

	got, _ = s.IReplaceInPlace("HELLO", "hi")
	if got != s || s.String() != "hi hi world" {
		t.Errorf("IReplaceInPlace = %q", s)
	}
}

func TestString_Slice(t *testing.T) {
	s := S("abcdef")

	tests := []struct {
		start, length int
		want          string
	}{
		{0, 3, "abc"},
		{2, 2, "cd"},
		{0, 10, "abcdef"},
		{-2, 2, "ef"},
		{-3, 1, "d"},
		{-10, 2, "ab"},
		{1, -1, "bcde"},
		{4, -3, ""},
		{6, 1, ""},
		{9, 1, ""},
	}

	for _, tt := range tests {
		if got := s.Slice(tt.start, tt.length).String(); got != tt.want {
			t.Errorf("Slice(%d, %d) = %q, want %q", tt.start, tt.length, got, tt.want)
		}
	}

	if s.String() != "abcdef" {
		t.Errorf("Slice changed the receiver to %q", s)
	}

	eq, _ := S("abc").Slice(0, 10).Equals("abc")
	if !eq {
		t.Error(`String("abc").Slice(0, 10) does not equal "abc"`)
	}

	if got := s.SliceInPlace(1, 3); got != s || s.String() != "bcd" {
		t.Errorf("SliceInPlace = %q", s)
	}
}

func TestString_AppendPrepend(t *testing.T) {
	s := S("mid")

	a, _ := s.Append("-end")
	p, _ := s.Prepend(S("start-"))
	if a.String() != "mid-end" || p.String() != "start-mid" {
		t.Errorf("Append/Prepend = %q, %q", a, p)
	}
	if s.String() != "mid" {
		t.Errorf("receiver changed to %q", s)
	}

	got, _ := s.AppendInPlace("!")
	if got != s {
		t.Error("AppendInPlace did not return the receiver")
	}
	s.PrependInPlace("¡")
	if s.String() != "¡mid!" {
		t.Errorf("in-place result = %q", s)
	}
}

func TestString_Trim(t *testing.T) {
	tests := []struct {
		in    string
		chars []any
		want  string
	}{
		{"  padded \t\n", nil, "padded"},
		{"\x00\x0Bnul\x00", nil, "nul"},
		{"xxhixx", []any{"x"}, "hi"},
		{"-=hi=-", []any{S("=-")}, "hi"},
		{"  keep  ", []any{"x"}, "  keep  "},
	}

	for _, tt := range tests {
		got, err := S(tt.in).Trim(tt.chars...)
		if err != nil {
			t.Fatal(err)
		}
		if got.String() != tt.want {
			t.Errorf("Trim(%q, %v) = %q, want %q", tt.in, tt.chars, got, tt.want)
		}
	}

	s := S(" x ")
	if got, _ := s.TrimInPlace(); got != s || s.String() != "x" {
		t.Errorf("TrimInPlace = %q", s)
	}
}

func TestString_Split(t *testing.T) {
	parts, err := S("1,2,3").Split(",")
	if err != nil {
		t.Fatal(err)
	}
	if got := parts.ToSlice(); !reflect.DeepEqual(got, []any{"1", "2", "3"}) {
		t.Errorf("Split(,) = %v", got)
	}

	parts, _ = S("a,,b,").Split(S(","))
	if got := parts.ToSlice(); !reflect.DeepEqual(got, []any{"a", "", "b", ""}) {
		t.Errorf("Split keeps empty pieces: %v", got)
	}

	if got := S("one two").Fields().ToSlice(); !reflect.DeepEqual(got, []any{"one", "two"}) {
		t.Errorf("Fields() = %v", got)
	}
}

func TestString_ToLines(t *testing.T) {
	tests := []struct {
		in   string
		want []any
	}{
		{"", []any{}},
		{"one", []any{"one"}},
		{"one\ntwo", []any{"one", "two"}},
		{"one\r\ntwo\rthree\n", []any{"one", "two", "three"}},
		{"one\n\n", []any{"one", ""}},
		{"\n", []any{""}},
	}

	for _, tt := range tests {
		if got := S(tt.in).ToLines().ToSlice(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ToLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
