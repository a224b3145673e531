package sauce

import (
	"errors"
	"reflect"
	"testing"

	serrors "github.com/sambeau/sauce/pkg/sauce/errors"
)

func TestImmutableObject_Reads(t *testing.T) {
	src := NewObject(map[string]any{"A": 1, "b": 2})
	im := NewImmutableObject(src)

	if im.Get("a") != 1 || !im.HasKey("B") || !im.Contains("b") || im.Count() != 2 || im.IsEmpty() {
		t.Errorf("reads do not forward: %v", im.ToMap())
	}
	if v, ok := im.Lookup("b"); !ok || v != 2 {
		t.Errorf("Lookup(b) = %v, %v", v, ok)
	}
	if got := im.Keys(nil).ToSlice(); !reflect.DeepEqual(got, []any{"a", "b"}) {
		t.Errorf("Keys = %v", got)
	}
	if got := im.Values(nil).ToSlice(); !reflect.DeepEqual(got, []any{1, 2}) {
		t.Errorf("Values = %v", got)
	}

	src.Set("c", 3)
	if im.HasKey("c") {
		t.Error("ImmutableObject aliases its source")
	}

	sel := im.SelectKeys("a")
	sel.Set("z", 1)
	if im.HasKey("z") {
		t.Error("Select result aliases the immutable object")
	}
}

func TestImmutableObject_DeniesWrites(t *testing.T) {
	im := NewImmutableObject(map[string]any{"a": 1})

	tests := []struct {
		name string
		call func() error
	}{
		{"set", func() error { return im.Set("a", 2) }},
		{"set new key", func() error { return im.Set("b", 2) }},
		{"unset", func() error { return im.Unset("a") }},
		{"merge in place", func() error { return im.MergeInPlace(map[string]any{"a": 3}) }},
		{"define", func() error { return im.Define("m", MethodEntry{Arity: "0"}) }},
		{"invoke set", func() error { _, err := Invoke(im, "set", "a", 2); return err }},
		{"invoke unset", func() error { _, err := Invoke(im, "unset", "a"); return err }},
		{"invoke mergeInPlace", func() error { _, err := Invoke(im, "mergeInPlace", map[string]any{"a": 4}); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, serrors.ErrIllegalMutation) {
				t.Errorf("error = %v, want IllegalMutation", err)
			}
		})
	}

	if got := im.ToMap(); !reflect.DeepEqual(got, map[string]any{"a": 1}) {
		t.Errorf("entries changed to %v", got)
	}
}

func TestImmutableObject_KeepsMethods(t *testing.T) {
	src := NewObject(map[string]any{"name": "bob"})
	src.Define("greet", MethodEntry{
		Arity: "0",
		Fn: func(receiver any, args []any) (any, error) {
			return "hi " + receiver.(*ImmutableObject).Get("name").(string), nil
		},
	})

	im := NewImmutableObject(src)
	got, err := im.Call("greet")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hi bob" {
		t.Errorf("Call(greet) = %v", got)
	}
}

func TestAwareObject_RecordsWrites(t *testing.T) {
	aw := NewAwareObject(map[string]any{"a": 1, "b": 2})

	if aw.Changed().Count() != 0 {
		t.Errorf("construction recorded %v", aw.Changed().ToSlice())
	}

	aw.Set("B", 20)
	aw.Set("c", 3)
	aw.Set("b", 21)
	aw.Unset("a")
	aw.Unset("missing")

	want := []any{"b", "c", "a", "missing"}
	if got := aw.Changed().ToSlice(); !reflect.DeepEqual(got, want) {
		t.Errorf("Changed() = %v, want %v", got, want)
	}
	if got := aw.ToMap(); !reflect.DeepEqual(got, map[string]any{"b": 21, "c": 3}) {
		t.Errorf("entries = %v", got)
	}
}

func TestAwareObject_ChangedIsCopy(t *testing.T) {
	aw := NewAwareObject(nil)
	aw.Set("x", 1)

	changed := aw.Changed()
	changed.Push("y")
	if aw.Changed().Count() != 1 {
		t.Error("Changed() exposes the internal record")
	}

	aw.ResetChanges()
	if !aw.Changed().IsEmpty() {
		t.Error("ResetChanges() did not clear the record")
	}
	if aw.Get("x") != 1 {
		t.Error("ResetChanges() touched the entries")
	}
}

func TestAwareObject_MergeInPlace(t *testing.T) {
	aw := NewAwareObject(map[string]any{"a": 1})
	got := aw.MergeInPlace(map[string]any{"A": 10, "b": 2}, "tail")
	if got != aw {
		t.Error("MergeInPlace did not return the receiver")
	}

	if want := []any{"a", "b", "0"}; !reflect.DeepEqual(aw.Changed().ToSlice(), want) {
		t.Errorf("Changed() = %v, want %v", aw.Changed().ToSlice(), want)
	}
	if aw.Get("a") != 10 || aw.Get(0) != "tail" {
		t.Errorf("entries = %v", aw.ToMap())
	}
}

func TestAwareObject_InvokeRecords(t *testing.T) {
	aw := NewAwareObject(nil)
	aw.Define("touch", MethodEntry{
		Arity: "1",
		Fn: func(receiver any, args []any) (any, error) {
			return Invoke(receiver, "set", args[0], true)
		},
	})

	if _, err := Invoke(aw, "touch", "Flag"); err != nil {
		t.Fatal(err)
	}
	changed, err := Invoke(aw, "changed")
	if err != nil {
		t.Fatal(err)
	}
	if got := changed.(*Vector).ToSlice(); !reflect.DeepEqual(got, []any{"flag"}) {
		t.Errorf("changed = %v, want [flag]", got)
	}
}
