package sauce

import serrors "github.com/sambeau/sauce/pkg/sauce/errors"

// StringMethodRegistry defines all methods available on String values
// through Invoke.
var StringMethodRegistry MethodRegistry

func init() {
	StringMethodRegistry = MethodRegistry{
		"length": {
			Fn:          stringLength,
			Arity:       "0",
			Description: "Length in bytes",
		},
		"startsWith": {
			Fn:          stringStartsWith,
			Arity:       "1",
			Description: "True when the text begins with needle",
		},
		"endsWith": {
			Fn:          stringEndsWith,
			Arity:       "1",
			Description: "True when the text ends with needle",
		},
		"includes": {
			Fn:          stringIncludes,
			Arity:       "1",
			Description: "True when needle occurs in the text",
		},
		"equals": {
			Fn:          stringEquals,
			Arity:       "1",
			Description: "True when other holds the same text",
		},
		"replace": {
			Fn:          stringReplace,
			Arity:       "2",
			Description: "Copy with search replaced",
		},
		"ireplace": {
			Fn:          stringIReplace,
			Arity:       "2",
			Description: "Copy with search replaced, ignoring case",
		},
		"replaceInPlace": {
			Fn:          stringReplaceInPlace,
			Arity:       "2",
			Description: "Replace search in this string",
			Mutates:     true,
		},
		"ireplaceInPlace": {
			Fn:          stringIReplaceInPlace,
			Arity:       "2",
			Description: "Replace search in this string, ignoring case",
			Mutates:     true,
		},
		"slice": {
			Fn:          stringSlice,
			Arity:       "1-2",
			Description: "Copy of length bytes from start (length?)",
		},
		"sliceInPlace": {
			Fn:          stringSliceInPlace,
			Arity:       "1-2",
			Description: "Keep length bytes from start (length?)",
			Mutates:     true,
		},
		"append": {
			Fn:          stringAppend,
			Arity:       "1",
			Description: "Copy with text added at the end",
		},
		"appendInPlace": {
			Fn:          stringAppendInPlace,
			Arity:       "1",
			Description: "Add text at the end",
			Mutates:     true,
		},
		"prepend": {
			Fn:          stringPrepend,
			Arity:       "1",
			Description: "Copy with text added at the front",
		},
		"prependInPlace": {
			Fn:          stringPrependInPlace,
			Arity:       "1",
			Description: "Add text at the front",
			Mutates:     true,
		},
		"trim": {
			Fn:          stringTrim,
			Arity:       "0-1",
			Description: "Copy with characters stripped from both ends (chars?)",
		},
		"trimInPlace": {
			Fn:          stringTrimInPlace,
			Arity:       "0-1",
			Description: "Strip characters from both ends (chars?)",
			Mutates:     true,
		},
		"split": {
			Fn:          stringSplit,
			Arity:       "0-1",
			Description: "Pieces between delimiters (delimiter?)",
		},
		"toLines": {
			Fn:          stringToLines,
			Arity:       "0",
			Description: "Lines of the text",
		},
		"toString": {
			Fn:          stringToString,
			Arity:       "0",
			Description: "Raw text",
		},
	}
	RegisterMethodRegistry("string", StringMethodRegistry)
}

func stringLength(receiver any, args []any) (any, error) {
	return receiver.(*String).Length(), nil
}

func stringStartsWith(receiver any, args []any) (any, error) {
	return receiver.(*String).StartsWith(args[0])
}

func stringEndsWith(receiver any, args []any) (any, error) {
	return receiver.(*String).EndsWith(args[0])
}

func stringIncludes(receiver any, args []any) (any, error) {
	return receiver.(*String).Includes(args[0])
}

func stringEquals(receiver any, args []any) (any, error) {
	return receiver.(*String).Equals(args[0])
}

func stringReplace(receiver any, args []any) (any, error) {
	return receiver.(*String).Replace(args[0], args[1])
}

func stringIReplace(receiver any, args []any) (any, error) {
	return receiver.(*String).IReplace(args[0], args[1])
}

func stringReplaceInPlace(receiver any, args []any) (any, error) {
	return receiver.(*String).ReplaceInPlace(args[0], args[1])
}

func stringIReplaceInPlace(receiver any, args []any) (any, error) {
	return receiver.(*String).IReplaceInPlace(args[0], args[1])
}

// sliceBounds reads the (start, length?) arguments of slice.
func sliceBounds(op string, s *String, args []any) (int, int, error) {
	start, ok := toIndex(args[0])
	if !ok {
		return 0, 0, serrors.NewInvalidArgument(op, "start", IsNumeric.Name, Render(args[0]))
	}
	length := s.Length()
	if len(args) == 2 {
		length, ok = toIndex(args[1])
		if !ok {
			return 0, 0, serrors.NewInvalidArgument(op, "length", IsNumeric.Name, Render(args[1]))
		}
	}
	return start, length, nil
}

func stringSlice(receiver any, args []any) (any, error) {
	s := receiver.(*String)
	start, length, err := sliceBounds("String.Slice", s, args)
	if err != nil {
		return nil, err
	}
	return s.Slice(start, length), nil
}

func stringSliceInPlace(receiver any, args []any) (any, error) {
	s := receiver.(*String)
	start, length, err := sliceBounds("String.SliceInPlace", s, args)
	if err != nil {
		return nil, err
	}
	return s.SliceInPlace(start, length), nil
}

func stringAppend(receiver any, args []any) (any, error) {
	return receiver.(*String).Append(args[0])
}

func stringAppendInPlace(receiver any, args []any) (any, error) {
	return receiver.(*String).AppendInPlace(args[0])
}

func stringPrepend(receiver any, args []any) (any, error) {
	return receiver.(*String).Prepend(args[0])
}

func stringPrependInPlace(receiver any, args []any) (any, error) {
	return receiver.(*String).PrependInPlace(args[0])
}

func stringTrim(receiver any, args []any) (any, error) {
	return receiver.(*String).Trim(args...)
}

func stringTrimInPlace(receiver any, args []any) (any, error) {
	return receiver.(*String).TrimInPlace(args...)
}

func stringSplit(receiver any, args []any) (any, error) {
	if len(args) == 0 {
		return receiver.(*String).Fields(), nil
	}
	return receiver.(*String).Split(args[0])
}

func stringToLines(receiver any, args []any) (any, error) {
	return receiver.(*String).ToLines(), nil
}

func stringToString(receiver any, args []any) (any, error) {
	return receiver.(*String).String(), nil
}
