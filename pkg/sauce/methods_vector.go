package sauce

// VectorMethodRegistry defines all methods available on Vector values
// through Invoke.
var VectorMethodRegistry MethodRegistry

func init() {
	VectorMethodRegistry = MethodRegistry{
		"count": {
			Fn:          vectorCount,
			Arity:       "0",
			Description: "Number of elements",
		},
		"isEmpty": {
			Fn:          vectorIsEmpty,
			Arity:       "0",
			Description: "True when there are no elements",
		},
		"get": {
			Fn:          vectorGet,
			Arity:       "1",
			Description: "Element at index",
		},
		"set": {
			Fn:          vectorSet,
			Arity:       "2",
			Description: "Store value at index (index == count appends)",
			Mutates:     true,
		},
		"remove": {
			Fn:          vectorRemove,
			Arity:       "1",
			Description: "Remove and return the element at index",
			Mutates:     true,
		},
		"exists": {
			Fn:          vectorExists,
			Arity:       "1",
			Description: "True when index addresses an element",
		},
		"slice": {
			Fn:          vectorSlice,
			Arity:       "2",
			Description: "Elements from start, end-start long",
		},
		"join": {
			Fn:          vectorJoin,
			Arity:       "0-1",
			Description: "Join elements as text (delimiter?)",
		},
		"map": {
			Fn:          vectorMap,
			Arity:       "1",
			Description: "Apply fn, dropping null results",
		},
		"select": {
			Fn:          vectorSelect,
			Arity:       "1",
			Description: "Keep elements fn accepts",
		},
		"exclude": {
			Fn:          vectorExclude,
			Arity:       "1",
			Description: "Drop elements fn accepts",
		},
		"push": {
			Fn:          vectorPush,
			Arity:       "1+",
			Description: "Append values, flattening sequences",
			Mutates:     true,
		},
		"pop": {
			Fn:          vectorPop,
			Arity:       "0",
			Description: "Remove and return the last element",
			Mutates:     true,
		},
		"shift": {
			Fn:          vectorShift,
			Arity:       "0",
			Description: "Remove and return the first element",
			Mutates:     true,
		},
		"unshift": {
			Fn:          vectorUnshift,
			Arity:       "1",
			Description: "Insert values at the front",
			Mutates:     true,
		},
		"prepend": {
			Fn:          vectorUnshift,
			Arity:       "1",
			Description: "Insert values at the front",
			Mutates:     true,
		},
		"includes": {
			Fn:          vectorIncludes,
			Arity:       "1",
			Description: "True when an identical element exists",
		},
		"toArray": {
			Fn:          vectorToArray,
			Arity:       "0",
			Description: "Copy of the elements as a native slice",
		},
		"current": {
			Fn:          vectorCurrent,
			Arity:       "0",
			Description: "Element under the cursor",
		},
		"key": {
			Fn:          vectorKey,
			Arity:       "0",
			Description: "Cursor position",
		},
		"next": {
			Fn:          vectorNext,
			Arity:       "0",
			Description: "Advance the cursor",
		},
		"rewind": {
			Fn:          vectorRewind,
			Arity:       "0",
			Description: "Reset the cursor",
		},
		"valid": {
			Fn:          vectorValid,
			Arity:       "0",
			Description: "True when the cursor addresses an element",
		},
	}
	RegisterMethodRegistry("vector", VectorMethodRegistry)
}

func vectorCount(receiver any, args []any) (any, error) {
	return receiver.(*Vector).Count(), nil
}

func vectorIsEmpty(receiver any, args []any) (any, error) {
	return receiver.(*Vector).IsEmpty(), nil
}

func vectorGet(receiver any, args []any) (any, error) {
	i, err := indexArg("Vector.Get", args[0])
	if err != nil {
		return nil, err
	}
	return receiver.(*Vector).Get(i)
}

func vectorSet(receiver any, args []any) (any, error) {
	i, err := indexArg("Vector.Set", args[0])
	if err != nil {
		return nil, err
	}
	return nil, receiver.(*Vector).Set(i, args[1])
}

func vectorRemove(receiver any, args []any) (any, error) {
	i, err := indexArg("Vector.Remove", args[0])
	if err != nil {
		return nil, err
	}
	return receiver.(*Vector).Remove(i)
}

func vectorExists(receiver any, args []any) (any, error) {
	i, ok := toIndex(args[0])
	return ok && receiver.(*Vector).Exists(i), nil
}

func vectorSlice(receiver any, args []any) (any, error) {
	start, err := indexArg("Vector.Slice", args[0])
	if err != nil {
		return nil, err
	}
	end, err := indexArg("Vector.Slice", args[1])
	if err != nil {
		return nil, err
	}
	return receiver.(*Vector).Slice(start, end), nil
}

func vectorJoin(receiver any, args []any) (any, error) {
	if len(args) == 0 {
		return receiver.(*Vector).JoinDefault(), nil
	}
	return receiver.(*Vector).Join(args[0])
}

func vectorMap(receiver any, args []any) (any, error) {
	fn, err := mapperArg("Vector.Map", args[0])
	if err != nil {
		return nil, err
	}
	return receiver.(*Vector).Map(fn)
}

func vectorSelect(receiver any, args []any) (any, error) {
	fn, err := predicateArg("Vector.Select", args[0])
	if err != nil {
		return nil, err
	}
	return receiver.(*Vector).Select(fn)
}

func vectorExclude(receiver any, args []any) (any, error) {
	fn, err := predicateArg("Vector.Exclude", args[0])
	if err != nil {
		return nil, err
	}
	return receiver.(*Vector).Exclude(fn)
}

func vectorPush(receiver any, args []any) (any, error) {
	v := receiver.(*Vector)
	for _, arg := range args {
		v.Push(arg)
	}
	return nil, nil
}

func vectorPop(receiver any, args []any) (any, error) {
	return receiver.(*Vector).Pop(), nil
}

func vectorShift(receiver any, args []any) (any, error) {
	return receiver.(*Vector).Shift(), nil
}

func vectorUnshift(receiver any, args []any) (any, error) {
	receiver.(*Vector).Unshift(args[0])
	return nil, nil
}

func vectorIncludes(receiver any, args []any) (any, error) {
	return receiver.(*Vector).Includes(args[0]), nil
}

func vectorToArray(receiver any, args []any) (any, error) {
	return receiver.(*Vector).ToSlice(), nil
}

func vectorCurrent(receiver any, args []any) (any, error) {
	return receiver.(*Vector).Current(), nil
}

func vectorKey(receiver any, args []any) (any, error) {
	return receiver.(*Vector).Key(), nil
}

func vectorNext(receiver any, args []any) (any, error) {
	receiver.(*Vector).Next()
	return nil, nil
}

func vectorRewind(receiver any, args []any) (any, error) {
	receiver.(*Vector).Rewind()
	return nil, nil
}

func vectorValid(receiver any, args []any) (any, error) {
	return receiver.(*Vector).Valid(), nil
}
