package mirror

import "reflect"

// ParamInfo describes one declared parameter of a resolved method.
type ParamInfo struct {
	Index    int
	Type     reflect.Type
	Variadic bool // true for the final parameter of a variadic method
}

// MethodInfo describes an exported method resolved by name.
type MethodInfo struct {
	Name      string
	Declaring reflect.Type // nearest type in the chain declaring the method
	Params    []ParamInfo
	Results   []reflect.Type
	Variadic  bool
}

// methodBinding is the internal resolution of a method against one chain
// entry.
type methodBinding struct {
	entry  chainEntry
	method reflect.Method
	offset int // index of the first real parameter in method.Type
}

// methodCandidates collects every chain entry whose method set exposes the
// named method, outermost first. Same-named methods shadowed by Go's
// promotion rules reappear here on their declaring entries, which is what
// overload resolution selects among. When promotion drops a name as
// ambiguous, the outer entries simply contribute no candidate and the search
// proceeds to the embedded declarations.
func methodCandidates(t reflect.Type, name string) []methodBinding {
	var cands []methodBinding
	for _, entry := range typeChain(t) {
		rt := receiverType(entry.typ)
		m, ok := rt.MethodByName(name)
		if !ok {
			continue
		}
		cands = append(cands, methodBinding{
			entry:  entry,
			method: m,
			offset: methodParamOffset(rt),
		})
	}
	return cands
}

// paramTypes returns the declared parameter types of a binding, receiver
// excluded.
func (b methodBinding) paramTypes() []reflect.Type {
	mt := b.method.Type
	params := make([]reflect.Type, 0, mt.NumIn()-b.offset)
	for i := b.offset; i < mt.NumIn(); i++ {
		params = append(params, mt.In(i))
	}
	return params
}

// resultTypes returns the declared result types of a binding.
func (b methodBinding) resultTypes() []reflect.Type {
	mt := b.method.Type
	results := make([]reflect.Type, 0, mt.NumOut())
	for i := 0; i < mt.NumOut(); i++ {
		results = append(results, mt.Out(i))
	}
	return results
}

// matchParams reports whether a binding's declared parameters are assignable
// from the given argument types, in order. A nil argument type matches any
// parameter that can hold nil. Variadic methods accept zero or more trailing
// arguments assignable to the element type.
func matchParams(b methodBinding, types []reflect.Type) bool {
	params := b.paramTypes()
	if b.method.Type.IsVariadic() {
		fixed := len(params) - 1
		if len(types) < fixed {
			return false
		}
		for i := 0; i < fixed; i++ {
			if !typeMatches(types[i], params[i]) {
				return false
			}
		}
		elem := params[fixed].Elem()
		for i := fixed; i < len(types); i++ {
			if !typeMatches(types[i], elem) {
				return false
			}
		}
		return true
	}

	if len(types) != len(params) {
		return false
	}
	for i, at := range types {
		if !typeMatches(at, params[i]) {
			return false
		}
	}
	return true
}

// typeMatches reports whether an argument of type at can be passed to a
// parameter of type pt. A nil at stands for an untyped nil argument.
func typeMatches(at, pt reflect.Type) bool {
	if at == nil {
		switch pt.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
			reflect.Func, reflect.Interface:
			return true
		default:
			return false
		}
	}
	return at.AssignableTo(pt)
}

// Call resolves the named method on the target instance by inferring
// parameter types from the runtime types of args, invokes it, and returns
// its results. Any nil argument fails: its type cannot be inferred, so use
// CallWithTypes instead.
func Call(target any, name string, args ...any) ([]any, error) {
	types := make([]reflect.Type, len(args))
	for i, a := range args {
		if a == nil {
			return nil, Errorf(CodeInvalidArgument,
				"argument %d is nil and its type cannot be inferred; use CallWithTypes", i)
		}
		types[i] = reflect.TypeOf(a)
	}
	return call(target, name, types, args)
}

// CallWithTypes resolves the named method using explicit parameter types,
// invokes it with args, and returns its results. Methods whose declared
// parameters are assignable from paramTypes are matched in chain and
// declaration order, first match wins. A nil entry in paramTypes matches any
// parameter that can hold nil.
func CallWithTypes(target any, name string, paramTypes []reflect.Type, args ...any) ([]any, error) {
	if len(paramTypes) != len(args) {
		return nil, Errorf(CodeInvalidArgument,
			"got %d parameter types for %d arguments", len(paramTypes), len(args))
	}
	return call(target, name, paramTypes, args)
}

func call(target any, name string, types []reflect.Type, args []any) ([]any, error) {
	v, argErr := instanceValue(target)
	if argErr != nil {
		return nil, argErr
	}
	if name == "" {
		return nil, NewError(CodeInvalidArgument, "method name is required")
	}

	cands := methodCandidates(v.Type(), name)
	var bindErr error
	for _, b := range cands {
		if !matchParams(b, types) {
			continue
		}
		m, err := boundAccessor(v, b.entry, name)
		if err != nil {
			// Keep looking: a deeper declaration may still be reachable.
			if bindErr == nil {
				bindErr = err
			}
			continue
		}
		return invoke(m, name, args)
	}

	if bindErr != nil {
		return nil, bindErr
	}
	if len(cands) > 0 {
		return nil, Errorf(CodeMemberNotFound,
			"no overload of %q on %s matches the given parameter types", name, v.Type())
	}
	return nil, Errorf(CodeMemberNotFound, "method %q not found on %s", name, v.Type())
}

// invoke calls a bound method value with coerced arguments and collects its
// results.
func invoke(m reflect.Value, name string, args []any) ([]any, error) {
	mt := m.Type()
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := paramAt(mt, i)
		av, err := coerce(pt, a, "argument of "+name)
		if err != nil {
			return nil, err
		}
		in[i] = av
	}

	out := m.Call(in)
	results := make([]any, len(out))
	for i, r := range out {
		results[i] = r.Interface()
	}
	return results, nil
}

// paramAt returns the declared type of argument i for a bound method value,
// unwrapping the variadic slice for trailing arguments.
func paramAt(mt reflect.Type, i int) reflect.Type {
	if mt.IsVariadic() && i >= mt.NumIn()-1 {
		return mt.In(mt.NumIn() - 1).Elem()
	}
	return mt.In(i)
}

// MethodParameters returns the parameter descriptors of the named method
// without invoking it. The target may be an instance or a reflect.Type. The
// outermost visible declaration is described, matching what a direct call on
// the target would dispatch to.
func MethodParameters(target any, name string) ([]ParamInfo, error) {
	t := targetType(target)
	if t == nil {
		return nil, NewError(CodeInvalidArgument, "target is required")
	}
	if name == "" {
		return nil, NewError(CodeInvalidArgument, "method name is required")
	}
	cands := methodCandidates(t, name)
	if len(cands) == 0 {
		return nil, Errorf(CodeMemberNotFound, "method %q not found on %s", name, t)
	}
	return paramInfos(cands[0]), nil
}

func paramInfos(b methodBinding) []ParamInfo {
	params := b.paramTypes()
	variadic := b.method.Type.IsVariadic()
	infos := make([]ParamInfo, len(params))
	for i, pt := range params {
		infos[i] = ParamInfo{
			Index:    i,
			Type:     pt,
			Variadic: variadic && i == len(params)-1,
		}
	}
	return infos
}

// LookupMethod resolves a method by name on t. Declaring is attributed to
// the deepest chain entry on the promotion path exposing the same signature,
// so a method promoted from an embedded type reports the embedded type, not
// the outer one.
func LookupMethod(t reflect.Type, name string) (MethodInfo, bool) {
	if t == nil || name == "" {
		return MethodInfo{}, false
	}
	cands := methodCandidates(t, name)
	if len(cands) == 0 {
		return MethodInfo{}, false
	}

	first := cands[0]
	sig := strippedSignature(first)
	declaring := first.entry
	for _, c := range cands[1:] {
		if !indexPrefix(first.entry.index, c.entry.index) {
			continue
		}
		if strippedSignature(c) == sig {
			declaring = c.entry
		}
	}

	return MethodInfo{
		Name:      name,
		Declaring: declaring.typ,
		Params:    paramInfos(first),
		Results:   first.resultTypes(),
		Variadic:  first.method.Type.IsVariadic(),
	}, true
}

// strippedSignature canonicalizes a binding's signature with the receiver
// removed, so promoted and declared forms of the same method compare equal.
func strippedSignature(b methodBinding) reflect.Type {
	return reflect.FuncOf(b.paramTypes(), b.resultTypes(), b.method.Type.IsVariadic())
}

// indexPrefix reports whether a is a prefix of b, meaning b's entry is
// embedded somewhere below a's.
func indexPrefix(a, b []int) bool {
	if len(a) > len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
