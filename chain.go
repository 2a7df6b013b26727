package mirror

import "reflect"

// chainEntry identifies one type in a struct's embedding chain.
type chainEntry struct {
	typ   reflect.Type // type at this hop, pointers dereferenced
	index []int        // field index path from the root struct
	depth int          // 0 is the root type itself
}

// typeChain enumerates t's embedding chain in promotion order: breadth-first,
// declaration order within each depth, so the entry that declares a member
// first is the one Go's own promotion would pick. The walk descends only into
// exported embedded fields, and only struct entries are expanded; embedded
// named non-struct types still appear as leaf entries because their method
// sets promote.
func typeChain(t reflect.Type) []chainEntry {
	t = derefType(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	var (
		chain   []chainEntry
		queue   = []chainEntry{{typ: t}}
		visited = map[reflect.Type]bool{t: true}
	)
	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]
		chain = append(chain, entry)

		if entry.typ.Kind() != reflect.Struct {
			continue
		}
		for i := 0; i < entry.typ.NumField(); i++ {
			f := entry.typ.Field(i)
			if !f.Anonymous || !f.IsExported() {
				continue
			}
			ft := derefType(f.Type)
			if ft == nil || visited[ft] {
				continue
			}
			visited[ft] = true

			index := make([]int, len(entry.index)+1)
			copy(index, entry.index)
			index[len(entry.index)] = i
			queue = append(queue, chainEntry{
				typ:   ft,
				index: index,
				depth: entry.depth + 1,
			})
		}
	}
	return chain
}

// derefType unwraps pointer types down to their element type.
func derefType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// targetType normalizes a target (an instance or a reflect.Type) to its type.
// A nil target yields nil.
func targetType(target any) reflect.Type {
	if target == nil {
		return nil
	}
	if t, ok := target.(reflect.Type); ok {
		return t
	}
	return reflect.TypeOf(target)
}

// instanceValue normalizes a target to a reflect.Value, rejecting targets
// that cannot carry member values.
func instanceValue(target any) (reflect.Value, *Error) {
	if target == nil {
		return reflect.Value{}, NewError(CodeInvalidArgument, "target is required")
	}
	if _, ok := target.(reflect.Type); ok {
		return reflect.Value{}, NewError(CodeInvalidArgument, "an instance is required, not a reflect.Type")
	}
	v := reflect.ValueOf(target)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return reflect.Value{}, NewError(CodeInvalidArgument, "target is a nil pointer")
	}
	return v, nil
}

// walkIndex follows a field index path from v, dereferencing pointers along
// the way. A nil pointer hop fails: the member is declared but unreachable on
// this instance.
func walkIndex(v reflect.Value, index []int) (reflect.Value, *Error) {
	for _, i := range index {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, Errorf(CodeInvalidArgument,
					"nil embedded pointer to %s on the path to the member", v.Type().Elem())
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	return v, nil
}

// methodOn returns the named method bound to v, trying the addressable form
// so pointer-receiver methods are reachable when the caller passed a pointer.
func methodOn(v reflect.Value, name string) reflect.Value {
	for v.Kind() == reflect.Pointer && !v.IsNil() {
		if m := v.MethodByName(name); m.IsValid() {
			return m
		}
		v = v.Elem()
	}
	if m := v.MethodByName(name); m.IsValid() {
		return m
	}
	if v.CanAddr() {
		return v.Addr().MethodByName(name)
	}
	return reflect.Value{}
}

// receiverType returns the type whose method set should be searched for an
// entry: the pointer type for structs (covering value and pointer receivers),
// the type itself for interfaces.
func receiverType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Interface {
		return t
	}
	return reflect.PointerTo(t)
}
