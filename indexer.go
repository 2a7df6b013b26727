package mirror

import "reflect"

// indexerBinding is the internal resolution of a named indexer pair:
// a getter Name(index) T and a setter SetName(index, T).
type indexerBinding struct {
	entry  chainEntry
	hasGet bool
	hasSet bool
}

// resolveIndexer walks t's embedding chain for an indexer accessor pair,
// applying the same access-aware continuation as plain properties.
func resolveIndexer(t reflect.Type, name string, access Access) (binding indexerBinding, found, seen bool) {
	if t == nil || name == "" {
		return indexerBinding{}, false, false
	}
	for _, entry := range typeChain(t) {
		rt := receiverType(entry.typ)
		offset := methodParamOffset(rt)

		b := indexerBinding{entry: entry}
		if g, ok := rt.MethodByName(name); ok {
			if g.Type.NumIn() == offset+1 && g.Type.NumOut() == 1 {
				b.hasGet = true
			}
		}
		if s, ok := rt.MethodByName("Set" + name); ok {
			if s.Type.NumIn() == offset+2 && setterResultsOK(s.Type) {
				b.hasSet = true
			}
		}
		if !b.hasGet && !b.hasSet {
			continue
		}
		seen = true
		if access&ReadAccess != 0 && !b.hasGet {
			continue
		}
		if access&WriteAccess != 0 && !b.hasSet {
			continue
		}
		return b, true, true
	}
	return indexerBinding{}, false, seen
}

// Item reads one element of the named indexed member on the target instance.
// It prefers an indexer getter Name(index) and falls back to indexing a
// map, slice, or array field of that name directly.
func Item(target any, name string, index any) (any, error) {
	v, argErr := instanceValue(target)
	if argErr != nil {
		return nil, argErr
	}
	if name == "" {
		return nil, NewError(CodeInvalidArgument, "member name is required")
	}

	b, found, seen := resolveIndexer(v.Type(), name, ReadAccess)
	if found {
		m, err := boundAccessor(v, b.entry, name)
		if err != nil {
			return nil, err
		}
		arg, err := coerce(m.Type().In(0), index, "index of "+name)
		if err != nil {
			return nil, err
		}
		return m.Call([]reflect.Value{arg})[0].Interface(), nil
	}

	cv, err := containerFor(v, name)
	if err != nil {
		if seen {
			return nil, Errorf(CodeAccessDenied, "indexed member %q on %s has no getter", name, v.Type())
		}
		return nil, err
	}
	switch cv.Kind() {
	case reflect.Map:
		kv, err := coerce(cv.Type().Key(), index, "key of "+name)
		if err != nil {
			return nil, err
		}
		ev := cv.MapIndex(kv)
		if !ev.IsValid() {
			return nil, Errorf(CodeMemberNotFound, "key %v not present in %q on %s", index, name, v.Type())
		}
		return ev.Interface(), nil
	case reflect.Slice, reflect.Array:
		i, err := intIndex(index, name, cv.Len())
		if err != nil {
			return nil, err
		}
		return cv.Index(i).Interface(), nil
	default:
		return nil, Errorf(CodeMemberNotFound, "indexed member %q not found on %s", name, v.Type())
	}
}

// SetItem writes one element of the named indexed member on the target
// instance. It prefers an indexer setter SetName(index, value) and falls back
// to a map, slice, or array field of that name. Writing an array element
// requires a pointer target so the array is addressable.
func SetItem(target any, name string, index, value any) error {
	v, argErr := instanceValue(target)
	if argErr != nil {
		return argErr
	}
	if name == "" {
		return NewError(CodeInvalidArgument, "member name is required")
	}

	if b, found, seen := resolveIndexer(v.Type(), name, WriteAccess); found {
		m, err := boundAccessor(v, b.entry, "Set"+name)
		if err != nil {
			return err
		}
		arg, err := coerce(m.Type().In(0), index, "index of "+name)
		if err != nil {
			return err
		}
		val, err := coerce(m.Type().In(1), value, "element of "+name)
		if err != nil {
			return err
		}
		out := m.Call([]reflect.Value{arg, val})
		if len(out) == 1 && !out[0].IsNil() {
			return out[0].Interface().(error)
		}
		return nil
	} else if seen {
		return Errorf(CodeAccessDenied, "indexed member %q on %s is read-only", name, v.Type())
	}

	cv, err := containerFor(v, name)
	if err != nil {
		return err
	}
	switch cv.Kind() {
	case reflect.Map:
		if cv.IsNil() {
			return Errorf(CodeInvalidArgument, "map %q on %s is nil", name, v.Type())
		}
		kv, err := coerce(cv.Type().Key(), index, "key of "+name)
		if err != nil {
			return err
		}
		ev, err := coerce(cv.Type().Elem(), value, "element of "+name)
		if err != nil {
			return err
		}
		cv.SetMapIndex(kv, ev)
		return nil
	case reflect.Slice:
		i, err := intIndex(index, name, cv.Len())
		if err != nil {
			return err
		}
		return assign(cv.Index(i), value, "element of "+name)
	case reflect.Array:
		if !cv.CanSet() {
			return Errorf(CodeAccessDenied, "array %q on %s is not addressable; pass a pointer target", name, v.Type())
		}
		i, err := intIndex(index, name, cv.Len())
		if err != nil {
			return err
		}
		return assign(cv.Index(i), value, "element of "+name)
	default:
		return Errorf(CodeMemberNotFound, "indexed member %q not found on %s", name, v.Type())
	}
}

// containerFor resolves name to an indexable member value: a field, or the
// result of a zero-argument getter. A getter result shares storage with the
// target for maps and slices, which is what indexing relies on.
func containerFor(v reflect.Value, name string) (reflect.Value, error) {
	if info, ok := LookupField(v.Type(), name); ok {
		fv, err := walkIndex(v, info.Index)
		if err != nil {
			return reflect.Value{}, err
		}
		return fv, nil
	}
	if b, found, _ := resolveProperty(v.Type(), name, ReadAccess); found {
		m, err := boundAccessor(v, b.entry, name)
		if err != nil {
			return reflect.Value{}, err
		}
		return m.Call(nil)[0], nil
	}
	return reflect.Value{}, Errorf(CodeMemberNotFound, "indexed member %q not found on %s", name, v.Type())
}

// intIndex converts an index argument to a bounds-checked int.
func intIndex(index any, name string, length int) (int, error) {
	iv := reflect.ValueOf(index)
	if !iv.IsValid() || !iv.CanInt() {
		return 0, Errorf(CodeInvalidArgument, "index for %q must be an integer, got %T", name, index)
	}
	i := int(iv.Int())
	if i < 0 || i >= length {
		return 0, Errorf(CodeInvalidArgument, "index %d out of range for %q (len %d)", i, name, length)
	}
	return i, nil
}
