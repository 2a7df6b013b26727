package mirror

import "reflect"

// FieldInfo describes an exported struct field resolved by name.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Declaring reflect.Type // nearest type in the embedding chain declaring the field
	Index     []int        // field index path from the root struct type
}

// Depth reports how far down the embedding chain the field is declared.
// 0 means it is declared on the root type itself.
func (f FieldInfo) Depth() int {
	return len(f.Index) - 1
}

// LookupField resolves an exported field by name on t, searching the
// embedding chain breadth-first and returning the nearest declaration.
// Pointer types are dereferenced.
func LookupField(t reflect.Type, name string) (FieldInfo, bool) {
	if t == nil || name == "" {
		return FieldInfo{}, false
	}
	for _, entry := range typeChain(t) {
		if entry.typ.Kind() != reflect.Struct {
			continue
		}
		for i := 0; i < entry.typ.NumField(); i++ {
			f := entry.typ.Field(i)
			if f.Name != name || !f.IsExported() {
				continue
			}
			index := make([]int, len(entry.index)+1)
			copy(index, entry.index)
			index[len(entry.index)] = i
			return FieldInfo{
				Name:      name,
				Type:      f.Type,
				Declaring: entry.typ,
				Index:     index,
			}, true
		}
	}
	return FieldInfo{}, false
}

// FieldExists reports whether an exported field with the given name is
// declared anywhere in the target's embedding chain. The target may be an
// instance or a reflect.Type. A nil target or empty name reports false
// rather than failing; use Field or SetField for diagnosable errors.
func FieldExists(target any, name string) bool {
	_, ok := LookupField(targetType(target), name)
	return ok
}

// Field resolves an exported field by name on the target instance and reads
// its value.
func Field(target any, name string) (any, error) {
	v, argErr := instanceValue(target)
	if argErr != nil {
		return nil, argErr
	}
	if name == "" {
		return nil, NewError(CodeInvalidArgument, "field name is required")
	}

	info, ok := LookupField(v.Type(), name)
	if !ok {
		return nil, Errorf(CodeMemberNotFound, "field %q not found on %s", name, v.Type())
	}

	fv, err := walkIndex(v, info.Index)
	if err != nil {
		return nil, err
	}
	if !fv.CanInterface() {
		return nil, Errorf(CodeAccessDenied, "field %q on %s cannot be read", name, v.Type())
	}
	return fv.Interface(), nil
}

// SetField resolves an exported field by name on the target instance and
// writes value to it. The target must be a non-nil pointer so the field is
// addressable. The value must be assignable to the field's type; a nil value
// zeroes a pointer, map, slice, chan, func, or interface field.
func SetField(target any, name string, value any) error {
	v, argErr := instanceValue(target)
	if argErr != nil {
		return argErr
	}
	if name == "" {
		return NewError(CodeInvalidArgument, "field name is required")
	}
	if v.Kind() != reflect.Pointer {
		return NewError(CodeInvalidArgument, "a pointer target is required to set a field")
	}

	info, ok := LookupField(v.Type(), name)
	if !ok {
		return Errorf(CodeMemberNotFound, "field %q not found on %s", name, v.Type())
	}

	fv, err := walkIndex(v, info.Index)
	if err != nil {
		return err
	}
	if !fv.CanSet() {
		return Errorf(CodeAccessDenied, "field %q on %s cannot be set", name, v.Type())
	}
	return assign(fv, value, "field "+name)
}

// assign writes value into dst, enforcing assignability. The what string
// names the destination in error messages.
func assign(dst reflect.Value, value any, what string) error {
	nv, err := coerce(dst.Type(), value, what)
	if err != nil {
		return err
	}
	dst.Set(nv)
	return nil
}

// coerce produces a reflect.Value of type t from value, enforcing
// assignability. A nil value yields the zero value for pointer, map, slice,
// chan, func, and interface types and fails for everything else. The what
// string names the destination in error messages.
func coerce(t reflect.Type, value any, what string) (reflect.Value, error) {
	if value == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
			reflect.Func, reflect.Interface:
			return reflect.Zero(t), nil
		default:
			return reflect.Value{}, Errorf(CodeInvalidArgument,
				"nil is not assignable to %s of type %s", what, t)
		}
	}
	nv := reflect.ValueOf(value)
	if !nv.Type().AssignableTo(t) {
		return reflect.Value{}, Errorf(CodeInvalidArgument,
			"value of type %s is not assignable to %s of type %s", nv.Type(), what, t)
	}
	return nv, nil
}
