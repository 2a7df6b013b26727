package mirror

import "reflect"

// Access selects which capability a property lookup requires.
type Access int

const (
	// ReadAccess requires a getter: an exported method Name() T.
	ReadAccess Access = 1 << iota
	// WriteAccess requires a setter: an exported method SetName(T), which
	// may also return an error.
	WriteAccess

	// ReadWriteAccess requires both accessors.
	ReadWriteAccess = ReadAccess | WriteAccess

	// AnyAccess matches a property with either accessor.
	AnyAccess Access = 0
)

// PropertyInfo describes a getter/setter method pair resolved by name.
type PropertyInfo struct {
	Name      string
	Type      reflect.Type // the property's value type
	Declaring reflect.Type // nearest type in the chain declaring the accessor pair
	CanRead   bool
	CanWrite  bool
}

// propBinding is the internal resolution of a property against one chain
// entry, carrying what is needed to invoke its accessors.
type propBinding struct {
	entry  chainEntry
	hasGet bool
	hasSet bool
	typ    reflect.Type
}

// resolveProperty walks t's embedding chain looking for a property with the
// requested access. An entry that declares the property without the required
// accessor does not stop the search: a shallower read-only declaration does
// not shadow a deeper writable one for write purposes. The seen result
// reports whether the property existed anywhere, regardless of access.
func resolveProperty(t reflect.Type, name string, access Access) (binding propBinding, found, seen bool) {
	if t == nil || name == "" {
		return propBinding{}, false, false
	}
	for _, entry := range typeChain(t) {
		b, ok := propertyAt(entry, name)
		if !ok {
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
	return propBinding{}, false, seen
}

// propertyAt examines one chain entry's method set for the property's
// accessor pair.
func propertyAt(entry chainEntry, name string) (propBinding, bool) {
	rt := receiverType(entry.typ)
	offset := methodParamOffset(rt)

	b := propBinding{entry: entry}
	if g, ok := rt.MethodByName(name); ok {
		gt := g.Type
		if gt.NumIn() == offset && gt.NumOut() == 1 {
			b.hasGet = true
			b.typ = gt.Out(0)
		}
	}
	if s, ok := rt.MethodByName("Set" + name); ok {
		st := s.Type
		if st.NumIn() == offset+1 && setterResultsOK(st) {
			b.hasSet = true
			if b.typ == nil {
				b.typ = st.In(offset)
			}
		}
	}
	return b, b.hasGet || b.hasSet
}

// setterResultsOK accepts setters with no results or a single error result.
func setterResultsOK(st reflect.Type) bool {
	switch st.NumOut() {
	case 0:
		return true
	case 1:
		return st.Out(0) == errorType
	default:
		return false
	}
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// methodParamOffset returns the index of the first real parameter in a
// reflect.Method's type: interface methods carry no receiver, concrete
// methods carry it at In(0).
func methodParamOffset(rt reflect.Type) int {
	if rt.Kind() == reflect.Interface {
		return 0
	}
	return 1
}

// LookupProperty resolves a property by name on t, requiring the given
// access. Pointer types are dereferenced. Declaring is attributed to the
// deepest chain entry on the promotion path exposing the same accessor pair,
// so a property promoted from an embedded type reports the embedded type, not
// the outer one.
func LookupProperty(t reflect.Type, name string, access Access) (PropertyInfo, bool) {
	b, found, _ := resolveProperty(t, name, access)
	if !found {
		return PropertyInfo{}, false
	}
	return PropertyInfo{
		Name:      name,
		Type:      b.typ,
		Declaring: propertyDeclaring(t, name, b).typ,
		CanRead:   b.hasGet,
		CanWrite:  b.hasSet,
	}, true
}

// propertyDeclaring finds the entry a resolved property is declared on. The
// binding's own entry sees every unambiguously promoted accessor in its
// method set, so the walk continues down the promotion path as long as a
// deeper entry exposes an identical accessor pair.
func propertyDeclaring(t reflect.Type, name string, b propBinding) chainEntry {
	declaring := b.entry
	for _, entry := range typeChain(t) {
		if len(entry.index) <= len(declaring.index) {
			continue
		}
		if !indexPrefix(declaring.index, entry.index) {
			continue
		}
		c, ok := propertyAt(entry, name)
		if !ok {
			continue
		}
		if c.hasGet == b.hasGet && c.hasSet == b.hasSet && c.typ == b.typ {
			declaring = entry
		}
	}
	return declaring
}

// PropertyExists reports whether a property with the given name and access
// exists anywhere in the target's embedding chain. The target may be an
// instance or a reflect.Type. A nil target or empty name reports false.
func PropertyExists(target any, name string, access Access) bool {
	_, found, _ := resolveProperty(targetType(target), name, access)
	return found
}

// IsReadOnly reports whether the named property can be read but not written
// anywhere in the target's chain. It fails with a member-not-found error when
// the property does not exist at all.
func IsReadOnly(target any, name string) (bool, error) {
	t := targetType(target)
	if t == nil {
		return false, NewError(CodeInvalidArgument, "target is required")
	}
	if name == "" {
		return false, NewError(CodeInvalidArgument, "property name is required")
	}
	_, canRead, seen := resolveProperty(t, name, ReadAccess)
	if !seen {
		return false, Errorf(CodeMemberNotFound, "property %q not found on %s", name, t)
	}
	_, canWrite, _ := resolveProperty(t, name, WriteAccess)
	return canRead && !canWrite, nil
}

// Property resolves the named property on the target instance and reads it
// through its getter.
func Property(target any, name string) (any, error) {
	v, argErr := instanceValue(target)
	if argErr != nil {
		return nil, argErr
	}
	if name == "" {
		return nil, NewError(CodeInvalidArgument, "property name is required")
	}

	b, found, seen := resolveProperty(v.Type(), name, ReadAccess)
	if !found {
		if seen {
			return nil, Errorf(CodeAccessDenied, "property %q on %s has no getter", name, v.Type())
		}
		return nil, Errorf(CodeMemberNotFound, "property %q not found on %s", name, v.Type())
	}

	m, err := boundAccessor(v, b.entry, name)
	if err != nil {
		return nil, err
	}
	return m.Call(nil)[0].Interface(), nil
}

// SetProperty resolves the named property on the target instance and writes
// value through its setter. If the setter returns an error, it is passed
// through unchanged.
func SetProperty(target any, name string, value any) error {
	v, argErr := instanceValue(target)
	if argErr != nil {
		return argErr
	}
	if name == "" {
		return NewError(CodeInvalidArgument, "property name is required")
	}

	b, found, seen := resolveProperty(v.Type(), name, WriteAccess)
	if !found {
		if seen {
			return Errorf(CodeAccessDenied, "property %q on %s is read-only", name, v.Type())
		}
		return Errorf(CodeMemberNotFound, "property %q not found on %s", name, v.Type())
	}

	m, err := boundAccessor(v, b.entry, "Set"+name)
	if err != nil {
		return err
	}
	arg, err := coerce(m.Type().In(0), value, "property "+name)
	if err != nil {
		return err
	}
	out := m.Call([]reflect.Value{arg})
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}

// boundAccessor walks to the chain entry declaring an accessor and binds the
// named method to it. Pointer-receiver accessors need an addressable path,
// which means the root target must be a pointer.
func boundAccessor(v reflect.Value, entry chainEntry, name string) (reflect.Value, error) {
	recv, err := walkIndex(v, entry.index)
	if err != nil {
		return reflect.Value{}, err
	}
	m := methodOn(recv, name)
	if !m.IsValid() {
		return reflect.Value{}, Errorf(CodeInvalidArgument,
			"a pointer target is required to call pointer-receiver method %q on %s", name, entry.typ)
	}
	return m, nil
}
