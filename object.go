package mirror

import (
	"errors"
	"net/url"
	"reflect"
	"strings"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/schema"
	"github.com/mohae/deepcopy"
)

var (
	validate      = validator.New()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(true)
}

// DecodeMap fills dst, which must be a non-nil pointer to a struct, from a
// string-keyed map. Keys match exported field names case-insensitively and
// honor `mapstructure` tags.
func DecodeMap(src map[string]any, dst any) error {
	if dst == nil {
		return NewError(CodeInvalidArgument, "destination is required")
	}
	if err := mapstructure.Decode(src, dst); err != nil {
		return Errorf(CodeInvalidArgument, "decode map: %v", err)
	}
	return nil
}

// EncodeMap converts a struct (or pointer to struct) into a string-keyed map
// of its exported fields, honoring `mapstructure` tags.
func EncodeMap(src any) (map[string]any, error) {
	if src == nil {
		return nil, NewError(CodeInvalidArgument, "source is required")
	}
	out := map[string]any{}
	if err := mapstructure.Decode(src, &out); err != nil {
		return nil, Errorf(CodeInvalidArgument, "encode map: %v", err)
	}
	return out, nil
}

// Clone returns a deep copy of v. Unexported fields are not copied; see the
// package visibility rule.
func Clone(v any) any {
	return deepcopy.Copy(v)
}

// Merge fills the zero-valued exported fields of dst, a non-nil pointer to a
// struct, with the corresponding values from src.
func Merge(dst, src any) error {
	if dst == nil || src == nil {
		return NewError(CodeInvalidArgument, "both destination and source are required")
	}
	if err := mergo.Merge(dst, src); err != nil {
		return Errorf(CodeInvalidArgument, "merge: %v", err)
	}
	return nil
}

// PopulateValues fills dst, a non-nil pointer to a struct, from url.Values,
// matching keys against field names and `schema` tags. Unknown keys are
// ignored.
func PopulateValues(dst any, values url.Values) error {
	if dst == nil {
		return NewError(CodeInvalidArgument, "destination is required")
	}
	if err := schemaDecoder.Decode(dst, values); err != nil {
		return Errorf(CodeInvalidArgument, "populate from values: %v", err)
	}
	return nil
}

// SetFieldChecked behaves like SetField and then validates the written field
// against its `validate` struct tag. A validation failure restores the
// previous value and reports an invalid-argument error carrying the
// validator's per-field messages as details.
func SetFieldChecked(target any, name string, value any) error {
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

	prev := reflect.New(fv.Type()).Elem()
	prev.Set(fv)
	if err := assign(fv, value, "field "+name); err != nil {
		return err
	}

	root := v.Elem()
	if root.Kind() != reflect.Struct {
		return nil
	}
	verr := validate.StructPartial(root.Interface(), fieldPath(root.Type(), info.Index))
	if verr == nil {
		return nil
	}
	fv.Set(prev)

	var valErrs validator.ValidationErrors
	e := Errorf(CodeInvalidArgument, "value for field %q failed validation", name)
	if errors.As(verr, &valErrs) {
		for _, ve := range valErrs {
			e = e.WithDetail(ve.Field(), "failed "+ve.Tag()+" validation")
		}
	}
	return e
}

// fieldPath renders a field index path as the dotted namespace the validator
// uses for partial validation, for example "Base.Count" for a field promoted
// from an embedded Base.
func fieldPath(t reflect.Type, index []int) string {
	parts := make([]string, 0, len(index))
	for _, i := range index {
		t = derefType(t)
		f := t.Field(i)
		parts = append(parts, f.Name)
		t = f.Type
	}
	return strings.Join(parts, ".")
}
