// Package mirror is a convenience layer over the reflect package for looking
// up and using members of a value by name, searching through embedded structs
// the way Go's own method and field promotion does.
//
// Three independent facades share one recursive lookup shape:
//
//   - Fields: FieldExists, Field, SetField resolve an exported struct field by
//     name, walking the embedded-struct chain breadth-first and using the
//     nearest declaration.
//   - Properties: Property, SetProperty, IsReadOnly treat an exported
//     getter/setter method pair (Name / SetName) as a single named property.
//     The search is access-aware: a shallower declaration that lacks the
//     requested accessor does not shadow a deeper one that has it.
//   - Methods: Call and CallWithTypes resolve an exported method by name and
//     parameter types, preferring the outermost declaration, and invoke it.
//
// Lookups are one-shot and stateless. Failures are reported as *Error values
// carrying a machine-readable ErrorCode: a missing target or name is
// CodeInvalidArgument, an exhausted search is CodeMemberNotFound, and a member
// that exists but lacks the required capability (for example setting a
// getter-only property) is CodeAccessDenied.
//
// Only exported members are visible, and the chain walk descends only into
// exported embedded fields; the runtime forbids reading values reached through
// unexported fields.
//
// For repeated lookups against the same types, Types provides an opt-in cache
// of per-type member tables. The object utilities (DecodeMap, Clone, Merge,
// PopulateValues, SetFieldChecked) round out common whole-object operations.
package mirror
