package mirror

import (
	"log/slog"
	"reflect"
	"strings"
	"sync"
)

// Types is an opt-in cache of per-type member tables for callers that resolve
// the same names against the same types repeatedly. It memoizes the chain
// walk only; a cached lookup always returns the same result as the
// package-level functions, which never cache.
type Types struct {
	mu     sync.RWMutex
	tables map[reflect.Type]*memberTable
	logger *slog.Logger
}

// memberTable holds every member of one type resolved once, keyed by name.
type memberTable struct {
	fields     map[string]FieldInfo
	properties map[string]PropertyInfo
	methods    map[string]MethodInfo
}

// NewTypes creates an empty member-table cache.
func NewTypes() *Types {
	return &Types{
		tables: make(map[reflect.Type]*memberTable),
	}
}

// WithLogger sets a logger used to report table builds at debug level.
// It returns the cache for chaining. If not set, nothing is logged.
func (c *Types) WithLogger(logger *slog.Logger) *Types {
	c.logger = logger
	return c
}

// Field returns the cached field descriptor for name on t.
func (c *Types) Field(t reflect.Type, name string) (FieldInfo, bool) {
	tbl := c.table(t)
	if tbl == nil {
		return FieldInfo{}, false
	}
	info, ok := tbl.fields[name]
	return info, ok
}

// Property returns the cached property descriptor for name on t. The cached
// descriptor is resolved with AnyAccess; use its CanRead and CanWrite flags
// for capability checks.
func (c *Types) Property(t reflect.Type, name string) (PropertyInfo, bool) {
	tbl := c.table(t)
	if tbl == nil {
		return PropertyInfo{}, false
	}
	info, ok := tbl.properties[name]
	return info, ok
}

// Method returns the cached method descriptor for name on t.
func (c *Types) Method(t reflect.Type, name string) (MethodInfo, bool) {
	tbl := c.table(t)
	if tbl == nil {
		return MethodInfo{}, false
	}
	info, ok := tbl.methods[name]
	return info, ok
}

// Reset drops every cached table.
func (c *Types) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables = make(map[reflect.Type]*memberTable)
}

// table returns the member table for t, building it on first use.
func (c *Types) table(t reflect.Type) *memberTable {
	t = derefType(t)
	if t == nil {
		return nil
	}

	c.mu.RLock()
	tbl, ok := c.tables[t]
	c.mu.RUnlock()
	if ok {
		return tbl
	}

	tbl = buildMemberTable(t)

	c.mu.Lock()
	// Another goroutine may have built it first; keep the existing table so
	// callers never observe two generations.
	if existing, ok := c.tables[t]; ok {
		tbl = existing
	} else {
		c.tables[t] = tbl
	}
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Debug("built member table",
			slog.String("type", t.String()),
			slog.Int("fields", len(tbl.fields)),
			slog.Int("properties", len(tbl.properties)),
			slog.Int("methods", len(tbl.methods)))
	}
	return tbl
}

// buildMemberTable resolves every visible member of t through the same
// lookups the package-level functions use.
func buildMemberTable(t reflect.Type) *memberTable {
	tbl := &memberTable{
		fields:     make(map[string]FieldInfo),
		properties: make(map[string]PropertyInfo),
		methods:    make(map[string]MethodInfo),
	}

	names := make(map[string]bool)
	for _, entry := range typeChain(t) {
		if entry.typ.Kind() == reflect.Struct {
			for i := 0; i < entry.typ.NumField(); i++ {
				f := entry.typ.Field(i)
				if !f.IsExported() {
					continue
				}
				if _, ok := tbl.fields[f.Name]; ok {
					continue
				}
				if info, ok := LookupField(t, f.Name); ok {
					tbl.fields[f.Name] = info
				}
			}
		}
		rt := receiverType(entry.typ)
		for i := 0; i < rt.NumMethod(); i++ {
			names[rt.Method(i).Name] = true
		}
	}

	for name := range names {
		if info, ok := LookupMethod(t, name); ok {
			tbl.methods[name] = info
		}
		// A method pair Name/SetName doubles as a property; register it
		// under the property name, stripping the Set prefix from setters.
		prop := name
		if strings.HasPrefix(name, "Set") && len(name) > 3 && name[3] >= 'A' && name[3] <= 'Z' {
			prop = name[3:]
		}
		if info, ok := LookupProperty(t, prop, AnyAccess); ok {
			tbl.properties[prop] = info
		}
	}
	return tbl
}
