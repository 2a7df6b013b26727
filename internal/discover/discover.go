// Package discover finds accessor-generation targets in a Go package.
//
// A target is any exported struct type declared at package scope. No
// directives or annotations needed — the declaration is the marker.
package discover

import (
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"

	"golang.org/x/tools/go/packages"
)

// Field describes one exported field of a target struct.
type Field struct {
	Name     string
	TypeExpr string // Go syntax for the field's type, qualified for use inside the target package
	Embedded bool
}

// Target represents a discovered struct type.
type Target struct {
	Name   string
	Pos    token.Position // source location
	Fields []Field
}

// Result contains discovered targets and package info.
type Result struct {
	PackageName string
	PackagePath string
	ModulePath  string
	ModuleDir   string // directory containing go.mod
	Dir         string // directory containing the package
	Imports     []string
	Targets     []Target
}

// Find scans a Go package for exported struct types.
//
// The pattern follows go command semantics:
//   - "." for current directory
//   - Import path like "github.com/foo/bar"
//   - Absolute or relative directory path
func Find(pattern string) (*Result, error) {
	return FindDir(pattern, "")
}

// FindDir is like Find but allows specifying a working directory.
func FindDir(pattern, dir string) (*Result, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles |
			packages.NeedTypes | packages.NeedModule,
		Dir: dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", pattern)
	}

	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found matching %q; specify a single package", pattern)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkg.Errors[0])
	}

	result := &Result{
		PackageName: pkg.Types.Name(),
		PackagePath: pkg.PkgPath,
	}

	if pkg.Module != nil {
		result.ModulePath = pkg.Module.Path
		result.ModuleDir = pkg.Module.Dir
	}

	if len(pkg.GoFiles) > 0 {
		result.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	imports := make(map[string]bool)
	qualify := func(p *types.Package) string {
		if p == pkg.Types {
			return ""
		}
		imports[p.Path()] = true
		return p.Name()
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		tn, ok := obj.(*types.TypeName)
		if !ok || !tn.Exported() || tn.IsAlias() {
			continue
		}

		st, ok := tn.Type().Underlying().(*types.Struct)
		if !ok {
			continue
		}

		target := Target{
			Name: tn.Name(),
			Pos:  pkg.Fset.Position(tn.Pos()),
		}
		for i := 0; i < st.NumFields(); i++ {
			f := st.Field(i)
			if !f.Exported() {
				continue
			}
			target.Fields = append(target.Fields, Field{
				Name:     f.Name(),
				TypeExpr: types.TypeString(f.Type(), qualify),
				Embedded: f.Embedded(),
			})
		}
		result.Targets = append(result.Targets, target)
	}

	for path := range imports {
		result.Imports = append(result.Imports, path)
	}
	sort.Strings(result.Imports)

	return result, nil
}

// SelectTargets filters discovered targets by name.
//
// If names is empty, every target is returned; targets must exist. Otherwise
// each name must match a discovered target, in the order given.
func SelectTargets(targets []Target, names []string) ([]Target, error) {
	if len(names) == 0 {
		if len(targets) == 0 {
			return nil, fmt.Errorf("no exported struct types found\n\nDeclare at least one exported struct in the package, for example:\n\n    type Config struct {\n        Name string\n    }")
		}
		return targets, nil
	}

	byName := make(map[string]*Target, len(targets))
	for i := range targets {
		byName[targets[i].Name] = &targets[i]
	}

	selected := make([]Target, 0, len(names))
	for _, name := range names {
		t, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("type %q not found in package", name)
		}
		selected = append(selected, *t)
	}
	return selected, nil
}
