// Package mirrorgen generates typed accessor bindings for struct types.
//
// For each exported struct in a package it emits field-name constants and
// typed Get/Set wrappers that delegate to the mirror package, so callers
// keep compile-time field names and types while the access itself goes
// through the runtime lookup path.
package mirrorgen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"text/template"

	"github.com/broady/mirror/internal/discover"
)

const mirrorImportPath = "github.com/broady/mirror"

// Generator provides a fluent API for binding generation.
// Create with FromPackage() and configure with method chaining.
//
// Example:
//
//	mirrorgen.FromPackage("./models").
//	    WithTypes("Config", "Server").
//	    ToDir("./models")
type Generator struct {
	pattern string
	dir     string
	names   []string
	header  string
}

// FromPackage creates a Generator for the package matched by pattern.
// The pattern follows go command semantics ("." , an import path, or a
// directory path).
func FromPackage(pattern string) *Generator {
	return &Generator{pattern: pattern}
}

// InDir sets the working directory used to resolve the package pattern.
func (g *Generator) InDir(dir string) *Generator {
	g.dir = dir
	return g
}

// WithTypes restricts generation to the named struct types.
// By default every exported struct in the package gets bindings.
func (g *Generator) WithTypes(names ...string) *Generator {
	g.names = append(g.names, names...)
	return g
}

// Header adds content below the generated-code marker, above the package
// clause. Useful for build tags.
func (g *Generator) Header(content string) *Generator {
	g.header = content
	return g
}

// Generate returns the generated bindings file in memory.
func (g *Generator) Generate() ([]byte, error) {
	result, err := discover.FindDir(g.pattern, g.dir)
	if err != nil {
		return nil, err
	}
	targets, err := discover.SelectTargets(result.Targets, g.names)
	if err != nil {
		return nil, err
	}
	return render(result, targets, g.header)
}

// ToFile generates bindings and writes them to path.
func (g *Generator) ToFile(path string) error {
	src, err := g.Generate()
	if err != nil {
		return err
	}
	return os.WriteFile(path, src, 0644)
}

// ToDir generates bindings into dir as mirror_gen.go.
// This is the terminal operation used by the command line tool.
func (g *Generator) ToDir(dir string) (string, error) {
	path := filepath.Join(dir, "mirror_gen.go")
	if err := g.ToFile(path); err != nil {
		return "", err
	}
	return path, nil
}

var bindingsTmpl = template.Must(template.New("bindings").Parse(`// Code generated by mirrorgen. DO NOT EDIT.
{{if .Header}}
{{.Header}}
{{end}}
package {{.PackageName}}

import (
{{- range .Imports}}
	{{printf "%q" .}}
{{- end}}

	mirror {{printf "%q" .MirrorPath}}
)
{{range .Targets}}
// Field names for {{.Name}}.
const (
{{- range .Fields}}
	{{$.ConstName .}} = {{printf "%q" .Field.Name}}
{{- end}}
)
{{range .Accessors}}
// Get{{.Target}}{{.Field.Name}} returns the {{.Field.Name}} field of v.
func Get{{.Target}}{{.Field.Name}}(v *{{.Target}}) ({{.Field.TypeExpr}}, error) {
	raw, err := mirror.Field(v, {{$.ConstName .}})
	if err != nil {
		var zero {{.Field.TypeExpr}}
		return zero, err
	}
	return raw.({{.Field.TypeExpr}}), nil
}

// Set{{.Target}}{{.Field.Name}} sets the {{.Field.Name}} field of v.
func Set{{.Target}}{{.Field.Name}}(v *{{.Target}}, value {{.Field.TypeExpr}}) error {
	return mirror.SetField(v, {{$.ConstName .}}, value)
}
{{end}}{{end}}`))

type boundField struct {
	Target string
	Field  discover.Field
}

type targetData struct {
	Name      string
	Fields    []boundField
	Accessors []boundField
}

type fileData struct {
	Header      string
	PackageName string
	Imports     []string
	MirrorPath  string
	Targets     []targetData
}

// ConstName names the field constant for a bound field, e.g. ConfigFieldName.
func (fileData) ConstName(b boundField) string {
	return b.Target + "Field" + b.Field.Name
}

func render(result *discover.Result, targets []discover.Target, header string) ([]byte, error) {
	data := fileData{
		Header:      header,
		PackageName: result.PackageName,
		Imports:     result.Imports,
		MirrorPath:  mirrorImportPath,
	}

	for _, t := range targets {
		td := targetData{Name: t.Name}
		for _, f := range t.Fields {
			b := boundField{Target: t.Name, Field: f}
			td.Fields = append(td.Fields, b)
			// Embedded fields are reachable through promotion; no wrapper.
			if !f.Embedded {
				td.Accessors = append(td.Accessors, b)
			}
		}
		if len(td.Fields) == 0 {
			continue
		}
		data.Targets = append(data.Targets, td)
	}

	if len(data.Targets) == 0 {
		return nil, fmt.Errorf("no fields to generate bindings for in package %s", result.PackagePath)
	}

	var buf bytes.Buffer
	if err := bindingsTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render bindings: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w\n%s", err, buf.Bytes())
	}
	return src, nil
}
