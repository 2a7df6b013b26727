package discover

import (
	"os"
	"path/filepath"
	"testing"
)

func writePackage(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	goMod := `module test

go 1.21
`
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(goMod), 0644); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestFind(t *testing.T) {
	t.Setenv("GOWORK", "off")

	tests := []struct {
		name        string
		files       map[string]string
		wantTargets map[string][]string // target name -> exported field names
		wantErr     string
	}{
		{
			name: "single struct",
			files: map[string]string{
				"main.go": `package models

type Config struct {
	Name    string
	Retries int
	debug   bool
}
`,
			},
			wantTargets: map[string][]string{
				"Config": {"Name", "Retries"},
			},
		},
		{
			name: "multiple structs sorted by name",
			files: map[string]string{
				"main.go": `package models

type Server struct {
	Addr string
}

type Client struct {
	Timeout int
}
`,
			},
			wantTargets: map[string][]string{
				"Client": {"Timeout"},
				"Server": {"Addr"},
			},
		},
		{
			name: "ignores unexported and non-struct types",
			files: map[string]string{
				"main.go": `package models

type config struct {
	Name string
}

type Level int

type Handler func() error
`,
			},
			wantTargets: map[string][]string{},
		},
		{
			name: "embedded fields included",
			files: map[string]string{
				"main.go": `package models

type Base struct {
	ID string
}

type Record struct {
	Base
	Body string
}
`,
			},
			wantTargets: map[string][]string{
				"Base":   {"ID"},
				"Record": {"Base", "Body"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writePackage(t, tt.files)

			result, err := FindDir(".", dir)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %q", tt.wantErr, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(result.Targets) != len(tt.wantTargets) {
				t.Fatalf("got %d targets, want %d", len(result.Targets), len(tt.wantTargets))
			}

			for _, target := range result.Targets {
				wantFields, ok := tt.wantTargets[target.Name]
				if !ok {
					t.Errorf("unexpected target %s", target.Name)
					continue
				}
				if len(target.Fields) != len(wantFields) {
					t.Errorf("target %s: got %d fields, want %d", target.Name, len(target.Fields), len(wantFields))
					continue
				}
				for i, f := range target.Fields {
					if f.Name != wantFields[i] {
						t.Errorf("target %s field %d: got %s, want %s", target.Name, i, f.Name, wantFields[i])
					}
				}
			}
		})
	}
}

func TestFindFieldTypes(t *testing.T) {
	t.Setenv("GOWORK", "off")

	dir := writePackage(t, map[string]string{
		"main.go": `package models

import "time"

type Job struct {
	Name     string
	Deadline time.Time
	Tags     map[string]string
}
`,
	})

	result, err := FindDir(".", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(result.Targets))
	}

	want := map[string]string{
		"Name":     "string",
		"Deadline": "time.Time",
		"Tags":     "map[string]string",
	}
	for _, f := range result.Targets[0].Fields {
		if want[f.Name] != f.TypeExpr {
			t.Errorf("field %s: got type %q, want %q", f.Name, f.TypeExpr, want[f.Name])
		}
	}

	if len(result.Imports) != 1 || result.Imports[0] != "time" {
		t.Errorf("got imports %v, want [time]", result.Imports)
	}
}

func TestSelectTargets(t *testing.T) {
	targets := []Target{
		{Name: "Client"},
		{Name: "Server"},
	}

	t.Run("no names returns all", func(t *testing.T) {
		got, err := SelectTargets(targets, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Errorf("got %d targets, want 2", len(got))
		}
	})

	t.Run("names select in order", func(t *testing.T) {
		got, err := SelectTargets(targets, []string{"Server", "Client"})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].Name != "Server" || got[1].Name != "Client" {
			t.Errorf("got %v, want [Server Client]", got)
		}
	})

	t.Run("no targets", func(t *testing.T) {
		_, err := SelectTargets(nil, nil)
		if err == nil {
			t.Fatal("expected error")
		}
		if !contains(err.Error(), "no exported struct types") {
			t.Errorf("expected 'no exported struct types' in error, got %q", err.Error())
		}
	})

	t.Run("name not found", func(t *testing.T) {
		_, err := SelectTargets(targets, []string{"NotHere"})
		if err == nil {
			t.Fatal("expected error")
		}
		if !contains(err.Error(), "not found") {
			t.Errorf("expected 'not found' in error, got %q", err.Error())
		}
	})
}

func contains(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
