package mirrorgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/broady/mirror/internal/discover"
)

func TestRender(t *testing.T) {
	result := &discover.Result{
		PackageName: "models",
		PackagePath: "example.com/models",
		Imports:     []string{"time"},
	}
	targets := []discover.Target{
		{
			Name: "Job",
			Fields: []discover.Field{
				{Name: "Name", TypeExpr: "string"},
				{Name: "Deadline", TypeExpr: "time.Time"},
			},
		},
	}

	src, err := render(result, targets, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(src)

	for _, want := range []string{
		"// Code generated by mirrorgen. DO NOT EDIT.",
		"package models",
		`"time"`,
		`JobFieldName = "Name"`,
		`JobFieldDeadline = "Deadline"`,
		"func GetJobName(v *Job) (string, error)",
		"func SetJobName(v *Job, value string) error",
		"func GetJobDeadline(v *Job) (time.Time, error)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("generated source missing %q:\n%s", want, got)
		}
	}
}

func TestRenderSkipsEmbeddedAccessors(t *testing.T) {
	result := &discover.Result{PackageName: "models"}
	targets := []discover.Target{
		{
			Name: "Record",
			Fields: []discover.Field{
				{Name: "Base", TypeExpr: "Base", Embedded: true},
				{Name: "Body", TypeExpr: "string"},
			},
		},
	}

	src, err := render(result, targets, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(src)

	if !strings.Contains(got, `RecordFieldBase = "Base"`) {
		t.Error("expected a field constant for the embedded field")
	}
	if strings.Contains(got, "func GetRecordBase") {
		t.Error("expected no accessor for the embedded field")
	}
	if !strings.Contains(got, "func GetRecordBody") {
		t.Error("expected an accessor for the plain field")
	}
}

func TestRenderHeader(t *testing.T) {
	result := &discover.Result{PackageName: "models"}
	targets := []discover.Target{
		{Name: "Config", Fields: []discover.Field{{Name: "Name", TypeExpr: "string"}}},
	}

	src, err := render(result, targets, "//go:build !codegen")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(src), "//go:build !codegen") {
		t.Errorf("expected header in output:\n%s", src)
	}
}

func TestRenderNoTargets(t *testing.T) {
	result := &discover.Result{PackageName: "models", PackagePath: "example.com/models"}

	_, err := render(result, nil, "")
	if err == nil {
		t.Fatal("expected error for empty target list")
	}
	if !strings.Contains(err.Error(), "no fields") {
		t.Errorf("expected 'no fields' in error, got %q", err.Error())
	}
}

func TestGenerateFromPackage(t *testing.T) {
	t.Setenv("GOWORK", "off")
	dir := t.TempDir()

	goMod := `module test

go 1.21
`
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(goMod), 0644); err != nil {
		t.Fatal(err)
	}
	code := `package models

type Config struct {
	Name    string
	Retries int
	debug   bool
}
`
	if err := os.WriteFile(filepath.Join(dir, "models.go"), []byte(code), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := FromPackage(".").InDir(dir).Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(src)

	if !strings.Contains(got, "func GetConfigName(v *Config) (string, error)") {
		t.Errorf("expected Name accessor in output:\n%s", got)
	}
	if strings.Contains(got, "debug") {
		t.Errorf("expected unexported field to be skipped:\n%s", got)
	}

	out, err := FromPackage(".").InDir(dir).ToDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(out) != "mirror_gen.go" {
		t.Errorf("expected mirror_gen.go, got %s", out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected generated file on disk: %v", err)
	}
}

func TestGenerateUnknownType(t *testing.T) {
	t.Setenv("GOWORK", "off")
	dir := t.TempDir()

	goMod := `module test

go 1.21
`
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(goMod), 0644); err != nil {
		t.Fatal(err)
	}
	code := `package models

type Config struct {
	Name string
}
`
	if err := os.WriteFile(filepath.Join(dir, "models.go"), []byte(code), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := FromPackage(".").InDir(dir).WithTypes("NotHere").Generate()
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected 'not found' in error, got %q", err.Error())
	}
}
