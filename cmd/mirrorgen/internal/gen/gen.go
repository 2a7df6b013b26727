package gen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/broady/mirror/internal/discover"
	"github.com/broady/mirror/mirrorgen"
)

type Cmd struct {
	Out     string   `arg:"" optional:"" help:"Output directory (default: the scanned package's directory)."`
	Types   []string `help:"Struct types to bind (default: all exported structs)." short:"t"`
	Package string   `help:"Package to scan (default: current directory)." short:"p" default:"."`
	Stdout  bool     `help:"Print generated source instead of writing a file."`
}

func (c *Cmd) Run() error {
	g := mirrorgen.FromPackage(c.Package).WithTypes(c.Types...)

	if c.Stdout {
		src, err := g.Generate()
		if err != nil {
			return err
		}
		fmt.Print(string(src))
		return nil
	}

	// Default the output directory to the package being scanned so the
	// bindings land next to the types they bind.
	outDir := c.Out
	if outDir == "" {
		result, err := discover.Find(c.Package)
		if err != nil {
			return fmt.Errorf("discover: %w", err)
		}
		outDir = result.Dir
	}

	outDir, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	path, err := g.ToDir(outDir)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Wrote %s\n", path)
	return nil
}
