package check

import (
	"fmt"

	"github.com/broady/mirror/internal/discover"
)

type Cmd struct {
	Types   []string `help:"Struct types to check (default: all exported structs)." short:"t"`
	Package string   `help:"Package to scan (default: current directory)." short:"p" default:"."`
}

func (c *Cmd) Run() error {
	result, err := discover.Find(c.Package)
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}

	targets, err := discover.SelectTargets(result.Targets, c.Types)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Found %d struct types in %s\n", len(targets), result.PackagePath)

	fields := 0
	for _, t := range targets {
		fmt.Printf("✓ %s: %d fields\n", t.Name, len(t.Fields))
		fields += len(t.Fields)
	}

	fmt.Printf("✓ %d bindable fields total\n", fields)
	return nil
}
