package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/broady/mirror/cmd/mirrorgen/internal/check"
	"github.com/broady/mirror/cmd/mirrorgen/internal/gen"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate typed accessor bindings for a package."`
	Check   check.Cmd  `cmd:"" help:"List binding targets without generating files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("mirrorgen"),
		kong.Description("Mirror CLI for accessor binding generation."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
