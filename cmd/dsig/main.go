package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/effective-security/dsig/cmd/dsig/cli"
	"github.com/effective-security/dsig/internal/version"
	"github.com/effective-security/x/ctl"
)

type app struct {
	cli.Cli

	Version     cli.VersionCmd     `cmd:"" help:"Print version information"`
	Keygen      cli.KeygenCmd      `cmd:"" help:"Generate a key pair"`
	Fingerprint cli.FingerprintCmd `cmd:"" help:"Print the fingerprint of a key"`
	Sign        cli.SignCmd        `cmd:"" help:"Create a digital signature"`
	Verify      cli.VerifyCmd      `cmd:"" help:"Verify a digital signature"`
}

func main() {
	realMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

func realMain(args []string, out io.Writer, errout io.Writer, exit func(int)) {
	cl := app{
		Cli: cli.Cli{},
	}
	cl.Cli.WithErrWriter(errout).
		WithWriter(out)

	parser, err := kong.New(&cl,
		kong.Name("dsig"),
		kong.Description("Digital Signature with OpenPGP"),
		kong.Writers(out, errout),
		kong.Exit(exit),
		ctl.BoolPtrMapper,
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version.Current().String(),
		})
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args[1:])
	parser.FatalIfErrorf(err)

	if ctx != nil {
		if cl.Debug {
			// the arguments may carry a pass-phrase
			_, _ = fmt.Fprintf(ctx.Stderr, "#\n# %s %s\n#\n", args[0], ctx.Command())
		}
		err = ctx.Run(&cl.Cli)
		ctx.FatalIfErrorf(err)
	}
}
