package cli

import (
	"fmt"

	"github.com/effective-security/dsig/dsig"
	"github.com/effective-security/dsig/internal/version"
)

// VersionCmd prints the version
type VersionCmd struct{}

// Run the command
func (a *VersionCmd) Run(ctx *Cli) error {
	v := version.Current()
	w := ctx.Writer()
	fmt.Fprintf(w, "dsig %s\n", v)
	fmt.Fprintf(w, "Digital Signature with OpenPGP, protocol %s%s\n", dsig.HeaderPrefix, dsig.ProtocolVersion)
	fmt.Fprintf(w, "%s\n", v.Runtime)
	return nil
}
