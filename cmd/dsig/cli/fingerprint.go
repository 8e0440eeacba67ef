package cli

import (
	"github.com/effective-security/dsig/dsig"
)

// FingerprintCmd prints the fingerprint of a key
type FingerprintCmd struct {
	PublicKey   string `short:"p" required:"" help:"Location of the public or private key"`
	PassPhrase  string `short:"w" env:"DSIG_PASS_PHRASE" help:"Pass-phrase of the private key"`
	Fingerprint string `short:"f" default:"-" help:"Location to write the fingerprint"`
}

// Run the command
func (a *FingerprintCmd) Run(ctx *Cli) error {
	key, err := ctx.ReadInput(a.PublicKey)
	if err != nil {
		return err
	}

	fp, err := ctx.Provider().Fingerprint(dsig.KeyMaterial{Armor: string(key)}, a.PassPhrase)
	if err != nil {
		return err
	}

	return ctx.WriteOutput(a.Fingerprint, []byte(fp+"\n"), 0644)
}
