package cli

import (
	"github.com/effective-security/dsig/dsig"
)

// SignCmd creates a digital signature
type SignCmd struct {
	PassPhrase string `short:"w" required:"" env:"DSIG_PASS_PHRASE" help:"Pass-phrase of the private key"`
	PrivateKey string `short:"k" required:"" help:"Location of the private key"`
	Signature  string `short:"s" required:"" help:"Location to store the digital signature"`
	Payload    string `short:"p" help:"Location of the payload"`
	MetaInfo   string `short:"i" help:"Location of the meta information"`
}

// Run the command
func (a *SignCmd) Run(ctx *Cli) error {
	key, err := ctx.ReadInput(a.PrivateKey)
	if err != nil {
		return err
	}

	var payload []byte
	if a.Payload != "" {
		if payload, err = ctx.ReadInput(a.Payload); err != nil {
			return err
		}
		if payload == nil {
			payload = []byte{}
		}
	}

	var metaInfo []byte
	if a.MetaInfo != "" {
		if metaInfo, err = ctx.ReadInput(a.MetaInfo); err != nil {
			return err
		}
	}

	sig, err := ctx.Provider().Sign(payload, dsig.KeyMaterial{Armor: string(key)}, a.PassPhrase, string(metaInfo))
	if err != nil {
		return err
	}

	return ctx.WriteOutput(a.Signature, []byte(sig), 0644)
}
