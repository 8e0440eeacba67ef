package cli

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/dsig/dsig"
	"github.com/effective-security/xlog"
)

// VerifyCmd verifies a digital signature
type VerifyCmd struct {
	Payload     string `short:"p" help:"Location of the payload"`
	Signature   string `short:"s" required:"" help:"Location of the digital signature"`
	PublicKey   string `short:"k" required:"" help:"Location of the public key"`
	Fingerprint string `short:"f" help:"Location of the expected fingerprint of the public key"`
	MetaInfo    string `short:"i" help:"Location to write the meta information"`
}

// Run the command
func (a *VerifyCmd) Run(ctx *Cli) error {
	var (
		payload []byte
		err     error
	)
	if a.Payload != "" {
		if payload, err = ctx.ReadInput(a.Payload); err != nil {
			return err
		}
		if payload == nil {
			payload = []byte{}
		}
	}

	sig, err := ctx.ReadInput(a.Signature)
	if err != nil {
		return err
	}
	key, err := ctx.ReadInput(a.PublicKey)
	if err != nil {
		return err
	}

	var pin string
	if a.Fingerprint != "" {
		fp, err := ctx.ReadInput(a.Fingerprint)
		if err != nil {
			return err
		}
		pin = strings.TrimSpace(string(fp))
		if pin == "" {
			return errors.Errorf("empty fingerprint: %s", a.Fingerprint)
		}
	}

	metaInfo, err := ctx.Provider().Verify(payload, string(sig), dsig.KeyMaterial{Armor: string(key)}, pin)
	if err != nil {
		return err
	}

	logger.KV(xlog.INFO, "status", "verified", "signature", a.Signature, "pinned", pin != "")

	if metaInfo != "" && a.MetaInfo != "" {
		return ctx.WriteOutput(a.MetaInfo, []byte(metaInfo), 0644)
	}
	return nil
}
