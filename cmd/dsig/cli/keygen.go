package cli

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// KeygenCmd generates a key pair
type KeygenCmd struct {
	UserName   string `short:"n" required:"" help:"Full name of the user" validate:"required"`
	UserEmail  string `short:"m" required:"" help:"Email address of the user" validate:"required,email"`
	PassPhrase string `short:"w" required:"" env:"DSIG_PASS_PHRASE" help:"Pass-phrase for the private key, empty for an unprotected key"`
	PrivateKey string `short:"k" required:"" help:"Location to store the private key"`
	PublicKey  string `short:"p" required:"" help:"Location to store the public key"`
}

// Run the command
func (a *KeygenCmd) Run(ctx *Cli) error {
	if err := validate.Struct(a); err != nil {
		return errors.WithMessage(err, "invalid user identity")
	}

	keys, err := ctx.Provider().KeyGen(a.UserName, a.UserEmail, a.PassPhrase)
	if err != nil {
		return err
	}

	if err = ctx.WriteOutput(a.PrivateKey, []byte(keys.PrivateKey.Armor), 0600); err != nil {
		return err
	}
	if err = ctx.WriteOutput(a.PublicKey, []byte(keys.PublicKey.Armor), 0644); err != nil {
		return err
	}

	logger.KV(xlog.INFO, "fingerprint", keys.PublicKey.Fingerprint, "public_key", a.PublicKey)
	return nil
}
