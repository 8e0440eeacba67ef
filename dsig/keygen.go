package dsig

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/dsig/gpg"
	"github.com/effective-security/dsig/metricskey"
	"github.com/effective-security/xlog"
)

// KeyMaterial is an armored public or private key
type KeyMaterial struct {
	// Armor is the armored key
	Armor string
	// Identity is the annotated identity "Name <email> [fingerprint]".
	// When empty, the Comment header of the armor is used.
	Identity string
	// Fingerprint is the formatted fingerprint
	Fingerprint string
	// Private is true for a private key
	Private bool
}

// KeyPair is a generated private and public key
type KeyPair struct {
	PrivateKey KeyMaterial
	PublicKey  KeyMaterial
}

// AnnotatedIdentity returns the identity comment of a key
func AnnotatedIdentity(userName, userEmail, fingerprint string) string {
	return fmt.Sprintf("%s <%s> [%s]", userName, userEmail, fingerprint)
}

// KeyGen generates a key pair, with the private key protected by the pass-phrase.
// Both armored keys carry the annotated identity as their Comment header.
func (p *Provider) KeyGen(userName, userEmail, passPhrase string) (*KeyPair, error) {
	defer metricskey.PerfDSIGOperation.MeasureSince(time.Now(), "keygen")

	key, err := p.engine.GenerateKey(gpg.Identity{Name: userName, Email: userEmail}, passPhrase, p.curve)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to generate key pair")
	}

	fp := FormatFingerprint(p.engine.Fingerprint(key))
	identity := AnnotatedIdentity(userName, userEmail, fp)

	privateKey, err := p.engine.ArmorKey(key, true, gpg.Annotation{
		Version: VersionLine(ProductPrivateKey),
		Comment: identity,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "failed to export private key")
	}

	publicKey, err := p.engine.ArmorKey(key, false, gpg.Annotation{
		Version: VersionLine(ProductPublicKey),
		Comment: identity,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "failed to export public key")
	}

	logger.KV(xlog.NOTICE, "status", "key_generated", "fingerprint", fp, "curve", p.curve)

	return &KeyPair{
		PrivateKey: KeyMaterial{
			Armor:       privateKey,
			Identity:    identity,
			Fingerprint: fp,
			Private:     true,
		},
		PublicKey: KeyMaterial{
			Armor:       publicKey,
			Identity:    identity,
			Fingerprint: fp,
		},
	}, nil
}
