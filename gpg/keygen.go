package gpg

import (
	"bytes"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

// Curve specifies the elliptic curve of generated keys
type Curve string

// Supported curves
const (
	Curve25519 Curve = "curve25519"
	CurveP256  Curve = "p256"
	CurveP384  Curve = "p384"
	CurveP521  Curve = "p521"
)

// SupportedCurves lists the curves accepted by GenerateKey
var SupportedCurves = []Curve{Curve25519, CurveP256, CurveP384, CurveP521}

func (e *Engine) keyConfig(curve Curve) (*packet.Config, error) {
	cfg := e.config()
	switch Curve(strings.ToLower(string(curve))) {
	case "", Curve25519:
		cfg.Algorithm = packet.PubKeyAlgoEdDSA
		cfg.Curve = packet.Curve25519
	case CurveP256:
		cfg.Algorithm = packet.PubKeyAlgoECDSA
		cfg.Curve = packet.CurveNistP256
	case CurveP384:
		cfg.Algorithm = packet.PubKeyAlgoECDSA
		cfg.Curve = packet.CurveNistP384
	case CurveP521:
		cfg.Algorithm = packet.PubKeyAlgoECDSA
		cfg.Curve = packet.CurveNistP521
	default:
		return nil, errors.Errorf("unsupported curve: %s", curve)
	}
	return cfg, nil
}

// GenerateKey creates a new key pair for the identity.
// If the pass-phrase is not empty, the private key material is encrypted with it.
func (e *Engine) GenerateKey(id Identity, passphrase string, curve Curve) (*Key, error) {
	cfg, err := e.keyConfig(curve)
	if err != nil {
		return nil, err
	}

	ent, err := openpgp.NewEntity(id.Name, "", id.Email, cfg)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to generate key")
	}

	if passphrase != "" {
		if err = ent.EncryptPrivateKeys([]byte(passphrase), cfg); err != nil {
			return nil, errors.WithMessage(err, "failed to encrypt private key")
		}
	} else {
		logger.KV(xlog.WARNING, "reason", "no_passphrase", "key", ent.PrimaryKey.KeyIdString())
	}

	return &Key{
		entity:  ent,
		headers: map[string]string{},
	}, nil
}

// ArmorKey returns the armored public or private key,
// with the annotation as Version and Comment headers.
func (e *Engine) ArmorKey(k *Key, private bool, ann Annotation) (string, error) {
	blockType := openpgp.PublicKeyType
	if private {
		if !k.IsPrivate() {
			return "", errors.New("not a private key")
		}
		blockType = openpgp.PrivateKeyType
	}

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, blockType, ann.headers())
	if err != nil {
		return "", errors.WithStack(err)
	}

	if private {
		// self-signatures are already in place, and an encrypted key cannot re-sign them
		err = k.entity.SerializePrivateWithoutSigning(w, nil)
	} else {
		err = k.entity.Serialize(w)
	}
	if err != nil {
		return "", errors.WithMessage(err, "failed to serialize key")
	}
	if err = w.Close(); err != nil {
		return "", errors.WithStack(err)
	}
	buf.WriteByte('\n')

	return buf.String(), nil
}
