package gpg

import (
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

// Key is a parsed OpenPGP key together with the headers of its armor block.
type Key struct {
	entity  *openpgp.Entity
	headers map[string]string
}

// IsPrivate returns true if the key carries private key material
func (k *Key) IsPrivate() bool {
	return k.entity.PrivateKey != nil
}

// IsEncrypted returns true if the private key material is pass-phrase protected
func (k *Key) IsEncrypted() bool {
	return k.IsPrivate() && k.entity.PrivateKey.Encrypted
}

// Header returns the value of the armor header with the given name,
// or an empty string if the header is not present.
func (k *Key) Header(name string) string {
	return k.headers[name]
}

// Comment returns the annotated identity carried in the Comment armor header.
func (k *Key) Comment() string {
	return strings.TrimSpace(k.Header(HeaderComment))
}

// ParseKey reads the first OpenPGP key from the given armored text.
// Both public and private key blocks are accepted.
func (e *Engine) ParseKey(armored string) (*Key, error) {
	block, err := armor.Decode(strings.NewReader(armored))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to decode armor")
	}

	if block.Type != openpgp.PublicKeyType && block.Type != openpgp.PrivateKeyType {
		return nil, errors.Errorf("unexpected armor block: %s", block.Type)
	}

	el, err := openpgp.ReadKeyRing(block.Body)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to read key")
	}
	if len(el) == 0 {
		return nil, errors.New("no key found")
	}
	if len(el) > 1 {
		logger.KV(xlog.DEBUG, "reason", "multiple_keys", "count", len(el))
	}

	return &Key{
		entity:  el[0],
		headers: block.Header,
	}, nil
}

// DecryptKey decrypts the private key material with the pass-phrase.
// A key that is not encrypted is returned as is.
func (e *Engine) DecryptKey(k *Key, passphrase string) (*Key, error) {
	if !k.IsPrivate() {
		return nil, errors.New("not a private key")
	}
	if !k.IsEncrypted() {
		return k, nil
	}
	if err := k.entity.DecryptPrivateKeys([]byte(passphrase)); err != nil {
		return nil, errors.WithMessage(err, "failed to decrypt private key")
	}
	return k, nil
}

// Fingerprint returns the fingerprint of the primary key
func (e *Engine) Fingerprint(k *Key) []byte {
	return append([]byte{}, k.entity.PrimaryKey.Fingerprint...)
}

// VerifyKeyIntegrity checks that the primary key is neither revoked nor
// expired, and that its primary user ID carries a valid self-signature.
func (e *Engine) VerifyKeyIntegrity(k *Key) error {
	ent := k.entity
	if ent.PrimaryKey == nil {
		return errors.New("missing primary key")
	}
	if len(ent.Revocations) > 0 {
		return errors.New("primary key is revoked")
	}

	ident := ent.PrimaryIdentity()
	if ident == nil || ident.UserId == nil || ident.SelfSignature == nil {
		return errors.New("missing self-signed user ID")
	}
	if len(ident.Revocations) > 0 {
		return errors.Errorf("user ID is revoked: %s", ident.Name)
	}

	err := ent.PrimaryKey.VerifyUserIdSignature(ident.UserId.Id, ent.PrimaryKey, ident.SelfSignature)
	if err != nil {
		return errors.WithMessagef(err, "invalid self-signature on user ID: %s", ident.Name)
	}

	now := e.now()
	if ent.PrimaryKey.KeyExpired(ident.SelfSignature, now) {
		return errors.New("primary key is expired")
	}
	if ident.SelfSignature.SigExpired(now) {
		return errors.New("self-signature is expired")
	}
	return nil
}
