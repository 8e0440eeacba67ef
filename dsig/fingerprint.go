package dsig

import (
	"time"

	"github.com/effective-security/dsig/gpg"
	"github.com/effective-security/dsig/metricskey"
	"github.com/effective-security/xlog"
)

// Fingerprint returns the formatted fingerprint of a public or private key.
// A private key is decrypted with the pass-phrase before its integrity is checked.
func (p *Provider) Fingerprint(key KeyMaterial, passPhrase string) (string, error) {
	defer metricskey.PerfDSIGOperation.MeasureSince(time.Now(), "fingerprint")

	k, err := p.engine.ParseKey(key.Armor)
	if err != nil {
		return "", markf(ErrInvalidKey, err, "invalid key")
	}
	if k.IsPrivate() {
		if k, err = p.unlock(k, passPhrase); err != nil {
			return "", err
		}
	}
	if err = p.engine.VerifyKeyIntegrity(k); err != nil {
		return "", markf(ErrInvalidKey, err, "invalid key (integrity check failed)")
	}

	fp := FormatFingerprint(p.engine.Fingerprint(k))
	logger.KV(xlog.DEBUG, "fingerprint", fp, "private", k.IsPrivate())
	return fp, nil
}

// unlock decrypts the private key
func (p *Provider) unlock(k *gpg.Key, passPhrase string) (*gpg.Key, error) {
	k, err := p.engine.DecryptKey(k, passPhrase)
	if err != nil {
		return nil, markf(ErrBadPassphrase, err, "invalid private key (decryption failed)")
	}
	return k, nil
}
