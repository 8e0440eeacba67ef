package dsig

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/effective-security/dsig/metricskey"
	"github.com/effective-security/xlog"
)

// Verify checks the signature document with the public key, and returns the
// embedded meta information, or an empty string if there is none.
//
// A non-empty fingerprintPin must match the fingerprint of the public key,
// ignoring case and separators. If the payload is not nil, its digest must
// match the DSIG-Payload-Digest header; a nil payload skips the digest check.
func (p *Provider) Verify(payload []byte, signature string, publicKey KeyMaterial, fingerprintPin string) (string, error) {
	defer metricskey.PerfDSIGOperation.MeasureSince(time.Now(), "verify")

	key, err := p.engine.ParseKey(publicKey.Armor)
	if err != nil {
		return "", markf(ErrInvalidKey, err, "invalid public key")
	}
	if err = p.engine.VerifyKeyIntegrity(key); err != nil {
		return "", markf(ErrInvalidKey, err, "invalid public key (integrity check failed)")
	}

	fp := hex.EncodeToString(p.engine.Fingerprint(key))
	if fingerprintPin != "" && NormalizeFingerprint(fingerprintPin) != fp {
		return "", markf(ErrKeyMismatch, nil, "invalid public key (fingerprint does not match)")
	}

	res, err := p.engine.ClearVerify(signature, key)
	if err != nil {
		return "", markf(ErrInvalidSignature, err, "invalid digital signature")
	}
	if len(res.Signatures) != 1 {
		return "", markf(ErrInvalidSignature, nil, "invalid digital signature (expected one signature, found %d)", len(res.Signatures))
	}
	if sig := res.Signatures[0]; !sig.Valid {
		return "", markf(ErrInvalidSignature, sig.Err, "invalid digital signature")
	}

	msg, err := DecodeMessage(res.Plaintext)
	if err != nil {
		return "", err
	}

	if payload != nil {
		stored, ok := msg.Get(HeaderPayloadDigest)
		if !ok {
			return "", markf(ErrMissingDigest, nil, "%s header missing", HeaderPayloadDigest)
		}
		digest := strings.ToUpper(hex.EncodeToString(p.engine.Hash(payload)))
		if strings.ToUpper(StripSeparators(stored)) != digest {
			return "", markf(ErrDigestMismatch, nil, "%s does not match", HeaderPayloadDigest)
		}
	}

	issued, err := msg.Issued()
	if err != nil {
		logger.KV(xlog.WARNING, "reason", "issued", "err", err.Error())
	}
	logger.KV(xlog.NOTICE,
		"status", "verified",
		"fingerprint", FormatFingerprint(p.engine.Fingerprint(key)),
		"issued", issued.UTC().Format(IssuedLayout),
		"payload", payload != nil)

	return msg.MetaInfo, nil
}
