package dsig

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/dsig/gpg"
	"github.com/effective-security/dsig/metricskey"
	"github.com/effective-security/xlog"
)

// Sign returns a clear-signed signature document over the payload and the meta information.
// A nil payload is signed without the payload headers, and an empty meta information is omitted.
func (p *Provider) Sign(payload []byte, privateKey KeyMaterial, passPhrase string, metaInfo string) (string, error) {
	defer metricskey.PerfDSIGOperation.MeasureSince(time.Now(), "sign")

	key, err := p.engine.ParseKey(privateKey.Armor)
	if err != nil {
		return "", markf(ErrInvalidKey, err, "invalid private key")
	}

	identity := privateKey.Identity
	if identity == "" {
		identity = key.Comment()
	}
	if identity == "" {
		return "", markf(ErrInvalidKey, nil, "invalid private key (comment line not found)")
	}
	if !key.IsPrivate() {
		return "", markf(ErrInvalidKey, nil, "invalid private key (no private key material)")
	}

	if key, err = p.unlock(key, passPhrase); err != nil {
		return "", err
	}
	if err = p.engine.VerifyKeyIntegrity(key); err != nil {
		return "", markf(ErrInvalidKey, err, "invalid private key (integrity check failed)")
	}

	msg := &Message{
		Issued:   p.timeNow(),
		MetaInfo: metaInfo,
	}
	if payload != nil {
		msg.Payload = &PayloadInfo{
			Length: len(payload),
			Digest: p.engine.Hash(payload),
		}
	}

	armored, err := p.engine.ClearSign(EncodeMessage(msg), key, gpg.Annotation{
		Version: VersionLine(ProductSignature),
		Comment: identity,
	})
	if err != nil {
		return "", errors.WithMessage(err, "failed to sign")
	}

	logger.KV(xlog.NOTICE,
		"status", "signed",
		"identity", identity,
		"issued", msg.Issued.UTC().Format(IssuedLayout),
		"payload", payload != nil,
		"length", len(payload))

	return normalizeArmor(armored), nil
}

// normalizeArmor drops a leading blank line, and ends the text with a single line break
func normalizeArmor(armored string) string {
	if strings.HasPrefix(armored, "\r\n") {
		armored = armored[2:]
	} else if strings.HasPrefix(armored, "\n") {
		armored = armored[1:]
	}
	return strings.TrimRight(armored, "\r\n") + "\n"
}
