package gpg

import (
	"bytes"
	"io"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/clearsign"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

// signatureBlockType is the armor type of the signature in a clear-signed message
const signatureBlockType = "PGP SIGNATURE"

// signatureTag is the OpenPGP packet tag of a signature packet
const signatureTag = 2

// Signature is a single signature entry found in a clear-signed message
type Signature struct {
	// Valid is true when the signature verified against the key
	Valid bool
	// Err is the reason the signature did not verify
	Err error
}

// VerifyResult is the outcome of a clear-signed message verification
type VerifyResult struct {
	// Plaintext is the canonical signed text, with CRLF line endings
	Plaintext []byte
	// Signatures has an entry per signature packet in the message
	Signatures []Signature
}

// ClearSign produces an armored clear-signed message over the plaintext.
// The key must be a decrypted private key.
func (e *Engine) ClearSign(plaintext []byte, k *Key, ann Annotation) (string, error) {
	if !k.IsPrivate() {
		return "", errors.New("not a private key")
	}
	if k.IsEncrypted() {
		return "", errors.New("private key is encrypted")
	}

	var buf bytes.Buffer
	w, err := clearsign.Encode(&buf, k.entity.PrivateKey, e.config())
	if err != nil {
		return "", errors.WithMessage(err, "failed to clear-sign")
	}
	if _, err = w.Write(plaintext); err != nil {
		return "", errors.WithStack(err)
	}
	if err = w.Close(); err != nil {
		return "", errors.WithMessage(err, "failed to clear-sign")
	}

	return annotateArmor(buf.String(), signatureBlockType, ann), nil
}

// ClearVerify parses the armored clear-signed message and verifies
// every signature it carries against the key.
func (e *Engine) ClearVerify(armored string, k *Key) (*VerifyResult, error) {
	block, _ := clearsign.Decode([]byte(armored))
	if block == nil {
		return nil, errors.New("no clear-signed message found")
	}

	sigData, err := io.ReadAll(block.ArmoredSignature.Body)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to read signature")
	}

	sigs, err := splitSignatures(sigData)
	if err != nil {
		return nil, err
	}

	res := &VerifyResult{
		Plaintext: block.Bytes,
	}
	keyring := openpgp.EntityList{k.entity}
	for _, sig := range sigs {
		_, err := openpgp.CheckDetachedSignature(keyring, bytes.NewReader(block.Bytes), bytes.NewReader(sig), e.config())
		if err != nil {
			logger.KV(xlog.DEBUG, "reason", "check_signature", "err", err.Error())
		}
		res.Signatures = append(res.Signatures, Signature{
			Valid: err == nil,
			Err:   err,
		})
	}

	return res, nil
}

// splitSignatures returns the raw signature packets from the data
func splitSignatures(data []byte) ([][]byte, error) {
	var sigs [][]byte
	r := packet.NewOpaqueReader(bytes.NewReader(data))
	for {
		p, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WithMessage(err, "failed to read signature packet")
		}
		if p.Tag != signatureTag {
			continue
		}

		var buf bytes.Buffer
		if err = p.Serialize(&buf); err != nil {
			return nil, errors.WithStack(err)
		}
		sigs = append(sigs, buf.Bytes())
	}
	return sigs, nil
}

// annotateArmor inserts the annotation headers into the armor block of the given type.
// Armor headers are not covered by the signature.
func annotateArmor(armored, blockType string, ann Annotation) string {
	headers := ann.headers()
	if len(headers) == 0 {
		return armored
	}

	begin := "-----BEGIN " + blockType + "-----\n"
	idx := strings.Index(armored, begin)
	if idx < 0 {
		return armored
	}
	pos := idx + len(begin)

	var b strings.Builder
	b.WriteString(armored[:pos])
	for _, name := range []string{HeaderVersion, HeaderComment} {
		if v, ok := headers[name]; ok {
			b.WriteString(name + ": " + v + "\n")
		}
	}
	b.WriteString(armored[pos:])
	return b.String()
}
