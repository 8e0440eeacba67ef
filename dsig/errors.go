package dsig

import (
	"github.com/cockroachdb/errors"
)

// Key errors.
var (
	// ErrInvalidKey is returned when a key cannot be parsed, fails the
	// self-integrity check, or a private key has no identity annotation.
	ErrInvalidKey = errors.New("invalid key")

	// ErrBadPassphrase is returned when a private key cannot be decrypted.
	ErrBadPassphrase = errors.New("bad pass-phrase")

	// ErrKeyMismatch is returned when the fingerprint pin does not match the key.
	ErrKeyMismatch = errors.New("fingerprint does not match")
)

// Signature errors.
var (
	// ErrInvalidSignature is returned when the clear-signed document does not
	// carry exactly one valid signature by the key.
	ErrInvalidSignature = errors.New("invalid digital signature")

	// ErrMalformedMessage is returned when the signed body does not match the
	// DSIG header block grammar.
	ErrMalformedMessage = errors.New("invalid signature message")
)

// Digest errors.
var (
	// ErrMissingDigest is returned when a payload is verified against a signature
	// without a DSIG-Payload-Digest header.
	ErrMissingDigest = errors.New(HeaderPayloadDigest + " header missing")

	// ErrDigestMismatch is returned when the payload digest differs from the
	// DSIG-Payload-Digest header.
	ErrDigestMismatch = errors.New(HeaderPayloadDigest + " does not match")
)

// markf classifies the failure as the given kind,
// keeping the cause when one is provided.
func markf(kind, cause error, format string, args ...any) error {
	var err error
	if cause != nil {
		err = errors.WithMessagef(cause, format, args...)
	} else {
		err = errors.Newf(format, args...)
	}
	return errors.Mark(err, kind)
}
