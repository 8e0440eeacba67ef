package dsig

import (
	"time"

	"github.com/effective-security/dsig/gpg"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/dsig", "dsig")

// ProtocolVersion is the version of the DSIG protocol
const ProtocolVersion = "1.0.0"

// Products named in the Version armor header
const (
	ProductSignature  = "OpenPGP Digital Signature"
	ProductPrivateKey = "OpenPGP Private Key"
	ProductPublicKey  = "OpenPGP Public Key"
)

// VersionLine returns the Version armor header value for the product
func VersionLine(product string) string {
	return HeaderPrefix + ProtocolVersion + " " + product
}

// Engine provides the OpenPGP operations the protocol is built on
type Engine interface {
	// GenerateKey creates a key pair, protected by the pass-phrase if not empty
	GenerateKey(id gpg.Identity, passphrase string, curve gpg.Curve) (*gpg.Key, error)
	// ArmorKey returns the armored private or public part of the key
	ArmorKey(key *gpg.Key, private bool, ann gpg.Annotation) (string, error)
	// ParseKey reads an armored public or private key
	ParseKey(armored string) (*gpg.Key, error)
	// DecryptKey decrypts the private key material
	DecryptKey(key *gpg.Key, passphrase string) (*gpg.Key, error)
	// VerifyKeyIntegrity checks the self-integrity of the key
	VerifyKeyIntegrity(key *gpg.Key) error
	// Fingerprint returns the 20 bytes fingerprint of the primary key
	Fingerprint(key *gpg.Key) []byte
	// Hash returns the digest of the data
	Hash(data []byte) []byte
	// ClearSign returns the armored clear-signed plaintext
	ClearSign(plaintext []byte, key *gpg.Key, ann gpg.Annotation) (string, error)
	// ClearVerify verifies the armored clear-signed message
	ClearVerify(armored string, key *gpg.Key) (*gpg.VerifyResult, error)
}

// Provider implements the DSIG operations
type Provider struct {
	engine  Engine
	curve   gpg.Curve
	timeNow func() time.Time
}

// Option configures the Provider
type Option func(*Provider)

// WithCurve sets the curve of generated keys
func WithCurve(curve gpg.Curve) Option {
	return func(p *Provider) {
		p.curve = curve
	}
}

// WithTimeNow sets the clock for the DSIG-Issued header
func WithTimeNow(fn func() time.Time) Option {
	return func(p *Provider) {
		p.timeNow = fn
	}
}

// New returns a Provider on the engine
func New(engine Engine, opts ...Option) *Provider {
	p := &Provider{
		engine:  engine,
		curve:   gpg.Curve25519,
		timeNow: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
