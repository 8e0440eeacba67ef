package gpg

import (
	"crypto"
	_ "crypto/sha512" // register SHA-512
	"strings"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/dsig", "gpg")

// Armor header names
const (
	HeaderVersion = "Version"
	HeaderComment = "Comment"
)

// DefaultHash is used for clear-sign signatures and payload digests
const DefaultHash = crypto.SHA512

// Annotation provides the cosmetic Version and Comment armor headers.
// The values are not covered by any signature.
type Annotation struct {
	Version string
	Comment string
}

func (a Annotation) headers() map[string]string {
	h := map[string]string{}
	if v := singleLine(a.Version); v != "" {
		h[HeaderVersion] = v
	}
	if v := singleLine(a.Comment); v != "" {
		h[HeaderComment] = v
	}
	return h
}

func singleLine(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
}

// Identity of a key owner
type Identity struct {
	Name  string
	Email string
}

// Engine implements OpenPGP operations on ProtonMail/go-crypto.
type Engine struct {
	hash     crypto.Hash
	s2kCount int
	timeNow  func() time.Time
}

// Option configures the Engine
type Option func(*Engine)

// WithS2KCount sets the iteration count of the pass-phrase key derivation
// used when protecting generated private keys.
func WithS2KCount(count int) Option {
	return func(e *Engine) {
		e.s2kCount = count
	}
}

// WithTimeNow sets the clock used for key generation, signing and validity checks
func WithTimeNow(fn func() time.Time) Option {
	return func(e *Engine) {
		e.timeNow = fn
	}
}

// NewEngine returns a new Engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		hash:    DefaultHash,
		timeNow: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) now() time.Time {
	return e.timeNow()
}

// config returns a new packet configuration for a single call
func (e *Engine) config() *packet.Config {
	return &packet.Config{
		DefaultHash: e.hash,
		Time:        e.timeNow,
		S2KCount:    e.s2kCount,
	}
}

// Hash returns the digest of the data
func (e *Engine) Hash(data []byte) []byte {
	h := e.hash.New()
	_, _ = h.Write(data)
	return h.Sum(nil)
}
