// Package gpg provides the OpenPGP engine used by the DSIG protocol.
//
// This package supports:
//   - Generating Curve25519 or NIST curve key pairs, optionally pass-phrase protected
//   - Armoring keys with explicit Version and Comment headers
//   - Parsing armored public and private keys, and decrypting private keys
//   - Computing key fingerprints and checking key self-integrity
//   - Producing and verifying OpenPGP clear-signed messages
//   - Computing payload digests
//
// The Engine holds no mutable state: armor annotations are passed with every
// call, so independent operations may run concurrently.
package gpg
