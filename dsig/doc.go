// Package dsig implements the DSIG digital signature protocol on top of OpenPGP.
//
// A DSIG signature is an OpenPGP clear-signed document whose signed body is a
// block of DSIG-* header lines, optionally followed by a blank line and free-form
// meta information:
//
//	DSIG-Issued: 2020-01-02T03:04:05.678Z
//	DSIG-Payload-Length: 11
//	DSIG-Payload-Digest:
//	    309E-CC48-9C12-D6EB-4CC4-0F50-C902-F2B4-D0ED-77EE-511A-7C7A-9BCD-3CA8-6D4C-D86F
//	    989D-D35B-C5FF-4996-70DA-3425-5B45-B0CF-D830-E81F-605D-CF7D-C554-2E93-AE9C-D76F
//
//	purpose: test
//
// The payload itself is not part of the document: it is bound by its length
// and SHA-512 digest, and verification recomputes the digest.
//
// The Provider orchestrates key generation, signing and verification over an
// Engine. It holds no mutable state, and its methods may be called concurrently.
package dsig
