package dsig

import (
	"encoding/hex"
	"strings"
	"unicode"
)

const (
	// groupWidth is the number of hex characters between separators
	groupWidth = 4
	// wrapWidth is the number of formatted digest characters per line
	wrapWidth = 80
	// separator is inserted between hex groups
	separator = "-"
)

// FormatDigest renders the digest as uppercase hex in groups of 4, separated by "-",
// and wrapped into lines of 80 characters joined by CRLF and the continuation indent.
// A separator at the end of a line is dropped.
func FormatDigest(digest []byte) string {
	grouped := groupHex(digest)

	var lines []string
	for len(grouped) > wrapWidth {
		lines = append(lines, strings.TrimSuffix(grouped[:wrapWidth], separator))
		grouped = grouped[wrapWidth:]
	}
	lines = append(lines, grouped)

	return strings.Join(lines, crlf+continuationIndent)
}

// FormatFingerprint renders the fingerprint as uppercase hex in groups of 4,
// separated by "-".
func FormatFingerprint(fp []byte) string {
	return groupHex(fp)
}

// StripSeparators removes the separators and line breaks of a formatted
// digest or fingerprint.
func StripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// NormalizeFingerprint removes all non-hex characters from the fingerprint,
// and returns it in lower case.
func NormalizeFingerprint(fp string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f':
			return r
		case r >= 'A' && r <= 'F':
			return unicode.ToLower(r)
		}
		return -1
	}, fp)
}

func groupHex(b []byte) string {
	h := strings.ToUpper(hex.EncodeToString(b))

	var sb strings.Builder
	for i := 0; i < len(h); i += groupWidth {
		end := min(i+groupWidth, len(h))
		sb.WriteString(h[i:end])
		if end < len(h) {
			sb.WriteString(separator)
		}
	}
	return sb.String()
}
