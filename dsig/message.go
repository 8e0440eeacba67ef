package dsig

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Header names
const (
	HeaderPrefix        = "DSIG-"
	HeaderIssued        = "DSIG-Issued"
	HeaderPayloadLength = "DSIG-Payload-Length"
	HeaderPayloadDigest = "DSIG-Payload-Digest"
)

// IssuedLayout is the ISO-8601 layout of the DSIG-Issued header
const IssuedLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	crlf               = "\r\n"
	continuationIndent = "    "
)

var headerLine = regexp.MustCompile(`^(DSIG-[a-zA-Z0-9-]+): *(.*)$`)

// PayloadInfo binds the payload into the message
type PayloadInfo struct {
	Length int
	Digest []byte
}

// Message is the body of a signature before it is clear-signed
type Message struct {
	Issued   time.Time
	Payload  *PayloadInfo
	MetaInfo string
}

// Header is a DSIG-* header of a signed message
type Header struct {
	Name  string
	Value string
}

// SignedMessage is the body recovered from a verified signature
type SignedMessage struct {
	// Headers in the order of appearance
	Headers []Header
	// MetaInfo is empty if the message carries none
	MetaInfo string
}

// Get returns the value of the header.
// If the header appears more than once, the last value wins.
func (m *SignedMessage) Get(name string) (string, bool) {
	for i := len(m.Headers) - 1; i >= 0; i-- {
		if m.Headers[i].Name == name {
			return m.Headers[i].Value, true
		}
	}
	return "", false
}

// Issued returns the time of the DSIG-Issued header
func (m *SignedMessage) Issued() (time.Time, error) {
	v, ok := m.Get(HeaderIssued)
	if !ok {
		return time.Time{}, errors.Errorf("%s header missing", HeaderIssued)
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, errors.WithMessagef(err, "invalid %s header", HeaderIssued)
	}
	return t, nil
}

// EncodeMessage returns the canonical text of the message, with CRLF line endings.
// Payload headers are omitted when the message has no payload.
func EncodeMessage(m *Message) []byte {
	var b strings.Builder

	b.WriteString(HeaderIssued + ": " + m.Issued.UTC().Format(IssuedLayout) + crlf)
	if m.Payload != nil {
		b.WriteString(HeaderPayloadLength + ": " + strconv.Itoa(m.Payload.Length) + crlf)
		b.WriteString(HeaderPayloadDigest + ":" + crlf)
		b.WriteString(continuationIndent + FormatDigest(m.Payload.Digest) + crlf)
	}
	if m.MetaInfo != "" {
		b.WriteString(crlf)
		b.WriteString(normalizeLineEndings(m.MetaInfo, crlf))
	}

	return []byte(b.String())
}

// DecodeMessage parses the header block and the meta information of the signed text.
// Header values spanning continuation lines are joined, and the meta information
// is returned with LF line endings.
func DecodeMessage(text []byte) (*SignedMessage, error) {
	lines := strings.Split(string(text), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	if !headerLine.MatchString(lines[0]) {
		return nil, markf(ErrMalformedMessage, nil, "invalid signature message (missing %s header)", HeaderPrefix)
	}

	m := new(SignedMessage)
	i := 0
	for i < len(lines) && lines[i] != "" {
		match := headerLine.FindStringSubmatch(lines[i])
		if match == nil {
			return nil, markf(ErrMalformedMessage, nil, "invalid signature message (unexpected line %d)", i+1)
		}

		value := match[2]
		for i++; i < len(lines) && isContinuation(lines[i]); i++ {
			value += strings.TrimLeft(lines[i], " ")
		}
		m.Headers = append(m.Headers, Header{
			Name:  match[1],
			Value: strings.TrimRight(value, " "),
		})
	}

	// the blank line separates the meta information
	if i+1 < len(lines) {
		m.MetaInfo = strings.Join(lines[i+1:], "\n")
	}

	return m, nil
}

func isContinuation(line string) bool {
	return strings.HasPrefix(line, " ") && strings.TrimLeft(line, " ") != ""
}

func normalizeLineEndings(s, eol string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\n", eol)
}
