// Package locator reads and writes content by location.
//
// Input locations:
//
//	-, stdin:            standard input
//	data:<text>          the literal text
//	http://, https://    remote content
//	file:<path>, <path>  local file
//
// Output locations:
//
//	-, stdout:           standard output
//	file:<path>, <path>  local file
package locator

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/hashicorp/go-cleanhttp"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/dsig/x", "locator")

// Location prefixes
const (
	Stdin      = "stdin:"
	Stdout     = "stdout:"
	DataPrefix = "data:"
	FilePrefix = "file:"
)

// Locator resolves input and output locations
type Locator struct {
	stdin     io.Reader
	stdout    io.Writer
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures the Locator
type Option func(*Locator)

// WithStdin sets the reader for standard input
func WithStdin(r io.Reader) Option {
	return func(l *Locator) {
		l.stdin = r
	}
}

// WithStdout sets the writer for standard output
func WithStdout(w io.Writer) Option {
	return func(l *Locator) {
		l.stdout = w
	}
}

// WithHTTPClient sets the client for remote inputs
func WithHTTPClient(c *http.Client) Option {
	return func(l *Locator) {
		l.client = c
	}
}

// WithTimeout sets the timeout of remote inputs.
// The client given to WithHTTPClient is not modified.
func WithTimeout(timeout time.Duration) Option {
	return func(l *Locator) {
		l.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header of remote requests
func WithUserAgent(userAgent string) Option {
	return func(l *Locator) {
		l.userAgent = userAgent
	}
}

// New returns a Locator
func New(opts ...Option) *Locator {
	l := &Locator{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		client: cleanhttp.DefaultPooledClient(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.timeout > 0 {
		client := *l.client
		client.Timeout = l.timeout
		l.client = &client
	}
	return l
}

// Read returns the content at the location
func (l *Locator) Read(ctx context.Context, location string) ([]byte, error) {
	switch {
	case location == "-" || location == Stdin:
		logger.KV(xlog.DEBUG, "read", "stdin")
		b, err := io.ReadAll(l.stdin)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to read stdin")
		}
		return b, nil

	case strings.HasPrefix(location, DataPrefix) && len(location) > len(DataPrefix):
		logger.KV(xlog.DEBUG, "read", "data")
		return []byte(location[len(DataPrefix):]), nil

	case isURL(location):
		return l.fetch(ctx, location)
	}

	path := filePath(location)
	logger.KV(xlog.DEBUG, "read", "file", "path", path)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}

// Write stores the content at the location.
// A file is created with the given mode, or has its mode changed if it exists.
func (l *Locator) Write(location string, content []byte, mode os.FileMode) error {
	if location == "-" || location == Stdout {
		logger.KV(xlog.DEBUG, "write", "stdout", "size", len(content))
		_, err := l.stdout.Write(content)
		return errors.WithStack(err)
	}

	path := filePath(location)
	logger.KV(xlog.DEBUG, "write", "file", "path", path, "size", len(content))
	if err := os.WriteFile(path, content, mode); err != nil {
		return errors.WithStack(err)
	}
	if err := os.Chmod(path, mode); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (l *Locator) fetch(ctx context.Context, url string) ([]byte, error) {
	logger.KV(xlog.DEBUG, "read", "url", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to fetch: %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("failed to fetch: %s: %s", url, resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to read response: %s", url)
	}
	return b, nil
}

func isURL(location string) bool {
	for _, scheme := range []string{"http://", "https://"} {
		if strings.HasPrefix(location, scheme) && len(location) > len(scheme) {
			return true
		}
	}
	return false
}

// filePath strips the file: or file:// prefix
func filePath(location string) string {
	if !strings.HasPrefix(location, FilePrefix) {
		return location
	}
	return strings.TrimPrefix(location[len(FilePrefix):], "//")
}
