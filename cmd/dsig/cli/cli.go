package cli

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/dsig/config"
	"github.com/effective-security/dsig/dsig"
	"github.com/effective-security/dsig/gpg"
	"github.com/effective-security/dsig/internal/version"
	"github.com/effective-security/dsig/x/locator"
	"github.com/effective-security/xlog"
	"golang.org/x/net/context"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/dsig", "cli")

// DefaultLogLevel is used when neither the flag nor the configuration sets the level
const DefaultLogLevel = "error"

// Cli provides CLI context to run commands
type Cli struct {
	Cfg      string `help:"Location of the configuration file" type:"path"`
	Debug    bool   `short:"D" help:"Enable debug mode"`
	LogLevel string `short:"l" help:"Set the logging level (debug|info|warn|error)"`

	// Stdin is the source to read from, typically set to os.Stdin
	stdin io.Reader
	// Output is the destination for all output from the command, typically set to os.Stdout
	output io.Writer
	// ErrOutput is the destinaton for errors.
	// If not set, errors will be written to os.StdError
	errOutput io.Writer

	ctx      context.Context
	config   *config.Config
	provider *dsig.Provider
	locator  *locator.Locator
}

// Context for requests
func (c *Cli) Context() context.Context {
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	return c.ctx
}

// Reader is the source to read from, typically set to os.Stdin
func (c *Cli) Reader() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}

// WithReader allows to specify a custom reader
func (c *Cli) WithReader(reader io.Reader) *Cli {
	c.stdin = reader
	return c
}

// Writer returns a writer for control output
func (c *Cli) Writer() io.Writer {
	if c.output != nil {
		return c.output
	}
	return os.Stdout
}

// WithWriter allows to specify a custom writer
func (c *Cli) WithWriter(out io.Writer) *Cli {
	c.output = out
	return c
}

// ErrWriter returns a writer for control output
func (c *Cli) ErrWriter() io.Writer {
	if c.errOutput != nil {
		return c.errOutput
	}
	return os.Stderr
}

// WithErrWriter allows to specify a custom error writer
func (c *Cli) WithErrWriter(out io.Writer) *Cli {
	c.errOutput = out
	return c
}

// WithProvider allows to specify a custom DSIG provider
func (c *Cli) WithProvider(p *dsig.Provider) *Cli {
	c.provider = p
	return c
}

// AfterApply hook loads config
func (c *Cli) AfterApply(app *kong.Kong, vars kong.Vars) error {
	cfg, err := config.Load(c.Cfg)
	if err != nil {
		return err
	}
	c.config = cfg

	if c.Debug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		val := strings.TrimLeft(c.LogLevel, "=")
		if val == "" {
			val = cfg.LogLevel
		}
		if val == "" {
			val = DefaultLogLevel
		}
		l, err := xlog.ParseLevel(strings.ToUpper(val))
		if err != nil {
			return errors.WithStack(err)
		}
		xlog.SetGlobalLogLevel(l)
	}

	return nil
}

// Config returns the loaded configuration
func (c *Cli) Config() *config.Config {
	if c.config == nil {
		c.config = config.Default()
	}
	return c.config
}

// Provider returns the DSIG provider
func (c *Cli) Provider() *dsig.Provider {
	if c.provider == nil {
		curve := gpg.Curve(c.Config().Keygen.Curve)
		logger.KV(xlog.DEBUG, "curve", curve)
		c.provider = dsig.New(gpg.NewEngine(), dsig.WithCurve(curve))
	}
	return c.provider
}

// Locator returns the locator for inputs and outputs
func (c *Cli) Locator() *locator.Locator {
	if c.locator == nil {
		cfg := c.Config()
		userAgent := cfg.HTTP.UserAgent
		if userAgent == "" {
			userAgent = "dsig/" + version.Current().Version
		}
		c.locator = locator.New(
			locator.WithStdin(c.Reader()),
			locator.WithStdout(c.Writer()),
			locator.WithTimeout(cfg.HTTP.TimeoutDuration()),
			locator.WithUserAgent(userAgent),
		)
	}
	return c.locator
}

// ReadInput returns the content at the location
func (c *Cli) ReadInput(location string) ([]byte, error) {
	b, err := c.Locator().Read(c.Context(), location)
	if err != nil {
		return nil, errors.WithMessagef(err, "unable to read %q", location)
	}
	return b, nil
}

// WriteOutput stores the content at the location
func (c *Cli) WriteOutput(location string, content []byte, mode os.FileMode) error {
	if err := c.Locator().Write(location, content, mode); err != nil {
		return errors.WithMessagef(err, "unable to write %q", location)
	}
	return nil
}
