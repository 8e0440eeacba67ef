// Package config provides the configuration of the dsig tools.
package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides, e.g. DSIG_KEYGEN_CURVE
const EnvPrefix = "dsig"

// DefaultTimeout is the default timeout of remote inputs, in seconds
const DefaultTimeout = 30

var validate = validator.New()

// Config of the dsig tools
type Config struct {
	// LogLevel is used when the log level is not set on the command line
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" split_words:"true"`

	// HTTP configures remote inputs
	HTTP HTTPConfig `json:"http" yaml:"http"`

	// Keygen configures generated keys
	Keygen KeygenConfig `json:"keygen" yaml:"keygen"`
}

// HTTPConfig configures the HTTP client for remote inputs
type HTTPConfig struct {
	// Timeout in seconds
	Timeout int `json:"timeout,omitempty" yaml:"timeout,omitempty" validate:"gte=0"`
	// UserAgent overrides the default User-Agent header
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty" split_words:"true"`
}

// KeygenConfig configures key generation
type KeygenConfig struct {
	// Curve is one of curve25519, p256, p384 or p521
	Curve string `json:"curve,omitempty" yaml:"curve,omitempty" validate:"omitempty,oneof=curve25519 p256 p384 p521"`
}

// TimeoutDuration returns the HTTP timeout
func (c *HTTPConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout: DefaultTimeout,
		},
		Keygen: KeygenConfig{
			Curve: "curve25519",
		},
	}
}

// Load returns the configuration from the file, with DSIG_* environment overrides.
// The file is decoded as JSON if it has .json suffix, and as YAML otherwise.
// With empty filename, the built-in configuration is used.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		if err := decodeFile(filename, cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.WithMessage(err, "failed to apply environment")
	}

	cfg.Keygen.Curve = strings.ToLower(cfg.Keygen.Curve)
	if err := validate.Struct(cfg); err != nil {
		return nil, errors.WithMessage(err, "invalid configuration")
	}

	return cfg, nil
}

func decodeFile(filename string, cfg *Config) error {
	cfr, err := os.Open(filename)
	if err != nil {
		return errors.WithStack(err)
	}
	defer cfr.Close()

	if strings.HasSuffix(filename, ".json") {
		err = json.NewDecoder(cfr).Decode(cfg)
	} else {
		err = yaml.NewDecoder(cfr).Decode(cfg)
	}
	if errors.Is(err, io.EOF) {
		// empty file
		return nil
	}
	if err != nil {
		return errors.WithMessagef(err, "failed to decode file: %s", filename)
	}
	return nil
}
