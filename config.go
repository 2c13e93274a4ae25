package yatranslate

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the file form of the client options.
//
//	api_key: ${YANDEX_TRANSLATE_KEY}
//	format: xml
//	timeout: 30s
type Config struct {
	APIKey    string        `yaml:"api_key"`    // Expanded against the environment
	Format    string        `yaml:"format"`     // "json" (default) or "xml"
	BaseURL   string        `yaml:"base_url"`   // Overrides the Yandex endpoint
	UserAgent string        `yaml:"user_agent"` // Overrides the default User-Agent
	Proxy     string        `yaml:"proxy"`      // Proxy URL for every request
	Timeout   time.Duration `yaml:"timeout"`    // HTTP client timeout
	Trace     bool          `yaml:"trace"`      // Dump requests and responses
}

// LoadConfig decodes a YAML configuration. Unknown keys are rejected.
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.APIKey = os.ExpandEnv(cfg.APIKey)
	return &cfg, nil
}

// LoadConfigFile reads and decodes the YAML configuration at path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadConfig(f)
}

// ParseFormat parses a format name, case-insensitively. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "xml":
		return FormatXML, nil
	default:
		return FormatJSON, fmt.Errorf("unknown format: %s (supported: json, xml)", s)
	}
}

// Options converts the configuration into client options.
func (cfg *Config) Options() ([]Option, error) {
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithFormat(format)}

	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, WithUserAgent(cfg.UserAgent))
	}
	if cfg.Proxy != "" {
		proxy, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy: %w", err)
		}
		opts = append(opts, WithProxy(*proxy))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithTimeout(cfg.Timeout))
	}
	if cfg.Trace {
		opts = append(opts, WithTrace())
	}
	return opts, nil
}

// NewClientFromConfig creates a client from cfg. Extra options are applied after
// the configured ones.
func NewClientFromConfig(cfg *Config, opts ...Option) (*Client, error) {
	cfgOpts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return NewClient(cfg.APIKey, append(cfgOpts, opts...)...)
}
