// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/understory-cli/understory/lib/understory"
)

// Environment variable names read by [Load].
const (
	EnvClientID  = "UNDERSTORY_CLIENT_ID"
	EnvSecretKey = "UNDERSTORY_SECRET_KEY"
	EnvScopes    = "UNDERSTORY_SCOPES"
	EnvConfig    = "UNDERSTORY_CONFIG"
)

// Defaults for the public Understory API.
const (
	DefaultBaseURL  = understory.DefaultBaseURL
	DefaultTokenURL = understory.DefaultTokenURL
	DefaultAudience = understory.DefaultAudience
	DefaultScopes   = understory.DefaultScopes
	DefaultTimeout  = 30 * time.Second
	DefaultPageSize = 100
)

// Output formats accepted in output.format and by --format.
const (
	FormatJSON  = "json"
	FormatTable = "table"
	FormatYAML  = "yaml"
)

// Config is the complete CLI configuration.
type Config struct {
	// API configures the remote endpoints and request behavior.
	API APIConfig `yaml:"api" json:"api"`

	// Output configures result rendering.
	Output OutputConfig `yaml:"output" json:"output"`

	// Credentials are read from the environment only. They are never
	// read from or written to the config file.
	Credentials Credentials `yaml:"-" json:"-"`
}

// APIConfig configures the Understory API endpoints.
type APIConfig struct {
	// BaseURL is the root URL for resource requests. Must use HTTPS.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// TokenURL is the OAuth2 token endpoint.
	TokenURL string `yaml:"token_url" json:"token_url"`

	// Audience is sent with the client-credentials exchange.
	Audience string `yaml:"audience" json:"audience"`

	// Scopes is the space-separated scope list requested with every
	// token. UNDERSTORY_SCOPES overrides it when set.
	Scopes string `yaml:"scopes" json:"scopes"`

	// Timeout bounds each HTTP request (token exchange included).
	Timeout Duration `yaml:"timeout" json:"timeout"`

	// PageSize is the limit used when aggregations traverse full
	// collections.
	PageSize int `yaml:"page_size" json:"page_size"`
}

// OutputConfig configures how results are rendered.
type OutputConfig struct {
	// Format is one of json, table, or yaml.
	Format string `yaml:"format" json:"format"`

	// Color enables styled output when stdout is a terminal.
	Color bool `yaml:"color" json:"color"`
}

// Credentials identify the API client for the client-credentials grant.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Complete reports whether both the client id and secret are present.
func (c Credentials) Complete() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Duration is a time.Duration that reads and writes as a Go duration
// string ("30s", "2m") in both YAML and JSON.
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText renders the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the built-in configuration. Every field has a usable
// value, so the CLI works with no config file at all.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:  DefaultBaseURL,
			TokenURL: DefaultTokenURL,
			Audience: DefaultAudience,
			Scopes:   DefaultScopes,
			Timeout:  Duration(DefaultTimeout),
			PageSize: DefaultPageSize,
		},
		Output: OutputConfig{
			Format: FormatJSON,
			Color:  true,
		},
	}
}

// LoadOptions controls where [Load] reads from.
type LoadOptions struct {
	// Path is the config file given with --config. When empty,
	// UNDERSTORY_CONFIG is consulted; when that is also unset, no
	// file is read.
	Path string

	// DotEnvPath is the dotenv file merged beneath the process
	// environment. Defaults to ".env". A missing file is not an error.
	DotEnvPath string

	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load builds the configuration in three layers: built-in defaults, the
// optional config file, and the environment. Variables from the dotenv
// file apply only where the process environment does not set them.
func Load(options LoadOptions) (*Config, error) {
	lookup := options.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	dotEnvPath := options.DotEnvPath
	if dotEnvPath == "" {
		dotEnvPath = ".env"
	}
	dotEnv, err := readDotEnv(dotEnvPath)
	if err != nil {
		return nil, err
	}
	env := func(name string) (string, bool) {
		if value, ok := lookup(name); ok {
			return value, true
		}
		value, ok := dotEnv[name]
		return value, ok
	}

	cfg := Default()

	path := options.Path
	if path == "" {
		path, _ = env(EnvConfig)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Credentials.ClientID, _ = env(EnvClientID)
	cfg.Credentials.ClientSecret, _ = env(EnvSecretKey)
	if scopes, ok := env(EnvScopes); ok {
		cfg.API.Scopes = scopes
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads defaults overlaid with a single config file, without
// consulting the environment.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile merges a config file into c. Files ending in .json or .jsonc
// are parsed as JSON with comments and trailing commas allowed; anything
// else is parsed as YAML. Unknown keys are rejected in both formats.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(c); err != nil {
			return fmt.Errorf("parsing config file %s: %w", path, err)
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	return nil
}

// readDotEnv parses a dotenv file without touching the process
// environment. A missing file yields an empty map.
func readDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return values, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("api.base_url is required"))
	}
	if c.API.TokenURL == "" {
		errs = append(errs, fmt.Errorf("api.token_url is required"))
	}
	if time.Duration(c.API.Timeout) <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive"))
	}
	if c.API.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("api.page_size must be positive"))
	}
	if !ValidFormat(c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be json, table, or yaml (got %q)", c.Output.Format))
	}

	return errors.Join(errs...)
}

// ValidFormat reports whether format names a supported output format.
func ValidFormat(format string) bool {
	switch format {
	case FormatJSON, FormatTable, FormatYAML:
		return true
	}
	return false
}
