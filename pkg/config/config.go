// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/telemetryoff/pkg/patch"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// DefaultScanConcurrency bounds the files read at once by the check command
const DefaultScanConcurrency = 8

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Redirect is an extra endpoint literal to point at the local authority
type Redirect struct {
	From string `json:"from" yaml:"from" hcl:"from"`
	To   string `json:"to" yaml:"to" hcl:"to"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Format          *bool      `json:"format,omitempty" yaml:"format,omitempty" hcl:"format,optional"`
	StrictAuth      bool       `json:"strict_auth,omitempty" yaml:"strict_auth,omitempty" hcl:"strict_auth,optional"`
	ScanConcurrency int        `json:"scan_concurrency,omitempty" yaml:"scan_concurrency,omitempty" hcl:"scan_concurrency,optional"`
	Redirects       []Redirect `json:"redirects,omitempty" yaml:"redirects,omitempty" hcl:"redirect,block"`
}

// 🏭 Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file. An empty path yields Default.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	if path == "" {
		logger.Debug().Msg("no configuration file, using defaults")
		return Default(), nil
	}

	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and fills defaults
func (cfg *Config) Validate() error {
	if cfg.ScanConcurrency < 0 {
		return errors.Errorf("scan_concurrency must not be negative, got %d", cfg.ScanConcurrency)
	}
	if cfg.ScanConcurrency == 0 {
		cfg.ScanConcurrency = DefaultScanConcurrency
	}

	for i, r := range cfg.Redirects {
		if r.From == "" {
			return errors.Errorf("redirect %d: from is required", i)
		}
		if r.To == "" {
			return errors.Errorf("redirect %d: to is required", i)
		}
		if !strings.HasPrefix(r.From, "http://") && !strings.HasPrefix(r.From, "https://") {
			return errors.Errorf("redirect %d: from must be an http(s) URL, got %q", i, r.From)
		}
	}

	if cfg.Format == nil {
		enabled := true
		cfg.Format = &enabled
	}

	return nil
}

// FormatEnabled reports whether patched files are beautified
func (cfg *Config) FormatEnabled() bool {
	return cfg.Format == nil || *cfg.Format
}

// ExtraRedirects converts the configured redirects for the patch engine
func (cfg *Config) ExtraRedirects() []patch.Redirect {
	out := make([]patch.Redirect, 0, len(cfg.Redirects))
	for _, r := range cfg.Redirects {
		out = append(out, patch.Redirect{Provider: "config", From: r.From, To: r.To})
	}
	return out
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("format=%t strict_auth=%t scan_concurrency=%d redirects=%d",
		cfg.FormatEnabled(), cfg.StrictAuth, cfg.ScanConcurrency, len(cfg.Redirects))
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// 📝 Parse parses the config from YAML
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
