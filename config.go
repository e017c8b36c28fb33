package simos

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/viant/afs"
	"github.com/viant/simos/service/ledger"
	"gopkg.in/yaml.v3"
)

// Size is a byte count that decodes from either an integer or a human
// readable string such as "64 GiB".
type Size uint64

// UnmarshalYAML decodes integer or humanized sizes
func (s *Size) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!int" {
		v, err := strconv.ParseUint(value.Value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid size %q: %w", value.Value, err)
		}
		*s = Size(v)
		return nil
	}
	v, err := humanize.ParseBytes(value.Value)
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", value.Value, err)
	}
	*s = Size(v)
	return nil
}

// MarshalYAML encodes the size as a plain integer
func (s Size) MarshalYAML() (interface{}, error) {
	return uint64(s), nil
}

func (s Size) String() string {
	return humanize.IBytes(uint64(s))
}

// Config is a serialisable representation of the simulator configuration.
type Config struct {
	Disks       int           `json:"disks" yaml:"disks"`
	RAM         Size          `json:"ram" yaml:"ram"`
	OSSize      Size          `json:"osSize" yaml:"osSize"`
	Memory      ledger.Config `json:"memory" yaml:"memory"`
	JournalSize int           `json:"journalSize" yaml:"journalSize"`
	Tracing     TracingConfig `json:"tracing" yaml:"tracing"`
}

// TracingConfig controls the OpenTelemetry stdout exporter
type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName" yaml:"serviceName"`
	ServiceVersion string `json:"serviceVersion" yaml:"serviceVersion"`
	// OutputFile receives the spans, stdout when empty
	OutputFile string `json:"outputFile" yaml:"outputFile"`
}

// DefaultConfig returns 3 disks, 64 GiB of RAM and a 1 GiB OS footprint.
func DefaultConfig() *Config {
	return &Config{
		Disks:       3,
		RAM:         64 * humanize.GiByte,
		OSSize:      1 * humanize.GiByte,
		Memory:      ledger.DefaultConfig(),
		JournalSize: 4096,
		Tracing: TracingConfig{
			ServiceName:    "simos",
			ServiceVersion: "0.1.0",
		},
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Disks < 0 {
		return fmt.Errorf("disks must be >= 0, got %d", c.Disks)
	}
	if c.RAM == 0 {
		return fmt.Errorf("ram must be > 0")
	}
	if c.OSSize > c.RAM {
		return fmt.Errorf("osSize (%v) exceeds ram (%v)", c.OSSize, c.RAM)
	}
	if c.JournalSize < 0 {
		return fmt.Errorf("journalSize must be >= 0, got %d", c.JournalSize)
	}
	return nil
}

// LoadConfig reads a YAML configuration from URL; unset fields keep their
// DefaultConfig values.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	return DecodeConfig(data)
}

// DecodeConfig decodes YAML data on top of DefaultConfig and validates it
func DecodeConfig(data []byte) (*Config, error) {
	ret := DefaultConfig()
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
