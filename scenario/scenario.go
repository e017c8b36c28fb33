package scenario

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/simos"
	"gopkg.in/yaml.v3"
)

// Scenario is a named sequence of simulator calls with optional expectations
type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Config      yaml.Node `yaml:"config,omitempty"`
	Steps       []*Step   `yaml:"steps"`
}

// Step is a single call; in YAML it is either a bare call string or a {run, expect} mapping
type Step struct {
	Run    string  `yaml:"run"`
	Expect *Expect `yaml:"expect,omitempty"`
	call   *Call
}

// Expect lists the assertions checked after a step; unset fields are not checked
type Expect struct {
	OK     *bool         `yaml:"ok,omitempty"`
	CPU    *int          `yaml:"cpu,omitempty"`
	Ready  *[]int        `yaml:"ready,omitempty"`
	Memory *[]string     `yaml:"memory,omitempty"`
	Disk   map[int][]int `yaml:"disk,omitempty"`
}

// UnmarshalYAML accepts both "fork()" and {run: fork(), expect: {...}}
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Run = node.Value
		return nil
	}
	type step Step
	aux := (*step)(s)
	return node.Decode(aux)
}

// Call returns the parsed call
func (s *Step) Call() (*Call, error) {
	if s.call != nil {
		return s.call, nil
	}
	call, err := ParseCall([]byte(strings.TrimSpace(s.Run)))
	if err != nil {
		return nil, fmt.Errorf("invalid step %q: %w", s.Run, err)
	}
	s.call = call
	return call, nil
}

// ServiceConfig returns the default config overlaid with the scenario config
func (s *Scenario) ServiceConfig() (*simos.Config, error) {
	config := simos.DefaultConfig()
	if !s.Config.IsZero() {
		if err := s.Config.Decode(config); err != nil {
			return nil, fmt.Errorf("invalid config for scenario %v: %w", s.Name, err)
		}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// NewService creates a simulator configured for the scenario; options are applied after the scenario config
func (s *Scenario) NewService(options ...simos.Option) (*simos.Service, error) {
	config, err := s.ServiceConfig()
	if err != nil {
		return nil, err
	}
	return simos.New(append([]simos.Option{simos.WithConfig(config)}, options...)...)
}

// Parse decodes a scenario document and validates every step
func Parse(data []byte) (*Scenario, error) {
	ret := &Scenario{}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	for i, step := range ret.Steps {
		if step == nil {
			return nil, fmt.Errorf("step %d is empty", i)
		}
		if _, err := step.Call(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return ret, nil
}

// Load reads and parses a scenario from any afs supported URL
func Load(ctx context.Context, URL string) (*Scenario, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario %v: %w", URL, err)
	}
	ret, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", URL, err)
	}
	if ret.Name == "" {
		ret.Name = URL
	}
	return ret, nil
}
